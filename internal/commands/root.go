// Package commands provides the gemchat CLI.
package commands

import (
	"net/http"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"gemini-chat/internal/chatui"
)

const defaultRelayURL = "http://localhost:8080"

var (
	// Global flags
	urlFlag string

	// Version info (set at build time)
	Version = "0.1.0"

	// isStdoutTTY reports whether stdout is a terminal.
	isStdoutTTY = func() bool {
		return term.IsTerminal(int(os.Stdout.Fd()))
	}

	// terminalWidth returns the terminal width or 80.
	terminalWidth = func() int {
		width, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || width <= 0 {
			return 80
		}
		return width
	}
)

var rootCmd = &cobra.Command{
	Use:   "gemchat",
	Short: "Terminal client for the Gemini chat relay",
	Long: `gemchat talks to a running Gemini chat relay.

Examples:
  gemchat chat                 Start interactive chat
  gemchat ask "What is Go?"    Send a single message
  gemchat theme toggle         Switch between light and dark`,
	Version:      Version,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&urlFlag, "url", "", "Relay base URL (env GEMCHAT_URL, default "+defaultRelayURL+")")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(themeCmd)
}

// relayURL returns the relay base URL from flag, environment or default.
func relayURL() string {
	if urlFlag != "" {
		return urlFlag
	}
	if env := os.Getenv("GEMCHAT_URL"); env != "" {
		return env
	}
	return defaultRelayURL
}

func newClient() *chatui.Client {
	return chatui.NewClient(relayURL(), &http.Client{})
}

func themeStore() (*chatui.ThemeStore, error) {
	path, err := chatui.DefaultPrefsPath()
	if err != nil {
		return nil, err
	}
	return chatui.NewThemeStore(path, lipgloss.HasDarkBackground), nil
}
