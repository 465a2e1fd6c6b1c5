package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"gemini-chat/internal/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Start an interactive chat session through the relay.

Enter sends, Alt+Enter or Ctrl+J inserts a newline.
Ctrl+L clears the conversation, Ctrl+T switches theme,
Ctrl+Y copies the last reply. Esc or Ctrl+C quits.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat()
	},
}

func runChat() error {
	store, err := themeStore()
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so logs go to a file.
	logPath := filepath.Join(os.TempDir(), "gemchat.log")
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	slog.SetDefault(slog.New(slog.NewTextHandler(logFile, nil)))

	return tui.Run(newClient(), store)
}
