package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gemini-chat/internal/models"
	"gemini-chat/internal/render"
)

var askCmd = &cobra.Command{
	Use:   "ask <message>",
	Short: "Send a single message and print the reply",
	Long: `Send one message with no history and print the reply.

The reply is rendered as markdown when stdout is a terminal
and printed as-is otherwise.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		message := strings.Join(args, " ")
		if strings.TrimSpace(message) == "" {
			return fmt.Errorf("message is required")
		}

		reply, err := newClient().Send(cmd.Context(), models.ChatRequest{Message: message})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if !isStdoutTTY() {
			fmt.Fprintln(out, reply)
			return nil
		}

		style := "dark"
		if store, err := themeStore(); err == nil {
			style = string(store.Load())
		}

		rendered, err := render.Markdown(reply, render.DefaultOptions().WithStyle(style).WithWidth(terminalWidth()-4))
		if err != nil {
			fmt.Fprintln(out, reply)
			return nil
		}
		fmt.Fprint(out, rendered)
		return nil
	},
}
