package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"gemini-chat/internal/chatui"
)

var themeCmd = &cobra.Command{
	Use:       "theme [light|dark|toggle]",
	Short:     "Show or change the saved theme",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"light", "dark", "toggle"},
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := themeStore()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(args) == 0 {
			fmt.Fprintln(out, store.Load())
			return nil
		}

		var next chatui.Theme
		if args[0] == "toggle" {
			next, err = store.Toggle()
			if err != nil {
				return err
			}
		} else {
			next, err = chatui.ParseTheme(args[0])
			if err != nil {
				return err
			}
			if err := store.Set(next); err != nil {
				return err
			}
		}

		fmt.Fprintln(out, next)
		return nil
	},
}
