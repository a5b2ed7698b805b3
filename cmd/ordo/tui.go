package main

import (
	"github.com/amonks/ordoflow/internal/tasktui"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive task list",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(a *app) error {
		return tasktui.Run(cmd.Context(), a.manager, tasktui.Options{
			Palette:       a.palette(),
			MarkdownStyle: a.markdownStyle(),
		})
	})
}
