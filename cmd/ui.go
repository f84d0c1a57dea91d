package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Shy5ta/studentSuite/internal/tui"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive course menu",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, cat, err := setup()
		if err != nil {
			return err
		}
		return tui.Run(sess, cat)
	},
}

func init() {
	rootCmd.AddCommand(uiCmd)
}
