package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X ...cmd.Version=...".
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and catalog size",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, cat, err := setup()
		if err != nil {
			return err
		}
		reg := sess.Engine().Registry()
		fmt.Fprintf(cmd.OutOrStdout(), "studentsuite %s (%d courses, %d topics, %d problems)\n",
			Version, len(cat.Courses), len(reg.Topics()), reg.Count())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
