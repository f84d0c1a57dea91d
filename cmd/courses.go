package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "List the available courses",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, cat, err := setup()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, c := range cat.Courses {
			fmt.Fprintf(w, "%s\t%s\t%d topics\n", c.Code, c.Name, len(c.Topics))
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(coursesCmd)
}
