package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var topicsCmd = &cobra.Command{
	Use:   "topics [course]",
	Short: "List topics and their problems",
	Long: `List the topics of one course, or of every course when none is given,
with the problem IDs each topic accepts.`,
	Example: `  studentsuite topics MAT1512
  studentsuite topics`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, cat, err := setup()
		if err != nil {
			return err
		}
		reg := sess.Engine().Registry()

		codes := cat.Codes()
		if len(args) == 1 {
			codes = []string{strings.ToUpper(args[0])}
		}

		out := cmd.OutOrStdout()
		for i, code := range codes {
			topics, err := cat.Topics(reg, code)
			if err != nil {
				return err
			}
			if i > 0 {
				fmt.Fprintln(out)
			}
			course, _ := cat.Course(code)
			fmt.Fprintf(out, "%s  %s\n", course.Code, course.Name)
			for _, t := range topics {
				fmt.Fprintf(out, "  %s  %s\n", t.ID, t.Title)
				ps, err := reg.ProblemsFor(t.ID)
				if err != nil {
					return err
				}
				for _, p := range ps {
					fmt.Fprintf(out, "    - %-28s %s (%s)\n", p.ID, p.Title, p.Output)
				}
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(topicsCmd)
}
