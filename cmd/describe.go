package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Shy5ta/studentSuite/internal/engine"
)

var describeJSON bool

var describeCmd = &cobra.Command{
	Use:   "describe <topic> <problem>",
	Short: "Show the input fields of a problem",
	Example: `  studentsuite describe cos1501-integers gcd-lcm
  studentsuite describe mat1512-integrals definite-integral --json`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, _, err := setup()
		if err != nil {
			return err
		}

		p, err := sess.Engine().Describe(args[0], engine.ProblemID(args[1]))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if describeJSON {
			schema, err := engine.SchemaJSON(args[0], p)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, schema)
			return nil
		}

		fmt.Fprintf(out, "%s (%s output)\n", p.Title, p.Output)
		for _, f := range p.Fields {
			fmt.Fprintf(out, "\n  %s  [%s]\n", f.Name, f.Kind)
			if f.Description != "" {
				fmt.Fprintf(out, "    %s\n", f.Description)
			}
			fmt.Fprintf(out, "    format:  %s\n", f.Kind.Hint())
			fmt.Fprintf(out, "    default: %q\n", f.Default)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
	describeCmd.Flags().BoolVar(&describeJSON, "json", false, "Print the field schema as JSON")
}
