package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Shy5ta/studentSuite/internal/catalog"
	"github.com/Shy5ta/studentSuite/internal/config"
	"github.com/Shy5ta/studentSuite/internal/engine"
	"github.com/Shy5ta/studentSuite/internal/problems"
	"github.com/Shy5ta/studentSuite/internal/session"
	"github.com/Shy5ta/studentSuite/internal/tui"
)

// errDiagnostic marks a solve whose result was already printed as a
// diagnostic; the exit status reports it without another message.
var errDiagnostic = errors.New("diagnostic result")

var rootCmd = &cobra.Command{
	Use:   "studentsuite",
	Short: "Step-by-step solver for first-year maths and computing courses",
	Long: `studentsuite solves exercises from six first-year courses and shows
the working: numbered steps for calculus, differential equations, linear
algebra and discrete maths, or a ready-to-run Octave script for the
applied linear algebra course.

Run without a command in a terminal to open the interactive menu.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return cmd.Help()
		}
		sess, cat, err := setup()
		if err != nil {
			return err
		}
		return tui.Run(sess, cat)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errDiagnostic) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// setup builds the engine, catalog and session from the current config.
func setup() (*session.Session, *catalog.Catalog, error) {
	cfg := config.Current
	if cfg.Err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", cfg.Err)
	}

	log, err := cfg.Logger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: event log disabled: %v\n", err)
	}
	e := problems.Default(engine.WithLogger(log))

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, nil, err
	}
	if err := cat.Validate(e.Registry()); err != nil {
		return nil, nil, err
	}
	return session.New(e), cat, nil
}
