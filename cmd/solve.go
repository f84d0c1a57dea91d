package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Shy5ta/studentSuite/internal/config"
	"github.com/Shy5ta/studentSuite/internal/engine"
	"github.com/Shy5ta/studentSuite/internal/textutil"
	"github.com/Shy5ta/studentSuite/internal/tui"
	"github.com/Shy5ta/studentSuite/internal/tui/theme"
)

var (
	solveSets  []string
	solveJSON  bool
	solvePager bool
)

var solveCmd = &cobra.Command{
	Use:   "solve <topic> <problem>",
	Short: "Solve one problem and print the working",
	Long: `Solve one problem. Every field starts from its default; override fields
with --set name=value. A value of @path reads the field from a file, which
is handy for matrices.`,
	Example: `  studentsuite solve cos1501-integers gcd-lcm --set a=252 --set b=105
  studentsuite solve mat1512-integrals definite-integral --set "f=x^2" --set a=0 --set b=3
  studentsuite solve apm1513-matrix-properties determinant --set A=@matrix.txt`,
	Args: cobra.ExactArgs(2),
	RunE: runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)
	solveCmd.Flags().StringArrayVar(&solveSets, "set", nil, "Set a field (name=value, repeatable)")
	solveCmd.Flags().BoolVar(&solveJSON, "json", false, "Print the result as JSON")
	solveCmd.Flags().BoolVar(&solvePager, "pager", false, "Show the result in a full-screen pager")
}

func runSolve(cmd *cobra.Command, args []string) error {
	sess, _, err := setup()
	if err != nil {
		return err
	}

	topic, id := args[0], engine.ProblemID(args[1])
	p, err := sess.Engine().Describe(topic, id)
	if err != nil {
		return err
	}

	fields, err := applySets(p, solveSets)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	tty := isTerminal(out)

	var s *spinner.Spinner
	if tty && !solveJSON {
		s = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
		s.Suffix = " Solving " + p.Title + "..."
		s.Start()
	}
	res, err := sess.Solve(topic, id, fields)
	if s != nil {
		s.Stop()
	}
	if err != nil {
		return err
	}

	switch {
	case solveJSON:
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		fmt.Fprintln(out, string(data))
	case solvePager && tty:
		if err := tui.RunPager(res); err != nil {
			return err
		}
	default:
		fmt.Fprint(out, formatResult(res, config.Current, out))
	}

	if res.Diagnostic {
		return errDiagnostic
	}
	return nil
}

// applySets overlays name=value assignments on the problem's defaults.
func applySets(p engine.ProblemType, sets []string) (map[string]string, error) {
	fields := p.Defaults()
	for _, set := range sets {
		name, val, ok := strings.Cut(set, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("--set %q: want name=value", set)
		}
		if _, known := p.Field(name); !known {
			return nil, fmt.Errorf("--set %q: unknown field %q (fields: %s)", set, name, fieldNames(p))
		}
		if path, isFile := strings.CutPrefix(val, "@"); isFile {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("failed to read field %s: %w", name, err)
			}
			val = strings.TrimRight(string(data), "\n")
		}
		fields[name] = val
	}
	return fields, nil
}

func fieldNames(p engine.ProblemType) string {
	names := make([]string, len(p.Fields))
	for i, f := range p.Fields {
		names[i] = f.Name
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// formatResult wraps step bodies to the terminal (capped at the configured
// width) and colours them unless colour is off or out is not a terminal.
func formatResult(res engine.Result, cfg *config.Config, out io.Writer) string {
	width := cfg.WrapWidth
	tty := isTerminal(out)
	if tty {
		if w, _, err := term.GetSize(int(out.(*os.File).Fd())); err == nil && w > 0 && w < width {
			width = w
		}
	}

	text := textutil.RenderResult(res, width)
	if !tty || cfg.NoColor {
		return text
	}
	if res.Kind == engine.KindCode {
		return theme.Code(text, res.Diagnostic)
	}
	return theme.Steps(text, res.Diagnostic)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
