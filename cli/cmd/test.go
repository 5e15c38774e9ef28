package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/fol/log"
	"github.com/ardnew/fol/suite"
)

var (
	passStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	noteStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Test runs the end-to-end cases of a YAML suite and prints one line per
// case. Any failing case makes the command fail.
type Test struct {
	Suite string   `arg:"" default:"${config}"    help:"Suite file; defaults to the configuration file." optional:"" type:"path"`
	Path  []string `       default:"parts,test"   help:"Key path of the case list inside the document."`
	Match string   `                              help:"Only run cases whose name contains this text."  short:"m"`
}

// Run executes the test command.
func (c *Test) Run(ctx context.Context) error {
	p, err := parserFrom(ctx)
	if err != nil {
		return err
	}

	file, err := os.Open(c.Suite)
	if err != nil {
		return ErrReadInput.With(slog.String("file", c.Suite)).Wrap(err)
	}
	defer file.Close()

	cases, err := suite.Load(ctx, file, c.Path...)
	if err != nil {
		return err
	}

	if c.Match != "" {
		kept := cases[:0]

		for _, tc := range cases {
			if strings.Contains(tc.Name, c.Match) {
				kept = append(kept, tc)
			}
		}

		cases = kept
	}

	results := suite.NewRunner(p, suite.WithLogger(log.Default())).Run(ctx, cases)

	failed := report(outputFrom(ctx), results)
	if failed > 0 {
		return ErrSuiteFailed.With(
			slog.String("suite", c.Suite),
			slog.Int("failed", failed),
			slog.Int("total", len(results)),
		)
	}

	return nil
}

// report prints the results and returns the number of failures.
func report(w io.Writer, results []suite.Result) int {
	failed := 0

	for _, r := range results {
		if r.Passed() {
			fmt.Fprintf(w, "%s %s\n", passStyle.Render("PASS"), r.Case.Name)

			continue
		}

		failed++

		fmt.Fprintf(w, "%s %s\n", failStyle.Render("FAIL"), r.Case.Name)
		fmt.Fprintf(w, "     %s\n", noteStyle.Render(r.Err.Error()))
	}

	summary := fmt.Sprintf("%d passed, %d failed", len(results)-failed, failed)
	if failed > 0 {
		summary = failStyle.Render(summary)
	} else {
		summary = passStyle.Render(summary)
	}

	fmt.Fprintln(w, summary)

	return failed
}
