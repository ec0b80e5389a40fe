package ui

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"gtp/internal/config"
	"gtp/internal/domain"
	"gtp/pkg/suite"
)

// Formatter formats and displays output
type Formatter struct {
	config *config.Config
	out    io.Writer
}

// NewFormatter creates a new Formatter writing to out
func NewFormatter(cfg *config.Config, out io.Writer) *Formatter {
	return &Formatter{
		config: cfg,
		out:    out,
	}
}

// SummaryTable renders one row per suite plus a TOTAL footer
func (f *Formatter) SummaryTable(output *domain.TestResultsOutput) string {
	var buf bytes.Buffer

	t := table.NewWriter()
	t.SetOutputMirror(&buf)
	t.SetTitle("Test Execution Statistics")
	t.AppendHeader(table.Row{"SUITE", "TESTS", "PASSED", "FAILED", "SKIPPED", "ERRORED", "DURATION", "STATUS"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "SUITE", WidthMax: 60, WidthMaxEnforcer: text.WrapSoft},
		{Name: "TESTS", Align: text.AlignRight},
		{Name: "PASSED", Align: text.AlignRight},
		{Name: "FAILED", Align: text.AlignRight},
		{Name: "SKIPPED", Align: text.AlignRight},
		{Name: "ERRORED", Align: text.AlignRight},
		{Name: "DURATION", Align: text.AlignRight},
	})

	for _, sr := range output.Suites {
		t.AppendRow(table.Row{
			sr.Name,
			sr.Total,
			sr.Passed,
			sr.Failed,
			sr.Skipped,
			sr.Errored,
			formatDuration(time.Duration(sr.DurationNs)),
			suiteStatus(sr),
		})
	}

	meta := output.Meta
	status := "PASS"
	if meta.ExitCode != 0 {
		status = "FAIL"
	}
	t.AppendFooter(table.Row{
		"TOTAL",
		meta.TotalTests,
		meta.Passed,
		meta.Failed,
		meta.Skipped,
		meta.Errored,
		formatDuration(time.Duration(meta.DurationNs)),
		status,
	})

	t.SetStyle(table.StyleLight)
	t.Render()
	return buf.String()
}

// PrintSummary prints the summary table, a result line and the failure tree
func (f *Formatter) PrintSummary(output *domain.TestResultsOutput) {
	fmt.Fprintln(f.out)
	fmt.Fprint(f.out, f.SummaryTable(output))
	fmt.Fprintln(f.out)

	meta := output.Meta
	if meta.ExitCode == 0 {
		fmt.Fprintln(f.out, color.GreenString("✓ All tests passed!"))
		return
	}

	fmt.Fprintln(f.out, color.RedString("✗ %d test(s) failed, %d errored", meta.Failed, meta.Errored))
	fmt.Fprintln(f.out)
	f.printFailureTree(output.Details)
}

// printFailureTree prints failures grouped by suite then test, in run order
func (f *Formatter) printFailureTree(failures []domain.TestFailure) {
	var suites []string
	bySuite := make(map[string][]domain.TestFailure)
	for _, failure := range failures {
		if _, ok := bySuite[failure.Suite]; !ok {
			suites = append(suites, failure.Suite)
		}
		bySuite[failure.Suite] = append(bySuite[failure.Suite], failure)
	}

	for i, name := range suites {
		lastSuite := i == len(suites)-1
		fmt.Fprintln(f.out, color.CyanString("%s%s", branch(lastSuite), name))

		group := bySuite[name]
		for j, failure := range group {
			prefix := indent(lastSuite) + branch(j == len(group)-1)
			line := failure.TestName + ": " + failure.Message
			if failure.Expected != "" || failure.Actual != "" {
				line += fmt.Sprintf(" (expected %s, actual %s)", failure.Expected, failure.Actual)
			}
			if loc := f.location(failure.File, failure.Line); loc != "" {
				line = loc + ": " + line
			}
			fmt.Fprintln(f.out, prefix+color.RedString("%s", line))
		}
	}
}

// PrintSuiteOutcome prints one line per test of a finished suite
func (f *Formatter) PrintSuiteOutcome(so suite.SuiteOutcome) {
	if so.SetupFailed {
		fmt.Fprintln(f.out, color.RedString("✗ %s: %s", so.Name, so.SetupError))
		return
	}

	fmt.Fprintln(f.out, color.CyanString("%s", so.Name))
	for i, t := range so.Tests {
		prefix := branch(i == len(so.Tests)-1)
		switch {
		case t.Outcome.IsPass():
			fmt.Fprintf(f.out, "%s%s %s\n", prefix, color.GreenString("✓"), t.Name)
		case t.Outcome.IsSkip():
			fmt.Fprintf(f.out, "%s%s %s (%s)\n", prefix, color.YellowString("-"), t.Name, t.Outcome.Reason())
		default:
			fmt.Fprintf(f.out, "%s%s %s\n", prefix, color.RedString("✗"), t.Name)
			for _, failure := range t.Outcome.Failures() {
				fmt.Fprintf(f.out, "%s      %s\n", indent(i == len(so.Tests)-1), color.RedString("%s", failure.String()))
			}
		}
	}
	if so.TeardownError != "" {
		fmt.Fprintln(f.out, color.YellowString("! %s: %s", so.Name, so.TeardownError))
	}
}

// PrintSuiteList prints the registered suites, optionally with their tests.
// failed is optional; suites and tests in it are marked with [F] (from last run).
func (f *Formatter) PrintSuiteList(handles []suite.Handle, showTests bool, failed map[string]bool) {
	fmt.Fprintln(f.out, color.GreenString("Found %d suite(s):\n", len(handles)))

	for i, h := range handles {
		lastSuite := i == len(handles)-1
		fmt.Fprintf(f.out, "%s%s%s\n", branch(lastSuite), color.CyanString("%s", h.Name()), marker(failed[h.Name()]))

		if !showTests {
			continue
		}
		names := h.TestNames()
		if len(names) == 0 {
			fmt.Fprintf(f.out, "%s%s\n", indent(lastSuite)+branch(true), color.RedString("(no tests)"))
			continue
		}
		for j, name := range names {
			id := domain.TestFailure{Suite: h.Name(), TestName: name}.ID()
			fmt.Fprintf(f.out, "%s%s%s\n", indent(lastSuite)+branch(j == len(names)-1), color.YellowString("%s", name), marker(failed[id]))
		}
	}
}

func marker(failed bool) string {
	if !failed {
		return ""
	}
	return " " + color.RedString("[F]")
}

func branch(last bool) string {
	if last {
		return "└── "
	}
	return "├── "
}

func indent(last bool) string {
	if last {
		return "    "
	}
	return "│   "
}

func suiteStatus(sr domain.SuiteResult) string {
	switch {
	case sr.SetupFailed:
		return "ERROR"
	case sr.Failed > 0:
		return "FAIL"
	case sr.Total > 0 && sr.Skipped == len(sr.Tests) && sr.Skipped > 0:
		return "SKIP"
	default:
		return "PASS"
	}
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return d.String()
	}
}

// location renders file:line relative to the project path when possible
func (f *Formatter) location(file string, line int) string {
	if file == "" {
		return ""
	}
	if abs, err := filepath.Abs(f.config.ProjectPath); err == nil {
		if rel, err := filepath.Rel(abs, file); err == nil && !strings.HasPrefix(rel, "..") {
			file = rel
		}
	}
	return fmt.Sprintf("%s:%d", file, line)
}
