package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gtp/internal/config"
	"gtp/internal/domain"
	"gtp/internal/storage"
	"gtp/pkg/outcome"
	"gtp/pkg/scratch"
	"gtp/pkg/suite"
)

func init() {
	color.NoColor = true
}

func sampleOutcomes() []suite.SuiteOutcome {
	return []suite.SuiteOutcome{
		{
			Name:      "math",
			TestCount: 2,
			Tests: []suite.TestOutcome{
				{Name: "add", Outcome: outcome.Pass()},
				{Name: "mul", Outcome: outcome.FailWith("product", "4", "5", outcome.Location{File: "/src/math.go", Line: 3})},
			},
		},
		{Name: "db", TestCount: 2, Tests: []suite.TestOutcome{}, SetupFailed: true, SetupError: "setup: refused"},
	}
}

func sampleOutput(outcomes []suite.SuiteOutcome) *domain.TestResultsOutput {
	return domain.NewTestResultsOutput("r", suite.Summarize(outcomes, time.Second), outcomes, time.Now())
}

func TestFormatter_PrintSummary(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(config.New(), &buf)

	f.PrintSummary(sampleOutput(sampleOutcomes()))
	out := buf.String()

	assert.Contains(t, out, "Test Execution Statistics")
	assert.Contains(t, out, "TOTAL")
	assert.Contains(t, out, "ERROR")
	assert.Contains(t, out, "✗ 1 test(s) failed, 2 errored")
	assert.Contains(t, out, "mul: product (expected 4, actual 5)")
	assert.Contains(t, out, "(setup): setup: refused")
}

func TestFormatter_PrintSummary_AllPassed(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(config.New(), &buf)

	outcomes := []suite.SuiteOutcome{{
		Name:      "ok",
		TestCount: 1,
		Tests:     []suite.TestOutcome{{Name: "a", Outcome: outcome.Pass()}},
	}}
	f.PrintSummary(sampleOutput(outcomes))

	assert.Contains(t, buf.String(), "✓ All tests passed!")
}

func TestFormatter_PrintSuiteOutcome(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(config.New(), &buf)

	f.PrintSuiteOutcome(suite.SuiteOutcome{
		Name: "mixed",
		Tests: []suite.TestOutcome{
			{Name: "a", Outcome: outcome.Pass()},
			{Name: "b", Outcome: outcome.Skip("wip")},
			{Name: "c", Outcome: outcome.Fail("boom", outcome.Location{File: "x.go", Line: 9})},
		},
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "mixed", lines[0])
	assert.Equal(t, "├── ✓ a", lines[1])
	assert.Equal(t, "├── - b (wip)", lines[2])
	assert.Equal(t, "└── ✗ c", lines[3])
	assert.Contains(t, lines[4], "x.go:9: boom")
}

func TestFormatter_PrintSuiteList(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(config.New(), &buf)

	pass := func(*scratch.Arena, suite.None) outcome.Outcome { return outcome.Pass() }
	handles := []suite.Handle{
		suite.Erase(suite.New("alpha", suite.NewTest("one", pass), suite.NewTest("two", pass))),
		suite.Erase(suite.New[suite.None]("empty")),
	}

	f.PrintSuiteList(handles, true, map[string]bool{"alpha": true, "alpha/two": true})
	out := buf.String()

	assert.Contains(t, out, "Found 2 suite(s)")
	assert.Contains(t, out, "├── alpha [F]")
	assert.Contains(t, out, "│   ├── one\n")
	assert.Contains(t, out, "│   └── two [F]")
	assert.Contains(t, out, "└── empty\n")
	assert.Contains(t, out, "    └── (no tests)")
}

func TestErrorViewer_ToggleResolved(t *testing.T) {
	cfg := config.New()
	cfg.ProjectPath = t.TempDir()
	st := storage.NewJSONStorage(cfg)
	results := sampleOutput(sampleOutcomes())
	require.NoError(t, st.Save(results))

	ev := NewErrorViewer(st, nil)
	require.NoError(t, ev.ToggleResolved(results, 1))

	loaded, err := st.Load()
	require.NoError(t, err)
	assert.False(t, loaded.Details[0].Resolved)
	assert.True(t, loaded.Details[1].Resolved)

	assert.Error(t, ev.ToggleResolved(results, 5))
}

func TestFormatFailureDetails(t *testing.T) {
	details := formatFailureDetails(domain.TestFailure{
		Suite:    "math",
		TestName: "mul",
		Message:  "product",
		Expected: "4",
		Actual:   "5",
		File:     "/src/math.go",
		Line:     3,
	})

	assert.Contains(t, details, "Test: mul")
	assert.Contains(t, details, "Suite: math")
	assert.Contains(t, details, "Location: /src/math.go:3")
	assert.Contains(t, details, "product")
	assert.Contains(t, details, "Expected:")

	assert.Contains(t, listItemText(domain.TestFailure{Suite: "s", TestName: "t", Resolved: true}, 0), "✓")
	assert.Contains(t, formatFailureStats(domain.TestFailure{Suite: "s", TestName: "t"}), "open")
}
