package suite

import (
	"time"

	"gtp/pkg/outcome"
)

// TestOutcome is the result of one executed test
type TestOutcome struct {
	Name    string
	Outcome outcome.Outcome
	Elapsed time.Duration
}

// SuiteOutcome is the result of one suite invocation.
// When SetupFailed is set, Tests is empty and SetupError explains why.
// TeardownError is set when teardown panicked; it does not change the test counts.
type SuiteOutcome struct {
	Name          string
	TestCount     int // declared tests, regardless of filtering
	Tests         []TestOutcome
	Elapsed       time.Duration
	SetupFailed   bool
	SetupError    string
	TeardownError string
}

// Counts tallies test states for a suite or a run
type Counts struct {
	Passed  int
	Failed  int
	Skipped int
	Errored int
}

// Total returns the number of tests counted
func (c Counts) Total() int {
	return c.Passed + c.Failed + c.Skipped + c.Errored
}

// Add returns the sum of c and o
func (c Counts) Add(o Counts) Counts {
	return Counts{
		Passed:  c.Passed + o.Passed,
		Failed:  c.Failed + o.Failed,
		Skipped: c.Skipped + o.Skipped,
		Errored: c.Errored + o.Errored,
	}
}

// Counts tallies the suite's tests. A suite whose setup failed counts all declared tests as errored.
func (so SuiteOutcome) Counts() Counts {
	if so.SetupFailed {
		return Counts{Errored: so.TestCount}
	}
	var c Counts
	for _, t := range so.Tests {
		switch t.Outcome.Kind() {
		case outcome.KindPass:
			c.Passed++
		case outcome.KindFail:
			c.Failed++
		case outcome.KindSkip:
			c.Skipped++
		}
	}
	return c
}

// OK reports whether no test failed or errored
func (so SuiteOutcome) OK() bool {
	c := so.Counts()
	return c.Failed == 0 && c.Errored == 0
}

// RunSummary aggregates a run
type RunSummary struct {
	Passed  int
	Failed  int
	Skipped int
	Errored int // tests that could not run because their suite's setup failed
	Elapsed time.Duration
}

// Counts returns the summary counters without the elapsed time
func (rs RunSummary) Counts() Counts {
	return Counts{Passed: rs.Passed, Failed: rs.Failed, Skipped: rs.Skipped, Errored: rs.Errored}
}

// Total returns the number of tests accounted for
func (rs RunSummary) Total() int {
	return rs.Counts().Total()
}

// OK reports whether nothing failed or errored
func (rs RunSummary) OK() bool {
	return rs.Failed == 0 && rs.Errored == 0
}

// ExitCode returns 1 when any test failed or errored, 0 otherwise
func (rs RunSummary) ExitCode() int {
	if rs.OK() {
		return 0
	}
	return 1
}

// Summarize aggregates suite outcomes. elapsed is the independently measured run time.
func Summarize(outcomes []SuiteOutcome, elapsed time.Duration) RunSummary {
	var c Counts
	for _, so := range outcomes {
		c = c.Add(so.Counts())
	}
	return RunSummary{
		Passed:  c.Passed,
		Failed:  c.Failed,
		Skipped: c.Skipped,
		Errored: c.Errored,
		Elapsed: elapsed,
	}
}
