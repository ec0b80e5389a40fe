package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"gtp/pkg/outcome"
	"gtp/pkg/suite"
)

// Test statuses as persisted
const (
	StatusPass = "pass"
	StatusFail = "fail"
	StatusSkip = "skip"
)

// TestResultsMeta contains metadata about a test run
type TestResultsMeta struct {
	RunID           string  `json:"run_id"`
	TotalSuites     int     `json:"total_suites"`
	TotalTests      int     `json:"total_tests"`
	Passed          int     `json:"passed"`
	Failed          int     `json:"failed"`
	Skipped         int     `json:"skipped"`
	Errored         int     `json:"errored"`
	Duration        string  `json:"duration"`
	DurationNs      int64   `json:"duration_ns"`
	DurationSeconds float64 `json:"duration_seconds"`
	Timestamp       string  `json:"timestamp"`
	ExitCode        int     `json:"exit_code"`
}

// SuiteResult is a persisted suite.SuiteOutcome
type SuiteResult struct {
	Name        string `json:"name"`
	Total       int    `json:"total"`
	Passed      int    `json:"passed"`
	Failed      int    `json:"failed"`
	Skipped     int    `json:"skipped"`
	Errored     int    `json:"errored"`
	SetupFailed bool   `json:"setup_failed,omitempty"`
	SetupError  string `json:"setup_error,omitempty"`
	// TeardownError is set when the suite's teardown panicked
	TeardownError string       `json:"teardown_error,omitempty"`
	DurationNs    int64        `json:"duration_ns"`
	Tests         []TestResult `json:"tests"`
}

// TestResult is a persisted suite.TestOutcome
type TestResult struct {
	Name       string          `json:"name"`
	Status     string          `json:"status"`
	Reason     string          `json:"reason,omitempty"`
	DurationNs int64           `json:"duration_ns"`
	Failures   []FailureRecord `json:"failures,omitempty"`
}

// TestResultsOutput is the complete output structure for test results
type TestResultsOutput struct {
	Meta    TestResultsMeta `json:"meta"`
	Suites  []SuiteResult   `json:"suites"`
	Details []TestFailure   `json:"details"`
}

// NewTestResultsOutput builds the persisted report of a run
func NewTestResultsOutput(runID string, summary suite.RunSummary, outcomes []suite.SuiteOutcome, now time.Time) *TestResultsOutput {
	out := &TestResultsOutput{
		Meta: TestResultsMeta{
			RunID:           runID,
			TotalSuites:     len(outcomes),
			TotalTests:      summary.Total(),
			Passed:          summary.Passed,
			Failed:          summary.Failed,
			Skipped:         summary.Skipped,
			Errored:         summary.Errored,
			Duration:        summary.Elapsed.String(),
			DurationNs:      int64(summary.Elapsed),
			DurationSeconds: summary.Elapsed.Seconds(),
			Timestamp:       now.Format(time.RFC3339),
			ExitCode:        summary.ExitCode(),
		},
		Suites:  make([]SuiteResult, 0, len(outcomes)),
		Details: []TestFailure{},
	}

	for _, so := range outcomes {
		c := so.Counts()
		sr := SuiteResult{
			Name:          so.Name,
			Total:         so.TestCount,
			Passed:        c.Passed,
			Failed:        c.Failed,
			Skipped:       c.Skipped,
			Errored:       c.Errored,
			SetupFailed:   so.SetupFailed,
			SetupError:    so.SetupError,
			TeardownError: so.TeardownError,
			DurationNs:    int64(so.Elapsed),
			Tests:         make([]TestResult, 0, len(so.Tests)),
		}

		if so.SetupFailed {
			out.Details = append(out.Details, TestFailure{
				Suite:    so.Name,
				TestName: SetupTestName,
				Message:  so.SetupError,
			})
		}

		for _, t := range so.Tests {
			tr := TestResult{
				Name:       t.Name,
				Status:     t.Outcome.Kind().String(),
				Reason:     t.Outcome.Reason(),
				DurationNs: int64(t.Elapsed),
			}
			for _, f := range t.Outcome.Failures() {
				tr.Failures = append(tr.Failures, FailureRecord{
					Message:   f.Message,
					Expected:  f.Expected,
					Actual:    f.Actual,
					HasDetail: f.HasDetail,
					File:      f.Location.File,
					Line:      f.Location.Line,
					Func:      f.Location.Func,
				})
				out.Details = append(out.Details, TestFailure{
					Suite:    so.Name,
					TestName: t.Name,
					Message:  f.Message,
					Expected: f.Expected,
					Actual:   f.Actual,
					File:     f.Location.File,
					Line:     f.Location.Line,
				})
			}
			sr.Tests = append(sr.Tests, tr)
		}

		out.Suites = append(out.Suites, sr)
	}

	return out
}

// Encode renders the report as indented JSON terminated by a newline
func (o *TestResultsOutput) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal results: %w", err)
	}
	return append(data, '\n'), nil
}

// Summary rebuilds the run summary
func (o *TestResultsOutput) Summary() suite.RunSummary {
	return suite.RunSummary{
		Passed:  o.Meta.Passed,
		Failed:  o.Meta.Failed,
		Skipped: o.Meta.Skipped,
		Errored: o.Meta.Errored,
		Elapsed: time.Duration(o.Meta.DurationNs),
	}
}

// SuiteOutcomes rebuilds the suite outcomes the report was built from
func (o *TestResultsOutput) SuiteOutcomes() []suite.SuiteOutcome {
	outcomes := make([]suite.SuiteOutcome, 0, len(o.Suites))
	for _, sr := range o.Suites {
		so := suite.SuiteOutcome{
			Name:          sr.Name,
			TestCount:     sr.Total,
			Tests:         make([]suite.TestOutcome, 0, len(sr.Tests)),
			Elapsed:       time.Duration(sr.DurationNs),
			SetupFailed:   sr.SetupFailed,
			SetupError:    sr.SetupError,
			TeardownError: sr.TeardownError,
		}
		for _, tr := range sr.Tests {
			so.Tests = append(so.Tests, suite.TestOutcome{
				Name:    tr.Name,
				Outcome: tr.outcome(),
				Elapsed: time.Duration(tr.DurationNs),
			})
		}
		outcomes = append(outcomes, so)
	}
	return outcomes
}

func (tr TestResult) outcome() outcome.Outcome {
	switch tr.Status {
	case StatusSkip:
		return outcome.Skip(tr.Reason)
	case StatusFail:
		parts := make([]outcome.Outcome, 0, len(tr.Failures))
		for _, f := range tr.Failures {
			loc := outcome.Location{File: f.File, Line: f.Line, Func: f.Func}
			if f.HasDetail {
				parts = append(parts, outcome.FailWith(f.Message, f.Expected, f.Actual, loc))
			} else {
				parts = append(parts, outcome.Fail(f.Message, loc))
			}
		}
		if len(parts) == 0 {
			return outcome.Fail("", outcome.Location{})
		}
		return outcome.CombineAll(parts...)
	default:
		return outcome.Pass()
	}
}

// FailedSuites returns the names of suites with failed or errored tests, in run order
func (o *TestResultsOutput) FailedSuites() []string {
	var names []string
	for _, sr := range o.Suites {
		if sr.Failed > 0 || sr.Errored > 0 {
			names = append(names, sr.Name)
		}
	}
	return names
}

// FailedTests returns the set of "suite/test" IDs that failed
func (o *TestResultsOutput) FailedTests() map[string]bool {
	failed := make(map[string]bool)
	for _, sr := range o.Suites {
		for _, tr := range sr.Tests {
			if tr.Status == StatusFail {
				failed[TestFailure{Suite: sr.Name, TestName: tr.Name}.ID()] = true
			}
		}
	}
	return failed
}

// Unresolved returns the failures not yet marked as resolved
func (o *TestResultsOutput) Unresolved() []TestFailure {
	var out []TestFailure
	for _, f := range o.Details {
		if !f.Resolved {
			out = append(out, f)
		}
	}
	return out
}
