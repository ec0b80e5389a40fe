package suite

import (
	"errors"
	"fmt"

	"gtp/pkg/scratch"
)

// Observer is called after each suite finishes, in run order
type Observer func(index int, so SuiteOutcome)

// RunOption configures Run
type RunOption func(*runOptions)

type runOptions struct {
	testFilter string
	observer   Observer
	stop       func(SuiteOutcome) bool
	clock      Clock
}

// WithTestFilter passes filter to every suite invocation
func WithTestFilter(filter string) RunOption {
	return func(o *runOptions) { o.testFilter = filter }
}

// WithObserver registers fn to be called after each suite
func WithObserver(fn Observer) RunOption {
	return func(o *runOptions) { o.observer = fn }
}

// WithStop ends the run after the first suite for which fn returns true
func WithStop(fn func(SuiteOutcome) bool) RunOption {
	return func(o *runOptions) { o.stop = fn }
}

// WithRunClock sets the clock used for the total elapsed time
func WithRunClock(c Clock) RunOption {
	return func(o *runOptions) {
		if c != nil {
			o.clock = c
		}
	}
}

// RunAll invokes every handle in order with no filter
func RunAll(a *scratch.Arena, handles []Handle) (RunSummary, []SuiteOutcome) {
	return Run(a, handles)
}

// Run invokes handles sequentially in the given order. A suite whose setup
// fails contributes its declared test count to Errored and the run goes on.
func Run(a *scratch.Arena, handles []Handle, opts ...RunOption) (RunSummary, []SuiteOutcome) {
	o := runOptions{clock: SystemClock()}
	for _, opt := range opts {
		opt(&o)
	}

	total := startOrZero(o.clock)
	outcomes := make([]SuiteOutcome, 0, len(handles))
	for i, h := range handles {
		so := h.Run(a, o.testFilter)
		outcomes = append(outcomes, so)
		if o.observer != nil {
			o.observer(i, so)
		}
		if o.stop != nil && o.stop(so) {
			break
		}
	}

	return Summarize(outcomes, total.Elapsed()), outcomes
}

// Check reports empty names, duplicate suite names and duplicate test names within a suite
func Check(handles []Handle) error {
	var errs []error
	suites := make(map[string]bool, len(handles))
	for _, h := range handles {
		name := h.Name()
		if name == "" {
			errs = append(errs, errors.New("suite with empty name"))
		} else if suites[name] {
			errs = append(errs, fmt.Errorf("duplicate suite %q", name))
		}
		suites[name] = true

		seen := make(map[string]bool, h.TestCount())
		for _, tn := range h.TestNames() {
			if tn == "" {
				errs = append(errs, fmt.Errorf("suite %q: test with empty name", name))
				continue
			}
			if seen[tn] {
				errs = append(errs, fmt.Errorf("suite %q: duplicate test %q", name, tn))
			}
			seen[tn] = true
		}
	}
	return errors.Join(errs...)
}
