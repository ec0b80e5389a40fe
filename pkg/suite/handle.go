package suite

import (
	"errors"
	"fmt"
	"strings"

	"gtp/pkg/outcome"
	"gtp/pkg/scratch"
)

// ErrNoEnvironment is the setup error of a suite whose tests need an environment but that has no setup
var ErrNoEnvironment = errors.New("suite has no setup and its environment type is not trivial")

// Handle is a suite with its environment type erased
type Handle interface {
	Name() string
	TestCount() int
	TestNames() []string
	// Run executes the suite. Tests whose name does not contain filter are
	// left out of the result; an empty filter selects every test.
	Run(a *scratch.Arena, filter string) SuiteOutcome
}

// Option configures a handle
type Option func(*handleOptions)

type handleOptions struct {
	clock Clock
}

// WithClock sets the clock used to time the suite and its tests
func WithClock(c Clock) Option {
	return func(o *handleOptions) {
		if c != nil {
			o.clock = c
		}
	}
}

type handle struct {
	name   string
	count  int
	names  []string
	invoke func(a *scratch.Arena, filter string) SuiteOutcome
}

func (h *handle) Name() string   { return h.name }
func (h *handle) TestCount() int { return h.count }

func (h *handle) TestNames() []string {
	out := make([]string, len(h.names))
	copy(out, h.names)
	return out
}

func (h *handle) Run(a *scratch.Arena, filter string) SuiteOutcome {
	return h.invoke(a, filter)
}

// Erase lifts s into a Handle. The handle keeps a reference to s; every Run
// re-runs setup and teardown.
func Erase[E any](s *Suite[E], opts ...Option) Handle {
	o := handleOptions{clock: SystemClock()}
	for _, opt := range opts {
		opt(&o)
	}

	return &handle{
		name:  s.name,
		count: len(s.tests),
		names: s.TestNames(),
		invoke: func(a *scratch.Arena, filter string) SuiteOutcome {
			return execute(s, a, filter, o.clock)
		},
	}
}

func execute[E any](s *Suite[E], a *scratch.Arena, filter string, clock Clock) SuiteOutcome {
	mark := a.Mark()
	defer a.Release(mark)

	suiteTimer := startOrZero(clock)
	result := SuiteOutcome{
		Name:      s.name,
		TestCount: len(s.tests),
		Tests:     []TestOutcome{},
	}

	env, err := resolveEnvironment(s, a)
	if err != nil {
		result.SetupFailed = true
		result.SetupError = err.Error()
		result.Elapsed = suiteTimer.Elapsed()
		return result
	}

	result.Tests, result.TeardownError = runTests(s, a, env, filter, clock)
	result.Elapsed = suiteTimer.Elapsed()
	return result
}

func resolveEnvironment[E any](s *Suite[E], a *scratch.Arena) (env E, err error) {
	if s.setup == nil {
		if isTrivial[E]() {
			return env, nil
		}
		return env, ErrNoEnvironment
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("setup panicked: %v", r)
		}
	}()

	env, err = s.setup(a)
	if err != nil {
		return env, fmt.Errorf("setup: %w", err)
	}
	return env, nil
}

// runTests runs the selected tests in declaration order. Teardown is deferred
// so it runs exactly once however the loop exits.
func runTests[E any](s *Suite[E], a *scratch.Arena, env E, filter string, clock Clock) (outcomes []TestOutcome, teardownErr string) {
	if s.teardown != nil {
		defer func() {
			teardownErr = teardown(s.teardown, env)
		}()
	}

	outcomes = make([]TestOutcome, 0, len(s.tests))
	for _, t := range s.tests {
		if filter != "" && !strings.Contains(t.name, filter) {
			continue
		}

		timer, err := clock.Start()
		if err != nil || timer == nil {
			continue
		}

		var o outcome.Outcome
		if t.skipped {
			o = outcome.Skip(t.skipReason)
		} else {
			o = invoke(t, a, env)
		}

		outcomes = append(outcomes, TestOutcome{
			Name:    t.name,
			Outcome: o,
			Elapsed: timer.Elapsed(),
		})
	}
	return outcomes, ""
}

// teardown calls fn, turning a panic into the returned message
func teardown[E any](fn TeardownFunc[E], env E) (msg string) {
	defer func() {
		if r := recover(); r != nil {
			msg = fmt.Sprintf("teardown panicked: %v", r)
		}
	}()
	fn(env)
	return ""
}

// invoke calls the test body, turning a panic into a failure
func invoke[E any](t Test[E], a *scratch.Arena, env E) (o outcome.Outcome) {
	if t.fn == nil {
		return outcome.Fail("test has no function bound", outcome.Location{Func: t.name})
	}

	defer func() {
		if r := recover(); r != nil {
			o = outcome.Fail(fmt.Sprintf("panic: %v", r), outcome.Location{Func: t.name})
		}
	}()

	return t.fn(a, env)
}
