// Package suite describes tests bound to an environment type and runs them.
//
// A Suite[E] groups tests that share one environment value produced by an
// optional setup and released by an optional teardown. Erase hides E behind a
// Handle so suites with different environment types can be stored in one
// slice and executed by Run/RunAll without the caller knowing E.
package suite

import (
	"reflect"

	"gtp/pkg/outcome"
	"gtp/pkg/scratch"
)

// None is the trivial environment. Suites over None need no setup.
type None = struct{}

// TestFunc is the body of a test
type TestFunc[E any] func(a *scratch.Arena, env E) outcome.Outcome

// SetupFunc builds the environment shared by a suite's tests
type SetupFunc[E any] func(a *scratch.Arena) (E, error)

// TeardownFunc releases the environment built by setup
type TeardownFunc[E any] func(env E)

// Test is a named test over environment E
type Test[E any] struct {
	name       string
	fn         TestFunc[E]
	skipReason string
	skipped    bool
}

// NewTest binds fn for execution under name
func NewTest[E any](name string, fn TestFunc[E]) Test[E] {
	return Test[E]{name: name, fn: fn}
}

// SkipTest creates a permanently skipped test
func SkipTest[E any](name, reason string) Test[E] {
	return Test[E]{name: name, skipReason: reason, skipped: true}
}

// Skip returns a copy of t that is permanently skipped. The bound function is kept but never called.
func (t Test[E]) Skip(reason string) Test[E] {
	t.skipReason = reason
	t.skipped = true
	return t
}

// Name returns the test name
func (t Test[E]) Name() string { return t.name }

// SkipReason returns the permanent skip reason and whether the test is skipped
func (t Test[E]) SkipReason() (string, bool) { return t.skipReason, t.skipped }

// Suite is a named, ordered list of tests sharing setup and teardown
type Suite[E any] struct {
	name     string
	tests    []Test[E]
	setup    SetupFunc[E]
	teardown TeardownFunc[E]
}

// New creates a suite without setup or teardown. It can only run when E is
// None or another zero-size struct type.
func New[E any](name string, tests ...Test[E]) *Suite[E] {
	return &Suite[E]{name: name, tests: tests}
}

// WithFixture creates a suite whose tests run against the environment built by setup.
// teardown may be nil.
func WithFixture[E any](name string, setup SetupFunc[E], teardown TeardownFunc[E], tests ...Test[E]) *Suite[E] {
	return &Suite[E]{name: name, tests: tests, setup: setup, teardown: teardown}
}

// Name returns the suite name
func (s *Suite[E]) Name() string { return s.name }

// Len returns the number of declared tests
func (s *Suite[E]) Len() int { return len(s.tests) }

// TestNames returns the test names in declaration order
func (s *Suite[E]) TestNames() []string {
	names := make([]string, len(s.tests))
	for i, t := range s.tests {
		names[i] = t.name
	}
	return names
}

// isTrivial reports whether E is a zero-size struct, which needs no setup
func isTrivial[E any]() bool {
	t := reflect.TypeOf((*E)(nil)).Elem()
	return t.Kind() == reflect.Struct && t.Size() == 0
}
