// Package scratch provides the explicit allocation context threaded through
// tests and assertions. An Arena accounts the text built for failure details
// against a byte budget; when the budget is spent, formatting degrades to
// Placeholder instead of failing the test.
//
// Arenas are scoped with Mark/Release: a suite invocation marks the arena on
// entry and releases back to the mark when it returns. Arenas are not safe
// for concurrent use.
package scratch

import (
	"errors"
	"fmt"
)

// Placeholder replaces detail text that could not be formatted within budget
const Placeholder = "<detail unavailable: scratch exhausted>"

// Mark is a position in an arena that can be released back to
type Mark int

// Arena is a bounded scratch-memory context
type Arena struct {
	limit int
	used  int
}

// New creates an arena with the given byte budget. A limit <= 0 means unbounded.
func New(limit int) *Arena {
	if limit < 0 {
		limit = 0
	}
	return &Arena{limit: limit}
}

// Unbounded creates an arena without a budget
func Unbounded() *Arena {
	return &Arena{}
}

// Limit returns the byte budget, 0 when unbounded
func (a *Arena) Limit() int {
	if a == nil {
		return 0
	}
	return a.limit
}

// Used returns the bytes charged since creation or the last Reset
func (a *Arena) Used() int {
	if a == nil {
		return 0
	}
	return a.used
}

// Mark returns the current position
func (a *Arena) Mark() Mark {
	if a == nil {
		return 0
	}
	return Mark(a.used)
}

// Release frees everything charged after m
func (a *Arena) Release(m Mark) {
	if a == nil {
		return
	}
	if int(m) < a.used && m >= 0 {
		a.used = int(m)
	}
}

// Reset frees everything
func (a *Arena) Reset() {
	a.Release(0)
}

// Alloc charges n bytes against the budget
func (a *Arena) Alloc(n int) error {
	if a == nil || n <= 0 {
		return nil
	}
	if a.limit > 0 && a.used+n > a.limit {
		return ErrExhausted
	}
	a.used += n
	return nil
}

// ErrExhausted is returned by Alloc when the budget would be exceeded
var ErrExhausted = errors.New("scratch arena exhausted")

// Sprintf formats like fmt.Sprintf and charges the result against the budget.
// It returns Placeholder when the result does not fit.
func (a *Arena) Sprintf(format string, args ...any) string {
	s := fmt.Sprintf(format, args...)
	if err := a.Alloc(len(s)); err != nil {
		return Placeholder
	}
	return s
}

// Repr renders an operand for failure detail and charges it against the budget.
// See Text for the rendering rules.
func (a *Arena) Repr(v any) string {
	return a.Sprintf("%s", Text(v))
}

// Text renders an operand without charging anything: strings are quoted and
// everything else uses %v, so errors and Stringers print their own text.
// fmt guards nil receivers and panicking methods.
func Text(v any) string {
	switch x := v.(type) {
	case nil:
		return "<nil>"
	case string:
		return fmt.Sprintf("%q", x)
	default:
		return fmt.Sprintf("%v", x)
	}
}
