// Package outcome models the result of a test or assertion as one of three
// states: Pass, Fail (with one or more Failure records) or Skip (with a reason).
//
// Outcomes are plain values. Assertions return them instead of panicking, and
// callers decide whether to accumulate them with Combine/CombineAll or return
// early on the first failure.
package outcome

import (
	"fmt"
	"strings"
)

// Kind is the tag of an Outcome
type Kind uint8

const (
	KindPass Kind = iota
	KindFail
	KindSkip
)

// String returns the lowercase name of the kind
func (k Kind) String() string {
	switch k {
	case KindPass:
		return "pass"
	case KindFail:
		return "fail"
	case KindSkip:
		return "skip"
	default:
		return "unknown"
	}
}

// Outcome is an immutable tagged value. The zero value is Pass.
type Outcome struct {
	kind     Kind
	failures []Failure
	reason   string
}

// Pass returns a passing outcome
func Pass() Outcome {
	return Outcome{kind: KindPass}
}

// Fail returns a failing outcome with a single failure carrying only a message
func Fail(message string, loc Location) Outcome {
	return Outcome{
		kind:     KindFail,
		failures: []Failure{{Message: message, Location: loc}},
	}
}

// FailWith returns a failing outcome whose failure carries expected and actual representations
func FailWith(message, expected, actual string, loc Location) Outcome {
	return Outcome{
		kind: KindFail,
		failures: []Failure{{
			Message:   message,
			Expected:  expected,
			Actual:    actual,
			HasDetail: true,
			Location:  loc,
		}},
	}
}

// Skip returns a skipped outcome with the given reason
func Skip(reason string) Outcome {
	return Outcome{kind: KindSkip, reason: reason}
}

// SkipIf returns Skip(reason) when cond holds, Pass otherwise
func SkipIf(cond bool, reason string) Outcome {
	if cond {
		return Skip(reason)
	}
	return Pass()
}

// SkipUnless returns Skip(reason) when cond does not hold, Pass otherwise
func SkipUnless(cond bool, reason string) Outcome {
	return SkipIf(!cond, reason)
}

// Kind returns the tag of the outcome
func (o Outcome) Kind() Kind { return o.kind }

// IsPass reports whether the outcome is Pass
func (o Outcome) IsPass() bool { return o.kind == KindPass }

// IsFail reports whether the outcome is Fail
func (o Outcome) IsFail() bool { return o.kind == KindFail }

// IsSkip reports whether the outcome is Skip
func (o Outcome) IsSkip() bool { return o.kind == KindSkip }

// Failures returns a copy of the recorded failures in encounter order.
// It returns nil for Pass and Skip.
func (o Outcome) Failures() []Failure {
	if o.kind != KindFail || len(o.failures) == 0 {
		return nil
	}
	out := make([]Failure, len(o.failures))
	copy(out, o.failures)
	return out
}

// FailureCount returns the number of failures; zero unless Fail
func (o Outcome) FailureCount() int {
	if o.kind != KindFail {
		return 0
	}
	return len(o.failures)
}

// Reason returns the skip reason; empty unless Skip
func (o Outcome) Reason() string {
	if o.kind != KindSkip {
		return ""
	}
	return o.reason
}

// String renders the outcome on a single line
func (o Outcome) String() string {
	switch o.kind {
	case KindFail:
		msgs := make([]string, 0, len(o.failures))
		for _, f := range o.failures {
			msgs = append(msgs, f.Message)
		}
		return fmt.Sprintf("fail(%d): %s", len(o.failures), strings.Join(msgs, "; "))
	case KindSkip:
		return "skip: " + o.reason
	default:
		return "pass"
	}
}

// Combine merges two outcomes.
//
// A Skip on either side wins; when both are Skip the reason of a is kept, so
// Combine is not commutative across differing skip reasons. Two passes give a
// Pass. Otherwise the result is a Fail holding a's failures followed by b's.
func Combine(a, b Outcome) Outcome {
	if a.kind == KindSkip {
		return a
	}
	if b.kind == KindSkip {
		return b
	}
	if a.kind == KindPass && b.kind == KindPass {
		return Pass()
	}

	merged := make([]Failure, 0, a.FailureCount()+b.FailureCount())
	merged = append(merged, a.Failures()...)
	merged = append(merged, b.Failures()...)
	return Outcome{kind: KindFail, failures: merged}
}

// CombineAll left-folds Combine over outcomes starting from Pass.
// Every failure is kept unless a Skip appears, in which case the first Skip is the result.
func CombineAll(outcomes ...Outcome) Outcome {
	acc := Pass()
	for _, o := range outcomes {
		acc = Combine(acc, o)
	}
	return acc
}
