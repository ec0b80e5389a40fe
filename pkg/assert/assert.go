// Package assert provides assertions that return outcome values.
//
// Every assertion takes the scratch arena of the running suite, its operands
// and a message, and returns exactly one outcome: Pass, or a Fail built with
// outcome.FailWith carrying expected/actual text and the caller's location.
// Nothing here panics or stops the test; compose results with
// outcome.CombineAll or return early on the first failure.
package assert

import (
	"errors"
	"reflect"
	"strings"

	"github.com/google/go-cmp/cmp"

	"gtp/pkg/outcome"
	"gtp/pkg/scratch"
)

// Ordered is the set of types Greater and Less accept
type Ordered interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64 | ~string
}

// Equal checks expected == actual
func Equal[T comparable](a *scratch.Arena, expected, actual T, msg string) outcome.Outcome {
	if expected == actual {
		return outcome.Pass()
	}
	return fail(msg, a.Repr(expected), a.Repr(actual))
}

// NotEqual checks expected != actual
func NotEqual[T comparable](a *scratch.Arena, unexpected, actual T, msg string) outcome.Outcome {
	if unexpected != actual {
		return outcome.Pass()
	}
	return fail(msg, a.Sprintf("not %s", scratch.Text(unexpected)), a.Repr(actual))
}

// DeepEqual compares arbitrary values with go-cmp. The actual text of a
// failure is the cmp diff (-expected +actual).
func DeepEqual(a *scratch.Arena, expected, actual any, msg string, opts ...cmp.Option) (res outcome.Outcome) {
	loc := outcome.Caller(1)

	// cmp panics on unexported fields without an option
	defer func() {
		if r := recover(); r != nil {
			res = failAt(msg, a.Repr(expected), a.Sprintf("comparison panicked: %v", r), loc)
		}
	}()

	diff := cmp.Diff(expected, actual, opts...)
	if diff == "" {
		return outcome.Pass()
	}
	return failAt(msg, a.Repr(expected), a.Sprintf("%s", strings.TrimSpace(diff)), loc)
}

// True checks cond holds
func True(a *scratch.Arena, cond bool, msg string) outcome.Outcome {
	if cond {
		return outcome.Pass()
	}
	return fail(msg, "true", "false")
}

// False checks cond does not hold
func False(a *scratch.Arena, cond bool, msg string) outcome.Outcome {
	if !cond {
		return outcome.Pass()
	}
	return fail(msg, "false", "true")
}

// Nil checks v is nil, including typed nils inside interfaces
func Nil(a *scratch.Arena, v any, msg string) outcome.Outcome {
	if isNil(v) {
		return outcome.Pass()
	}
	return fail(msg, "<nil>", a.Repr(v))
}

// NotNil checks v is not nil
func NotNil(a *scratch.Arena, v any, msg string) outcome.Outcome {
	if !isNil(v) {
		return outcome.Pass()
	}
	return fail(msg, "not <nil>", "<nil>")
}

// NoError checks err is nil
func NoError(a *scratch.Arena, err error, msg string) outcome.Outcome {
	if err == nil {
		return outcome.Pass()
	}
	return fail(msg, "no error", a.Repr(err))
}

// Error checks err is not nil
func Error(a *scratch.Arena, err error, msg string) outcome.Outcome {
	if err != nil {
		return outcome.Pass()
	}
	return fail(msg, "an error", "<nil>")
}

// ErrorIs checks errors.Is(err, target)
func ErrorIs(a *scratch.Arena, err, target error, msg string) outcome.Outcome {
	if errors.Is(err, target) {
		return outcome.Pass()
	}
	return fail(msg, a.Sprintf("error matching %s", scratch.Text(target)), a.Repr(err))
}

// Contains checks s contains substr
func Contains(a *scratch.Arena, s, substr, msg string) outcome.Outcome {
	if strings.Contains(s, substr) {
		return outcome.Pass()
	}
	return fail(msg, a.Sprintf("string containing %q", substr), a.Repr(s))
}

// Len checks the length of a slice, map, string, array or channel
func Len(a *scratch.Arena, v any, n int, msg string) outcome.Outcome {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.String, reflect.Array, reflect.Chan:
		if rv.Len() == n {
			return outcome.Pass()
		}
		return fail(msg, a.Sprintf("length %d", n), a.Sprintf("length %d", rv.Len()))
	default:
		return fail(msg, a.Sprintf("length %d", n), a.Sprintf("%T has no length", v))
	}
}

// Greater checks x > y
func Greater[T Ordered](a *scratch.Arena, x, y T, msg string) outcome.Outcome {
	if x > y {
		return outcome.Pass()
	}
	return fail(msg, a.Sprintf("greater than %s", scratch.Text(y)), a.Repr(x))
}

// Less checks x < y
func Less[T Ordered](a *scratch.Arena, x, y T, msg string) outcome.Outcome {
	if x < y {
		return outcome.Pass()
	}
	return fail(msg, a.Sprintf("less than %s", scratch.Text(y)), a.Repr(x))
}

// fail builds the failure with the location of the assertion's caller
func fail(msg, expected, actual string) outcome.Outcome {
	return failAt(msg, expected, actual, outcome.Caller(2))
}

func failAt(msg, expected, actual string, loc outcome.Location) outcome.Outcome {
	if msg == "" {
		msg = "assertion failed"
	}
	return outcome.FailWith(msg, expected, actual, loc)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}
