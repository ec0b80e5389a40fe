package assert

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"gtp/pkg/outcome"
	"gtp/pkg/scratch"
)

type point struct {
	X, Y int
}

var errNotFound = errors.New("not found")

type queryError struct{ query string }

func (e *queryError) Error() string { return "query failed: " + e.query }

func TestAssertions(t *testing.T) {
	a := scratch.Unbounded()
	var nilPtr *point
	var nilErr *queryError

	tests := []struct {
		name     string
		got      outcome.Outcome
		pass     bool
		expected string
		actual   string
	}{
		{name: "equal ints", got: Equal(a, 4, 2+2, "sum"), pass: true},
		{name: "unequal ints", got: Equal(a, 4, 2+3, "sum"), expected: "4", actual: "5"},
		{name: "unequal strings are quoted", got: Equal(a, "a", "b", "str"), expected: `"a"`, actual: `"b"`},
		{name: "not equal", got: NotEqual(a, 1, 2, "ne"), pass: true},
		{name: "not equal fails", got: NotEqual(a, 1, 1, "ne"), expected: "not 1", actual: "1"},
		{name: "true", got: True(a, true, "t"), pass: true},
		{name: "true fails", got: True(a, false, "t"), expected: "true", actual: "false"},
		{name: "false", got: False(a, false, "f"), pass: true},
		{name: "false fails", got: False(a, true, "f"), expected: "false", actual: "true"},
		{name: "nil", got: Nil(a, nil, "n"), pass: true},
		{name: "typed nil", got: Nil(a, nilPtr, "n"), pass: true},
		{name: "nil fails", got: Nil(a, 3, "n"), expected: "<nil>", actual: "3"},
		{name: "not nil", got: NotNil(a, &point{}, "nn"), pass: true},
		{name: "not nil fails", got: NotNil(a, nilPtr, "nn"), expected: "not <nil>", actual: "<nil>"},
		{name: "no error", got: NoError(a, nil, "ne"), pass: true},
		{name: "no error fails", got: NoError(a, errNotFound, "ne"), expected: "no error", actual: "not found"},
		{name: "no error fails on typed nil", got: NoError(a, error(nilErr), "ne"), expected: "no error", actual: "<nil>"},
		{name: "error", got: Error(a, errNotFound, "e"), pass: true},
		{name: "error fails", got: Error(a, nil, "e"), expected: "an error", actual: "<nil>"},
		{name: "error is wrapped", got: ErrorIs(a, fmt.Errorf("load: %w", errNotFound), errNotFound, "is"), pass: true},
		{name: "error is fails", got: ErrorIs(a, errors.New("other"), errNotFound, "is"), expected: "error matching not found", actual: "other"},
		{name: "error is typed nil target", got: ErrorIs(a, errNotFound, error(nilErr), "is"), expected: "error matching <nil>", actual: "not found"},
		{name: "contains", got: Contains(a, "hello world", "wor", "c"), pass: true},
		{name: "contains fails", got: Contains(a, "hello", "xyz", "c"), expected: `string containing "xyz"`, actual: `"hello"`},
		{name: "len", got: Len(a, []int{1, 2, 3}, 3, "l"), pass: true},
		{name: "len map", got: Len(a, map[string]int{"a": 1}, 1, "l"), pass: true},
		{name: "len fails", got: Len(a, "ab", 3, "l"), expected: "length 3", actual: "length 2"},
		{name: "len unsupported", got: Len(a, 5, 1, "l"), expected: "length 1", actual: "int has no length"},
		{name: "greater", got: Greater(a, 3, 2, "g"), pass: true},
		{name: "greater fails", got: Greater(a, 2, 3, "g"), expected: "greater than 3", actual: "2"},
		{name: "less", got: Less(a, "a", "b", "l"), pass: true},
		{name: "less fails", got: Less(a, 2.5, 1.0, "l"), expected: "less than 1", actual: "2.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.pass {
				require.True(t, tt.got.IsPass(), "unexpected outcome %s", tt.got)
				return
			}
			require.True(t, tt.got.IsFail(), "unexpected outcome %s", tt.got)
			fs := tt.got.Failures()
			require.Len(t, fs, 1)
			exp, act, ok := fs[0].Detail()
			require.True(t, ok)
			require.Equal(t, tt.expected, exp)
			require.Equal(t, tt.actual, act)
		})
	}
}

func TestFailureLocationIsCaller(t *testing.T) {
	a := scratch.Unbounded()
	o := Equal(a, 1, 2, "mismatch")

	fs := o.Failures()
	require.Len(t, fs, 1)
	require.True(t, strings.HasSuffix(fs[0].Location.File, "assert_test.go"))
	require.Contains(t, fs[0].Location.Func, "TestFailureLocationIsCaller")
	require.Equal(t, "mismatch", fs[0].Message)
}

func TestEmptyMessageGetsDefault(t *testing.T) {
	o := True(scratch.Unbounded(), false, "")
	require.Equal(t, "assertion failed", o.Failures()[0].Message)
}

func TestDeepEqual(t *testing.T) {
	a := scratch.Unbounded()

	t.Run("equal structs", func(t *testing.T) {
		require.True(t, DeepEqual(a, point{1, 2}, point{1, 2}, "p").IsPass())
	})

	t.Run("diff is the actual text", func(t *testing.T) {
		o := DeepEqual(a, point{1, 2}, point{1, 3}, "p")
		require.True(t, o.IsFail())
		_, act, _ := o.Failures()[0].Detail()
		require.Contains(t, act, "Y:")
		require.True(t, strings.HasSuffix(o.Failures()[0].Location.File, "assert_test.go"))
	})

	t.Run("unexported fields fail instead of panicking", func(t *testing.T) {
		o := DeepEqual(a, scratch.New(1), scratch.New(2), "arena")
		require.True(t, o.IsFail())
		_, act, _ := o.Failures()[0].Detail()
		require.Contains(t, act, "comparison panicked")
	})
}

// A spent arena must not abort the assertion; the detail text degrades instead.
func TestExhaustedArenaDegradesDetail(t *testing.T) {
	a := scratch.New(1)
	o := Equal(a, "expected value", "actual value", "strings")

	require.True(t, o.IsFail())
	exp, act, ok := o.Failures()[0].Detail()
	require.True(t, ok)
	require.Equal(t, scratch.Placeholder, exp)
	require.Equal(t, scratch.Placeholder, act)
}

func TestOperandChargedOnce(t *testing.T) {
	a := scratch.New(len(`not "abc"`) + len(`"abc"`))
	o := NotEqual(a, "abc", "abc", "ne")

	require.True(t, o.IsFail())
	exp, act, ok := o.Failures()[0].Detail()
	require.True(t, ok)
	require.Equal(t, `not "abc"`, exp)
	require.Equal(t, `"abc"`, act)
}

func TestAccumulateAcrossAssertions(t *testing.T) {
	a := scratch.Unbounded()
	got := outcome.CombineAll(
		Equal(a, 1, 1, "first"),
		Equal(a, 1, 2, "second"),
		True(a, false, "third"),
	)

	require.True(t, got.IsFail())
	require.Equal(t, 2, got.FailureCount())
	require.Equal(t, "second", got.Failures()[0].Message)
	require.Equal(t, "third", got.Failures()[1].Message)
}
