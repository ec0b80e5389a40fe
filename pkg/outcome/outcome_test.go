package outcome

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func failN(n int, prefix string) Outcome {
	acc := Pass()
	for i := 0; i < n; i++ {
		acc = Combine(acc, Fail(prefix+string(rune('a'+i)), Here()))
	}
	return acc
}

func TestZeroValueIsPass(t *testing.T) {
	var o Outcome
	assert.True(t, o.IsPass())
	assert.Equal(t, KindPass, o.Kind())
	assert.Nil(t, o.Failures())
	assert.Empty(t, o.Reason())
}

func TestConstructors(t *testing.T) {
	loc := Location{File: "/src/math_test.go", Line: 12}

	t.Run("fail carries message only", func(t *testing.T) {
		o := Fail("boom", loc)
		require.True(t, o.IsFail())
		fs := o.Failures()
		require.Len(t, fs, 1)
		assert.Equal(t, "boom", fs[0].Message)
		assert.Equal(t, loc, fs[0].Location)
		_, _, ok := fs[0].Detail()
		assert.False(t, ok)
	})

	t.Run("failWith carries both representations", func(t *testing.T) {
		o := FailWith("not equal", "4", "5", loc)
		fs := o.Failures()
		require.Len(t, fs, 1)
		exp, act, ok := fs[0].Detail()
		require.True(t, ok)
		assert.Equal(t, "4", exp)
		assert.Equal(t, "5", act)
		assert.Equal(t, "math_test.go:12: not equal (expected 4, actual 5)", fs[0].String())
	})

	t.Run("skip carries reason", func(t *testing.T) {
		o := Skip("wip")
		assert.True(t, o.IsSkip())
		assert.Equal(t, "wip", o.Reason())
		assert.Nil(t, o.Failures())
		assert.Equal(t, "skip: wip", o.String())
	})
}

func TestFailuresReturnsCopy(t *testing.T) {
	o := Fail("original", Location{})
	fs := o.Failures()
	fs[0].Message = "mutated"
	assert.Equal(t, "original", o.Failures()[0].Message)
}

func TestCombineIdentity(t *testing.T) {
	cases := []struct {
		name string
		o    Outcome
	}{
		{"pass", Pass()},
		{"fail", FailWith("x", "1", "2", Location{Line: 3})},
		{"skip", Skip("later")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.o, Combine(Pass(), tc.o))
			assert.Equal(t, tc.o, Combine(tc.o, Pass()))
		})
	}
}

func TestCombineSkipDominates(t *testing.T) {
	f := Fail("broken", Location{})

	assert.Equal(t, Skip("r"), Combine(f, Skip("r")))
	assert.Equal(t, Skip("r"), Combine(Skip("r"), f))
	assert.Equal(t, Skip("r"), Combine(Pass(), Skip("r")))
	assert.Equal(t, Skip("r"), Combine(Skip("r"), Pass()))
}

// Two skips with different reasons keep the first operand's reason. The rule
// is a convention, so Combine is not commutative here and this test pins it.
func TestCombineTwoSkipsFirstReasonWins(t *testing.T) {
	a, b := Skip("first"), Skip("second")

	assert.Equal(t, "first", Combine(a, b).Reason())
	assert.Equal(t, "second", Combine(b, a).Reason())
	assert.NotEqual(t, Combine(a, b), Combine(b, a))
}

func TestCombineConcatenatesInOrder(t *testing.T) {
	a := Combine(Fail("a1", Location{}), Fail("a2", Location{}))
	b := Fail("b1", Location{})

	got := Combine(a, b).Failures()
	require.Len(t, got, 3)
	assert.Equal(t, []string{"a1", "a2", "b1"}, messages(got))

	// operands stay untouched
	assert.Equal(t, 2, a.FailureCount())
	assert.Equal(t, 1, b.FailureCount())
}

func TestCombineAll(t *testing.T) {
	t.Run("empty sequence is pass", func(t *testing.T) {
		assert.True(t, CombineAll().IsPass())
	})

	t.Run("sums failure counts in order", func(t *testing.T) {
		counts := []int{1, 3, 2}
		var outcomes []Outcome
		var want []string
		for i, n := range counts {
			prefix := strings.Repeat("x", i+1)
			outcomes = append(outcomes, failN(n, prefix))
			for j := 0; j < n; j++ {
				want = append(want, prefix+string(rune('a'+j)))
			}
		}
		outcomes = append(outcomes, Pass())

		got := CombineAll(outcomes...)
		require.True(t, got.IsFail())
		assert.Equal(t, 6, got.FailureCount())
		assert.Equal(t, want, messages(got.Failures()))
	})

	t.Run("first skip short-circuits the result", func(t *testing.T) {
		got := CombineAll(Fail("a", Location{}), Skip("one"), Fail("b", Location{}), Skip("two"))
		assert.Equal(t, Skip("one"), got)
	})

	t.Run("all pass", func(t *testing.T) {
		assert.True(t, CombineAll(Pass(), Pass(), Pass()).IsPass())
	})
}

func TestSkipIfAndUnless(t *testing.T) {
	assert.Equal(t, Skip("ci"), SkipIf(true, "ci"))
	assert.Equal(t, Pass(), SkipIf(false, "ci"))
	assert.Equal(t, Pass(), SkipUnless(true, "needs db"))
	assert.Equal(t, Skip("needs db"), SkipUnless(false, "needs db"))
}

func TestHereReportsCallerLine(t *testing.T) {
	loc := Here()
	assert.True(t, strings.HasSuffix(loc.File, "outcome_test.go"))
	assert.Greater(t, loc.Line, 0)
	assert.Contains(t, loc.Func, "TestHereReportsCallerLine")
	assert.Equal(t, "<unknown>", Location{}.String())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "pass", KindPass.String())
	assert.Equal(t, "fail", KindFail.String())
	assert.Equal(t, "skip", KindSkip.String())
	assert.Equal(t, "unknown", Kind(9).String())
}

func messages(fs []Failure) []string {
	out := make([]string, 0, len(fs))
	for _, f := range fs {
		out = append(out, f.Message)
	}
	return out
}
