package selfcheck

import (
	"errors"
	"fmt"
	"io/fs"

	"gtp/pkg/assert"
	"gtp/pkg/outcome"
	"gtp/pkg/scratch"
	"gtp/pkg/suite"
)

func assertSuite() *suite.Suite[suite.None] {
	return suite.New("assert",
		suite.NewTest("equal reports expected and actual", func(a *scratch.Arena, _ suite.None) outcome.Outcome {
			got := assert.Equal(a, 4, 2+3, "sum")
			failures := got.Failures()
			if len(failures) != 1 {
				return outcome.Fail(fmt.Sprintf("expected one failure, got %d", len(failures)), outcome.Here())
			}
			exp, act, ok := failures[0].Detail()
			return outcome.CombineAll(
				assert.True(a, ok, "detail present"),
				assert.Equal(a, "4", exp, "expected text"),
				assert.Equal(a, "5", act, "actual text"),
				assert.Equal(a, "sum", failures[0].Message, "message"),
			)
		}),
		suite.NewTest("equal records the caller", func(a *scratch.Arena, _ suite.None) outcome.Outcome {
			here := outcome.Here()
			got := assert.Equal(a, "a", "b", "mismatch")
			loc := got.Failures()[0].Location
			return outcome.CombineAll(
				assert.Equal(a, here.File, loc.File, "file"),
				assert.Equal(a, here.Line+1, loc.Line, "line"),
			)
		}),
		suite.NewTest("deep equal", func(a *scratch.Arena, _ suite.None) outcome.Outcome {
			type point struct{ X, Y int }
			return outcome.CombineAll(
				assert.DeepEqual(a, map[string]point{"p": {1, 2}}, map[string]point{"p": {1, 2}}, "maps"),
				assert.True(a, assert.DeepEqual(a, []int{1}, []int{2}, "slices").IsFail(), "slices differ"),
			)
		}),
		suite.NewTest("errors", func(a *scratch.Arena, _ suite.None) outcome.Outcome {
			wrapped := fmt.Errorf("open: %w", fs.ErrNotExist)
			return outcome.CombineAll(
				assert.NoError(a, nil, "nil error"),
				assert.Error(a, errors.New("x"), "non-nil error"),
				assert.ErrorIs(a, wrapped, fs.ErrNotExist, "wrapped"),
				assert.Nil(a, (*int)(nil), "typed nil"),
				assert.NotNil(a, &struct{}{}, "pointer"),
			)
		}),
		suite.NewTest("collections and order", func(a *scratch.Arena, _ suite.None) outcome.Outcome {
			return outcome.CombineAll(
				assert.Contains(a, "scratch arena", "arena", "substring"),
				assert.Len(a, []string{"a", "b"}, 2, "slice length"),
				assert.Greater(a, 3, 2, "greater"),
				assert.Less(a, 1.5, 2.5, "less"),
				assert.NotEqual(a, "a", "b", "different"),
				assert.False(a, false, "false"),
			)
		}),
	)
}
