package selfcheck

import (
	"strings"

	"gtp/pkg/assert"
	"gtp/pkg/outcome"
	"gtp/pkg/scratch"
	"gtp/pkg/suite"
)

const smallArenaLimit = 64

func scratchSuite() *suite.Suite[*scratch.Arena] {
	return suite.WithFixture("scratch",
		func(*scratch.Arena) (*scratch.Arena, error) {
			return scratch.New(smallArenaLimit), nil
		},
		func(small *scratch.Arena) {
			small.Reset()
		},
		suite.NewTest("sprintf charges the budget", func(a *scratch.Arena, small *scratch.Arena) outcome.Outcome {
			m := small.Mark()
			defer small.Release(m)

			s := small.Sprintf("%d-%d", 12, 34)
			return outcome.CombineAll(
				assert.Equal(a, "12-34", s, "formatted"),
				assert.Equal(a, 5, small.Used()-int(m), "bytes charged"),
			)
		}),
		suite.NewTest("exhaustion yields the placeholder", func(a *scratch.Arena, small *scratch.Arena) outcome.Outcome {
			m := small.Mark()
			defer small.Release(m)

			got := assert.Equal(small, strings.Repeat("x", smallArenaLimit), "y", "too big")
			exp, _, _ := got.Failures()[0].Detail()
			return assert.Equal(a, scratch.Placeholder, exp, "expected text")
		}),
		suite.NewTest("release returns to the mark", func(a *scratch.Arena, small *scratch.Arena) outcome.Outcome {
			before := small.Used()
			m := small.Mark()
			_ = small.Sprintf("some detail")
			small.Release(m)
			return assert.Equal(a, before, small.Used(), "used after release")
		}),
		suite.NewTest("nil arena is unbounded", func(a *scratch.Arena, _ *scratch.Arena) outcome.Outcome {
			var none *scratch.Arena
			return assert.Equal(a, `"free"`, none.Repr("free"), "repr on nil arena")
		}),
	)
}
