package selfcheck

import (
	"gtp/pkg/assert"
	"gtp/pkg/outcome"
	"gtp/pkg/scratch"
	"gtp/pkg/suite"
)

func outcomeSuite() *suite.Suite[suite.None] {
	return suite.New("outcome",
		suite.NewTest("pass is the identity", func(a *scratch.Arena, _ suite.None) outcome.Outcome {
			f := outcome.Fail("x", outcome.Location{})
			return outcome.CombineAll(
				assert.True(a, outcome.Combine(outcome.Pass(), outcome.Pass()).IsPass(), "pass+pass"),
				assert.Equal(a, 1, outcome.Combine(outcome.Pass(), f).FailureCount(), "pass+fail"),
				assert.Equal(a, 1, outcome.Combine(f, outcome.Pass()).FailureCount(), "fail+pass"),
			)
		}),
		suite.NewTest("skip dominates", func(a *scratch.Arena, _ suite.None) outcome.Outcome {
			f := outcome.Fail("x", outcome.Location{})
			return outcome.CombineAll(
				assert.Equal(a, "first", outcome.Combine(outcome.Skip("first"), outcome.Skip("second")).Reason(), "first skip wins"),
				assert.True(a, outcome.Combine(f, outcome.Skip("s")).IsSkip(), "fail+skip"),
				assert.True(a, outcome.Combine(outcome.Skip("s"), f).IsSkip(), "skip+fail"),
			)
		}),
		suite.NewTest("failures concatenate in order", func(a *scratch.Arena, _ suite.None) outcome.Outcome {
			combined := outcome.CombineAll(
				outcome.Fail("one", outcome.Location{}),
				outcome.Pass(),
				outcome.Fail("two", outcome.Location{}),
				outcome.Fail("three", outcome.Location{}),
			)
			var messages []string
			for _, f := range combined.Failures() {
				messages = append(messages, f.Message)
			}
			return assert.DeepEqual(a, []string{"one", "two", "three"}, messages, "failure order")
		}),
		suite.NewTest("empty combineAll passes", func(a *scratch.Arena, _ suite.None) outcome.Outcome {
			return assert.True(a, outcome.CombineAll().IsPass(), "combineAll()")
		}),
		suite.NewTest("zero value is pass", func(a *scratch.Arena, _ suite.None) outcome.Outcome {
			var zero outcome.Outcome
			return assert.Equal(a, outcome.KindPass, zero.Kind(), "zero outcome")
		}),
	)
}
