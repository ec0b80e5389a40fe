package selfcheck

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"gtp/internal/config"
	"gtp/internal/domain"
	"gtp/internal/storage"
	"gtp/pkg/assert"
	"gtp/pkg/outcome"
	"gtp/pkg/scratch"
	"gtp/pkg/suite"
)

type reportEnv struct {
	dir   string
	store *storage.JSONStorage
}

func reportSuite() *suite.Suite[reportEnv] {
	return suite.WithFixture("report",
		func(*scratch.Arena) (reportEnv, error) {
			dir, err := os.MkdirTemp("", "gtp-selfcheck-")
			if err != nil {
				return reportEnv{}, fmt.Errorf("create temp dir: %w", err)
			}
			cfg := config.New()
			cfg.ProjectPath = dir
			return reportEnv{dir: dir, store: storage.NewJSONStorage(cfg)}, nil
		},
		func(env reportEnv) {
			os.RemoveAll(env.dir)
		},
		suite.NewTest("round trip keeps counts and details", func(a *scratch.Arena, env reportEnv) outcome.Outcome {
			outcomes := []suite.SuiteOutcome{{
				Name:      "sample",
				TestCount: 3,
				Elapsed:   time.Millisecond,
				Tests: []suite.TestOutcome{
					{Name: "ok", Outcome: outcome.Pass()},
					{Name: "bad", Outcome: outcome.FailWith("mismatch", "1", "2", outcome.Location{File: "s.go", Line: 4})},
					{Name: "later", Outcome: outcome.Skip("wip")},
				},
			}}
			summary := suite.Summarize(outcomes, 2*time.Millisecond)
			out := domain.NewTestResultsOutput(uuid.NewString(), summary, outcomes, time.Now())
			if err := env.store.Save(out); err != nil {
				return outcome.Fail(err.Error(), outcome.Here())
			}

			loaded, err := env.store.Load()
			if err != nil {
				return outcome.Fail(err.Error(), outcome.Here())
			}
			rebuilt := loaded.SuiteOutcomes()
			return outcome.CombineAll(
				assert.Equal(a, summary, loaded.Summary(), "summary"),
				assert.Len(a, rebuilt, 1, "suites"),
				assert.Equal(a, outcomes[0].Counts(), rebuilt[0].Counts(), "counts"),
				assert.DeepEqual(a, outcomes[0].Tests[1].Outcome.Failures(), rebuilt[0].Tests[1].Outcome.Failures(), "failure detail"),
				assert.Equal(a, "wip", rebuilt[0].Tests[2].Outcome.Reason(), "skip reason"),
			)
		}),
		suite.NewTest("junit output is written", func(a *scratch.Arena, env reportEnv) outcome.Outcome {
			out := domain.NewTestResultsOutput(uuid.NewString(), suite.RunSummary{}, nil, time.Now())
			path := filepath.Join(env.dir, "junit.xml")
			if err := storage.NewJUnitWriter().Write(path, out); err != nil {
				return outcome.Fail(err.Error(), outcome.Here())
			}
			info, err := os.Stat(path)
			return outcome.CombineAll(
				assert.NoError(a, err, "stat junit file"),
				assert.True(a, err == nil && info.Size() > 0, "junit file not empty"),
			)
		}),
	)
}
