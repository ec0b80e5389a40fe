package selfcheck

import (
	"gtp/internal/config"
	"gtp/pkg/outcome"
	"gtp/pkg/scratch"
	"gtp/pkg/suite"
)

func pendingSuite(cfg *config.Config) *suite.Suite[suite.None] {
	return suite.New("pending",
		suite.SkipTest[suite.None]("parallel suites", "wip"),
		suite.NewTest("database configured", func(*scratch.Arena, suite.None) outcome.Outcome {
			return outcome.SkipUnless(cfg.Database.Enabled, "DB_HOST not set")
		}),
	)
}
