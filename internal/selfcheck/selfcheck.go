// Package selfcheck holds the suites gtp ships with. They exercise the
// outcome algebra, the assertion library, the scratch arena and the report
// storage through the same runner user suites go through.
package selfcheck

import (
	"go.uber.org/zap"

	"gtp/internal/config"
	"gtp/internal/fixtures"
	"gtp/pkg/suite"
)

// Suites returns the built-in suites in run order. The mysql suite is only
// registered when a database is configured.
func Suites(cfg *config.Config, logger *zap.Logger) []suite.Handle {
	handles := []suite.Handle{
		suite.Erase(outcomeSuite()),
		suite.Erase(assertSuite()),
		suite.Erase(scratchSuite()),
		suite.Erase(reportSuite()),
		suite.Erase(pendingSuite(cfg)),
	}
	if cfg.Database.Enabled {
		dm := fixtures.NewDatabaseManager(cfg, logger)
		handles = append(handles, suite.Erase(mysqlSuite(cfg, dm)))
	}
	return handles
}
