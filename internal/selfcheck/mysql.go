package selfcheck

import (
	"context"
	"database/sql"

	"gtp/internal/config"
	"gtp/internal/fixtures"
	"gtp/pkg/assert"
	"gtp/pkg/outcome"
	"gtp/pkg/scratch"
	"gtp/pkg/suite"
)

func mysqlSuite(cfg *config.Config, dm *fixtures.DatabaseManager) *suite.Suite[*sql.DB] {
	return suite.WithFixture("mysql", dm.Setup, dm.Teardown,
		suite.NewTest("connected to the test database", func(a *scratch.Arena, db *sql.DB) outcome.Outcome {
			var name string
			if err := db.QueryRowContext(context.Background(), "SELECT DATABASE()").Scan(&name); err != nil {
				return outcome.Fail(err.Error(), outcome.Here())
			}
			return assert.Equal(a, cfg.GetDatabaseName(), name, "current database")
		}),
		suite.NewTest("temporary table round trip", func(a *scratch.Arena, db *sql.DB) outcome.Outcome {
			ctx := context.Background()
			conn, err := db.Conn(ctx)
			if err != nil {
				return outcome.Fail(err.Error(), outcome.Here())
			}
			defer conn.Close()

			// temporary tables are per connection
			if _, err := conn.ExecContext(ctx, "CREATE TEMPORARY TABLE gtp_selfcheck (id INT PRIMARY KEY, label VARCHAR(32))"); err != nil {
				return outcome.Fail(err.Error(), outcome.Here())
			}
			if _, err := conn.ExecContext(ctx, "INSERT INTO gtp_selfcheck (id, label) VALUES (?, ?)", 1, "gtp"); err != nil {
				return outcome.Fail(err.Error(), outcome.Here())
			}
			var label string
			err = conn.QueryRowContext(ctx, "SELECT label FROM gtp_selfcheck WHERE id = ?", 1).Scan(&label)
			return outcome.CombineAll(
				assert.NoError(a, err, "select"),
				assert.Equal(a, "gtp", label, "label"),
			)
		}),
	)
}
