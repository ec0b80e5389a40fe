package fixtures

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"gtp/internal/config"
	"gtp/pkg/scratch"
)

// ConnectTimeout bounds connecting and provisioning during suite setup
const ConnectTimeout = 5 * time.Second

// DatabaseManager provisions the test database and provides it as a suite environment
type DatabaseManager struct {
	config *config.Config
	logger *zap.Logger
}

// NewDatabaseManager creates a new DatabaseManager
func NewDatabaseManager(cfg *config.Config, logger *zap.Logger) *DatabaseManager {
	return &DatabaseManager{config: cfg, logger: logger}
}

// CheckAndCreateDatabase creates the test database if it does not exist.
// It reports whether the database was created.
func (dm *DatabaseManager) CheckAndCreateDatabase(ctx context.Context) (bool, error) {
	dbName := dm.config.GetDatabaseName()
	if !IsValidDatabaseName(dbName) {
		return false, fmt.Errorf("invalid database name: %s", dbName)
	}

	// Connect to MySQL server (without specifying database)
	db, err := sql.Open("mysql", dm.config.GetDSN(""))
	if err != nil {
		return false, fmt.Errorf("failed to connect to database server: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return false, fmt.Errorf("failed to ping database server: %w", err)
	}

	exists, err := databaseExists(ctx, db, dbName)
	if err != nil {
		return false, fmt.Errorf("failed to check database %s: %w", dbName, err)
	}
	if exists {
		dm.logger.Debug("database exists", zap.String("database", dbName))
		return false, nil
	}

	query := fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", dbName)
	if _, err := db.ExecContext(ctx, query); err != nil {
		return false, fmt.Errorf("failed to create database %s: %w", dbName, err)
	}
	dm.logger.Info("database created", zap.String("database", dbName))
	return true, nil
}

// Open connects to the test database and checks the connection
func (dm *DatabaseManager) Open(ctx context.Context) (*sql.DB, error) {
	dbName := dm.config.GetDatabaseName()
	db, err := sql.Open("mysql", dm.config.GetDSN(dbName))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dbName, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", dbName, err)
	}
	return db, nil
}

// Setup provisions and opens the test database. It is a suite.SetupFunc[*sql.DB].
func (dm *DatabaseManager) Setup(_ *scratch.Arena) (*sql.DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), ConnectTimeout)
	defer cancel()

	if _, err := dm.CheckAndCreateDatabase(ctx); err != nil {
		return nil, err
	}
	return dm.Open(ctx)
}

// Teardown closes the connection opened by Setup
func (dm *DatabaseManager) Teardown(db *sql.DB) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		dm.logger.Warn("close database", zap.Error(err))
	}
}

func databaseExists(ctx context.Context, db *sql.DB, dbName string) (bool, error) {
	var exists bool
	query := "SELECT EXISTS(SELECT SCHEMA_NAME FROM INFORMATION_SCHEMA.SCHEMATA WHERE SCHEMA_NAME = ?)"
	err := db.QueryRowContext(ctx, query, dbName).Scan(&exists)
	return exists, err
}

// IsValidDatabaseName reports whether name is safe to interpolate into CREATE DATABASE
func IsValidDatabaseName(name string) bool {
	if len(name) == 0 || len(name) > 64 {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '$':
		default:
			return false
		}
	}
	upper := strings.ToUpper(name)
	for _, word := range []string{"DROP", "DELETE", "TRUNCATE"} {
		if strings.Contains(upper, word) {
			return false
		}
	}
	return true
}
