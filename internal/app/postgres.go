package app

import (
	"database/sql"
	"fmt"

	"github.com/guttosm/tradesync/config"
	"github.com/guttosm/tradesync/db"
	"github.com/guttosm/tradesync/internal/logger"
	goose "github.com/pressly/goose/v3"

	_ "github.com/lib/pq" // PostgreSQL driver for database/sql
)

// sqlOpener is an indirection for unit testing; defaults to sql.Open.
var sqlOpener = sql.Open

// InitPostgres opens and pings the scan journal database.
//
// The DSN is cfg.Postgres.URL when set, otherwise it is assembled from the
// individual Postgres fields. The handle is closed again if the ping fails.
//
// Example usage:
//
//	db, err := app.InitPostgres(config.AppConfig)
//	if err != nil {
//	    log.Fatalf("❌ failed to connect: %v", err)
//	}
//	defer db.Close()
func InitPostgres(cfg config.Config) (*sql.DB, error) {
	dsn := cfg.Postgres.URL
	if dsn == "" {
		dsn = fmt.Sprintf(
			"postgres://%s:%s@%s:%d/%s?sslmode=%s",
			cfg.Postgres.User,
			cfg.Postgres.Password,
			cfg.Postgres.Host,
			cfg.Postgres.Port,
			cfg.Postgres.DBName,
			cfg.Postgres.SSLMode,
		)
	}

	conn, err := sqlOpener("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	return conn, nil
}

// MigrateScanLog applies the embedded goose migrations.
func MigrateScanLog(conn *sql.DB) error {
	goose.SetBaseFS(db.Migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.Up(conn, db.MigrationsDir); err != nil {
		return fmt.Errorf("migrate scan_log: %w", err)
	}
	version, err := goose.GetDBVersion(conn)
	if err == nil {
		logger.L().Info().Int64("version", version).Msg("scan journal migrated")
	}
	return nil
}

// Indirections used by the app wiring; overridden in tests to avoid real connections.
var (
	postgresOpener = InitPostgres
	migrator       = MigrateScanLog
)
