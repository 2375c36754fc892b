package app

import (
	"database/sql"
	"fmt"

	"github.com/guttosm/tradesync/config"
	"github.com/guttosm/tradesync/internal/ingestion"
	"github.com/guttosm/tradesync/internal/service"
	"github.com/guttosm/tradesync/internal/storage"
)

// Components are the wired, transport-independent parts of the application.
type Components struct {
	Service service.TradesService
	Scans   storage.ScanLogRepository // nil when the scan journal is disabled
	DB      *sql.DB                   // nil when the scan journal is disabled
}

// Close stops the service and releases the database handle.
func (c *Components) Close() {
	c.Service.Close()
	if c.DB != nil {
		_ = c.DB.Close()
	}
}

// NewComponents builds the scanner, the optional scan journal and the trades
// service from cfg. It is shared by the HTTP server and the CLI commands.
func NewComponents(cfg config.Config) (*Components, error) {
	scanner := ingestion.NewScanner(cfg.Trades.Dir, ingestion.ScannerOptions{
		Extension:   cfg.Trades.Extension,
		HeaderLines: cfg.Trades.HeaderLines,
		Strict:      cfg.Trades.Strict,
		Parallel:    cfg.Trades.Parallel,
	})

	comps := &Components{}
	var journal storage.ScanLogRepository
	if cfg.ScanLog.Enabled {
		conn, err := postgresOpener(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize postgres: %w", err)
		}
		if err := migrator(conn); err != nil {
			_ = conn.Close()
			return nil, err
		}
		comps.DB = conn
		journal = storage.NewScanLogRepository(conn)
		comps.Scans = journal
	}

	comps.Service = service.NewTradesService(scanner, journal, service.Options{
		Debounce: cfg.Watch.Debounce,
		Buffer:   cfg.Watch.Buffer,
	})
	return comps, nil
}
