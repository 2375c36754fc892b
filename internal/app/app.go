package app

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/tradesync/config"
	"github.com/guttosm/tradesync/internal/api"
	"github.com/guttosm/tradesync/internal/service"
)

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, the trades service, a cleanup function
// for graceful shutdown, and any error encountered during initialization.
//
// Responsibilities:
//   - Builds the scanner, the trades service and (when enabled) the scan journal.
//   - Configures the Gin router with all API routes.
//   - Registers health and readiness probes: the trades directory must be a
//     reachable directory, and Postgres must answer when the journal is on.
//   - Provides a cleanup function that stops the watcher, ends open streams
//     and closes the database.
func InitializeApp(cfg config.Config) (*gin.Engine, service.TradesService, func(), error) {
	comps, err := NewComponents(cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	handler := api.NewHandler(comps.Service, comps.Scans)
	router := api.NewRouter(handler)

	health := api.NewHealthHandler().WithCheck("trades_dir", dirCheck(cfg.Trades.Dir))
	if comps.Scans != nil {
		health.WithCheck("postgres", comps.Scans.Ping)
	}
	health.Register(router)

	return router, comps.Service, comps.Close, nil
}

func dirCheck(dir string) func() error {
	return func() error {
		info, err := os.Stat(dir)
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("%s is not a directory", dir)
		}
		return nil
	}
}
