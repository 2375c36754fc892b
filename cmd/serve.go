package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guttosm/tradesync/config"
	"github.com/guttosm/tradesync/internal/app"
	"github.com/guttosm/tradesync/internal/logger"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API (snapshots, saves and the live update stream)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.AppConfig
			logger.L().Info().Str("dir", cfg.Trades.Dir).Msg("starting API server")

			router, svc, cleanup, err := app.InitializeApp(cfg)
			if err != nil {
				return err
			}

			server := startServer(router, cfg.Server.Port)
			server.RegisterOnShutdown(svc.Close)
			gracefulShutdown(context.Background(), server, cleanup)
			return nil
		},
	}
}

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// WriteTimeout is left unset because the update stream is long-lived; other
// routes are bounded by api.RequestTimeout.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown waits for SIGINT or SIGTERM, shuts the server down and then
// runs cleanup. Open update streams end when the server's shutdown hooks close
// the trades service.
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Error().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}
