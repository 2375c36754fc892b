package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guttosm/tradesync/config"
	"github.com/guttosm/tradesync/internal/app"
	"github.com/guttosm/tradesync/internal/domain/models"
	"github.com/guttosm/tradesync/internal/logger"
	"github.com/guttosm/tradesync/internal/service"
	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Follow the trades directory and print one line per settled change",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger.InitWithWriter(cmd.ErrOrStderr())

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			comps, err := app.NewComponents(config.AppConfig)
			if err != nil {
				return err
			}
			defer comps.Close()

			return follow(ctx, comps.Service, func(snap *models.Snapshot) {
				fmt.Fprintln(cmd.OutOrStdout(), summaryLine(snap))
			})
		},
	}
}

// follow delivers every snapshot of svc to emit until ctx ends. It fails when
// the root cannot be watched.
func follow(ctx context.Context, svc service.TradesService, emit func(*models.Snapshot)) error {
	sub, err := svc.SubscribeToUpdates(ctx)
	if err != nil {
		return err
	}
	defer sub.Close()
	if !svc.Watching() {
		return fmt.Errorf("cannot watch %s: live updates unavailable", svc.Root())
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case snap, ok := <-sub.C():
			if !ok {
				return nil
			}
			emit(snap)
		}
	}
}

func summaryLine(snap *models.Snapshot) string {
	dropped := 0
	for _, f := range snap.Files {
		dropped += f.Dropped
	}
	return fmt.Sprintf("%s %s files=%d records=%d dropped=%d fingerprint=%s",
		snap.ProducedAt.Format(time.RFC3339), snap.ID, len(snap.Files), snap.Len(), dropped, snap.Fingerprint)
}
