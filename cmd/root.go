package main

import (
	"fmt"
	"strings"

	"github.com/guttosm/tradesync/config"
	"github.com/guttosm/tradesync/internal/logger"
	"github.com/spf13/cobra"
)

// rootOptions holds flags shared by every command.
type rootOptions struct {
	dir  string
	port string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "tradesync",
		Short: "Serve and follow a directory of broker trade exports",
		Long: `tradesync decodes the semicolon-separated trade reports exported by the broker
platform and keeps a live view of them.

Configuration comes from the environment (or a .env file); --dir and --port
override TRADES_DIR and SERVER_PORT.

Example:
  tradesync serve --dir ./data/trades --port 8080
  tradesync scan --dir ./data/trades --format yaml`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger.Init()
			return loadConfig(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.dir, "dir", "", "trades directory (overrides TRADES_DIR)")
	cmd.PersistentFlags().StringVar(&opts.port, "port", "", "HTTP port for serve (overrides SERVER_PORT)")

	cmd.AddCommand(
		newServeCmd(),
		newScanCmd(),
		newWatchCmd(),
	)

	return cmd
}

// loadConfig reads the environment, applies flag overrides and validates the
// result into config.AppConfig.
func loadConfig(cmd *cobra.Command, opts *rootOptions) error {
	cfg := config.Load()
	if cmd.Flags().Changed("dir") {
		cfg.Trades.Dir = opts.dir
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = opts.port
	}

	if problems := cfg.Problems(); len(problems) > 0 {
		return fmt.Errorf("missing or invalid configuration: %s", strings.Join(problems, ", "))
	}
	config.AppConfig = cfg
	return nil
}
