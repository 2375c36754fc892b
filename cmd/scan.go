package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/guttosm/tradesync/config"
	"github.com/guttosm/tradesync/internal/app"
	"github.com/guttosm/tradesync/internal/domain/dto"
	"github.com/guttosm/tradesync/internal/logger"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newScanCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan the trades directory once and print the snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "json" && format != "yaml" {
				return fmt.Errorf("unknown --format %q (json or yaml)", format)
			}
			// stdout carries the snapshot; logs go to stderr.
			logger.InitWithWriter(cmd.ErrOrStderr())

			comps, err := app.NewComponents(config.AppConfig)
			if err != nil {
				return err
			}
			defer comps.Close()

			snap, err := comps.Service.FetchSnapshot()
			if err != nil {
				return err
			}
			return writeSnapshot(cmd.OutOrStdout(), format, dto.NewTradesResponse(snap))
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or yaml")
	return cmd
}

func writeSnapshot(w io.Writer, format string, resp dto.TradesResponse) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(resp); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
