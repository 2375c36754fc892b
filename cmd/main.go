package main

//
//  @title           tradesync API
//  @version         1.0
//  @description     Live view of broker trade exports: on-demand snapshots and change notifications.
//  @termsOfService  https://github.com/guttosm/tradesync
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/tradesync
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        trades
//  @tag.description Snapshots of the trades directory and live updates
//
//  @tag.name        scans
//  @tag.description Scan journal (when enabled)
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"os"

	_ "github.com/guttosm/tradesync/docs" // swagger docs
)

// main is the entry point of the tradesync application.
//
// Commands:
//   - serve: HTTP API with live updates over Server-Sent Events.
//   - scan:  one-shot snapshot printed as JSON or YAML.
//   - watch: follow the trades directory and print one line per change.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
