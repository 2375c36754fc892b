package main

import (
	"time"

	"github.com/guttosm/tradesync/internal/ingestion"
	"github.com/guttosm/tradesync/internal/service"
)

func newTestService(dir string) service.TradesService {
	scanner := ingestion.NewScanner(dir, ingestion.ScannerOptions{})
	return service.NewTradesService(scanner, nil, service.Options{Debounce: 20 * time.Millisecond})
}
