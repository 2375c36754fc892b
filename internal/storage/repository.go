package storage

import (
	"context"
	"database/sql"

	"github.com/guttosm/tradesync/internal/domain/models"
	pq "github.com/lib/pq"
)

// ScanLogRepository defines the contract of the scan journal.
//
// The journal stores metadata about every produced snapshot (never the trade
// records themselves) so operators can see when and why the trades view changed.
type ScanLogRepository interface {
	RecordScan(snap *models.Snapshot) error
	LatestScans(ctx context.Context, limit int) ([]models.ScanLogEntry, error)
	Ping() error
}

type scanLogRepository struct {
	db *sql.DB
}

func NewScanLogRepository(db *sql.DB) ScanLogRepository {
	return &scanLogRepository{db: db}
}

// RecordScan inserts one journal row for snap. Recording the same snapshot twice is a no-op.
func (r *scanLogRepository) RecordScan(snap *models.Snapshot) error {
	files := make([]string, 0, len(snap.Files))
	for _, f := range snap.Files {
		files = append(files, f.Path)
	}

	_, err := r.db.Exec(`
		INSERT INTO scan_log (snapshot_id, trigger, produced_at, file_count, record_count, fingerprint, files)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (snapshot_id) DO NOTHING
	`, snap.ID, string(snap.Trigger), snap.ProducedAt, len(snap.Files), len(snap.Records), snap.Fingerprint, pq.Array(files))
	return err
}

// LatestScans returns up to limit journal rows, most recent first. The query
// is abandoned when ctx is done.
func (r *scanLogRepository) LatestScans(ctx context.Context, limit int) ([]models.ScanLogEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT snapshot_id, trigger, produced_at, file_count, record_count, fingerprint, files
		FROM scan_log
		ORDER BY produced_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := make([]models.ScanLogEntry, 0, limit)
	for rows.Next() {
		var (
			e       models.ScanLogEntry
			trigger string
		)
		if err := rows.Scan(&e.SnapshotID, &trigger, &e.ProducedAt, &e.FileCount, &e.RecordCount, &e.Fingerprint, pq.Array(&e.Files)); err != nil {
			return nil, err
		}
		e.Trigger = models.Trigger(trigger)
		out = append(out, e)
	}
	return out, rows.Err()
}

// Ping verifies the journal database is reachable.
func (r *scanLogRepository) Ping() error {
	return r.db.Ping()
}
