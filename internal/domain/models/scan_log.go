package models

import "time"

// ScanLogEntry is one row of the scan journal: metadata about a produced snapshot.
//
// swagger:model ScanLogEntry
type ScanLogEntry struct {
	SnapshotID  string    `json:"snapshot_id" example:"01HS8Z6N6X3Q2W9V5T4R7K1M0B"`
	Trigger     Trigger   `json:"trigger" example:"watch"`
	ProducedAt  time.Time `json:"produced_at"`
	FileCount   int       `json:"file_count" example:"3"`
	RecordCount int       `json:"record_count" example:"128"`
	Fingerprint string    `json:"fingerprint" example:"9f3c2a7d51e0b6c4"`
	Files       []string  `json:"files"`
}
