package models

import "time"

// Trigger identifies what produced a snapshot.
type Trigger string

const (
	TriggerFetch Trigger = "fetch"
	TriggerWatch Trigger = "watch"
)

// FileSummary describes how one source file contributed to a snapshot.
type FileSummary struct {
	Path     string `json:"path" yaml:"path"`
	Records  int    `json:"records" yaml:"records"`
	Dropped  int    `json:"dropped" yaml:"dropped"`
	Checksum string `json:"checksum" yaml:"checksum"`
	Lossy    bool   `json:"lossy" yaml:"lossy"`
}

// Snapshot is one complete result of scanning every source file at a point in time.
//
// A snapshot is never modified after it is produced. Consumers that need to
// change the records must work on the copy returned by Trades().
type Snapshot struct {
	ID          string        `json:"id" yaml:"id"`
	ProducedAt  time.Time     `json:"producedAt" yaml:"producedAt"`
	Trigger     Trigger       `json:"trigger" yaml:"trigger"`
	Fingerprint string        `json:"fingerprint" yaml:"fingerprint"`
	Files       []FileSummary `json:"files" yaml:"files"`
	Records     []TradeRecord `json:"records" yaml:"records"`
}

// Trades returns a copy of the snapshot records.
func (s *Snapshot) Trades() []TradeRecord {
	if s == nil {
		return nil
	}
	out := make([]TradeRecord, len(s.Records))
	copy(out, s.Records)
	return out
}

// Len returns the number of records in the snapshot.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Records)
}
