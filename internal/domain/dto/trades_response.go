package dto

import (
	"time"

	"github.com/guttosm/tradesync/internal/domain/models"
)

// TradesResponse represents the JSON structure returned by GET /api/v1/trades
// and pushed on the trades_updated stream.
type TradesResponse struct {
	SnapshotID  string               `json:"snapshot_id" yaml:"snapshot_id" example:"01HS8Z6N6X3Q2W9V5T4R7K1M0B"`
	ProducedAt  time.Time            `json:"produced_at" yaml:"produced_at"`
	Trigger     string               `json:"trigger" yaml:"trigger" example:"fetch"`
	Fingerprint string               `json:"fingerprint" yaml:"fingerprint" example:"9f3c2a7d51e0b6c4"`
	Count       int                  `json:"count" yaml:"count" example:"2"`
	Files       []models.FileSummary `json:"files" yaml:"files"`
	Trades      []models.TradeRecord `json:"trades" yaml:"trades"`
}

// NewTradesResponse maps a snapshot to its API representation.
func NewTradesResponse(s *models.Snapshot) TradesResponse {
	return TradesResponse{
		SnapshotID:  s.ID,
		ProducedAt:  s.ProducedAt,
		Trigger:     string(s.Trigger),
		Fingerprint: s.Fingerprint,
		Count:       s.Len(),
		Files:       s.Files,
		Trades:      s.Trades(),
	}
}

// SaveResponse acknowledges a PUT /api/v1/trades request.
type SaveResponse struct {
	Status  string `json:"status" yaml:"status" example:"accepted"`
	Records int    `json:"records" yaml:"records" example:"2"`
}
