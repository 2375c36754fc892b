package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/tradesync/internal/domain/dto"
	"github.com/guttosm/tradesync/internal/domain/models"
	"github.com/guttosm/tradesync/internal/ingestion"
	"github.com/guttosm/tradesync/internal/middleware"
	"github.com/guttosm/tradesync/internal/service"
	"github.com/guttosm/tradesync/internal/storage"
)

// EventTradesUpdated is the SSE event name pushed for every new snapshot.
const EventTradesUpdated = "trades_updated"

// Handler exposes the trades service over HTTP.
//
// Responsibilities:
//   - Serve on-demand snapshots of the trades directory.
//   - Accept (and acknowledge) edited records.
//   - Push live snapshots to browsers over Server-Sent Events.
//   - List recent scans when the scan journal is enabled.
type Handler struct {
	svc   service.TradesService
	scans storage.ScanLogRepository // nil when the journal is disabled
}

// NewHandler constructs a Handler. scans may be nil.
func NewHandler(svc service.TradesService, scans storage.ScanLogRepository) *Handler {
	return &Handler{svc: svc, scans: scans}
}

// GetTrades handles GET /api/v1/trades.
//
// GetTrades godoc
// @Summary      Current trades
// @Description  Scans the trades directory and returns every decoded record
// @Tags         trades
// @Produce      json
// @Success      200  {object}  dto.TradesResponse  "Success"
// @Failure      503  {object}  dto.ErrorResponse   "Trades directory unavailable"
// @Failure      500  {object}  dto.ErrorResponse   "Internal Error"
// @Router       /api/v1/trades [get]
func (h *Handler) GetTrades(c *gin.Context) {
	snap, err := h.svc.FetchSnapshot()
	if err != nil {
		var rootErr *ingestion.ScanRootError
		if errors.As(err, &rootErr) {
			middleware.AbortWithError(c, http.StatusServiceUnavailable, "trades directory unavailable", err)
			return
		}
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewTradesResponse(snap))
}

// PutTrades handles PUT /api/v1/trades.
//
// PutTrades godoc
// @Summary      Save trades
// @Description  Accepts edited trade records. Records are acknowledged but not yet persisted.
// @Tags         trades
// @Accept       json
// @Produce      json
// @Param        trades  body      []models.TradeRecord  true  "Edited records"
// @Success      202     {object}  dto.SaveResponse      "Accepted"
// @Failure      400     {object}  dto.ErrorResponse     "Bad Request"
// @Failure      500     {object}  dto.ErrorResponse     "Internal Error"
// @Router       /api/v1/trades [put]
func (h *Handler) PutTrades(c *gin.Context) {
	var records []models.TradeRecord
	if err := c.ShouldBindJSON(&records); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid trades payload", err)
		return
	}

	if err := h.svc.SaveSnapshot(records); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusAccepted, dto.SaveResponse{Status: "accepted", Records: len(records)})
}

// StreamTrades handles GET /api/v1/trades/stream.
//
// Each settled change of the trades directory is sent as a "trades_updated"
// event whose data is a TradesResponse. The stream ends when the client goes
// away or the service shuts down.
//
// StreamTrades godoc
// @Summary      Live trades
// @Description  Server-Sent Events stream; one trades_updated event per directory change
// @Tags         trades
// @Produce      text/event-stream
// @Success      200  {object}  dto.TradesResponse  "trades_updated event payload"
// @Failure      503  {object}  dto.ErrorResponse   "Service shutting down"
// @Router       /api/v1/trades/stream [get]
func (h *Handler) StreamTrades(c *gin.Context) {
	ctx := c.Request.Context()
	sub, err := h.svc.SubscribeToUpdates(ctx)
	if err != nil {
		middleware.AbortWithError(c, http.StatusServiceUnavailable, "live updates unavailable", err)
		return
	}
	defer sub.Close()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	for {
		select {
		case <-ctx.Done():
			return
		case snap, ok := <-sub.C():
			if !ok {
				return
			}
			c.SSEvent(EventTradesUpdated, dto.NewTradesResponse(snap))
			c.Writer.Flush()
		}
	}
}

// GetScans handles GET /api/v1/scans; only mounted when the journal is enabled.
//
// GetScans godoc
// @Summary      Recent scans
// @Description  Lists the most recent snapshots recorded in the scan journal
// @Tags         scans
// @Produce      json
// @Param        limit  query     int  false  "Maximum entries (default 20)" example(20)
// @Success      200    {array}   models.ScanLogEntry  "Success"
// @Failure      400    {object}  dto.ErrorResponse    "Bad Request"
// @Failure      500    {object}  dto.ErrorResponse    "Internal Error"
// @Router       /api/v1/scans [get]
func (h *Handler) GetScans(c *gin.Context) {
	limit := 0
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			middleware.AbortWithError(c, http.StatusBadRequest, "limit must be a positive integer", err)
			return
		}
		limit = n
	}

	entries, err := h.scans.LatestScans(c.Request.Context(), limit)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if entries == nil {
		entries = []models.ScanLogEntry{}
	}
	c.JSON(http.StatusOK, entries)
}
