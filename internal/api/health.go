package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler provides liveness and readiness endpoints for the service.
//
// Readiness runs every configured check; any failure reports 503 with the
// name of the failing dependency.
type HealthHandler struct {
	checks []namedCheck
}

type namedCheck struct {
	name  string
	check func() error
}

// NewHealthHandler builds a HealthHandler with no readiness checks.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// WithCheck adds a readiness check; nil checks are ignored.
func (h *HealthHandler) WithCheck(name string, check func() error) *HealthHandler {
	if check != nil {
		h.checks = append(h.checks, namedCheck{name: name, check: check})
	}
	return h
}

// Register mounts /healthz and /readyz.
func (h *HealthHandler) Register(r gin.IRoutes) {
	// @Summary      Liveness probe
	// @Description  Always returns OK if the service is running
	// @Tags         health
	// @Produce      json
	// @Success      200  {object}  map[string]string
	// @Router       /healthz [get]
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// @Summary      Readiness probe
	// @Description  Returns ready if the trades directory (and the scan journal, when enabled) are reachable
	// @Tags         health
	// @Produce      json
	// @Success      200  {object}  map[string]string
	// @Failure      503  {object}  map[string]string
	// @Router       /readyz [get]
	r.GET("/readyz", func(c *gin.Context) {
		for _, nc := range h.checks {
			if err := nc.check(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "failing": nc.name})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
}
