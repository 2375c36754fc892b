package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/tradesync/internal/domain/dto"
	"github.com/guttosm/tradesync/internal/middleware"
)

func TestNewRouter_WiringAndMiddlewares(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := NewRouter(NewHandler(&mockTradesService{snap: sampleSnapshot()}, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/trades", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Header().Get(middleware.RequestIDHeader) == "" {
		t.Fatalf("expected X-Request-ID header to be set")
	}

	var out dto.TradesResponse
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	if out.Count != 1 || out.Trades[0].ID != "trade-ops.csv-0" {
		t.Fatalf("unexpected body: %+v", out)
	}
}

func TestNewRouter_ScansRouteOnlyWithJournal(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name  string
		scans *mockScanLog
		want  int
	}{
		{name: "journal disabled", scans: nil, want: http.StatusNotFound},
		{name: "journal enabled", scans: &mockScanLog{}, want: http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewHandler(&mockTradesService{}, nil)
			if tc.scans != nil {
				h = NewHandler(&mockTradesService{}, tc.scans)
			}
			w := httptest.NewRecorder()
			NewRouter(h).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/scans", nil))
			if w.Code != tc.want {
				t.Fatalf("want %d got %d", tc.want, w.Code)
			}
		})
	}
}

func TestNewRouter_ScansQueryIsBounded(t *testing.T) {
	gin.SetMode(gin.TestMode)

	scans := &mockScanLog{}
	w := httptest.NewRecorder()
	NewRouter(NewHandler(&mockTradesService{}, scans)).
		ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/scans", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("want 200 got %d", w.Code)
	}
	if !scans.hadDeadline {
		t.Fatalf("journal query ran without a deadline")
	}
}

func TestTimeoutMiddleware_SetsDeadline(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(timeout(RequestTimeout))
	r.GET("/", func(c *gin.Context) {
		if _, ok := c.Request.Context().Deadline(); !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusNoContent)
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("request context has no deadline")
	}
}
