package http

import (
	"net/http"
	"time"

	"github.com/IgorGrieder/encurtador-console/pkg/httputils"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Loaded    bool   `json:"loaded"`
	Timestamp string `json:"timestamp"`
}

// HealthHandler serves liveness and metrics.
type HealthHandler struct {
	source DashboardSource
	now    func() time.Time
}

func NewHealthHandler(source DashboardSource) *HealthHandler {
	return &HealthHandler{source: source, now: time.Now}
}

// Health reports "ok" after the first load attempt, successful or not, and
// "loading" before it. The status code is always 200.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	loaded := h.source.Snapshot().Loaded
	status := "ok"
	if !loaded {
		status = "loading"
	}
	httputils.RespondJSON(w, http.StatusOK, HealthResponse{
		Status:    status,
		Loaded:    loaded,
		Timestamp: h.now().UTC().Format(time.RFC3339),
	})
}

// Metrics returns Prometheus metrics
func (h *HealthHandler) Metrics() http.Handler {
	return promhttp.Handler()
}
