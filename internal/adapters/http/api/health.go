// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"

	repository "github.com/okian/chartkit/internal/adapters/repository"
	"github.com/okian/chartkit/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SnapshotReader is what the health check needs from the service.
type SnapshotReader interface {
	Snapshot(ctx context.Context) (repository.Snapshot, error)
}

// HealthHandler handles liveness and metrics requests.
type HealthHandler struct {
	snapshots SnapshotReader
	metrics   http.Handler
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(snapshots SnapshotReader) *HealthHandler {
	return &HealthHandler{
		snapshots: snapshots,
		metrics:   promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}),
	}
}

type healthResponse struct {
	Status  string `json:"status"`
	Ready   bool   `json:"ready"`
	Version uint64 `json:"version"`
}

// HandleHealth handles GET /healthz requests. The process is healthy once the
// handler runs; ready reports whether a layout has been published.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok"}
	snap, err := h.snapshots.Snapshot(r.Context())
	switch {
	case err == nil:
		resp.Ready = true
		resp.Version = snap.Version()
	case errors.Is(err, repository.ErrNotFound):
	default:
		resp.Status = "degraded"
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleMetrics serves the service's Prometheus registry.
func (h *HealthHandler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	h.metrics.ServeHTTP(w, r)
}
