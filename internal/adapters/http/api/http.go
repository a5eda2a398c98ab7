// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	dispatcher "github.com/okian/chartkit/internal/adapters/mq/worker"
	repository "github.com/okian/chartkit/internal/adapters/repository"
	"github.com/okian/chartkit/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Dispatch runs a UI event through the event loop and waits for it.
	Dispatch(ctx context.Context, e model.Event) (dispatcher.Result, error)

	// Snapshot returns the latest published chart state.
	Snapshot(ctx context.Context) (repository.Snapshot, error)
}

// Server wires HTTP routes for the chart API.
type Server struct {
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
	chartsHandler *ChartsHandler
	eventsHandler *EventsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler: NewHealthHandler(deps),
		statsHandler:  NewStatsHandler(statsProvider),
		chartsHandler: NewChartsHandler(deps),
		eventsHandler: NewEventsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /metrics", MetricsMiddleware(s.healthHandler.HandleMetrics, "metrics"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	mux.HandleFunc("GET /charts/anscombe.svg", MetricsMiddleware(s.chartsHandler.HandleAnscombeSVG, "anscombe_svg"))
	mux.HandleFunc("GET /charts/ridership.svg", MetricsMiddleware(s.chartsHandler.HandleRidershipSVG, "ridership_svg"))
	mux.HandleFunc("GET /charts/ridership/scene", MetricsMiddleware(s.chartsHandler.HandleRidershipScene, "ridership_scene"))
	mux.HandleFunc("GET /charts/ridership/tooltip", MetricsMiddleware(s.chartsHandler.HandleTooltip, "ridership_tooltip"))

	mux.HandleFunc("POST /charts/ridership/filter", MetricsMiddleware(s.eventsHandler.HandleSetFilter, "ridership_filter"))
	mux.HandleFunc("POST /charts/ridership/toggle", MetricsMiddleware(s.eventsHandler.HandleToggleYear, "ridership_toggle"))
	mux.HandleFunc("POST /viewport", MetricsMiddleware(s.eventsHandler.HandleViewport, "viewport"))
	mux.HandleFunc("POST /pointer", MetricsMiddleware(s.eventsHandler.HandlePointer, "pointer"))
	mux.HandleFunc("POST /info/toggle", MetricsMiddleware(s.eventsHandler.HandleToggleInfo, "info_toggle"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
