package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/okian/chartkit/internal/adapters/render/svg"
	repository "github.com/okian/chartkit/internal/adapters/repository"
	"github.com/okian/chartkit/internal/domain/geometry"
	"github.com/okian/chartkit/internal/domain/interaction"
)

// ChartsHandler serves the published charts.
type ChartsHandler struct {
	snapshots SnapshotReader
}

// NewChartsHandler creates a new charts handler.
func NewChartsHandler(snapshots SnapshotReader) *ChartsHandler {
	return &ChartsHandler{snapshots: snapshots}
}

// HandleAnscombeSVG handles GET /charts/anscombe.svg requests.
func (h *ChartsHandler) HandleAnscombeSVG(w http.ResponseWriter, r *http.Request) {
	const op = "api.anscombe_svg"
	snap, ok := h.snapshot(r.Context(), w, op)
	if !ok {
		return
	}
	scene, ok := snap.Derived.ScatterScene()
	if !ok {
		writeError(w, http.StatusUnprocessableEntity, "no_chart", NewKind(op, ErrNoChart))
		return
	}
	writeSVG(w, op, snap, scene)
}

// HandleRidershipSVG handles GET /charts/ridership.svg requests.
func (h *ChartsHandler) HandleRidershipSVG(w http.ResponseWriter, r *http.Request) {
	const op = "api.ridership_svg"
	snap, ok := h.snapshot(r.Context(), w, op)
	if !ok {
		return
	}
	scene, ok := snap.Derived.RidershipScene(snap.Tooltip())
	if !ok {
		writeError(w, http.StatusUnprocessableEntity, "no_chart", NewKind(op, ErrNoChart))
		return
	}
	writeSVG(w, op, snap, scene)
}

// HandleRidershipScene handles GET /charts/ridership/scene requests and
// returns the scene graph as JSON.
func (h *ChartsHandler) HandleRidershipScene(w http.ResponseWriter, r *http.Request) {
	const op = "api.ridership_scene"
	snap, ok := h.snapshot(r.Context(), w, op)
	if !ok {
		return
	}
	scene, ok := snap.Derived.RidershipScene(snap.Tooltip())
	if !ok {
		writeError(w, http.StatusUnprocessableEntity, "no_chart", NewKind(op, ErrNoChart))
		return
	}
	setVersion(w, snap)
	writeJSON(w, http.StatusOK, scene)
}

type tooltipResponse struct {
	Phase    string  `json:"phase"`
	Visible  bool    `json:"visible"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Headline string  `json:"headline,omitempty"`
	Detail   string  `json:"detail,omitempty"`
	Date     string  `json:"date,omitempty"`
	// Data coordinates under the pointer while hovering.
	PointerDate  string   `json:"pointer_date,omitempty"`
	PointerValue *float64 `json:"pointer_value,omitempty"`
	Version      uint64   `json:"version"`
	Seq          uint64   `json:"seq"`
}

// HandleTooltip handles GET /charts/ridership/tooltip requests.
func (h *ChartsHandler) HandleTooltip(w http.ResponseWriter, r *http.Request) {
	const op = "api.ridership_tooltip"
	snap, ok := h.snapshot(r.Context(), w, op)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newTooltipResponse(snap))
}

func newTooltipResponse(snap repository.Snapshot) tooltipResponse { //nolint:gocritic // hugeParam: snapshots are values
	hs := snap.Hover
	resp := tooltipResponse{
		Phase:   string(hs.Phase),
		Visible: hs.Tooltip.Visible,
		X:       hs.Tooltip.X,
		Y:       hs.Tooltip.Y,
		Version: snap.Version(),
		Seq:     snap.Seq,
	}
	if hs.Phase == interaction.PhaseHovering && hs.Active != nil {
		resp.Headline = hs.Tooltip.Content.Headline
		resp.Detail = hs.Tooltip.Content.Detail
		resp.Date = geometry.RecordKey(*hs.Active)
		if r := snap.Derived.Ridership; r != nil {
			value := r.Bundle.Y.Invert(hs.PointerY)
			resp.PointerDate = r.Bundle.X.Invert(hs.PointerX).Format(time.DateOnly)
			resp.PointerValue = &value
		}
	}
	return resp
}

func (h *ChartsHandler) snapshot(ctx context.Context, w http.ResponseWriter, op string) (repository.Snapshot, bool) {
	snap, err := h.snapshots.Snapshot(ctx)
	switch {
	case err == nil:
		return snap, true
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusConflict, "not_ready", WrapKind(op, ErrNotReady, err))
	default:
		writeError(w, http.StatusServiceUnavailable, "unavailable", WrapKind(op, ErrNotReady, err))
	}
	return repository.Snapshot{}, false
}

func writeSVG(w http.ResponseWriter, op string, snap repository.Snapshot, scene geometry.Scene) { //nolint:gocritic // hugeParam: snapshots are values
	var buf bytes.Buffer
	if err := svg.Render(&buf, scene); err != nil {
		writeError(w, http.StatusInternalServerError, "render_failed", WrapKind(op, ErrNoChart, err))
		return
	}
	setVersion(w, snap)
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func setVersion(w http.ResponseWriter, snap repository.Snapshot) { //nolint:gocritic // hugeParam: snapshots are values
	w.Header().Set("X-Chart-Version", strconv.FormatUint(snap.Version(), 10))
	w.Header().Set("X-Chart-Seq", strconv.FormatUint(snap.Seq, 10))
}
