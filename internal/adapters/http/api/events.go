package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	eventqueue "github.com/okian/chartkit/internal/adapters/mq/queue"
	dispatcher "github.com/okian/chartkit/internal/adapters/mq/worker"
	"github.com/okian/chartkit/internal/domain/model"
	"github.com/okian/chartkit/internal/domain/view"
)

const dispatchTimeout = 5 * time.Second

// EventsHandler turns UI requests into events for the event loop.
type EventsHandler struct {
	deps Dependencies
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(deps Dependencies) *EventsHandler {
	return &EventsHandler{deps: deps}
}

type filterRequest struct {
	Years []string `json:"years"`
}

type toggleRequest struct {
	Year    string `json:"year"`
	Checked *bool  `json:"checked"`
}

type viewportRequest struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Ready  bool    `json:"ready"`
}

type pointerRequest struct {
	X     *float64 `json:"x"`
	Y     *float64 `json:"y"`
	Leave bool     `json:"leave"`
}

type eventResponse struct {
	EventID string `json:"event_id"`
	Status  string `json:"status"`
	Applied bool   `json:"applied"`
	Version uint64 `json:"version"`
	Seq     uint64 `json:"seq"`
}

// HandleSetFilter handles POST /charts/ridership/filter requests.
func (h *EventsHandler) HandleSetFilter(w http.ResponseWriter, r *http.Request) {
	const op = "api.set_filter"
	var req filterRequest
	if !decode(w, r, op, &req) {
		return
	}
	h.dispatch(w, r, op, model.Event{Kind: model.EventSetFilter, Years: req.Years})
}

// HandleToggleYear handles POST /charts/ridership/toggle requests.
func (h *EventsHandler) HandleToggleYear(w http.ResponseWriter, r *http.Request) {
	const op = "api.toggle_year"
	var req toggleRequest
	if !decode(w, r, op, &req) {
		return
	}
	switch {
	case strings.TrimSpace(req.Year) == "":
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, errors.New("missing year")))
		return
	case req.Checked == nil:
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, errors.New("missing checked")))
		return
	}
	h.dispatch(w, r, op, model.Event{Kind: model.EventToggleYear, Year: strings.TrimSpace(req.Year), Checked: *req.Checked})
}

// HandleViewport handles POST /viewport requests. A zero height is derived
// from the width.
func (h *EventsHandler) HandleViewport(w http.ResponseWriter, r *http.Request) {
	const op = "api.viewport"
	var req viewportRequest
	if !decode(w, r, op, &req) {
		return
	}
	if req.Width <= 0 || req.Height < 0 {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, errors.New("width must be positive")))
		return
	}
	kind := model.EventResize
	if req.Ready {
		kind = model.EventReady
	}
	h.dispatch(w, r, op, model.Event{Kind: kind, Width: req.Width, Height: req.Height})
}

// HandlePointer handles POST /pointer requests with chart-pixel coordinates.
func (h *EventsHandler) HandlePointer(w http.ResponseWriter, r *http.Request) {
	const op = "api.pointer"
	var req pointerRequest
	if !decode(w, r, op, &req) {
		return
	}
	if req.Leave {
		h.dispatch(w, r, op, model.Event{Kind: model.EventPointerLeave})
		return
	}
	if req.X == nil || req.Y == nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, errors.New("missing x or y")))
		return
	}
	h.dispatch(w, r, op, model.Event{Kind: model.EventPointerMove, X: *req.X, Y: *req.Y})
}

// HandleToggleInfo handles POST /info/toggle requests.
func (h *EventsHandler) HandleToggleInfo(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, "api.toggle_info", model.Event{Kind: model.EventToggleInfo})
}

func (h *EventsHandler) dispatch(w http.ResponseWriter, r *http.Request, op string, e model.Event) { //nolint:gocritic // hugeParam: events travel by value
	ctx, cancel := context.WithTimeout(r.Context(), dispatchTimeout)
	defer cancel()

	res, err := h.deps.Dispatch(ctx, e)
	if err != nil {
		switch {
		case errors.Is(err, eventqueue.ErrFull):
			writeError(w, http.StatusTooManyRequests, "backpressure", WrapKind(op, ErrBackpressure, err))
		case errors.Is(err, context.DeadlineExceeded):
			writeError(w, http.StatusGatewayTimeout, "timeout", WrapKind(op, ErrBackpressure, err))
		default:
			writeError(w, http.StatusServiceUnavailable, "unavailable", WrapKind(op, ErrNotReady, err))
		}
		return
	}

	if res.Err != nil {
		switch {
		case errors.Is(res.Err, view.ErrUnknownKey), errors.Is(res.Err, dispatcher.ErrUnknownEvent):
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, res.Err))
		case errors.Is(res.Err, view.ErrMissingViewport):
			writeError(w, http.StatusConflict, "not_ready", WrapKind(op, ErrNotReady, res.Err))
		case errors.Is(res.Err, view.ErrReentrantUpdate):
			writeError(w, http.StatusConflict, "busy", WrapKind(op, ErrBackpressure, res.Err))
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", WrapKind(op, ErrNoChart, res.Err))
		}
		return
	}

	resp := eventResponse{EventID: res.Event.EventID, Status: "ignored", Applied: res.Applied}
	if res.Applied {
		resp.Status = "applied"
	}
	if snap, err := h.deps.Snapshot(r.Context()); err == nil {
		resp.Version = snap.Version()
		resp.Seq = snap.Seq
	}
	writeJSON(w, http.StatusOK, resp)
}

func decode(w http.ResponseWriter, r *http.Request, op string, v any) bool {
	if r.Body == nil || r.ContentLength == 0 {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return false
	}
	return true
}
