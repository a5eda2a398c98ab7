// Package worker runs the UI event loop: one dispatcher drains the queue and
// applies each event to the chart controller before taking the next one.
package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/chartkit/internal/domain/interaction"
	"github.com/okian/chartkit/internal/domain/model"
	"github.com/okian/chartkit/pkg/logger"
	"github.com/okian/chartkit/pkg/metrics"
)

// Event abstracts what the dispatcher reads off the queue.
type Event = model.Event

// Controller is the chart state the dispatcher drives.
type Controller interface {
	Ready(ctx context.Context, v model.Viewport) error
	SetViewport(ctx context.Context, width, height float64) error
	SetFilter(ctx context.Context, keys []string) (bool, error)
	Toggle(ctx context.Context, key string, checked bool) (bool, error)
	ToggleInfo(ctx context.Context) error
	Pointer(ctx context.Context, x, y float64) (interaction.HoverState, error)
	PointerLeave(ctx context.Context) interaction.HoverState
}

// Result describes how one event was handled.
type Result struct {
	Event   Event
	Applied bool // false when the controller ignored the event
	Err     error
}

// Publisher receives every result after the controller has settled.
type Publisher interface {
	Publish(ctx context.Context, res Result) error
}

// Queue defines how the dispatcher receives events.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Event
}

// Worker processes UI events.
type Worker interface {
	// Run starts the loop until ctx is canceled or the queue is closed.
	Run(ctx context.Context)

	// Shutdown stops the loop and waits for the current event to finish.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker over an in-process queue.
type InMemoryWorker struct {
	queue      Queue
	controller Controller
	publisher  Publisher
	name       string

	stop     sync.Once
	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a dispatcher. publisher may be nil.
func NewInMemoryWorker(q Queue, c Controller, p Publisher, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:      q,
		controller: c,
		publisher:  p,
		name:       "dispatcher",
		shutdown:   make(chan struct{}),
		done:       make(chan struct{}),
		logger:     logger.Get().Named("worker"),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.Named(w.name)
	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	metrics.UpdateWorkerActiveCount(1)
	defer metrics.UpdateWorkerActiveCount(0)

	events := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			res := w.processEvent(ctx, event)
			if res.Err != nil {
				w.logger.Warn(ctx, "event failed",
					logger.String("eventID", event.EventID),
					logger.String("kind", string(event.Kind)),
					logger.Error(res.Err),
				)
			}
			w.publish(ctx, res)
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	w.stop.Do(func() { close(w.shutdown) })

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// Done is closed once Run has returned.
func (w *InMemoryWorker) Done() <-chan struct{} { return w.done }

// processEvent applies a single event to the controller.
func (w *InMemoryWorker) processEvent(ctx context.Context, event Event) Result { //nolint:gocritic // hugeParam: events travel by value
	start := time.Now()
	defer func() {
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()
	metrics.RecordUIEvent(string(event.Kind))

	res := Result{Event: event, Applied: true}
	switch event.Kind {
	case model.EventReady:
		res.Err = w.controller.Ready(ctx, model.Viewport{Width: event.Width, Height: event.Height})
	case model.EventResize:
		res.Err = w.controller.SetViewport(ctx, event.Width, event.Height)
	case model.EventSetFilter:
		res.Applied, res.Err = w.controller.SetFilter(ctx, event.Years)
	case model.EventToggleYear:
		res.Applied, res.Err = w.controller.Toggle(ctx, event.Year, event.Checked)
	case model.EventToggleInfo:
		res.Err = w.controller.ToggleInfo(ctx)
	case model.EventPointerMove:
		var hs interaction.HoverState
		hs, res.Err = w.controller.Pointer(ctx, event.X, event.Y)
		res.Applied = hs.Tooltip.Visible
	case model.EventPointerLeave:
		w.controller.PointerLeave(ctx)
	default:
		res.Applied = false
		res.Err = fmt.Errorf("%w: %q", ErrUnknownEvent, event.Kind)
	}

	if res.Err != nil {
		res.Applied = false
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", string(event.Kind))
	}
	w.logger.Debug(ctx, "event handled",
		logger.String("eventID", event.EventID),
		logger.String("kind", string(event.Kind)),
		logger.Bool("applied", res.Applied),
	)
	return res
}

func (w *InMemoryWorker) publish(ctx context.Context, res Result) { //nolint:gocritic // hugeParam: results travel by value
	if w.publisher == nil {
		return
	}
	if err := w.publisher.Publish(ctx, res); err != nil {
		metrics.RecordErrorByComponent("worker", "publish")
		w.logger.Error(ctx, "publish failed",
			logger.String("eventID", res.Event.EventID),
			logger.Error(err),
		)
	}
}
