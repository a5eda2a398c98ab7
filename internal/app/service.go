// Package service hosts one chart session: it loads the datasets, runs the
// UI event loop and publishes every settled state as a snapshot.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/chartkit/internal/adapters/dataset"
	eventqueue "github.com/okian/chartkit/internal/adapters/mq/queue"
	dispatcher "github.com/okian/chartkit/internal/adapters/mq/worker"
	repository "github.com/okian/chartkit/internal/adapters/repository"
	"github.com/okian/chartkit/internal/domain/interaction"
	"github.com/okian/chartkit/internal/domain/model"
	"github.com/okian/chartkit/internal/domain/view"
	"github.com/okian/chartkit/pkg/logger"
	"github.com/okian/chartkit/pkg/metrics"
)

const (
	defaultQueueSize     = 1024
	defaultViewportWidth = 800
	shutdownTimeout      = 5 * time.Second
)

// Service implements the API dependencies for the chart session.
type Service struct {
	mu sync.RWMutex

	// Configuration
	queueSize     int
	viewportWidth float64
	ceiling       float64
	defaultYears  []string
	layout        interaction.Layout
	showInfo      bool
	source        dataset.Source
	data          *model.Datasets

	// Core components
	controller *view.Controller
	queue      *eventqueue.InMemoryQueue
	worker     *dispatcher.InMemoryWorker
	store      *repository.AtomicStore

	// Callers waiting on a dispatched event, keyed by event id.
	pmu     sync.Mutex
	pending map[string]chan dispatcher.Result

	started bool
	cancel  context.CancelFunc

	logger logger.Logger
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		queueSize:     defaultQueueSize,
		viewportWidth: defaultViewportWidth,
		ceiling:       view.DefaultRidershipCeiling,
		defaultYears:  view.DefaultYears,
		showInfo:      true,
		layout:        interaction.DefaultLayout(0),
		pending:       make(map[string]chan dispatcher.Result),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	return s
}

// Start loads the datasets, starts the event loop and lays the charts out at
// the configured viewport width.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}

	s.logger.Info(ctx, "starting chart service...")

	data, err := s.datasets(ctx)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("load datasets: %w", err)
	}

	// Scene ids and the tooltip id share one session.
	session := uuid.NewString()
	tracker := interaction.NewTracker(
		interaction.WithLayout(s.layout),
		interaction.WithID("tooltip-"+session),
	)
	s.controller = view.NewController(data,
		view.WithSession(session),
		view.WithCeiling(s.ceiling),
		view.WithDefaultYears(s.defaultYears...),
		view.WithTracker(tracker),
		view.WithTooltipLayout(s.layout),
		view.WithShowInfo(s.showInfo),
	)
	s.store = repository.NewAtomicStore()
	s.queue = eventqueue.NewInMemoryQueue(eventqueue.WithCapacity(s.queueSize))
	s.worker = dispatcher.NewInMemoryWorker(s.queue, s.controller, s)

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel
	go s.worker.Run(runCtx)

	s.started = true
	s.mu.Unlock()

	s.logger.Info(ctx, "chart service started",
		logger.Int("queueSize", s.queueSize),
		logger.Float64("viewportWidth", s.viewportWidth),
		logger.Any("years", s.controller.Filter().Keys()),
	)

	res, err := s.Dispatch(ctx, model.Event{Kind: model.EventReady, Width: s.viewportWidth})
	if err != nil {
		return fmt.Errorf("initial layout: %w", err)
	}
	if res.Err != nil {
		s.logger.Warn(ctx, "initial layout failed", logger.Error(res.Err))
	}
	return nil
}

func (s *Service) datasets(ctx context.Context) (model.Datasets, error) {
	if s.data != nil {
		return *s.data, nil
	}
	return dataset.Load(ctx, s.source)
}

// Stop drains the event loop and shuts the service down.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	ctx := context.Background()
	s.logger.Info(ctx, "stopping chart service...")

	_ = s.queue.Close()
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := s.worker.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn(ctx, "event loop did not stop in time", logger.Error(err))
	}
	s.cancel()

	s.pmu.Lock()
	for id, ch := range s.pending {
		close(ch)
		delete(s.pending, id)
	}
	s.pmu.Unlock()

	s.started = false
	s.logger.Info(ctx, "chart service stopped")
}

// Submit queues a UI event without waiting for it and returns its id.
func (s *Service) Submit(ctx context.Context, e model.Event) (string, error) { //nolint:gocritic // hugeParam: events travel by value
	q, err := s.eventQueue()
	if err != nil {
		return "", err
	}
	e = stamp(e)
	if !q.Enqueue(ctx, e) {
		return "", rejected(q)
	}
	return e.EventID, nil
}

// Dispatch queues a UI event and waits until the event loop has applied it
// and published the resulting snapshot.
func (s *Service) Dispatch(ctx context.Context, e model.Event) (dispatcher.Result, error) { //nolint:gocritic // hugeParam: events travel by value
	q, err := s.eventQueue()
	if err != nil {
		return dispatcher.Result{}, err
	}
	e = stamp(e)

	ch := make(chan dispatcher.Result, 1)
	s.pmu.Lock()
	s.pending[e.EventID] = ch
	s.pmu.Unlock()

	if !q.Enqueue(ctx, e) {
		s.forget(e.EventID)
		return dispatcher.Result{}, rejected(q)
	}

	select {
	case res, ok := <-ch:
		if !ok {
			return dispatcher.Result{}, ErrStopped
		}
		return res, nil
	case <-ctx.Done():
		s.forget(e.EventID)
		return dispatcher.Result{}, fmt.Errorf("waiting for event %s: %w", e.EventID, ctx.Err())
	}
}

// Publish stores the settled state and wakes the caller waiting on the
// event, if any. It runs on the event loop.
func (s *Service) Publish(ctx context.Context, res dispatcher.Result) error { //nolint:gocritic // hugeParam: results travel by value
	defer s.resolve(res)

	d, ok := s.controller.Derived()
	if !ok {
		return nil
	}
	tracker := s.controller.Tracker()
	snap, err := s.store.Save(ctx, repository.Snapshot{
		Derived:   d,
		Hover:     tracker.State(),
		TooltipID: tracker.ID(),
		EventID:   res.Event.EventID,
	})
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	s.logger.Debug(ctx, "snapshot published",
		logger.String("event_id", res.Event.EventID),
		logger.Uint64("version", snap.Version()),
		logger.Uint64("seq", snap.Seq))
	return nil
}

// Snapshot returns the latest published state.
func (s *Service) Snapshot(ctx context.Context) (repository.Snapshot, error) {
	s.mu.RLock()
	store := s.store
	s.mu.RUnlock()
	if store == nil {
		return repository.Snapshot{}, ErrNotStarted
	}
	return store.Latest(ctx)
}

// Changed returns a channel closed by the next published snapshot.
func (s *Service) Changed() <-chan struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.store == nil {
		return make(chan struct{})
	}
	return s.store.Changed()
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]any{
		"started":       s.started,
		"queueCapacity": s.queueSize,
	}
	if !s.started {
		return stats
	}

	ctx := context.Background()
	queueLen := s.queue.Len(ctx)
	stats["queueLength"] = queueLen
	stats["filter"] = s.controller.Filter().Keys()
	stats["universe"] = s.controller.Universe().Keys()
	stats["viewport"] = s.controller.Viewport()
	stats["showInfo"] = s.controller.ShowInfo()
	stats["hover"] = string(s.controller.Tracker().State().Phase)

	if snap, err := s.store.Latest(ctx); err == nil {
		stats["version"] = snap.Version()
		stats["seq"] = snap.Seq
		stats["issues"] = len(snap.Derived.Issues)
		stats["publishedAt"] = snap.PublishedAt
	}

	metrics.UpdateQueueSize(queueLen)
	return stats
}

func (s *Service) eventQueue() (*eventqueue.InMemoryQueue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.queue, nil
}

func (s *Service) resolve(res dispatcher.Result) { //nolint:gocritic // hugeParam: results travel by value
	s.pmu.Lock()
	defer s.pmu.Unlock()
	if ch, ok := s.pending[res.Event.EventID]; ok {
		delete(s.pending, res.Event.EventID)
		ch <- res
	}
}

func (s *Service) forget(id string) {
	s.pmu.Lock()
	delete(s.pending, id)
	s.pmu.Unlock()
}

func stamp(e model.Event) model.Event { //nolint:gocritic // hugeParam: events travel by value
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.TS.IsZero() {
		e.TS = time.Now()
	}
	return e
}

func rejected(q *eventqueue.InMemoryQueue) error {
	if q.IsClosed() {
		return fmt.Errorf("enqueue: %w", eventqueue.ErrClosed)
	}
	return fmt.Errorf("enqueue: %w", eventqueue.ErrFull)
}
