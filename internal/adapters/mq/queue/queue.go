// Package queue holds UI events between the HTTP host and the event loop.
//
// Enqueue never blocks: a full or closed queue drops the event and reports
// false, so a slow pass cannot stall request handlers.
package queue

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/okian/chartkit/internal/domain/model"
	"github.com/okian/chartkit/pkg/metrics"
)

const defaultCapacity = 1024

// Event is the payload flowing through the queue.
type Event = model.Event

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds an event. It returns false when the event was dropped.
	Enqueue(ctx context.Context, e Event) bool

	// Dequeue returns a channel that yields events in submission order.
	// The channel is closed once the queue is closed and drained.
	Dequeue(ctx context.Context) <-chan Event

	// Len returns the number of pending events.
	Len(ctx context.Context) int

	// Close stops accepting events.
	Close() error

	// IsClosed reports whether Close has been called.
	IsClosed() bool
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	events   chan Event
	capacity int

	mu     sync.RWMutex
	closed bool
}

// NewInMemoryQueue creates a queue with the given options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{capacity: defaultCapacity}
	for _, opt := range opts {
		opt(q)
	}
	q.events = make(chan Event, q.capacity)

	metrics.UpdateQueueCapacity(q.capacity)
	q.observe(0)
	return q
}

// Capacity returns the maximum number of pending events.
func (q *InMemoryQueue) Capacity() int { return q.capacity }

// Enqueue adds an event to the queue.
func (q *InMemoryQueue) Enqueue(ctx context.Context, e Event) bool { //nolint:gocritic // hugeParam: events travel by value
	start := time.Now()
	defer func() {
		metrics.RecordQueueProcessingLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		q.reject(ErrClosed)
		return false
	}
	if err := ctx.Err(); err != nil {
		q.reject(err)
		return false
	}

	select {
	case q.events <- e:
		metrics.RecordQueueEnqueue()
		q.observe(len(q.events))
		return true
	default:
		q.reject(ErrFull)
		return false
	}
}

// Dequeue returns a channel that will receive events as they become available.
func (q *InMemoryQueue) Dequeue(ctx context.Context) <-chan Event {
	out := make(chan Event)
	go func() {
		defer close(out)
		for e := range q.events {
			select {
			case out <- e:
				metrics.RecordQueueDequeue()
				q.observe(len(q.events))
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Len returns the current number of queued events.
func (q *InMemoryQueue) Len(_ context.Context) int {
	n := len(q.events)
	q.observe(n)
	return n
}

// Close gracefully shuts down the queue. Pending events are still delivered.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return nil
	}
	close(q.events)
	q.closed = true
	return nil
}

// IsClosed returns true if the queue has been closed.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}

func (q *InMemoryQueue) observe(n int) {
	metrics.UpdateQueueSize(n)
	metrics.UpdateQueueUtilization(float64(n) / float64(q.capacity))
}

func (q *InMemoryQueue) reject(reason error) {
	metrics.RecordQueueEnqueueError()
	switch {
	case errors.Is(reason, ErrClosed):
		metrics.RecordErrorByComponent("queue", "closed")
	case errors.Is(reason, ErrFull):
		metrics.RecordErrorByComponent("queue", "queue_full")
	default:
		metrics.RecordErrorByComponent("queue", "context_cancelled")
	}
}
