package repository

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/chartkit/pkg/metrics"
)

// AtomicStore keeps the latest snapshot behind an atomic pointer. Writers are
// serialized; readers never block.
type AtomicStore struct {
	mu      sync.Mutex
	seq     uint64
	changed chan struct{}
	now     func() time.Time

	snapshot atomic.Pointer[Snapshot]
}

// NewAtomicStore constructs an empty store.
func NewAtomicStore(opts ...Option) *AtomicStore {
	s := &AtomicStore{
		changed: make(chan struct{}),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save publishes a snapshot.
func (s *AtomicStore) Save(_ context.Context, snap Snapshot) (Snapshot, error) { //nolint:gocritic // hugeParam: snapshots are values
	s.mu.Lock()
	defer s.mu.Unlock()

	if cur := s.snapshot.Load(); cur != nil && snap.Version() < cur.Version() {
		metrics.RecordErrorByComponent("repository", "stale_snapshot")
		return *cur, fmt.Errorf("%w: version %d < %d", ErrStale, snap.Version(), cur.Version())
	}

	s.seq++
	snap.Seq = s.seq
	if snap.PublishedAt.IsZero() {
		snap.PublishedAt = s.now()
	}
	s.snapshot.Store(&snap)

	close(s.changed)
	s.changed = make(chan struct{})

	metrics.RecordSnapshotPublished(snap.Version())
	return snap, nil
}

// Latest returns the published snapshot.
func (s *AtomicStore) Latest(_ context.Context) (Snapshot, error) {
	cur := s.snapshot.Load()
	if cur == nil {
		return Snapshot{}, ErrNotFound
	}
	return *cur, nil
}

// Changed returns a channel closed by the next successful Save.
func (s *AtomicStore) Changed() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.changed
}
