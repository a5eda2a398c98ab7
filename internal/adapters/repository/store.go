// Package repository publishes the derived chart view as immutable snapshots
// that readers load without going through the event loop.
package repository

import (
	"context"
	"time"

	"github.com/okian/chartkit/internal/domain/geometry"
	"github.com/okian/chartkit/internal/domain/interaction"
	"github.com/okian/chartkit/internal/domain/view"
)

// Snapshot is one published state of the chart session.
type Snapshot struct {
	Seq         uint64 // assigned by the store, increases on every save
	Derived     view.Derived
	Hover       interaction.HoverState
	TooltipID   string
	EventID     string // event that produced the snapshot, if any
	PublishedAt time.Time
}

// Tooltip draws the tooltip overlay for the snapshot's hover state.
func (s Snapshot) Tooltip() geometry.Group {
	t := s.Hover.Tooltip
	return geometry.ProjectTooltip(s.TooltipID, t.X, t.Y, t.Content, !t.Visible)
}

// Version returns the recompute version the snapshot was derived at.
func (s Snapshot) Version() uint64 { return s.Derived.Version }

// Store provides read/write access to the published view.
type Store interface {
	// Save publishes s. Snapshots derived at an older version than the
	// published one are rejected with ErrStale.
	Save(ctx context.Context, s Snapshot) (Snapshot, error)

	// Latest returns the published snapshot or ErrNotFound.
	Latest(ctx context.Context) (Snapshot, error)

	// Changed returns a channel closed by the next successful Save.
	Changed() <-chan struct{}
}
