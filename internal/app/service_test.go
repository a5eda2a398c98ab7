package service_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	eventqueue "github.com/okian/chartkit/internal/adapters/mq/queue"
	service "github.com/okian/chartkit/internal/app"
	"github.com/okian/chartkit/internal/domain/interaction"
	"github.com/okian/chartkit/internal/domain/model"
	"github.com/okian/chartkit/internal/domain/view"
	"github.com/okian/chartkit/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestServiceLifecycle(t *testing.T) {
	Convey("Given a service that has not been started", t, func() {
		svc := service.New()
		ctx := context.Background()

		Convey("Then events and snapshots are refused", func() {
			_, err := svc.Dispatch(ctx, model.Event{Kind: model.EventToggleInfo})
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)

			_, err = svc.Submit(ctx, model.Event{Kind: model.EventToggleInfo})
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)

			_, err = svc.Snapshot(ctx)
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)

			So(svc.GetStats()["started"], ShouldEqual, false)
		})

		Convey("When it is started and stopped", func() {
			So(svc.Start(ctx), ShouldBeNil)
			So(svc.Start(ctx), ShouldBeNil)
			svc.Stop()
			svc.Stop()

			Convey("Then it refuses new events", func() {
				_, err := svc.Dispatch(ctx, model.Event{Kind: model.EventToggleInfo})
				So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			})
		})
	})
}

// lockedBuffer collects log output written from the event loop.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestServicePublishLogging(t *testing.T) {
	Convey("Given a service logging at debug level", t, func() {
		out := &lockedBuffer{}
		So(logger.Init(logger.WithWriter(out), logger.WithLevel("debug")), ShouldBeNil)
		defer func() { _ = logger.Init() }()

		ctx := context.Background()
		svc := service.New(service.WithViewportWidth(640))
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When an event settles", func() {
			res, err := svc.Dispatch(ctx, model.Event{Kind: model.EventToggleInfo})
			So(err, ShouldBeNil)
			snap, err := svc.Snapshot(ctx)
			So(err, ShouldBeNil)

			Convey("Then the published version and sequence are logged", func() {
				logs := out.String()
				So(logs, ShouldContainSubstring, "snapshot published")
				So(logs, ShouldContainSubstring, "event_id="+res.Event.EventID)
				So(logs, ShouldContainSubstring, fmt.Sprintf("version=%d", snap.Version()))
				So(logs, ShouldContainSubstring, fmt.Sprintf("seq=%d", snap.Seq))
			})
		})
	})
}

func TestServiceIntegration(t *testing.T) {
	Convey("Given a started service over the embedded datasets", t, func() {
		svc := service.New(
			service.WithQueueSize(64),
			service.WithViewportWidth(800),
		)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		snap, err := svc.Snapshot(ctx)
		So(err, ShouldBeNil)

		Convey("Then the first layout is published", func() {
			So(snap.Version(), ShouldEqual, uint64(1))
			So(snap.Derived.Viewport.Width, ShouldEqual, 800.0)
			So(snap.Derived.Viewport.Height, ShouldAlmostEqual, 494.4, 1e-9)
			So(snap.Derived.Filter.Keys(), ShouldResemble, []string{"2020", "2021", "2022"})
			So(snap.Derived.Scatter, ShouldNotBeNil)
			So(snap.Derived.Ridership, ShouldNotBeNil)
			So(snap.Tooltip().Hidden, ShouldBeTrue)
			So(snap.TooltipID, ShouldEqual, "tooltip-"+snap.Derived.Session)
			So(snap.Tooltip().ID, ShouldEqual, snap.TooltipID)
		})

		Convey("When a year is unchecked", func() {
			res, err := svc.Dispatch(ctx, model.Event{Kind: model.EventToggleYear, Year: "2020", Checked: false})
			So(err, ShouldBeNil)

			Convey("Then the new selection is published", func() {
				So(res.Err, ShouldBeNil)
				So(res.Applied, ShouldBeTrue)
				latest, err := svc.Snapshot(ctx)
				So(err, ShouldBeNil)
				So(latest.Version(), ShouldEqual, uint64(2))
				So(latest.EventID, ShouldEqual, res.Event.EventID)
				So(latest.Derived.Filter.Keys(), ShouldResemble, []string{"2021", "2022"})
			})
		})

		Convey("When the selection would become empty", func() {
			res, err := svc.Dispatch(ctx, model.Event{Kind: model.EventSetFilter})
			So(err, ShouldBeNil)

			Convey("Then it is ignored", func() {
				So(res.Applied, ShouldBeFalse)
				So(res.Err, ShouldBeNil)
				latest, _ := svc.Snapshot(ctx)
				So(latest.Derived.Filter.Keys(), ShouldResemble, []string{"2020", "2021", "2022"})
			})
		})

		Convey("When an unknown year is toggled", func() {
			res, err := svc.Dispatch(ctx, model.Event{Kind: model.EventToggleYear, Year: "1999", Checked: true})
			So(err, ShouldBeNil)

			Convey("Then the event fails with ErrUnknownKey", func() {
				So(errors.Is(res.Err, view.ErrUnknownKey), ShouldBeTrue)
			})
		})

		Convey("When the pointer moves over a bar and leaves", func() {
			bar := snap.Derived.Ridership.Bars[0]
			res, err := svc.Dispatch(ctx, model.Event{Kind: model.EventPointerMove, X: bar.X + bar.Width/2, Y: bar.Y + bar.Height - 1})
			So(err, ShouldBeNil)
			So(res.Applied, ShouldBeTrue)

			hovering, _ := svc.Snapshot(ctx)

			_, err = svc.Dispatch(ctx, model.Event{Kind: model.EventPointerLeave})
			So(err, ShouldBeNil)
			left, _ := svc.Snapshot(ctx)

			Convey("Then the tooltip is shown and then hidden", func() {
				So(hovering.Hover.Phase, ShouldEqual, interaction.PhaseHovering)
				So(hovering.Tooltip().Hidden, ShouldBeFalse)
				So(hovering.Version(), ShouldEqual, snap.Version())
				So(left.Hover.Phase, ShouldEqual, interaction.PhaseIdle)
				So(left.Tooltip().Hidden, ShouldBeTrue)
				So(left.Seq, ShouldBeGreaterThan, hovering.Seq)
			})
		})

		Convey("When the info toggle is submitted without waiting", func() {
			changed := svc.Changed()
			id, err := svc.Submit(ctx, model.Event{Kind: model.EventToggleInfo})
			So(err, ShouldBeNil)
			So(id, ShouldNotBeEmpty)

			select {
			case <-changed:
			case <-ctx.Done():
				t.Fatal("no snapshot published")
			}

			Convey("Then annotations become hidden", func() {
				latest, _ := svc.Snapshot(ctx)
				So(latest.Derived.ShowInfo, ShouldBeFalse)
				So(latest.Derived.Ridership.Notes.Hidden, ShouldBeTrue)
			})
		})

		Convey("When the container is resized", func() {
			res, err := svc.Dispatch(ctx, model.Event{Kind: model.EventResize, Width: 400})
			So(err, ShouldBeNil)
			So(res.Err, ShouldBeNil)

			Convey("Then the layout follows", func() {
				latest, _ := svc.Snapshot(ctx)
				So(latest.Derived.Viewport.Width, ShouldEqual, 400.0)
				So(latest.Derived.Scatter.Box.Width, ShouldAlmostEqual, 180.0, 1e-9)
			})
		})

		Convey("Then stats describe the session", func() {
			stats := svc.GetStats()
			So(stats["started"], ShouldEqual, true)
			So(stats["queueCapacity"], ShouldEqual, 64)
			So(stats["universe"], ShouldResemble, []string{"2020", "2021", "2022"})
			So(stats["version"], ShouldEqual, uint64(1))
		})
	})
}

func TestServiceDatasetOverride(t *testing.T) {
	Convey("Given a service over a small in-memory dataset", t, func() {
		data := model.Datasets{
			Scatter: []model.ScatterRecord{
				{ID: 1, Dataset: "I", X: 4, Y: 4.26},
				{ID: 2, Dataset: "I", X: 10, Y: 8.04},
			},
			Ridership: []model.TimeSeriesRecord{
				{Date: time.Date(2019, time.June, 3, 0, 0, 0, 0, time.UTC), Ridership: 5_000_000},
			},
		}
		svc := service.New(
			service.WithDatasets(data),
			service.WithDefaultYears("2020"),
			service.WithTooltipPlacement(10, 10, 50),
			service.WithCeiling(6_000_000),
		)
		ctx := context.Background()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("Then the selection falls back to the whole universe", func() {
			snap, err := svc.Snapshot(ctx)
			So(err, ShouldBeNil)
			So(snap.Derived.Filter.Keys(), ShouldResemble, []string{"2019"})
			_, top := snap.Derived.Ridership.Bundle.Y.Domain()
			So(top, ShouldEqual, 6_000_000.0)
		})

		Convey("Then a stopped service rejects queued work", func() {
			svc.Stop()
			_, err := svc.Submit(ctx, model.Event{Kind: model.EventToggleInfo})
			So(errors.Is(err, service.ErrNotStarted) || errors.Is(err, eventqueue.ErrClosed), ShouldBeTrue)
		})
	})
}
