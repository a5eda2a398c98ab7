package interaction_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/okian/chartkit/internal/domain/geometry"
	"github.com/okian/chartkit/internal/domain/interaction"
	"github.com/okian/chartkit/internal/domain/model"
	"github.com/okian/chartkit/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	_ = logger.Init()
}

var wednesday = model.TimeSeriesRecord{
	Date:      time.Date(2020, time.March, 4, 0, 0, 0, 0, time.UTC),
	Ridership: 1234567,
}

func TestTransitions(t *testing.T) {
	layout := interaction.DefaultLayout(800)

	Convey("Given an idle hover state", t, func() {
		s := interaction.Idle()

		Convey("When entering a record", func() {
			entered := interaction.Enter(s, wednesday, layout)

			Convey("Then the tooltip shows the record", func() {
				So(entered.Phase, ShouldEqual, interaction.PhaseHovering)
				So(entered.Active, ShouldNotBeNil)
				So(entered.Active.Date, ShouldEqual, wednesday.Date)
				So(entered.Tooltip.Visible, ShouldBeTrue)
				So(entered.Tooltip.Content.Headline, ShouldEqual, "1.23M Riders")
				So(entered.Tooltip.Content.Detail, ShouldEqual, "Wed 3/4/2020")
			})

			Convey("Then entering the same record again changes nothing", func() {
				again := interaction.Enter(entered, wednesday, layout)
				So(again, ShouldResemble, entered)
			})

			Convey("Then the input state is untouched", func() {
				So(s.Phase, ShouldEqual, interaction.PhaseIdle)
				So(s.Active, ShouldBeNil)
			})

			Convey("When leaving", func() {
				left := interaction.Leave(entered)

				Convey("Then the record is cleared and the tooltip hidden", func() {
					So(left.Phase, ShouldEqual, interaction.PhaseIdle)
					So(left.Active, ShouldBeNil)
					So(left.Tooltip.Visible, ShouldBeFalse)
				})
			})
		})

		Convey("When moving while idle", func() {
			moved := interaction.Move(s, 300, 200, layout)

			Convey("Then the pointer is tracked but the tooltip stays hidden", func() {
				So(moved.Phase, ShouldEqual, interaction.PhaseIdle)
				So(moved.PointerX, ShouldEqual, 300.0)
				So(moved.Tooltip.Visible, ShouldBeFalse)
			})
		})
	})
}

func TestAnchor(t *testing.T) {
	Convey("Given an 800px viewport", t, func() {
		layout := interaction.DefaultLayout(800)

		Convey("Then the tooltip sits up and left of the pointer", func() {
			x, y := layout.Anchor(300, 200)
			So(x, ShouldEqual, 258.0)
			So(y, ShouldEqual, 160.0)
		})

		Convey("Then near the right edge it is clamped inside the viewport", func() {
			x, _ := layout.Anchor(790, 200)
			So(x, ShouldEqual, float64(800-geometry.TooltipWidth))
		})

		Convey("Then near the top-left corner it is clamped to zero", func() {
			x, y := layout.Anchor(10, 5)
			So(x, ShouldEqual, 0.0)
			So(y, ShouldEqual, 0.0)
		})
	})
}

func TestHitTest(t *testing.T) {
	Convey("Given two adjacent bars", t, func() {
		bars := []geometry.Rect{
			{X: 0, Y: 10, Width: 10, Height: 90},
			{X: 10, Y: 50, Width: 10, Height: 50},
		}

		Convey("Then the shared edge belongs to the right bar", func() {
			i, ok := interaction.HitTest(bars, 10, 60)
			So(ok, ShouldBeTrue)
			So(i, ShouldEqual, 1)
		})

		Convey("Then points above a short bar miss", func() {
			_, ok := interaction.HitTest(bars, 15, 20)
			So(ok, ShouldBeFalse)
		})
	})
}

func TestTracker(t *testing.T) {
	ctx := context.Background()

	Convey("Given a tracker", t, func() {
		tr := interaction.NewTracker(interaction.WithLayout(interaction.DefaultLayout(800)))
		id := tr.ID()
		records := []model.TimeSeriesRecord{wednesday, {Date: wednesday.Date.AddDate(0, 0, 1), Ridership: 2e6}}
		bars := []geometry.Rect{
			{X: 100, Y: 100, Width: 10, Height: 100},
			{X: 110, Y: 50, Width: 10, Height: 150},
		}

		Convey("When the pointer hovers a bar", func() {
			s, err := tr.Pointer(ctx, 105, 150, bars, records)

			Convey("Then that record becomes active", func() {
				So(err, ShouldBeNil)
				So(s.Phase, ShouldEqual, interaction.PhaseHovering)
				So(s.Active.Date, ShouldEqual, wednesday.Date)
				So(tr.Group().Hidden, ShouldBeFalse)
			})

			Convey("When the pointer leaves every bar", func() {
				s, err = tr.Pointer(ctx, 300, 10, bars, records)

				Convey("Then the tooltip is hidden but keeps its id", func() {
					So(err, ShouldBeNil)
					So(s.Phase, ShouldEqual, interaction.PhaseIdle)
					g := tr.Group()
					So(g.Hidden, ShouldBeTrue)
					So(g.ID, ShouldEqual, id)
				})
			})
		})

		Convey("When bars and records are misaligned", func() {
			_, err := tr.Pointer(ctx, 105, 150, bars[:1], records)
			So(errors.Is(err, interaction.ErrMisalignedBars), ShouldBeTrue)
		})

		Convey("When the layout shrinks", func() {
			tr.Enter(ctx, wednesday)
			tr.Move(ctx, 700, 100)
			tr.SetLayout(interaction.DefaultLayout(400))

			Convey("Then the tooltip is re-anchored inside the new width", func() {
				So(tr.State().Tooltip.X, ShouldEqual, float64(400-geometry.TooltipWidth))
			})
		})
	})
}
