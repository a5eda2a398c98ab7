package scale_test

import (
	"errors"
	"testing"
	"time"

	"github.com/okian/chartkit/internal/domain/model"
	"github.com/okian/chartkit/internal/domain/scale"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLinear(t *testing.T) {
	Convey("Given linear scales over assorted domains and ranges", t, func() {
		cases := []struct{ lo, hi, r0, r1 float64 }{
			{0, 20, 25, 340},
			{0, 13, 186.2, 10},
			{0, 5_500_000, 469.4, 50},
			{-3.7, 0.1, 0.1, 0.3},
			{1e-9, 3e-9, 17.3, 991.7},
		}

		Convey("Then domain endpoints map exactly onto range endpoints", func() {
			for _, c := range cases {
				s, err := scale.NewLinear(c.lo, c.hi, c.r0, c.r1)
				So(err, ShouldBeNil)
				So(s.Map(c.lo), ShouldEqual, c.r0)
				So(s.Map(c.hi), ShouldEqual, c.r1)
			}
		})

		Convey("Then the mapping is affine and invertible", func() {
			s, err := scale.NewLinear(0, 20, 25, 340)
			So(err, ShouldBeNil)
			So(s.Map(10), ShouldAlmostEqual, 182.5, 1e-9)
			So(s.Map(30), ShouldAlmostEqual, 497.5, 1e-9)
			So(s.Invert(s.Map(7.25)), ShouldAlmostEqual, 7.25, 1e-9)
			So(s.Map(4), ShouldBeLessThan, s.Map(5))
		})

		Convey("Then an inverted range stays monotonic", func() {
			s, err := scale.NewLinear(0, 13, 186.2, 10)
			So(err, ShouldBeNil)
			So(s.Map(4), ShouldBeGreaterThan, s.Map(5))
		})
	})

	Convey("Given a zero-width domain", t, func() {
		_, err := scale.NewLinear(4, 4, 0, 100)

		Convey("Then construction fails with a degenerate domain error", func() {
			So(errors.Is(err, scale.ErrDegenerateDomain), ShouldBeTrue)
			var de *scale.DomainError
			So(errors.As(err, &de), ShouldBeTrue)
			So(de.Scale, ShouldEqual, "linear")
		})
	})

	Convey("Given a scale over the scatter x domain", t, func() {
		s, _ := scale.NewLinear(0, 20, 25, 340)
		ticks := s.Ticks(10)

		Convey("Then ten ticks are requested as a hint and the step is 2", func() {
			So(ticks, ShouldResemble, []float64{0, 2, 4, 6, 8, 10, 12, 14, 16, 18, 20})
		})

		Convey("Then a non-positive tick budget yields nothing", func() {
			So(s.Ticks(0), ShouldBeEmpty)
		})
	})

	Convey("Given tick hints over other domains", t, func() {
		Convey("Then six ticks over [0,13] step by 2", func() {
			s, _ := scale.NewLinear(0, 13, 186.2, 10)
			So(s.Ticks(6), ShouldResemble, []float64{0, 2, 4, 6, 8, 10, 12})
		})

		Convey("Then ten ticks over the ridership ceiling step by 500k", func() {
			s, _ := scale.NewLinear(0, 5_500_000, 357.4, 50)
			ticks := s.Ticks(10)
			So(len(ticks), ShouldEqual, 12)
			for i, v := range ticks {
				So(v, ShouldEqual, float64(i)*500_000)
			}
		})

		Convey("Then fractional steps stay exact", func() {
			s, _ := scale.NewLinear(0, 1, 0, 100)
			So(s.Ticks(5), ShouldResemble, []float64{0, 0.2, 0.4, 0.6, 0.8, 1})
		})

		Convey("Then ticks never leave an offset domain", func() {
			s, _ := scale.NewLinear(3, 17, 0, 100)
			So(s.Ticks(5), ShouldResemble, []float64{4, 6, 8, 10, 12, 14, 16})
		})
	})
}

func TestTime(t *testing.T) {
	t0 := time.Date(2020, time.March, 1, 0, 0, 0, 0, time.UTC)
	t1 := time.Date(2022, time.December, 31, 0, 0, 0, 0, time.UTC)

	Convey("Given a time scale", t, func() {
		s, err := scale.NewTime(t0, t1, 35, 790)
		So(err, ShouldBeNil)

		Convey("Then endpoints map exactly and interior points by elapsed duration", func() {
			So(s.Map(t0), ShouldEqual, 35.0)
			So(s.Map(t1), ShouldEqual, 790.0)
			mid := t0.Add(t1.Sub(t0) / 2)
			So(s.Map(mid), ShouldAlmostEqual, 412.5, 1e-6)
			So(s.Invert(s.Map(mid)).Sub(mid).Seconds(), ShouldAlmostEqual, 0, 1)
		})

		Convey("Then ticks are month aligned and bounded", func() {
			ticks := s.Ticks(10)
			So(len(ticks), ShouldBeGreaterThan, 1)
			So(len(ticks), ShouldBeLessThanOrEqualTo, 10)
			for _, tk := range ticks {
				So(tk.Day(), ShouldEqual, 1)
				So(tk.Before(t0), ShouldBeFalse)
				So(tk.After(t1), ShouldBeFalse)
			}
		})
	})

	Convey("Given equal endpoints", t, func() {
		_, err := scale.NewTime(t0, t0, 0, 100)
		So(errors.Is(err, scale.ErrDegenerateDomain), ShouldBeTrue)
	})
}

func TestBand(t *testing.T) {
	Convey("Given a band scale", t, func() {
		keys := []string{"a", "b", "c", "b", "d", "e", "f", "g"}
		b, err := scale.NewBand(keys, 35, 790)
		So(err, ShouldBeNil)

		Convey("Then duplicate keys collapse and slots tile the range", func() {
			So(b.Len(), ShouldEqual, 7)
			So(b.Bandwidth()*float64(b.Len()), ShouldAlmostEqual, 790.0-35.0, 1e-9)
		})

		Convey("Then positions start at the range origin without padding", func() {
			first, ok := b.Position("a")
			So(ok, ShouldBeTrue)
			So(first, ShouldEqual, 35.0)
			second, _ := b.Position("b")
			So(second-first, ShouldAlmostEqual, b.Bandwidth(), 1e-9)
			last, _ := b.Position("g")
			So(last+b.Bandwidth(), ShouldAlmostEqual, 790.0, 1e-9)
		})

		Convey("Then unknown keys have no slot", func() {
			_, ok := b.Position("zz")
			So(ok, ShouldBeFalse)
		})
	})

	Convey("Given an empty band domain", t, func() {
		_, err := scale.NewBand(nil, 0, 100)
		So(errors.Is(err, scale.ErrDegenerateDomain), ShouldBeTrue)
	})
}

func TestBundles(t *testing.T) {
	Convey("Given the scatter panel box of an 800px viewport", t, func() {
		box := scale.Box{Width: 360, Height: 211.2, Margin: model.Margin{Top: 10, Right: 20, Bottom: 25, Left: 25}}
		b, err := scale.NewScatterBundle(3, box, [2]float64{0, 20}, [2]float64{0, 13})
		So(err, ShouldBeNil)

		Convey("Then the scales span the plot area inside the margins", func() {
			So(b.Version, ShouldEqual, uint64(3))
			So(b.X.Map(0), ShouldEqual, 25.0)
			So(b.X.Map(20), ShouldEqual, 340.0)
			So(b.Y.Map(0), ShouldAlmostEqual, 186.2, 1e-9)
			So(b.Y.Map(13), ShouldEqual, 10.0)
			So(box.Contains(b.X.Map(0), b.Y.Map(0)), ShouldBeTrue)
			So(box.Contains(b.X.Map(20), b.Y.Map(13)), ShouldBeTrue)
		})
	})

	Convey("Given a box smaller than its margins", t, func() {
		box := scale.Box{Width: 40, Height: 20, Margin: model.Margin{Top: 10, Right: 20, Bottom: 25, Left: 25}}
		_, err := scale.NewScatterBundle(1, box, [2]float64{0, 20}, [2]float64{0, 13})
		So(errors.Is(err, scale.ErrDegenerateRange), ShouldBeTrue)
	})

	Convey("Given ridership bounds with a single day", t, func() {
		box := scale.Box{Width: 800, Height: 494.4, Margin: model.Margin{Top: 50, Right: 10, Bottom: 25, Left: 35}}
		d := time.Date(2020, time.March, 1, 0, 0, 0, 0, time.UTC)
		_, err := scale.NewRidershipBundle(1, box, d, d, []string{"2020-03-01"}, 5_500_000)
		So(errors.Is(err, scale.ErrDegenerateDomain), ShouldBeTrue)
	})
}
