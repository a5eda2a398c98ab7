package dataset_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/okian/chartkit/internal/adapters/dataset"
	"github.com/okian/chartkit/internal/domain/model"
	"github.com/okian/chartkit/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	_ = logger.Init()
}

func TestDecode(t *testing.T) {
	Convey("Given a ridership JSON document with string and numeric values", t, func() {
		doc := `[
			{"date": "2020-03-07T00:00:00.000", "subways_total_estimated_ridership": "2150000", "buses_total_estimated_ridership": 900000},
			{"date": "2020-03-08", "subways_total_estimated_ridership": 1650000}
		]`
		recs, err := dataset.DecodeRidership(strings.NewReader(doc), dataset.FormatJSON)

		Convey("Then both rows decode to midnight UTC", func() {
			So(err, ShouldBeNil)
			So(len(recs), ShouldEqual, 2)
			So(recs[0].Date, ShouldEqual, time.Date(2020, time.March, 7, 0, 0, 0, 0, time.UTC))
			So(recs[0].Ridership, ShouldEqual, 2_150_000.0)
			So(recs[1].IsWeekend(), ShouldBeTrue)
		})
	})

	Convey("Given a YAML annotation document", t, func() {
		doc := `
- date: 2021-05-17
  value: 2000000
  length: 4800000
  message: 24-hour service resumes
  justify: middle
- date: "2021-09-13T00:00:00Z"
  value: 2400000
  length: 5000000
  message: Schools reopen
  justify: sideways
`
		recs, err := dataset.DecodeAnnotations(strings.NewReader(doc), dataset.FormatYAML)

		Convey("Then anchors are parsed and unknown ones fall back to start", func() {
			So(err, ShouldBeNil)
			So(len(recs), ShouldEqual, 2)
			So(recs[0].Justify, ShouldEqual, model.AnchorMiddle)
			So(recs[1].Justify, ShouldEqual, model.AnchorStart)
			So(recs[1].Date.Day(), ShouldEqual, 13)
		})
	})

	Convey("Given a scatter row with a bad value", t, func() {
		doc := `[{"id": 1, "dataset": "I", "x": "ten", "y": 8.04}]`
		_, err := dataset.DecodeScatter(strings.NewReader(doc), dataset.FormatJSON)

		Convey("Then the row is reported", func() {
			So(errors.Is(err, dataset.ErrInvalidRecord), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "row 0 field x")
		})
	})

	Convey("Given an unknown extension", t, func() {
		_, err := dataset.FormatOf("data.csv")
		So(errors.Is(err, dataset.ErrUnsupportedFormat), ShouldBeTrue)
	})
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	Convey("Given the embedded datasets", t, func() {
		ds, err := dataset.Embedded(ctx)

		Convey("Then the full quartet and three years of ridership are available", func() {
			So(err, ShouldBeNil)
			So(len(ds.Scatter), ShouldEqual, 44)
			So(ds.ScatterPartitions(), ShouldResemble, []string{"I", "II", "III", "IV"})
			So(ds.Years(), ShouldResemble, []string{"2020", "2021", "2022"})
			So(len(ds.Annotations), ShouldBeGreaterThan, 0)
			for _, r := range ds.Ridership {
				So(r.Ridership, ShouldBeLessThanOrEqualTo, 5_500_000)
			}
		})
	})

	Convey("Given a YAML scatter file on disk", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "scatter.yaml")
		So(os.WriteFile(path, []byte("- {id: 1, dataset: I, x: 1, y: 2}\n- {id: 2, dataset: I, x: 2, y: 4}\n"), 0o600), ShouldBeNil)

		ds, err := dataset.Load(ctx, dataset.Source{ScatterPath: path})

		Convey("Then it replaces the embedded scatter set only", func() {
			So(err, ShouldBeNil)
			So(len(ds.Scatter), ShouldEqual, 2)
			So(len(ds.Ridership), ShouldBeGreaterThan, 1000)
		})
	})

	Convey("Given a missing file", t, func() {
		_, err := dataset.Load(ctx, dataset.Source{RidershipPath: "/does/not/exist.json"})
		So(err, ShouldNotBeNil)
		So(errors.Is(err, os.ErrNotExist), ShouldBeTrue)
	})

	Convey("Given an empty ridership file", t, func() {
		path := filepath.Join(t.TempDir(), "ridership.json")
		So(os.WriteFile(path, []byte("[]"), 0o600), ShouldBeNil)
		_, err := dataset.Load(ctx, dataset.Source{RidershipPath: path})
		So(errors.Is(err, dataset.ErrEmptyDataset), ShouldBeTrue)
	})
}
