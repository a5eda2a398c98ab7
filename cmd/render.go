package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/okian/chartkit/internal/adapters/render/svg"
	repository "github.com/okian/chartkit/internal/adapters/repository"
	app "github.com/okian/chartkit/internal/app"
	"github.com/okian/chartkit/internal/domain/geometry"
	"github.com/okian/chartkit/internal/domain/model"
	"github.com/okian/chartkit/pkg/logger"
)

// Charts accepted by the render command.
const (
	chartAnscombe  = "anscombe"
	chartRidership = "ridership"
)

var (
	errUnknownChart = errors.New("unknown chart")
	errNoBar        = errors.New("no bar for date")
	errNoChart      = errors.New("chart unavailable")
)

type renderOptions struct {
	chart    string
	out      string
	width    float64
	years    []string
	hideInfo bool
	hover    string
}

func newRenderCmd() *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one chart to an SVG file",
		Long: `render lays out a chart once, without starting the HTTP server, and writes
it as SVG. The ridership chart can be rendered with annotations and with the
tooltip of one day. Annotations follow show_info unless --hide-info is set.`,
		Example: `  chartkit render --chart anscombe --out anscombe.svg
  chartkit render --chart ridership --years 2020,2021 --hide-info --hover 2020-03-02`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, err := setup(ctx, logger.WithWriter(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			svcOpts := serviceOptions(cfg)
			if opts.width > 0 {
				svcOpts = append(svcOpts, app.WithViewportWidth(opts.width))
			}
			svc := app.New(svcOpts...)
			if err := svc.Start(ctx); err != nil {
				return fmt.Errorf("start service: %w", err)
			}
			defer svc.Stop()

			w := cmd.OutOrStdout()
			if opts.out != "" && opts.out != "-" {
				f, err := os.Create(opts.out)
				if err != nil {
					return fmt.Errorf("create %s: %w", opts.out, err)
				}
				defer f.Close()
				w = f
			}
			return render(ctx, svc, opts, w)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.chart, "chart", chartRidership, "chart to render: anscombe or ridership")
	f.StringVarP(&opts.out, "out", "o", "-", "output file, - for stdout")
	f.Float64Var(&opts.width, "width", 0, "container width in pixels, overrides viewport_width")
	f.StringSliceVar(&opts.years, "years", nil, "years to select, default from config")
	f.BoolVar(&opts.hideInfo, "hide-info", false, "hide ridership annotations")
	f.StringVar(&opts.hover, "hover", "", "show the tooltip for a date, YYYY-MM-DD")
	return cmd
}

// render drives svc through the requested events and writes the chart.
func render(ctx context.Context, svc *app.Service, opts renderOptions, w io.Writer) error { //nolint:gocritic // hugeParam: options are read once
	if opts.chart != chartAnscombe && opts.chart != chartRidership {
		return fmt.Errorf("%q: %w", opts.chart, errUnknownChart)
	}

	if len(opts.years) > 0 {
		if err := dispatch(ctx, svc, model.Event{Kind: model.EventSetFilter, Years: opts.years}); err != nil {
			return err
		}
	}
	if opts.hideInfo {
		if err := hideInfo(ctx, svc); err != nil {
			return err
		}
	}
	if opts.hover != "" {
		if err := hover(ctx, svc, opts.hover); err != nil {
			return err
		}
	}

	snap, err := svc.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	scene, ok := sceneOf(snap, opts.chart)
	if !ok {
		return fmt.Errorf("%s: %w", opts.chart, errNoChart)
	}
	if err := svg.Render(w, scene); err != nil {
		return fmt.Errorf("render %s: %w", opts.chart, err)
	}
	return nil
}

func sceneOf(snap repository.Snapshot, chart string) (geometry.Scene, bool) { //nolint:gocritic // hugeParam: snapshots are values
	if chart == chartAnscombe {
		return snap.Derived.ScatterScene()
	}
	return snap.Derived.RidershipScene(snap.Tooltip())
}

// hideInfo flips the info toggle off if annotations are showing.
func hideInfo(ctx context.Context, svc *app.Service) error {
	snap, err := svc.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	if !snap.Derived.ShowInfo {
		return nil
	}
	return dispatch(ctx, svc, model.Event{Kind: model.EventToggleInfo})
}

// hover moves the pointer to the bottom of the bar for date.
func hover(ctx context.Context, svc *app.Service, date string) error {
	snap, err := svc.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	if snap.Derived.Ridership == nil {
		return fmt.Errorf("%s: %w", chartRidership, errNoChart)
	}
	for _, bar := range snap.Derived.Ridership.Bars {
		if bar.Key != date {
			continue
		}
		return dispatch(ctx, svc, model.Event{
			Kind: model.EventPointerMove,
			X:    bar.X + bar.Width/2,
			Y:    bar.Y + bar.Height - 1,
		})
	}
	return fmt.Errorf("%s: %w", date, errNoBar)
}

func dispatch(ctx context.Context, svc *app.Service, e model.Event) error { //nolint:gocritic // hugeParam: events travel by value
	res, err := svc.Dispatch(ctx, e)
	if err != nil {
		return fmt.Errorf("%s: %w", e.Kind, err)
	}
	if res.Err != nil {
		return fmt.Errorf("%s: %w", e.Kind, res.Err)
	}
	return nil
}
