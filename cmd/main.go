package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/okian/chartkit/internal/adapters/dataset"
	app "github.com/okian/chartkit/internal/app"
	"github.com/okian/chartkit/internal/config"
	"github.com/okian/chartkit/pkg/logger"
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "chartkit:", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:           "chartkit",
		Short:         "Anscombe quartet and subway ridership charts",
		Long:          `chartkit lays out the Anscombe quartet with regression lines and a daily subway ridership bar chart, and serves or renders them as SVG.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			// --config wins over an inherited CHARTKIT_CONFIG.
			if cfgFile != "" {
				_ = os.Setenv(config.EnvConfig, cfgFile)
			}
		},
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML config file (default $"+config.EnvConfig+")")

	root.AddCommand(newServeCmd(), newRenderCmd())
	return root
}

// setup loads configuration and initializes logging. opts are applied after
// the configured format and level.
func setup(ctx context.Context, opts ...logger.Option) (*config.Config, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := logger.Init(append([]logger.Option{logger.WithFormat(cfg.LogFormat), logger.WithLevel(cfg.LogLevel)}, opts...)...); err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}
	return cfg, nil
}

// serviceOptions maps configuration onto service options.
func serviceOptions(cfg *config.Config) []app.Option {
	return []app.Option{
		app.WithLogger(logger.Get().Named("service")),
		app.WithQueueSize(cfg.EventQueueSize),
		app.WithViewportWidth(cfg.ViewportWidth),
		app.WithCeiling(cfg.RidershipCeiling),
		app.WithDefaultYears(cfg.Years()...),
		app.WithShowInfo(cfg.ShowInfo),
		app.WithTooltipPlacement(cfg.TooltipOffsetX, cfg.TooltipOffsetY, cfg.TooltipWidth),
		app.WithSource(dataset.Source{
			ScatterPath:     cfg.ScatterPath,
			RidershipPath:   cfg.RidershipPath,
			AnnotationsPath: cfg.AnnotationsPath,
		}),
	}
}
