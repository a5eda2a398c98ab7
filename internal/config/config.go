// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers a YAML file and environment variables over the defaults.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"fmt"
	"strings"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// EventQueueSize bounds the UI event queue.
	EventQueueSize int `koanf:"queue_size"`

	// ViewportWidth is the container width assumed until a client reports one.
	ViewportWidth float64 `koanf:"viewport_width"`

	// RidershipCeiling is the top of the ridership value axis.
	RidershipCeiling float64 `koanf:"ridership_ceiling"`

	// DefaultYears is a comma separated initial year selection.
	DefaultYears string `koanf:"default_years"`

	// ShowInfo shows the ridership annotations until the info toggle hides them.
	ShowInfo bool `koanf:"show_info"`

	// Tooltip placement relative to the pointer; the width bounds the right-edge clamp.
	TooltipOffsetX float64 `koanf:"tooltip_offset_x"`
	TooltipOffsetY float64 `koanf:"tooltip_offset_y"`
	TooltipWidth   float64 `koanf:"tooltip_width"`

	// Dataset files; empty paths use the embedded datasets.
	ScatterPath     string `koanf:"scatter_path"`
	RidershipPath   string `koanf:"ridership_path"`
	AnnotationsPath string `koanf:"annotations_path"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        "text",
		Addr:             ":9080",
		EventQueueSize:   1024,
		ViewportWidth:    800,
		RidershipCeiling: 5_500_000,
		DefaultYears:     "2020,2021,2022",
		ShowInfo:         true,
		TooltipOffsetX:   42,
		TooltipOffsetY:   40,
		TooltipWidth:     96,
	}
}

// Years splits DefaultYears into trimmed, non-empty keys.
func (c *Config) Years() []string {
	var out []string
	for _, y := range strings.Split(c.DefaultYears, ",") {
		if y = strings.TrimSpace(y); y != "" {
			out = append(out, y)
		}
	}
	return out
}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("addr must not be empty: %w", ErrInvalidConfig)
	case c.EventQueueSize <= 0:
		return fmt.Errorf("queue_size must be positive, got %d: %w", c.EventQueueSize, ErrInvalidConfig)
	case c.ViewportWidth <= 0:
		return fmt.Errorf("viewport_width must be positive, got %g: %w", c.ViewportWidth, ErrInvalidConfig)
	case c.RidershipCeiling <= 0:
		return fmt.Errorf("ridership_ceiling must be positive, got %g: %w", c.RidershipCeiling, ErrInvalidConfig)
	case c.TooltipWidth <= 0:
		return fmt.Errorf("tooltip_width must be positive, got %g: %w", c.TooltipWidth, ErrInvalidConfig)
	case len(c.Years()) == 0:
		return fmt.Errorf("default_years must name at least one year: %w", ErrInvalidConfig)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("log_format %q: %w", c.LogFormat, ErrInvalidConfig)
	}
	return nil
}
