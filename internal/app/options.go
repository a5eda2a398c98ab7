package service

import (
	"github.com/okian/chartkit/internal/adapters/dataset"
	"github.com/okian/chartkit/internal/domain/model"
	"github.com/okian/chartkit/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithQueueSize sets the maximum number of pending UI events.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithViewportWidth sets the width the charts are first laid out at.
func WithViewportWidth(width float64) Option {
	return func(s *Service) {
		if width > 0 {
			s.viewportWidth = width
		}
	}
}

// WithCeiling overrides the ridership value axis top.
func WithCeiling(ceiling float64) Option {
	return func(s *Service) {
		if ceiling > 0 {
			s.ceiling = ceiling
		}
	}
}

// WithDefaultYears sets the initial year selection.
func WithDefaultYears(years ...string) Option {
	return func(s *Service) {
		if len(years) > 0 {
			s.defaultYears = years
		}
	}
}

// WithShowInfo sets whether ridership annotations start visible.
func WithShowInfo(show bool) Option {
	return func(s *Service) {
		s.showInfo = show
	}
}

// WithTooltipPlacement sets the tooltip offsets from the pointer and the box
// width used to keep it inside the viewport.
func WithTooltipPlacement(offsetX, offsetY, width float64) Option {
	return func(s *Service) {
		s.layout.OffsetX = offsetX
		s.layout.OffsetY = offsetY
		if width > 0 {
			s.layout.TooltipWidth = width
		}
	}
}

// WithSource reads datasets from files instead of the embedded copies.
func WithSource(src dataset.Source) Option {
	return func(s *Service) {
		s.source = src
	}
}

// WithDatasets uses already loaded datasets and skips loading.
func WithDatasets(ds model.Datasets) Option {
	return func(s *Service) {
		s.data = &ds
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
