package config_test

import (
	"errors"
	"testing"

	"github.com/okian/chartkit/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.EventQueueSize, convey.ShouldEqual, 1024)
			convey.So(cfg.ViewportWidth, convey.ShouldEqual, 800.0)
			convey.So(cfg.RidershipCeiling, convey.ShouldEqual, 5_500_000.0)
			convey.So(cfg.Years(), convey.ShouldResemble, []string{"2020", "2021", "2022"})
			convey.So(cfg.TooltipWidth, convey.ShouldEqual, 96.0)
			convey.So(cfg.ShowInfo, convey.ShouldBeTrue)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs with invalid values", t, func() {
		cases := []struct {
			name   string
			mutate func(*config.Config)
		}{
			{"empty addr", func(c *config.Config) { c.Addr = "" }},
			{"zero queue", func(c *config.Config) { c.EventQueueSize = 0 }},
			{"negative width", func(c *config.Config) { c.ViewportWidth = -1 }},
			{"zero ceiling", func(c *config.Config) { c.RidershipCeiling = 0 }},
			{"no years", func(c *config.Config) { c.DefaultYears = " , " }},
			{"unknown format", func(c *config.Config) { c.LogFormat = "xml" }},
			{"zero tooltip", func(c *config.Config) { c.TooltipWidth = 0 }},
		}
		for _, tc := range cases {
			cfg := config.New()
			tc.mutate(cfg)
			err := cfg.Validate()

			convey.Convey("Then "+tc.name+" is rejected", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		}
	})
}
