// Package config loads editor settings from the environment with
// sensible defaults for local use.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"github.com/vexcanvas/vexcanvas/internal/snap"
)

// Config holds the runtime settings of the editor.
type Config struct {
	LogLevel       string  `envconfig:"VEX_LOG_LEVEL" default:"info"`
	SnapEnabled    bool    `envconfig:"VEX_SNAP_ENABLED" default:"true"`
	SnapRadius     float64 `envconfig:"VEX_SNAP_RADIUS" default:"8"`
	SnapMode       string  `envconfig:"VEX_SNAP_MODE" default:"adaptive"`
	GridSpacing    float64 `envconfig:"VEX_GRID_SPACING" default:"10"`
	ShowDimensions bool    `envconfig:"VEX_SHOW_DIMENSIONS" default:"true"`
	HistoryDepth   int     `envconfig:"VEX_HISTORY_DEPTH" default:"100"`
	MacroPath      string  `envconfig:"VEX_MACRO_PATH" default:""`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.SnapRadius <= 0 {
		return fmt.Errorf("snap radius must be positive, got %v", c.SnapRadius)
	}
	if c.GridSpacing <= 0 {
		return fmt.Errorf("grid spacing must be positive, got %v", c.GridSpacing)
	}
	if c.HistoryDepth < 1 {
		return fmt.Errorf("history depth must be at least 1, got %d", c.HistoryDepth)
	}
	switch c.SnapMode {
	case "fixed", "adaptive":
	default:
		return fmt.Errorf("unknown snap mode %q", c.SnapMode)
	}
	return nil
}

// SnapConfig builds the snap configuration described by the settings.
func (c *Config) SnapConfig() snap.Config {
	sc := snap.DefaultConfig()
	sc.Enabled = c.SnapEnabled
	sc.Radius = c.SnapRadius
	sc.GridSpacing = c.GridSpacing
	if c.SnapMode == "fixed" {
		sc.Mode = snap.ModeFixed
	} else {
		sc.Mode = snap.ModeAdaptive
	}
	return sc
}
