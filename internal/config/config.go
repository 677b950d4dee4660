// Package config loads the roadtrace YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"roadtrace/internal/draw"
	"roadtrace/internal/elevation"
	"roadtrace/internal/metrics"
	"roadtrace/internal/store"
)

// DefaultPath is read when no --config is given. It may be absent.
const DefaultPath = "roadtrace.yaml"

// Config is the root of roadtrace.yaml.
type Config struct {
	Metrics   metrics.Params `yaml:"metrics"`
	Elevation Elevation      `yaml:"elevation"`
	Drawing   Drawing        `yaml:"drawing"`
	Store     Store          `yaml:"store"`
	View      View           `yaml:"view"`
}

type Elevation struct {
	URL            string        `yaml:"url"`
	SampleEvery    int           `yaml:"sample_every"`
	Timeout        time.Duration `yaml:"timeout"`
	RequestsPerSec int           `yaml:"requests_per_sec"`
	CacheTTL       time.Duration `yaml:"cache_ttl"`
	Enabled        bool          `yaml:"enabled"`
}

type Drawing struct {
	PanTrigger string `yaml:"pan_trigger"`
}

type Store struct {
	Dir string `yaml:"dir"`
}

// View is the initial map extent when no base layer is loaded.
type View struct {
	MinLat float64 `yaml:"min_lat"`
	MinLon float64 `yaml:"min_lon"`
	MaxLat float64 `yaml:"max_lat"`
	MaxLon float64 `yaml:"max_lon"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Metrics: metrics.DefaultParams(),
		Elevation: Elevation{
			URL:            elevation.DefaultURL,
			SampleEvery:    elevation.DefaultSampleEvery,
			Timeout:        10 * time.Second,
			RequestsPerSec: 5,
			CacheTTL:       30 * 24 * time.Hour,
			Enabled:        true,
		},
		Drawing: Drawing{PanTrigger: draw.ShiftHold.String()},
		Store:   Store{Dir: store.DefaultDir},
		View:    View{MinLat: -60, MinLon: -180, MaxLat: 75, MaxLon: 180},
	}
}

// Load reads path over the defaults. A missing file is an error unless
// optional is set, in which case the defaults are returned.
func Load(path string, optional bool) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	switch {
	case c.Metrics.CornerThresholdDeg < 0:
		return errors.New("metrics.corner_threshold_deg must not be negative")
	case c.Metrics.MinSegmentM < 0:
		return errors.New("metrics.min_segment_m must not be negative")
	case c.Metrics.TwistinessScale <= 0:
		return errors.New("metrics.twistiness_scale must be positive")
	case c.Elevation.SampleEvery < 1:
		return errors.New("elevation.sample_every must be at least 1")
	case c.Elevation.Timeout < 0:
		return errors.New("elevation.timeout must not be negative")
	case c.Elevation.RequestsPerSec < 1:
		return errors.New("elevation.requests_per_sec must be at least 1")
	case c.Elevation.Enabled && c.Elevation.URL == "":
		return errors.New("elevation.url is required when elevation is enabled")
	}
	if _, err := c.PanTrigger(); err != nil {
		return fmt.Errorf("drawing.pan_trigger: %w", err)
	}
	v := c.View
	if v.MinLat >= v.MaxLat || v.MinLon >= v.MaxLon ||
		v.MinLat < -90 || v.MaxLat > 90 || v.MinLon < -180 || v.MaxLon > 180 {
		return fmt.Errorf("view box %+v is empty or out of range", v)
	}
	return nil
}

func (c *Config) PanTrigger() (draw.PanTrigger, error) {
	return draw.ParsePanTrigger(c.Drawing.PanTrigger)
}
