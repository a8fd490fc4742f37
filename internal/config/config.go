// Package config carries the export tool's settings: canvas geometry,
// encoding parameters, and the drive mode. Settings come from an
// optional YAML file overridden by flags; the scene itself is never
// serialized.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Modes for driving the shared evaluator during export.
const (
	ModePlay = "play" // clock time, as in live playback
	ModeZine = "zine" // simulated scroll through the zine view
)

type Config struct {
	InputPath   string `yaml:"input"`
	OutputVideo string `yaml:"output"`
	AudioPath   string `yaml:"audio"`

	Mode string `yaml:"mode"`

	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	FPS    int `yaml:"fps"`
	DPI    int `yaml:"dpi"`

	// Zine view tuning: the scroll-to-time ratio and how fast the
	// export scrolls through the page.
	PixelsPerSecond float64 `yaml:"pixels_per_second"`
	ScrollSpeed     float64 `yaml:"scroll_speed"`

	// Playback speed multiplier for play-mode export.
	Speed float64 `yaml:"speed"`

	Workers int `yaml:"workers"` // 0 = autotune

	VideoEncoder string `yaml:"encoder"` // empty = probe
	Quality      int    `yaml:"quality"`

	Title string `yaml:"title"`
	Link  string `yaml:"link"`

	ShowStats bool `yaml:"stats"`
}

// Default returns the baseline configuration.
func Default() *Config {
	return &Config{
		OutputVideo:     "output/zine.mp4",
		Mode:            ModePlay,
		Width:           1280,
		Height:          720,
		FPS:             30,
		DPI:             150,
		PixelsPerSecond: 100,
		ScrollSpeed:     200,
		Speed:           1,
		Quality:         23,
	}
}

// Load reads a YAML settings file over the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the exporter cannot run with.
func (c *Config) Validate() error {
	if c.Mode != ModePlay && c.Mode != ModeZine {
		return fmt.Errorf("unknown mode %q", c.Mode)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid canvas size %dx%d", c.Width, c.Height)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("invalid fps %d", c.FPS)
	}
	if c.PixelsPerSecond <= 0 {
		return fmt.Errorf("pixels_per_second must be positive")
	}
	if c.Mode == ModeZine && c.ScrollSpeed <= 0 {
		return fmt.Errorf("scroll_speed must be positive in zine mode")
	}
	if c.Speed <= 0 {
		return fmt.Errorf("speed must be positive")
	}
	return nil
}
