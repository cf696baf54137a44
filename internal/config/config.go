// Package config holds the plotter's tunables and their YAML file form.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"plotview/graph/render"
	"plotview/graph/sampler"
	"plotview/graph/viewport"
)

// DefaultPath is used when no --config flag is given.
const DefaultPath = "plotview.yaml"

// Config is the complete plotter configuration.
type Config struct {
	Viewport  ViewportConfig  `yaml:"viewport"`
	Pan       PanConfig       `yaml:"pan"`
	Zoom      ZoomConfig      `yaml:"zoom"`
	Sampling  SamplingConfig  `yaml:"sampling"`
	Axis      AxisConfig      `yaml:"axis"`
	Crosshair CrosshairConfig `yaml:"crosshair"`
	Debug     DebugConfig     `yaml:"debug"`
	Labels    LabelsConfig    `yaml:"labels"`
	Log       LogConfig       `yaml:"log"`
}

type ViewportConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PanConfig scales pointer motion into offset motion. YSpeed is negative
// because screen y grows downward.
type PanConfig struct {
	XSpeed float64 `yaml:"x_speed"`
	YSpeed float64 `yaml:"y_speed"`
}

type ZoomConfig struct {
	Speed float64 `yaml:"speed"`
	Min   float64 `yaml:"min"`
	Max   float64 `yaml:"max"`
}

type SamplingConfig struct {
	Step      float64 `yaml:"step"`
	Generator string  `yaml:"generator"`
	// Mode is "derive" or "accumulate".
	Mode string `yaml:"mode"`
	// MaxSegments caps the segments per frame; 0 means no cap.
	MaxSegments int `yaml:"max_segments"`
}

type AxisConfig struct {
	XScale      float64 `yaml:"x_scale"`
	YScale      float64 `yaml:"y_scale"`
	MaxInterval float64 `yaml:"max_interval"`
	TickLen     int     `yaml:"tick_len"`
}

type CrosshairConfig struct {
	FadeFrames uint `yaml:"fade_frames"`
	Size       int  `yaml:"size"`
}

type DebugConfig struct {
	HighlightSegments bool `yaml:"highlight_segments"`
}

type LabelsConfig struct {
	// OnFailure is "skip" or "abort".
	OnFailure string `yaml:"on_failure"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration of the reference plotter.
func Default() *Config {
	vp := viewport.DefaultParams()
	return &Config{
		Viewport: ViewportConfig{Width: 640, Height: 480},
		Pan:      PanConfig{XSpeed: vp.PanX, YSpeed: vp.PanY},
		Zoom:     ZoomConfig{Speed: vp.ZoomSpeed, Min: vp.MinZoom, Max: vp.MaxZoom},
		Sampling: SamplingConfig{
			Step:      0.001,
			Generator: sampler.DefaultGenerator,
			Mode:      render.SampleDerive.String(),
		},
		Axis: AxisConfig{
			XScale:      vp.XScale,
			YScale:      vp.YScale,
			MaxInterval: 2 * vp.XScale,
			TickLen:     5,
		},
		Crosshair: CrosshairConfig{FadeFrames: 20, Size: 10},
		Labels:    LabelsConfig{OnFailure: render.LabelSkip.String()},
		Log:       LogConfig{Level: "info"},
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault loads config from path, or returns default if not found.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	return Load(path)
}

// Save saves configuration to a file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate reports every field that is out of range.
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}
	positive := func(name string, v float64) {
		if !(v > 0) || math.IsInf(v, 0) {
			bad("%s must be positive, got %g", name, v)
		}
	}

	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		bad("viewport must have a positive size, got %dx%d", c.Viewport.Width, c.Viewport.Height)
	}
	if c.Pan.XSpeed == 0 || c.Pan.YSpeed == 0 {
		bad("pan speeds must be non-zero")
	}
	if !(c.Zoom.Speed > 1) {
		bad("zoom.speed must be greater than 1, got %g", c.Zoom.Speed)
	}
	if !(c.Zoom.Min > 0 && c.Zoom.Min <= 1 && c.Zoom.Max >= 1) || math.IsInf(c.Zoom.Max, 0) {
		bad("zoom bounds must satisfy 0 < min <= 1 <= max, got min=%g max=%g", c.Zoom.Min, c.Zoom.Max)
	}
	positive("sampling.step", c.Sampling.Step)
	if _, err := sampler.Lookup(c.Sampling.Generator); err != nil {
		errs = append(errs, err)
	}
	if _, err := render.ParseSampleMode(c.Sampling.Mode); err != nil {
		errs = append(errs, err)
	}
	if c.Sampling.MaxSegments < 0 {
		bad("sampling.max_segments must not be negative, got %d", c.Sampling.MaxSegments)
	}
	positive("axis.x_scale", c.Axis.XScale)
	positive("axis.y_scale", c.Axis.YScale)
	if !(c.Axis.MaxInterval >= 2) {
		bad("axis.max_interval must be at least 2, got %g", c.Axis.MaxInterval)
	}
	if c.Axis.TickLen < 0 {
		bad("axis.tick_len must not be negative, got %d", c.Axis.TickLen)
	}
	if c.Crosshair.Size < 0 {
		bad("crosshair.size must not be negative, got %d", c.Crosshair.Size)
	}
	if _, err := render.ParseLabelPolicy(c.Labels.OnFailure); err != nil {
		errs = append(errs, err)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		bad("log.level: %w", err)
	}
	return errors.Join(errs...)
}

// ViewportParams converts the pan, zoom and axis sections into viewport parameters.
func (c *Config) ViewportParams() viewport.Params {
	return viewport.Params{
		XScale:    c.Axis.XScale,
		YScale:    c.Axis.YScale,
		PanX:      c.Pan.XSpeed,
		PanY:      c.Pan.YSpeed,
		ZoomSpeed: c.Zoom.Speed,
		MinZoom:   c.Zoom.Min,
		MaxZoom:   c.Zoom.Max,
	}
}

// LogLevel returns the parsed log level, or info when it does not parse.
func (c *Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
