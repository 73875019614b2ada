package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	EffectWave = "wave"
	EffectDots = "dots"

	EasingLerp   = "lerp"
	EasingSpring = "spring"

	DefaultGridSize   = 20.0
	DefaultLineWidth  = 0.4
	DefaultWaveSpeed  = 0.004
	DefaultWaveHeight = 5.0
	DefaultNoiseScale = 0.005

	DefaultDotSpacing = 30.0
	DefaultDotSize    = 1.5
	DefaultRadius     = 100.0
	DefaultGrowth     = 2.5
	DefaultEase       = 0.1
	DefaultFrequency  = 6.0
	DefaultDamping    = 1.0

	DefaultFPS  = 60
	DefaultAddr = ":8080"
	DefaultData = ".gridfx"
)

var ErrUnknownPreset = errors.New("config: unknown preset")

type Config struct {
	Effect string       `yaml:"effect"`
	Theme  string       `yaml:"theme"`
	Wave   WaveConfig   `yaml:"wave"`
	Dots   DotsConfig   `yaml:"dots"`
	Clock  ClockConfig  `yaml:"clock"`
	Resize ResizeConfig `yaml:"resize"`
}

// WaveConfig tunes the breathing line grid. Empty colors follow the theme.
type WaveConfig struct {
	GridSize          float64 `yaml:"grid_size"`
	LineWidth         float64 `yaml:"line_width"`
	LineColor         string  `yaml:"line_color,omitempty"`
	WaveSpeed         float64 `yaml:"wave_speed"`
	WaveHeight        float64 `yaml:"wave_height"`
	NoiseScale        float64 `yaml:"noise_scale"`
	ShockStrength     float64 `yaml:"shock_strength,omitempty"`
	InteractionRadius float64 `yaml:"interaction_radius,omitempty"`
}

// DotsConfig tunes the pointer-reactive dot grid.
type DotsConfig struct {
	Spacing           float64 `yaml:"spacing"`
	DotSize           float64 `yaml:"dot_size"`
	InteractionRadius float64 `yaml:"interaction_radius"`
	GrowthFactor      float64 `yaml:"growth_factor"`
	Easing            string  `yaml:"easing"`
	Ease              float64 `yaml:"ease"`
	Frequency         float64 `yaml:"frequency,omitempty"`
	Damping           float64 `yaml:"damping,omitempty"`
	Color             string  `yaml:"color,omitempty"`
	OffsetX           float64 `yaml:"offset_x,omitempty"`
	OffsetY           float64 `yaml:"offset_y,omitempty"`
	HeightScale       float64 `yaml:"height_scale,omitempty"`
}

type ClockConfig struct {
	Mode string `yaml:"mode"`
	FPS  int    `yaml:"fps"`
}

type ResizeConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

func DefaultConfig() *Config {
	return &Config{
		Effect: EffectWave,
		Theme:  "dark",
		Wave: WaveConfig{
			GridSize:   DefaultGridSize,
			LineWidth:  DefaultLineWidth,
			WaveSpeed:  DefaultWaveSpeed,
			WaveHeight: DefaultWaveHeight,
			NoiseScale: DefaultNoiseScale,
		},
		Dots: DotsConfig{
			Spacing:           DefaultDotSpacing,
			DotSize:           DefaultDotSize,
			InteractionRadius: DefaultRadius,
			GrowthFactor:      DefaultGrowth,
			Easing:            EasingLerp,
			Ease:              DefaultEase,
			Frequency:         DefaultFrequency,
			Damping:           DefaultDamping,
			HeightScale:       1,
		},
		Clock: ClockConfig{Mode: "fixed", FPS: DefaultFPS},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.Validate()
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate clamps values that would make the effect degenerate.
func (c *Config) Validate() {
	if c.Effect != EffectDots {
		c.Effect = EffectWave
	}
	if c.Wave.GridSize < 1 {
		c.Wave.GridSize = 1
	}
	if c.Wave.LineWidth <= 0 {
		c.Wave.LineWidth = DefaultLineWidth
	}
	if c.Wave.WaveHeight < 0 {
		c.Wave.WaveHeight = -c.Wave.WaveHeight
	}
	if c.Dots.Spacing < 1 {
		c.Dots.Spacing = 1
	}
	if c.Dots.DotSize <= 0 {
		c.Dots.DotSize = DefaultDotSize
	}
	if c.Dots.Ease <= 0 || c.Dots.Ease > 1 {
		c.Dots.Ease = DefaultEase
	}
	if c.Dots.Easing != EasingSpring {
		c.Dots.Easing = EasingLerp
	}
	if c.Dots.HeightScale < 1 {
		c.Dots.HeightScale = 1
	}
	if c.Clock.Mode != "delta" {
		c.Clock.Mode = "fixed"
	}
	if c.Clock.FPS <= 0 {
		c.Clock.FPS = DefaultFPS
	}
	if c.Resize.Debounce < 0 {
		c.Resize.Debounce = 0
	}
}

// FrameInterval is the time between scheduled frames.
func (c *Config) FrameInterval() time.Duration {
	fps := c.Clock.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}
	return time.Second / time.Duration(fps)
}

// Env holds process settings read from the environment.
type Env struct {
	Addr      string
	DataDir   string
	LogLevel  string
	LogFormat string
}

// FromEnv reads GRIDFX_* variables, falling back to defaults.
func FromEnv() Env {
	return Env{
		Addr:      getenv("GRIDFX_ADDR", DefaultAddr),
		DataDir:   getenv("GRIDFX_DATA", DefaultData),
		LogLevel:  getenv("GRIDFX_LOG_LEVEL", "info"),
		LogFormat: getenv("GRIDFX_LOG_FORMAT", "text"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
