package config

import (
	"fmt"
	"sort"
)

// Presets reproduce the backgrounds of the portfolio pages.
var Presets = map[string]*Config{
	// landing page
	"hero": {
		Effect: EffectWave,
		Wave: WaveConfig{
			GridSize: 20, LineWidth: 0.4, WaveSpeed: 0.004, WaveHeight: 5, NoiseScale: 0.005,
		},
	},
	// about section
	"about": {
		Effect: EffectWave,
		Wave: WaveConfig{
			GridSize: 25, LineWidth: 0.4, WaveSpeed: 0.003, WaveHeight: 4, NoiseScale: 0.004,
		},
	},
	"ripple": {
		Effect: EffectWave,
		Wave: WaveConfig{
			GridSize: 20, LineWidth: 0.4, WaveSpeed: 0.004, WaveHeight: 5, NoiseScale: 0.005,
			ShockStrength: 12, InteractionRadius: 120,
		},
	},
	"dots": {
		Effect: EffectDots,
		Dots: DotsConfig{
			Spacing: 30, DotSize: 1.5, InteractionRadius: 100, GrowthFactor: 2.5,
			Easing: EasingLerp, Ease: 0.1,
		},
	},
	// dot grid that starts below the hero section and spans the scrolled page
	"dots-section": {
		Effect: EffectDots,
		Dots: DotsConfig{
			Spacing: 30, DotSize: 1.5, InteractionRadius: 100, GrowthFactor: 2.5,
			Easing: EasingLerp, Ease: 0.1, HeightScale: 5,
		},
	},
	"dots-spring": {
		Effect: EffectDots,
		Dots: DotsConfig{
			Spacing: 30, DotSize: 1.5, InteractionRadius: 100, GrowthFactor: 2.5,
			Easing: EasingSpring, Frequency: 6, Damping: 0.4,
		},
	},
}

// GetPreset returns a full config for a preset, filled with defaults for
// anything the preset leaves unset. It returns nil for unknown names.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Effect = p.Effect
	if p.Theme != "" {
		cfg.Theme = p.Theme
	}
	switch p.Effect {
	case EffectDots:
		d := p.Dots
		if d.Frequency == 0 {
			d.Frequency = cfg.Dots.Frequency
		}
		if d.Damping == 0 {
			d.Damping = cfg.Dots.Damping
		}
		cfg.Dots = d
	default:
		cfg.Wave = p.Wave
	}
	cfg.Validate()
	return cfg
}

// Resolve returns the named preset or an ErrUnknownPreset error.
func Resolve(name string) (*Config, error) {
	cfg := GetPreset(name)
	if cfg == nil {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownPreset, name, ListPresets())
	}
	return cfg, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
