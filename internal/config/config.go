package config

import (
	"fmt"
	"os"

	"github.com/san-kum/pondmodel/internal/pond"
	"gopkg.in/yaml.v3"
)

const (
	DefaultInflow      = 1.0
	DefaultHead        = 0.28805
	DefaultSweepPoints = 200
	DefaultSampleTime  = 60.0
)

type Config struct {
	// Preset names a parameter preset applied before Params.
	Preset string `yaml:"preset,omitempty"`
	// Params overrides parameters by name (weir_height, weir_width, alpha, c).
	Params map[string]float64 `yaml:"params,omitempty"`
	// Point is the (head, inflow) pair evaluated by default.
	Point PointConfig `yaml:"point"`
	Sweep SweepConfig `yaml:"sweep"`
	// SampleTime is used when discretising the linearised model (s).
	SampleTime float64 `yaml:"sample_time"`
}

type PointConfig struct {
	Time   float64 `yaml:"t"`
	Head   float64 `yaml:"head"`
	Inflow float64 `yaml:"inflow"`
}

type SweepConfig struct {
	Points int     `yaml:"points"`
	Inflow float64 `yaml:"inflow"`
}

func DefaultConfig() *Config {
	return &Config{
		Point: PointConfig{
			Head:   DefaultHead,
			Inflow: DefaultInflow,
		},
		Sweep: SweepConfig{
			Points: DefaultSweepPoints,
			Inflow: DefaultInflow,
		},
		SampleTime: DefaultSampleTime,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// PondParams resolves the parameter set: defaults, then the preset, then the
// named overrides.
func (c *Config) PondParams() (pond.Params, error) {
	p := pond.DefaultParams()
	if c.Preset != "" {
		preset, ok := GetPreset(c.Preset)
		if !ok {
			return pond.Params{}, fmt.Errorf("unknown preset: %s (available: %v)", c.Preset, ListPresets())
		}
		p = preset
	}

	p, err := pond.ParamsFromMap(p, c.Params)
	if err != nil {
		return pond.Params{}, err
	}
	if err := p.Validate(); err != nil {
		return pond.Params{}, err
	}
	return p, nil
}

// Merge applies overrides on top of c.Params, allocating the map if needed.
func (c *Config) Merge(overrides map[string]float64) {
	if len(overrides) == 0 {
		return
	}
	if c.Params == nil {
		c.Params = make(map[string]float64, len(overrides))
	}
	for k, v := range overrides {
		c.Params[k] = v
	}
}
