package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt        = 0.01
	DefaultDuration  = 10.0
	DefaultTolerance = 0.007
)

var ErrInvalid = errors.New("config: invalid scenario")

// DefaultInteractions is used when a scenario names none.
var DefaultInteractions = []string{"contact force", "elastic collision"}

// Config describes one scenario: the bodies, the interactions between them
// and how long to simulate. Vectors are [x, y, z] in SI units; an omitted
// vector is zero.
type Config struct {
	Name              string       `yaml:"name"`
	Dt                float64      `yaml:"dt"`
	Duration          float64      `yaml:"duration"`
	CheckConservation bool         `yaml:"check_conservation"`
	Tolerance         float64      `yaml:"tolerance"`
	Interactions      []string     `yaml:"interactions,flow"`
	Bodies            []BodyConfig `yaml:"bodies"`
}

type BodyConfig struct {
	ID       string    `yaml:"id"`
	Location []float64 `yaml:"location,flow"`
	Velocity []float64 `yaml:"velocity,flow,omitempty"`
	Force    []float64 `yaml:"force,flow,omitempty"`
	Mass     float64   `yaml:"mass"`
	Radius   float64   `yaml:"radius"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:         "custom",
		Dt:           DefaultDt,
		Duration:     DefaultDuration,
		Tolerance:    DefaultTolerance,
		Interactions: append([]string(nil), DefaultInteractions...),
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
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrInvalid, c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %f", ErrInvalid, c.Duration)
	}
	if c.Tolerance < 0 {
		return fmt.Errorf("%w: tolerance must not be negative, got %f", ErrInvalid, c.Tolerance)
	}
	if len(c.Bodies) == 0 {
		return fmt.Errorf("%w: no bodies", ErrInvalid)
	}

	seen := make(map[string]bool, len(c.Bodies))
	for i, b := range c.Bodies {
		if b.ID == "" {
			return fmt.Errorf("%w: body %d has no id", ErrInvalid, i)
		}
		if seen[b.ID] {
			return fmt.Errorf("%w: duplicate body id %q", ErrInvalid, b.ID)
		}
		seen[b.ID] = true

		if b.Mass <= 0 {
			return fmt.Errorf("%w: body %q mass must be positive, got %g", ErrInvalid, b.ID, b.Mass)
		}
		if b.Radius < 0 {
			return fmt.Errorf("%w: body %q radius must not be negative, got %g", ErrInvalid, b.ID, b.Radius)
		}
		for field, v := range map[string][]float64{"location": b.Location, "velocity": b.Velocity, "force": b.Force} {
			if len(v) != 0 && len(v) != 3 {
				return fmt.Errorf("%w: body %q %s needs 3 components, got %d", ErrInvalid, b.ID, field, len(v))
			}
		}
	}
	return nil
}

// Clone returns a deep copy so presets can be tweaked safely.
func (c *Config) Clone() *Config {
	out := *c
	out.Interactions = append([]string(nil), c.Interactions...)
	out.Bodies = make([]BodyConfig, len(c.Bodies))
	for i, b := range c.Bodies {
		out.Bodies[i] = BodyConfig{
			ID:       b.ID,
			Location: cloneVec(b.Location),
			Velocity: cloneVec(b.Velocity),
			Force:    cloneVec(b.Force),
			Mass:     b.Mass,
			Radius:   b.Radius,
		}
	}
	return &out
}

func cloneVec(v []float64) []float64 {
	if v == nil {
		return nil
	}
	return append([]float64(nil), v...)
}
