package config

import "sort"

var (
	contactAndCollision = []string{"contact force", "elastic collision"}
	withGravity         = []string{"contact force", "elastic collision", "gravity"}
)

func row(radius, mass float64, bodies ...BodyConfig) []BodyConfig {
	for i := range bodies {
		bodies[i].Radius = radius
		bodies[i].Mass = mass
	}
	return bodies
}

func at(id string, x float64) BodyConfig {
	return BodyConfig{ID: id, Location: []float64{x, 0, 0}}
}

func (b BodyConfig) moving(vx float64) BodyConfig {
	b.Velocity = []float64{vx, 0, 0}
	return b
}

func (b BodyConfig) pushed(fx float64) BodyConfig {
	b.Force = []float64{fx, 0, 0}
	return b
}

var Presets = map[string]*Config{
	"contact_chain": {
		Name: "contact_chain", Dt: 0.01, Duration: 10,
		Interactions: []string{"contact force"},
		Bodies:       row(1, 10, at("e0", 0).pushed(10), at("e1", 2), at("e2", 4)),
	},
	"two_body_collision": {
		Name: "two_body_collision", Dt: 0.01, Duration: 20, CheckConservation: true,
		Interactions: contactAndCollision,
		Bodies:       row(1, 10, at("a", 0).moving(1), at("b", 2)),
	},
	"force_propagation_3": {
		Name: "force_propagation_3", Dt: 0.01, Duration: 100,
		Interactions: contactAndCollision,
		Bodies: row(2, 100,
			at("A", 30),
			at("B", 40).pushed(-10),
			at("C", 20).pushed(10),
		),
	},
	"newton_pendulum_3": {
		Name: "newton_pendulum_3", Dt: 0.01, Duration: 50,
		Interactions: contactAndCollision,
		Bodies: row(5, 100,
			at("A", 30),
			at("B", 0).moving(1),
			at("C", -10).moving(1),
			at("D", -20).moving(1),
			at("E", -30).moving(1),
		),
	},
	"wall_collisions": {
		Name: "wall_collisions", Dt: 0.1, Duration: 30,
		Interactions: contactAndCollision,
		Bodies: []BodyConfig{
			{ID: "A", Location: []float64{1000, 0, 0}, Velocity: []float64{-100, 0, 0}, Mass: 10, Radius: 1},
			{ID: "Wall", Location: []float64{0, 0, 0}, Mass: 10_000, Radius: 500},
		},
	},
	"gravity": {
		Name: "gravity", Dt: 0.1, Duration: 300, CheckConservation: true,
		Interactions: withGravity,
		Bodies: []BodyConfig{
			{ID: "A", Location: []float64{1000, 0, 0}, Mass: 100, Radius: 1},
			{ID: "Ground", Location: []float64{0, 0, 0}, Mass: 3.9722e15, Radius: 500},
		},
	},
	"multi_gravity": {
		Name: "multi_gravity", Dt: 0.3, Duration: 70000,
		Interactions: withGravity,
		Bodies: []BodyConfig{
			{ID: "A", Location: []float64{5, 0, 0}, Mass: 100, Radius: 1},
			{ID: "Ground1", Location: []float64{10, 0, 0}, Mass: 4e5, Radius: 1},
			{ID: "Ground2", Location: []float64{0, 0, 0}, Mass: 4e5, Radius: 1},
		},
	},
	"simultaneous_collisions": {
		Name: "simultaneous_collisions", Dt: 0.01, Duration: 50,
		Interactions: contactAndCollision,
		Bodies: row(0.1, 100,
			at("A", 30).moving(1),
			at("B", 60).moving(-1),
			at("C", 45),
		),
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg = cfg.Clone()
	if cfg.Tolerance == 0 {
		cfg.Tolerance = DefaultTolerance
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
