package experiment

import (
	"context"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/physworld/internal/config"
	"github.com/san-kum/physworld/internal/dynamo"
	"github.com/san-kum/physworld/internal/physics"
	"github.com/san-kum/physworld/internal/sim"
)

type Experiment struct {
	cfg       *config.Config
	system    *sim.System
	simulator *sim.Simulator
}

func New(cfg *config.Config) *Experiment {
	return &Experiment{cfg: cfg}
}

// Setup validates the scenario and builds its world.
func (e *Experiment) Setup(reg *Registry) error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}
	system, err := BuildSystem(e.cfg, reg)
	if err != nil {
		return err
	}

	e.system = system
	e.simulator = sim.NewSimulator()
	for _, m := range reg.DefaultMetrics(WorldBound(e.cfg)) {
		e.simulator.AddMetric(m)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.simulator.Run(ctx, e.system, e.SimConfig())
}

func (e *Experiment) SimConfig() sim.Config {
	return sim.Config{
		Dt:                e.cfg.Dt,
		Duration:          e.cfg.Duration,
		CheckConservation: e.cfg.CheckConservation,
		Tolerance:         e.cfg.Tolerance,
		RoundDigits:       sim.DefaultRoundDigits,
	}
}

// Job packages the experiment for a sim.Batch.
func (e *Experiment) Job() sim.Job {
	return sim.Job{Name: e.cfg.Name, System: e.system, Config: e.SimConfig()}
}

func (e *Experiment) System() *sim.System { return e.system }

// GetSimulator returns the underlying simulator for adding observers
func (e *Experiment) GetSimulator() *sim.Simulator {
	return e.simulator
}

func (e *Experiment) Config() *config.Config { return e.cfg }

func BuildSystem(cfg *config.Config, reg *Registry) (*sim.System, error) {
	names := cfg.Interactions
	if len(names) == 0 {
		names = config.DefaultInteractions
	}
	interactions, err := reg.Resolve(names)
	if err != nil {
		return nil, err
	}
	return sim.New(BuildEntities(cfg), interactions, 0)
}

func BuildEntities(cfg *config.Config) []*physics.Entity {
	out := make([]*physics.Entity, len(cfg.Bodies))
	for i, b := range cfg.Bodies {
		out[i] = physics.NewEntity(b.ID, dynamo.State{
			Location: toVec3(b.Location),
			Velocity: toVec3(b.Velocity),
			NetForce: toVec3(b.Force),
			Mass:     b.Mass,
			Shape:    dynamo.Sphere(b.Radius),
		})
	}
	return out
}

// WorldBound is ten times the reach of the farthest body, or 100 m for a
// world huddled at the origin.
func WorldBound(cfg *config.Config) float64 {
	reach := 0.0
	for _, b := range cfg.Bodies {
		reach = math.Max(reach, toVec3(b.Location).Len()+b.Radius)
	}
	if reach == 0 {
		return 100
	}
	return 10 * reach
}

func toVec3(v []float64) mgl64.Vec3 {
	if len(v) != 3 {
		return mgl64.Vec3{}
	}
	return mgl64.Vec3{v[0], v[1], v[2]}
}
