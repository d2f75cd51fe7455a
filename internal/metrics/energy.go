package metrics

import (
	"math"

	"github.com/san-kum/physworld/internal/physics"
)

// KineticEnergy is the mean total kinetic energy over all samples.
type KineticEnergy struct {
	name    string
	total   float64
	samples int
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (k *KineticEnergy) Name() string { return k.name }

func (k *KineticEnergy) Observe(entities []*physics.Entity, t float64) {
	for _, e := range entities {
		k.total += e.KineticEnergy()
	}
	k.samples++
}

func (k *KineticEnergy) Value() float64 {
	if k.samples == 0 {
		return 0
	}
	return k.total / float64(k.samples)
}

func (k *KineticEnergy) Reset() {
	k.total = 0
	k.samples = 0
}

// drift tracks the largest relative departure of a quantity from its first
// sample.
type drift struct {
	name     string
	measure  func([]*physics.Entity) float64
	initial  float64
	current  float64
	maxDrift float64
	samples  int
}

func (d *drift) Name() string { return d.name }

func (d *drift) Observe(entities []*physics.Entity, t float64) {
	v := d.measure(entities)
	if d.samples == 0 {
		d.initial = v
	}
	d.current = v
	d.samples++

	if d.initial != 0 {
		d.maxDrift = math.Max(d.maxDrift, math.Abs(v-d.initial)/math.Abs(d.initial))
	}
}

func (d *drift) Value() float64 { return d.maxDrift }

func (d *drift) Reset() {
	d.initial = 0
	d.current = 0
	d.maxDrift = 0
	d.samples = 0
}

// EnergyDrift measures total energy, potential terms included.
type EnergyDrift struct{ drift }

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{drift{name: "energy_drift", measure: physics.TotalEnergy}}
}

// MomentumDrift measures the magnitude of the total momentum.
type MomentumDrift struct{ drift }

func NewMomentumDrift() *MomentumDrift {
	return &MomentumDrift{drift{
		name: "momentum_drift",
		measure: func(entities []*physics.Entity) float64 {
			return physics.TotalMomentum(entities).Len()
		},
	}}
}
