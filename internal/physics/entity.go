package physics

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/physworld/internal/dynamo"
)

// Entity is a uniquely identified body. Two entities are the same body when
// their identifiers match, whatever their states.
type Entity struct {
	id         string
	state      dynamo.State
	influences []StateInfluence
}

func NewEntity(id string, state dynamo.State) *Entity {
	return &Entity{id: id, state: state}
}

func (e *Entity) ID() string { return e.id }

func (e *Entity) State() dynamo.State { return e.state }

// Clone returns an independent copy including pending influences.
func (e *Entity) Clone() *Entity {
	c := &Entity{id: e.id, state: e.state}
	if len(e.influences) > 0 {
		c.influences = append([]StateInfluence(nil), e.influences...)
	}
	return c
}

func (e *Entity) Momentum() mgl64.Vec3 { return e.state.Momentum() }

func (e *Entity) KineticEnergy() float64 { return e.state.KineticEnergy() }

// PotentialEnergy is the magnitude of the gravitational pull between e and
// other times their separation.
func (e *Entity) PotentialEnergy(other *Entity) float64 {
	return GravityPull(other, e).Len() * Distance(e, other)
}

// Influences returns the influences attached for the current step.
func (e *Entity) Influences() []StateInfluence { return e.influences }

func (e *Entity) AddInfluence(inf StateInfluence) {
	e.influences = append(e.influences, inf)
}

// Evolve overlays every attached influence and integrates one step.
func (e *Entity) Evolve(dt float64) {
	for _, inf := range e.influences {
		e.state = e.state.Add(inf.Change)
	}
	e.state.Evolve(dt)
}

// RemoveInfluences withdraws the overlays added by Evolve, restoring the
// baseline net force for the next step.
func (e *Entity) RemoveInfluences() {
	for _, inf := range e.influences {
		e.state = e.state.Sub(inf.Change)
	}
	e.influences = nil
}

func (e *Entity) String() string {
	return fmt.Sprintf("%s: %s", e.id, e.state)
}

// TotalMomentum sums mass times velocity over all entities.
func TotalMomentum(entities []*Entity) mgl64.Vec3 {
	var p mgl64.Vec3
	for _, e := range entities {
		p = p.Add(e.Momentum())
	}
	return p
}

// TotalEnergy sums kinetic energy and the potential energy of every ordered
// pair. Each unordered pair therefore contributes twice.
func TotalEnergy(entities []*Entity) float64 {
	kinetic := 0.0
	for _, e := range entities {
		kinetic += e.KineticEnergy()
	}
	potential := 0.0
	for i, a := range entities {
		for j, b := range entities {
			if i == j || a.id == b.id {
				continue
			}
			potential += a.PotentialEnergy(b)
		}
	}
	return kinetic + potential
}
