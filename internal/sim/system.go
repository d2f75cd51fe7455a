package sim

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/physworld/internal/dynamo"
	"github.com/san-kum/physworld/internal/logger"
	"github.com/san-kum/physworld/internal/physics"
	"github.com/sirupsen/logrus"
)

// System owns a world of entities and the interactions acting on it.
type System struct {
	entities     []*physics.Entity
	index        map[string]int
	interactions []physics.Interaction
	time         float64
}

// New clones entities into a new System starting at t0 seconds.
func New(entities []*physics.Entity, interactions []physics.Interaction, t0 float64) (*System, error) {
	s := &System{
		entities:     make([]*physics.Entity, 0, len(entities)),
		index:        make(map[string]int, len(entities)),
		interactions: make([]physics.Interaction, 0, len(interactions)),
		time:         t0,
	}

	for _, e := range entities {
		if _, dup := s.index[e.ID()]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateEntity, e.ID())
		}
		if err := e.State().Validate(); err != nil {
			return nil, fmt.Errorf("entity %q: %w", e.ID(), err)
		}
		s.index[e.ID()] = len(s.entities)
		s.entities = append(s.entities, e.Clone())
	}

	seen := make(map[string]bool, len(interactions))
	for _, in := range interactions {
		if seen[in.Identifier()] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateInteraction, in.Identifier())
		}
		seen[in.Identifier()] = true
		s.interactions = append(s.interactions, in)
	}

	return s, nil
}

// MustNew is like New but panics on an inconsistent world.
func MustNew(entities []*physics.Entity, interactions []physics.Interaction, t0 float64) *System {
	s, err := New(entities, interactions, t0)
	if err != nil {
		panic(err)
	}
	return s
}

// NextState advances the world by dt seconds. Influences are gathered from
// every interaction against the same pre-step world before any body moves.
func (s *System) NextState(dt float64) {
	var influences []physics.StateInfluence
	for _, in := range s.interactions {
		influences = append(influences, physics.Influences(in, s.entities, dt)...)
	}

	for _, inf := range influences {
		i, ok := s.index[inf.ReceiverID]
		if !ok {
			panic(fmt.Errorf("%w: %s", dynamo.ErrUnknownReceiver, inf.ReceiverID))
		}
		s.entities[i].AddInfluence(inf)
	}

	for _, e := range s.entities {
		e.Evolve(dt)
	}
	for _, e := range s.entities {
		e.RemoveInfluences()
	}
	s.time += dt

	if logger.Log.IsLevelEnabled(logrus.TraceLevel) {
		logger.Log.WithFields(logrus.Fields{
			"time":       s.time,
			"influences": len(influences),
		}).Trace(s.String())
	}
}

// Entities returns copies of the bodies in insertion order.
func (s *System) Entities() []*physics.Entity {
	out := make([]*physics.Entity, len(s.entities))
	for i, e := range s.entities {
		out[i] = e.Clone()
	}
	return out
}

// Entity returns a copy of the body with the given id.
func (s *System) Entity(id string) (*physics.Entity, bool) {
	i, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return s.entities[i].Clone(), true
}

func (s *System) Interactions() []physics.Interaction {
	return append([]physics.Interaction(nil), s.interactions...)
}

func (s *System) CurrentTime() float64 { return s.time }

func (s *System) Momentum() mgl64.Vec3 { return physics.TotalMomentum(s.entities) }

func (s *System) Energy() float64 { return physics.TotalEnergy(s.entities) }

func (s *System) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "system at t=%gs\n", s.time)
	for _, e := range s.entities {
		fmt.Fprintf(&b, "  %s\n", e)
	}
	ids := make([]string, len(s.interactions))
	for i, in := range s.interactions {
		ids[i] = in.Identifier()
	}
	fmt.Fprintf(&b, "  interactions: %s\n", strings.Join(ids, ", "))
	p := s.Momentum()
	fmt.Fprintf(&b, "  momentum: %v (|p|=%g kg*m/s)\n  energy: %g J", p, p.Len(), s.Energy())
	return b.String()
}
