package physics

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/physworld/internal/dynamo"
	"github.com/san-kum/physworld/internal/logger"
	"github.com/sirupsen/logrus"
)

// Interaction is a pairwise physical rule. Init seeds the influences a source
// body starts; React forwards an inbound influence from the body that
// received it to its own neighbors. Implementations must be stateless.
type Interaction interface {
	Identifier() string
	IsNeighbor(transmitter, receiver *Entity) bool
	Init(source *Entity, neighbors []*Entity, dt float64) []StateInfluence
	React(reactor *Entity, neighbors []*Entity, inbound StateInfluence, dt float64) []StateInfluence
}

// Influences resolves every influence the interaction produces on world for
// one step. Sources are seeded in world order; each seed stack is resolved
// depth-first before the next source starts. The result contains only
// resolved influences.
func Influences(in Interaction, world []*Entity, dt float64) []StateInfluence {
	index := make(map[string]int, len(world))
	for i, e := range world {
		index[e.id] = i
	}

	var resolved []StateInfluence
	for _, source := range world {
		stack := in.Init(source, neighborsOf(in, world, source), dt)
		resolved = resolve(in, world, index, stack, resolved, dt)
	}
	return resolved
}

func neighborsOf(in Interaction, world []*Entity, of *Entity) []*Entity {
	var out []*Entity
	for _, e := range world {
		if e.id != of.id && in.IsNeighbor(of, e) {
			out = append(out, e)
		}
	}
	return out
}

// resolve drains stack LIFO, appending resolved influences to out.
func resolve(in Interaction, world []*Entity, index map[string]int, stack, out []StateInfluence, dt float64) []StateInfluence {
	trace := logger.Log.IsLevelEnabled(logrus.TraceLevel)
	for len(stack) > 0 {
		inf := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if inf.Resolved() {
			out = append(out, inf)
			continue
		}

		i, ok := index[inf.ReceiverID]
		if !ok {
			panic(fmt.Errorf("%w: %s", dynamo.ErrUnknownReceiver, inf.ReceiverID))
		}
		reactor := world[i]
		if trace {
			logger.Log.WithFields(logrus.Fields{
				"interaction": in.Identifier(),
				"source":      inf.SourceID,
				"transmitter": inf.TransmitterID,
				"receiver":    inf.ReceiverID,
			}).Trace("react")
		}
		stack = append(stack, in.React(reactor, neighborsOf(in, world, reactor), inf, dt)...)
	}
	return out
}

// checkReactor panics unless the inbound influence is addressed to reactor.
func checkReactor(reactor *Entity, inbound StateInfluence) {
	if reactor.id != inbound.ReceiverID {
		panic(fmt.Errorf("%w: reactor %s, receiver %s", dynamo.ErrReactorMismatch, reactor.id, inbound.ReceiverID))
	}
}

// probeID names the throwaway body used to ask which neighbors an inbound
// influence pushes against.
const probeID = "-"

func probe(reactor *Entity, inbound StateInfluence, velocity bool) *Entity {
	st := dynamo.State{
		Location: reactor.state.Location,
		NetForce: inbound.Change.NetForce,
		Mass:     reactor.state.Mass,
		Shape:    reactor.state.Shape,
	}
	if velocity {
		st.Velocity = inbound.Change.Velocity
	}
	return &Entity{id: probeID, state: st}
}

// pushNeighbors emits the force from exerts on every neighbor it pushes
// against and returns the sum of the emitted forces.
func pushNeighbors(from *Entity, neighbors []*Entity, emit func(to *Entity, force mgl64.Vec3)) mgl64.Vec3 {
	var total mgl64.Vec3
	for _, n := range neighbors {
		if !AppliesForceInDirection(from, n) {
			continue
		}
		force := ForceInDirection(from, n)
		if !dynamo.Significant(force) {
			continue
		}
		emit(n, force)
		total = total.Add(force)
	}
	return total
}

// redistribute forwards the inbound force from reactor to the neighbors it
// pushes against and keeps the remainder on reactor itself. The self
// influence is always last.
func redistribute(interaction string, reactor *Entity, neighbors []*Entity, inbound StateInfluence, withVelocity bool) []StateInfluence {
	checkReactor(reactor, inbound)

	var out []StateInfluence
	total := pushNeighbors(probe(reactor, inbound, withVelocity), neighbors, func(to *Entity, force mgl64.Vec3) {
		out = append(out, ForceInfluence(inbound.SourceID, reactor.id, to.id, interaction, force))
	})
	if rest := inbound.Change.NetForce.Sub(total); dynamo.Significant(rest) {
		out = append(out, ForceInfluence(inbound.SourceID, reactor.id, reactor.id, interaction, rest))
	}
	return out
}
