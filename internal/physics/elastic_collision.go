package physics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/physworld/internal/dynamo"
)

// ElasticCollision turns approaching touching pairs into one-step impulse
// forces that exchange momentum along the contact normal.
type ElasticCollision struct{}

func (ElasticCollision) Identifier() string { return "elastic collision" }

func (ElasticCollision) IsNeighbor(transmitter, receiver *Entity) bool {
	return AreTouching(transmitter, receiver)
}

func (e ElasticCollision) Init(source *Entity, neighbors []*Entity, dt float64) []StateInfluence {
	var out []StateInfluence
	var total mgl64.Vec3
	for _, n := range neighbors {
		if !MovesTowards(source, n) {
			continue
		}
		target := n
		// Head-on: each side only accounts for its own velocity.
		if MovesTowards(n, source) {
			st := n.state
			st.Velocity = dynamo.Zero
			target = &Entity{id: n.id, state: st}
		}
		dv := VelocityDiffAfterCollision(source, target)
		if !dynamo.Significant(dv) {
			continue
		}
		force := dv.Mul(n.state.Mass / dt)
		out = append(out, ForceInfluence(source.id, source.id, n.id, e.Identifier(), force))
		total = total.Add(force)
	}
	if dynamo.Significant(total) {
		out = append(out, ForceInfluence(source.id, source.id, source.id, e.Identifier(), total.Mul(-1)))
	}
	return out
}

// React forwards the impulse force like a contact force. The probe carries
// no velocity so only the direction of the force decides who is pushed.
func (e ElasticCollision) React(reactor *Entity, neighbors []*Entity, inbound StateInfluence, dt float64) []StateInfluence {
	return redistribute(e.Identifier(), reactor, neighbors, inbound, false)
}
