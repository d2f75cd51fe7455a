package physics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/physworld/internal/dynamo"
)

// ContactForces transmits net forces through chains of touching spheres.
type ContactForces struct{}

func (ContactForces) Identifier() string { return "contact force" }

func (ContactForces) IsNeighbor(transmitter, receiver *Entity) bool {
	return AreTouching(transmitter, receiver)
}

func (c ContactForces) Init(source *Entity, neighbors []*Entity, dt float64) []StateInfluence {
	var out []StateInfluence
	total := pushNeighbors(source, neighbors, func(to *Entity, force mgl64.Vec3) {
		out = append(out, ForceInfluence(source.id, source.id, to.id, c.Identifier(), force))
	})
	if dynamo.Significant(total) {
		out = append(out, ForceInfluence(source.id, source.id, source.id, c.Identifier(), total.Mul(-1)))
	}
	return out
}

func (c ContactForces) React(reactor *Entity, neighbors []*Entity, inbound StateInfluence, dt float64) []StateInfluence {
	return redistribute(c.Identifier(), reactor, neighbors, inbound, true)
}
