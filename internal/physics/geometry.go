package physics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/physworld/internal/dynamo"
)

const restitution = 1.0

func Distance(a, b *Entity) float64 {
	return a.state.Location.Sub(b.state.Location).Len()
}

// AreTouching panics with dynamo.ErrNotSphere unless both bodies are spheres.
func AreTouching(a, b *Entity) bool {
	dist := Distance(a, b)
	return dist <= dynamo.RadiusOf(a.state.Shape)+dynamo.RadiusOf(b.state.Shape)
}

func normal(from, to *Entity) mgl64.Vec3 {
	rel := to.state.Location.Sub(from.state.Location)
	return rel.Mul(1 / rel.Len())
}

func forceAlong(from, to *Entity) float64 {
	return normal(from, to).Dot(from.state.NetForce)
}

// relativeVelocity is negative while the separation shrinks (m²/s).
func relativeVelocity(from, to *Entity) float64 {
	relVel := to.state.Velocity.Sub(from.state.Velocity)
	relLoc := to.state.Location.Sub(from.state.Location)
	return relVel.Dot(relLoc)
}

// AppliesForceInDirection reports whether from pushes toward to while the
// pair is not separating.
func AppliesForceInDirection(from, to *Entity) bool {
	return forceAlong(from, to) > 0 && relativeVelocity(from, to) <= 0
}

func ForceInDirection(from, to *Entity) mgl64.Vec3 {
	if !AppliesForceInDirection(from, to) || !AreTouching(from, to) {
		return dynamo.Zero
	}
	return normal(from, to).Mul(forceAlong(from, to))
}

func RelativelyMovesTowards(from, to *Entity) bool {
	return relativeVelocity(from, to) < 0
}

func velocityAlong(from, to *Entity) float64 {
	return normal(from, to).Dot(from.state.Velocity)
}

// MovesTowards reports whether from heads toward to and the gap is closing.
func MovesTowards(from, to *Entity) bool {
	return velocityAlong(from, to) > 0 && RelativelyMovesTowards(from, to)
}

// VelocityDiffAfterCollision is the velocity change of to after an elastic
// collision with from along the contact normal.
func VelocityDiffAfterCollision(from, to *Entity) mgl64.Vec3 {
	if !RelativelyMovesTowards(from, to) || !AreTouching(from, to) {
		return dynamo.Zero
	}
	n := normal(from, to)
	reducedMass := 1 / (1/to.state.Mass + 1/from.state.Mass)
	impactSpeed := n.Dot(to.state.Velocity.Sub(from.state.Velocity))
	impulse := (1 + restitution) * reducedMass * impactSpeed
	return n.Mul(-impulse / to.state.Mass)
}

// NormalForce is the reaction from exerts against the push of to.
func NormalForce(from, to *Entity) mgl64.Vec3 {
	return ForceInDirection(to, from).Mul(-1)
}

// GravityPull is the gravitational force on to, directed toward from.
func GravityPull(from, to *Entity) mgl64.Vec3 {
	rel := from.state.Location.Sub(to.state.Location)
	dist := rel.Len()
	return rel.Mul(dynamo.G * from.state.Mass * to.state.Mass / (dist * dist * dist))
}
