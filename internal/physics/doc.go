// Package physics provides rigid-sphere bodies and the pairwise interactions
// acting between them.
//
// Each interaction implements [Interaction]; the propagation engine in
// [Influences] resolves what a whole world of bodies does to itself in one
// step:
//
//   - [ContactForces]: net forces pushed through chains of touching spheres
//   - [ElasticCollision]: momentum exchange between approaching spheres
//   - [Gravity]: inert during propagation, contributes potential energy
//
// # Propagation
//
// Every body seeds influences with Init. An influence whose transmitter and
// receiver differ is handed to the receiver's React, which splits it among
// the receiver's own neighbors and keeps the rest. Resolution is depth-first
// over an explicit stack, so the forces along every causal chain sum to zero:
//
//	world := []*physics.Entity{a, b, c}
//	for _, inf := range physics.Influences(physics.ContactForces{}, world, dt) {
//	    fmt.Println(inf)
//	}
package physics
