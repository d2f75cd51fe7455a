// Package dynamo provides the physical primitives shared by the simulation.
//
// Quantities are plain float64 values in SI units and 3-vectors are
// [mgl64.Vec3] values:
//
//   - [State]: kinematic snapshot of one body (m, m/s, N, kg)
//   - [Shape]: geometry tag, either a sphere or none
//   - [Precision]: scale used to separate real quantities from rounding noise
//
// # Overlays
//
// States form an additive group so that influences can be applied to a body
// and later withdrawn again:
//
//	applied := body.Add(change)
//	restored := applied.Sub(change)
//
// Influence carrier states built with [ForceState] have zero mass and no
// shape, so overlaying them leaves mass and geometry untouched.
package dynamo
