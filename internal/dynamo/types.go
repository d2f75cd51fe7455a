package dynamo

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// State is the kinematic snapshot of one body.
type State struct {
	Location mgl64.Vec3 // m
	Velocity mgl64.Vec3 // m/s
	NetForce mgl64.Vec3 // N
	Mass     float64    // kg
	Shape    Shape
}

// ForceState returns a carrier state holding only a force.
func ForceState(force mgl64.Vec3) State {
	return State{NetForce: force}
}

func (s State) Add(other State) State {
	return State{
		Location: s.Location.Add(other.Location),
		Velocity: s.Velocity.Add(other.Velocity),
		NetForce: s.NetForce.Add(other.NetForce),
		Mass:     s.Mass + other.Mass,
		Shape:    s.Shape.Add(other.Shape),
	}
}

func (s State) Sub(other State) State {
	return State{
		Location: s.Location.Sub(other.Location),
		Velocity: s.Velocity.Sub(other.Velocity),
		NetForce: s.NetForce.Sub(other.NetForce),
		Mass:     s.Mass - other.Mass,
		Shape:    s.Shape.Sub(other.Shape),
	}
}

// Evolve advances the state by one explicit Euler step. Location moves with
// the velocity held before the step.
func (s *State) Evolve(dt float64) {
	if s.Mass <= 0 {
		panic(fmt.Errorf("%w: %g kg", ErrNonPositiveMass, s.Mass))
	}
	s.Location = s.Location.Add(s.Velocity.Mul(dt))
	s.Velocity = s.Velocity.Add(s.NetForce.Mul(dt / s.Mass))
}

func (s State) Momentum() mgl64.Vec3 {
	return s.Velocity.Mul(s.Mass)
}

func (s State) KineticEnergy() float64 {
	return s.Mass * s.Velocity.Dot(s.Velocity) / 2
}

// ApproxEqual compares two states within 1/Precision per field.
func (s State) ApproxEqual(other State) bool {
	return s.Location.Sub(other.Location).Len()*Precision < 1 &&
		s.Velocity.Sub(other.Velocity).Len()*Precision < 1 &&
		s.NetForce.Sub(other.NetForce).Len()*Precision < 1 &&
		math.Abs(s.Mass-other.Mass)*Precision < 1 &&
		s.Shape == other.Shape
}

func (s State) Validate() error {
	if math.IsNaN(s.Mass) || math.IsInf(s.Mass, 0) || s.Mass < 0 {
		return fmt.Errorf("%w: mass %g kg", ErrInvalidState, s.Mass)
	}
	if s.Shape.IsSphere() && !(s.Shape.Radius >= 0) {
		return fmt.Errorf("%w: radius %g m", ErrInvalidState, s.Shape.Radius)
	}
	if !isFinite(s.Location) || !isFinite(s.Velocity) || !isFinite(s.NetForce) {
		return fmt.Errorf("%w: non-finite vector component", ErrInvalidState)
	}
	return nil
}

func (s State) String() string {
	return fmt.Sprintf("location=%v velocity=%v net_force=%v mass=%g shape=%s",
		s.Location, s.Velocity, s.NetForce, s.Mass, s.Shape)
}
