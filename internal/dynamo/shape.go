package dynamo

import "fmt"

type ShapeKind uint8

const (
	ShapeNone ShapeKind = iota
	ShapeSphere
)

// Shape is a closed tagged variant. The zero value is the empty shape used by
// influence carriers.
type Shape struct {
	Kind   ShapeKind
	Radius float64 // m, only meaningful for spheres
}

var NoShape = Shape{}

func Sphere(radius float64) Shape {
	return Shape{Kind: ShapeSphere, Radius: radius}
}

func (s Shape) IsSphere() bool { return s.Kind == ShapeSphere }

// RadiusOf returns the sphere radius and panics for any other shape.
func RadiusOf(s Shape) float64 {
	if !s.IsSphere() {
		panic(fmt.Errorf("%w: got %s", ErrNotSphere, s))
	}
	return s.Radius
}

// Add overlays two shapes. Radii of two spheres add up; an empty operand on
// the right leaves the left side unchanged, an empty left side stays empty.
func (s Shape) Add(other Shape) Shape {
	if s.IsSphere() && other.IsSphere() {
		return Sphere(s.Radius + other.Radius)
	}
	return s
}

// Sub withdraws an overlay. An empty left side yields the right operand.
func (s Shape) Sub(other Shape) Shape {
	switch {
	case s.IsSphere() && other.IsSphere():
		return Sphere(s.Radius - other.Radius)
	case s.IsSphere():
		return s
	default:
		return other
	}
}

func (s Shape) String() string {
	if s.IsSphere() {
		return fmt.Sprintf("Sphere(r=%g m)", s.Radius)
	}
	return "None"
}
