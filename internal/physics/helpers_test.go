package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/physworld/internal/dynamo"
)

func vec(x, y, z float64) mgl64.Vec3 { return mgl64.Vec3{x, y, z} }

func ball(id string, loc, vel, force mgl64.Vec3, mass float64) *Entity {
	return NewEntity(id, dynamo.State{
		Location: loc,
		Velocity: vel,
		NetForce: force,
		Mass:     mass,
		Shape:    dynamo.Sphere(1),
	})
}

func still(id string, loc mgl64.Vec3) *Entity {
	return ball(id, loc, dynamo.Zero, dynamo.Zero, 10)
}

func assertInfluences(t *testing.T, got, want []StateInfluence) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d influences, want %d\ngot:  %v\nwant: %v", len(got), len(want), got, want)
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("influence %d = %s, want %s", i, got[i], want[i])
		}
	}
}
