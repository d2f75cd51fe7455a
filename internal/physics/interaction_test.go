package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/gomega"
	"github.com/san-kum/physworld/internal/dynamo"
)

func TestInfluences_ContactChain(t *testing.T) {
	world := []*Entity{
		ball("e0", vec(0, 0, 0), vec(10, 0, 0), vec(10, 0, 0), 10),
		still("e1", vec(2, 0, 0)),
		still("e2", vec(4, 0, 0)),
	}
	id := ContactForces{}.Identifier()

	got := Influences(ContactForces{}, world, 1)

	assertInfluences(t, got, []StateInfluence{
		ForceInfluence("e0", "e0", "e0", id, vec(-10, 0, 0)),
		ForceInfluence("e0", "e2", "e2", id, vec(10, 0, 0)),
	})
}

func TestInfluences_OpposingChain(t *testing.T) {
	world := []*Entity{
		ball("e0", vec(0, 0, 0), vec(10, 0, 0), vec(10, 0, 0), 10),
		still("e1", vec(2, 0, 0)),
		ball("e2", vec(4, 0, 0), vec(-10, 0, 0), vec(-10, 0, 0), 10),
	}
	id := ContactForces{}.Identifier()

	got := Influences(ContactForces{}, world, 1)

	assertInfluences(t, got, []StateInfluence{
		ForceInfluence("e0", "e0", "e0", id, vec(-10, 0, 0)),
		ForceInfluence("e0", "e2", "e2", id, vec(10, 0, 0)),
		ForceInfluence("e2", "e2", "e2", id, vec(10, 0, 0)),
		ForceInfluence("e2", "e0", "e0", id, vec(-10, 0, 0)),
	})
}

func TestInfluences_OnlyResolved(t *testing.T) {
	g := NewWithT(t)
	world := []*Entity{
		ball("e0", vec(0, 0, 0), vec(10, 0, 0), vec(10, 0, 0), 10),
		still("e1", vec(2, 0, 0)),
		still("e2", vec(4, 0, 0)),
	}

	for _, in := range []Interaction{ContactForces{}, ElasticCollision{}} {
		for _, inf := range Influences(in, world, 1) {
			g.Expect(inf.Resolved()).To(BeTrue(), "%s", inf)
			g.Expect(inf.ReceiverID).NotTo(Equal("e1"), "conduit should not keep anything: %s", inf)
		}
	}
}

// Every causal chain hands on exactly what it received, so the influences
// started by one source cancel out.
func TestInfluences_SourceSumsToZero(t *testing.T) {
	worlds := map[string][]*Entity{
		"chain": {
			ball("e0", vec(0, 0, 0), vec(10, 0, 0), vec(10, 0, 0), 10),
			still("e1", vec(2, 0, 0)),
			ball("e2", vec(4, 0, 0), vec(-10, 0, 0), vec(-10, 0, 0), 10),
		},
		"cluster": {
			ball("e0", vec(0, 0, 0), vec(3, 1, 0), vec(10, 5, 0), 10),
			still("e1", vec(2, 0, 0)),
			still("e2", vec(0, 2, 0)),
			ball("e3", vec(4, 0, 0), vec(-2, 0, 0), dynamo.Zero, 30),
			ball("e4", vec(2, 2, 0), dynamo.Zero, vec(-3, -7, 0), 5),
		},
		"stack": {
			ball("e0", vec(0, 0, 0), dynamo.Zero, vec(0, 0, -100), 10),
			still("e1", vec(0.5, 0, -1.8)),
			still("e2", vec(-0.5, 0, -1.8)),
			still("e3", vec(0, 0, -3.7)),
		},
	}

	for name, world := range worlds {
		for _, in := range []Interaction{ContactForces{}, ElasticCollision{}} {
			t.Run(name+"/"+in.Identifier(), func(t *testing.T) {
				sums := map[string]mgl64.Vec3{}
				for _, inf := range Influences(in, world, 0.1) {
					sums[inf.SourceID] = sums[inf.SourceID].Add(inf.Force())
				}
				for source, sum := range sums {
					if sum.Len() >= 1/dynamo.Precision {
						t.Errorf("influences from %s sum to %v, want zero", source, sum)
					}
				}
			})
		}
	}
}

func TestInfluences_Gravity(t *testing.T) {
	g := NewWithT(t)
	world := []*Entity{
		NewEntity("ground", dynamo.State{Mass: 1e20, Shape: dynamo.Sphere(500)}),
		ball("apple", vec(1000, 0, 0), vec(-1, 0, 0), vec(-5, 0, 0), 1),
	}

	g.Expect(Gravity{}.IsNeighbor(world[0], world[1])).To(BeTrue())
	g.Expect(Influences(Gravity{}, world, 1)).To(BeEmpty())
}

type ghost struct{ ContactForces }

func (ghost) Init(source *Entity, _ []*Entity, _ float64) []StateInfluence {
	return []StateInfluence{ForceInfluence(source.ID(), source.ID(), "nobody", "ghost", vec(1, 0, 0))}
}

func TestInfluences_UnknownReceiver(t *testing.T) {
	g := NewWithT(t)
	world := []*Entity{still("e0", vec(0, 0, 0))}

	g.Expect(func() { Influences(ghost{}, world, 1) }).To(PanicWith(MatchError(dynamo.ErrUnknownReceiver)))
}

func TestReact_ReceiverMismatch(t *testing.T) {
	g := NewWithT(t)
	stranger := still("stranger", vec(0, 0, 0))

	for _, in := range []Interaction{ContactForces{}, ElasticCollision{}} {
		inf := inbound(in.Identifier(), vec(1, 0, 0))
		g.Expect(func() { in.React(stranger, nil, inf, 1) }).To(PanicWith(MatchError(dynamo.ErrReactorMismatch)))
	}
}

func TestStateInfluence(t *testing.T) {
	g := NewWithT(t)
	a := ForceInfluence("s", "t", "r", "contact force", vec(1, 2, 3))

	g.Expect(a.Resolved()).To(BeFalse())
	g.Expect(ForceInfluence("s", "r", "r", "contact force", dynamo.Zero).Resolved()).To(BeTrue())
	g.Expect(a.Equal(ForceInfluence("s", "t", "r", "contact force", vec(1, 2, 3+1e-13)))).To(BeTrue())
	g.Expect(a.Equal(ForceInfluence("s", "t", "r", "contact force", vec(1, 2, 3.001)))).To(BeFalse())
	g.Expect(a.Equal(ForceInfluence("x", "t", "r", "contact force", vec(1, 2, 3)))).To(BeFalse())
	g.Expect(a.Equal(ForceInfluence("s", "t", "r", "elastic collision", vec(1, 2, 3)))).To(BeFalse())
	g.Expect(a.String()).To(ContainSubstring("t --s--> r"))
}
