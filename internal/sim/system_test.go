package sim_test

import (
	"context"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/san-kum/physworld/internal/dynamo"
	"github.com/san-kum/physworld/internal/physics"
	"github.com/san-kum/physworld/internal/sim"
)

func body(id string, loc, vel, force mgl64.Vec3, mass, radius float64) *physics.Entity {
	return physics.NewEntity(id, dynamo.State{
		Location: loc,
		Velocity: vel,
		NetForce: force,
		Mass:     mass,
		Shape:    dynamo.Sphere(radius),
	})
}

var conservative = []physics.Interaction{physics.ContactForces{}, physics.ElasticCollision{}}

var _ = Describe("System", func() {
	Describe("construction", func() {
		It("rejects duplicate entity identifiers", func() {
			a := body("a", mgl64.Vec3{}, mgl64.Vec3{}, mgl64.Vec3{}, 1, 1)
			b := body("a", mgl64.Vec3{5, 0, 0}, mgl64.Vec3{}, mgl64.Vec3{}, 1, 1)

			_, err := sim.New([]*physics.Entity{a, b}, conservative, 0)
			Expect(err).To(MatchError(sim.ErrDuplicateEntity))
			Expect(func() { sim.MustNew([]*physics.Entity{a, b}, conservative, 0) }).To(PanicWith(MatchError(sim.ErrDuplicateEntity)))
		})

		It("rejects duplicate interactions", func() {
			a := body("a", mgl64.Vec3{}, mgl64.Vec3{}, mgl64.Vec3{}, 1, 1)

			_, err := sim.New([]*physics.Entity{a}, []physics.Interaction{physics.Gravity{}, physics.Gravity{}}, 0)
			Expect(err).To(MatchError(sim.ErrDuplicateInteraction))
		})

		It("rejects invalid states", func() {
			a := body("a", mgl64.Vec3{}, mgl64.Vec3{}, mgl64.Vec3{}, -1, 1)

			_, err := sim.New([]*physics.Entity{a}, conservative, 0)
			Expect(err).To(MatchError(dynamo.ErrInvalidState))
		})

		It("owns its entities", func() {
			a := body("a", mgl64.Vec3{}, mgl64.Vec3{}, mgl64.Vec3{1, 0, 0}, 1, 1)
			s := sim.MustNew([]*physics.Entity{a}, nil, 2.5)

			a.AddInfluence(physics.ForceInfluence("x", "a", "a", "test", mgl64.Vec3{100, 0, 0}))
			s.Entities()[0].AddInfluence(physics.ForceInfluence("x", "a", "a", "test", mgl64.Vec3{100, 0, 0}))
			s.NextState(1)

			got, ok := s.Entity("a")
			Expect(ok).To(BeTrue())
			Expect(got.State().Velocity).To(Equal(mgl64.Vec3{1, 0, 0}))
			Expect(s.CurrentTime()).To(Equal(3.5))
		})
	})

	Describe("stepping", func() {
		It("carries a push through a contact chain", func() {
			s := sim.MustNew([]*physics.Entity{
				body("e0", mgl64.Vec3{0, 0, 0}, mgl64.Vec3{}, mgl64.Vec3{10, 0, 0}, 10, 1),
				body("e1", mgl64.Vec3{2, 0, 0}, mgl64.Vec3{}, mgl64.Vec3{}, 10, 1),
				body("e2", mgl64.Vec3{4, 0, 0}, mgl64.Vec3{}, mgl64.Vec3{}, 10, 1),
			}, []physics.Interaction{physics.ContactForces{}}, 0)

			s.NextState(1)

			e0, _ := s.Entity("e0")
			e1, _ := s.Entity("e1")
			e2, _ := s.Entity("e2")
			Expect(e0.State().Velocity).To(Equal(mgl64.Vec3{0, 0, 0}))
			Expect(e1.State().Velocity).To(Equal(mgl64.Vec3{0, 0, 0}))
			Expect(e2.State().Velocity).To(Equal(mgl64.Vec3{1, 0, 0}))
			By("restoring the baseline net force")
			Expect(e0.State().NetForce).To(Equal(mgl64.Vec3{10, 0, 0}))
			Expect(e2.State().NetForce).To(Equal(mgl64.Vec3{0, 0, 0}))
			Expect(e2.Influences()).To(BeEmpty())
		})

		It("swaps velocities of equal bodies in a head-on hit", func() {
			s := sim.MustNew([]*physics.Entity{
				body("a", mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{}, 10, 1),
				body("b", mgl64.Vec3{2, 0, 0}, mgl64.Vec3{}, mgl64.Vec3{}, 10, 1),
			}, conservative, 0)
			p0, e0 := s.Momentum(), s.Energy()

			s.NextState(0.01)

			a, _ := s.Entity("a")
			b, _ := s.Entity("b")
			Expect(a.State().Velocity.ApproxEqualThreshold(mgl64.Vec3{}, 1e-12)).To(BeTrue())
			Expect(b.State().Velocity.ApproxEqualThreshold(mgl64.Vec3{1, 0, 0}, 1e-12)).To(BeTrue())
			Expect(s.Momentum().ApproxEqualThreshold(p0, 1e-9)).To(BeTrue())
			Expect(s.Energy()).To(BeNumerically("~", e0, 1e-9))
		})

		It("leaves bodies alone under gravity", func() {
			s := sim.MustNew([]*physics.Entity{
				body("apple", mgl64.Vec3{1000, 0, 0}, mgl64.Vec3{}, mgl64.Vec3{}, 100, 1),
				body("ground", mgl64.Vec3{}, mgl64.Vec3{}, mgl64.Vec3{}, 3.9722e15, 500),
			}, []physics.Interaction{physics.Gravity{}}, 0)
			e0 := s.Energy()

			for i := 0; i < 100; i++ {
				s.NextState(0.1)
			}

			apple, _ := s.Entity("apple")
			Expect(apple.State().Location).To(Equal(mgl64.Vec3{1000, 0, 0}))
			Expect(s.Energy()).To(Equal(e0))
			Expect(e0).To(BeNumerically(">", 0))
		})

		It("aborts when integrating a massless body", func() {
			s := sim.MustNew([]*physics.Entity{
				body("ghost", mgl64.Vec3{}, mgl64.Vec3{}, mgl64.Vec3{}, 0, 1),
			}, conservative, 0)

			Expect(func() { s.NextState(0.1) }).To(PanicWith(MatchError(dynamo.ErrNonPositiveMass)))
		})
	})

	Describe("conservation", func() {
		It("keeps momentum and energy while two touching bodies collide", func() {
			s := sim.MustNew([]*physics.Entity{
				body("a", mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0.5, 0}, mgl64.Vec3{}, 10, 1),
				body("b", mgl64.Vec3{1.9, 0.3, 0}, mgl64.Vec3{-0.5, 0, 0}, mgl64.Vec3{}, 30, 1),
			}, conservative, 0)

			cfg := sim.DefaultConfig()
			cfg.Dt = 0.01
			cfg.Duration = 2
			cfg.CheckConservation = true

			res, err := sim.NewSimulator().Run(context.Background(), s, cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.StepsTaken).To(Equal(200))
			Expect(res.MomentumDrift).To(BeNumerically("<", sim.DefaultTolerance))
			Expect(res.EnergyDrift).To(BeNumerically("<", sim.DefaultTolerance))
		})

		It("bounces a body off a heavy wall", func() {
			s := sim.MustNew([]*physics.Entity{
				body("A", mgl64.Vec3{1000, 0, 0}, mgl64.Vec3{-100, 0, 0}, mgl64.Vec3{}, 10, 1),
				body("Wall", mgl64.Vec3{}, mgl64.Vec3{}, mgl64.Vec3{}, 10_000, 500),
			}, conservative, 0)

			cfg := sim.DefaultConfig()
			cfg.Dt = 0.1
			cfg.Duration = 30
			cfg.CheckConservation = true

			_, err := sim.NewSimulator().Run(context.Background(), s, cfg)
			Expect(err).NotTo(HaveOccurred())

			a, _ := s.Entity("A")
			Expect(a.State().Velocity.X()).To(BeNumerically("~", 100*9990.0/10010.0, 1e-6))
			Expect(s.Momentum().X()).To(BeNumerically("~", -1000, 1e-6))
		})
	})
})
