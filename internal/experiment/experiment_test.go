package experiment

import (
	"context"
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/gomega"
	"github.com/san-kum/physworld/internal/config"
	"github.com/san-kum/physworld/internal/sim"
)

func TestRegistry(t *testing.T) {
	g := NewWithT(t)
	reg := NewRegistry()

	g.Expect(reg.ListInteractions()).To(Equal([]string{"contact force", "elastic collision", "gravity"}))
	for _, name := range reg.ListInteractions() {
		in, err := reg.GetInteraction(name)
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(in.Identifier()).To(Equal(name))
	}

	_, err := reg.GetInteraction("magnetism")
	g.Expect(err).To(MatchError(ContainSubstring("unknown interaction: magnetism")))

	_, err = reg.Resolve([]string{"gravity", "magnetism"})
	g.Expect(err).To(HaveOccurred())
}

func TestBuildSystem(t *testing.T) {
	g := NewWithT(t)
	cfg := config.GetPreset("force_propagation_3")

	system, err := BuildSystem(cfg, NewRegistry())
	g.Expect(err).NotTo(HaveOccurred())

	entities := system.Entities()
	g.Expect(entities).To(HaveLen(3))
	g.Expect(entities[1].ID()).To(Equal("B"))
	g.Expect(entities[1].State().NetForce).To(Equal(mgl64.Vec3{-10, 0, 0}))
	g.Expect(entities[1].State().Location).To(Equal(mgl64.Vec3{40, 0, 0}))
	g.Expect(entities[1].State().Shape.Radius).To(Equal(2.0))
	g.Expect(system.Interactions()).To(HaveLen(2))
}

func TestBuildSystem_DuplicateInteraction(t *testing.T) {
	cfg := config.GetPreset("contact_chain")
	cfg.Interactions = []string{"gravity", "gravity"}

	if _, err := BuildSystem(cfg, NewRegistry()); !errors.Is(err, sim.ErrDuplicateInteraction) {
		t.Errorf("BuildSystem() = %v, want %v", err, sim.ErrDuplicateInteraction)
	}
}

func TestBuildSystem_DefaultInteractions(t *testing.T) {
	cfg := config.GetPreset("contact_chain")
	cfg.Interactions = nil

	system, err := BuildSystem(cfg, NewRegistry())
	if err != nil {
		t.Fatalf("BuildSystem() = %v", err)
	}
	if n := len(system.Interactions()); n != 2 {
		t.Errorf("expected 2 default interactions, got %d", n)
	}
}

func TestWorldBound(t *testing.T) {
	tests := []struct {
		preset string
		want   float64
	}{
		{"wall_collisions", 10010},
		{"contact_chain", 50},
	}

	for _, tt := range tests {
		if got := WorldBound(config.GetPreset(tt.preset)); got != tt.want {
			t.Errorf("WorldBound(%s) = %v, want %v", tt.preset, got, tt.want)
		}
	}

	if got := WorldBound(&config.Config{}); got != 100 {
		t.Errorf("WorldBound(empty) = %v, want 100", got)
	}
}

func TestExperimentRun(t *testing.T) {
	g := NewWithT(t)
	cfg := config.GetPreset("two_body_collision")
	cfg.Duration = 1

	e := New(cfg)
	_, err := e.Run(context.Background())
	g.Expect(err).To(MatchError("experiment not setup"))

	g.Expect(e.Setup(NewRegistry())).To(Succeed())
	res, err := e.Run(context.Background())
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(res.StepsTaken).To(Equal(100))
	g.Expect(res.Metrics).To(HaveKey("energy_drift"))
	g.Expect(res.Metrics["momentum_drift"]).To(BeNumerically("<", 1e-9))
	g.Expect(res.Metrics["stability"]).To(Equal(1.0))

	b, ok := e.System().Entity("b")
	g.Expect(ok).To(BeTrue())
	g.Expect(b.State().Velocity.X()).To(BeNumerically("~", 1, 1e-9))
}

func TestExperimentSetup_Invalid(t *testing.T) {
	cfg := config.GetPreset("contact_chain")
	cfg.Dt = 0

	if err := New(cfg).Setup(NewRegistry()); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("Setup() = %v, want %v", err, config.ErrInvalid)
	}
}
