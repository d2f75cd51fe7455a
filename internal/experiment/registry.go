package experiment

import (
	"fmt"

	"github.com/san-kum/physworld/internal/metrics"
	"github.com/san-kum/physworld/internal/physics"
	"github.com/san-kum/physworld/internal/sim"
)

// Registry is the fixed list of interactions a scenario can name.
type Registry struct {
	interactions map[string]func() physics.Interaction
	order        []string
}

func NewRegistry() *Registry {
	r := &Registry{
		interactions: make(map[string]func() physics.Interaction),
	}

	r.register(func() physics.Interaction { return physics.ContactForces{} })
	r.register(func() physics.Interaction { return physics.ElasticCollision{} })
	r.register(func() physics.Interaction { return physics.Gravity{} })

	return r
}

func (r *Registry) register(fn func() physics.Interaction) {
	name := fn().Identifier()
	r.interactions[name] = fn
	r.order = append(r.order, name)
}

func (r *Registry) GetInteraction(name string) (physics.Interaction, error) {
	fn, ok := r.interactions[name]
	if !ok {
		return nil, fmt.Errorf("unknown interaction: %s", name)
	}
	return fn(), nil
}

// Resolve looks up every name in order. Duplicates are left for
// sim.New to reject.
func (r *Registry) Resolve(names []string) ([]physics.Interaction, error) {
	out := make([]physics.Interaction, 0, len(names))
	for _, name := range names {
		in, err := r.GetInteraction(name)
		if err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, nil
}

func (r *Registry) ListInteractions() []string {
	return append([]string(nil), r.order...)
}

// DefaultMetrics watches conservation and flags bodies leaving a sphere of
// radius bound around the origin.
func (r *Registry) DefaultMetrics(bound float64) []sim.Metric {
	return []sim.Metric{
		metrics.NewEnergyDrift(),
		metrics.NewMomentumDrift(),
		metrics.NewKineticEnergy(),
		metrics.NewStability(bound),
	}
}
