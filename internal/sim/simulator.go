package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/physworld/internal/dynamo"
	"github.com/san-kum/physworld/internal/logger"
	"github.com/sirupsen/logrus"
)

type Simulator struct {
	metrics   []Metric
	observers []Observer
}

func NewSimulator() *Simulator {
	return &Simulator{
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

type conserved struct {
	momentum float64
	energy   float64
}

func measure(sys *System, digits int) conserved {
	return conserved{
		momentum: dynamo.RoundDigits(sys.Momentum().Len(), digits),
		energy:   dynamo.RoundDigits(sys.Energy(), digits),
	}
}

// Run steps sys for cfg.Duration seconds. The returned result holds the
// history up to the last completed step even when an error is returned.
func (s *Simulator) Run(ctx context.Context, sys *System, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}
	if cfg.RoundDigits <= 0 {
		cfg.RoundDigits = DefaultRoundDigits
	}

	steps := int(math.Round(cfg.Duration / cfg.Dt))
	result := &Result{
		History: make([]Snapshot, 0, steps+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	log := logger.Log.WithFields(logrus.Fields{
		"bodies": len(sys.entities),
		"dt":     cfg.Dt,
		"steps":  steps,
	})
	log.Info("simulation started")

	s.record(result, sys)
	initial := measure(sys, cfg.RoundDigits)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		before := measure(sys, cfg.RoundDigits)
		sys.NextState(cfg.Dt)
		after := measure(sys, cfg.RoundDigits)

		if cfg.CheckConservation {
			if err := checkConserved(before, after, cfg.Tolerance); err != nil {
				err.Step = i
				err.Time = sys.CurrentTime()
				log.WithField("quantity", err.Quantity).Warn(err.Error())
				return result, err
			}
		}

		result.StepsTaken++
		s.record(result, sys)
	}

	final := measure(sys, cfg.RoundDigits)
	result.EnergyDrift = drift(initial.energy, final.energy)
	result.MomentumDrift = drift(initial.momentum, final.momentum)
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	log.WithFields(logrus.Fields{
		"time":           sys.CurrentTime(),
		"energy_drift":   result.EnergyDrift,
		"momentum_drift": result.MomentumDrift,
	}).Info("simulation finished")

	return result, nil
}

func (s *Simulator) record(result *Result, sys *System) {
	snap := Snapshot{Time: sys.CurrentTime(), Entities: sys.Entities()}
	result.History = append(result.History, snap)
	for _, m := range s.metrics {
		m.Observe(snap.Entities, snap.Time)
	}
	for _, obs := range s.observers {
		obs.OnStep(snap)
	}
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrInvalidConfig, cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %f", ErrInvalidConfig, cfg.Duration)
	}
	if cfg.Tolerance < 0 {
		return fmt.Errorf("%w: tolerance must not be negative, got %f", ErrInvalidConfig, cfg.Tolerance)
	}
	return nil
}

// checkConserved returns nil when either starting value is zero.
func checkConserved(before, after conserved, tol float64) *ConservationError {
	if before.momentum == 0 || before.energy == 0 {
		return nil
	}
	if !within(before.momentum, after.momentum, tol) {
		return &ConservationError{Quantity: "momentum", Before: before.momentum, After: after.momentum, Tolerance: tol}
	}
	if !within(before.energy, after.energy, tol) {
		return &ConservationError{Quantity: "energy", Before: before.energy, After: after.energy, Tolerance: tol}
	}
	return nil
}

func within(before, after, tol float64) bool {
	return after >= before*(1-tol) && after <= before*(1+tol)
}

func drift(initial, final float64) float64 {
	if initial == 0 {
		return 0
	}
	return math.Abs(final-initial) / math.Abs(initial)
}
