package sim

import (
	"errors"
	"fmt"

	"github.com/san-kum/physworld/internal/physics"
)

var (
	ErrDuplicateEntity      = errors.New("sim: duplicate entity identifier")
	ErrDuplicateInteraction = errors.New("sim: duplicate interaction identifier")
	ErrInvalidConfig        = errors.New("sim: invalid config")
)

const (
	DefaultTolerance   = 0.007
	DefaultRoundDigits = 8
)

type Config struct {
	Dt       float64
	Duration float64

	// CheckConservation compares |momentum| and energy before and after
	// every step. Steps starting from zero momentum or energy are skipped.
	CheckConservation bool
	Tolerance         float64
	RoundDigits       int
}

func DefaultConfig() Config {
	return Config{
		Dt:          0.01,
		Duration:    10,
		Tolerance:   DefaultTolerance,
		RoundDigits: DefaultRoundDigits,
	}
}

// Snapshot is a deep copy of the world at one instant.
type Snapshot struct {
	Time     float64
	Entities []*physics.Entity
}

type Metric interface {
	Name() string
	Observe(entities []*physics.Entity, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(snap Snapshot)
}

type Result struct {
	History       []Snapshot
	StepsTaken    int
	EnergyDrift   float64
	MomentumDrift float64
	Metrics       map[string]float64
}

// ConservationError reports a step whose momentum or energy left the
// allowed band around the value it started from.
type ConservationError struct {
	Quantity  string
	Step      int
	Time      float64
	Before    float64
	After     float64
	Tolerance float64
}

func (e *ConservationError) Error() string {
	return fmt.Sprintf("%s not conserved at step %d (t=%.4fs): %g -> %g (%.4f%% difference, tolerance %.4f%%)",
		e.Quantity, e.Step, e.Time, e.Before, e.After, 100*(1-e.After/e.Before), 100*e.Tolerance)
}
