package dynamo

import "errors"

// Domain errors for physical primitives. Violations that indicate an
// inconsistent world are raised as panics wrapping one of these values.
var (
	// ErrNotSphere indicates a geometric query on a shape that is not a sphere.
	ErrNotSphere = errors.New("dynamo: shape is not a sphere")

	// ErrNonPositiveMass indicates integration of a body without positive mass.
	ErrNonPositiveMass = errors.New("dynamo: mass must be positive to integrate")

	// ErrInvalidState indicates negative mass or radius, or NaN/Inf components.
	ErrInvalidState = errors.New("dynamo: invalid state")

	// ErrReactorMismatch indicates a reaction requested from a body that is not
	// the receiver of the inbound influence.
	ErrReactorMismatch = errors.New("dynamo: reactor does not match influence receiver")

	// ErrUnknownReceiver indicates an influence addressed to a body outside the world.
	ErrUnknownReceiver = errors.New("dynamo: receiver of influence not found")
)
