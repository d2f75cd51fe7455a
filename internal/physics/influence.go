package physics

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/physworld/internal/dynamo"
)

// StateInfluence is one edge of the propagation graph. SourceID names the
// body that started the causal chain, TransmitterID the body that last
// forwarded it and ReceiverID the body that has to absorb it next.
type StateInfluence struct {
	SourceID      string
	TransmitterID string
	ReceiverID    string
	InteractionID string
	Change        dynamo.State
}

func ForceInfluence(source, transmitter, receiver, interaction string, force mgl64.Vec3) StateInfluence {
	return StateInfluence{
		SourceID:      source,
		TransmitterID: transmitter,
		ReceiverID:    receiver,
		InteractionID: interaction,
		Change:        dynamo.ForceState(force),
	}
}

// Resolved reports whether the influence has reached the body that applies it.
func (i StateInfluence) Resolved() bool {
	return i.TransmitterID == i.ReceiverID
}

func (i StateInfluence) Force() mgl64.Vec3 { return i.Change.NetForce }

func (i StateInfluence) Equal(other StateInfluence) bool {
	return i.SourceID == other.SourceID &&
		i.TransmitterID == other.TransmitterID &&
		i.ReceiverID == other.ReceiverID &&
		i.InteractionID == other.InteractionID &&
		i.Change.ApproxEqual(other.Change)
}

func (i StateInfluence) String() string {
	return fmt.Sprintf("[%s] %s --%s--> %s force=%v", i.InteractionID, i.TransmitterID, i.SourceID, i.ReceiverID, i.Change.NetForce)
}
