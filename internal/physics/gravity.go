package physics

// Gravity marks every pair as neighbors but produces no influences during
// propagation. Its only effect is the potential term of the system energy.
type Gravity struct{}

func (Gravity) Identifier() string { return "gravity" }

func (Gravity) IsNeighbor(transmitter, receiver *Entity) bool { return true }

func (Gravity) Init(source *Entity, neighbors []*Entity, dt float64) []StateInfluence {
	return nil
}

func (Gravity) React(reactor *Entity, neighbors []*Entity, inbound StateInfluence, dt float64) []StateInfluence {
	return nil
}
