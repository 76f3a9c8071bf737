package decoplant

// PlaneBatch is a Renderer that records what it is given. Backends drain it
// once per pass; tools and tests inspect it directly.
type PlaneBatch struct {
	Planes  []Plane
	Shadows []Shadow
}

func (b *PlaneBatch) PrintPlane(p Plane)   { b.Planes = append(b.Planes, p) }
func (b *PlaneBatch) PrintShadow(s Shadow) { b.Shadows = append(b.Shadows, s) }

// Reset empties the batch and keeps its storage.
func (b *PlaneBatch) Reset() {
	b.Planes = b.Planes[:0]
	b.Shadows = b.Shadows[:0]
}
