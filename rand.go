package decoplant

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

// ScopedRand is the random context of a single placement. It is seeded from
// a cell and dropped when the placement returns, so no state leaks into
// other random consumers.
type ScopedRand struct {
	r *rand.Rand
}

func NewScopedRand(seed uint64) *ScopedRand {
	return &ScopedRand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *ScopedRand) Float32() float32 { return s.r.Float32() }

func (s *ScopedRand) Bool() bool { return s.r.Uint64()&1 == 1 }

// Range returns a value in [lo, hi).
func (s *ScopedRand) Range(lo, hi float32) float32 {
	return lo + (hi-lo)*s.r.Float32()
}

// HorizontalVector returns an offset on the ground plane no longer than radius.
func (s *ScopedRand) HorizontalVector(radius float32) mgl32.Vec3 {
	d := insideUnitDisk(s.r)
	return mgl32.Vec3{d[0] * radius, 0, d[1] * radius}
}

// insideUnitDisk samples uniformly by area.
func insideUnitDisk(r *rand.Rand) [2]float32 {
	radius := math.Sqrt(r.Float64())
	theta := 2 * math.Pi * r.Float64()
	return [2]float32{float32(radius * math.Cos(theta)), float32(radius * math.Sin(theta))}
}
