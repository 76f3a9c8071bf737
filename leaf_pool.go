package decoplant

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// LeafInstance is the packed form of a live leaf, laid out for a billboard
// shader: struct { vec3 pos; float size; vec4 color; }.
type LeafInstance struct {
	Pos   [3]float32
	Size  float32
	Color [4]float32
}

// LeafPool is a fixed-capacity CPU simulation of falling leaves.
type LeafPool struct {
	Gravity float32 // downward acceleration
	Drag    float32 // per-second linear drag
	Drift   float32 // sideways speed, sign taken from the leaf's flip
	Color   [4]float32

	pos   []mgl32.Vec3
	vel   []mgl32.Vec3
	age   []float32
	life  []float32
	size  []float32
	drift []float32

	alive int
}

func NewLeafPool(capacity int) *LeafPool {
	if capacity <= 0 {
		capacity = 1
	}
	return &LeafPool{
		Gravity: 0.15,
		Drag:    0.5,
		Drift:   0.2,
		Color:   [4]float32{0.55, 0.45, 0.2, 1},
		pos:     make([]mgl32.Vec3, capacity),
		vel:     make([]mgl32.Vec3, capacity),
		age:     make([]float32, capacity),
		life:    make([]float32, capacity),
		size:    make([]float32, capacity),
		drift:   make([]float32, capacity),
	}
}

func (p *LeafPool) Alive() int    { return p.alive }
func (p *LeafPool) Capacity() int { return len(p.pos) }

// SpawnLeaf refuses leaves once the pool is full or when the lifetime has
// already run out.
func (p *LeafPool) SpawnLeaf(l LeafParticle) bool {
	if p.alive >= len(p.pos) || l.Lifetime <= 0 {
		return false
	}
	idx := p.alive
	p.alive++

	sign := float32(-1)
	if l.FrontFlip {
		sign = 1
	}
	p.pos[idx] = l.Position
	p.vel[idx] = mgl32.Vec3{}
	p.age[idx] = 0
	p.life[idx] = l.Lifetime
	p.size[idx] = l.Scale
	p.drift[idx] = sign * p.Drift
	return true
}

// Update advances every leaf by dt and retires the expired ones. Leaves
// stop at the ground (y = 0).
func (p *LeafPool) Update(dt time.Duration) {
	step := float32(dt.Seconds())
	if step <= 0 {
		return
	}
	drag := float32(math.Max(0, float64(1-p.Drag*step)))

	i := 0
	for i < p.alive {
		age := p.age[i] + step
		if age >= p.life[i] {
			p.killAt(i)
			continue
		}

		v := p.vel[i].Add(mgl32.Vec3{0, -p.Gravity * step, 0}).Mul(drag)
		v[0] = p.drift[i]
		pos := p.pos[i].Add(v.Mul(step))
		if pos[1] < 0 {
			pos[1] = 0
			v = mgl32.Vec3{}
		}

		p.vel[i] = v
		p.pos[i] = pos
		p.age[i] = age
		i++
	}
}

// Instances packs the live leaves. Leaves fade out over the last quarter of
// their life.
func (p *LeafPool) Instances() []LeafInstance {
	out := make([]LeafInstance, 0, p.alive)
	for i := 0; i < p.alive; i++ {
		c := p.Color
		if rest := 1 - p.age[i]/p.life[i]; rest < 0.25 {
			c[3] *= rest / 0.25
		}
		pos := p.pos[i]
		out = append(out, LeafInstance{
			Pos:   [3]float32{pos.X(), pos.Y(), pos.Z()},
			Size:  p.size[i],
			Color: c,
		})
	}
	return out
}

// Swap-remove one leaf
func (p *LeafPool) killAt(i int) {
	last := p.alive - 1
	p.pos[i] = p.pos[last]
	p.vel[i] = p.vel[last]
	p.age[i] = p.age[last]
	p.life[i] = p.life[last]
	p.size[i] = p.size[last]
	p.drift[i] = p.drift[last]
	p.alive--
}
