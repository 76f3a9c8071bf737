package decoplant

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

// TicksPerSecond is the simulation rate the tick counts are expressed in.
const TicksPerSecond = 60

func TicksToSeconds(ticks int) float32 {
	return float32(ticks) / TicksPerSecond
}

// LeafState is where an object is in its emission cycle.
type LeafState uint8

const (
	Dormant LeafState = iota
	Emitting
)

func (s LeafState) String() string {
	if s == Emitting {
		return "emitting"
	}
	return "dormant"
}

// LeafEmitter drops leaves from plant objects on a coarse interval.
type LeafEmitter struct {
	Config    LeafConfig
	Particles ParticleSystem
	Log       Logger

	rng *rand.Rand
}

// NewLeafEmitter draws its randomness from src, which is not tied to any
// cell: leaves are not expected to repeat between runs.
func NewLeafEmitter(cfg LeafConfig, particles ParticleSystem, src rand.Source, log Logger) *LeafEmitter {
	if cfg.IntervalTicks <= 0 {
		cfg.IntervalTicks = DefaultLeafConfig().IntervalTicks
	}
	return &LeafEmitter{
		Config:    cfg,
		Particles: particles,
		Log:       loggerOrNop(log),
		rng:       rand.New(src),
	}
}

// Due reports whether tick is one of the object's coarse ticks. Objects are
// spread over the interval by their hash offset.
func (e *LeafEmitter) Due(cell Cell, tick int) bool {
	return (tick+cell.HashOffset())%e.Config.IntervalTicks == 0
}

// Emit requests one leaf for the object on cell. It reports whether the
// particle system accepted it.
func (e *LeafEmitter) Emit(cell Cell, def *PlantDef) bool {
	if e.Particles == nil {
		return false
	}
	leaf := e.leaf(cell, def)
	if !e.Particles.SpawnLeaf(leaf) {
		loggerOrNop(e.Log).Debugf("leaf for %s at %v dropped: particle pool full", def.Name, cell.Pos)
		return false
	}
	return true
}

func (e *LeafEmitter) leaf(cell Cell, def *PlantDef) LeafParticle {
	d := insideUnitDisk(e.rng)
	jitter := mgl32.Vec3{d[0], 0, d[1]}.Mul(e.Config.SpawnRadius)

	height := e.Config.SpawnYMin + (e.Config.SpawnYMax-e.Config.SpawnYMin)*e.rng.Float32()
	pos := cell.Pos.Shifted().Add(mgl32.Vec3{0, height, 0}).Add(jitter)
	if def.Shadow != nil {
		pos[2] += def.Shadow.Offset.Z()
	}

	return LeafParticle{
		Position:  pos,
		Lifetime:  e.rng.Float32() * TicksToSeconds(e.Config.IntervalTicks),
		FrontFlip: jitter.Z() > 0,
		Scale:     def.DrawSize[0],
	}
}
