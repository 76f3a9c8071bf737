package decoplant

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/go-gl/mathgl/mgl32"
)

// CellPos is an integer grid coordinate. X and Z span the ground plane,
// Y is the layer. Z grows away from the viewer.
type CellPos [3]int

func (p CellPos) X() int { return p[0] }
func (p CellPos) Y() int { return p[1] }
func (p CellPos) Z() int { return p[2] }

// Vec3 returns the cell's minimum corner in world space.
func (p CellPos) Vec3() mgl32.Vec3 {
	return mgl32.Vec3{float32(p[0]), float32(p[1]), float32(p[2])}
}

// Shifted returns the centre of the cell on the ground plane.
func (p CellPos) Shifted() mgl32.Vec3 {
	return mgl32.Vec3{float32(p[0]) + 0.5, float32(p[1]), float32(p[2]) + 0.5}
}

// Hash is stable across runs and platforms.
func (p CellPos) Hash() uint64 {
	var b [24]byte
	binary.LittleEndian.PutUint64(b[0:], uint64(int64(p[0])))
	binary.LittleEndian.PutUint64(b[8:], uint64(int64(p[1])))
	binary.LittleEndian.PutUint64(b[16:], uint64(int64(p[2])))
	return xxhash.Sum64(b[:])
}

// Cell identifies one plant object: where it stands and which object it is.
// Together they determine every random choice made while printing it.
type Cell struct {
	Pos CellPos
	ID  int
}

// Seed is the random seed used for the object's layout. It depends on the
// position only, so a re-created object at the same cell looks the same.
func (c Cell) Seed() uint64 {
	return c.Pos.Hash()
}

// HashOffset spreads per-object work over ticks and picks the texture
// variant. It depends on the object id only.
func (c Cell) HashOffset() int {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(int64(c.ID)))
	return int(xxhash.Sum64(b[:]) & 0x7fffffff)
}
