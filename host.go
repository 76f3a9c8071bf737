package decoplant

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// MaterialID names a material known to the atlas.
type MaterialID string

// AtlasGroup selects which atlas pages a material may be packed into.
type AtlasGroup string

// UVs are the texture coordinates of a plane's four corners, in the same
// corner order as its colours.
type UVs [4]mgl32.Vec2

// DefaultUVs covers the whole texture.
var DefaultUVs = UVs{{0, 0}, {0, 1}, {1, 1}, {1, 0}}

// Rotation is a cardinal facing.
type Rotation uint8

const (
	North Rotation = iota
	East
	South
	West
)

// AtlasResolver swaps a standalone material for its atlas page and UVs.
type AtlasResolver interface {
	Resolve(base MaterialID, group AtlasGroup, flip bool) (MaterialID, UVs)
}

// Plane is one textured quad handed to the renderer.
type Plane struct {
	Center                  mgl32.Vec3
	Size                    mgl32.Vec2
	Material                MaterialID
	UVs                     UVs
	Flip                    bool
	Colors                  [4]color.RGBA
	TopVerticesAltitudeBias float32
	// VariantSeed is passed to the shader to vary sway phase per object.
	VariantSeed int
}

// Shadow is a blob shadow handed to the renderer.
type Shadow struct {
	Center      mgl32.Vec3
	Volume      mgl32.Vec3
	Orientation Rotation
}

// Renderer receives printed geometry. PrintPlane is called once per
// instance and PrintShadow at most once per object per pass.
type Renderer interface {
	PrintPlane(p Plane)
	PrintShadow(s Shadow)
}

// LeafParticle is a request for one falling leaf.
type LeafParticle struct {
	Position mgl32.Vec3
	Lifetime float32 // seconds
	// FrontFlip leaves drift towards +X.
	FrontFlip bool
	Scale     float32
}

// ParticleSystem spawns leaves. It may refuse when its pool is exhausted.
type ParticleSystem interface {
	SpawnLeaf(l LeafParticle) bool
}

// Blight is whatever afflicts plants on a cell.
type Blight interface {
	NotifyPlantDespawned()
}

// CellGrid answers per-cell content queries.
type CellGrid interface {
	// FirstBlight returns nil when the cell is healthy.
	FirstBlight(pos CellPos) Blight
}
