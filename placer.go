package decoplant

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// singleJitterRadius bounds the offset of a lone instance from the cell centre.
	singleJitterRadius = 0.05
	// gridJitterFactor bounds the jitter of a sub-grid instance, relative to
	// the sub-cell size. Below 0.5 an instance never leaves its sub-cell.
	gridJitterFactor = 0.3

	topVerticesAltitudeBias = 0.1
	shadowAltitudeOffset    = 0.04054054
	uvVariantSeeds          = 1024
)

// PlacedInstance is one mesh of a plant object, ready to print.
type PlacedInstance struct {
	Center        mgl32.Vec3
	Size          mgl32.Vec2
	Flipped       bool
	UVVariantSeed int
	Material      MaterialID
	UVs           UVs
}

// Placement is the result of laying out one plant object.
type Placement struct {
	Instances []PlacedInstance
	// Colors is shared by every instance of the object.
	Colors [4]color.RGBA
	// Shadow is nil when the kind declares no shadow.
	Shadow *Shadow
	// Clamped is set when a lone instance was pushed back inside its cell.
	Clamped bool
}

// Placer lays out plant objects. The zero value uses the process-wide
// position indices, no atlas and no logging.
type Placer struct {
	Indices *PositionIndexTable
	Atlas   AtlasResolver
	Log     Logger
}

func NewPlacer(atlas AtlasResolver, log Logger) *Placer {
	return &Placer{
		Indices: PositionIndices(),
		Atlas:   atlas,
		Log:     log,
	}
}

// ComputeInstances lays out the object standing on cell. The result only
// depends on the cell, the object id and the kind.
func (p *Placer) ComputeInstances(cell Cell, def *PlantDef) Placement {
	return p.Place(NewScopedRand(cell.Seed()), cell, def)
}

// Print lays out the object and submits it to r.
func (p *Placer) Print(r Renderer, cell Cell, def *PlantDef) Placement {
	placement := p.ComputeInstances(cell, def)
	for _, inst := range placement.Instances {
		r.PrintPlane(Plane{
			Center:                  inst.Center,
			Size:                    inst.Size,
			Material:                inst.Material,
			UVs:                     inst.UVs,
			Flip:                    inst.Flipped,
			Colors:                  placement.Colors,
			TopVerticesAltitudeBias: topVerticesAltitudeBias,
			VariantSeed:             inst.UVVariantSeed,
		})
	}
	if placement.Shadow != nil {
		r.PrintShadow(*placement.Shadow)
	}
	return placement
}

// Place lays out the object drawing every random value from rng.
func (p *Placer) Place(rng *ScopedRand, cell Cell, def *PlantDef) Placement {
	cfg := p.config(def)

	indices, err := p.indices().Get(cfg.MaxInstanceCount, cell.ID)
	if err != nil {
		// config() only lets supported counts through.
		loggerOrNop(p.Log).Errorf("plant %q: %v", def.Name, err)
		cfg.MaxInstanceCount = 1
		indices = []int{0}
	}

	trueCenter := cell.Pos.Shifted()
	trueCenter[1] = def.Altitude
	size := mgl32.Vec2{def.DrawSize[0] * cfg.VisualSize, def.DrawSize[0] * cfg.VisualSize}
	variant := cell.HashOffset() % uvVariantSeeds

	placement := Placement{
		Instances: make([]PlacedInstance, 0, len(indices)),
		Colors:    WindExposureColors(cfg.TopWindExposure),
	}

	side, _ := SideCount(cfg.MaxInstanceCount)
	for _, index := range indices {
		var center mgl32.Vec3
		if side == 1 {
			center = trueCenter.Add(rng.HorizontalVector(singleJitterRadius))
			floor := float32(cell.Pos.Z())
			if center.Z()-cfg.VisualSize/2 < floor {
				center[2] = floor + cfg.VisualSize/2
				placement.Clamped = true
			}
		} else {
			center = subCellCenter(cell.Pos, side, index)
			center[1] = def.Altitude
			center = center.Add(rng.HorizontalVector(gridJitterFactor / float32(side)))
		}

		flip := rng.Bool()
		material, uvs := p.resolve(def, flip)
		placement.Instances = append(placement.Instances, PlacedInstance{
			Center:        center,
			Size:          size,
			Flipped:       flip,
			UVVariantSeed: variant,
			Material:      material,
			UVs:           uvs,
		})
	}

	if def.Shadow != nil {
		center := trueCenter.Add(def.Shadow.Offset.Mul(cfg.VisualSize))
		if placement.Clamped {
			center[2] = cell.Pos.Shifted().Z() + def.Shadow.Offset.Z()
		}
		center[1] -= shadowAltitudeOffset
		placement.Shadow = &Shadow{
			Center:      center,
			Volume:      def.Shadow.Volume.Mul(cfg.VisualSize),
			Orientation: North,
		}
	}
	return placement
}

// subCellCenter is the centre of sub-cell index in a side×side split of the
// cell. Index runs along Z first.
func subCellCenter(pos CellPos, side, index int) mgl32.Vec3 {
	step := 1 / float32(side)
	base := pos.Vec3()
	base[0] += 0.5*step + float32(index/side)*step
	base[2] += 0.5*step + float32(index%side)*step
	return base
}

// config returns the kind's placement settings with unusable values
// replaced by safe defaults. Each problem is logged once per kind.
func (p *Placer) config(def *PlantDef) PlantConfig {
	cfg := def.PlantConfig
	if _, err := SideCount(cfg.MaxInstanceCount); err != nil {
		def.report(p.Log, &ConfigurationError{Kind: def.Name, Field: "max_instance_count", Value: cfg.MaxInstanceCount})
		cfg.MaxInstanceCount = 1
	}
	if !(cfg.VisualSize > 0) {
		def.report(p.Log, &ConfigurationError{Kind: def.Name, Field: "visual_size", Value: cfg.VisualSize})
		cfg.VisualSize = 1
	}
	return cfg
}

func (p *Placer) indices() *PositionIndexTable {
	if p.Indices == nil {
		return PositionIndices()
	}
	return p.Indices
}

func (p *Placer) resolve(def *PlantDef, flip bool) (MaterialID, UVs) {
	if p.Atlas == nil {
		if flip {
			return def.Material, DefaultUVs.Mirrored()
		}
		return def.Material, DefaultUVs
	}
	return p.Atlas.Resolve(def.Material, def.Category, flip)
}
