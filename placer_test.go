package decoplant

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	mu    sync.Mutex
	warns []string
	errs  []string
}

func (l *recordingLogger) DebugEnabled() bool                { return false }
func (l *recordingLogger) SetDebug(bool)                     {}
func (l *recordingLogger) Debugf(format string, args ...any) {}
func (l *recordingLogger) Infof(format string, args ...any)  {}
func (l *recordingLogger) Warnf(format string, args ...any) {
	l.mu.Lock()
	l.warns = append(l.warns, fmt.Sprintf(format, args...))
	l.mu.Unlock()
}
func (l *recordingLogger) Errorf(format string, args ...any) {
	l.mu.Lock()
	l.errs = append(l.errs, fmt.Sprintf(format, args...))
	l.mu.Unlock()
}

func testDef(count int) *PlantDef {
	return &PlantDef{
		Name:     "grass",
		Label:    "wild grass",
		Material: "grass",
		Category: "plants",
		Altitude: 0.3,
		DrawSize: mgl32.Vec2{1, 1},
		PlantConfig: PlantConfig{
			VisualSize:       1,
			MaxInstanceCount: count,
			TopWindExposure:  0.25,
		},
	}
}

func testPlacer() *Placer {
	return &Placer{Indices: NewPositionIndexTable(rand.NewPCG(11, 13))}
}

func horizontalDistance(a, b mgl32.Vec3) float64 {
	dx := float64(a.X() - b.X())
	dz := float64(a.Z() - b.Z())
	return math.Hypot(dx, dz)
}

func TestPlacer_ExactInstanceCount(t *testing.T) {
	placer := testPlacer()

	for _, n := range []int{1, 4, 9, 16, 25} {
		def := testDef(n)
		for id := 0; id < 20; id++ {
			cell := Cell{Pos: CellPos{id * 3, 0, -id}, ID: id}
			got := placer.ComputeInstances(cell, def)
			require.Len(t, got.Instances, n, "count %d id %d", n, id)
		}
	}
}

func TestPlacer_SingleInstanceJitterAndClamp(t *testing.T) {
	placer := testPlacer()
	def := testDef(1)

	clamped := 0
	for x := -20; x < 20; x++ {
		for z := -5; z < 5; z++ {
			cell := Cell{Pos: CellPos{x, 0, z}, ID: x*100 + z}
			got := placer.ComputeInstances(cell, def)
			require.Len(t, got.Instances, 1)

			trueCenter := cell.Pos.Shifted()
			center := got.Instances[0].Center
			assert.LessOrEqual(t, horizontalDistance(center, trueCenter), singleJitterRadius+1e-5)
			assert.LessOrEqual(t, horizontalDistance(center, trueCenter), float64(DefaultLeafConfig().SpawnRadius))
			assert.GreaterOrEqual(t, center.Z()-def.VisualSize/2, float32(z))
			assert.Equal(t, def.Altitude, center.Y())

			if got.Clamped {
				clamped++
				assert.Equal(t, float32(z)+def.VisualSize/2, center.Z())
			}
		}
	}
	assert.Positive(t, clamped, "expected some instances to need clamping")
}

func TestPlacer_LargeVisualSizeAlwaysClamps(t *testing.T) {
	placer := testPlacer()
	def := testDef(1)
	def.VisualSize = 1.2

	for z := 0; z < 30; z++ {
		got := placer.ComputeInstances(Cell{Pos: CellPos{4, 0, z}, ID: z}, def)
		require.True(t, got.Clamped)
		assert.Equal(t, float32(z)+0.6, got.Instances[0].Center.Z())
	}
}

func TestPlacer_NineInstancesFillDistinctSubCells(t *testing.T) {
	placer := testPlacer()
	def := testDef(9)

	for id := 0; id < 40; id++ {
		cell := Cell{Pos: CellPos{id, 0, 2 * id}, ID: id}
		got := placer.ComputeInstances(cell, def)
		indices := placer.Indices.MustGet(9, id)

		seen := make(map[[2]int]bool)
		for j, inst := range got.Instances {
			col := int(math.Floor(float64((inst.Center.X() - float32(cell.Pos.X())) * 3)))
			row := int(math.Floor(float64((inst.Center.Z() - float32(cell.Pos.Z())) * 3)))
			require.True(t, col >= 0 && col < 3 && row >= 0 && row < 3, "instance %d outside cell: %v", j, inst.Center)

			key := [2]int{col, row}
			assert.False(t, seen[key], "sub-cell %v used twice", key)
			seen[key] = true

			// Draw order follows the object's shuffled indices.
			assert.Equal(t, indices[j]/3, col)
			assert.Equal(t, indices[j]%3, row)
		}
		assert.Len(t, seen, 9)
	}
}

func TestPlacer_Reproducible(t *testing.T) {
	placer := testPlacer()

	for _, n := range []int{1, 4, 16} {
		def := testDef(n)
		cell := Cell{Pos: CellPos{-3, 0, 8}, ID: 1234}

		a := placer.ComputeInstances(cell, def)
		b := placer.ComputeInstances(cell, def)
		assert.Equal(t, a, b)

		c := placer.Place(NewScopedRand(cell.Seed()), cell, def)
		assert.Equal(t, a, c)
	}
}

func TestPlacer_QuadrantScenario(t *testing.T) {
	placer := testPlacer()
	def := testDef(4)
	cell := Cell{Pos: CellPos{10, 0, 10}, ID: 7}

	got := placer.ComputeInstances(cell, def)
	require.Len(t, got.Instances, 4)

	quadrants := make(map[[2]bool]bool)
	for _, inst := range got.Instances {
		lx := inst.Center.X() - 10
		lz := inst.Center.Z() - 10
		require.True(t, lx > 0 && lx < 1 && lz > 0 && lz < 1, "instance outside cell: %v", inst.Center)

		q := [2]bool{lx >= 0.5, lz >= 0.5}
		assert.False(t, quadrants[q], "quadrant %v used twice", q)
		quadrants[q] = true

		// Never further from its quadrant centre than the grid jitter.
		qc := mgl32.Vec3{10.25, 0, 10.25}
		if q[0] {
			qc[0] += 0.5
		}
		if q[1] {
			qc[2] += 0.5
		}
		assert.LessOrEqual(t, horizontalDistance(inst.Center, qc), gridJitterFactor/2+1e-5)
	}
	assert.Len(t, quadrants, 4)

	assert.Equal(t, uint8(0), got.Colors[0].A)
	assert.Equal(t, uint8(64), got.Colors[1].A)
	assert.Equal(t, uint8(64), got.Colors[2].A)
	assert.Equal(t, uint8(0), got.Colors[3].A)

	batch := &PlaneBatch{}
	placer.Print(batch, cell, def)
	require.Len(t, batch.Planes, 4)
	for _, p := range batch.Planes {
		assert.Equal(t, uint8(64), p.Colors[1].A)
		assert.Equal(t, uint8(64), p.Colors[2].A)
		assert.Equal(t, float32(topVerticesAltitudeBias), p.TopVerticesAltitudeBias)
		assert.Equal(t, cell.HashOffset()%uvVariantSeeds, p.VariantSeed)
	}
	assert.Empty(t, batch.Shadows)
}

func TestPlacer_UnsupportedCountDegradesAndLogsOnce(t *testing.T) {
	log := &recordingLogger{}
	placer := &Placer{Log: log}
	def := testDef(7)

	for id := 0; id < 5; id++ {
		got := placer.ComputeInstances(Cell{Pos: CellPos{id, 0, 0}, ID: id}, def)
		assert.Len(t, got.Instances, 1)
	}
	require.Len(t, log.warns, 1)
	assert.Contains(t, log.warns[0], "max_instance_count")

	// A different kind is reported on its own.
	other := testDef(2)
	other.Name = "reed"
	placer.ComputeInstances(Cell{ID: 1}, other)
	assert.Len(t, log.warns, 2)
	assert.Empty(t, log.errs)
}

func TestPlacer_NonPositiveVisualSizeFallsBack(t *testing.T) {
	log := &recordingLogger{}
	placer := &Placer{Log: log}
	def := testDef(4)
	def.VisualSize = 0

	got := placer.ComputeInstances(Cell{Pos: CellPos{1, 0, 1}, ID: 3}, def)
	require.Len(t, got.Instances, 4)
	assert.Equal(t, mgl32.Vec2{1, 1}, got.Instances[0].Size)
	assert.Len(t, log.warns, 1)
}

func TestPlacer_Shadow(t *testing.T) {
	placer := testPlacer()
	def := testDef(4)
	def.VisualSize = 0.5
	def.Shadow = &ShadowData{Volume: mgl32.Vec3{0.4, 0, 0.2}, Offset: mgl32.Vec3{0, 0, -0.2}}
	cell := Cell{Pos: CellPos{2, 0, 3}, ID: 9}

	got := placer.ComputeInstances(cell, def)
	require.NotNil(t, got.Shadow)
	assert.False(t, got.Clamped)
	assert.InDelta(t, 2.5, got.Shadow.Center.X(), 1e-6)
	assert.InDelta(t, def.Altitude-shadowAltitudeOffset, got.Shadow.Center.Y(), 1e-6)
	assert.InDelta(t, 3.5-0.1, got.Shadow.Center.Z(), 1e-6)
	assert.Equal(t, mgl32.Vec3{0.2, 0, 0.1}, got.Shadow.Volume)
	assert.Equal(t, North, got.Shadow.Orientation)

	batch := &PlaneBatch{}
	placer.Print(batch, cell, def)
	assert.Len(t, batch.Shadows, 1)
}

func TestPlacer_ClampedShadowFollowsCellCentre(t *testing.T) {
	placer := testPlacer()
	def := testDef(1)
	def.VisualSize = 1.2
	def.Shadow = &ShadowData{Volume: mgl32.Vec3{0.3, 0, 0.3}, Offset: mgl32.Vec3{0, 0, -0.1}}
	cell := Cell{Pos: CellPos{0, 0, 5}, ID: 2}

	got := placer.ComputeInstances(cell, def)
	require.True(t, got.Clamped)
	require.NotNil(t, got.Shadow)
	assert.InDelta(t, 5.5-0.1, got.Shadow.Center.Z(), 1e-6)
}

func TestPlacer_ResolvesThroughAtlas(t *testing.T) {
	atlas := NewAtlas()
	page, err := atlas.PackGrid("plants", 2, "grass", "reed")
	require.NoError(t, err)

	placer := NewPlacer(atlas, nil)
	def := testDef(16)

	got := placer.ComputeInstances(Cell{Pos: CellPos{5, 0, 5}, ID: 77}, def)
	flips := 0
	for _, inst := range got.Instances {
		assert.Equal(t, page, inst.Material)
		want := UVs{{0, 0}, {0, 1}, {0.5, 1}, {0.5, 0}}
		if inst.Flipped {
			flips++
			want = want.Mirrored()
		}
		assert.Equal(t, want, inst.UVs)
	}
	assert.True(t, flips > 0 && flips < 16, "expected a mix of flipped instances, got %d", flips)
}

func TestPlacer_ZeroValueUsesSharedIndices(t *testing.T) {
	placer := &Placer{}
	def := testDef(4)
	cell := Cell{Pos: CellPos{1, 0, 1}, ID: 5}

	got := placer.ComputeInstances(cell, def)
	indices := PositionIndices().MustGet(4, 5)
	for j, inst := range got.Instances {
		assert.Equal(t, indices[j]/2, int((inst.Center.X()-1)*2))
		assert.Equal(t, def.Material, inst.Material)
	}
}

func TestPlacer_NoAtlasMirrorsFlippedInstances(t *testing.T) {
	placer := &Placer{}
	def := testDef(16)

	got := placer.ComputeInstances(Cell{Pos: CellPos{5, 0, 5}, ID: 77}, def)
	flips := 0
	for _, inst := range got.Instances {
		assert.Equal(t, def.Material, inst.Material)
		if inst.Flipped {
			flips++
			assert.Equal(t, DefaultUVs.Mirrored(), inst.UVs)
		} else {
			assert.Equal(t, DefaultUVs, inst.UVs)
		}
	}
	assert.Positive(t, flips)
}
