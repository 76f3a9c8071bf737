package decoplant

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// World bundles the collaborators a plant object talks to while spawned.
type World struct {
	Grid   CellGrid
	Placer *Placer
	Leaves *LeafEmitter
	Log    Logger

	// Despawn asks the host to remove the object with id. Hosts may defer
	// the removal; a nil Despawn removes the object at once.
	Despawn func(id int)
}

// Lifecycle is implemented by objects the host spawns, ticks and despawns.
type Lifecycle interface {
	OnSpawn(w *World, respawningAfterLoad bool)
	OnDespawn()
	OnCoarseTick()
}

var _ Lifecycle = (*Plant)(nil)

// Plant is one decorative plant object standing on a cell.
type Plant struct {
	Cell
	Def *PlantDef

	world     *World
	destroyed bool
	leafState LeafState

	cachedLabel string
}

func NewPlant(id int, pos CellPos, def *PlantDef) *Plant {
	return &Plant{Cell: Cell{Pos: pos, ID: id}, Def: def}
}

func (p *Plant) Spawned() bool   { return p.world != nil }
func (p *Plant) Destroyed() bool { return p.destroyed }

func (p *Plant) LeafState() LeafState { return p.leafState }

func (p *Plant) OnSpawn(w *World, respawningAfterLoad bool) {
	p.world = w
	p.destroyed = false
	if !respawningAfterLoad {
		p.log().Debugf("plant %s #%d spawned at %v", p.Def.Name, p.ID, p.Pos)
	}
}

// OnDespawn removes the plant and tells any blight on its cell. The blight
// is looked up before the plant leaves the grid.
func (p *Plant) OnDespawn() {
	if p.world == nil {
		return
	}
	var blight Blight
	if p.world.Grid != nil {
		blight = p.world.Grid.FirstBlight(p.Pos)
	}
	p.destroyed = true
	p.world = nil
	if blight != nil {
		blight.NotifyPlantDespawned()
	}
}

// Destroy asks the host to remove the plant.
func (p *Plant) Destroy() {
	if p.world == nil {
		return
	}
	if p.world.Despawn != nil {
		p.world.Despawn(p.ID)
		return
	}
	p.OnDespawn()
}

// Tick runs on every simulation tick and forwards the plant's coarse ticks.
func (p *Plant) Tick(tick int) {
	if p.world == nil || p.world.Leaves == nil {
		return
	}
	if !p.world.Leaves.Due(p.Cell, tick) {
		return
	}
	p.OnCoarseTick()
}

func (p *Plant) OnCoarseTick() {
	if p.destroyed || p.world == nil {
		return
	}
	p.cachedLabel = ""

	if p.world.Leaves == nil {
		return
	}
	p.leafState = Emitting
	p.world.Leaves.Emit(p.Cell, p.Def)
	p.leafState = Dormant
}

// defaultPlacer prints plants that are not spawned in a world.
var defaultPlacer = &Placer{Log: NewDefaultLogger("decoplant", false)}

// Print submits the plant's meshes and shadow to r.
func (p *Plant) Print(r Renderer) Placement {
	return p.placer().Print(r, p.Cell, p.Def)
}

func (p *Plant) placer() *Placer {
	if p.world != nil && p.world.Placer != nil {
		return p.world.Placer
	}
	return defaultPlacer
}

// LabelMouseover is the capitalised kind label. It is cached between
// coarse ticks.
func (p *Plant) LabelMouseover() string {
	if p.cachedLabel == "" {
		p.cachedLabel = cases.Title(language.English).String(p.Def.Label)
	}
	return p.cachedLabel
}

func (p *Plant) log() Logger {
	if p.world == nil {
		return NewNopLogger()
	}
	return loggerOrNop(p.world.Log)
}
