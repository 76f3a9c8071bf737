package decoplant

import "sort"

// Field hosts a set of plant objects: it spawns them, runs their ticks and
// prints them. Despawns requested during a tick, through Plant.Destroy or
// Field.Despawn, are applied once the tick has visited every plant.
type Field struct {
	World *World
	Index *CellIndex

	plants  map[int]*Plant
	nextID  int
	tick    int
	ticking bool
	pending []int
}

// NewField wires a field around placer and leaves. Either may be nil.
func NewField(placer *Placer, leaves *LeafEmitter, log Logger) *Field {
	index := NewCellIndex()
	f := &Field{
		World: &World{
			Grid:   index,
			Placer: placer,
			Leaves: leaves,
			Log:    loggerOrNop(log),
		},
		Index:  index,
		plants: make(map[int]*Plant),
	}
	f.World.Despawn = f.Despawn
	return f
}

// Spawn creates a new plant with a fresh id.
func (f *Field) Spawn(def *PlantDef, pos CellPos) *Plant {
	f.nextID++
	return f.add(NewPlant(f.nextID, pos, def), false)
}

// Restore re-creates a saved plant, keeping its id so it looks the same
// as before.
func (f *Field) Restore(id int, def *PlantDef, pos CellPos) *Plant {
	if id > f.nextID {
		f.nextID = id
	}
	return f.add(NewPlant(id, pos, def), true)
}

func (f *Field) add(p *Plant, respawning bool) *Plant {
	if old, ok := f.plants[p.ID]; ok {
		f.remove(old)
	}
	f.plants[p.ID] = p
	f.Index.Insert(p)
	p.OnSpawn(f.World, respawning)
	return p
}

// Despawn removes the plant with id. Inside a tick it is deferred to the
// end of the tick.
func (f *Field) Despawn(id int) {
	if f.ticking {
		f.pending = append(f.pending, id)
		return
	}
	if p, ok := f.plants[id]; ok {
		f.remove(p)
	}
}

func (f *Field) remove(p *Plant) {
	// The plant is still indexed while it looks up blight on its cell.
	p.OnDespawn()
	f.Index.Remove(p)
	delete(f.plants, p.ID)
}

// Tick advances the field by one simulation tick.
func (f *Field) Tick() {
	f.tick++
	f.ticking = true
	for _, p := range f.Plants() {
		p.Tick(f.tick)
	}
	f.ticking = false

	pending := f.pending
	f.pending = nil
	for _, id := range pending {
		f.Despawn(id)
	}
}

// CurrentTick is the number of ticks run so far.
func (f *Field) CurrentTick() int { return f.tick }

// Print submits every plant to r and returns how many planes were printed.
func (f *Field) Print(r Renderer) int {
	n := 0
	for _, p := range f.Plants() {
		n += len(p.Print(r).Instances)
	}
	return n
}

// Plants returns the spawned plants ordered by id.
func (f *Field) Plants() []*Plant {
	out := make([]*Plant, 0, len(f.plants))
	for _, p := range f.plants {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *Field) Plant(id int) (*Plant, bool) {
	p, ok := f.plants[id]
	return p, ok
}
