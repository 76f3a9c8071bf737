package decoplant

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// NewMaterialID makes a fresh, globally unique material id.
func NewMaterialID() MaterialID {
	return MaterialID(uuid.NewString())
}

// Mirrored swaps the left and right corners.
func (u UVs) Mirrored() UVs {
	return UVs{u[3], u[2], u[1], u[0]}
}

type atlasSlot struct {
	group AtlasGroup
	page  MaterialID
	min   mgl32.Vec2
	max   mgl32.Vec2
}

// Atlas is an in-memory texture atlas. Materials packed into a page resolve
// to the page and their sub-rectangle; everything else resolves to itself.
type Atlas struct {
	pages map[MaterialID]AtlasGroup
	slots map[MaterialID]atlasSlot
}

func NewAtlas() *Atlas {
	return &Atlas{
		pages: make(map[MaterialID]AtlasGroup),
		slots: make(map[MaterialID]atlasSlot),
	}
}

// AddPage creates an empty page for group.
func (a *Atlas) AddPage(group AtlasGroup) MaterialID {
	id := NewMaterialID()
	a.pages[id] = group
	return id
}

// Pack places base on page at the normalised rectangle [min, max].
func (a *Atlas) Pack(base, page MaterialID, min, max mgl32.Vec2) error {
	group, ok := a.pages[page]
	if !ok {
		return fmt.Errorf("atlas: unknown page %s", page)
	}
	if _, dup := a.slots[base]; dup {
		return fmt.Errorf("atlas: material %s already packed", base)
	}
	if min.X() < 0 || min.Y() < 0 || max.X() > 1 || max.Y() > 1 || min.X() >= max.X() || min.Y() >= max.Y() {
		return fmt.Errorf("atlas: bad rectangle %v-%v for %s", min, max, base)
	}
	a.slots[base] = atlasSlot{group: group, page: page, min: min, max: max}
	return nil
}

// PackGrid creates a page for group and packs bases into equal cells,
// cols per row, left to right and top to bottom.
func (a *Atlas) PackGrid(group AtlasGroup, cols int, bases ...MaterialID) (MaterialID, error) {
	if cols <= 0 {
		return "", fmt.Errorf("atlas: %d columns", cols)
	}
	rows := (len(bases) + cols - 1) / cols
	if rows == 0 {
		rows = 1
	}
	page := a.AddPage(group)
	w, h := 1/float32(cols), 1/float32(rows)
	for i, base := range bases {
		min := mgl32.Vec2{float32(i%cols) * w, float32(i/cols) * h}
		if err := a.Pack(base, page, min, min.Add(mgl32.Vec2{w, h})); err != nil {
			return "", err
		}
	}
	return page, nil
}

func (a *Atlas) Resolve(base MaterialID, group AtlasGroup, flip bool) (MaterialID, UVs) {
	material, uvs := base, DefaultUVs
	if slot, ok := a.slots[base]; ok && slot.group == group {
		material = slot.page
		uvs = UVs{
			{slot.min.X(), slot.min.Y()},
			{slot.min.X(), slot.max.Y()},
			{slot.max.X(), slot.max.Y()},
			{slot.max.X(), slot.min.Y()},
		}
	}
	if flip {
		uvs = uvs.Mirrored()
	}
	return material, uvs
}
