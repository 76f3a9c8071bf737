package decoplant

import "slices"

// CellIndex maps cells to the plants and blights standing on them. It is the
// grid service handed to plants through World.
type CellIndex struct {
	plants  map[CellPos][]*Plant
	blights map[CellPos][]Blight
}

func NewCellIndex() *CellIndex {
	return &CellIndex{
		plants:  make(map[CellPos][]*Plant),
		blights: make(map[CellPos][]Blight),
	}
}

func (idx *CellIndex) Insert(p *Plant) {
	idx.plants[p.Pos] = append(idx.plants[p.Pos], p)
}

// Remove reports whether p was indexed.
func (idx *CellIndex) Remove(p *Plant) bool {
	list := idx.plants[p.Pos]
	for i, q := range list {
		if q != p {
			continue
		}
		list = append(list[:i], list[i+1:]...)
		if len(list) == 0 {
			delete(idx.plants, p.Pos)
		} else {
			idx.plants[p.Pos] = list
		}
		return true
	}
	return false
}

// At returns a copy of the plants on pos in insertion order.
func (idx *CellIndex) At(pos CellPos) []*Plant {
	return slices.Clone(idx.plants[pos])
}

// QueryRect returns the plants on layer y whose cells lie within the
// inclusive X/Z bounds.
func (idx *CellIndex) QueryRect(y, minX, minZ, maxX, maxZ int) []*Plant {
	var out []*Plant
	for x := minX; x <= maxX; x++ {
		for z := minZ; z <= maxZ; z++ {
			out = append(out, idx.plants[CellPos{x, y, z}]...)
		}
	}
	return out
}

func (idx *CellIndex) AddBlight(pos CellPos, b Blight) {
	idx.blights[pos] = append(idx.blights[pos], b)
}

func (idx *CellIndex) ClearBlight(pos CellPos) {
	delete(idx.blights, pos)
}

func (idx *CellIndex) FirstBlight(pos CellPos) Blight {
	if list := idx.blights[pos]; len(list) > 0 {
		return list[0]
	}
	return nil
}
