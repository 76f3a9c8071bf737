package decoplant

import (
	"math/rand/v2"
	"sync"
)

const (
	// MaxInstanceCount is the largest instance count a single cell can hold.
	MaxInstanceCount = 25
	// PositionVariants is the number of alternate orderings kept per count.
	PositionVariants = 8

	variantSalt = 42348528
)

// PositionIndexTable holds shuffled sub-cell orderings for every instance
// count. It is built once and only read afterwards.
type PositionIndexTable struct {
	lists [MaxInstanceCount][PositionVariants][]int
}

// NewPositionIndexTable shuffles every ordering using src. The source does
// not need to be reproducible: only the slot an object picks is.
func NewPositionIndexTable(src rand.Source) *PositionIndexTable {
	r := rand.New(src)
	t := &PositionIndexTable{}
	for n := 1; n <= MaxInstanceCount; n++ {
		for v := 0; v < PositionVariants; v++ {
			list := make([]int, n)
			for i := range list {
				list[i] = i
			}
			r.Shuffle(n, func(i, j int) { list[i], list[j] = list[j], list[i] })
			t.lists[n-1][v] = list
		}
	}
	return t
}

// VariantSlot picks which ordering an object uses.
func VariantSlot(objectID int) int {
	v := (objectID ^ variantSalt) % PositionVariants
	if v < 0 {
		v += PositionVariants
	}
	return v
}

// Get returns the ordering for count instances of the given object. The
// returned slice is shared and must not be modified.
func (t *PositionIndexTable) Get(count, objectID int) ([]int, error) {
	if count < 1 || count > MaxInstanceCount {
		return nil, &PreconditionViolation{Count: count}
	}
	return t.lists[count-1][VariantSlot(objectID)], nil
}

// MustGet is Get for start-up code, where a bad count is fatal.
func (t *PositionIndexTable) MustGet(count, objectID int) []int {
	list, err := t.Get(count, objectID)
	if err != nil {
		panic(err)
	}
	return list
}

var (
	defaultIndicesOnce sync.Once
	defaultIndices     *PositionIndexTable
)

// PositionIndices returns the process-wide table, building it on first use.
func PositionIndices() *PositionIndexTable {
	defaultIndicesOnce.Do(func() {
		defaultIndices = NewPositionIndexTable(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	})
	return defaultIndices
}
