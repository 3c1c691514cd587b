package poker

import "slices"

// ordinalCount is the number of five-rank patterns that are not straights.
const ordinalCount = 1277

// OrdinalTable lists, in ascending numeric order, every 13-bit mask with
// exactly five bits set that does not form a straight. A pattern's position
// in the table is its dense ordinal, and higher positions are stronger
// flushes or high-card hands.
//
// The table is read only once built.
type OrdinalTable struct {
	entries [ordinalCount]uint16
}

func newOrdinalTable() *OrdinalTable {
	t := &OrdinalTable{}
	mask := uint16(0)
	for i := range t.entries {
		for PopCount14(uint64(mask)) != 5 || StraightRank(mask) != 0 {
			mask++
		}
		t.entries[i] = mask
		mask++
	}
	return t
}

// Index returns the ordinal of a five-bit, non-straight rank mask. The second
// result is false for any other input.
func (t *OrdinalTable) Index(mask uint16) (int, bool) {
	return slices.BinarySearch(t.entries[:], mask)
}

// Len returns the number of patterns in the table.
func (t *OrdinalTable) Len() int {
	return len(t.entries)
}

// At returns the pattern stored at ordinal i.
func (t *OrdinalTable) At(i int) uint16 {
	return t.entries[i]
}
