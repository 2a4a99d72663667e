package roster

import (
	"github.com/outofforest/roster/records"
)

// SlotReader provides read access to record slots during a lookup.
type SlotReader interface {
	Capacity() int
	Slot(index int) records.Record
}

// Lookup locates the slot storing the record with the given identifier.
type Lookup interface {
	Find(slots SlotReader, id string) (index int, r records.Record, exists bool)
}

// LinearLookup scans slots in increasing order and returns the first exact
// match. Cost is O(capacity) per call, acceptable only because the capacity
// is small and fixed.
type LinearLookup struct{}

// Find implements Lookup.
func (LinearLookup) Find(slots SlotReader, id string) (int, records.Record, bool) {
	for i := 0; i < slots.Capacity(); i++ {
		r := slots.Slot(i)
		if string(r.ID) == id {
			return i, r, true
		}
	}
	return 0, records.Record{}, false
}
