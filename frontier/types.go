package frontier

import (
	"fmt"
	"math"
)

// NoParent marks a record that was not reached from another cell (the start).
const NoParent = -1

// Record is the search state of one grid cell during one search episode.
// Identity is ID alone; G, H, F and Parent are bookkeeping owned by whichever
// collection (frontier or closed set) currently holds the record.
type Record struct {
	ID     int     // row-major cell identifier
	G      float64 // accumulated cost from the start
	H      float64 // heuristic estimate to the (nearest active) goal
	F      float64 // G + H
	Parent int     // id of the cell this one was reached from, or NoParent
}

// NewRecord returns an unrelaxed record for id: G and F are +Inf, no parent.
func NewRecord(id int) Record {
	return Record{
		ID:     id,
		G:      math.Inf(1),
		H:      0,
		F:      math.Inf(1),
		Parent: NoParent,
	}
}

// Set assigns G and H and recomputes F.
func (r *Record) Set(g, h float64) {
	r.G = g
	r.H = h
	r.F = g + h
}

// HasParent reports whether the record was reached from another cell.
func (r Record) HasParent() bool { return r.Parent != NoParent }

// String renders the record for debugging and log output.
func (r Record) String() string {
	return fmt.Sprintf("Record(id=%d, f=%g, g=%g, h=%g, parent=%d)", r.ID, r.F, r.G, r.H, r.Parent)
}

// Less reports whether a must be expanded before b:
// smaller F first, then smaller G, then larger ID.
func Less(a, b Record) bool {
	if a.F != b.F {
		return a.F < b.F
	}
	if a.G != b.G {
		return a.G < b.G
	}
	return a.ID > b.ID
}
