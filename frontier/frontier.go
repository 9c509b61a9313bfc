package frontier

import (
	"container/heap"
	"sort"
)

// compactSlack is the number of stale heap entries tolerated on top of the
// live ones before the heap is rebuilt from the index.
const compactSlack = 64

// Frontier is an indexed min-priority queue of Records with lazy deletion.
// For any id it holds at most one live Record; Push overwrites.
type Frontier struct {
	index map[int]*slot // id → live record
	pq    entryPQ       // may contain outdated entries
	clock uint64        // version source for entries
}

// slot holds the live record for one id and the version of its heap entry.
type slot struct {
	rec     Record
	version uint64
}

// New returns an empty Frontier sized for roughly capacity records.
func New(capacity int) *Frontier {
	if capacity < 0 {
		capacity = 0
	}
	return &Frontier{
		index: make(map[int]*slot, capacity),
		pq:    make(entryPQ, 0, capacity),
	}
}

// Len returns the number of live records.
func (fr *Frontier) Len() int { return len(fr.index) }

// IsEmpty reports whether the frontier holds no live record.
func (fr *Frontier) IsEmpty() bool { return len(fr.index) == 0 }

// Contains reports whether a live record exists for id.
func (fr *Frontier) Contains(id int) bool {
	_, ok := fr.index[id]
	return ok
}

// Get returns a copy of the live record for id. The boolean is false when
// id is absent; Get never constructs a record.
func (fr *Frontier) Get(id int) (Record, bool) {
	s, ok := fr.index[id]
	if !ok {
		return Record{}, false
	}
	return s.rec, true
}

// Push inserts rec, or replaces the live record with the same ID.
// Callers decide whether the replacement is an improvement.
func (fr *Frontier) Push(rec Record) {
	fr.clock++
	s, ok := fr.index[rec.ID]
	if !ok {
		s = &slot{}
		fr.index[rec.ID] = s
	}
	s.rec = rec
	s.version = fr.clock
	heap.Push(&fr.pq, entry{key: rec, version: fr.clock})
	fr.maybeCompact()
}

// Pop removes and returns the smallest live record under Less.
// The boolean is false when the frontier is empty.
func (fr *Frontier) Pop() (Record, bool) {
	for fr.pq.Len() > 0 {
		e := heap.Pop(&fr.pq).(entry)
		s, ok := fr.index[e.key.ID]
		if !ok || s.version != e.version {
			continue // stale: removed or overwritten since it was pushed
		}
		delete(fr.index, e.key.ID)
		return s.rec, true
	}
	return Record{}, false
}

// Remove drops the live record for id. Removing an absent id is a no-op.
func (fr *Frontier) Remove(id int) {
	if _, ok := fr.index[id]; !ok {
		return
	}
	delete(fr.index, id)
	fr.maybeCompact()
}

// All returns copies of the live records ordered by ascending id.
func (fr *Frontier) All() []Record {
	out := make([]Record, 0, len(fr.index))
	for _, s := range fr.index {
		out = append(out, s.rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Rescore calls fn on every live record, then rebuilds the heap so the new
// priorities take effect. fn must not change the record's ID.
func (fr *Frontier) Rescore(fn func(rec *Record)) {
	for id, s := range fr.index {
		fn(&s.rec)
		s.rec.ID = id
	}
	fr.rebuild()
}

// maybeCompact rebuilds the heap when outdated entries dominate it.
func (fr *Frontier) maybeCompact() {
	if len(fr.pq) > 2*len(fr.index)+compactSlack {
		fr.rebuild()
	}
}

// rebuild replaces the heap with one fresh entry per live record. O(n).
func (fr *Frontier) rebuild() {
	fr.pq = fr.pq[:0]
	for _, s := range fr.index {
		fr.clock++
		s.version = fr.clock
		fr.pq = append(fr.pq, entry{key: s.rec, version: fr.clock})
	}
	heap.Init(&fr.pq)
}

// entry is a heap element: a snapshot of the record's ordering key plus the
// slot version it was pushed under.
type entry struct {
	key     Record
	version uint64
}

// entryPQ is a min-heap of entries ordered by Less on their keys.
type entryPQ []entry

// Len returns the number of entries, stale ones included.
func (pq entryPQ) Len() int { return len(pq) }

// Less orders entries by their record keys.
func (pq entryPQ) Less(i, j int) bool { return Less(pq[i].key, pq[j].key) }

// Swap swaps two entries.
func (pq entryPQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push appends x; called by heap.Push.
func (pq *entryPQ) Push(x interface{}) { *pq = append(*pq, x.(entry)) }

// Pop removes the last entry; called by heap.Pop.
func (pq *entryPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	e := old[n-1]
	*pq = old[:n-1]

	return e
}
