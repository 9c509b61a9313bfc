package gridgraph

// ConnectedComponents finds all contiguous regions (“islands”) of traversable
// cells (CellValues[y][x] ≥ LandThreshold), according to gg.Conn connectivity.
// Returns a slice of components; each component is a slice of cell ids
// (row-major) in BFS order, components ordered by their smallest id.
//
// To convert an id back to (x,y), use Coordinate(id).
//
// Time:   O(W·H·d), where d = 4 or 8.
// Memory: O(W·H) for visited flags and output.
func (gg *GridGraph) ConnectedComponents() [][]int {
	seen := make([]bool, gg.Size())
	var comps [][]int

	for i0 := 0; i0 < gg.Size(); i0++ {
		if seen[i0] || !gg.Traversable(i0) {
			continue
		}
		// BFS to collect component
		queue := []int{i0}
		seen[i0] = true
		for qi := 0; qi < len(queue); qi++ {
			// Neighbors cannot fail for in-range ids.
			next, _ := gg.Neighbors(queue[qi])
			for _, v := range next {
				if !seen[v] {
					seen[v] = true
					queue = append(queue, v)
				}
			}
		}
		comps = append(comps, queue)
	}
	return comps
}

// ComponentLabels returns, for every cell id, the index of its component in
// ConnectedComponents(), or -1 for obstacles.
// Time: O(W·H·d).
func (gg *GridGraph) ComponentLabels() []int {
	labels := make([]int, gg.Size())
	for i := range labels {
		labels[i] = -1
	}
	for ci, comp := range gg.ConnectedComponents() {
		for _, id := range comp {
			labels[id] = ci
		}
	}
	return labels
}
