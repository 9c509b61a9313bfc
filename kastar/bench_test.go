package kastar_test

import (
	"testing"

	"github.com/katalvlaran/gridsearch/gridgraph"
	"github.com/katalvlaran/gridsearch/kastar"
)

// corners returns the three non-origin corners of an n×n grid.
func corners(n int) []int {
	return []int{n - 1, n * (n - 1), n*n - 1}
}

// BenchmarkSearch_Open100 resolves three corners with one KA* pass.
func BenchmarkSearch_Open100(b *testing.B) {
	gg, err := gridgraph.NewOpen(100)
	if err != nil {
		b.Fatalf("setup NewOpen failed: %v", err)
	}
	goals := corners(100)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = kastar.Search(gg, 0, goals)
	}
}

// BenchmarkSearchSeeded_Open100 resolves the same goals with per-goal A* runs.
func BenchmarkSearchSeeded_Open100(b *testing.B) {
	gg, err := gridgraph.NewOpen(100)
	if err != nil {
		b.Fatalf("setup NewOpen failed: %v", err)
	}
	goals := corners(100)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = kastar.SearchSeeded(gg, 0, goals)
	}
}
