// Package astar_test provides examples demonstrating single-goal A*.
// Each example is runnable via “go test -run Example”.
package astar_test

import (
	"fmt"

	"github.com/katalvlaran/gridsearch/astar"
	"github.com/katalvlaran/gridsearch/gridgraph"
)

// ExampleSearch_openGrid finds a corner-to-corner path on a 3×3 open grid.
//
//	0 1 2
//	3 4 5
//	6 7 8
//
// Every shortest path has 5 cells; ties are resolved deterministically.
func ExampleSearch_openGrid() {
	// 1) Build the grid service.
	gg, _ := gridgraph.NewOpen(3)

	// 2) Search from the top-left to the bottom-right corner.
	res, err := astar.Search(gg, 0, 8)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	// 3) Print the path and its cost.
	fmt.Println("path:", res.Path(), "cost:", res.Cost())
	// Output: path: [0 3 6 7 8] cost: 4
}

// ExampleSearch_unreachable shows that an unreachable goal is a normal
// outcome: no error, empty path.
func ExampleSearch_unreachable() {
	gg, _ := gridgraph.From2D([][]int{{1, -1, 1}}, gridgraph.Conn4)

	res, err := astar.Search(gg, 0, 2)
	fmt.Println("err:", err, "found:", res.Found(), "path:", res.Path())
	// Output: err: <nil> found: false path: []
}
