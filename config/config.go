// Package config loads gridsearch scenario and verification settings from YAML.
//
// A scenario file describes one grid and one search:
//
//	grid:
//	  rows:
//	    - "S..#"
//	    - ".#.G"
//	    - "...."
//	  connectivity: 4
//	search:
//	  algorithm: kastar
//	  goals: [15]
//	log:
//	  level: debug
//
// Grid rows use '.' for an open cell, '#' for an obstacle, '1'..'9' for a
// weighted cell, 'S' for the start and 'G' for a goal. Alternatively the grid
// can be given as raw integer cells. Start and goals may also be set as
// row-major cell ids under search; marker goals and listed goals are merged.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/gridsearch/astar"
	"github.com/katalvlaran/gridsearch/gridgraph"
	"github.com/katalvlaran/gridsearch/kastar"
)

// Sentinel errors.
var (
	// ErrInvalid indicates a configuration value outside its allowed range.
	ErrInvalid = errors.New("config: invalid value")

	// ErrNoGrid indicates a scenario without grid rows or cells.
	ErrNoGrid = errors.New("config: no grid defined")

	// ErrNoStart indicates a scenario without a start cell.
	ErrNoStart = errors.New("config: no start cell")
)

// Algorithms accepted by search.algorithm.
var Algorithms = []string{astar.Algorithm, kastar.Algorithm, kastar.AlgorithmSeeded}

// Unset marks an id field that was not given.
const Unset = -1

// Config is the complete file structure.
type Config struct {
	Grid   Grid   `yaml:"grid"`
	Search Search `yaml:"search"`
	Log    Log    `yaml:"log"`
	Verify Verify `yaml:"verify"`
}

// Grid describes the cell values and the GridGraph options.
type Grid struct {
	Rows          []string `yaml:"rows"`
	Cells         [][]int  `yaml:"cells"`
	Connectivity  int      `yaml:"connectivity"`
	LandThreshold int      `yaml:"land_threshold"`
	Weighted      bool     `yaml:"weighted"`
}

// Search selects the algorithm and its endpoints.
type Search struct {
	Algorithm string `yaml:"algorithm"`
	Start     int    `yaml:"start"`
	Goals     []int  `yaml:"goals"`
}

// Log configures the slog handler built by the CLI.
type Log struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// Verify configures the randomized property checks.
type Verify struct {
	Trials      int    `yaml:"trials"`
	Seed        int64  `yaml:"seed"`
	MinSize     int    `yaml:"min_size"`
	MaxSize     int    `yaml:"max_size"`
	Obstacles   int    `yaml:"obstacles"` // percent of blocked cells
	MaxGoals    int    `yaml:"max_goals"`
	MetricsAddr string `yaml:"metrics_addr"`
}

// Default returns the configuration used for every field a file leaves out.
func Default() Config {
	return Config{
		Grid: Grid{
			Connectivity:  4,
			LandThreshold: 1,
		},
		Search: Search{
			Algorithm: astar.Algorithm,
			Start:     Unset,
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
		Verify: Verify{
			Trials:    200,
			Seed:      1,
			MinSize:   4,
			MaxSize:   24,
			Obstacles: 25,
			MaxGoals:  4,
		},
	}
}

// Load reads and decodes the YAML file at path. Like Parse it does not
// validate, so callers can apply overrides before calling Validate.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes data on top of Default. Unknown keys are rejected; value
// ranges are checked by Validate.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	return &cfg, nil
}

// Validate checks every field that has a restricted range. A missing grid is
// not an error here; Scenario reports it.
func (c *Config) Validate() error {
	g := c.Grid
	if g.Connectivity != 4 && g.Connectivity != 8 {
		return fmt.Errorf("%w: grid.connectivity=%d (want 4 or 8)", ErrInvalid, g.Connectivity)
	}
	if len(g.Rows) > 0 && len(g.Cells) > 0 {
		return fmt.Errorf("%w: grid.rows and grid.cells are mutually exclusive", ErrInvalid)
	}
	if !slices.Contains(Algorithms, c.Search.Algorithm) {
		return fmt.Errorf("%w: search.algorithm=%q (want one of %s)",
			ErrInvalid, c.Search.Algorithm, strings.Join(Algorithms, ", "))
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("%w: log.format=%q (want text or json)", ErrInvalid, c.Log.Format)
	}

	v := c.Verify
	switch {
	case v.Trials < 1:
		return fmt.Errorf("%w: verify.trials=%d", ErrInvalid, v.Trials)
	case v.MinSize < 2 || v.MaxSize < v.MinSize:
		return fmt.Errorf("%w: verify sizes %d..%d", ErrInvalid, v.MinSize, v.MaxSize)
	case v.Obstacles < 0 || v.Obstacles > 90:
		return fmt.Errorf("%w: verify.obstacles=%d (want 0..90)", ErrInvalid, v.Obstacles)
	case v.MaxGoals < 1:
		return fmt.Errorf("%w: verify.max_goals=%d", ErrInvalid, v.MaxGoals)
	}

	return nil
}

// SlogLevel parses Level into a slog.Level.
func (l Log) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("%w: log.level=%q", ErrInvalid, l.Level)
	}
	return lvl, nil
}

// Scenario is a ready-to-run search: the grid plus validated endpoints.
type Scenario struct {
	Graph     *gridgraph.GridGraph
	Algorithm string
	Start     int
	Goals     []int // ascending, de-duplicated
}

// Scenario builds the GridGraph and resolves start and goals, combining row
// markers with explicit ids.
func (c *Config) Scenario() (*Scenario, error) {
	values, start, goals, err := c.Grid.values()
	if err != nil {
		return nil, err
	}
	conn := gridgraph.Conn4
	if c.Grid.Connectivity == 8 {
		conn = gridgraph.Conn8
	}
	gg, err := gridgraph.NewGridGraph(values, gridgraph.GridOptions{
		LandThreshold: c.Grid.LandThreshold,
		Conn:          conn,
		Weighted:      c.Grid.Weighted,
	})
	if err != nil {
		return nil, fmt.Errorf("config: build grid: %w", err)
	}

	if c.Search.Start != Unset {
		if start != Unset && start != c.Search.Start {
			return nil, fmt.Errorf("%w: search.start=%d conflicts with 'S' marker at %d",
				ErrInvalid, c.Search.Start, start)
		}
		start = c.Search.Start
	}
	if start == Unset {
		return nil, ErrNoStart
	}
	goals = dedupe(append(goals, c.Search.Goals...))
	if len(goals) == 0 {
		return nil, kastar.ErrNoGoals
	}

	return &Scenario{Graph: gg, Algorithm: c.Search.Algorithm, Start: start, Goals: goals}, nil
}

// values returns the integer cells and any start/goal markers found in rows.
func (g Grid) values() (cells [][]int, start int, goals []int, err error) {
	start = Unset
	if len(g.Cells) > 0 {
		return g.Cells, start, nil, nil
	}
	if len(g.Rows) == 0 {
		return nil, start, nil, ErrNoGrid
	}

	width := len(g.Rows[0])
	cells = make([][]int, len(g.Rows))
	for y, row := range g.Rows {
		if len(row) != width {
			return nil, start, nil, fmt.Errorf("%w: row %d has %d cells, want %d",
				gridgraph.ErrNonRectangular, y, len(row), width)
		}
		cells[y] = make([]int, width)
		for x, ch := range []byte(row) {
			id := y*width + x
			switch {
			case ch == '.':
				cells[y][x] = 1
			case ch == '#':
				cells[y][x] = gridgraph.Obstacle
			case ch >= '1' && ch <= '9':
				cells[y][x] = int(ch - '0')
			case ch == 'S':
				if start != Unset {
					return nil, start, nil, fmt.Errorf("%w: second 'S' marker at row %d col %d", ErrInvalid, y, x)
				}
				cells[y][x] = 1
				start = id
			case ch == 'G':
				cells[y][x] = 1
				goals = append(goals, id)
			default:
				return nil, start, nil, fmt.Errorf("%w: unknown cell %q at row %d col %d", ErrInvalid, ch, y, x)
			}
		}
	}
	return cells, start, goals, nil
}

// dedupe returns ids ascending without duplicates.
func dedupe(ids []int) []int {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}
