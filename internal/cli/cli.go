// Package cli implements the gridsearch command tree.
//
//	gridsearch solve -f configs/scenario.yaml [--algorithm kastar] [--draw]
//	gridsearch verify [-c configs/verify.yaml] [--trials 500 --seed 7 --metrics-addr :9090]
//	gridsearch version
//
// solve runs one scenario file and prints a path per goal. verify runs
// randomized property checks of every algorithm against brute-force
// distances and exits non-zero when any check fails.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/gridsearch/astar"
	"github.com/katalvlaran/gridsearch/config"
	"github.com/katalvlaran/gridsearch/gridgraph"
	"github.com/katalvlaran/gridsearch/kastar"
)

// Version is reported by the version command and --version.
var Version = "0.1.0"

// ErrVerifyFailed is returned by verify when at least one check fails.
var ErrVerifyFailed = errors.New("verify: property checks failed")

// logFlags are the persistent flags overriding the log section of a config.
type logFlags struct {
	level  string
	format string
}

func BuildCLI() *cobra.Command {
	lf := &logFlags{}
	rootCmd := &cobra.Command{
		Use:   "gridsearch",
		Short: "Shortest paths on weighted grids with A*, KA* and KA*-H",
		Long: `gridsearch computes least-cost paths on 4- or 8-connected grids:
- astar:    single-goal A*
- kastar:   one shared expansion resolving every goal
- kastar-h: one A* run per goal, nearest goal first`,
		Version:      Version,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&lf.level, "log-level", "", "log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().StringVar(&lf.format, "log-format", "", "log format: text or json (overrides config)")

	rootCmd.AddCommand(buildSolveCommand(lf))
	rootCmd.AddCommand(buildVerifyCommand(lf))
	rootCmd.AddCommand(buildVersionCommand())

	return rootCmd
}

func buildSolveCommand(lf *logFlags) *cobra.Command {
	var file, algorithm string
	var draw bool

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve the search described by a scenario file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(file)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if algorithm != "" {
				cfg.Search.Algorithm = algorithm
			}
			logger, err := newLogger(cmd.ErrOrStderr(), cfg.Log, lf)
			if err != nil {
				return err
			}
			if err = cfg.Validate(); err != nil {
				return err
			}
			sc, err := cfg.Scenario()
			if err != nil {
				return err
			}

			rep, err := solve(sc, astar.WithLogger(logger))
			if err != nil {
				return err
			}
			writeReport(cmd.OutOrStdout(), sc, rep)
			if draw {
				fmt.Fprintln(cmd.OutOrStdout())
				fmt.Fprint(cmd.OutOrStdout(), drawGrid(sc.Graph, sc.Start, rep))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "scenario YAML file")
	cmd.Flags().StringVar(&algorithm, "algorithm", "", "override search.algorithm: astar, kastar, kastar-h")
	cmd.Flags().BoolVar(&draw, "draw", false, "print the grid with the paths marked")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func buildVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the gridsearch version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "gridsearch %s\n", Version)
		},
	}
}

// newLogger builds a slog.Logger writing to w. Non-empty flags win over cfg.
func newLogger(w io.Writer, cfg config.Log, lf *logFlags) (*slog.Logger, error) {
	if lf != nil {
		if lf.level != "" {
			cfg.Level = lf.level
		}
		if lf.format != "" {
			cfg.Format = lf.format
		}
	}
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	switch cfg.Format {
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("%w: log format %q", config.ErrInvalid, cfg.Format)
	}
}

// report is the algorithm-independent outcome of solve.
type report struct {
	algorithm string
	goals     []int
	paths     map[int][]int
	costs     map[int]float64
	stats     astar.Stats
}

// solve runs the scenario's algorithm. astar runs once per goal.
func solve(sc *config.Scenario, opts ...astar.Option) (*report, error) {
	rep := &report{
		algorithm: sc.Algorithm,
		goals:     sc.Goals,
		paths:     make(map[int][]int, len(sc.Goals)),
		costs:     make(map[int]float64, len(sc.Goals)),
	}

	var (
		multi *kastar.MultiResult
		err   error
	)
	switch sc.Algorithm {
	case astar.Algorithm:
		for _, goal := range sc.Goals {
			res, err := astar.Search(sc.Graph, sc.Start, goal, opts...)
			if err != nil {
				return nil, err
			}
			rep.paths[goal] = res.Path()
			rep.costs[goal] = res.Cost()
			rep.stats = rep.stats.Add(res.Stats)
		}
		return rep, nil
	case kastar.Algorithm:
		multi, err = kastar.Search(sc.Graph, sc.Start, sc.Goals, opts...)
	case kastar.AlgorithmSeeded:
		multi, err = kastar.SearchSeeded(sc.Graph, sc.Start, sc.Goals, opts...)
	default:
		return nil, fmt.Errorf("%w: algorithm %q", config.ErrInvalid, sc.Algorithm)
	}
	if err != nil {
		return nil, err
	}
	for _, goal := range sc.Goals {
		rep.paths[goal] = multi.Path(goal)
		rep.costs[goal] = multi.Cost(goal)
	}
	rep.stats = multi.Stats

	return rep, nil
}

func writeReport(w io.Writer, sc *config.Scenario, rep *report) {
	fmt.Fprintf(w, "algorithm: %s\n", rep.algorithm)
	fmt.Fprintf(w, "start:     %d\n", sc.Start)
	for _, goal := range rep.goals {
		path := rep.paths[goal]
		if len(path) == 0 {
			fmt.Fprintf(w, "goal %d: unreachable\n", goal)
			continue
		}
		fmt.Fprintf(w, "goal %d: cost %g path %v\n", goal, rep.costs[goal], path)
	}
	fmt.Fprintf(w, "expanded: %d  pushed: %d  heuristic calls: %d\n",
		rep.stats.Expanded, rep.stats.Pushed, rep.stats.HeuristicCalls)
}

// drawGrid renders gg with '#' for blocked cells, 'S' and 'G' for the
// endpoints and '*' for cells on any path.
func drawGrid(gg *gridgraph.GridGraph, start int, rep *report) string {
	marks := make(map[int]byte)
	for _, path := range rep.paths {
		for _, id := range path {
			marks[id] = '*'
		}
	}
	for _, goal := range rep.goals {
		marks[goal] = 'G'
	}
	marks[start] = 'S'

	var b strings.Builder
	for y := 0; y < gg.Height; y++ {
		for x := 0; x < gg.Width; x++ {
			id := gg.Index(x, y)
			switch m, ok := marks[id]; {
			case ok:
				b.WriteByte(m)
			case !gg.Traversable(id):
				b.WriteByte('#')
			default:
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
