package astar

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/katalvlaran/gridsearch/frontier"
)

// Algorithm is the name reported to Recorders by Search.
const Algorithm = "astar"

// Sentinel errors returned by the searches.
var (
	// ErrNilGrid indicates that a nil Grid was passed to a search.
	ErrNilGrid = errors.New("astar: grid is nil")

	// ErrInvalidStart indicates that the start id is not a traversable cell.
	ErrInvalidStart = errors.New("astar: start is not a traversable cell")

	// ErrInvalidGoal indicates that a goal id is not a traversable cell.
	ErrInvalidGoal = errors.New("astar: goal is not a traversable cell")

	// ErrGrid indicates that the grid service failed to answer a query.
	ErrGrid = errors.New("astar: grid query failed")

	// ErrNegativeWeight indicates that the grid reported a negative entry cost.
	ErrNegativeWeight = errors.New("astar: negative cell weight")
)

// Grid is the read-only service a search consumes. Cell ids are row-major
// integers; the grid must not be mutated while a search is running.
type Grid interface {
	// Neighbors returns the traversable cells adjacent to id.
	Neighbors(id int) ([]int, error)
	// Weight returns the non-negative cost of entering id.
	Weight(id int) (float64, error)
	// Heuristic returns an admissible, consistent estimate of the cost from a to b.
	Heuristic(a, b int) (float64, error)
	// Traversable reports whether id is a valid, unblocked cell.
	Traversable(id int) bool
	// ValidIDs enumerates all traversable cells in ascending order.
	ValidIDs() []int
}

// Stats counts the work done by one search call. It is returned explicitly
// instead of being kept as hidden state on the searcher.
type Stats struct {
	Expanded       int // records moved to the closed set
	Pushed         int // accepted frontier pushes (inserts and improvements)
	HeuristicCalls int // Grid.Heuristic evaluations
	Unreachable    int // goals left unresolved when the frontier ran dry
}

// Add returns the field-wise sum of s and o.
func (s Stats) Add(o Stats) Stats {
	return Stats{
		Expanded:       s.Expanded + o.Expanded,
		Pushed:         s.Pushed + o.Pushed,
		HeuristicCalls: s.HeuristicCalls + o.HeuristicCalls,
		Unreachable:    s.Unreachable + o.Unreachable,
	}
}

// Recorder receives one observation per completed search call.
// metrics.Collector is the Prometheus-backed implementation.
type Recorder interface {
	ObserveSearch(algorithm string, stats Stats, elapsed time.Duration)
}

// noopRecorder discards observations.
type noopRecorder struct{}

func (noopRecorder) ObserveSearch(string, Stats, time.Duration) {}

// Options configures a search call.
type Options struct {
	// Logger receives debug events (goal resolution, termination).
	Logger *slog.Logger

	// Recorder receives the final Stats of each call.
	Recorder Recorder

	// OnExpand is called with every record right after it is closed.
	OnExpand func(rec frontier.Record)
}

// Option represents a functional option for configuring a search.
type Option func(*Options)

// DefaultOptions returns Options with a discarding logger, a no-op recorder
// and a no-op expansion hook.
func DefaultOptions() Options {
	return Options{
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Recorder: noopRecorder{},
		OnExpand: func(frontier.Record) {},
	}
}

// BuildOptions applies opts on top of DefaultOptions.
func BuildOptions(opts ...Option) Options {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithLogger sets the logger used for debug events. nil is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		if logger != nil {
			o.Logger = logger
		}
	}
}

// WithRecorder sets the sink for per-call Stats. nil is ignored.
func WithRecorder(rec Recorder) Option {
	return func(o *Options) {
		if rec != nil {
			o.Recorder = rec
		}
	}
}

// WithOnExpand registers a hook run for every closed record. nil is ignored.
func WithOnExpand(fn func(rec frontier.Record)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnExpand = fn
		}
	}
}
