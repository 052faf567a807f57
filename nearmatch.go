package nearmatch

import (
	"fmt"
	"math"
)

// Config controls nearest-match behavior.
// Start with [DefaultConfig] and override the fields you need.
type Config struct {
	// Radius is the initial half-width of the search box, in coordinate
	// units. Small values keep queries local; the driver grows the box as
	// needed, so Radius only tunes performance, never correctness.
	// Must be > 0. Default: 1.
	Radius float64

	// Growth multiplies the search radius after each empty pass.
	// Must be >= 1; with a value of 1 an empty pass falls through to a
	// single full-domain search instead of growing. Default: 2.
	Growth float64

	// Incremental seeds each query's radius with the previous query's
	// match distance plus Radius. Effective when successive targets are
	// spatially close (queries streaming in acquisition order).
	// Default: false.
	Incremental bool

	// MaxDistance discards a match whose Euclidean distance exceeds it,
	// turning the query into a not-found. 0 means no limit. Must be >= 0.
	// Default: 0.
	MaxDistance float64

	// Min and Max bound the coordinate domain per dimension (lower
	// inclusive, upper exclusive). Points and targets outside the bounds
	// are never matched. nil means unbounded. Length must equal the
	// number of coordinate columns when set.
	Min, Max []float64

	// Active flags which dimensions contribute to the distance sum.
	// Inactive dimensions still restrict admissibility through the domain
	// bounds. nil means all dimensions are active. Length must equal the
	// number of coordinate columns when set.
	Active []bool

	// Randomize links points into the tree in a spread-out hop order
	// instead of storage order. Keep it on unless point storage order is
	// already well shuffled. Default (via DefaultConfig): true.
	Randomize bool
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		Radius:    1,
		Growth:    2,
		Randomize: true,
	}
}

// applyDefaults fills in zero-valued config fields with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.Radius == 0 {
		cfg.Radius = 1
	}
	if cfg.Growth == 0 {
		cfg.Growth = 2
	}
}

// validateConfig checks cfg against the point dimensionality and returns a
// descriptive error if any field is invalid.
func validateConfig(cfg *Config, dims int) error {
	if cfg.Radius <= 0 {
		return fmt.Errorf("nearmatch: Radius must be > 0, got %g", cfg.Radius)
	}
	if cfg.Growth < 1 {
		return fmt.Errorf("nearmatch: Growth must be >= 1, got %g", cfg.Growth)
	}
	if cfg.MaxDistance < 0 {
		return fmt.Errorf("nearmatch: MaxDistance must be >= 0, got %g", cfg.MaxDistance)
	}
	if cfg.Min != nil && len(cfg.Min) != dims {
		return fmt.Errorf("nearmatch: Min has length %d, want %d", len(cfg.Min), dims)
	}
	if cfg.Max != nil && len(cfg.Max) != dims {
		return fmt.Errorf("nearmatch: Max has length %d, want %d", len(cfg.Max), dims)
	}
	if cfg.Active != nil && len(cfg.Active) != dims {
		return fmt.Errorf("nearmatch: Active has length %d, want %d", len(cfg.Active), dims)
	}
	for d := 0; d < dims; d++ {
		lo, hi := cfg.bound(d)
		if lo >= hi {
			return fmt.Errorf("nearmatch: empty domain on dimension %d: [%g, %g)", d, lo, hi)
		}
	}
	return nil
}

// bound returns the global domain bounds for dimension d, defaulting to
// (-Inf, +Inf) when unset.
func (cfg *Config) bound(d int) (lo, hi float64) {
	lo, hi = math.Inf(-1), math.Inf(1)
	if cfg.Min != nil {
		lo = cfg.Min[d]
	}
	if cfg.Max != nil {
		hi = cfg.Max[d]
	}
	return lo, hi
}

// Stats accumulates per-matcher query counters, exposed so callers can
// report search effort (typical use: tuning Radius against cycle counts).
type Stats struct {
	// Queries is the number of Nearest calls.
	Queries int
	// Matches is the number of Nearest calls that returned a match,
	// after the MaxDistance filter.
	Matches int
	// Cycles is the total number of search passes across all queries.
	Cycles int
	// Expansions is the number of empty passes that widened the search
	// box before retrying.
	Expansions int
	// Corrections is the number of corrective re-search passes taken to
	// close the square-vs-circle gap.
	Corrections int
}

// Matcher owns a point set, its spatial index, and the query configuration.
//
// Nearest mutates the stats counters and the incremental radius seed, so a
// Matcher must not be shared across goroutines. Concurrent querying of one
// built index is possible through Tree.SearchExtent, which is read-only.
type Matcher struct {
	cfg  Config
	pts  *PointSet
	tree *Tree

	prevDist float64 // last match distance, seeds incremental queries
	hasPrev  bool
	stats    Stats
}

// NewMatcher builds a Matcher over the given coordinate columns.
// Each column is one dimension; all columns must have equal nonzero length.
// Returns an error if the columns or the config are invalid.
func NewMatcher(cols [][]float64, cfg Config) (*Matcher, error) {
	pts, err := NewPointSet(cols)
	if err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	if err := validateConfig(&cfg, pts.Dims()); err != nil {
		return nil, err
	}
	return &Matcher{
		cfg:  cfg,
		pts:  pts,
		tree: NewTree(pts, cfg.Randomize),
	}, nil
}

// Points returns the matcher's point set.
func (m *Matcher) Points() *PointSet { return m.pts }

// Tree returns the matcher's spatial index.
func (m *Matcher) Tree() *Tree { return m.tree }

// Stats returns the cumulative query counters.
func (m *Matcher) Stats() Stats { return m.stats }
