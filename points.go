package nearmatch

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// PointSet is a fixed table of n points in dims dimensions, stored as dims
// parallel columns rather than n rows. Tree traversal reads one dimension
// across many candidate points, so columnar storage keeps those reads local.
//
// A PointSet is immutable after construction.
type PointSet struct {
	cols [][]float64
	n    int
	dims int
}

// NewPointSet wraps the given coordinate columns. All columns must have the
// same nonzero length. The columns are retained, not copied; callers must
// not mutate them afterwards.
func NewPointSet(cols [][]float64) (*PointSet, error) {
	if len(cols) == 0 {
		return nil, fmt.Errorf("nearmatch: PointSet needs at least 1 coordinate column")
	}
	n := len(cols[0])
	if n == 0 {
		return nil, fmt.Errorf("nearmatch: PointSet needs at least 1 point")
	}
	for d, c := range cols {
		if len(c) != n {
			return nil, fmt.Errorf("nearmatch: column %d has length %d, want %d", d, len(c), n)
		}
	}
	return &PointSet{cols: cols, n: n, dims: len(cols)}, nil
}

// Len returns the number of points.
func (p *PointSet) Len() int { return p.n }

// Dims returns the dimensionality.
func (p *PointSet) Dims() int { return p.dims }

// Coord returns coordinate d of point i.
func (p *PointSet) Coord(i, d int) float64 { return p.cols[d][i] }

// Column returns the full coordinate column for dimension d.
func (p *PointSet) Column(d int) []float64 { return p.cols[d] }

// Bounds returns per-dimension minimum and maximum coordinate values.
func (p *PointSet) Bounds() (min, max []float64) {
	min = make([]float64, p.dims)
	max = make([]float64, p.dims)
	for d, c := range p.cols {
		min[d] = floats.Min(c)
		max[d] = floats.Max(c)
	}
	return min, max
}

// Extent is an axis-aligned query box. A point is inside iff for every
// dimension d, Min[d] <= coord[d] < Max[d] (lower inclusive, upper
// exclusive).
type Extent struct {
	Min, Max []float64
}

// UnboundedExtent returns an extent spanning (-Inf, +Inf) on every dimension.
func UnboundedExtent(dims int) Extent {
	e := Extent{
		Min: make([]float64, dims),
		Max: make([]float64, dims),
	}
	for d := 0; d < dims; d++ {
		e.Min[d] = math.Inf(-1)
		e.Max[d] = math.Inf(1)
	}
	return e
}

// contains reports whether point i of p lies inside e on every dimension.
func (e Extent) contains(p *PointSet, i int) bool {
	for d := 0; d < p.dims; d++ {
		v := p.cols[d][i]
		if v < e.Min[d] || v >= e.Max[d] {
			return false
		}
	}
	return true
}
