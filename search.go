package nearmatch

// Match describes the result of a nearest-point lookup.
type Match struct {
	// Index is the point index of the match, usable against the caller's
	// parallel payload arrays. When several points tie exactly, Index is
	// the highest point index among them.
	Index int

	// SqDist is the squared Euclidean distance from the target to the
	// match, summed over active dimensions only.
	SqDist float64

	// Ties is the number of points at exactly SqDist from the target
	// inside the searched region. Ties > 1 flags an ambiguous match.
	Ties int

	// Cycles is the number of search passes the adaptive radius driver
	// used for this query. Zero for direct SearchExtent calls.
	Cycles int
}

// SearchExtent finds the point nearest to target among the points inside
// ext, using squared Euclidean distance summed over the dimensions flagged
// in active (nil means all dimensions contribute). Inactive dimensions
// still gate admissibility via the extent test.
//
// The second return is false when no point lies inside ext; the driver
// treats that as a signal to grow the extent, not as an error. SearchExtent
// only examines the given extent — it does not by itself guarantee the
// globally nearest point (see Matcher.Nearest for that contract).
//
// Safe for concurrent use: the tree is read-only and all search state is
// local to the call.
func (t *Tree) SearchExtent(target []float64, ext Extent, active []bool) (Match, bool) {
	s := searcher{
		t:      t,
		target: target,
		ext:    ext,
		active: active,
		best:   Match{Index: -1},
	}
	s.visit(t.root, 0)
	return s.best, s.best.Ties > 0
}

// searcher holds the per-query traversal state.
type searcher struct {
	t      *Tree
	target []float64
	ext    Extent
	active []bool
	best   Match
}

func (s *searcher) visit(p, axis int) {
	if p < 0 {
		return
	}
	t := s.t

	if s.ext.contains(t.pts, p) {
		sq := s.sqDist(p)
		switch {
		case s.best.Ties == 0 || sq < s.best.SqDist:
			s.best = Match{Index: p, SqDist: sq, Ties: 1}
		case sq == s.best.SqDist:
			s.best.Ties++
			if p > s.best.Index {
				s.best.Index = p
			}
		}
	}

	next := axis + 1
	if next == t.pts.dims {
		next = 0
	}
	v := t.pts.cols[axis][p]
	// Left subtree holds coords strictly below v; skip it when even v
	// falls below the extent. Right subtree holds coords >= v; skip it
	// when v is already past the upper bound.
	if v >= s.ext.Min[axis] {
		s.visit(t.left[p], next)
	}
	if v < s.ext.Max[axis] {
		s.visit(t.right[p], next)
	}
}

// sqDist is the squared distance from the target to point p over active
// dimensions.
func (s *searcher) sqDist(p int) float64 {
	var sum float64
	for d := 0; d < s.t.pts.dims; d++ {
		if s.active != nil && !s.active[d] {
			continue
		}
		diff := s.target[d] - s.t.pts.cols[d][p]
		sum += diff * diff
	}
	return sum
}
