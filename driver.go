package nearmatch

import "math"

// correctionSlack pads the corrective radius so a candidate sitting exactly
// on the search boundary is not lost to floating-point equality.
const correctionSlack = 1.001

// Nearest finds the point nearest to target under the configured partial
// Euclidean distance, restricted to the configured domain bounds.
//
// It searches a box of the seed radius around the target, growing the box
// geometrically while empty. Once a candidate appears, one corrective pass
// with the box widened to the candidate's distance guarantees no closer
// point was hiding in a corner the previous box missed (the searched region
// is a square, the distance contour a circle).
//
// The second return is false when no point satisfies the domain constraints
// at all, or when the best match exceeds Config.MaxDistance. Not-found is a
// normal outcome, not an error; callers typically substitute a default
// payload.
//
// target must have one value per coordinate column.
func (m *Matcher) Nearest(target []float64) (Match, bool) {
	if len(target) != m.pts.dims {
		panic("nearmatch: target dimensionality does not match point set")
	}

	seed := m.cfg.Radius
	if m.cfg.Incremental && m.hasPrev {
		seed = m.prevDist + m.cfg.Radius
	}

	match, found := m.grow(target, seed)
	m.stats.Queries++
	m.stats.Cycles += match.Cycles

	if !found {
		m.hasPrev = false
		return match, false
	}

	m.prevDist = math.Sqrt(match.SqDist)
	m.hasPrev = true

	if m.cfg.MaxDistance > 0 && match.SqDist > m.cfg.MaxDistance*m.cfg.MaxDistance {
		return match, false
	}
	m.stats.Matches++
	return match, true
}

// grow runs the expand/correct loop for one query with the given seed
// radius.
func (m *Matcher) grow(target []float64, r float64) (Match, bool) {
	cycles := 0
	corrected := false
	for {
		ext, fullyClipped := m.queryExtent(target, r)
		cycles++
		match, found := m.tree.SearchExtent(target, ext, m.cfg.Active)

		if !found {
			if fullyClipped {
				// The box already spans the whole domain; nothing
				// satisfies the constraints.
				return Match{Index: -1, Cycles: cycles}, false
			}
			m.stats.Expansions++
			next := r * m.cfg.Growth
			if next == r {
				// Growth of 1 (or a saturated radius) cannot widen the
				// box; settle the query with one full-domain pass.
				next = math.Inf(1)
			}
			r = next
			continue
		}

		if !corrected && !fullyClipped && match.SqDist > r*r {
			// The candidate lies outside the inscribed circle, so a
			// nearer point could sit past a box face. One pass with the
			// box circumscribing the candidate's circle settles it.
			corrected = true
			m.stats.Corrections++
			r = math.Sqrt(match.SqDist) * correctionSlack
			continue
		}

		match.Cycles = cycles
		return match, true
	}
}

// queryExtent builds the search box for radius r around target: active
// dimensions get [target-r, target+r) clipped to the domain bounds,
// inactive dimensions span their full domain. The second return reports
// whether every dimension was clipped on both sides, i.e. the box already
// covers the entire domain and growing r further cannot help.
func (m *Matcher) queryExtent(target []float64, r float64) (Extent, bool) {
	dims := m.pts.dims
	ext := Extent{
		Min: make([]float64, dims),
		Max: make([]float64, dims),
	}
	fullyClipped := true
	for d := 0; d < dims; d++ {
		lo, hi := m.cfg.bound(d)
		if m.cfg.Active != nil && !m.cfg.Active[d] {
			ext.Min[d], ext.Max[d] = lo, hi
			continue
		}
		qlo, qhi := target[d]-r, target[d]+r
		clippedLo, clippedHi := false, false
		if qlo <= lo {
			qlo, clippedLo = lo, true
		}
		if qhi >= hi {
			qhi, clippedHi = hi, true
		}
		if !clippedLo || !clippedHi {
			fullyClipped = false
		}
		ext.Min[d], ext.Max[d] = qlo, qhi
	}
	return ext, fullyClipped
}
