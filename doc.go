// Package nearmatch implements spatial nearest-match lookups for survey-style
// record tables: given a set of points stored as parallel coordinate columns,
// it finds the record nearest to a query target under a partial Euclidean
// distance, restricted to an axis-aligned coordinate domain.
//
// The index is a rotating-axis binary tree built in a deterministic
// spread-out insertion order, and queries run through an adaptive radius
// driver that starts from a small search box and grows it geometrically
// until a candidate appears, then performs one corrective expansion so the
// returned point is the true nearest under Euclidean distance.
//
// Basic usage:
//
//	cfg := nearmatch.DefaultConfig()
//	cfg.Radius = 50 // initial search half-width, in coordinate units
//	m, err := nearmatch.NewMatcher([][]float64{xs, ys}, cfg)
//	match, ok := m.Nearest([]float64{x, y})
//	// ok == false means no record satisfies the domain constraints
//	// match.Index indexes the caller's parallel payload arrays
//	// match.SqDist is the squared (partial) Euclidean distance
//
// # Partial distances
//
// Config.Active marks which dimensions contribute to the distance sum.
// An inactive dimension still restricts which points are admissible (it is
// checked against the search extent) but adds nothing to the distance,
// enabling "nearest in X/Y within this line range" style queries.
//
// The package also provides an ordered unique-key table for exact
// composite-key aggregation (see [Table]) and a sample stacker built on it
// (see [Stacker]) for accumulating records that share a key combination.
package nearmatch
