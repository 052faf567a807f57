package nearmatch

import (
	"math/rand"
	"testing"
)

// bruteNearest is the linear-scan oracle for SearchExtent: same extent
// filter, same partial squared distance, same highest-index tie-break.
func bruteNearest(pts *PointSet, target []float64, ext Extent, active []bool) (Match, bool) {
	best := Match{Index: -1}
	for i := 0; i < pts.Len(); i++ {
		if !ext.contains(pts, i) {
			continue
		}
		var sq float64
		for d := 0; d < pts.Dims(); d++ {
			if active != nil && !active[d] {
				continue
			}
			diff := target[d] - pts.Coord(i, d)
			sq += diff * diff
		}
		switch {
		case best.Ties == 0 || sq < best.SqDist:
			best = Match{Index: i, SqDist: sq, Ties: 1}
		case sq == best.SqDist:
			best.Ties++
			best.Index = i
		}
	}
	return best, best.Ties > 0
}

func TestSearchExtent_MatchesBruteForce(t *testing.T) {
	for _, dims := range []int{1, 2, 3, 4, 9} {
		rng := rand.New(rand.NewSource(int64(100 + dims)))
		pts := mustPointSet(t, randomColumns(300, dims, int64(dims)*7))
		tr := NewTree(pts, true)

		for trial := 0; trial < 200; trial++ {
			target := make([]float64, dims)
			ext := Extent{Min: make([]float64, dims), Max: make([]float64, dims)}
			for d := 0; d < dims; d++ {
				target[d] = rng.Float64() * 100
				a := rng.Float64() * 100
				b := a + rng.Float64()*60
				ext.Min[d], ext.Max[d] = a, b
			}

			got, gotOK := tr.SearchExtent(target, ext, nil)
			want, wantOK := bruteNearest(pts, target, ext, nil)

			if gotOK != wantOK {
				t.Fatalf("dims=%d trial=%d: found=%v, brute found=%v", dims, trial, gotOK, wantOK)
			}
			if !gotOK {
				continue
			}
			if got.Index != want.Index || got.SqDist != want.SqDist || got.Ties != want.Ties {
				t.Fatalf("dims=%d trial=%d: got (%d, %g, %d), want (%d, %g, %d)",
					dims, trial, got.Index, got.SqDist, got.Ties, want.Index, want.SqDist, want.Ties)
			}
		}
	}
}

func TestSearchExtent_MatchesBruteForceWithTies(t *testing.T) {
	// Integer grid coordinates force exact distance ties.
	rng := rand.New(rand.NewSource(7))
	dims := 2
	cols := make([][]float64, dims)
	for d := range cols {
		cols[d] = make([]float64, 400)
		for i := range cols[d] {
			cols[d][i] = float64(rng.Intn(10))
		}
	}
	pts := mustPointSet(t, cols)
	tr := NewTree(pts, true)

	for trial := 0; trial < 200; trial++ {
		target := []float64{float64(rng.Intn(10)), float64(rng.Intn(10))}
		ext := UnboundedExtent(dims)

		got, _ := tr.SearchExtent(target, ext, nil)
		want, _ := bruteNearest(pts, target, ext, nil)

		if got.Index != want.Index || got.SqDist != want.SqDist || got.Ties != want.Ties {
			t.Fatalf("trial=%d: got (%d, %g, %d), want (%d, %g, %d)",
				trial, got.Index, got.SqDist, got.Ties, want.Index, want.SqDist, want.Ties)
		}
	}
}

func TestSearchExtent_TieBreakHighestIndex(t *testing.T) {
	// Four corners of a square, target at the center: all tie.
	cols := [][]float64{
		{0, 10, 0, 10},
		{0, 0, 10, 10},
	}
	pts := mustPointSet(t, cols)
	tr := NewTree(pts, true)

	match, ok := tr.SearchExtent([]float64{5, 5}, UnboundedExtent(2), nil)
	if !ok {
		t.Fatal("no match found")
	}
	if match.Ties != 4 {
		t.Errorf("Ties = %d, want 4", match.Ties)
	}
	if match.Index != 3 {
		t.Errorf("Index = %d, want 3 (highest tied index)", match.Index)
	}
	if match.SqDist != 50 {
		t.Errorf("SqDist = %g, want 50", match.SqDist)
	}
}

func TestSearchExtent_EmptyExtent(t *testing.T) {
	pts := mustPointSet(t, randomColumns(50, 2, 1))
	tr := NewTree(pts, true)

	ext := Extent{Min: []float64{200, 200}, Max: []float64{300, 300}}
	match, ok := tr.SearchExtent([]float64{250, 250}, ext, nil)
	if ok {
		t.Fatalf("found match %+v in empty extent", match)
	}
	if match.Ties != 0 {
		t.Errorf("Ties = %d, want 0", match.Ties)
	}
}

func TestSearchExtent_UpperBoundExclusive(t *testing.T) {
	pts := mustPointSet(t, [][]float64{{1, 5}})
	tr := NewTree(pts, true)

	// Max = 5 excludes the point at 5; Min = 1 includes the point at 1.
	ext := Extent{Min: []float64{1}, Max: []float64{5}}
	match, ok := tr.SearchExtent([]float64{4.9}, ext, nil)
	if !ok {
		t.Fatal("no match found")
	}
	if match.Index != 0 {
		t.Errorf("Index = %d, want 0 (point at 5 is outside the half-open extent)", match.Index)
	}
}

func TestSearchExtent_InactiveDimensionFiltersButNoDistance(t *testing.T) {
	// Dimension 1 is extent-only: it gates admissibility but adds nothing
	// to the distance.
	cols := [][]float64{
		{0, 1, 50},
		{0, 100, 0},
	}
	pts := mustPointSet(t, cols)
	tr := NewTree(pts, true)
	active := []bool{true, false}

	// Full domain: point 1 is nearest on dimension 0 alone even though it
	// is far away on dimension 1.
	match, ok := tr.SearchExtent([]float64{2, 0}, UnboundedExtent(2), active)
	if !ok {
		t.Fatal("no match found")
	}
	if match.Index != 1 || match.SqDist != 1 {
		t.Errorf("got index %d SqDist %g, want index 1 SqDist 1", match.Index, match.SqDist)
	}

	// Restricting dimension 1 to [0, 50) excludes point 1 entirely.
	ext := UnboundedExtent(2)
	ext.Min[1], ext.Max[1] = 0, 50
	match, ok = tr.SearchExtent([]float64{2, 0}, ext, active)
	if !ok {
		t.Fatal("no match found")
	}
	if match.Index != 0 || match.SqDist != 4 {
		t.Errorf("got index %d SqDist %g, want index 0 SqDist 4", match.Index, match.SqDist)
	}
}

func TestSearchExtent_ActiveFlagsMatchBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	dims := 4
	pts := mustPointSet(t, randomColumns(250, dims, 13))
	tr := NewTree(pts, true)

	for trial := 0; trial < 100; trial++ {
		active := make([]bool, dims)
		anyActive := false
		for d := range active {
			active[d] = rng.Intn(2) == 0
			anyActive = anyActive || active[d]
		}
		if !anyActive {
			active[rng.Intn(dims)] = true
		}
		target := make([]float64, dims)
		for d := range target {
			target[d] = rng.Float64() * 100
		}

		got, gotOK := tr.SearchExtent(target, UnboundedExtent(dims), active)
		want, wantOK := bruteNearest(pts, target, UnboundedExtent(dims), active)
		if gotOK != wantOK || got != want {
			t.Fatalf("trial=%d active=%v: got (%+v, %v), want (%+v, %v)", trial, active, got, gotOK, want, wantOK)
		}
	}
}
