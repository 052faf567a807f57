package nearmatch

// Tree is a rotating-axis binary search tree over the indices of a PointSet.
// Depth k splits on dimension k mod dims. For a node splitting on axis a,
// every point in its left subtree has coord[a] strictly less than the node's
// coord[a]; ties land on either side depending on insertion order, so this
// is an insertion-order BST, not a median-split k-d tree.
//
// Links are stored as parallel slices indexed by point: left[i] and right[i]
// are the child point indices of the node holding point i, or -1 when absent.
// After Build the tree is read-only; queries share it safely.
type Tree struct {
	pts   *PointSet
	root  int
	left  []int
	right []int
}

// hopShrink is the stride reduction ratio between hop-order passes.
const hopShrink = 0.6

// NewTree builds a tree over all points of pts.
//
// When randomize is true, points are linked in a deterministic "hop" order
// that visits spread-out indices first (see HopOrder). Survey data is often
// stored sorted by acquisition sequence, which makes sequential insertion
// degenerate into a linked list; the hop order keeps the tree shallow on
// such inputs. When randomize is false, points are linked in storage order.
func NewTree(pts *PointSet, randomize bool) *Tree {
	n := pts.Len()
	t := &Tree{
		pts:   pts,
		root:  -1,
		left:  make([]int, n),
		right: make([]int, n),
	}
	for i := 0; i < n; i++ {
		t.left[i] = -1
		t.right[i] = -1
	}

	if randomize {
		for _, i := range HopOrder(n) {
			t.link(i)
		}
	} else {
		for i := 0; i < n; i++ {
			t.link(i)
		}
	}
	return t
}

// HopOrder returns a deterministic permutation of 0..n-1 that samples
// spread-out indices first and local indices last. Each pass emits the
// not-yet-visited indices at stride/2, stride/2+stride, ... then shrinks the
// stride by a fixed ratio; the final pass has stride 1 and sweeps up the
// remainder in storage order.
func HopOrder(n int) []int {
	order := make([]int, 0, n)
	visited := make([]bool, n)

	stride := float64(n)
	for len(order) < n {
		if stride < 1 {
			stride = 1
		}
		for pos := stride / 2; pos < float64(n); pos += stride {
			i := int(pos)
			if !visited[i] {
				visited[i] = true
				order = append(order, i)
			}
		}
		stride *= hopShrink
	}
	return order
}

// link descends from the root and attaches point p at the first free slot,
// advancing the split axis at every level.
func (t *Tree) link(p int) {
	if t.root < 0 {
		t.root = p
		return
	}
	cur := t.root
	axis := 0
	for {
		var child *int
		if t.pts.cols[axis][p] < t.pts.cols[axis][cur] {
			child = &t.left[cur]
		} else {
			child = &t.right[cur]
		}
		if *child < 0 {
			*child = p
			return
		}
		cur = *child
		axis++
		if axis == t.pts.dims {
			axis = 0
		}
	}
}

// Points returns the PointSet the tree indexes.
func (t *Tree) Points() *PointSet { return t.pts }
