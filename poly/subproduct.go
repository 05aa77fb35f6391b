package poly

import (
	"github.com/tuneinsight/ballpoly/ball"
)

// FromRoots sets p to the monic polynomial prod (x - roots[i]).
func (p *Poly) FromRoots(roots []*ball.Ball, prec uint) *Poly {
	checkPrec("FromRoots", prec)
	return p.install(fromRoots(roots, prec))
}

func fromRoots(roots []*ball.Ball, prec uint) []*ball.Ball {
	switch len(roots) {
	case 0:
		return []*ball.Ball{ball.NewInt64(1)}
	case 1:
		return []*ball.Ball{ball.New().Neg(roots[0]), ball.NewInt64(1)}
	}
	m := len(roots) / 2
	return mul(fromRoots(roots[:m], prec), fromRoots(roots[m:], prec), prec)
}

// treeNode is a node of a subproduct tree. It covers the points [lo, hi)
// and holds the monic polynomial prod_{lo <= i < hi} (x - points[i]).
type treeNode struct {
	left, right int
	lo, hi      int
	poly        []*ball.Ball
}

func (n *treeNode) isLeaf() bool {
	return n.left < 0
}

// subproductTree is a binary tree over a set of points, stored as an arena of
// nodes referencing their children by index. It is built for a single
// evaluation or interpolation and read only afterward.
type subproductTree struct {
	points []*ball.Ball
	nodes  []treeNode
	root   int
}

func newSubproductTree(points []*ball.Ball, prec uint) (t *subproductTree) {
	t = &subproductTree{points: points, nodes: make([]treeNode, 0, 2*len(points))}
	if len(points) > 0 {
		t.root = t.build(0, len(points), prec)
	}
	return
}

func (t *subproductTree) build(lo, hi int, prec uint) int {

	if hi-lo == 1 {
		t.nodes = append(t.nodes, treeNode{
			left:  -1,
			right: -1,
			lo:    lo,
			hi:    hi,
			poly:  []*ball.Ball{ball.New().Neg(t.points[lo]), ball.NewInt64(1)},
		})
		return len(t.nodes) - 1
	}

	mid := (lo + hi) / 2
	left := t.build(lo, mid, prec)
	right := t.build(mid, hi, prec)

	t.nodes = append(t.nodes, treeNode{
		left:  left,
		right: right,
		lo:    lo,
		hi:    hi,
		poly:  mul(t.nodes[left].poly, t.nodes[right].poly, prec),
	})

	return len(t.nodes) - 1
}

// rootPoly returns prod (x - points[i]).
func (t *subproductTree) rootPoly() []*ball.Ball {
	if len(t.points) == 0 {
		return []*ball.Ball{ball.NewInt64(1)}
	}
	return t.nodes[t.root].poly
}

// reduce returns a mod the polynomial of the node idx, which is monic.
func (t *subproductTree) reduce(a []*ball.Ball, idx int, prec uint) []*ball.Ball {
	m := t.nodes[idx].poly
	if len(a) < len(m) {
		return a
	}
	_, r, err := divRem(a, m, prec)
	if err != nil {
		// the node polynomials have an exact unit leading coefficient
		panic(err)
	}
	return r
}

// descend evaluates a, already reduced modulo the polynomial of node idx,
// at the points covered by the node and writes the values to out.
func (t *subproductTree) descend(a []*ball.Ball, idx int, out []*ball.Ball, prec uint) {

	node := &t.nodes[idx]

	if node.isLeaf() {
		out[node.lo] = evalHorner(a, t.points[node.lo], prec)
		return
	}

	t.descend(t.reduce(a, node.left, prec), node.left, out, prec)
	t.descend(t.reduce(a, node.right, prec), node.right, out, prec)
}

// frontier reduces a along the tree down to depth d and returns the nodes
// reached with their remainders. Leaves above depth d are evaluated directly into out.
func (t *subproductTree) frontier(a []*ball.Ball, idx, d int, out []*ball.Ball, prec uint) (nodes []int, rems [][]*ball.Ball) {

	node := &t.nodes[idx]

	if node.isLeaf() {
		out[node.lo] = evalHorner(a, t.points[node.lo], prec)
		return
	}

	if d == 0 {
		return []int{idx}, [][]*ball.Ball{a}
	}

	ln, lr := t.frontier(t.reduce(a, node.left, prec), node.left, d-1, out, prec)
	rn, rr := t.frontier(t.reduce(a, node.right, prec), node.right, d-1, out, prec)

	return append(ln, rn...), append(lr, rr...)
}

// ascend returns sum_{lo <= i < hi} c[i] prod_{j != i} (x - points[j]) over the points covered by node idx.
func (t *subproductTree) ascend(c []*ball.Ball, idx int, prec uint) []*ball.Ball {

	node := &t.nodes[idx]

	if node.isLeaf() {
		return []*ball.Ball{c[node.lo].Clone()}
	}

	l := t.ascend(c, node.left, prec)
	r := t.ascend(c, node.right, prec)

	return addVec(mul(l, t.nodes[node.right].poly, prec), mul(r, t.nodes[node.left].poly, prec), prec)
}
