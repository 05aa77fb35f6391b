package poly

import (
	"github.com/tuneinsight/ballpoly/ball"
	"github.com/tuneinsight/ballpoly/utils"
)

const (
	// evalVecFastThreshold is the number of points from which EvalVec uses the subproduct tree.
	evalVecFastThreshold = 32

	// evalVecChunk is the number of points evaluated by a single task of EvalVecIteratedParallel.
	evalVecChunk = 8
)

// EvalVecIterated returns [a(x) for x in points], evaluating each point independently.
func (p *Poly) EvalVecIterated(points []*ball.Ball, prec uint) []*ball.Ball {
	checkPrec("EvalVecIterated", prec)
	out := make([]*ball.Ball, len(points))
	for i, x := range points {
		out[i] = eval(p.coeffs, x, prec)
	}
	return out
}

// EvalVecIteratedParallel is EvalVecIterated with the points split among workers goroutines.
// The result does not depend on the number of workers.
func (p *Poly) EvalVecIteratedParallel(points []*ball.Ball, workers int, prec uint) []*ball.Ball {
	checkPrec("EvalVecIteratedParallel", prec)
	checkWorkers("EvalVecIteratedParallel", workers)

	out := make([]*ball.Ball, len(points))
	bounds := utils.ChunkBounds(len(points), evalVecChunk)

	runParallel(len(bounds)-1, workers, func(i int) {
		for j := bounds[i]; j < bounds[i+1]; j++ {
			out[j] = eval(p.coeffs, points[j], prec)
		}
	})

	return out
}

// EvalVecFast returns [a(x) for x in points], reducing a along the subproduct tree of the points.
func (p *Poly) EvalVecFast(points []*ball.Ball, prec uint) []*ball.Ball {
	checkPrec("EvalVecFast", prec)

	out := make([]*ball.Ball, len(points))
	if len(points) == 0 {
		return out
	}

	t := newSubproductTree(points, prec)
	t.descend(t.reduce(p.coeffs, t.root, prec), t.root, out, prec)

	return out
}

// EvalVecFastParallel is EvalVecFast with the independent subtrees below the top
// levels of the subproduct tree evaluated by workers goroutines.
// The result does not depend on the number of workers.
func (p *Poly) EvalVecFastParallel(points []*ball.Ball, workers int, prec uint) []*ball.Ball {
	checkPrec("EvalVecFastParallel", prec)
	checkWorkers("EvalVecFastParallel", workers)

	out := make([]*ball.Ball, len(points))
	if len(points) == 0 {
		return out
	}

	t := newSubproductTree(points, prec)

	// depth at which there are at least as many subtrees as workers
	d := utils.CeilLog2(workers)

	nodes, rems := t.frontier(t.reduce(p.coeffs, t.root, prec), t.root, d, out, prec)

	runParallel(len(nodes), workers, func(i int) {
		t.descend(rems[i], nodes[i], out, prec)
	})

	return out
}

// EvalVec returns [a(x) for x in points].
func (p *Poly) EvalVec(points []*ball.Ball, prec uint) []*ball.Ball {
	if len(points) < evalVecFastThreshold || len(p.coeffs) < evalVecFastThreshold {
		return p.EvalVecIterated(points, prec)
	}
	return p.EvalVecFast(points, prec)
}
