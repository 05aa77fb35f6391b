package poly

import (
	"fmt"

	"github.com/tuneinsight/ballpoly/ball"
)

const (
	// interpolateNewtonThreshold is the number of points up to which Interpolate uses divided differences.
	interpolateNewtonThreshold = 8

	// interpolateBarycentricThreshold is the number of points up to which Interpolate uses barycentric weights.
	interpolateBarycentricThreshold = 64
)

// InterpolateNewton sets p to the polynomial of degree < len(xs) such that p(xs[i]) = ys[i],
// computed with Newton's divided differences.
// It returns ErrNotInvertible if two nodes cannot be proven distinct.
func (p *Poly) InterpolateNewton(xs, ys []*ball.Ball, prec uint) (err error) {
	checkNodes("InterpolateNewton", xs, ys)
	checkPrec("InterpolateNewton", prec)
	res, err := interpolateNewton(xs, ys, prec)
	if err != nil {
		return fmt.Errorf("cannot InterpolateNewton: %w", err)
	}
	p.install(res)
	return
}

// InterpolateBarycentric sets p to the polynomial of degree < len(xs) such that p(xs[i]) = ys[i],
// computed as sum_i ys[i]/w_i prod_{j != i} (x - xs[j]) with the barycentric weights w_i = P'(xs[i])
// of P = prod (x - xs[j]).
// It returns ErrNotInvertible if two nodes cannot be proven distinct.
func (p *Poly) InterpolateBarycentric(xs, ys []*ball.Ball, prec uint) (err error) {
	checkNodes("InterpolateBarycentric", xs, ys)
	checkPrec("InterpolateBarycentric", prec)
	res, err := interpolateBarycentric(xs, ys, prec)
	if err != nil {
		return fmt.Errorf("cannot InterpolateBarycentric: %w", err)
	}
	p.install(res)
	return
}

// InterpolateFast sets p to the polynomial of degree < len(xs) such that p(xs[i]) = ys[i],
// evaluating the barycentric weights and combining the Lagrange terms along the
// subproduct tree of the nodes.
// It returns ErrNotInvertible if two nodes cannot be proven distinct.
func (p *Poly) InterpolateFast(xs, ys []*ball.Ball, prec uint) (err error) {
	checkNodes("InterpolateFast", xs, ys)
	checkPrec("InterpolateFast", prec)
	res, err := interpolateFast(xs, ys, prec)
	if err != nil {
		return fmt.Errorf("cannot InterpolateFast: %w", err)
	}
	p.install(res)
	return
}

// Interpolate sets p to the polynomial of degree < len(xs) such that p(xs[i]) = ys[i].
// It returns ErrNotInvertible if two nodes cannot be proven distinct.
func (p *Poly) Interpolate(xs, ys []*ball.Ball, prec uint) (err error) {
	switch {
	case len(xs) <= interpolateNewtonThreshold:
		return p.InterpolateNewton(xs, ys, prec)
	case len(xs) <= interpolateBarycentricThreshold:
		return p.InterpolateBarycentric(xs, ys, prec)
	default:
		return p.InterpolateFast(xs, ys, prec)
	}
}

func interpolateNewton(xs, ys []*ball.Ball, prec uint) ([]*ball.Ball, error) {

	n := len(xs)
	if n == 0 {
		return nil, nil
	}

	d := cloneBalls(ys)
	den := ball.New()
	for j := 1; j < n; j++ {
		for i := n - 1; i >= j; i-- {
			den.Sub(xs[i], xs[i-j], prec)
			if !den.IsNonZero() {
				return nil, ErrNotInvertible
			}
			d[i].Sub(d[i], d[i-1], prec)
			d[i].Div(d[i], den, prec)
		}
	}

	// d[n-1] + (x - xs[n-2])(...), from the innermost term
	res := []*ball.Ball{d[n-1]}
	for i := n - 2; i >= 0; i-- {
		res = mulLinear(res, xs[i], prec)
		res[0].Add(res[0], d[i], prec)
	}

	return res, nil
}

// mulLinear returns a * (x - c).
func mulLinear(a []*ball.Ball, c *ball.Ball, prec uint) []*ball.Ball {
	res := make([]*ball.Ball, len(a)+1)
	res[len(a)] = a[len(a)-1].Clone()
	t := ball.New()
	for i := len(a) - 1; i > 0; i-- {
		res[i] = ball.New().Sub(a[i-1], t.Mul(c, a[i], prec), prec)
	}
	res[0] = ball.New().Mul(c, a[0], prec)
	res[0].Neg(res[0])
	return res
}

func interpolateBarycentric(xs, ys []*ball.Ball, prec uint) ([]*ball.Ball, error) {

	n := len(xs)
	if n == 0 {
		return nil, nil
	}

	P := fromRoots(xs, prec)

	res := zeros(n)
	for i := range xs {

		// P/(x - xs[i]) and its value at xs[i], which is P'(xs[i])
		q, _ := divLinear(P, xs[i], prec)
		w := evalHorner(q, xs[i], prec)
		if !w.IsNonZero() {
			return nil, ErrNotInvertible
		}

		c := ball.New().Div(ys[i], w, prec)
		for j := range q {
			res[j].Add(res[j], ball.New().Mul(q[j], c, prec), prec)
		}
	}

	return res, nil
}

func interpolateFast(xs, ys []*ball.Ball, prec uint) ([]*ball.Ball, error) {

	n := len(xs)
	if n == 0 {
		return nil, nil
	}

	t := newSubproductTree(xs, prec)

	w := make([]*ball.Ball, n)
	dP := derivative(t.rootPoly(), prec)
	t.descend(t.reduce(dP, t.root, prec), t.root, w, prec)

	c := make([]*ball.Ball, n)
	for i := range w {
		if !w[i].IsNonZero() {
			return nil, ErrNotInvertible
		}
		c[i] = ball.New().Div(ys[i], w[i], prec)
	}

	return t.ascend(c, t.root, prec), nil
}

func checkNodes(op string, xs, ys []*ball.Ball) {
	if len(xs) != len(ys) {
		panic(fmt.Errorf("cannot %s: len(xs)=%d != len(ys)=%d", op, len(xs), len(ys)))
	}
}
