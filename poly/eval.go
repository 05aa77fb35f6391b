package poly

import (
	"github.com/tuneinsight/ballpoly/ball"
	"github.com/tuneinsight/ballpoly/utils"
)

// evalRectangularThreshold is the length from which Eval uses rectangular splitting.
const evalRectangularThreshold = 64

// EvalHorner returns a(x) using Horner's scheme.
func (p *Poly) EvalHorner(x *ball.Ball, prec uint) *ball.Ball {
	checkPrec("EvalHorner", prec)
	return evalHorner(p.coeffs, x, prec)
}

// EvalRectangular returns a(x) using rectangular splitting: the powers x, ..., x^m
// with m ~ sqrt(n) are computed once, the blocks of m coefficients are evaluated as
// dot products with these powers and recombined by Horner's scheme in x^m.
func (p *Poly) EvalRectangular(x *ball.Ball, prec uint) *ball.Ball {
	checkPrec("EvalRectangular", prec)
	return evalRectangular(p.coeffs, x, prec)
}

// Eval returns a(x).
func (p *Poly) Eval(x *ball.Ball, prec uint) *ball.Ball {
	checkPrec("Eval", prec)
	return eval(p.coeffs, x, prec)
}

// Eval2Horner returns a(x) and a'(x) using Horner's scheme.
func (p *Poly) Eval2Horner(x *ball.Ball, prec uint) (y, dy *ball.Ball) {
	checkPrec("Eval2Horner", prec)
	return eval2Horner(p.coeffs, x, prec)
}

// Eval2 returns a(x) and a'(x).
func (p *Poly) Eval2(x *ball.Ball, prec uint) (y, dy *ball.Ball) {
	checkPrec("Eval2", prec)
	if len(p.coeffs) < evalRectangularThreshold {
		return eval2Horner(p.coeffs, x, prec)
	}
	return evalRectangular(p.coeffs, x, prec), evalRectangular(derivative(p.coeffs, prec), x, prec)
}

func eval(a []*ball.Ball, x *ball.Ball, prec uint) *ball.Ball {
	if len(a) < evalRectangularThreshold {
		return evalHorner(a, x, prec)
	}
	return evalRectangular(a, x, prec)
}

func evalHorner(a []*ball.Ball, x *ball.Ball, prec uint) *ball.Ball {

	if len(a) == 0 {
		return ball.New()
	}

	y := a[len(a)-1].Clone()
	for i := len(a) - 2; i >= 0; i-- {
		y.Mul(y, x, prec)
		y.Add(y, a[i], prec)
	}

	return y
}

func evalRectangular(a []*ball.Ball, x *ball.Ball, prec uint) *ball.Ball {

	n := len(a)

	if n < 3 {
		return evalHorner(a, x, prec)
	}

	m := utils.CeilSqrt(n)

	// xs[i] = x^i for i <= m
	xs := make([]*ball.Ball, m+1)
	xs[0] = ball.NewInt64(1)
	xs[1] = x.Clone()
	for i := 2; i <= m; i++ {
		if i&1 == 0 {
			xs[i] = ball.New().Sqr(xs[i/2], prec)
		} else {
			xs[i] = ball.New().Mul(xs[i-1], x, prec)
		}
	}

	blocks := (n + m - 1) / m

	y := ball.New()
	t := ball.New()
	for j := blocks - 1; j >= 0; j-- {
		s := a[j*m].Clone()
		for i := 1; i < m && j*m+i < n; i++ {
			s.Add(s, t.Mul(a[j*m+i], xs[i], prec), prec)
		}
		y.Mul(y, xs[m], prec)
		y.Add(y, s, prec)
	}

	return y
}

func eval2Horner(a []*ball.Ball, x *ball.Ball, prec uint) (y, dy *ball.Ball) {

	if len(a) == 0 {
		return ball.New(), ball.New()
	}

	y = a[len(a)-1].Clone()
	dy = ball.New()
	for i := len(a) - 2; i >= 0; i-- {
		dy.Mul(dy, x, prec)
		dy.Add(dy, y, prec)
		y.Mul(y, x, prec)
		y.Add(y, a[i], prec)
	}

	return
}
