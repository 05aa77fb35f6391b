package poly

import (
	"fmt"

	"github.com/tuneinsight/ballpoly/ball"
	"github.com/tuneinsight/ballpoly/utils"
)

const (
	// revertSeriesLagrangeThreshold is the length up to which RevertSeries uses Lagrange inversion.
	revertSeriesLagrangeThreshold = 16

	// revertSeriesLagrangeFastThreshold is the length up to which RevertSeries uses the
	// baby-step giant-step Lagrange inversion.
	revertSeriesLagrangeFastThreshold = 64
)

// RevertSeriesLagrange sets p to the compositional inverse of f mod x^n, computed with the
// Lagrange inversion formula [x^k] h = [x^(k-1)] (x/f)^k / k.
// f must have an exact zero constant term (ErrDomain) and an invertible linear term (ErrNotInvertible).
func (p *Poly) RevertSeriesLagrange(f *Poly, n int, prec uint) (err error) {
	checkLen("RevertSeriesLagrange", n)
	checkPrec("RevertSeriesLagrange", prec)
	return p.revertSeries("RevertSeriesLagrange", revertSeriesLagrange, f, n, prec)
}

// RevertSeriesLagrangeFast is RevertSeriesLagrange with the powers of x/f obtained by
// baby steps and giant steps, each coefficient being a single dot product.
func (p *Poly) RevertSeriesLagrangeFast(f *Poly, n int, prec uint) (err error) {
	checkLen("RevertSeriesLagrangeFast", n)
	checkPrec("RevertSeriesLagrangeFast", prec)
	return p.revertSeries("RevertSeriesLagrangeFast", revertSeriesLagrangeFast, f, n, prec)
}

// RevertSeriesNewton sets p to the compositional inverse of f mod x^n, computed with the
// Newton iteration h <- h - (f(h) - x)/f'(h), doubling the number of correct terms each step.
func (p *Poly) RevertSeriesNewton(f *Poly, n int, prec uint) (err error) {
	checkLen("RevertSeriesNewton", n)
	checkPrec("RevertSeriesNewton", prec)
	return p.revertSeries("RevertSeriesNewton", revertSeriesNewton, f, n, prec)
}

// RevertSeries sets p to the compositional inverse h of f mod x^n, such that f(h(x)) = h(f(x)) = x.
func (p *Poly) RevertSeries(f *Poly, n int, prec uint) (err error) {
	checkLen("RevertSeries", n)
	checkPrec("RevertSeries", prec)
	return p.revertSeries("RevertSeries", revertSeries, f, n, prec)
}

func (p *Poly) revertSeries(op string, method func(f []*ball.Ball, n int, prec uint) ([]*ball.Ball, error), f *Poly, n int, prec uint) (err error) {

	if err = checkRevertible(f.coeffs); err != nil {
		return fmt.Errorf("cannot %s: %w", op, err)
	}

	res, err := method(f.coeffs, n, prec)
	if err != nil {
		return fmt.Errorf("cannot %s: %w", op, err)
	}

	p.install(res)
	return
}

func checkRevertible(f []*ball.Ball) error {
	if len(f) > 0 && !f[0].IsExactZero() {
		return fmt.Errorf("constant term is not zero: %w", ErrDomain)
	}
	if len(f) < 2 || !f[1].IsNonZero() {
		return ErrNotInvertible
	}
	return nil
}

func revertSeries(f []*ball.Ball, n int, prec uint) ([]*ball.Ball, error) {
	switch {
	case n <= revertSeriesLagrangeThreshold:
		return revertSeriesLagrange(f, n, prec)
	case n <= revertSeriesLagrangeFastThreshold:
		return revertSeriesLagrangeFast(f, n, prec)
	default:
		return revertSeriesNewton(f, n, prec)
	}
}

// lagrangeKernel returns x/f mod x^(n-1).
func lagrangeKernel(f []*ball.Ball, n int, prec uint) ([]*ball.Ball, error) {
	return invSeries(f[1:], n-1, prec)
}

func revertSeriesLagrange(f []*ball.Ball, n int, prec uint) ([]*ball.Ball, error) {

	if n < 2 {
		return nil, nil
	}

	g, err := lagrangeKernel(f, n, prec)
	if err != nil {
		return nil, err
	}

	res := make([]*ball.Ball, n)
	res[0] = ball.New()

	// pow = g^k mod x^(n-1)
	pow := g
	for k := 1; k < n; k++ {
		if k > 1 {
			pow = mulLow(pow, g, n-1, prec)
		}
		res[k] = ball.New()
		if k-1 < len(pow) {
			res[k].DivInt64(pow[k-1], int64(k), prec)
		}
	}

	return trimVec(res), nil
}

func revertSeriesLagrangeFast(f []*ball.Ball, n int, prec uint) ([]*ball.Ball, error) {

	if n < 2 {
		return nil, nil
	}

	g, err := lagrangeKernel(f, n, prec)
	if err != nil {
		return nil, err
	}

	m := utils.CeilSqrt(n - 1)

	// baby[i] = g^i mod x^(n-1) for 1 <= i <= m
	baby := make([][]*ball.Ball, m+1)
	baby[1] = g
	for i := 2; i <= m; i++ {
		baby[i] = mulLow(baby[i-1], g, n-1, prec)
	}

	res := make([]*ball.Ball, n)
	res[0] = ball.New()
	for k := 1; k < n; k++ {
		res[k] = ball.New()
	}

	// giant = g^(jm) mod x^(n-1)
	giant := []*ball.Ball{ball.NewInt64(1)}
	t := ball.New()
	for j := 0; j*m+1 < n; j++ {

		if j > 0 {
			giant = mulLow(giant, baby[m], n-1, prec)
		}

		for i := 1; i <= m && j*m+i < n; i++ {

			// [x^(k-1)] g^(jm) g^i
			k := j*m + i
			s := ball.New()
			for l := 0; l < len(giant) && l <= k-1; l++ {
				if r := k - 1 - l; r < len(baby[i]) {
					s.Add(s, t.Mul(giant[l], baby[i][r], prec), prec)
				}
			}

			res[k].DivInt64(s, int64(k), prec)
		}
	}

	return trimVec(res), nil
}

func revertSeriesNewton(f []*ball.Ball, n int, prec uint) ([]*ball.Ball, error) {

	if n < 2 {
		return nil, nil
	}

	// h = x/f_1 mod x^2
	h := []*ball.Ball{ball.New(), ball.New().Inv(f[1], prec)}

	df := derivative(f, prec)

	for m := 2; m < n; {

		mm := utils.Min(2*m, n)

		// h <- h - (f(h) - x)/f'(h), where the first m coefficients of f(h) - x are zero
		fh := composeSeries(f, h, mm, prec)
		if len(fh) <= m {
			m = mm
			continue
		}

		dfh := composeSeries(df, h, mm-m, prec)
		inv, err := invSeries(dfh, mm-m, prec)
		if err != nil {
			return nil, err
		}

		d := mulLow(fh[m:], inv, mm-m, prec)

		res := make([]*ball.Ball, mm)
		for i := range res {
			switch {
			case i < len(h):
				res[i] = h[i]
			case i < m:
				res[i] = ball.New()
			case i-m < len(d):
				res[i] = ball.New().Neg(d[i-m])
			default:
				res[i] = ball.New()
			}
		}

		h, m = res, mm
	}

	return trimVec(h), nil
}
