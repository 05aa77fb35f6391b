package poly

import (
	"fmt"

	"github.com/tuneinsight/ballpoly/ball"
	"github.com/tuneinsight/ballpoly/utils"
)

// invSeriesThreshold is the length under which the power series inverse
// is computed by the classical recurrence.
const invSeriesThreshold = 24

// InvSeries sets p to 1/a mod x^n.
// It returns ErrNotInvertible if the constant term of a may be zero.
func (p *Poly) InvSeries(a *Poly, n int, prec uint) (err error) {
	checkLen("InvSeries", n)
	checkPrec("InvSeries", prec)
	res, err := invSeries(a.coeffs, n, prec)
	if err != nil {
		return fmt.Errorf("cannot InvSeries: %w", err)
	}
	p.install(res)
	return
}

// DivSeries sets p to a/b mod x^n.
// It returns ErrNotInvertible if the constant term of b may be zero.
func (p *Poly) DivSeries(a, b *Poly, n int, prec uint) (err error) {
	checkLen("DivSeries", n)
	checkPrec("DivSeries", prec)
	inv, err := invSeries(b.coeffs, n, prec)
	if err != nil {
		return fmt.Errorf("cannot DivSeries: %w", err)
	}
	p.install(mulLow(a.coeffs, inv, n, prec))
	return
}

// invSeries returns 1/a mod x^n.
func invSeries(a []*ball.Ball, n int, prec uint) ([]*ball.Ball, error) {

	if len(a) == 0 || !a[0].IsNonZero() {
		return nil, ErrNotInvertible
	}

	if n == 0 {
		return nil, nil
	}

	if n <= invSeriesThreshold {
		return invSeriesBasecase(a, n, prec), nil
	}

	m := (n + 1) / 2
	b, err := invSeries(a, m, prec)
	if err != nil {
		return nil, err
	}

	// b <- b - b*(a*b - 1), where the first m coefficients of a*b - 1 are zero
	e := mulLow(a, b, n, prec)
	if len(e) <= m {
		return b, nil
	}
	e = e[m:]

	d := mulLow(b, e, n-m, prec)

	res := make([]*ball.Ball, n)
	for i := range res {
		switch {
		case i < m && i < len(b):
			res[i] = b[i]
		case i < m:
			res[i] = ball.New()
		case i-m < len(d):
			res[i] = ball.New().Neg(d[i-m])
		default:
			res[i] = ball.New()
		}
	}

	return trimVec(res), nil
}

// invSeriesBasecase returns 1/a mod x^n by the recurrence b_k = -(1/a_0) sum_{j=1}^{k} a_j b_{k-j}.
func invSeriesBasecase(a []*ball.Ball, n int, prec uint) []*ball.Ball {

	b := make([]*ball.Ball, n)
	b[0] = ball.New().Inv(a[0], prec)

	t := ball.New()
	for k := 1; k < n; k++ {
		s := ball.New()
		for j := 1; j <= utils.Min(k, len(a)-1); j++ {
			s.Add(s, t.Mul(a[j], b[k-j], prec), prec)
		}
		b[k] = s.Mul(s, b[0], prec).Neg(s)
	}

	return trimVec(b)
}
