package poly

import (
	"fmt"

	"github.com/tuneinsight/ballpoly/ball"
	"github.com/tuneinsight/ballpoly/utils"
)

// ErfSeries sets p to erf(h) mod x^n, computed as erf(h(0)) + 2/sqrt(pi) int exp(-h^2) h'.
// It returns ErrDomain if erf(h(0)) cannot be bounded, which happens for |h(0)| > 64.
func (p *Poly) ErfSeries(h *Poly, n int, prec uint) (err error) {
	checkLen("ErfSeries", n)
	checkPrec("ErfSeries", prec)
	res, err := erfSeries(h.coeffs, n, prec)
	if err != nil {
		return fmt.Errorf("cannot ErfSeries: %w", err)
	}
	p.install(res)
	return
}

func erfSeries(h []*ball.Ball, n int, prec uint) ([]*ball.Ball, error) {

	if n == 0 {
		return nil, nil
	}

	h0 := ball.New()
	if len(h) > 0 {
		h0 = h[0]
	}

	e0 := ball.New().Erf(h0, prec)
	if !e0.IsFinite() {
		return nil, fmt.Errorf("erf of the constant term %s: %w", h0.Format(8), ErrDomain)
	}

	if n == 1 || len(h) < 2 {
		return []*ball.Ball{e0}, nil
	}

	h = h[:utils.Min(n, len(h))]

	// exp(-h^2) h'
	g := mulLow(h, h, n-1, prec)
	for i := range g {
		g[i].Neg(g[i])
	}
	g = mulLow(expSeries(g, n-1, prec), derivative(h, prec), n-1, prec)

	c := ball.New().Rsqrt(ball.Pi(prec), prec)
	c.Mul2Exp(c, 1)

	res := integral(scalarMulVec(g, c, prec), prec)
	res[0] = e0

	return res, nil
}
