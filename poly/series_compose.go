package poly

import (
	"github.com/tuneinsight/ballpoly/ball"
	"github.com/tuneinsight/ballpoly/utils"
)

// composeSeriesBrentKungThreshold is the length from which ComposeSeries uses
// the Brent-Kung baby-step giant-step algorithm.
const composeSeriesBrentKungThreshold = 12

// ComposeSeriesHorner sets p to g(f(x)) mod x^n using Horner's scheme with truncated products.
func (p *Poly) ComposeSeriesHorner(g, f *Poly, n int, prec uint) *Poly {
	checkLen("ComposeSeriesHorner", n)
	checkPrec("ComposeSeriesHorner", prec)
	g0, f0 := centerSeries(g.coeffs, f.coeffs, n, prec)
	return p.install(composeSeriesHorner(g0, f0, n, prec))
}

// ComposeSeriesBrentKung sets p to g(f(x)) mod x^n with the Brent-Kung algorithm:
// the powers f, ..., f^m with m ~ sqrt(len(g)) are computed once, g is split into blocks
// of m coefficients evaluated as linear combinations of these powers, and the blocks are
// recombined by Horner's scheme in f^m.
func (p *Poly) ComposeSeriesBrentKung(g, f *Poly, n int, prec uint) *Poly {
	checkLen("ComposeSeriesBrentKung", n)
	checkPrec("ComposeSeriesBrentKung", prec)
	g0, f0 := centerSeries(g.coeffs, f.coeffs, n, prec)
	return p.install(composeSeriesBrentKung(g0, f0, n, prec))
}

// ComposeSeries sets p to g(f(x)) mod x^n.
// If the constant term c of f is not the exact zero, g is first shifted to g(x + c).
func (p *Poly) ComposeSeries(g, f *Poly, n int, prec uint) *Poly {
	checkLen("ComposeSeries", n)
	checkPrec("ComposeSeries", prec)
	return p.install(composeSeries(g.coeffs, f.coeffs, n, prec))
}

func composeSeries(g, f []*ball.Ball, n int, prec uint) []*ball.Ball {
	g, f = centerSeries(g, f, n, prec)
	if utils.Min(len(g), n) < composeSeriesBrentKungThreshold {
		return composeSeriesHorner(g, f, n, prec)
	}
	return composeSeriesBrentKung(g, f, n, prec)
}

// centerSeries returns g(x + f(0)) and f - f(0), both truncated to n terms.
func centerSeries(g, f []*ball.Ball, n int, prec uint) ([]*ball.Ball, []*ball.Ball) {

	if len(f) > 0 && !f[0].IsExactZero() {
		g = taylorShift(g, f[0], prec)
		f = append([]*ball.Ball{ball.New()}, f[1:]...)
	}

	return trimVec(g[:utils.Min(n, len(g))]), trimVec(f[:utils.Min(n, len(f))])
}

// composeSeriesHorner returns g(f) mod x^n for f(0) = 0.
func composeSeriesHorner(g, f []*ball.Ball, n int, prec uint) []*ball.Ball {

	if len(g) == 0 || n == 0 {
		return nil
	}

	if len(f) == 0 {
		return []*ball.Ball{g[0].Clone()}
	}

	res := []*ball.Ball{g[len(g)-1].Clone()}
	for i := len(g) - 2; i >= 0; i-- {
		res = mulLow(res, f, n, prec)
		if len(res) == 0 {
			res = []*ball.Ball{ball.New()}
		}
		res[0].Add(res[0], g[i], prec)
	}

	return res
}

// composeSeriesBrentKung returns g(f) mod x^n for f(0) = 0.
func composeSeriesBrentKung(g, f []*ball.Ball, n int, prec uint) []*ball.Ball {

	if len(g) == 0 || n == 0 {
		return nil
	}

	if len(f) == 0 {
		return []*ball.Ball{g[0].Clone()}
	}

	m := utils.CeilSqrt(len(g))

	// pows[i] = f^i mod x^n
	pows := make([][]*ball.Ball, m+1)
	pows[0] = []*ball.Ball{ball.NewInt64(1)}
	pows[1] = f
	for i := 2; i <= m; i++ {
		pows[i] = mulLow(pows[i-1], f, n, prec)
	}

	blocks := (len(g) + m - 1) / m

	var res []*ball.Ball
	for j := blocks - 1; j >= 0; j-- {

		block := zeros(n)
		for i := 0; i < m && j*m+i < len(g); i++ {
			for k, c := range pows[i] {
				block[k].Add(block[k], ball.New().Mul(g[j*m+i], c, prec), prec)
			}
		}

		if res != nil {
			res = mulLow(res, pows[m], n, prec)
			addInto(block, 0, res, prec)
		}

		res = block
	}

	return trimVec(res)
}
