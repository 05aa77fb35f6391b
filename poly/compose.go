package poly

import (
	"github.com/tuneinsight/ballpoly/ball"
)

// Compose sets p to g(f(x)), by Horner's scheme on full products.
func (p *Poly) Compose(g, f *Poly, prec uint) *Poly {
	checkPrec("Compose", prec)
	return p.install(compose(g.coeffs, f.coeffs, prec))
}

func compose(g, f []*ball.Ball, prec uint) []*ball.Ball {

	switch {
	case len(g) == 0:
		return nil
	case len(f) == 0:
		return []*ball.Ball{g[0].Clone()}
	case len(f) == 1:
		return []*ball.Ball{evalHorner(g, f[0], prec)}
	case len(f) == 2 && f[1].Equal(ball.NewInt64(1)):
		return taylorShift(g, f[0], prec)
	}

	res := []*ball.Ball{g[len(g)-1].Clone()}
	for i := len(g) - 2; i >= 0; i-- {
		res = mul(res, f, prec)
		res[0].Add(res[0], g[i], prec)
	}

	return res
}
