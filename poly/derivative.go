package poly

import (
	"github.com/tuneinsight/ballpoly/ball"
)

// Derivative sets p to the derivative of a.
func (p *Poly) Derivative(a *Poly, prec uint) *Poly {
	checkPrec("Derivative", prec)
	return p.install(derivative(a.coeffs, prec))
}

// Integral sets p to the integral of a with zero constant term.
func (p *Poly) Integral(a *Poly, prec uint) *Poly {
	checkPrec("Integral", prec)
	return p.install(integral(a.coeffs, prec))
}

func derivative(a []*ball.Ball, prec uint) []*ball.Ball {
	if len(a) < 2 {
		return nil
	}
	res := make([]*ball.Ball, len(a)-1)
	for i := 1; i < len(a); i++ {
		res[i-1] = ball.New().MulInt64(a[i], int64(i), prec)
	}
	return res
}

func integral(a []*ball.Ball, prec uint) []*ball.Ball {
	if len(a) == 0 {
		return nil
	}
	res := make([]*ball.Ball, len(a)+1)
	res[0] = ball.New()
	for i := range a {
		res[i+1] = ball.New().DivInt64(a[i], int64(i+1), prec)
	}
	return res
}
