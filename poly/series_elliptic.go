package poly

import (
	"fmt"
	"math"
	"math/big"

	"github.com/tuneinsight/ballpoly/ball"
)

// Agm1Series sets p to the arithmetic-geometric mean M(1, h) mod x^n.
// h(0) must lie in the open right half plane (ErrDomain).
func (p *Poly) Agm1Series(h *Poly, n int, prec uint) (err error) {
	checkLen("Agm1Series", n)
	checkPrec("Agm1Series", prec)
	res, err := composeJet(h.coeffs, n, agm1Jet, prec)
	if err != nil {
		return fmt.Errorf("cannot Agm1Series: %w", err)
	}
	p.install(res)
	return
}

// EllipticKSeries sets p to the complete elliptic integral of the first kind
// K(h) = pi / (2 M(1, sqrt(1 - h))) mod x^n, with the parameter convention m = k^2.
// It returns ErrNotInvertible if h(0) may be 1 and ErrDomain if h(0) may lie on the branch cut m > 1.
func (p *Poly) EllipticKSeries(h *Poly, n int, prec uint) (err error) {
	checkLen("EllipticKSeries", n)
	checkPrec("EllipticKSeries", prec)
	res, err := composeJet(h.coeffs, n, ellipticKJet, prec)
	if err != nil {
		return fmt.Errorf("cannot EllipticKSeries: %w", err)
	}
	p.install(res)
	return
}

// EllipticESeries sets p to the complete elliptic integral of the second kind E(h) mod x^n,
// obtained from K by E(m) = 2 m (1 - m) K'(m) + (1 - m) K(m).
// It fails under the same conditions as EllipticKSeries, in particular at m = 1.
func (p *Poly) EllipticESeries(h *Poly, n int, prec uint) (err error) {
	checkLen("EllipticESeries", n)
	checkPrec("EllipticESeries", prec)
	res, err := composeJet(h.coeffs, n, ellipticEJet, prec)
	if err != nil {
		return fmt.Errorf("cannot EllipticESeries: %w", err)
	}
	p.install(res)
	return
}

// agm1Jet returns the first n Taylor coefficients of M(1, z0 + x).
// The AGM iteration is run on power series. The error made by stopping the iteration is
// bounded on the disc |x| <= rho by running the same iteration on a ball enclosing that
// disc, and transferred to the coefficients with the Cauchy bound.
func agm1Jet(z0 *ball.Ball, n int, prec uint) ([]*ball.Ball, error) {

	// lower bound of Re(z0)
	R := ball.NewMidRad(z0.Real(), nil, nil)
	R.Sub(R, ball.NewMidRad(z0.Rad(), nil, nil), prec)
	if !R.IsNonZero() || R.Real().Sign() <= 0 {
		return nil, fmt.Errorf("argument must lie in the right half plane: %w", ErrDomain)
	}

	if n == 1 {
		m := ball.New().Agm1(z0, prec)
		if !m.IsFinite() {
			return nil, fmt.Errorf("cannot bound M(1, %s): %w", z0.Format(8), ErrDomain)
		}
		return []*ball.Ball{m}, nil
	}

	// rho = 2^-k <= min(1/2, Re(z0)/2)
	rf, _ := R.Real().Float64()
	k := 1
	for math.Ldexp(1, 1-k) > rf {
		k++
	}
	rho := new(big.Float).SetMantExp(big.NewFloat(1), -k)

	wp := prec + 24 + uint(k*n)

	disc := ball.NewMidRad(z0.Real(), z0.Imag(), new(big.Float).SetMode(big.ToPositiveInf).Add(z0.Rad(), rho))

	a := []*ball.Ball{ball.NewInt64(1)}
	b := []*ball.Ball{z0.Clone(), ball.NewInt64(1)}
	ad, bd := ball.NewInt64(1), disc

	one := ball.NewInt64(1)
	quarter := big.NewFloat(0.25)
	eps := new(big.Float).SetMantExp(big.NewFloat(1), -int(wp/2)-4)
	prev := new(big.Float).SetInf(false)

	for i := 0; i < 64+int(wp); i++ {

		t := ball.New().Div(bd, ad, wp)
		t.Sub(t, one, wp)
		tm := t.AbsUpper()

		if tm.Cmp(quarter) <= 0 && (tm.Cmp(eps) <= 0 || new(big.Float).Mul(tm, big.NewFloat(2)).Cmp(prev) > 0) {

			// |M(a, b) - (a + b)/2| <= 12 |a| |t|^2 on the disc
			e := ball.New().Sqr(magBall(tm), wp)
			e.Mul(e, magBall(ad.AbsUpper()), wp)
			e.MulInt64(e, 12, wp)

			res := scalarMulVec(addVec(padVec(a, n), padVec(b, n), wp), ball.NewFloat64(0.5), wp)
			bound := e.AbsUpper()
			if bound.IsInf() {
				break
			}
			addCauchyError(res, bound, k)

			return res, nil
		}

		an := scalarMulVec(addVec(padVec(a, n), padVec(b, n), wp), ball.NewFloat64(0.5), wp)
		bn, err := sqrtSeries(mulLow(a, b, n, wp), n, wp)
		if err != nil {
			return nil, fmt.Errorf("cannot bound M(1, %s): %w", z0.Format(8), ErrDomain)
		}

		adn := ball.New().Add(ad, bd, wp)
		adn.Mul2Exp(adn, -1)
		bdn := ball.New().Mul(ad, bd, wp)
		bdn.Sqrt(bdn, wp)

		a, b, ad, bd, prev = an, bn, adn, bdn, tm

		if !ad.IsFinite() || !bd.IsFinite() {
			break
		}
	}

	return nil, fmt.Errorf("cannot bound M(1, %s): %w", z0.Format(8), ErrDomain)
}

// padVec returns a extended with exact zeros to length n.
func padVec(a []*ball.Ball, n int) []*ball.Ball {
	if len(a) >= n {
		return a
	}
	return append(cloneBalls(a), zeros(n-len(a))...)
}

// ellipticKJet returns the first n Taylor coefficients of K(m0 + x).
func ellipticKJet(m0 *ball.Ball, n int, prec uint) ([]*ball.Ball, error) {

	// sqrt(1 - m0 - x)
	s, err := sqrtSeries([]*ball.Ball{ball.New().Sub(ball.NewInt64(1), m0, prec), ball.NewInt64(-1)}, n, prec)
	if err != nil {
		return nil, err
	}

	m, err := composeJet(s, n, agm1Jet, prec)
	if err != nil {
		return nil, err
	}

	inv, err := invSeries(m, n, prec)
	if err != nil {
		return nil, err
	}

	c := ball.Pi(prec)
	c.Mul2Exp(c, -1)

	return scalarMulVec(inv, c, prec), nil
}

// ellipticEJet returns the first n Taylor coefficients of E(m0 + x).
func ellipticEJet(m0 *ball.Ball, n int, prec uint) ([]*ball.Ball, error) {

	K, err := ellipticKJet(m0, n+1, prec)
	if err != nil {
		return nil, err
	}

	// m = m0 + x, 1 - m
	m := []*ball.Ball{m0.Clone(), ball.NewInt64(1)}
	om := []*ball.Ball{ball.New().Sub(ball.NewInt64(1), m0, prec), ball.NewInt64(-1)}

	// 2 m (1 - m) K' + (1 - m) K
	w := mulLow(m, om, n, prec)
	e := mulLow(scalarMulVec(w, ball.NewInt64(2), prec), derivative(K, prec), n, prec)
	e = addVec(padVec(e, n), padVec(mulLow(om, K, n, prec), n), prec)

	return e, nil
}
