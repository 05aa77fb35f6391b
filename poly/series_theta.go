package poly

import (
	"fmt"
	"math"
	"math/big"

	"github.com/tuneinsight/ballpoly/ball"
)

// maxThetaTerms bounds the number of terms of the theta series.
const maxThetaTerms = 1 << 12

// EllipticPSeries sets p to the Weierstrass elliptic function P(z; tau) mod x^n for the
// lattice generated by 1 and tau, as a power series in z, using
//
//	P(z) = (pi theta2 theta3 theta4(pi z)/theta1(pi z))^2 - pi^2 (theta2^4 + theta3^4)/3,
//
// where the Jacobi theta functions have nome q = exp(pi i tau).
// tau must lie in the upper half plane (ErrDomain) and it returns ErrNotInvertible
// if z(0) may be a lattice point.
func (p *Poly) EllipticPSeries(z *Poly, tau *ball.Ball, n int, prec uint) (err error) {
	checkLen("EllipticPSeries", n)
	checkPrec("EllipticPSeries", prec)

	jet := func(z0 *ball.Ball, n int, prec uint) ([]*ball.Ball, error) {
		return ellipticPJet(z0, tau, n, prec)
	}

	res, err := composeJet(z.coeffs, n, jet, prec)
	if err != nil {
		return fmt.Errorf("cannot EllipticPSeries: %w", err)
	}

	p.install(res)
	return
}

func ellipticPJet(z0, tau *ball.Ball, n int, prec uint) ([]*ball.Ball, error) {

	th, err := thetaJets(z0, tau, n, prec)
	if err != nil {
		return nil, err
	}

	inv, err := invSeries(th.theta1, n, prec)
	if err != nil {
		return nil, fmt.Errorf("z may be a lattice point: %w", err)
	}

	pi := ball.Pi(prec)

	c := ball.New().Mul(th.theta2, th.theta3, prec)
	c.Mul(c, pi, prec)

	r := scalarMulVec(mulLow(th.theta4, inv, n, prec), c, prec)
	r = mulLow(r, r, n, prec)

	t2 := ball.New().PowUint(th.theta2, 4, prec)
	t3 := ball.New().PowUint(th.theta3, 4, prec)
	t2.Add(t2, t3, prec)
	t2.Mul(t2, ball.New().Sqr(pi, prec), prec)
	t2.DivInt64(t2, 3, prec)

	r = padVec(r, 1)
	r[0] = ball.New().Sub(r[0], t2, prec)

	return r, nil
}

// thetas stores the first Taylor coefficients of theta1(pi (z0 + x)) and theta4(pi (z0 + x)),
// and the constants theta2(0) and theta3(0).
type thetas struct {
	theta1, theta4 []*ball.Ball
	theta2, theta3 *ball.Ball
}

// thetaJets sums
//
//	theta1(w) = 2 sum_{k>=0} (-1)^k q^((k+1/2)^2) sin((2k+1) w),
//	theta4(w) = 1 + 2 sum_{k>=1} (-1)^k q^(k^2) cos(2k w),
//
// at w = pi (z0 + x), with the tails bounded on the disc |x| <= 1.
func thetaJets(z0, tau *ball.Ball, n int, prec uint) (th *thetas, err error) {

	if !tau.IsFinite() {
		return nil, fmt.Errorf("tau is not finite: %w", ErrDomain)
	}

	q := ball.New().ExpPiI(tau, prec)
	qm, _ := q.AbsUpper().Float64()
	if qm >= 1 {
		return nil, fmt.Errorf("tau may not lie in the upper half plane: %w", ErrDomain)
	}

	// |Im(w)| <= Y on the disc
	im, _ := z0.Imag().Float64()
	rad, _ := z0.Rad().Float64()
	Y := math.Pi * (math.Abs(im) + rad + 1) * (1 + 1e-9)

	K, ok := thetaTerms(qm, Y, prec)
	if !ok {
		return nil, fmt.Errorf("theta series converge too slowly: %w", ErrDomain)
	}

	pi := ball.Pi(prec)
	w0 := ball.New().Mul(z0, pi, prec)

	q14 := ball.New().Mul2Exp(tau, -2)
	q14.ExpPiI(q14, prec)

	th = &thetas{
		theta1: zeros(n),
		theta4: zeros(n),
		theta2: ball.New(),
		theta3: ball.NewInt64(1),
	}
	th.theta4[0].SetInt64(1)

	// qa = q^(k(k+1)), qb = q^(k^2)
	qa, qb := ball.NewInt64(1), ball.NewInt64(1)
	q2 := ball.New().Sqr(q, prec)
	qa2, qb2 := q2.Clone(), q.Clone()

	for k := 0; k < K; k++ {

		if k > 0 {
			// q^(k(k+1)) = q^((k-1)k) q^(2k), q^(k^2) = q^((k-1)^2) q^(2k-1)
			qa.Mul(qa, qa2, prec)
			qa2.Mul(qa2, q2, prec)
			qb.Mul(qb, qb2, prec)
			qb2.Mul(qb2, q2, prec)
		}

		c := ball.New().Mul(qa, q14, prec)
		c.Mul2Exp(c, 1)
		th.theta2.Add(th.theta2, c, prec)
		if k&1 == 1 {
			c.Neg(c)
		}
		addInto(th.theta1, 0, trigJet(w0, pi, int64(2*k+1), false, c, n, prec), prec)

		if k > 0 {
			c = ball.New().Mul2Exp(qb, 1)
			th.theta3.Add(th.theta3, c, prec)
			if k&1 == 1 {
				c.Neg(c)
			}
			addInto(th.theta4, 0, trigJet(w0, pi, int64(2*k), true, c, n, prec), prec)
		}
	}

	// tails, with ratios of consecutive terms at most 1/2 from K on:
	// 4 |q|^(K^2+K+1/4) e^((2K+1)Y) for theta1 and theta2, 4 |q|^(K^2) e^(2KY) for theta4 and theta3
	qb1 := magBall(q.AbsUpper())
	eY := ball.New().Exp(magBall(big.NewFloat(Y)), prec)

	t1 := ball.New().PowUint(qb1, uint64(K*K+K), prec)
	t1.Mul(t1, magBall(q14.AbsUpper()), prec)
	t1.Mul(t1, ball.New().PowUint(eY, uint64(2*K+1), prec), prec)
	t1.MulInt64(t1, 4, prec)

	t4 := ball.New().PowUint(qb1, uint64(K*K), prec)
	t4.Mul(t4, ball.New().PowUint(eY, uint64(2*K), prec), prec)
	t4.MulInt64(t4, 4, prec)

	e1, e4 := t1.AbsUpper(), t4.AbsUpper()
	if e1.IsInf() || e4.IsInf() {
		return nil, fmt.Errorf("cannot bound the theta series: %w", ErrDomain)
	}

	addCauchyError(th.theta1, e1, 0)
	addCauchyError(th.theta4, e4, 0)
	th.theta2.AddError(e1)
	th.theta3.AddError(e4)

	return th, nil
}

// thetaTerms returns the number of terms K of the theta series such that the tails are
// about 2^-(prec+8) and the terms decrease by a factor 2 from K on, or false if K would
// exceed maxThetaTerms.
func thetaTerms(qm, Y float64, prec uint) (int, bool) {

	if qm == 0 {
		return 1, true
	}

	lq := math.Log2(qm)
	ly := Y / math.Ln2
	target := -float64(prec) - 8

	for K := 1; K < maxThetaTerms; K++ {
		k := float64(K)
		if k*k*lq+(2*k+1)*ly+2 < target && (2*k+1)*lq+2*ly <= -1.5 {
			return K, true
		}
	}

	return 0, false
}

// trigJet returns the first n Taylor coefficients of c sin(m (w0 + pi x)), or of
// c cos(m (w0 + pi x)) if cosine is true.
func trigJet(w0, pi *ball.Ball, m int64, cosine bool, c *ball.Ball, n int, prec uint) []*ball.Ball {

	a := ball.New().MulInt64(w0, m, prec)
	s, co := ball.New(), ball.New()
	ball.SinCos(s, co, a, prec)

	// d^j/da^j sin(a) cycles through sin, cos, -sin, -cos
	cycle := []*ball.Ball{s, co, ball.New().Neg(s), ball.New().Neg(co)}
	shift := 0
	if cosine {
		shift = 1
	}

	b := ball.New().MulInt64(pi, m, prec)

	res := make([]*ball.Ball, n)
	f := c.Clone()
	for j := 0; j < n; j++ {
		if j > 0 {
			f.Mul(f, b, prec)
			f.DivInt64(f, int64(j), prec)
		}
		res[j] = ball.New().Mul(f, cycle[(j+shift)&3], prec)
	}

	return res
}
