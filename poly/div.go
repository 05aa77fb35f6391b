package poly

import (
	"fmt"

	"github.com/tuneinsight/ballpoly/ball"
)

// divNewtonThreshold is the quotient length from which DivRem uses the
// Newton (reversed series inverse) division.
const divNewtonThreshold = 32

// DivRem sets q and r to the quotient and remainder of the division of a by b,
// such that a = q*b + r with deg(r) < deg(b).
// It returns ErrNotInvertible if the leading coefficient of b may be zero,
// in which case q and r are left untouched.
// q and r must be distinct, but may alias a or b.
func DivRem(q, r, a, b *Poly, prec uint) (err error) {
	checkPrec("DivRem", prec)
	if len(a.coeffs)-len(b.coeffs)+1 < divNewtonThreshold {
		return DivRemBasecase(q, r, a, b, prec)
	}
	return DivRemNewton(q, r, a, b, prec)
}

// DivRemBasecase is DivRem implemented by schoolbook long division.
func DivRemBasecase(q, r, a, b *Poly, prec uint) (err error) {
	checkPrec("DivRemBasecase", prec)
	if q == r {
		panic(fmt.Errorf("cannot DivRemBasecase: quotient and remainder must be distinct"))
	}
	qs, rs, err := divRemBasecase(a.coeffs, b.coeffs, prec)
	if err != nil {
		return fmt.Errorf("cannot DivRemBasecase: %w", err)
	}
	q.install(qs)
	r.install(rs)
	return
}

// DivRemNewton is DivRem implemented by a power series inverse of the reversal of b.
func DivRemNewton(q, r, a, b *Poly, prec uint) (err error) {
	checkPrec("DivRemNewton", prec)
	if q == r {
		panic(fmt.Errorf("cannot DivRemNewton: quotient and remainder must be distinct"))
	}
	qs, rs, err := divRemNewton(a.coeffs, b.coeffs, prec)
	if err != nil {
		return fmt.Errorf("cannot DivRemNewton: %w", err)
	}
	q.install(qs)
	r.install(rs)
	return
}

// Div sets q to the quotient of the division of a by b.
func (q *Poly) Div(a, b *Poly, prec uint) (err error) {
	checkPrec("Div", prec)
	qs, _, err := divRem(a.coeffs, b.coeffs, prec)
	if err != nil {
		return fmt.Errorf("cannot Div: %w", err)
	}
	q.install(qs)
	return
}

// Rem sets r to the remainder of the division of a by b.
func (r *Poly) Rem(a, b *Poly, prec uint) (err error) {
	checkPrec("Rem", prec)
	_, rs, err := divRem(a.coeffs, b.coeffs, prec)
	if err != nil {
		return fmt.Errorf("cannot Rem: %w", err)
	}
	r.install(rs)
	return
}

// DivLinear sets q to the quotient of the division of a by x - c and returns the remainder, which is a(c).
func (q *Poly) DivLinear(a *Poly, c *ball.Ball, prec uint) (rem *ball.Ball) {
	checkPrec("DivLinear", prec)
	qs, rem := divLinear(a.coeffs, c, prec)
	q.install(qs)
	return
}

func divRem(a, b []*ball.Ball, prec uint) (q, r []*ball.Ball, err error) {
	if len(a)-len(b)+1 < divNewtonThreshold {
		return divRemBasecase(a, b, prec)
	}
	return divRemNewton(a, b, prec)
}

// divisible checks that b has a leading coefficient which does not contain zero.
func divisible(b []*ball.Ball) error {
	if len(b) == 0 || !b[len(b)-1].IsNonZero() {
		return ErrNotInvertible
	}
	return nil
}

func divRemBasecase(a, b []*ball.Ball, prec uint) (q, r []*ball.Ball, err error) {

	if err = divisible(b); err != nil {
		return
	}

	lenA, lenB := len(a), len(b)

	if lenA < lenB {
		return nil, cloneBalls(a), nil
	}

	lc := b[lenB-1]
	inv := ball.New()
	monic := lc.Equal(ball.NewInt64(1))
	if !monic {
		inv.Inv(lc, prec)
	}

	rem := cloneBalls(a)
	q = make([]*ball.Ball, lenA-lenB+1)
	t := ball.New()

	for i := lenA - 1; i >= lenB-1; i-- {
		c := rem[i]
		if !monic {
			c = ball.New().Mul(c, inv, prec)
		}
		q[i-lenB+1] = c
		for j := 0; j < lenB-1; j++ {
			k := i - lenB + 1 + j
			rem[k].Sub(rem[k], t.Mul(c, b[j], prec), prec)
		}
	}

	return q, rem[:lenB-1], nil
}

func divRemNewton(a, b []*ball.Ball, prec uint) (q, r []*ball.Ball, err error) {

	if err = divisible(b); err != nil {
		return
	}

	lenA, lenB := len(a), len(b)

	if lenA < lenB {
		return nil, cloneBalls(a), nil
	}

	n := lenA - lenB + 1

	// rev(q) = rev(a) / rev(b) mod x^n
	inv, err := invSeries(reverse(b), n, prec)
	if err != nil {
		return
	}

	q = reverse(mulLow(reverse(a)[:n], inv, n, prec))
	for len(q) < n {
		q = append([]*ball.Ball{ball.New()}, q...)
	}

	if lenB == 1 {
		return q, nil, nil
	}

	r = subVec(a[:lenB-1], mulLow(b, q, lenB-1, prec), prec)

	return q, r, nil
}

func divLinear(a []*ball.Ball, c *ball.Ball, prec uint) (q []*ball.Ball, rem *ball.Ball) {

	n := len(a)

	if n == 0 {
		return nil, ball.New()
	}

	if n == 1 {
		return nil, a[0].Clone()
	}

	q = make([]*ball.Ball, n-1)
	q[n-2] = a[n-1].Clone()
	for i := n - 2; i > 0; i-- {
		q[i-1] = ball.New().Mul(c, q[i], prec)
		q[i-1].Add(q[i-1], a[i], prec)
	}

	rem = ball.New().Mul(c, q[0], prec)
	rem.Add(rem, a[0], prec)

	return
}

// reverse returns the coefficients of a in reverse order, without copy of the balls.
func reverse(a []*ball.Ball) []*ball.Ball {
	res := make([]*ball.Ball, len(a))
	for i := range a {
		res[len(a)-1-i] = a[i]
	}
	return res
}
