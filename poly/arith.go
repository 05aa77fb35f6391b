package poly

import (
	"fmt"

	"github.com/tuneinsight/ballpoly/ball"
)

// Add sets p to a + b.
func (p *Poly) Add(a, b *Poly, prec uint) *Poly {
	checkPrec("Add", prec)
	return p.install(addVec(a.coeffs, b.coeffs, prec))
}

// Sub sets p to a - b.
func (p *Poly) Sub(a, b *Poly, prec uint) *Poly {
	checkPrec("Sub", prec)
	return p.install(subVec(a.coeffs, b.coeffs, prec))
}

// Neg sets p to -a.
func (p *Poly) Neg(a *Poly) *Poly {
	res := make([]*ball.Ball, len(a.coeffs))
	for i, c := range a.coeffs {
		res[i] = ball.New().Neg(c)
	}
	p.coeffs = res
	return p
}

// ScalarMul sets p to c * a.
func (p *Poly) ScalarMul(a *Poly, c *ball.Ball, prec uint) *Poly {
	checkPrec("ScalarMul", prec)
	return p.install(scalarMulVec(a.coeffs, c, prec))
}

// ScalarMulInt64 sets p to c * a.
func (p *Poly) ScalarMulInt64(a *Poly, c int64, prec uint) *Poly {
	return p.ScalarMul(a, ball.NewInt64(c), prec)
}

// ScalarDiv sets p to a / c.
// It returns ErrNotInvertible if c may contain zero.
func (p *Poly) ScalarDiv(a *Poly, c *ball.Ball, prec uint) error {
	checkPrec("ScalarDiv", prec)
	if !c.IsNonZero() {
		return fmt.Errorf("cannot ScalarDiv: %w", ErrNotInvertible)
	}
	res := make([]*ball.Ball, len(a.coeffs))
	for i, x := range a.coeffs {
		res[i] = ball.New().Div(x, c, prec)
	}
	p.install(res)
	return nil
}

// Scalar2Exp sets p to a * 2^k.
func (p *Poly) Scalar2Exp(a *Poly, k int) *Poly {
	res := make([]*ball.Ball, len(a.coeffs))
	for i, c := range a.coeffs {
		res[i] = ball.New().Mul2Exp(c, k)
	}
	p.coeffs = res
	return p
}

func addVec(a, b []*ball.Ball, prec uint) []*ball.Ball {
	if len(a) < len(b) {
		a, b = b, a
	}
	res := make([]*ball.Ball, len(a))
	for i := range b {
		res[i] = ball.New().Add(a[i], b[i], prec)
	}
	for i := len(b); i < len(a); i++ {
		res[i] = a[i].Clone()
	}
	return res
}

func subVec(a, b []*ball.Ball, prec uint) []*ball.Ball {
	res := make([]*ball.Ball, max(len(a), len(b)))
	for i := range res {
		switch {
		case i < len(a) && i < len(b):
			res[i] = ball.New().Sub(a[i], b[i], prec)
		case i < len(a):
			res[i] = a[i].Clone()
		default:
			res[i] = ball.New().Neg(b[i])
		}
	}
	return res
}

// addInto adds b to a starting at offset, in place. a must be long enough.
func addInto(a []*ball.Ball, offset int, b []*ball.Ball, prec uint) {
	for i := range b {
		a[offset+i].Add(a[offset+i], b[i], prec)
	}
}

// subInto subtracts b from a starting at offset, in place. a must be long enough.
func subInto(a []*ball.Ball, offset int, b []*ball.Ball, prec uint) {
	for i := range b {
		a[offset+i].Sub(a[offset+i], b[i], prec)
	}
}

func scalarMulVec(a []*ball.Ball, c *ball.Ball, prec uint) []*ball.Ball {
	res := make([]*ball.Ball, len(a))
	for i := range a {
		res[i] = ball.New().Mul(a[i], c, prec)
	}
	return res
}

// trimVec returns a without its trailing exact zeros.
func trimVec(a []*ball.Ball) []*ball.Ball {
	n := len(a)
	for n > 0 && a[n-1].IsExactZero() {
		n--
	}
	return a[:n]
}
