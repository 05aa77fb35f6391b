package ball

import (
	"math"
	"math/big"

	"github.com/tuneinsight/ballpoly/utils/bignum"
)

// Pi returns a ball containing pi.
func Pi(prec uint) *Ball {

	checkPrec("Pi", prec)

	if prec+16 <= bignum.PiDigitsPrec {
		z := New()
		z.mid[0] = bignum.Pi(prec)
		z.rad = magAdd(mag2Exp(2-int(prec)), mag2Exp(-bignum.PiDigitsPrec))
		return z
	}

	// Machin: pi = 16 atan(1/5) - 4 atan(1/239)
	wp := prec + 16
	a := arctanInv(5, false, wp)
	b := arctanInv(239, false, wp)
	a.MulInt64(a, 16, wp)
	b.MulInt64(b, 4, wp)
	return a.Sub(a, b, prec)
}

// Log2Const returns a ball containing log(2).
func Log2Const(prec uint) *Ball {

	checkPrec("Log2Const", prec)

	if prec+16 <= bignum.PiDigitsPrec {
		z := New()
		z.mid[0] = bignum.Log2(prec)
		z.rad = magAdd(mag2Exp(-int(prec)), mag2Exp(-bignum.PiDigitsPrec))
		return z
	}

	// log(2) = 2 atanh(1/3)
	wp := prec + 16
	a := arctanInv(3, true, wp)
	return a.Mul2Exp(a, 1).Round(a, prec)
}

// arctanInv returns atan(1/k), or atanh(1/k) if hyperbolic is true, for k >= 2.
func arctanInv(k int64, hyperbolic bool, wp uint) *Ball {

	p := New().DivInt64(NewInt64(1), k, wp)
	p2 := New().Sqr(p, wp)

	s := New()
	t := p.Clone()

	lk := math.Log2(float64(k))

	for j := 0; ; j++ {
		// |t| <= k^-(2j+1), the remaining terms sum to at most twice that
		if float64(2*j+1)*lk > float64(wp)+2 {
			tail := newMag().SetMantExp(big.NewFloat(1), -int(float64(2*j+1)*lk)+2)
			return s.AddError(tail)
		}
		q := New().DivInt64(t, int64(2*j+1), wp)
		if hyperbolic || j&1 == 0 {
			s.Add(s, q, wp)
		} else {
			s.Sub(s, q, wp)
		}
		t.Mul(t, p2, wp)
	}
}
