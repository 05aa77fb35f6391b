package ball

import (
	"math/big"
)

// maxErfArg bounds |x| accepted by Erf.
const maxErfArg = 64

// Erf sets z to the error function of x.
// The result is indeterminate if |x| may exceed 64.
func (z *Ball) Erf(x *Ball, prec uint) *Ball {

	checkPrec("Erf", prec)

	if x.IsExactZero() {
		return z.SetInt64(0)
	}

	xm := x.AbsUpper()
	if xm.Cmp(big.NewFloat(maxErfArg)) > 0 {
		return z.setIndeterminate()
	}

	// the largest term is about exp(|x|^2)
	x2m := magMul(xm, xm)
	f, _ := x2m.Float64()
	wp := prec + 24 + uint(1.5*f)

	// erf(x) = 2/sqrt(pi) sum_n (-1)^n x^(2n+1)/(n! (2n+1))
	x2 := New().Sqr(x, wp)
	t := x.Clone()
	s := New()

	tm := newMag().Set(xm)
	eps := mag2Exp(-int(wp))
	if xm.Cmp(big.NewFloat(1)) < 0 {
		eps = magMul(mag2Exp(-int(wp)), xm)
	}

	for n := 0; ; n++ {
		if n > 0 {
			t.Mul(t, x2, wp)
			t.DivInt64(t, int64(n), wp)
			tm = magQuoInt(magMul(tm, x2m), n)
		}
		// once the ratio |x|^2/(n+1) is at most 1/2, the tail is at most twice the current term
		if tm.Cmp(eps) < 0 && magMulInt(x2m, 2).Cmp(newMag().SetInt64(int64(n+1))) <= 0 {
			s.AddError(magMulInt(tm, 2))
			break
		}
		q := New().DivInt64(t, int64(2*n+1), wp)
		if n&1 == 0 {
			s.Add(s, q, wp)
		} else {
			s.Sub(s, q, wp)
		}
	}

	c := New().Rsqrt(Pi(wp), wp)
	s.Mul(s, c, wp)
	return z.Mul2Exp(s, 1).Round(z, prec)
}

// Agm1 sets z to the arithmetic-geometric mean M(1, x).
// The result is indeterminate unless x lies in the open right half-plane.
func (z *Ball) Agm1(x *Ball, prec uint) *Ball {

	checkPrec("Agm1", prec)

	if !x.IsFinite() || magAbsDown(x.mid[0]).Cmp(x.rad) <= 0 || x.mid[0].Sign() <= 0 {
		return z.setIndeterminate()
	}

	wp := prec + 24

	a := NewInt64(1)
	b := x.Clone()
	one := NewInt64(1)

	quarter := big.NewFloat(0.25)
	eps := mag2Exp(-int(wp/2) - 4)
	prev := newMag().SetInf(false)

	for i := 0; i < 64+int(wp); i++ {

		t := New().Div(b, a, wp)
		t.Sub(t, one, wp)
		tm := t.AbsUpper()

		// stop once converged, or once the radius of the inputs stalls the iteration
		if tm.Cmp(quarter) <= 0 && (tm.Cmp(eps) <= 0 || magMulInt(tm, 2).Cmp(prev) > 0) {
			// with a, b in the right half-plane |M(1,y)| <= max(1,|y|), so Cauchy
			// estimates on |y-1| <= 1/2 give |M(a,b) - (a+b)/2| <= 12|a||t|^2
			err := magMulInt(magMul(a.AbsUpper(), magMul(tm, tm)), 12)
			m := New().Add(a, b, wp)
			m.Mul2Exp(m, -1).AddError(err)
			return z.Round(m, prec)
		}

		an := New().Add(a, b, wp)
		an.Mul2Exp(an, -1)
		bn := New().Mul(a, b, wp)
		bn.Sqrt(bn, wp)
		a, b, prev = an, bn, tm

		if !a.IsFinite() || !b.IsFinite() {
			break
		}
	}

	return z.setIndeterminate()
}
