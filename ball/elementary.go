package ball

import (
	"math"
	"math/big"

	"github.com/tuneinsight/ballpoly/utils"
	"github.com/tuneinsight/ballpoly/utils/bignum"
)

// maxExpArgExp bounds the binary exponent of |x| accepted by Exp.
const maxExpArgExp = 30

// Exp sets z to exp(x).
func (z *Ball) Exp(x *Ball, prec uint) *Ball {

	checkPrec("Exp", prec)

	if x.IsExactZero() {
		return z.SetInt64(1)
	}

	m := x.AbsUpper()
	if m.IsInf() || m.MantExp(nil) > maxExpArgExp {
		return z.setIndeterminate()
	}

	// exp(x) = exp(x/2^k)^(2^k) with |x/2^k| <= 2^-r
	r := utils.CeilSqrt(int(prec))/2 + 2
	k := utils.Max(0, m.MantExp(nil)+r)
	wp := prec + uint(k) + 24

	y := New().Mul2Exp(x, -k)
	s := expTaylor(y, wp)
	for i := 0; i < k; i++ {
		s.Sqr(s, wp)
	}

	return z.Round(s, prec)
}

// expTaylor returns exp(y) for |y| <= 1/2 by summing its Taylor series.
func expTaylor(y *Ball, wp uint) *Ball {

	s := NewInt64(1)
	t := NewInt64(1)

	ym := y.AbsUpper()
	tm := newMag().SetInt64(1)
	eps := mag2Exp(-int(wp))

	for j := 1; ; j++ {
		// |y|^j/j!, the remaining terms sum to at most twice this since |y|/(j+1) <= 1/2
		tm = magQuoInt(magMul(tm, ym), j)
		if tm.Cmp(eps) < 0 {
			return s.AddError(magMulInt(tm, 2))
		}
		t.Mul(t, y, wp)
		t.DivInt64(t, int64(j), wp)
		s.Add(s, t, wp)
	}
}

// Log sets z to the principal branch of log(x).
// The result is indeterminate if x may contain zero or if x contains
// points on both sides of the branch cut along the negative real axis.
func (z *Ball) Log(x *Ball, prec uint) *Ball {

	checkPrec("Log", prec)

	if !x.IsNonZero() {
		return z.setIndeterminate()
	}

	a, b := x.mid[0], x.mid[1]

	if b.Sign() == 0 && a.Sign() < 0 {
		if x.rad.Sign() != 0 {
			return z.setIndeterminate()
		}
		// log(x) = log(-x) + i*pi on the cut
		l := New().Log(New().Neg(x), prec+4)
		return z.Add(l, New().MulI(Pi(prec+4)), prec)
	}

	if a.Sign() <= 0 && magAbs(b).Cmp(x.rad) <= 0 {
		return z.setIndeterminate()
	}

	if a.Cmp(big.NewFloat(1)) == 0 && b.Sign() == 0 && x.rad.Sign() == 0 {
		return z.SetInt64(0)
	}

	wp := prec + 24

	// starting point l0 = log|m| + i*arg(m), then log(x) = l0 + log(1 + (x*exp(-l0) - 1))
	n := newFloat(wp).Add(exactMul(a, a), exactMul(b, b))
	l0 := New()
	l0.mid[0] = bignum.Log(newFloat(wp).Sqrt(n))
	l0.mid[1] = new(big.Float).SetFloat64(approxArg(a, b))

	e := New().Exp(New().Neg(l0), wp)
	u := New().Mul(x, e, wp)
	u.Sub(u, NewInt64(1), wp)

	return z.Add(l0, log1pTaylor(u, wp), prec)
}

// approxArg returns a double precision approximation of the argument of a + i*b.
func approxArg(a, b *big.Float) float64 {
	e := utils.Max(a.MantExp(nil), b.MantExp(nil))
	af, _ := new(big.Float).SetMantExp(a, -e).Float64()
	bf, _ := new(big.Float).SetMantExp(b, -e).Float64()
	return math.Atan2(bf, af)
}

// log1pTaylor returns log(1+u) for |u| < 1/2 by summing its Taylor series.
func log1pTaylor(u *Ball, wp uint) *Ball {

	um := u.AbsUpper()
	if um.Cmp(big.NewFloat(0.5)) >= 0 {
		return Indeterminate()
	}

	if u.IsExactZero() {
		return New()
	}

	s := New()
	t := NewInt64(1)
	tm := newMag().SetInt64(1)
	eps := magMul(mag2Exp(-int(wp)), um)

	for j := 1; ; j++ {
		// |u|^j, the tail from the j-th term on is at most 2|u|^j/j
		tm = magMul(tm, um)
		if tm.Cmp(eps) < 0 {
			return s.AddError(magQuoInt(magMulInt(tm, 2), j))
		}
		t.Mul(t, u, wp)
		q := New().DivInt64(t, int64(j), wp)
		if j&1 == 1 {
			s.Add(s, q, wp)
		} else {
			s.Sub(s, q, wp)
		}
	}
}

// Sqrt sets z to the principal branch of sqrt(x).
// The result is indeterminate if x contains points on both sides of the branch cut
// along the negative real axis.
func (z *Ball) Sqrt(x *Ball, prec uint) *Ball {

	checkPrec("Sqrt", prec)

	if x.IsExactZero() {
		return z.SetInt64(0)
	}

	if !x.IsFinite() {
		return z.setIndeterminate()
	}

	a, b := x.mid[0], x.mid[1]

	if b.Sign() == 0 && a.Sign() <= 0 {
		if a.Sign() == 0 {
			z.mid[0], z.mid[1], z.rad = new(big.Float), new(big.Float), magSqrt(x.rad)
			return z
		}
		if x.rad.Sign() != 0 {
			return z.setIndeterminate()
		}
		// sqrt(x) = i*sqrt(-x) on the cut
		return z.MulI(New().Sqrt(New().Neg(x), prec))
	}

	if a.Sign() < 0 && magAbs(b).Cmp(x.rad) <= 0 {
		return z.setIndeterminate()
	}

	wp := prec + 16

	// approximate root s with Re(s) > 0
	mod := newFloat(wp).Sqrt(newFloat(wp).Add(exactMul(a, a), exactMul(b, b)))
	two := big.NewFloat(2)

	var sr, si *big.Float
	if a.Sign() >= 0 {
		sr = newFloat(wp).Add(mod, a)
		sr.Sqrt(sr.Quo(sr, two))
		si = newFloat(wp).Quo(b, newFloat(wp).Mul(sr, two))
	} else {
		si = newFloat(wp).Sub(mod, a)
		si.Sqrt(si.Quo(si, two))
		if b.Sign() < 0 {
			si.Neg(si)
		}
		sr = newFloat(wp).Quo(b, newFloat(wp).Mul(si, two))
	}

	s := New()
	s.mid[0] = newFloat(prec).Set(sr)
	s.mid[1] = newFloat(prec).Set(si)

	if s.mid[0].Sign() <= 0 {
		return z.setIndeterminate()
	}

	// for every y in x, Re(sqrt(y)) >= 0, hence |sqrt(y) - s| = |y - s^2|/|sqrt(y) + s| <= |y - s^2|/Re(s)
	d := New().Sqr(s, 2*prec+2)
	d.Sub(x, d, wp)
	s.rad = magQuo(d.AbsUpper(), magAbsDown(s.mid[0]))

	return z.Set(s)
}

// Rsqrt sets z to 1/sqrt(x).
func (z *Ball) Rsqrt(x *Ball, prec uint) *Ball {
	t := New().Sqrt(x, prec+8)
	return z.Inv(t, prec)
}

// Pow sets z to the principal branch of x^y.
func (z *Ball) Pow(x, y *Ball, prec uint) *Ball {

	checkPrec("Pow", prec)

	if y.IsExact() && y.mid.IsInt() && y.IsReal() {
		if e, acc := y.mid[0].Uint64(); acc == big.Exact && e < 1<<20 {
			return z.PowUint(x, e, prec)
		}
		if e, acc := y.mid[0].Int64(); acc == big.Exact && e > -(1<<20) && e < 0 {
			t := New().PowUint(x, uint64(-e), prec+8)
			return z.Inv(t, prec)
		}
	}

	wp := prec + 16
	l := New().Log(x, wp)
	l.Mul(l, y, wp)
	return z.Exp(l, prec)
}

// SinCos sets s to sin(x) and c to cos(x).
func SinCos(s, c, x *Ball, prec uint) {

	checkPrec("SinCos", prec)

	if x.IsExactZero() {
		s.SetInt64(0)
		c.SetInt64(1)
		return
	}

	wp := prec + 16 + cancellationBits(x)

	ix := New().MulI(x)

	if x.IsExact() && x.IsReal() {
		e := New().Exp(ix, wp)
		re := New().SetMidRad(e.mid[0], nil, e.rad)
		im := New().SetMidRad(e.mid[1], nil, e.rad)
		s.Round(im, prec)
		c.Round(re, prec)
		return
	}

	e1 := New().Exp(ix, wp)
	e2 := New().Exp(New().Neg(ix), wp)

	// sin = (e1 - e2)/(2i), cos = (e1 + e2)/2
	d := New().Sub(e1, e2, wp)
	d.Neg(d.MulI(d))
	c.Add(e1, e2, wp)
	c.Mul2Exp(c, -1).Round(c, prec)
	s.Mul2Exp(d, -1).Round(s, prec)
}

// SinhCosh sets s to sinh(x) and c to cosh(x).
func SinhCosh(s, c, x *Ball, prec uint) {

	checkPrec("SinhCosh", prec)

	if x.IsExactZero() {
		s.SetInt64(0)
		c.SetInt64(1)
		return
	}

	wp := prec + 16 + cancellationBits(x)

	e1 := New().Exp(x, wp)
	e2 := New().Exp(New().Neg(x), wp)

	d := New().Sub(e1, e2, wp)
	c.Add(e1, e2, wp)
	c.Mul2Exp(c, -1).Round(c, prec)
	s.Mul2Exp(d, -1).Round(s, prec)
}

// cancellationBits returns the number of bits lost when computing
// an odd function of a small x as a difference of exponentials.
func cancellationBits(x *Ball) uint {
	m := absUpper(x.mid[0], x.mid[1])
	if m.Sign() == 0 {
		return 0
	}
	if e := m.MantExp(nil); e < 0 {
		return uint(-e)
	}
	return 0
}

// Sin sets z to sin(x).
func (z *Ball) Sin(x *Ball, prec uint) *Ball {
	SinCos(z, New(), x, prec)
	return z
}

// Cos sets z to cos(x).
func (z *Ball) Cos(x *Ball, prec uint) *Ball {
	SinCos(New(), z, x, prec)
	return z
}

// ExpPiI sets z to exp(i*pi*x).
func (z *Ball) ExpPiI(x *Ball, prec uint) *Ball {
	wp := prec + 8
	t := New().Mul(x, Pi(wp), wp)
	return z.Exp(t.MulI(t), prec)
}
