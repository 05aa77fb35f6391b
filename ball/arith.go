package ball

import (
	"math/big"
	"math/bits"

	"github.com/tuneinsight/ballpoly/utils/bignum"
)

// Round sets z to x with its midpoint rounded to prec bits.
func (z *Ball) Round(x *Ball, prec uint) *Ball {
	checkPrec("Round", prec)
	m := bignum.ToComplex(&x.mid, prec)
	rad := magAdd(x.rad, roundingError(m[0]))
	z.mid, z.rad = *m, magAdd(rad, roundingError(m[1]))
	return z
}

// Add sets z to x + y.
func (z *Ball) Add(x, y *Ball, prec uint) *Ball {
	checkPrec("Add", prec)
	re := newFloat(prec).Add(x.mid[0], y.mid[0])
	im := newFloat(prec).Add(x.mid[1], y.mid[1])
	rad := magAdd(x.rad, y.rad)
	rad = magAdd(rad, roundingError(re))
	z.mid[0], z.mid[1], z.rad = re, im, magAdd(rad, roundingError(im))
	return z
}

// Sub sets z to x - y.
func (z *Ball) Sub(x, y *Ball, prec uint) *Ball {
	checkPrec("Sub", prec)
	re := newFloat(prec).Sub(x.mid[0], y.mid[0])
	im := newFloat(prec).Sub(x.mid[1], y.mid[1])
	rad := magAdd(x.rad, y.rad)
	rad = magAdd(rad, roundingError(re))
	z.mid[0], z.mid[1], z.rad = re, im, magAdd(rad, roundingError(im))
	return z
}

// Neg sets z to -x.
func (z *Ball) Neg(x *Ball) *Ball {
	z.mid[0] = new(big.Float).Neg(x.mid[0])
	z.mid[1] = new(big.Float).Neg(x.mid[1])
	z.rad = newMag().Set(x.rad)
	return z
}

// Conj sets z to the complex conjugate of x.
func (z *Ball) Conj(x *Ball) *Ball {
	z.mid[0] = new(big.Float).Copy(x.mid[0])
	z.mid[1] = new(big.Float).Neg(x.mid[1])
	z.rad = newMag().Set(x.rad)
	return z
}

// MulI sets z to i*x.
func (z *Ball) MulI(x *Ball) *Ball {
	re := new(big.Float).Neg(x.mid[1])
	im := new(big.Float).Copy(x.mid[0])
	z.mid[0], z.mid[1], z.rad = re, im, newMag().Set(x.rad)
	return z
}

// Mul2Exp sets z to x * 2^k.
func (z *Ball) Mul2Exp(x *Ball, k int) *Ball {
	z.mid[0] = new(big.Float).SetMantExp(x.mid[0], k)
	z.mid[1] = new(big.Float).SetMantExp(x.mid[1], k)
	z.rad = newMag().SetMantExp(x.rad, k)
	return z
}

// Mul sets z to x * y.
func (z *Ball) Mul(x, y *Ball, prec uint) *Ball {

	checkPrec("Mul", prec)

	a, b := x.mid[0], x.mid[1]
	c, d := y.mid[0], y.mid[1]

	var re, im *big.Float

	switch {
	case b.Sign() == 0 && d.Sign() == 0:
		re = newFloat(prec).Mul(a, c)
		im = newFloat(prec)
	case b.Sign() == 0:
		re = newFloat(prec).Mul(a, c)
		im = newFloat(prec).Mul(a, d)
	case d.Sign() == 0:
		re = newFloat(prec).Mul(a, c)
		im = newFloat(prec).Mul(b, c)
	default:
		re = newFloat(prec).Sub(exactMul(a, c), exactMul(b, d))
		im = newFloat(prec).Add(exactMul(a, d), exactMul(b, c))
	}

	// |xm*yr| + |ym*xr| + xr*yr
	rad := magMul(x.rad, y.rad)
	if y.rad.Sign() != 0 {
		rad = magAdd(rad, magMul(absUpper(a, b), y.rad))
	}
	if x.rad.Sign() != 0 {
		rad = magAdd(rad, magMul(absUpper(c, d), x.rad))
	}
	rad = magAdd(rad, roundingError(re))

	z.mid[0], z.mid[1], z.rad = re, im, magAdd(rad, roundingError(im))
	return z
}

// Sqr sets z to x^2.
func (z *Ball) Sqr(x *Ball, prec uint) *Ball {
	return z.Mul(x, x, prec)
}

// MulInt64 sets z to x * n.
func (z *Ball) MulInt64(x *Ball, n int64, prec uint) *Ball {
	return z.Mul(x, NewInt64(n), prec)
}

// MulBigInt sets z to x * n.
func (z *Ball) MulBigInt(x *Ball, n *big.Int, prec uint) *Ball {
	m := New()
	m.mid[0] = bignum.NewFloat(n, uint(n.BitLen())+1)
	return z.Mul(x, m, prec)
}

// MulFloat sets z to x * f for an exact real f.
func (z *Ball) MulFloat(x *Ball, f *big.Float, prec uint) *Ball {
	return z.Mul(x, NewMidRad(f, nil, nil), prec)
}

// DivInt64 sets z to x / n. The result is indeterminate if n is zero.
func (z *Ball) DivInt64(x *Ball, n int64, prec uint) *Ball {
	return z.DivBigInt(x, big.NewInt(n), prec)
}

// DivBigInt sets z to x / n. The result is indeterminate if n is zero.
func (z *Ball) DivBigInt(x *Ball, n *big.Int, prec uint) *Ball {

	checkPrec("DivBigInt", prec)

	if n.Sign() == 0 {
		return z.setIndeterminate()
	}

	f := bignum.NewFloat(n, uint(n.BitLen())+1)

	re := newFloat(prec).Quo(x.mid[0], f)
	im := newFloat(prec).Quo(x.mid[1], f)

	rad := magQuo(x.rad, magAbsDown(f))
	rad = magAdd(rad, roundingError(re))

	z.mid[0], z.mid[1], z.rad = re, im, magAdd(rad, roundingError(im))
	return z
}

// Inv sets z to 1/x. The result is indeterminate if x may contain zero.
func (z *Ball) Inv(x *Ball, prec uint) *Ball {

	checkPrec("Inv", prec)

	if !x.IsNonZero() {
		return z.setIndeterminate()
	}

	a, b := x.mid[0], x.mid[1]
	beta := absLower(a, b)

	var re, im, rad *big.Float

	if b.Sign() == 0 {
		re = newFloat(prec).Quo(big.NewFloat(1), a)
		im = newFloat(prec)
		rad = roundingError(re)
	} else {
		wp := prec + 16
		n := newFloat(wp).Add(exactMul(a, a), exactMul(b, b))
		re = newFloat(prec).Quo(a, n)
		im = newFloat(prec).Quo(b, n)
		rad = magAdd(roundingError(re), roundingError(im))
		im.Neg(im)
		if n.Acc() != big.Exact {
			// the relative error of n moves the quotient by at most 2^(1-wp)/|x|
			rad = magAdd(rad, magQuo(mag2Exp(1-int(wp)), beta))
		}
	}

	if x.rad.Sign() != 0 {
		// |1/(m+e) - 1/m| <= r/(|m|(|m|-r))
		rad = magAdd(rad, magQuo(x.rad, magMulDown(beta, magSubDown(beta, x.rad))))
	}

	z.mid[0], z.mid[1], z.rad = re, im, rad
	return z
}

// Div sets z to x / y. The result is indeterminate if y may contain zero.
func (z *Ball) Div(x, y *Ball, prec uint) *Ball {
	if y.IsExact() && y.mid.IsInt() && y.IsReal() && y.mid[0].Sign() != 0 {
		n, _ := y.mid[0].Int(nil)
		return z.DivBigInt(x, n, prec)
	}
	t := New().Inv(y, prec+8)
	return z.Mul(x, t, prec)
}

// PowUint sets z to x^e.
func (z *Ball) PowUint(x *Ball, e uint64, prec uint) *Ball {

	if e == 0 {
		return z.SetInt64(1)
	}

	wp := prec + uint(bits.Len64(e))

	p := x.Clone()
	r := NewInt64(1)
	for e > 0 {
		if e&1 == 1 {
			r.Mul(r, p, wp)
		}
		e >>= 1
		if e > 0 {
			p.Sqr(p, wp)
		}
	}

	return z.Round(r, prec)
}

// AddError adds e to the radius of z.
func (z *Ball) AddError(e *big.Float) *Ball {
	z.rad = magAdd(z.rad, magAbs(e))
	return z
}

// Union sets z to a ball containing both x and y.
func (z *Ball) Union(x, y *Ball, prec uint) *Ball {

	if !x.IsFinite() || !y.IsFinite() {
		return z.setIndeterminate()
	}

	m := New().Add(New().SetMid(x), New().SetMid(y), prec+4)
	m.Mul2Exp(m, -1).Round(m, prec)
	m.rad = newMag()

	// radius: max over both inputs of |m - c| + r
	dx := New().Sub(m, New().SetMid(x), prec)
	dy := New().Sub(m, New().SetMid(y), prec)
	rx := magAdd(dx.AbsUpper(), x.rad)
	ry := magAdd(dy.AbsUpper(), y.rad)

	z.mid[0], z.mid[1], z.rad = m.mid[0], m.mid[1], magMax(rx, ry)
	return z
}
