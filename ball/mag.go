package ball

import (
	"math/big"
)

// magPrec is the precision of error radii.
const magPrec = 30

// newMag returns a zero radius rounding toward +Inf.
func newMag() *big.Float {
	return new(big.Float).SetPrec(magPrec).SetMode(big.ToPositiveInf)
}

// newMagDown returns a zero lower bound rounding toward -Inf.
func newMagDown() *big.Float {
	return new(big.Float).SetPrec(magPrec).SetMode(big.ToNegativeInf)
}

// magAbs returns an upper bound of |x|.
func magAbs(x *big.Float) *big.Float {
	return newMag().Set(new(big.Float).Abs(x))
}

// magAbsDown returns a lower bound of |x|.
func magAbsDown(x *big.Float) *big.Float {
	return newMagDown().Set(new(big.Float).Abs(x))
}

func magAdd(a, b *big.Float) *big.Float {
	return newMag().Add(a, b)
}

func magMul(a, b *big.Float) *big.Float {
	if a.Sign() == 0 || b.Sign() == 0 {
		return newMag()
	}
	return newMag().Mul(a, b)
}

func magMulInt(a *big.Float, n int) *big.Float {
	return magMul(a, newMag().SetInt64(int64(n)))
}

// magQuo returns an upper bound of a/b for b > 0.
func magQuo(a, b *big.Float) *big.Float {
	switch {
	case a.Sign() == 0:
		return newMag()
	case b.Sign() == 0, a.IsInf():
		return newMag().SetInf(false)
	case b.IsInf():
		return newMag()
	}
	return newMag().Quo(a, b)
}

func magQuoInt(a *big.Float, n int) *big.Float {
	return magQuo(a, newMagDown().SetInt64(int64(n)))
}

// magMulDown returns a lower bound of a*b.
func magMulDown(a, b *big.Float) *big.Float {
	if a.Sign() == 0 || b.Sign() == 0 {
		return newMagDown()
	}
	return newMagDown().Mul(a, b)
}

// magSubDown returns a lower bound of max(a-b, 0).
func magSubDown(a, b *big.Float) *big.Float {
	if b.IsInf() {
		return newMagDown()
	}
	if a.IsInf() {
		return newMagDown().SetInf(false)
	}
	z := newMagDown().Sub(a, b)
	if z.Sign() < 0 {
		return newMagDown()
	}
	return z
}

func magMax(a, b *big.Float) *big.Float {
	if a.Cmp(b) >= 0 {
		return newMag().Set(a)
	}
	return newMag().Set(b)
}

// magPowUint returns an upper bound of a^e.
func magPowUint(a *big.Float, e int) *big.Float {
	z := newMag().SetInt64(1)
	p := newMag().Set(a)
	for e > 0 {
		if e&1 == 1 {
			z = magMul(z, p)
		}
		e >>= 1
		if e > 0 {
			p = magMul(p, p)
		}
	}
	return z
}

// mag2Exp returns 2^e.
func mag2Exp(e int) *big.Float {
	return newMag().SetMantExp(big.NewFloat(1), e)
}

// magSqrt returns an upper bound of sqrt(a).
func magSqrt(a *big.Float) *big.Float {
	if a.Sign() == 0 || a.IsInf() {
		return newMag().Set(a)
	}
	return magMul(newMag().Sqrt(a), sqrtSlackUp)
}

// big.Float.Sqrt does not guarantee directed rounding, so square roots
// of radii are widened by one part in 2^28.
var (
	sqrtSlackUp   = newMag().SetFloat64(1 + 1.0/(1<<28))
	sqrtSlackDown = newMagDown().SetFloat64(1 - 1.0/(1<<28))
)

// roundingError returns a bound on the error committed when z was rounded
// to its precision, or zero if z is exact.
func roundingError(z *big.Float) *big.Float {
	if z.Acc() == big.Exact || z.Sign() == 0 || z.IsInf() {
		return newMag()
	}
	return ulp(z)
}

// ulp returns 2^(exp(z) - prec(z)), the spacing of floats of the precision of z
// near z, which bounds the rounding error of z.
func ulp(z *big.Float) *big.Float {
	if z.Sign() == 0 {
		return newMag()
	}
	return mag2Exp(z.MantExp(nil) - int(z.Prec()))
}

// absUpper returns an upper bound of |re + i*im|.
func absUpper(re, im *big.Float) *big.Float {
	a, b := magAbs(re), magAbs(im)
	if b.Sign() == 0 {
		return a
	}
	if a.Sign() == 0 {
		return b
	}
	return magSqrt(magAdd(magMul(a, a), magMul(b, b)))
}

// absLower returns a lower bound of |re + i*im|.
func absLower(re, im *big.Float) *big.Float {
	a, b := magAbsDown(re), magAbsDown(im)
	if b.Sign() == 0 {
		return a
	}
	if a.Sign() == 0 {
		return b
	}
	s := newMagDown().Add(magMulDown(a, a), magMulDown(b, b))
	return magMulDown(newMagDown().Sqrt(s), sqrtSlackDown)
}
