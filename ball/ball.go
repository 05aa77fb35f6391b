// Package ball implements complex ball arithmetic.
//
// A Ball is a complex midpoint together with a radius, and stands for every
// complex number in the closed disc they define. Every operation returns a
// ball that contains the exact result of the operation applied to any point
// of its inputs: rounding errors of the midpoint are accounted for in the
// radius, so that radii never shrink below the true error.
//
// Operations follow the conventions of math/big: the receiver is the result,
// it may alias any operand, and it is returned to allow chaining.
// Operations whose midpoint is rounded take the working precision in bits.
package ball

import (
	"fmt"
	"math/big"

	"github.com/tuneinsight/ballpoly/utils/bignum"
)

// Ball is a complex ball. The zero value is not usable, use New.
type Ball struct {
	mid bignum.Complex
	rad *big.Float
}

// New returns a new exact zero ball.
func New() *Ball {
	return &Ball{mid: *bignum.NewComplex(), rad: newMag()}
}

// NewInt64 returns the exact ball x.
func NewInt64(x int64) *Ball {
	return New().SetInt64(x)
}

// NewFloat64 returns the exact ball x.
func NewFloat64(x float64) *Ball {
	return New().SetFloat64(x)
}

// NewComplex128 returns the exact ball x.
func NewComplex128(x complex128) *Ball {
	return New().SetComplex128(x)
}

// NewBigInt returns a ball containing x with a midpoint of prec bits.
func NewBigInt(x *big.Int, prec uint) *Ball {
	return New().SetBigInt(x, prec)
}

// NewRat returns a ball containing re + i*im with a midpoint of prec bits.
// im can be nil.
func NewRat(re, im *big.Rat, prec uint) *Ball {
	return New().SetRat(re, im, prec)
}

// NewMidRad returns the ball of midpoint re + i*im and radius (at least) rad.
// The midpoint is copied without rounding.
func NewMidRad(re, im, rad *big.Float) *Ball {
	return New().SetMidRad(re, im, rad)
}

// Indeterminate returns a ball of infinite radius.
func Indeterminate() *Ball {
	return New().setIndeterminate()
}

// I returns the exact imaginary unit.
func I() *Ball {
	return NewComplex128(1i)
}

// Set sets z to x.
func (z *Ball) Set(x *Ball) *Ball {
	if z != x {
		z.mid[0] = new(big.Float).Copy(x.mid[0])
		z.mid[1] = new(big.Float).Copy(x.mid[1])
		z.rad = newMag().Set(x.rad)
	}
	return z
}

// Clone returns a deep copy of x.
func (x *Ball) Clone() *Ball {
	return New().Set(x)
}

// SetInt64 sets z to the exact value x.
func (z *Ball) SetInt64(x int64) *Ball {
	z.mid[0] = new(big.Float).SetInt64(x)
	z.mid[1] = new(big.Float)
	z.rad = newMag()
	return z
}

// SetFloat64 sets z to the exact value x.
func (z *Ball) SetFloat64(x float64) *Ball {
	return z.SetComplex128(complex(x, 0))
}

// SetComplex128 sets z to the exact value x.
// It panics if x has an infinite or NaN component.
func (z *Ball) SetComplex128(x complex128) *Ball {
	z.mid[0] = new(big.Float).SetFloat64(real(x))
	z.mid[1] = new(big.Float).SetFloat64(imag(x))
	if z.mid[0].IsInf() || z.mid[1].IsInf() {
		panic(fmt.Errorf("cannot SetComplex128: %v is not finite", x))
	}
	z.rad = newMag()
	return z
}

// SetBigInt sets z to a ball containing x with a midpoint of prec bits.
func (z *Ball) SetBigInt(x *big.Int, prec uint) *Ball {
	checkPrec("SetBigInt", prec)
	re := bignum.NewFloat(x, prec)
	z.mid[0], z.mid[1] = re, new(big.Float)
	z.rad = roundingError(re)
	return z
}

// SetRat sets z to a ball containing re + i*im with a midpoint of prec bits.
// im can be nil.
func (z *Ball) SetRat(re, im *big.Rat, prec uint) *Ball {
	checkPrec("SetRat", prec)
	a := newFloat(prec).SetRat(re)
	b := newFloat(prec)
	if im != nil {
		b.SetRat(im)
	}
	z.mid[0], z.mid[1] = a, b
	z.rad = magAdd(roundingError(a), roundingError(b))
	return z
}

// SetMidRad sets z to the ball of midpoint re + i*im and radius rad rounded up.
// im and rad can be nil.
func (z *Ball) SetMidRad(re, im, rad *big.Float) *Ball {
	z.mid[0] = new(big.Float).Copy(re)
	z.mid[1] = new(big.Float)
	if im != nil {
		z.mid[1].Copy(im)
	}
	z.rad = newMag()
	if rad != nil {
		z.rad = magAbs(rad)
	}
	return z
}

// SetMid sets the midpoint of z to the midpoint of x, and its radius to zero.
func (z *Ball) SetMid(x *Ball) *Ball {
	z.mid[0] = new(big.Float).Copy(x.mid[0])
	z.mid[1] = new(big.Float).Copy(x.mid[1])
	z.rad = newMag()
	return z
}

// SetRad sets the radius of z to an upper bound of |r|.
func (z *Ball) SetRad(r *big.Float) *Ball {
	z.rad = magAbs(r)
	return z
}

func (z *Ball) setIndeterminate() *Ball {
	z.mid[0], z.mid[1] = new(big.Float), new(big.Float)
	z.rad = newMag().SetInf(false)
	return z
}

// Mid returns a copy of the midpoint of x.
func (x *Ball) Mid() *bignum.Complex {
	return x.mid.Clone()
}

// Real returns a copy of the real part of the midpoint of x.
func (x *Ball) Real() *big.Float {
	return new(big.Float).Copy(x.mid.Real())
}

// Imag returns a copy of the imaginary part of the midpoint of x.
func (x *Ball) Imag() *big.Float {
	return new(big.Float).Copy(x.mid.Imag())
}

// Rad returns a copy of the radius of x.
func (x *Ball) Rad() *big.Float {
	return newMag().Set(x.rad)
}

// Prec returns the precision of the midpoint of x.
func (x *Ball) Prec() uint {
	return x.mid.Prec()
}

// Complex128 returns the midpoint of x as a complex128.
func (x *Ball) Complex128() complex128 {
	return x.mid.Complex128()
}

// IsExactZero returns true if x is the exact zero ball.
func (x *Ball) IsExactZero() bool {
	return x.rad.Sign() == 0 && x.mid.IsZero()
}

// IsExact returns true if the radius of x is zero.
func (x *Ball) IsExact() bool {
	return x.rad.Sign() == 0
}

// IsFinite returns true if the radius of x is finite.
func (x *Ball) IsFinite() bool {
	return !x.rad.IsInf()
}

// IsReal returns true if the midpoint of x lies on the real axis.
func (x *Ball) IsReal() bool {
	return x.mid.IsReal()
}

// IsNonZero returns true if zero is provably excluded from x.
// Every ball for which IsNonZero returns true can be inverted.
func (x *Ball) IsNonZero() bool {
	if !x.IsFinite() {
		return false
	}
	return absLower(x.mid[0], x.mid[1]).Cmp(x.rad) > 0
}

// ContainsZero returns true if zero lies in x.
func (x *Ball) ContainsZero() bool {
	return x.ContainsRat(new(big.Rat), nil)
}

// AbsUpper returns an upper bound of |y| for all y in x.
func (x *Ball) AbsUpper() *big.Float {
	return magAdd(absUpper(x.mid[0], x.mid[1]), x.rad)
}

// AbsLower returns a lower bound of |y| for all y in x.
func (x *Ball) AbsLower() *big.Float {
	return magSubDown(absLower(x.mid[0], x.mid[1]), x.rad)
}

// Contains returns true if the disc of y is contained in the disc of x.
func (x *Ball) Contains(y *Ball) bool {
	if x.rad.IsInf() {
		return true
	}
	if y.rad.IsInf() {
		return false
	}
	s := new(big.Rat).Sub(toRat(x.rad), toRat(y.rad))
	if s.Sign() < 0 {
		return false
	}
	return distSqr(x.mid, y.mid).Cmp(s.Mul(s, s)) <= 0
}

// ContainsRat returns true if re + i*im lies in x. im can be nil.
func (x *Ball) ContainsRat(re, im *big.Rat) bool {
	if x.rad.IsInf() {
		return true
	}
	if im == nil {
		im = new(big.Rat)
	}
	dr := new(big.Rat).Sub(toRat(x.mid[0]), re)
	di := new(big.Rat).Sub(toRat(x.mid[1]), im)
	d := dr.Mul(dr, dr)
	d.Add(d, di.Mul(di, di))
	r := toRat(x.rad)
	return d.Cmp(r.Mul(r, r)) <= 0
}

// ContainsBigInt returns true if the integer n lies in x.
func (x *Ball) ContainsBigInt(n *big.Int) bool {
	return x.ContainsRat(new(big.Rat).SetInt(n), nil)
}

// ContainsInt64 returns true if the integer n lies in x.
func (x *Ball) ContainsInt64(n int64) bool {
	return x.ContainsRat(new(big.Rat).SetInt64(n), nil)
}

// Overlaps returns true if the discs of x and y intersect.
func (x *Ball) Overlaps(y *Ball) bool {
	if x.rad.IsInf() || y.rad.IsInf() {
		return true
	}
	s := new(big.Rat).Add(toRat(x.rad), toRat(y.rad))
	return distSqr(x.mid, y.mid).Cmp(s.Mul(s, s)) <= 0
}

// Equal returns true if x and y have the same midpoint and radius as numbers.
// The precisions of the midpoints are not compared.
func (x *Ball) Equal(y *Ball) bool {
	return x.mid.Cmp(&y.mid) && x.rad.Cmp(y.rad) == 0
}

// UniqueInt returns the unique integer contained in x, if there is exactly one.
func (x *Ball) UniqueInt() (n *big.Int, ok bool) {

	if !x.IsFinite() {
		return nil, false
	}

	// the intersection of the disc with the real axis is an interval centered
	// on the real part of the midpoint, so only its nearest integer can lie in it
	re := toRat(x.mid[0])
	re.Add(re, big.NewRat(1, 2))
	n = new(big.Int).Div(re.Num(), re.Denom())

	if !x.ContainsBigInt(n) {
		return nil, false
	}

	one := big.NewInt(1)
	if x.ContainsBigInt(new(big.Int).Add(n, one)) || x.ContainsBigInt(new(big.Int).Sub(n, one)) {
		return nil, false
	}

	return n, true
}

// String returns a representation of x with 16 significant digits.
func (x *Ball) String() string {
	return x.Format(16)
}

// Format returns a representation of x with the given number of significant digits
// for the midpoint.
func (x *Ball) Format(digits int) string {
	if x.rad.Sign() == 0 {
		return x.mid.Text(digits)
	}
	return fmt.Sprintf("[%s +/- %s]", x.mid.Text(digits), x.rad.Text('e', 2))
}

func newFloat(prec uint) *big.Float {
	return new(big.Float).SetPrec(prec)
}

// exactMul returns a*b without rounding.
func exactMul(a, b *big.Float) *big.Float {
	return new(big.Float).SetPrec(a.Prec() + b.Prec() + 1).Mul(a, b)
}

func toRat(x *big.Float) *big.Rat {
	r, _ := x.Rat(nil)
	return r
}

// distSqr returns |a - b|^2 exactly.
func distSqr(a, b bignum.Complex) *big.Rat {
	dr := new(big.Rat).Sub(toRat(a[0]), toRat(b[0]))
	di := new(big.Rat).Sub(toRat(a[1]), toRat(b[1]))
	d := dr.Mul(dr, dr)
	return d.Add(d, di.Mul(di, di))
}

func checkPrec(op string, prec uint) {
	if prec == 0 {
		panic(fmt.Errorf("cannot %s: precision must be positive", op))
	}
}
