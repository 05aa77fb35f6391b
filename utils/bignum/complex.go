package bignum

import (
	"fmt"
	"math/big"
)

// Complex is a type for arbitrary precision complex number.
type Complex [2]*big.Float

// NewComplex creates a new arbitrary precision complex number equal to zero.
func NewComplex() (c *Complex) {
	return &Complex{
		new(big.Float),
		new(big.Float),
	}
}

// ToComplex takes a complex128, float64, int, int64, *big.Int, *big.Float or *Complex and returns a *Complex set to the given precision.
func ToComplex(value interface{}, prec uint) (cmplx *Complex) {

	cmplx = new(Complex)

	switch value := value.(type) {
	case complex128:
		cmplx[0] = new(big.Float).SetPrec(prec).SetFloat64(real(value))
		cmplx[1] = new(big.Float).SetPrec(prec).SetFloat64(imag(value))
	case float64:
		cmplx[0] = new(big.Float).SetPrec(prec).SetFloat64(value)
		cmplx[1] = new(big.Float).SetPrec(prec)
	case int:
		cmplx[0] = new(big.Float).SetPrec(prec).SetInt64(int64(value))
		cmplx[1] = new(big.Float).SetPrec(prec)
	case int64:
		cmplx[0] = new(big.Float).SetPrec(prec).SetInt64(value)
		cmplx[1] = new(big.Float).SetPrec(prec)
	case *big.Float:
		cmplx[0] = new(big.Float).SetPrec(prec).Set(value)
		cmplx[1] = new(big.Float).SetPrec(prec)
	case *big.Int:
		cmplx[0] = new(big.Float).SetPrec(prec).SetInt(value)
		cmplx[1] = new(big.Float).SetPrec(prec)
	case *Complex:
		cmplx[0] = new(big.Float).SetPrec(prec).Set(value[0])
		cmplx[1] = new(big.Float).SetPrec(prec).Set(value[1])
	default:
		panic(fmt.Errorf("invalid value.(type): must be int, int64, float64, complex128, *big.Int, *big.Float or *Complex but is %T", value))
	}

	return
}

// IsInt returns true if both the real and imaginary parts are integers.
func (c Complex) IsInt() bool {
	return c[0].IsInt() && c[1].IsInt()
}

// IsReal returns true if the imaginary part is zero.
func (c Complex) IsReal() bool {
	return c[1] == nil || c[1].Sign() == 0
}

// IsZero returns true if both parts are zero.
func (c Complex) IsZero() bool {
	return c[0].Sign() == 0 && c.IsReal()
}

// Prec returns the largest precision of the two parts.
func (c *Complex) Prec() uint {
	return max(c[0].Prec(), c[1].Prec())
}

// Clone returns a new copy of the target arbitrary precision complex number.
func (c *Complex) Clone() *Complex {
	return &Complex{new(big.Float).Copy(c[0]), new(big.Float).Copy(c[1])}
}

// Real returns the real part as a big.Float.
func (c *Complex) Real() *big.Float {
	return c[0]
}

// Imag returns the imaginary part as a big.Float.
func (c *Complex) Imag() *big.Float {
	return c[1]
}

// Complex128 returns the arbitrary precision complex number as a complex128.
func (c *Complex) Complex128() complex128 {

	real, _ := c[0].Float64()
	imag, _ := c[1].Float64()

	return complex(real, imag)
}

// Cmp returns true if both parts of c and a are equal as numbers.
func (c *Complex) Cmp(a *Complex) bool {
	return c[0].Cmp(a[0]) == 0 && c[1].Cmp(a[1]) == 0
}

// Text formats c with the given number of significant digits.
func (c *Complex) Text(digits int) string {
	if c.IsReal() {
		return c[0].Text('g', digits)
	}
	return fmt.Sprintf("(%s + %sj)", c[0].Text('g', digits), c[1].Text('g', digits))
}
