// Package poly implements polynomials and truncated power series with complex ball coefficients.
//
// Every operation returns a polynomial whose coefficients contain the exact coefficients
// of the result of the operation applied to any polynomial contained in its inputs.
// Operations that can fail (division by a ball that may contain zero, non-contracting
// root inclusion, ...) return an error and leave their receiver untouched.
//
// Multiplication, evaluation, interpolation, Taylor shift, composition and reversion
// are each implemented by several interchangeable algorithms, which are exported
// alongside a dispatcher choosing among them by size.
package poly

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/tuneinsight/ballpoly/ball"
)

// Poly is a polynomial with complex ball coefficients, stored in ascending degree order.
// The coefficients are owned by the polynomial.
//
// A Poly is normalized: its last coefficient, if any, is not the exact zero ball.
type Poly struct {
	coeffs []*ball.Ball
}

// New returns the zero polynomial.
func New() *Poly {
	return new(Poly)
}

// NewWithCap returns the zero polynomial with room for n coefficients.
func NewWithCap(n int) *Poly {
	checkLen("NewWithCap", n)
	return &Poly{coeffs: make([]*ball.Ball, 0, n)}
}

// NewFromBalls returns the polynomial with coefficients a copy of coeffs.
func NewFromBalls(coeffs []*ball.Ball) *Poly {
	p := &Poly{coeffs: cloneBalls(coeffs)}
	p.Normalize()
	return p
}

// NewFromInt64s returns the exact polynomial sum coeffs[i] x^i.
func NewFromInt64s(coeffs ...int64) *Poly {
	p := NewWithCap(len(coeffs))
	for _, c := range coeffs {
		p.coeffs = append(p.coeffs, ball.NewInt64(c))
	}
	p.Normalize()
	return p
}

// SetBigInts sets p to a polynomial containing sum coeffs[i] x^i, with midpoints rounded to prec bits.
func (p *Poly) SetBigInts(coeffs []*big.Int, prec uint) *Poly {
	res := make([]*ball.Ball, len(coeffs))
	for i := range coeffs {
		res[i] = ball.NewBigInt(coeffs[i], prec)
	}
	return p.install(res)
}

// SetRats sets p to a polynomial containing sum coeffs[i] x^i, with midpoints rounded to prec bits.
func (p *Poly) SetRats(coeffs []*big.Rat, prec uint) *Poly {
	res := make([]*ball.Ball, len(coeffs))
	for i := range coeffs {
		res[i] = ball.NewRat(coeffs[i], nil, prec)
	}
	return p.install(res)
}

// SetComplex128s sets p to the exact polynomial sum coeffs[i] x^i.
func (p *Poly) SetComplex128s(coeffs []complex128) *Poly {
	res := make([]*ball.Ball, len(coeffs))
	for i := range coeffs {
		res[i] = ball.NewComplex128(coeffs[i])
	}
	return p.install(res)
}

// Set sets p to a copy of a.
func (p *Poly) Set(a *Poly) *Poly {
	if p != a {
		p.coeffs = cloneBalls(a.coeffs)
	}
	return p
}

// Copy returns a deep copy of p.
func (p *Poly) Copy() *Poly {
	return New().Set(p)
}

// Len returns the number of coefficients of p.
func (p *Poly) Len() int {
	return len(p.coeffs)
}

// Cap returns the number of coefficients p can hold without reallocation.
func (p *Poly) Cap() int {
	return cap(p.coeffs)
}

// Degree returns the degree of p, or -1 for the zero polynomial.
func (p *Poly) Degree() int {
	return len(p.coeffs) - 1
}

// IsZero returns true if p is the zero polynomial.
func (p *Poly) IsZero() bool {
	return len(p.coeffs) == 0
}

// IsReal returns true if every coefficient of p has a real midpoint.
func (p *Poly) IsReal() bool {
	for _, c := range p.coeffs {
		if !c.IsReal() {
			return false
		}
	}
	return true
}

// Fit ensures that p can hold n coefficients without reallocation.
func (p *Poly) Fit(n int) {
	checkLen("Fit", n)
	if cap(p.coeffs) < n {
		coeffs := make([]*ball.Ball, len(p.coeffs), n)
		copy(coeffs, p.coeffs)
		p.coeffs = coeffs
	}
}

// Coeff returns a copy of the i-th coefficient of p, which is the exact zero ball past the length of p.
func (p *Poly) Coeff(i int) *ball.Ball {
	checkLen("Coeff", i)
	if i >= len(p.coeffs) {
		return ball.New()
	}
	return p.coeffs[i].Clone()
}

// Coeffs returns a copy of the coefficients of p.
func (p *Poly) Coeffs() []*ball.Ball {
	return cloneBalls(p.coeffs)
}

// SetCoeff sets the i-th coefficient of p to a copy of b, extending p with exact zeros if needed.
func (p *Poly) SetCoeff(i int, b *ball.Ball) *Poly {
	checkLen("SetCoeff", i)
	if i >= len(p.coeffs) {
		p.Fit(i + 1)
		for len(p.coeffs) <= i {
			p.coeffs = append(p.coeffs, ball.New())
		}
	}
	p.coeffs[i] = b.Clone()
	p.Normalize()
	return p
}

// Normalize removes the trailing coefficients of p that are the exact zero ball.
// Coefficients which only contain zero are kept.
func (p *Poly) Normalize() {
	n := len(p.coeffs)
	for n > 0 && p.coeffs[n-1].IsExactZero() {
		p.coeffs[n-1] = nil
		n--
	}
	p.coeffs = p.coeffs[:n]
}

// Truncate drops the coefficients of p of degree n and above.
func (p *Poly) Truncate(n int) *Poly {
	checkLen("Truncate", n)
	if n < len(p.coeffs) {
		for i := n; i < len(p.coeffs); i++ {
			p.coeffs[i] = nil
		}
		p.coeffs = p.coeffs[:n]
		p.Normalize()
	}
	return p
}

// ShiftRight sets p to a divided by x^n, discarding the remainder.
func (p *Poly) ShiftRight(a *Poly, n int) *Poly {
	checkLen("ShiftRight", n)
	if n >= len(a.coeffs) {
		p.coeffs = nil
		return p
	}
	return p.install(cloneBalls(a.coeffs[n:]))
}

// ShiftLeft sets p to a multiplied by x^n.
func (p *Poly) ShiftLeft(a *Poly, n int) *Poly {
	checkLen("ShiftLeft", n)
	if len(a.coeffs) == 0 {
		p.coeffs = nil
		return p
	}
	res := make([]*ball.Ball, n+len(a.coeffs))
	for i := 0; i < n; i++ {
		res[i] = ball.New()
	}
	for i, c := range a.coeffs {
		res[n+i] = c.Clone()
	}
	return p.install(res)
}

// Equal returns true if p and q have the same length and coefficients with the same
// midpoint and radius as numbers. Midpoint precisions are not compared, unlike in Digest.
func (p *Poly) Equal(q *Poly) bool {
	if len(p.coeffs) != len(q.coeffs) {
		return false
	}
	for i := range p.coeffs {
		if !p.coeffs[i].Equal(q.coeffs[i]) {
			return false
		}
	}
	return true
}

// Contains returns true if every coefficient of p contains the corresponding coefficient of q.
// Missing coefficients are treated as exact zeros.
func (p *Poly) Contains(q *Poly) bool {
	for i := 0; i < max(len(p.coeffs), len(q.coeffs)); i++ {
		if !p.coeff(i).Contains(q.coeff(i)) {
			return false
		}
	}
	return true
}

// Overlaps returns true if every coefficient of p overlaps the corresponding coefficient of q.
// Missing coefficients are treated as exact zeros.
func (p *Poly) Overlaps(q *Poly) bool {
	for i := 0; i < max(len(p.coeffs), len(q.coeffs)); i++ {
		if !p.coeff(i).Overlaps(q.coeff(i)) {
			return false
		}
	}
	return true
}

// ContainsBigInts returns true if p contains the integer polynomial sum coeffs[i] x^i.
func (p *Poly) ContainsBigInts(coeffs []*big.Int) bool {
	for i := 0; i < max(len(p.coeffs), len(coeffs)); i++ {
		c := new(big.Int)
		if i < len(coeffs) {
			c = coeffs[i]
		}
		if !p.coeff(i).ContainsBigInt(c) {
			return false
		}
	}
	return true
}

// ContainsRats returns true if p contains the rational polynomial sum coeffs[i] x^i.
func (p *Poly) ContainsRats(coeffs []*big.Rat) bool {
	for i := 0; i < max(len(p.coeffs), len(coeffs)); i++ {
		c := new(big.Rat)
		if i < len(coeffs) {
			c = coeffs[i]
		}
		if !p.coeff(i).ContainsRat(c, nil) {
			return false
		}
	}
	return true
}

// UniqueBigInts returns the unique integer polynomial contained in p.
// It returns ErrAmbiguous if a coefficient of p contains zero or several integers.
func (p *Poly) UniqueBigInts() (coeffs []*big.Int, err error) {
	coeffs = make([]*big.Int, len(p.coeffs))
	for i, c := range p.coeffs {
		n, ok := c.UniqueInt()
		if !ok {
			return nil, fmt.Errorf("cannot UniqueBigInts: coefficient %d = %s: %w", i, c.Format(8), ErrAmbiguous)
		}
		coeffs[i] = n
	}
	return
}

// String returns a representation of p with 16 significant digits.
func (p *Poly) String() string {
	return p.Format(16)
}

// Format returns a representation of p with the given number of significant digits
// for the midpoints of its coefficients.
func (p *Poly) Format(digits int) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, c := range p.coeffs {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(c.Format(digits))
	}
	sb.WriteByte(']')
	return sb.String()
}

// coeff returns the i-th coefficient of p without copy, or a fresh exact zero past its length.
// The returned ball must not be used as a receiver.
func (p *Poly) coeff(i int) *ball.Ball {
	if i < len(p.coeffs) {
		return p.coeffs[i]
	}
	return ball.New()
}

// install replaces the coefficients of p by res and normalizes p.
func (p *Poly) install(res []*ball.Ball) *Poly {
	p.coeffs = res
	p.Normalize()
	return p
}

// head returns the first n coefficients of p without copy, padded with exact zeros.
func (p *Poly) head(n int) []*ball.Ball {
	if n <= len(p.coeffs) {
		return p.coeffs[:n]
	}
	res := make([]*ball.Ball, n)
	copy(res, p.coeffs)
	for i := len(p.coeffs); i < n; i++ {
		res[i] = ball.New()
	}
	return res
}

func cloneBalls(a []*ball.Ball) []*ball.Ball {
	if len(a) == 0 {
		return nil
	}
	res := make([]*ball.Ball, len(a))
	for i := range a {
		res[i] = a[i].Clone()
	}
	return res
}

func zeros(n int) []*ball.Ball {
	res := make([]*ball.Ball, n)
	for i := range res {
		res[i] = ball.New()
	}
	return res
}

func checkLen(op string, n int) {
	if n < 0 {
		panic(fmt.Errorf("cannot %s: negative length or index %d", op, n))
	}
}

func checkPrec(op string, prec uint) {
	if prec == 0 {
		panic(fmt.Errorf("cannot %s: precision must be positive", op))
	}
}
