package poly

import (
	"github.com/tuneinsight/ballpoly/ball"
	"github.com/tuneinsight/ballpoly/utils"
)

const (
	// karatsubaThreshold is the operand length under which the classical
	// product is used by the Karatsuba recursion.
	karatsubaThreshold = 12

	// mulKaratsubaThreshold is the operand length from which Mul and MulLow
	// switch to the Karatsuba strategy.
	mulKaratsubaThreshold = 24
)

// MulClassical sets p to a * b using the schoolbook product.
func (p *Poly) MulClassical(a, b *Poly, prec uint) *Poly {
	checkPrec("MulClassical", prec)
	return p.install(mulClassical(a.coeffs, b.coeffs, -1, prec))
}

// MulKaratsuba sets p to a * b using Karatsuba's divide and conquer product.
func (p *Poly) MulKaratsuba(a, b *Poly, prec uint) *Poly {
	checkPrec("MulKaratsuba", prec)
	return p.install(mulKaratsuba(a.coeffs, b.coeffs, prec))
}

// Mul sets p to a * b.
func (p *Poly) Mul(a, b *Poly, prec uint) *Poly {
	checkPrec("Mul", prec)
	if utils.Min(len(a.coeffs), len(b.coeffs)) < mulKaratsubaThreshold {
		return p.install(mulClassical(a.coeffs, b.coeffs, -1, prec))
	}
	return p.install(mulKaratsuba(a.coeffs, b.coeffs, prec))
}

// MulLowClassical sets p to a * b mod x^n using the schoolbook product.
func (p *Poly) MulLowClassical(a, b *Poly, n int, prec uint) *Poly {
	checkLen("MulLowClassical", n)
	checkPrec("MulLowClassical", prec)
	return p.install(mulClassical(a.coeffs, b.coeffs, n, prec))
}

// MulLowKaratsuba sets p to a * b mod x^n using Karatsuba's product on the truncated operands.
func (p *Poly) MulLowKaratsuba(a, b *Poly, n int, prec uint) *Poly {
	checkLen("MulLowKaratsuba", n)
	checkPrec("MulLowKaratsuba", prec)
	return p.install(mulLowKaratsuba(a.coeffs, b.coeffs, n, prec))
}

// MulLow sets p to a * b mod x^n.
func (p *Poly) MulLow(a, b *Poly, n int, prec uint) *Poly {
	checkLen("MulLow", n)
	checkPrec("MulLow", prec)
	return p.install(mulLow(a.coeffs, b.coeffs, n, prec))
}

// Sqr sets p to a^2.
func (p *Poly) Sqr(a *Poly, prec uint) *Poly {
	return p.Mul(a, a, prec)
}

// PowUint sets p to a^e.
func (p *Poly) PowUint(a *Poly, e uint64, prec uint) *Poly {
	checkPrec("PowUint", prec)
	if e == 0 {
		return p.install([]*ball.Ball{ball.NewInt64(1)})
	}
	r := []*ball.Ball{ball.NewInt64(1)}
	b := a.coeffs
	for e > 0 {
		if e&1 == 1 {
			r = mul(r, b, prec)
		}
		e >>= 1
		if e > 0 {
			b = mul(b, b, prec)
		}
	}
	return p.install(r)
}

func mul(a, b []*ball.Ball, prec uint) []*ball.Ball {
	if utils.Min(len(a), len(b)) < mulKaratsubaThreshold {
		return mulClassical(a, b, -1, prec)
	}
	return mulKaratsuba(a, b, prec)
}

func mulLow(a, b []*ball.Ball, n int, prec uint) []*ball.Ball {
	if utils.Min(utils.Min(len(a), len(b)), n) < mulKaratsubaThreshold {
		return mulClassical(a, b, n, prec)
	}
	return mulLowKaratsuba(a, b, n, prec)
}

// mulClassical returns a*b, truncated to n coefficients if n >= 0.
func mulClassical(a, b []*ball.Ball, n int, prec uint) []*ball.Ball {

	if len(a) == 0 || len(b) == 0 || n == 0 {
		return nil
	}

	m := len(a) + len(b) - 1
	if n >= 0 && n < m {
		m = n
	}

	res := make([]*ball.Ball, m)
	t := ball.New()

	for k := 0; k < m; k++ {
		acc := ball.New()
		for i := utils.Max(0, k-len(b)+1); i <= utils.Min(k, len(a)-1); i++ {
			acc.Add(acc, t.Mul(a[i], b[k-i], prec), prec)
		}
		res[k] = acc
	}

	return res
}

// mulKaratsuba returns a*b, recursing on halves until the operands are short.
func mulKaratsuba(a, b []*ball.Ball, prec uint) []*ball.Ball {

	if len(a) == 0 || len(b) == 0 {
		return nil
	}

	if utils.Min(len(a), len(b)) <= karatsubaThreshold {
		return mulClassical(a, b, -1, prec)
	}

	m := (utils.Max(len(a), len(b)) + 1) / 2

	a0, a1 := split(a, m)
	b0, b1 := split(b, m)

	// (a0 + a1 x^m)(b0 + b1 x^m) = z0 + (z1 - z0 - z2) x^m + z2 x^2m
	z0 := mulKaratsuba(a0, b0, prec)
	z2 := mulKaratsuba(a1, b1, prec)
	z1 := mulKaratsuba(addVec(a0, a1, prec), addVec(b0, b1, prec), prec)

	res := zeros(len(a) + len(b) - 1)

	addInto(res, 0, z0, prec)
	addInto(res, 2*m, z2, prec)

	// a0*b1 + a1*b0 is shorter than z1, whose extra coefficients only contain zero
	midLen := 0
	if len(b1) > 0 {
		midLen = len(a0) + len(b1) - 1
	}
	if len(a1) > 0 {
		midLen = utils.Max(midLen, len(a1)+len(b0)-1)
	}

	if midLen > 0 {
		mid := zeros(len(z1))
		addInto(mid, 0, z1, prec)
		subInto(mid, 0, z0, prec)
		subInto(mid, 0, z2, prec)
		addInto(res, m, mid[:utils.Min(midLen, len(mid))], prec)
	}

	return res
}

// mulLowKaratsuba returns a*b mod x^n.
func mulLowKaratsuba(a, b []*ball.Ball, n int, prec uint) []*ball.Ball {
	if n == 0 {
		return nil
	}
	res := mulKaratsuba(a[:utils.Min(n, len(a))], b[:utils.Min(n, len(b))], prec)
	if len(res) > n {
		res = res[:n]
	}
	return res
}

func split(a []*ball.Ball, m int) (lo, hi []*ball.Ball) {
	if len(a) <= m {
		return trimVec(a), nil
	}
	return trimVec(a[:m]), a[m:]
}
