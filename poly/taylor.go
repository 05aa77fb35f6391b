package poly

import (
	"math/big"

	"github.com/tuneinsight/ballpoly/ball"
	"github.com/tuneinsight/ballpoly/utils/bignum"
)

const (
	// taylorShiftHornerThreshold is the length under which TaylorShift uses Horner's scheme.
	taylorShiftHornerThreshold = 50

	// taylorShiftConvolutionThreshold is the length from which TaylorShift uses the convolution.
	taylorShiftConvolutionThreshold = 500

	// taylorShiftLeaf is the length under which the divide and conquer shift falls back to Horner's scheme.
	taylorShiftLeaf = 16
)

// TaylorShiftHorner sets p to a(x + c) using Horner's scheme.
func (p *Poly) TaylorShiftHorner(a *Poly, c *ball.Ball, prec uint) *Poly {
	checkPrec("TaylorShiftHorner", prec)
	return p.install(taylorShiftHorner(a.coeffs, c, prec))
}

// TaylorShiftDivConquer sets p to a(x + c) by splitting a into a_lo + x^m a_hi
// and recombining the shifted halves with the binomial expansion of (x + c)^m.
func (p *Poly) TaylorShiftDivConquer(a *Poly, c *ball.Ball, prec uint) *Poly {
	checkPrec("TaylorShiftDivConquer", prec)
	return p.install(taylorShiftDivConquer(a.coeffs, c, prec))
}

// TaylorShiftConvolution sets p to a(x + c) with a single polynomial product:
// the k-th coefficient of a(x + c) is (1/k!) sum_{i>=k} a_i i! c^(i-k)/(i-k)!.
func (p *Poly) TaylorShiftConvolution(a *Poly, c *ball.Ball, prec uint) *Poly {
	checkPrec("TaylorShiftConvolution", prec)
	return p.install(taylorShiftConvolution(a.coeffs, c, prec))
}

// TaylorShift sets p to a(x + c).
func (p *Poly) TaylorShift(a *Poly, c *ball.Ball, prec uint) *Poly {
	checkPrec("TaylorShift", prec)
	return p.install(taylorShift(a.coeffs, c, prec))
}

func taylorShift(a []*ball.Ball, c *ball.Ball, prec uint) []*ball.Ball {
	switch {
	case len(a) < taylorShiftHornerThreshold:
		return taylorShiftHorner(a, c, prec)
	case len(a) < taylorShiftConvolutionThreshold:
		return taylorShiftDivConquer(a, c, prec)
	default:
		return taylorShiftConvolution(a, c, prec)
	}
}

func taylorShiftHorner(a []*ball.Ball, c *ball.Ball, prec uint) []*ball.Ball {

	res := cloneBalls(a)

	if c.IsExactZero() {
		return res
	}

	n := len(res)
	t := ball.New()
	for i := n - 2; i >= 0; i-- {
		for j := i; j < n-1; j++ {
			res[j].Add(res[j], t.Mul(c, res[j+1], prec), prec)
		}
	}

	return res
}

func taylorShiftDivConquer(a []*ball.Ball, c *ball.Ball, prec uint) []*ball.Ball {

	if len(a) < taylorShiftLeaf || c.IsExactZero() {
		return taylorShiftHorner(a, c, prec)
	}

	m := len(a) / 2

	lo := taylorShiftDivConquer(a[:m], c, prec)
	hi := taylorShiftDivConquer(a[m:], c, prec)

	res := zeros(len(a))
	addInto(res, 0, lo, prec)
	addInto(res, 0, mul(binomialPower(c, m, prec), hi, prec), prec)

	return res
}

// binomialPower returns (x + c)^m.
func binomialPower(c *ball.Ball, m int, prec uint) []*ball.Ball {

	res := make([]*ball.Ball, m+1)

	// c^(m-k) C(m, k)
	cpow := ball.NewInt64(1)
	for k := m; k >= 0; k-- {
		res[k] = ball.New().MulBigInt(cpow, bignum.Binomial(m, k), prec)
		if k > 0 {
			cpow.Mul(cpow, c, prec)
		}
	}

	return res
}

func taylorShiftConvolution(a []*ball.Ball, c *ball.Ball, prec uint) []*ball.Ball {

	n := len(a)

	if n < 2 || c.IsExactZero() {
		return cloneBalls(a)
	}

	wp := prec + uint(n) + 8

	// u_i = a_{n-1-i} (n-1-i)!, v_j = c^j / j!
	u := make([]*ball.Ball, n)
	v := make([]*ball.Ball, n)

	f := big.NewInt(1)
	for i := 0; i < n; i++ {
		if i > 0 {
			f.Mul(f, big.NewInt(int64(i)))
		}
		u[n-1-i] = ball.New().MulBigInt(a[i], f, wp)
	}

	v[0] = ball.NewInt64(1)
	for j := 1; j < n; j++ {
		v[j] = ball.New().Mul(v[j-1], c, wp)
		v[j].DivInt64(v[j], int64(j), wp)
	}

	w := mulLow(u, v, n, wp)

	res := make([]*ball.Ball, n)
	f.SetInt64(1)
	for k := 0; k < n; k++ {
		if k > 0 {
			f.Mul(f, big.NewInt(int64(k)))
		}
		if i := n - 1 - k; i < len(w) {
			res[k] = ball.New().DivBigInt(w[i], f, prec)
		} else {
			res[k] = ball.New()
		}
	}

	return res
}
