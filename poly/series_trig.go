package poly

import (
	"fmt"

	"github.com/tuneinsight/ballpoly/ball"
	"github.com/tuneinsight/ballpoly/utils"
)

// SinCosSeries sets s to sin(h) mod x^n and c to cos(h) mod x^n.
// Both are obtained from one coupled recurrence on h - h(0), then rotated by sin(h(0)) and cos(h(0)).
func SinCosSeries(s, c, h *Poly, n int, prec uint) {
	checkLen("SinCosSeries", n)
	checkPrec("SinCosSeries", prec)
	if s == c {
		panic(fmt.Errorf("cannot SinCosSeries: s and c must be distinct"))
	}
	ss, cs := sinCosSeries(h.coeffs, n, false, prec)
	s.install(ss)
	c.install(cs)
}

// SinhCoshSeries sets s to sinh(h) mod x^n and c to cosh(h) mod x^n.
func SinhCoshSeries(s, c, h *Poly, n int, prec uint) {
	checkLen("SinhCoshSeries", n)
	checkPrec("SinhCoshSeries", prec)
	if s == c {
		panic(fmt.Errorf("cannot SinhCoshSeries: s and c must be distinct"))
	}
	ss, cs := sinCosSeries(h.coeffs, n, true, prec)
	s.install(ss)
	c.install(cs)
}

// SinSeries sets p to sin(h) mod x^n.
func (p *Poly) SinSeries(h *Poly, n int, prec uint) *Poly {
	SinCosSeries(p, New(), h, n, prec)
	return p
}

// CosSeries sets p to cos(h) mod x^n.
func (p *Poly) CosSeries(h *Poly, n int, prec uint) *Poly {
	SinCosSeries(New(), p, h, n, prec)
	return p
}

// SinhSeries sets p to sinh(h) mod x^n.
func (p *Poly) SinhSeries(h *Poly, n int, prec uint) *Poly {
	SinhCoshSeries(p, New(), h, n, prec)
	return p
}

// CoshSeries sets p to cosh(h) mod x^n.
func (p *Poly) CoshSeries(h *Poly, n int, prec uint) *Poly {
	SinhCoshSeries(New(), p, h, n, prec)
	return p
}

// TanSeries sets p to tan(h) mod x^n.
// It returns ErrNotInvertible if cos(h(0)) may be zero.
func (p *Poly) TanSeries(h *Poly, n int, prec uint) (err error) {
	checkLen("TanSeries", n)
	checkPrec("TanSeries", prec)
	s, c := sinCosSeries(h.coeffs, n, false, prec)
	inv, err := invSeries(c, n, prec)
	if err != nil {
		return fmt.Errorf("cannot TanSeries: %w", err)
	}
	p.install(mulLow(s, inv, n, prec))
	return
}

// TanhSeries sets p to tanh(h) mod x^n.
// It returns ErrNotInvertible if cosh(h(0)) may be zero.
func (p *Poly) TanhSeries(h *Poly, n int, prec uint) (err error) {
	checkLen("TanhSeries", n)
	checkPrec("TanhSeries", prec)
	s, c := sinCosSeries(h.coeffs, n, true, prec)
	inv, err := invSeries(c, n, prec)
	if err != nil {
		return fmt.Errorf("cannot TanhSeries: %w", err)
	}
	p.install(mulLow(s, inv, n, prec))
	return
}

// sinCosSeries returns sin(h), cos(h) mod x^n, or sinh(h), cosh(h) if hyperbolic is true.
func sinCosSeries(h []*ball.Ball, n int, hyperbolic bool, prec uint) (s, c []*ball.Ball) {

	if n == 0 {
		return nil, nil
	}

	h0 := ball.New()
	if len(h) > 0 {
		h0 = h[0]
	}

	s0, c0 := ball.New(), ball.New()
	if hyperbolic {
		ball.SinhCosh(s0, c0, h0, prec)
	} else {
		ball.SinCos(s0, c0, h0, prec)
	}

	// S = sin(h - h0), C = cos(h - h0): k S_k = sum_j j h_j C_{k-j}, k C_k = -/+ sum_j j h_j S_{k-j}
	jh := derivative(h[:utils.Min(n, len(h))], prec)

	S := make([]*ball.Ball, n)
	C := make([]*ball.Ball, n)
	S[0], C[0] = ball.New(), ball.NewInt64(1)

	t := ball.New()
	for k := 1; k < n; k++ {
		sk, ck := ball.New(), ball.New()
		for j := 1; j <= utils.Min(k, len(jh)); j++ {
			sk.Add(sk, t.Mul(jh[j-1], C[k-j], prec), prec)
			ck.Add(ck, t.Mul(jh[j-1], S[k-j], prec), prec)
		}
		S[k] = sk.DivInt64(sk, int64(k), prec)
		C[k] = ck.DivInt64(ck, int64(k), prec)
		if !hyperbolic {
			C[k].Neg(C[k])
		}
	}

	if h0.IsExactZero() {
		return S, C
	}

	// sin(h0 + u) = s0 cos(u) + c0 sin(u), cos(h0 + u) = c0 cos(u) - s0 sin(u)
	// sinh(h0 + u) = s0 cosh(u) + c0 sinh(u), cosh(h0 + u) = c0 cosh(u) + s0 sinh(u)
	s = addVec(scalarMulVec(C, s0, prec), scalarMulVec(S, c0, prec), prec)
	if hyperbolic {
		c = addVec(scalarMulVec(C, c0, prec), scalarMulVec(S, s0, prec), prec)
	} else {
		c = subVec(scalarMulVec(C, c0, prec), scalarMulVec(S, s0, prec), prec)
	}

	return
}
