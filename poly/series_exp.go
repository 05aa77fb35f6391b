package poly

import (
	"fmt"
	"math/big"

	"github.com/tuneinsight/ballpoly/ball"
	"github.com/tuneinsight/ballpoly/utils"
)

// expSeriesNewtonThreshold is the length from which the exponential series is computed by Newton iteration.
const expSeriesNewtonThreshold = 64

// ExpSeries sets p to exp(h) mod x^n.
func (p *Poly) ExpSeries(h *Poly, n int, prec uint) *Poly {
	checkLen("ExpSeries", n)
	checkPrec("ExpSeries", prec)
	return p.install(expSeries(h.coeffs, n, prec))
}

// LogSeries sets p to log(a) mod x^n, on the principal branch for the constant term.
// It returns ErrNotInvertible if the constant term of a may be zero and ErrDomain if
// its logarithm cannot be bounded, for instance when it straddles the branch cut.
func (p *Poly) LogSeries(a *Poly, n int, prec uint) (err error) {
	checkLen("LogSeries", n)
	checkPrec("LogSeries", prec)
	res, err := logSeries(a.coeffs, n, prec)
	if err != nil {
		return fmt.Errorf("cannot LogSeries: %w", err)
	}
	p.install(res)
	return
}

// SqrtSeries sets p to sqrt(a) mod x^n, on the principal branch for the constant term.
// It returns ErrNotInvertible if the constant term of a may be zero and ErrDomain if
// its square root cannot be bounded away from zero, for instance when it straddles the branch cut.
func (p *Poly) SqrtSeries(a *Poly, n int, prec uint) (err error) {
	checkLen("SqrtSeries", n)
	checkPrec("SqrtSeries", prec)
	res, err := sqrtSeries(a.coeffs, n, prec)
	if err != nil {
		return fmt.Errorf("cannot SqrtSeries: %w", err)
	}
	p.install(res)
	return
}

// RsqrtSeries sets p to 1/sqrt(a) mod x^n.
func (p *Poly) RsqrtSeries(a *Poly, n int, prec uint) (err error) {
	checkLen("RsqrtSeries", n)
	checkPrec("RsqrtSeries", prec)
	res, err := sqrtSeries(a.coeffs, n, prec)
	if err == nil {
		res, err = invSeries(res, n, prec)
	}
	if err != nil {
		return fmt.Errorf("cannot RsqrtSeries: %w", err)
	}
	p.install(res)
	return
}

// PowUintSeries sets p to a^e mod x^n.
func (p *Poly) PowUintSeries(a *Poly, e uint64, n int, prec uint) *Poly {
	checkLen("PowUintSeries", n)
	checkPrec("PowUintSeries", prec)
	return p.install(powUintSeries(a.coeffs, e, n, prec))
}

// PowSeries sets p to a^e = exp(e log(a)) mod x^n.
// Small non-negative exact integer exponents are handled by repeated squaring
// and put no condition on a, otherwise it fails as LogSeries does.
func (p *Poly) PowSeries(a *Poly, e *ball.Ball, n int, prec uint) (err error) {
	checkLen("PowSeries", n)
	checkPrec("PowSeries", prec)

	if k, ok := smallUint(e); ok {
		p.install(powUintSeries(a.coeffs, k, n, prec))
		return
	}

	l, err := logSeries(a.coeffs, n, prec)
	if err != nil {
		return fmt.Errorf("cannot PowSeries: %w", err)
	}

	p.install(expSeries(scalarMulVec(l, e, prec), n, prec))
	return
}

// smallUint returns e as an uint64 if it is an exact integer in [0, 2^20).
func smallUint(e *ball.Ball) (uint64, bool) {
	if !e.IsExact() || !e.IsReal() || !e.Real().IsInt() {
		return 0, false
	}
	k, acc := e.Real().Uint64()
	if acc != big.Exact || k >= 1<<20 {
		return 0, false
	}
	return k, true
}

func powUintSeries(a []*ball.Ball, e uint64, n int, prec uint) []*ball.Ball {

	if n == 0 {
		return nil
	}

	r := []*ball.Ball{ball.NewInt64(1)}
	b := a[:utils.Min(n, len(a))]
	for e > 0 {
		if e&1 == 1 {
			r = mulLow(r, b, n, prec)
		}
		e >>= 1
		if e > 0 {
			b = mulLow(b, b, n, prec)
		}
	}

	return r
}

func expSeries(h []*ball.Ball, n int, prec uint) []*ball.Ball {

	if n == 0 {
		return nil
	}

	if len(h) == 0 {
		return []*ball.Ball{ball.NewInt64(1)}
	}

	// exp(h) = exp(h_0) exp(h - h_0)
	e0 := ball.New().Exp(h[0], prec)

	hc := append([]*ball.Ball{ball.New()}, h[1:utils.Min(n, len(h))]...)

	var b []*ball.Ball
	if n < expSeriesNewtonThreshold {
		b = expSeriesBasecase(hc, n, prec)
	} else {
		b = expSeriesNewton(hc, n, prec)
	}

	if h[0].IsExactZero() {
		return b
	}

	return scalarMulVec(b, e0, prec)
}

// expSeriesBasecase returns exp(h) mod x^n for h(0) = 0 by the recurrence k b_k = sum_{j=1}^{k} j h_j b_{k-j}.
func expSeriesBasecase(h []*ball.Ball, n int, prec uint) []*ball.Ball {

	b := make([]*ball.Ball, n)
	b[0] = ball.NewInt64(1)

	// jh[j] = j h_j
	jh := derivative(h, prec)

	t := ball.New()
	for k := 1; k < n; k++ {
		s := ball.New()
		for j := 1; j <= utils.Min(k, len(jh)); j++ {
			s.Add(s, t.Mul(jh[j-1], b[k-j], prec), prec)
		}
		b[k] = s.DivInt64(s, int64(k), prec)
	}

	return b
}

// expSeriesNewton returns exp(h) mod x^n for h(0) = 0 by the Newton iteration b <- b (1 + h - log(b)).
func expSeriesNewton(h []*ball.Ball, n int, prec uint) []*ball.Ball {

	if n < expSeriesNewtonThreshold {
		return expSeriesBasecase(h, n, prec)
	}

	m := (n + 1) / 2
	b := expSeriesNewton(h[:utils.Min(m, len(h))], m, prec)

	// the first m coefficients of h - log(b) are zero
	l, err := logSeries(b, n, prec)
	if err != nil {
		// b(0) = 1
		panic(err)
	}

	e := subVec(h[:utils.Min(n, len(h))], l, prec)
	if len(e) <= m {
		return b
	}

	d := mulLow(b, e[m:], n-m, prec)

	res := make([]*ball.Ball, n)
	for i := range res {
		switch {
		case i < len(b):
			res[i] = b[i]
		case i < m:
			res[i] = ball.New()
		case i-m < len(d):
			res[i] = d[i-m]
		default:
			res[i] = ball.New()
		}
	}

	return res
}

func logSeries(a []*ball.Ball, n int, prec uint) ([]*ball.Ball, error) {

	res, err := logSeriesTail(a, n, prec)
	if err != nil || n == 0 {
		return nil, err
	}

	res[0] = ball.New().Log(a[0], prec)
	if !res[0].IsFinite() {
		return nil, fmt.Errorf("logarithm of the constant term %s: %w", a[0].Format(8), ErrDomain)
	}

	return res, nil
}

// logSeriesTail returns log(a) - log(a(0)) mod x^n, that is the integral of a'/a,
// which does not depend on the choice of a branch of the logarithm.
func logSeriesTail(a []*ball.Ball, n int, prec uint) ([]*ball.Ball, error) {

	if len(a) == 0 || !a[0].IsNonZero() {
		return nil, ErrNotInvertible
	}

	if n == 0 {
		return nil, nil
	}

	if n == 1 {
		return []*ball.Ball{ball.New()}, nil
	}

	inv, err := invSeries(a, n-1, prec)
	if err != nil {
		return nil, err
	}

	q := mulLow(derivative(a[:utils.Min(n, len(a))], prec), inv, n-1, prec)

	res := integral(q, prec)
	if len(res) == 0 {
		res = []*ball.Ball{ball.New()}
	}

	return res, nil
}

// sqrtSeriesRecurrenceThreshold is the length from which the square root series is computed as exp(log(a)/2).
const sqrtSeriesRecurrenceThreshold = 64

func sqrtSeries(a []*ball.Ball, n int, prec uint) ([]*ball.Ball, error) {

	if len(a) == 0 || !a[0].IsNonZero() {
		return nil, ErrNotInvertible
	}

	s0 := ball.New().Sqrt(a[0], prec)
	if !s0.IsNonZero() {
		return nil, fmt.Errorf("square root of the constant term %s: %w", a[0].Format(8), ErrDomain)
	}

	if n == 0 {
		return nil, nil
	}

	if n >= sqrtSeriesRecurrenceThreshold {
		l, err := logSeries(a, n, prec)
		if err != nil {
			return nil, err
		}
		return expSeries(scalarMulVec(l, ball.NewFloat64(0.5), prec), n, prec), nil
	}

	// 2 b_0 b_k = a_k - sum_{j=1}^{k-1} b_j b_{k-j}
	b := make([]*ball.Ball, n)
	b[0] = s0

	inv := ball.New().Mul2Exp(s0, 1)
	inv.Inv(inv, prec)

	t := ball.New()
	for k := 1; k < n; k++ {
		s := ball.New()
		if k < len(a) {
			s.Set(a[k])
		}
		for j := 1; j < k; j++ {
			s.Sub(s, t.Mul(b[j], b[k-j], prec), prec)
		}
		b[k] = s.Mul(s, inv, prec)
	}

	return b, nil
}
