package poly

import (
	"fmt"
	"math"
	"math/big"

	"github.com/tuneinsight/ballpoly/ball"
	"github.com/tuneinsight/ballpoly/utils"
)

// maxPolylogTerms bounds the number of terms of the defining series summed by PolylogSeries.
const maxPolylogTerms = 1 << 16

// PolylogSeries sets p to the polylogarithm Li_s(z) = sum_{k>=1} z^k k^(-s) mod x^n,
// as a power series in s. z must satisfy |z| < 1 with enough margin for the
// defining series to be summed with at most 2^16 terms (ErrDomain).
func (p *Poly) PolylogSeries(s *Poly, z *ball.Ball, n int, prec uint) (err error) {
	checkLen("PolylogSeries", n)
	checkPrec("PolylogSeries", prec)

	jet := func(s0 *ball.Ball, n int, prec uint) ([]*ball.Ball, error) {
		return polylogJet(s0, z, n, prec)
	}

	res, err := composeJet(s.coeffs, n, jet, prec)
	if err != nil {
		return fmt.Errorf("cannot PolylogSeries: %w", err)
	}

	p.install(res)
	return
}

// polylogJet returns the first n Taylor coefficients of Li_(s0+x)(z), that is
// sum_{k>=1} z^k k^(-s0) (-log k)^j / j! for the j-th coefficient.
func polylogJet(s0, z *ball.Ball, n int, prec uint) ([]*ball.Ball, error) {

	if !z.IsFinite() {
		return nil, fmt.Errorf("z is not finite: %w", ErrDomain)
	}

	zm, _ := z.AbsUpper().Float64()
	if zm >= 1 {
		return nil, fmt.Errorf("|z| may be larger than or equal to 1: %w", ErrDomain)
	}

	// On the disc |s - s0| <= 1, |k^(-s)| <= k^d with d = max(0, 1 + rad - Re(s0)).
	sigma, _ := s0.Real().Float64()
	rad, _ := s0.Rad().Float64()
	d := math.Max(0, math.Ceil(1+rad-sigma))

	K, ok := polylogTerms(zm, d, prec)
	if !ok {
		return nil, fmt.Errorf("series in z converges too slowly: %w", ErrDomain)
	}

	res := zeros(n)
	if z.IsExactZero() {
		return res, nil
	}

	zk := ball.NewInt64(1)
	for k := 1; k < K; k++ {
		zk.Mul(zk, z, prec)
		if k == 1 {
			// 1^(-s) = 1
			addInto(res, 0, []*ball.Ball{zk.Clone()}, prec)
			continue
		}
		addInto(res, 0, scalarMulVec(powerJet(ball.NewInt64(int64(k)), s0, n, prec), zk, prec), prec)
	}

	// sum_{k>=K} |z|^k k^d <= |z|^K K^d / (1 - |z| (1 + 1/K)^d)
	zb := magBall(z.AbsUpper())
	tail := ball.New().PowUint(zb, uint64(K), prec)
	tail.Mul(tail, ball.New().PowUint(ball.NewInt64(int64(K)), uint64(d), prec), prec)

	ratio := ball.NewRat(new(big.Rat).SetFrac64(int64(K+1), int64(K)), nil, prec)
	ratio.PowUint(ratio, uint64(d), prec).Mul(ratio, zb, prec)
	den := ball.New().Sub(ball.NewInt64(1), ratio, prec)
	if !den.IsNonZero() || den.Real().Sign() <= 0 {
		return nil, fmt.Errorf("series in z converges too slowly: %w", ErrDomain)
	}

	bound := tail.Div(tail, den, prec).AbsUpper()
	if bound.IsInf() {
		return nil, fmt.Errorf("cannot bound the tail: %w", ErrDomain)
	}

	addCauchyError(res, bound, 0)

	return res, nil
}

// polylogTerms returns the number of terms K such that |z|^K K^d is about 2^-(prec+8),
// and false if no such K below maxPolylogTerms exists.
func polylogTerms(zm, d float64, prec uint) (int, bool) {

	if zm == 0 {
		return 2, true
	}

	lz := math.Log2(zm)
	target := -float64(prec) - 8

	K := utils.Max(2, int(d)+2)
	for ; K < maxPolylogTerms; K++ {
		if float64(K)*lz+d*math.Log2(float64(K)) < target && zm*math.Pow(1+1/float64(K), d) < 0.75 {
			return K, true
		}
	}

	return 0, false
}
