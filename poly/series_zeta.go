package poly

import (
	"fmt"
	"math"
	"math/big"

	"github.com/tuneinsight/ballpoly/ball"
	"github.com/tuneinsight/ballpoly/utils"
	"github.com/tuneinsight/ballpoly/utils/bignum"
)

// zetaChunk is the number of terms of the power sum of a single task of ZetaSeriesParallel.
const zetaChunk = 16

// ZetaSeries sets p to the Hurwitz zeta function zeta(s, a) = sum_{k>=0} (a + k)^(-s) mod x^n,
// as a power series in s. If deflate is true, the pole is removed and p is set to
// zeta(s, a) - 1/(s - 1), which is entire in s.
// a must lie in the right half plane (ErrDomain). Without deflation, it returns
// ErrNotInvertible if s(0) may be 1.
func (p *Poly) ZetaSeries(s *Poly, a *ball.Ball, deflate bool, n int, prec uint) (err error) {
	checkLen("ZetaSeries", n)
	checkPrec("ZetaSeries", prec)
	return p.zetaSeries("ZetaSeries", s, a, deflate, n, 1, prec)
}

// ZetaSeriesParallel is ZetaSeries with the power sum split among workers goroutines.
// The result does not depend on the number of workers.
func (p *Poly) ZetaSeriesParallel(s *Poly, a *ball.Ball, deflate bool, n, workers int, prec uint) (err error) {
	checkLen("ZetaSeriesParallel", n)
	checkPrec("ZetaSeriesParallel", prec)
	checkWorkers("ZetaSeriesParallel", workers)
	return p.zetaSeries("ZetaSeriesParallel", s, a, deflate, n, workers, prec)
}

func (p *Poly) zetaSeries(op string, s *Poly, a *ball.Ball, deflate bool, n, workers int, prec uint) (err error) {

	jet := func(s0 *ball.Ball, n int, prec uint) ([]*ball.Ball, error) {
		return zetaJet(s0, a, deflate, n, workers, prec)
	}

	res, err := composeJet(s.coeffs, n, jet, prec)
	if err != nil {
		return fmt.Errorf("cannot %s: %w", op, err)
	}

	p.install(res)
	return
}

// zetaJet returns the first n Taylor coefficients of zeta(s0 + x, a), or of zeta(s0 + x, a) - 1/(s0 + x - 1),
// by the Euler-Maclaurin formula
//
//	zeta(s, a) = sum_{k<N} (a+k)^(-s) + (a+N)^(1-s)/(s-1) + (a+N)^(-s)/2
//	           + sum_{j=1}^{M} B_2j/(2j)! (s)_(2j-1) (a+N)^(-s-2j+1) + R.
func zetaJet(s0, a *ball.Ball, deflate bool, n, workers int, prec uint) ([]*ball.Ball, error) {

	if !a.IsFinite() {
		return nil, fmt.Errorf("a is not finite: %w", ErrDomain)
	}

	// lower bound of Re(a)
	A := ball.NewMidRad(a.Real(), nil, nil)
	A.Sub(A, ball.NewMidRad(a.Rad(), nil, nil), prec)
	if A.Real().Sign() <= 0 || !A.IsNonZero() {
		return nil, fmt.Errorf("a must lie in the right half plane: %w", ErrDomain)
	}

	sigma0, _ := s0.Real().Float64()
	sabs, _ := s0.AbsUpper().Float64()

	M := (int(prec)+n+10)/5 + 2
	M = utils.Max(M, int(math.Ceil((2-sigma0)/2))+int(math.Ceil(sabs/2))+1)
	N := 2*M + int(math.Ceil(sabs)) + 2

	// sum_{k<N} (a+k)^(-s0-x), in chunks combined in index order
	bounds := utils.ChunkBounds(N, zetaChunk)
	partial := make([][]*ball.Ball, len(bounds)-1)
	runParallel(len(partial), workers, func(i int) {
		sum := zeros(n)
		for k := bounds[i]; k < bounds[i+1]; k++ {
			addInto(sum, 0, powerJet(ball.New().Add(a, ball.NewInt64(int64(k)), prec), s0, n, prec), prec)
		}
		partial[i] = sum
	})

	Z := zeros(n)
	for i := range partial {
		addInto(Z, 0, partial[i], prec)
	}

	u := ball.New().Add(a, ball.NewInt64(int64(N)), prec)
	L := ball.New().Log(u, prec)

	// e = u^(-s0-x)
	e := powerJet(u, s0, n, prec)

	// u^(-s)/2
	addInto(Z, 0, scalarMulVec(e, ball.NewFloat64(0.5), prec), prec)

	// sum_j B_2j/(2j)! (s)_(2j-1) u^(1-2j), times u^(-s)
	B := bignum.BernoulliNumbers(2*M + 1)
	u2inv := ball.New().Sqr(u, prec)
	u2inv.Inv(u2inv, prec)

	poch := []*ball.Ball{s0.Clone(), ball.NewInt64(1)}
	upow := ball.New().Inv(u, prec)
	acc := zeros(n)
	for j := 1; j <= M; j++ {

		if j > 1 {
			// (s)_(2j-1) = (s)_(2j-3) (s + 2j - 3) (s + 2j - 2)
			for _, i := range []int64{int64(2*j - 3), int64(2*j - 2)} {
				poch = mulLow(poch, []*ball.Ball{ball.New().Add(s0, ball.NewInt64(i), prec), ball.NewInt64(1)}, n, prec)
			}
			upow.Mul(upow, u2inv, prec)
		}

		c := new(big.Rat).SetFrac(big.NewInt(1), bignum.Factorial(2*j))
		c.Mul(c, B[2*j])
		cb := ball.NewRat(c, nil, prec)
		cb.Mul(cb, upow, prec)

		addInto(acc, 0, scalarMulVec(poch[:utils.Min(n, len(poch))], cb, prec), prec)
	}

	addInto(Z, 0, mulLow(acc, e, n, prec), prec)

	// u^(1-s)/(s-1), or (u^(1-s) - 1)/(s-1) if deflated
	t0 := ball.New().Sub(s0, ball.NewInt64(1), prec)

	var pole []*ball.Ball
	if deflate {
		pole = deflatedPole(t0, L, n, prec)
	} else {
		inv, err := invSeries([]*ball.Ball{t0, ball.NewInt64(1)}, n, prec)
		if err != nil {
			return nil, fmt.Errorf("s may contain the pole 1: %w", err)
		}
		pole = mulLow(scalarMulVec(e, u, prec), inv, n, prec)
	}

	addInto(Z, 0, pole, prec)

	bound, err := zetaRemainder(s0, A, M, N, a.IsExact() && a.IsReal(), prec)
	if err != nil {
		return nil, err
	}

	addCauchyError(Z, bound, 1)

	return Z, nil
}

// powerJet returns the first n Taylor coefficients of v^(-s0-x) = v^(-s0) exp(-x log(v)).
func powerJet(v, s0 *ball.Ball, n int, prec uint) []*ball.Ball {
	return expLinearJet(ball.New().Log(v, prec), s0, n, prec)
}

// expLinearJet returns the first n Taylor coefficients of exp(-(s0+x) L).
func expLinearJet(L, s0 *ball.Ball, n int, prec uint) []*ball.Ball {

	res := make([]*ball.Ball, n)

	if n == 0 {
		return res
	}

	res[0] = ball.New().Mul(s0, L, prec)
	res[0].Exp(res[0].Neg(res[0]), prec)

	nl := ball.New().Neg(L)
	for i := 1; i < n; i++ {
		res[i] = ball.New().Mul(res[i-1], nl, prec)
		res[i].DivInt64(res[i], int64(i), prec)
	}

	return res
}

// deflatedPole returns the first n Taylor coefficients of (exp(-t L) - 1)/t at t0.
func deflatedPole(t0, L *ball.Ball, n int, prec uint) []*ball.Ball {

	nl := ball.New().Neg(L)

	if t0.IsNonZero() {
		// (exp(-t0 L) exp(-x L) - 1)/(t0 + x)
		num := expLinearJet(L, t0, n, prec)
		num[0].Sub(num[0], ball.NewInt64(1), prec)
		inv, err := invSeries([]*ball.Ball{t0, ball.NewInt64(1)}, n, prec)
		if err != nil {
			panic(err)
		}
		return mulLow(num, inv, n, prec)
	}

	// f(t) = sum_k f_k t^k with f_k = (-L)^(k+1)/(k+1)!, shifted by t0.
	// On |t| <= T = |t0| + 1/2, |f_k t^k| <= |L|^(k+1) T^k/(k+1)!, and these bounds
	// decrease at least by a factor 2 from index k on once 2 |L| T <= k+2.
	T := magBall(t0.AbsUpper())
	T.Add(T, ball.NewFloat64(0.5), prec)
	lt := ball.New().Mul(magBall(L.AbsUpper()), T, prec)
	ltf, _ := lt.AbsUpper().Float64()

	eps := new(big.Float).SetMantExp(big.NewFloat(1), -int(prec))

	f := []*ball.Ball{ball.New().Set(nl)}

	// |L|^2 T/2
	term := ball.New().Mul(magBall(L.AbsUpper()), lt, prec)
	term.Mul2Exp(term, -1)
	for k := 1; ; k++ {

		c := ball.New().Mul(f[k-1], nl, prec)
		f = append(f, c.DivInt64(c, int64(k+1), prec))

		// |L|^(k+2) T^(k+1)/(k+2)!, the bound of the first neglected term
		term.Mul(term, lt, prec)
		term.DivInt64(term, int64(k+2), prec)

		if k+1 >= n && float64(k+3) >= 2*ltf+1 {
			if tail := term.AbsUpper(); tail.Cmp(eps) < 0 {
				res := taylorShift(f, t0, prec)[:n]
				addCauchyError(res, new(big.Float).Mul(tail, big.NewFloat(2)), 1)
				return res
			}
		}
	}
}

// zetaRemainder bounds the Euler-Maclaurin remainder on the disc of radius 1/2 around s0:
// |R| <= 4 max|(s)_2M| / (2 pi)^2M exp(pi |Im s|/2) (A + N)^(1 - sigma - 2M) / (sigma + 2M - 1),
// where A is a lower bound of Re(a) and sigma a lower bound of Re(s). The exponential
// factor only appears when a is not an exact real number.
func zetaRemainder(s0, A *ball.Ball, M, N int, realA bool, prec uint) (*big.Float, error) {

	wp := prec/2 + 32

	half := ball.NewFloat64(0.5)

	sigma := ball.NewMidRad(s0.Real(), nil, nil)
	sigma.Sub(sigma, ball.NewMidRad(s0.Rad(), nil, nil), wp)
	sigma.Sub(sigma, half, wp)

	// sigma + 2M - 1
	d := ball.New().Add(sigma, ball.NewInt64(int64(2*M-1)), wp)
	if !d.IsNonZero() || d.Real().Sign() <= 0 {
		return nil, fmt.Errorf("s is too far in the left half plane: %w", ErrDomain)
	}

	// max |(s)_2M| <= prod_{i<2M} (|s0| + rad + 1/2 + i)
	S := magBall(s0.AbsUpper())
	S.Add(S, half, wp)
	poch := ball.NewInt64(1)
	for i := 0; i < 2*M; i++ {
		poch.Mul(poch, ball.New().Add(S, ball.NewInt64(int64(i)), wp), wp)
	}

	twoPi := ball.Pi(wp)
	twoPi.Mul2Exp(twoPi, 1)

	r := ball.NewInt64(4)
	r.Mul(r, poch, wp)
	r.Div(r, ball.New().PowUint(twoPi, uint64(2*M), wp), wp)

	// (A + N)^(1 - sigma - 2M)
	base := ball.New().Add(A, ball.NewInt64(int64(N)), wp)
	expo := ball.New().Sub(ball.NewInt64(int64(1-2*M)), sigma, wp)
	r.Mul(r, ball.New().Pow(base, expo, wp), wp)
	r.Div(r, d, wp)

	if !realA {
		tau := magBall(ball.NewMidRad(s0.Imag(), nil, nil).AbsUpper())
		tau.Add(tau, ball.NewMidRad(s0.Rad(), nil, nil), wp)
		tau.Add(tau, half, wp)
		tau.Mul(tau, ball.Pi(wp), wp)
		tau.Mul2Exp(tau, -1)
		r.Mul(r, ball.New().Exp(tau, wp), wp)
	}

	bound := r.AbsUpper()
	if bound.IsInf() {
		return nil, fmt.Errorf("cannot bound the remainder: %w", ErrDomain)
	}

	return bound, nil
}

// magBall returns the exact real ball of midpoint f.
func magBall(f *big.Float) *ball.Ball {
	return ball.NewMidRad(f, nil, nil)
}
