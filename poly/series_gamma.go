package poly

import (
	"fmt"
	"math"
	"math/big"
	"math/bits"

	"github.com/tuneinsight/ballpoly/ball"
	"github.com/tuneinsight/ballpoly/utils/bignum"
)

// maxGammaShift bounds the number of unit shifts applied to move the argument
// of the Stirling series to the right half plane.
const maxGammaShift = 1 << 20

// GammaSeries sets p to gamma(h) mod x^n.
// It returns ErrNotInvertible if h(0) may be a pole of the gamma function.
func (p *Poly) GammaSeries(h *Poly, n int, prec uint) (err error) {
	checkLen("GammaSeries", n)
	checkPrec("GammaSeries", prec)
	res, err := composeJet(h.coeffs, n, gammaJet, prec)
	if err != nil {
		return fmt.Errorf("cannot GammaSeries: %w", err)
	}
	p.install(res)
	return
}

// RGammaSeries sets p to 1/gamma(h) mod x^n.
func (p *Poly) RGammaSeries(h *Poly, n int, prec uint) (err error) {
	checkLen("RGammaSeries", n)
	checkPrec("RGammaSeries", prec)
	res, err := composeJet(h.coeffs, n, rgammaJet, prec)
	if err != nil {
		return fmt.Errorf("cannot RGammaSeries: %w", err)
	}
	p.install(res)
	return
}

// LGammaSeries sets p to log(gamma(h)) mod x^n, on the principal branch of the log-gamma
// function, which is analytic off the non-positive real axis.
// It returns ErrNotInvertible if h(0) may be a pole and ErrDomain if h(0) straddles the branch cut.
func (p *Poly) LGammaSeries(h *Poly, n int, prec uint) (err error) {
	checkLen("LGammaSeries", n)
	checkPrec("LGammaSeries", prec)
	res, err := composeJet(h.coeffs, n, lgammaJet, prec)
	if err != nil {
		return fmt.Errorf("cannot LGammaSeries: %w", err)
	}
	p.install(res)
	return
}

// DigammaSeries sets p to digamma(h) = gamma'(h)/gamma(h) mod x^n.
// It returns ErrNotInvertible if h(0) may be a pole.
func (p *Poly) DigammaSeries(h *Poly, n int, prec uint) (err error) {
	checkLen("DigammaSeries", n)
	checkPrec("DigammaSeries", prec)
	res, err := composeJet(h.coeffs, n, digammaJet, prec)
	if err != nil {
		return fmt.Errorf("cannot DigammaSeries: %w", err)
	}
	p.install(res)
	return
}

// jetFunc returns the first n Taylor coefficients of a function at z0.
type jetFunc func(z0 *ball.Ball, n int, prec uint) ([]*ball.Ball, error)

// composeJet returns f(h) mod x^n, where f is given by its Taylor expansion at h(0).
func composeJet(h []*ball.Ball, n int, jet jetFunc, prec uint) ([]*ball.Ball, error) {

	if n == 0 {
		return nil, nil
	}

	z0 := ball.New()
	if len(h) > 0 {
		z0 = h[0]
	}

	if !z0.IsFinite() {
		return nil, fmt.Errorf("argument is not finite: %w", ErrDomain)
	}

	wp := prec + 2*uint(bits.Len(uint(n))) + 16

	f, err := jet(z0, n, wp)
	if err != nil {
		return nil, err
	}

	var hc []*ball.Ball
	if len(h) > 1 {
		hc = append([]*ball.Ball{ball.New()}, h[1:]...)
	}

	res := composeSeries(f, hc, n, wp)
	for i := range res {
		res[i].Round(res[i], prec)
	}

	return res, nil
}

// stirlingShift returns the number of terms M of the Stirling series and the shift r such that
// the Stirling series at z0 + r, with its remainder, gives the first n coefficients to about prec bits.
func stirlingShift(z0 *ball.Ball, n int, prec uint) (M, r int, err error) {

	M = (int(prec)+n+10)/7 + 2

	re, _ := z0.Real().Float64()
	rad, _ := z0.Rad().Float64()

	if re < -maxGammaShift {
		return 0, 0, fmt.Errorf("argument is too far in the left half plane: %w", ErrDomain)
	}

	if target := float64(2*M+n/2+2) + rad; re < target {
		r = int(math.Ceil(target - re))
	}

	return
}

// stirlingJet returns the first n Taylor coefficients of the Stirling series
// (w - 1/2) log(w) - w + log(2 pi)/2 + sum_{k=1}^{M} B_2k / (2k (2k-1) w^(2k-1)) at w0,
// with the bound on the remainder added to each coefficient.
// w0 must lie in the half plane Re(w) >= 2M + 2.
func stirlingJet(w0 *ball.Ball, M, n int, prec uint) []*ball.Ball {

	invw := ball.New().Inv(w0, prec)

	// ip[k] = w0^(-k)
	ip := make([]*ball.Ball, 2*M+n+1)
	ip[0] = ball.NewInt64(1)
	for k := 1; k < len(ip); k++ {
		ip[k] = ball.New().Mul(ip[k-1], invw, prec)
	}

	// log(w0 + x) = log(w0) + sum_{j>=1} (-1)^(j+1) x^j / (j w0^j)
	lj := make([]*ball.Ball, n)
	lj[0] = ball.New().Log(w0, prec)
	for j := 1; j < n; j++ {
		lj[j] = ball.New().DivInt64(ip[j], int64(j), prec)
		if j&1 == 0 {
			lj[j].Neg(lj[j])
		}
	}

	half := ball.NewFloat64(0.5)
	S := mulLow([]*ball.Ball{ball.New().Sub(w0, half, prec), ball.NewInt64(1)}, lj, n, prec)
	S = append(S, zeros(n-len(S))...)

	S[0].Sub(S[0], w0, prec)
	if n > 1 {
		S[1].Sub(S[1], ball.NewInt64(1), prec)
	}

	l2pi := ball.Pi(prec)
	l2pi.Mul2Exp(l2pi, 1).Log(l2pi, prec).Mul2Exp(l2pi, -1)
	S[0].Add(S[0], l2pi, prec)

	B := bignum.BernoulliNumbers(2*M + 3)

	t := ball.New()
	for k := 1; k <= M; k++ {

		c := new(big.Rat).SetFrac64(1, int64(2*k*(2*k-1)))
		c.Mul(c, B[2*k])
		cb := ball.NewRat(c, nil, prec)

		// [x^j] (w0 + x)^(-m) = (-1)^j C(m+j-1, j) w0^(-m-j)
		m := 2*k - 1
		for j := 0; j < n; j++ {
			t.MulBigInt(ip[m+j], bignum.Binomial(m+j-1, j), prec)
			t.Mul(t, cb, prec)
			if j&1 == 1 {
				S[j].Sub(S[j], t, prec)
			} else {
				S[j].Add(S[j], t, prec)
			}
		}
	}

	// For Re(w) > 0, |R(w)| <= |B_(2M+2)| 2^(M+1) / ((2M+2)(2M+1)|w|^(2M+1)).
	// On the disc |w - w0| <= 1/2, |w| >= Re(w0) - rad(w0) - 1/2 and the j-th
	// coefficient of R at w0 is bounded by 2^j max |R| (Cauchy).
	L := ball.NewMidRad(w0.Real(), nil, nil)
	L.Sub(L, ball.NewMidRad(w0.Rad(), nil, nil), prec)
	L.Sub(L, half, prec)

	bound := ball.NewRat(new(big.Rat).Abs(B[2*M+2]), nil, prec)
	bound.Mul2Exp(bound, M+1)
	bound.DivInt64(bound, int64((2*M+2)*(2*M+1)), prec)
	bound.Div(bound, L.PowUint(L, uint64(2*M+1), prec), prec)

	addCauchyError(S, bound.AbsUpper(), 1)

	return S
}

// addCauchyError adds e 2^(j*k) to the radius of the j-th coefficient of a,
// the Cauchy bound of the Taylor coefficients at the center of a disc of radius 2^-k
// of a function bounded by e on that disc.
func addCauchyError(a []*ball.Ball, e *big.Float, k int) {
	for j := range a {
		a[j].AddError(new(big.Float).SetMantExp(e, j*k))
	}
}

// shiftedGamma returns the Stirling jet at z0 + r, the product prod_{k<r} (z0 + k + x) mod x^n,
// and the shift r, such that gamma(z0 + x) = exp(S) / P.
func shiftedGamma(z0 *ball.Ball, n int, prec uint) (S, P []*ball.Ball, r int, err error) {

	M, r, err := stirlingShift(z0, n, prec)
	if err != nil {
		return
	}

	P = []*ball.Ball{ball.NewInt64(1)}
	for k := 0; k < r; k++ {
		lin := []*ball.Ball{ball.New().Add(z0, ball.NewInt64(int64(k)), prec), ball.NewInt64(1)}
		P = mulLow(P, lin, n, prec)
	}

	w0 := ball.New().Add(z0, ball.NewInt64(int64(r)), prec)

	return stirlingJet(w0, M, n, prec), P, r, nil
}

func rgammaJet(z0 *ball.Ball, n int, prec uint) ([]*ball.Ball, error) {

	S, P, _, err := shiftedGamma(z0, n, prec)
	if err != nil {
		return nil, err
	}

	// 1/gamma(z) = prod_{k<r} (z + k) exp(-S(z + r))
	for i := range S {
		S[i].Neg(S[i])
	}

	return mulLow(P, expSeries(S, n, prec), n, prec), nil
}

func gammaJet(z0 *ball.Ball, n int, prec uint) ([]*ball.Ball, error) {

	rg, err := rgammaJet(z0, n, prec)
	if err != nil {
		return nil, err
	}

	return invSeries(rg, n, prec)
}

func lgammaJet(z0 *ball.Ball, n int, prec uint) ([]*ball.Ball, error) {

	S, P, r, err := shiftedGamma(z0, n, prec)
	if err != nil {
		return nil, err
	}

	// log(gamma(z)) = S(z + r) - sum_{k<r} log(z + k), with principal logarithms
	lp, err := logSeriesTail(P, n, prec)
	if err != nil {
		return nil, err
	}

	for k := 0; k < r; k++ {
		lk := ball.New().Log(ball.New().Add(z0, ball.NewInt64(int64(k)), prec), prec)
		if !lk.IsFinite() {
			return nil, fmt.Errorf("log-gamma branch cut at %s: %w", z0.Format(8), ErrDomain)
		}
		lp[0].Add(lp[0], lk, prec)
	}

	return subVec(S, lp, prec), nil
}

func digammaJet(z0 *ball.Ball, n int, prec uint) ([]*ball.Ball, error) {

	S, P, _, err := shiftedGamma(z0, n+1, prec)
	if err != nil {
		return nil, err
	}

	lp, err := logSeriesTail(P, n+1, prec)
	if err != nil {
		return nil, err
	}

	return derivative(subVec(S, lp, prec), prec), nil
}
