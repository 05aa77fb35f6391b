package poly

import (
	"fmt"
	"math"
	"math/big"

	"github.com/tuneinsight/ballpoly/ball"
	"github.com/tuneinsight/ballpoly/utils/sampling"
)

// RootBoundFujiwara returns an upper bound of the absolute value of the roots of p,
//
//	2 max(|a_(n-1)/a_n|, |a_(n-2)/a_n|^(1/2), ..., |a_0/(2 a_n)|^(1/n)).
//
// The bound is +Inf if the leading coefficient of p may be zero, and zero if p has degree zero or less.
func (p *Poly) RootBoundFujiwara(prec uint) *big.Float {

	checkPrec("RootBoundFujiwara", prec)

	n := p.Degree()
	if n < 1 {
		return new(big.Float)
	}

	L := p.coeffs[n].AbsLower()
	if L.Sign() == 0 {
		return new(big.Float).SetInf(false)
	}

	inv := ball.New().Inv(magBall(L), prec)

	bound := new(big.Float)
	for i := 1; i <= n; i++ {

		c := magBall(p.coeffs[n-i].AbsUpper())
		if c.IsExactZero() {
			continue
		}

		c.Mul(c, inv, prec)
		if i == n {
			c.Mul2Exp(c, -1)
		}

		if i > 1 {
			c.Pow(c, ball.NewRat(big.NewRat(1, int64(i)), nil, prec), prec)
		}

		if t := c.AbsUpper(); t.Cmp(bound) > 0 {
			bound = t
		}
	}

	return bound.Mul(bound, big.NewFloat(2))
}

// RootInclusion certifies that the disc centered at the midpoint of m contains exactly one root of p,
// with dp the derivative of p. It applies the interval Newton operator
// N(X) = c - p(c)/dp(X) to the disc X around the midpoint c of radius twice the Newton correction,
// or the radius of m if larger: if N(X) is contained in X, then N(X) contains exactly one root of p.
// It returns N(X), or ErrNoContraction.
func RootInclusion(m *ball.Ball, p, dp *Poly, prec uint) (*ball.Ball, error) {

	checkPrec("RootInclusion", prec)

	c := ball.New().SetMid(m)

	pc := evalHorner(p.coeffs, c, prec)
	dpc := evalHorner(dp.coeffs, c, prec)
	if !dpc.IsNonZero() {
		return nil, fmt.Errorf("cannot RootInclusion: derivative may vanish at %s: %w", c.Format(8), ErrNoContraction)
	}

	d := ball.New().Div(pc, dpc, prec)
	r := new(big.Float).Mul(d.AbsUpper(), big.NewFloat(2))
	if mr := m.Rad(); mr.Cmp(r) > 0 {
		r = mr
	}

	X := ball.NewMidRad(c.Real(), c.Imag(), r)

	dX := evalHorner(dp.coeffs, X, prec)
	if !dX.IsNonZero() {
		return nil, fmt.Errorf("cannot RootInclusion: derivative may vanish on %s: %w", X.Format(8), ErrNoContraction)
	}

	N := ball.New().Div(pc, dX, prec)
	N.Sub(c, N, prec)

	if !X.Contains(N) {
		return nil, fmt.Errorf("cannot RootInclusion: %s not contained in %s: %w", N.Format(8), X.Format(8), ErrNoContraction)
	}

	return N, nil
}

// RefineRootsDurandKerner performs one step of the Durand-Kerner simultaneous iteration
//
//	z_i <- z_i - p(z_i) / (a_n prod_{j != i} (z_i - z_j))
//
// on the midpoints of roots, in place. The updated approximations are exact balls.
// It returns an upper bound on the absolute value of the largest correction, which is +Inf
// if a correction could not be computed, for instance when two approximations coincide.
func (p *Poly) RefineRootsDurandKerner(roots []*ball.Ball, prec uint) *big.Float {

	checkPrec("RefineRootsDurandKerner", prec)
	p.checkRoots("RefineRootsDurandKerner", roots)

	w := weierstrassCorrections(p.coeffs, roots, prec)

	maxCorr := new(big.Float)
	for i := range roots {

		if !w[i].IsFinite() {
			maxCorr.SetInf(false)
			roots[i].SetMid(roots[i])
			continue
		}

		if c := w[i].AbsUpper(); c.Cmp(maxCorr) > 0 && !maxCorr.IsInf() {
			maxCorr = c
		}

		roots[i].Sub(roots[i], w[i], prec)
		roots[i].SetMid(roots[i])
	}

	return maxCorr
}

// ValidateRoots replaces each approximation in roots by its Weierstrass disc, centered at the midpoint
// of the approximation, of radius n |p(z_i) / (a_n prod_{j != i} (z_i - z_j))|.
// The union of the discs contains every root of p, and a disc which does not overlap any other contains
// exactly one root. The isolated discs are moved to the front of roots, keeping their relative order,
// and their number is returned.
func (p *Poly) ValidateRoots(roots []*ball.Ball, prec uint) (found int) {

	checkPrec("ValidateRoots", prec)
	p.checkRoots("ValidateRoots", roots)

	discs := weierstrassDiscs(p.coeffs, roots, prec)

	isolated := make([]bool, len(discs))
	for i := range discs {
		isolated[i] = discs[i].IsFinite()
		for j := range discs {
			if i != j && isolated[i] && discs[i].Overlaps(discs[j]) {
				isolated[i] = false
			}
		}
	}

	for i := range discs {
		if isolated[i] {
			roots[found] = discs[i]
			found++
		}
	}

	k := found
	for i := range discs {
		if !isolated[i] {
			roots[k] = discs[i]
			k++
		}
	}

	return
}

// FindRoots computes the roots of p with the Durand-Kerner iteration, starting from the initial
// approximations, or from seeded approximations on the circle of radius RootBoundFujiwara if initial is nil.
// roots and initial must have length the degree of p.
//
// The iteration stops after maxIter steps, or as soon as the corrections fall below 2^(-prec/2)
// times the root bound and the Weierstrass discs of the approximations are pairwise disjoint.
// On return, roots holds the Weierstrass discs of the final approximations, the isolated ones first,
// and found is their number: each of the first found balls contains exactly one root of p.
//
// It returns ErrNotInvertible if the leading coefficient of p may be zero and ErrDomain for the zero polynomial.
func (p *Poly) FindRoots(roots, initial []*ball.Ball, maxIter int, prec uint) (found int, err error) {

	checkPrec("FindRoots", prec)
	checkLen("FindRoots", maxIter)

	n := p.Degree()
	if n < 0 {
		return 0, fmt.Errorf("cannot FindRoots: zero polynomial: %w", ErrDomain)
	}

	p.checkRoots("FindRoots", roots)
	if initial != nil {
		p.checkRoots("FindRoots", initial)
	}

	if !p.coeffs[n].IsNonZero() {
		return 0, fmt.Errorf("cannot FindRoots: leading coefficient %s: %w", p.coeffs[n].Format(8), ErrNotInvertible)
	}

	if n == 0 {
		return 0, nil
	}

	if n == 1 {
		r := ball.New().Div(p.coeffs[0], p.coeffs[1], prec)
		roots[0] = r.Neg(r)
		return 1, nil
	}

	bound := p.RootBoundFujiwara(prec)

	z := make([]*ball.Ball, n)
	if initial != nil {
		for i := range z {
			z[i] = ball.New().SetMid(initial[i])
		}
	} else {
		z = p.initialRoots(bound)
	}

	// corrections below tol stop the iteration
	tol := new(big.Float).SetMantExp(big.NewFloat(1), -int(prec/2))
	if !bound.IsInf() && bound.Cmp(big.NewFloat(1)) > 0 {
		tol.Mul(tol, bound)
	}

	for it := 0; it < maxIter; it++ {

		if corr := p.RefineRootsDurandKerner(z, prec); corr.Cmp(tol) > 0 {
			continue
		}

		v := cloneBalls(z)
		if k := p.ValidateRoots(v, prec); k == n {
			copy(roots, v)
			return n, nil
		}
	}

	v := cloneBalls(z)
	found = p.ValidateRoots(v, prec)
	copy(roots, v)

	return found, nil
}

// ValidateRealRoots verifies, independently of the way they were obtained, that roots is a set of
// pairwise disjoint balls each containing exactly one root of the real polynomial p, accounting for
// all its roots. The Weierstrass discs of the midpoints of roots must be contained in the corresponding balls.
//
// A ball whose conjugate overlaps no other ball holds a real root, since the conjugate of its root is
// also a root. If such a ball meets the real axis, p must change sign on its real segment.
// Balls meeting the real axis whose conjugate overlaps another ball may hold a non-real root
// and are not required to show a sign change.
func (p *Poly) ValidateRealRoots(roots []*ball.Ball, prec uint) bool {

	checkPrec("ValidateRealRoots", prec)

	n := p.Degree()
	if n < 0 || len(roots) != n {
		return false
	}

	if !p.IsReal() {
		return false
	}

	for i := range roots {
		for j := i + 1; j < len(roots); j++ {
			if roots[i].Overlaps(roots[j]) {
				return false
			}
		}
	}

	wp := prec + 32

	discs := weierstrassDiscs(p.coeffs, roots, wp)
	for i := range roots {
		if !roots[i].Contains(discs[i]) {
			return false
		}
	}

	for i := range roots {
		if ok, onAxis := p.realRoot(roots[i], wp); onAxis && !ok && selfConjugate(roots, i) {
			return false
		}
	}

	return true
}

// realRoot returns onAxis = true if the ball x meets the real axis, in which case ok is true
// if p certainly changes sign on a real segment contained in x.
func (p *Poly) realRoot(x *ball.Ball, prec uint) (ok, onAxis bool) {

	im := new(big.Float).Abs(x.Imag())
	rad := x.Rad()

	if im.Cmp(rad) > 0 {
		return false, false
	}

	if x.Imag().Sign() == 0 && evalHorner(p.coeffs, ball.New().SetMid(x), prec).IsExactZero() {
		return true, true
	}

	// sqrt(rad^2 - im^2) >= rad - im
	w := new(big.Float).SetMode(big.ToNegativeInf).Sub(rad, im)

	// rounded toward the midpoint
	lo := ball.NewMidRad(new(big.Float).SetMode(big.ToPositiveInf).Sub(x.Real(), w), nil, nil)
	hi := ball.NewMidRad(new(big.Float).SetMode(big.ToNegativeInf).Add(x.Real(), w), nil, nil)
	if !x.Contains(lo) || !x.Contains(hi) {
		return false, true
	}

	slo, okLo := realSign(evalHorner(p.coeffs, lo, prec))
	shi, okHi := realSign(evalHorner(p.coeffs, hi, prec))

	return okLo && okHi && slo*shi < 0, true
}

// selfConjugate returns true if the conjugate of roots[i] overlaps no other ball of roots.
func selfConjugate(roots []*ball.Ball, i int) bool {
	c := ball.New().Conj(roots[i])
	for j := range roots {
		if j != i && c.Overlaps(roots[j]) {
			return false
		}
	}
	return true
}

// realSign returns the sign of the real part of every point of x, if it is the same.
func realSign(x *ball.Ball) (int, bool) {
	re := x.Real()
	if new(big.Float).Abs(re).Cmp(x.Rad()) <= 0 {
		return 0, false
	}
	return re.Sign(), true
}

// weierstrassCorrections returns p(z_i) / (a_n prod_{j != i} (z_i - z_j)) for the midpoints z_i of roots.
func weierstrassCorrections(a []*ball.Ball, roots []*ball.Ball, prec uint) []*ball.Ball {

	lc := a[len(a)-1]

	z := make([]*ball.Ball, len(roots))
	for i := range roots {
		z[i] = ball.New().SetMid(roots[i])
	}

	w := make([]*ball.Ball, len(z))
	for i := range z {
		den := lc.Clone()
		t := ball.New()
		for j := range z {
			if i != j {
				den.Mul(den, t.Sub(z[i], z[j], prec), prec)
			}
		}
		w[i] = ball.New().Div(eval(a, z[i], prec), den, prec)
	}

	return w
}

// weierstrassDiscs returns the discs centered at the midpoints of roots of radius n times the
// Weierstrass corrections.
func weierstrassDiscs(a []*ball.Ball, roots []*ball.Ball, prec uint) []*ball.Ball {

	w := weierstrassCorrections(a, roots, prec)

	n := new(big.Float).SetInt64(int64(len(roots)))

	discs := make([]*ball.Ball, len(roots))
	for i := range roots {
		r := new(big.Float).SetMode(big.ToPositiveInf).Mul(w[i].AbsUpper(), n)
		discs[i] = ball.NewMidRad(roots[i].Real(), roots[i].Imag(), r)
	}

	return discs
}

// initialRoots returns n distinct approximations of modulus between bound/2 and bound, at
// angles close to 2 pi k / n, drawn from a PRNG keyed by the digest of p.
func (p *Poly) initialRoots(bound *big.Float) []*ball.Ball {

	n := p.Degree()

	r, _ := bound.Float64()
	if r == 0 || math.IsInf(r, 0) || math.IsNaN(r) {
		r = 1
	}

	digest := p.Digest()
	prng, err := sampling.NewKeyedPRNG(digest[:])
	if err != nil {
		// blake2b only rejects keys longer than 64 bytes
		panic(err)
	}

	z := make([]*ball.Ball, n)
	for k := range z {
		rho := r * sampling.RandFloat64(prng, 0.5, 1)
		theta := 2*math.Pi*float64(k)/float64(n) + sampling.RandFloat64(prng, 0.1, 0.9)*math.Pi/float64(n)
		z[k] = ball.NewComplex128(complex(rho*math.Cos(theta), rho*math.Sin(theta)))
	}

	return z
}

func (p *Poly) checkRoots(op string, roots []*ball.Ball) {
	if n := p.Degree(); len(roots) != n && !(n < 0 && len(roots) == 0) {
		panic(fmt.Errorf("cannot %s: %d roots for a polynomial of degree %d", op, len(roots), n))
	}
}
