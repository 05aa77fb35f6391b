package poly

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuneinsight/ballpoly/ball"
	"github.com/tuneinsight/ballpoly/utils/sampling"
)

// widen returns a copy of p whose coefficients have their radius increased by r.
func widen(p *Poly, r float64) *Poly {
	coeffs := make([]*ball.Ball, p.Len())
	for i := range coeffs {
		coeffs[i] = p.Coeff(i).Clone().AddError(big.NewFloat(r))
	}
	return NewFromBalls(coeffs)
}

// requireWider checks that every coefficient of wide contains the corresponding coefficient of narrow.
func requireWider(t *testing.T, wide, narrow *Poly, msgAndArgs ...interface{}) {
	t.Helper()
	require.True(t, wide.Contains(narrow), msgAndArgs...)
}

func TestInclusionMonotonicity(t *testing.T) {

	prec := uint(128)
	r := 1e-6

	prng := newTestPRNG(t, "InclusionMonotonicity")

	// random polynomial with a constant term of modulus at least 8
	randomUnit := func(maxDeg int, bound int64) *Poly {
		p, coeffs := randomPoly(prng, maxDeg, bound, prec)
		coeffs[0].SetInt64(8 + int64(sampling.RandUint64(prng)%8))
		return p.SetBigInts(coeffs, prec)
	}

	t.Run("Mul", func(t *testing.T) {
		for trial := 0; trial < 32; trial++ {

			a, _ := randomPoly(prng, 60, 100, prec)
			b, _ := randomPoly(prng, 60, 100, prec)
			wa, wb := widen(a, r), widen(b, r)

			for name, mul := range map[string]func(p, a, b *Poly, prec uint) *Poly{
				"Classical": (*Poly).MulClassical,
				"Karatsuba": (*Poly).MulKaratsuba,
				"Dispatch":  (*Poly).Mul,
			} {
				requireWider(t, mul(New(), wa, wb, prec), mul(New(), a, b, prec), "%s: trial %d", name, trial)
			}

			n := 1 + int(sampling.RandUint64(prng)%uint64(a.Len()+b.Len()))
			for name, mulLow := range map[string]func(p, a, b *Poly, n int, prec uint) *Poly{
				"LowClassical": (*Poly).MulLowClassical,
				"LowKaratsuba": (*Poly).MulLowKaratsuba,
				"LowDispatch":  (*Poly).MulLow,
			} {
				requireWider(t, mulLow(New(), wa, wb, n, prec), mulLow(New(), a, b, n, prec), "%s: trial %d", name, trial)
			}
		}
	})

	t.Run("DivRem", func(t *testing.T) {
		for trial := 0; trial < 32; trial++ {

			a, _ := randomPoly(prng, 80, 100, prec)
			b, eb := randomPoly(prng, 40, 100, prec)
			eb[len(eb)-1].SetInt64(3)
			b.SetBigInts(eb, prec)
			wa, wb := widen(a, r), widen(b, r)

			for name, div := range map[string]func(q, r, a, b *Poly, prec uint) error{
				"Basecase": DivRemBasecase,
				"Newton":   DivRemNewton,
				"Dispatch": DivRem,
			} {
				q, rem := New(), New()
				require.NoError(t, div(q, rem, a, b, prec), name)
				wq, wrem := New(), New()
				require.NoError(t, div(wq, wrem, wa, wb, prec), name)
				requireWider(t, wq, q, "%s: trial %d", name, trial)
				requireWider(t, wrem, rem, "%s: trial %d", name, trial)
			}
		}
	})

	t.Run("InvSeries", func(t *testing.T) {
		for trial := 0; trial < 16; trial++ {
			a := randomUnit(20, 3)
			n := 1 + int(sampling.RandUint64(prng)%48)
			p, wp := New(), New()
			require.NoError(t, p.InvSeries(a, n, prec))
			require.NoError(t, wp.InvSeries(widen(a, r), n, prec))
			requireWider(t, wp, p, "trial %d", trial)
		}
	})

	t.Run("ExpSeries", func(t *testing.T) {
		for trial := 0; trial < 16; trial++ {
			h, _ := randomPoly(prng, 10, 2, prec)
			n := 1 + int(sampling.RandUint64(prng)%80)
			requireWider(t, New().ExpSeries(widen(h, r), n, prec), New().ExpSeries(h, n, prec), "trial %d", trial)
		}
	})

	t.Run("LogSeries", func(t *testing.T) {
		for trial := 0; trial < 16; trial++ {
			a := randomUnit(10, 3)
			n := 1 + int(sampling.RandUint64(prng)%40)
			p, wp := New(), New()
			require.NoError(t, p.LogSeries(a, n, prec))
			require.NoError(t, wp.LogSeries(widen(a, r), n, prec))
			requireWider(t, wp, p, "trial %d", trial)
		}
	})

	t.Run("Eval", func(t *testing.T) {
		for trial := 0; trial < 16; trial++ {
			a, _ := randomPoly(prng, 100, 100, prec)
			wa := widen(a, r)
			x := ball.NewRat(big.NewRat(int64(sampling.RandUint64(prng)%200)-100, 97), nil, prec)
			wx := x.Clone().AddError(big.NewFloat(r))

			for name, eval := range map[string]func(p *Poly, x *ball.Ball, prec uint) *ball.Ball{
				"Horner":      (*Poly).EvalHorner,
				"Rectangular": (*Poly).EvalRectangular,
				"Dispatch":    (*Poly).Eval,
			} {
				y, wy := eval(a, x, prec), eval(wa, wx, prec)
				require.True(t, wy.Contains(y), "%s: trial %d", name, trial)
			}
		}
	})

	t.Run("TaylorShift", func(t *testing.T) {
		for trial := 0; trial < 8; trial++ {
			a, _ := randomPoly(prng, 120, 100, prec)
			wa := widen(a, r)
			c := ball.NewRat(big.NewRat(int64(sampling.RandUint64(prng)%20)-10, 7), nil, prec)
			wc := c.Clone().AddError(big.NewFloat(r))

			for name, shift := range map[string]func(p, a *Poly, c *ball.Ball, prec uint) *Poly{
				"Horner":      (*Poly).TaylorShiftHorner,
				"DivConquer":  (*Poly).TaylorShiftDivConquer,
				"Convolution": (*Poly).TaylorShiftConvolution,
				"Dispatch":    (*Poly).TaylorShift,
			} {
				requireWider(t, shift(New(), wa, wc, prec), shift(New(), a, c, prec), "%s: trial %d", name, trial)
			}
		}
	})
}
