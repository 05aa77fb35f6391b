package poly

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuneinsight/ballpoly/ball"
)

func TestEval(t *testing.T) {

	prec := uint(128)

	prng := newTestPRNG(t, "Eval")

	coeffs := randomBigInts(prng, 61, 1000)
	coeffs[60].SetInt64(3)
	p := New().SetBigInts(coeffs, prec)

	xs := make([]*big.Rat, 200)
	points := make([]*ball.Ball, len(xs))
	for i := range xs {
		xs[i] = big.NewRat(int64(i-100), 37)
		points[i] = ball.NewRat(xs[i], nil, prec)
	}

	t.Run("Scalar", func(t *testing.T) {
		for i := 0; i < len(xs); i += 7 {
			want := ratEval(coeffs, xs[i])
			for name, eval := range map[string]func(x *ball.Ball, prec uint) *ball.Ball{
				"Horner":      p.EvalHorner,
				"Rectangular": p.EvalRectangular,
				"Dispatch":    p.Eval,
			} {
				y := eval(points[i], prec)
				require.True(t, y.ContainsRat(want, nil), "%s: x = %s", name, xs[i].RatString())
			}
		}
	})

	t.Run("Complex", func(t *testing.T) {
		// 1 + x^2 vanishes at i
		q := NewFromInt64s(1, 0, 1)
		require.True(t, q.Eval(ball.I(), prec).IsExactZero())
		require.True(t, q.EvalRectangular(ball.I(), prec).ContainsInt64(0))
		require.True(t, New().Eval(ball.I(), prec).IsExactZero())
	})

	t.Run("Eval2", func(t *testing.T) {
		dp := New().Derivative(p, prec)
		for i := 0; i < len(xs); i += 11 {
			for name, eval2 := range map[string]func(x *ball.Ball, prec uint) (*ball.Ball, *ball.Ball){
				"Horner":   p.Eval2Horner,
				"Dispatch": p.Eval2,
			} {
				y, dy := eval2(points[i], prec)
				require.True(t, y.Overlaps(p.Eval(points[i], prec)), name)
				require.True(t, dy.Overlaps(dp.Eval(points[i], prec)), name)
				require.True(t, y.ContainsRat(ratEval(coeffs, xs[i]), nil), name)
			}
		}
	})

	t.Run("EvalVec", func(t *testing.T) {
		for name, evalVec := range map[string]func(points []*ball.Ball, prec uint) []*ball.Ball{
			"Iterated": p.EvalVecIterated,
			"Fast":     p.EvalVecFast,
			"Dispatch": p.EvalVec,
		} {
			ys := evalVec(points, prec)
			require.Len(t, ys, len(points))
			for i := range ys {
				require.True(t, ys[i].ContainsRat(ratEval(coeffs, xs[i]), nil), "%s: x = %s", name, xs[i].RatString())
			}
		}

		require.Empty(t, p.EvalVecFast(nil, prec))
		require.Empty(t, p.EvalVecFastParallel(nil, 4, prec))
	})

	t.Run("EvalVecParallel", func(t *testing.T) {
		iterated := p.EvalVecIterated(points, prec)
		fast := p.EvalVecFast(points, prec)
		for _, workers := range []int{1, 2, 3, 8} {
			t.Run(fmt.Sprintf("Workers=%d", workers), func(t *testing.T) {
				got := p.EvalVecIteratedParallel(points, workers, prec)
				for i := range got {
					require.True(t, got[i].Equal(iterated[i]))
				}
				got = p.EvalVecFastParallel(points, workers, prec)
				for i := range got {
					require.True(t, got[i].Equal(fast[i]))
				}
			})
		}
	})

	t.Run("FastLowDegree", func(t *testing.T) {
		// more points than coefficients
		q := NewFromInt64s(2, -1)
		ys := q.EvalVecFast(points, prec)
		for i := range ys {
			require.True(t, ys[i].ContainsRat(ratEval([]*big.Int{big.NewInt(2), big.NewInt(-1)}, xs[i]), nil))
		}
		for _, y := range New().EvalVecFast(points[:5], prec) {
			require.True(t, y.IsExactZero())
		}
	})
}

func TestInterpolate(t *testing.T) {

	prng := newTestPRNG(t, "Interpolate")

	for _, n := range []int{1, 2, 7, 30, 70} {

		prec := uint(64 + 32*n)

		coeffs := randomBigInts(prng, n, 100)

		xs := make([]*ball.Ball, n)
		ys := make([]*ball.Ball, n)
		for i := range xs {
			x := big.NewRat(int64(i-n/2), 1)
			xs[i] = ball.NewRat(x, nil, prec)
			ys[i] = ball.NewRat(ratEval(coeffs, x), nil, prec)
		}

		for name, interpolate := range map[string]func(p *Poly, xs, ys []*ball.Ball, prec uint) error{
			"Newton":      (*Poly).InterpolateNewton,
			"Barycentric": (*Poly).InterpolateBarycentric,
			"Fast":        (*Poly).InterpolateFast,
			"Dispatch":    (*Poly).Interpolate,
		} {
			t.Run(fmt.Sprintf("%s/n=%d", name, n), func(t *testing.T) {
				p := New()
				require.NoError(t, interpolate(p, xs, ys, prec))
				require.LessOrEqual(t, p.Len(), n)
				require.True(t, p.ContainsBigInts(coeffs))
			})
		}
	}

	t.Run("Empty", func(t *testing.T) {
		p := NewFromInt64s(1)
		require.NoError(t, p.Interpolate(nil, nil, 64))
		require.True(t, p.IsZero())
	})

	t.Run("UnseparatedNodes", func(t *testing.T) {
		xs := []*ball.Ball{ball.NewInt64(0), ball.NewInt64(1), ball.NewInt64(1).AddError(big.NewFloat(1e-9))}
		ys := []*ball.Ball{ball.NewInt64(1), ball.NewInt64(2), ball.NewInt64(3)}
		for name, interpolate := range map[string]func(p *Poly, xs, ys []*ball.Ball, prec uint) error{
			"Newton":      (*Poly).InterpolateNewton,
			"Barycentric": (*Poly).InterpolateBarycentric,
			"Fast":        (*Poly).InterpolateFast,
		} {
			p := NewFromInt64s(5, 5)
			require.ErrorIs(t, interpolate(p, xs, ys, 64), ErrNotInvertible, name)
			require.True(t, p.Equal(NewFromInt64s(5, 5)), name)
		}
	})

	t.Run("MismatchedLengths", func(t *testing.T) {
		require.Panics(t, func() {
			_ = New().Interpolate([]*ball.Ball{ball.NewInt64(0)}, nil, 64)
		})
	})
}
