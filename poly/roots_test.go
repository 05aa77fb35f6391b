package poly

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuneinsight/ballpoly/ball"
)

const sqrt2 = "1.4142135623730950488016887242096980785697"

// inflate adds e to the radius of each ball.
func inflate(roots []*ball.Ball, e float64) []*ball.Ball {
	res := make([]*ball.Ball, len(roots))
	for i := range roots {
		res[i] = roots[i].Clone().AddError(big.NewFloat(e))
	}
	return res
}

func TestRoots(t *testing.T) {

	t.Run("FindRoots/Quadratic", func(t *testing.T) {
		p := NewFromInt64s(-2, 0, 1)

		roots := make([]*ball.Ball, 2)
		found, err := p.FindRoots(roots, []*ball.Ball{ball.NewFloat64(1.5), ball.NewFloat64(-1.5)}, 20, 64)
		require.NoError(t, err)
		require.Equal(t, 2, found)

		requireNear(t, roots[0], sqrt2)
		requireNear(t, roots[1], "-"+sqrt2)
		require.False(t, roots[0].Overlaps(roots[1]))

		require.True(t, p.ValidateRealRoots(inflate(roots, 1e-15), 64))
	})

	t.Run("FindRoots/DefaultSeeds", func(t *testing.T) {
		// (x - 1)(x - 2)(x - 3)
		p := NewFromInt64s(-6, 11, -6, 1)

		roots := make([]*ball.Ball, 3)
		found, err := p.FindRoots(roots, nil, 100, 128)
		require.NoError(t, err)
		require.Equal(t, 3, found)

		for _, want := range []int64{1, 2, 3} {
			count := 0
			for _, r := range roots {
				if r.ContainsInt64(want) {
					count++
				}
			}
			require.Equal(t, 1, count, "root %d", want)
		}

		require.True(t, p.ValidateRealRoots(inflate(roots, 1e-20), 128))

		// the default seeds only depend on p
		again := make([]*ball.Ball, 3)
		_, err = p.FindRoots(again, nil, 100, 128)
		require.NoError(t, err)
		for i := range roots {
			require.True(t, roots[i].Equal(again[i]))
		}
	})

	t.Run("FindRoots/RootsOfUnity", func(t *testing.T) {
		p := New().SetCoeff(0, ball.NewInt64(-1)).SetCoeff(20, ball.NewInt64(1))

		roots := make([]*ball.Ball, 20)
		found, err := p.FindRoots(roots, nil, 500, 128)
		require.NoError(t, err)
		require.Equal(t, 20, found)

		for i, r := range roots {
			require.True(t, ball.New().PowUint(r, 20, 128).ContainsInt64(1), "root %d: %s", i, r.String())
			for j := i + 1; j < len(roots); j++ {
				require.False(t, r.Overlaps(roots[j]))
			}
		}
	})

	t.Run("FindRoots/Complex", func(t *testing.T) {
		// x^2 + 1
		p := NewFromInt64s(1, 0, 1)

		roots := make([]*ball.Ball, 2)
		found, err := p.FindRoots(roots, nil, 100, 64)
		require.NoError(t, err)
		require.Equal(t, 2, found)

		require.True(t, roots[0].Contains(ball.I()) != roots[1].Contains(ball.I()))
		require.True(t, roots[0].Contains(ball.New().Neg(ball.I())) != roots[1].Contains(ball.New().Neg(ball.I())))

		require.True(t, p.ValidateRealRoots(inflate(roots, 1e-12), 64))
	})

	t.Run("FindRoots/Linear", func(t *testing.T) {
		roots := make([]*ball.Ball, 1)
		found, err := NewFromInt64s(-3, 2).FindRoots(roots, nil, 1, 64)
		require.NoError(t, err)
		require.Equal(t, 1, found)
		require.True(t, roots[0].ContainsRat(big.NewRat(3, 2), nil))
	})

	t.Run("FindRoots/Errors", func(t *testing.T) {
		_, err := New().FindRoots(nil, nil, 10, 64)
		require.ErrorIs(t, err, ErrDomain)

		p := NewFromBalls([]*ball.Ball{ball.NewInt64(1), ball.NewInt64(2), ball.NewFloat64(1e-3).AddError(big.NewFloat(1e-2))})
		_, err = p.FindRoots(make([]*ball.Ball, 2), nil, 10, 64)
		require.ErrorIs(t, err, ErrNotInvertible)

		require.Panics(t, func() {
			_, _ = NewFromInt64s(1, 2, 3).FindRoots(make([]*ball.Ball, 1), nil, 10, 64)
		})
	})

	t.Run("ValidateRealRoots", func(t *testing.T) {
		p := NewFromInt64s(-2, 0, 1)

		good := []*ball.Ball{
			ball.NewFloat64(1.4142135).AddError(big.NewFloat(1e-6)),
			ball.NewFloat64(-1.4142135).AddError(big.NewFloat(1e-6)),
		}
		require.True(t, p.ValidateRealRoots(good, 64))

		// wrong count
		require.False(t, p.ValidateRealRoots(good[:1], 64))

		// too narrow to contain the Weierstrass disc
		narrow := []*ball.Ball{ball.NewFloat64(1.4142135), ball.NewFloat64(-1.4142135)}
		require.False(t, p.ValidateRealRoots(narrow, 64))

		// overlapping balls
		wide := inflate(good, 2)
		require.False(t, p.ValidateRealRoots(wide, 64))

		// (x - 1)^2 + 1/64: the ball of 1 + i/8 touches the real axis, where p has no sign change,
		// but its conjugate overlaps the ball of 1 - i/8
		c := New().SetRats([]*big.Rat{big.NewRat(65, 64), big.NewRat(-2, 1), big.NewRat(1, 1)}, 64)
		touching := []*ball.Ball{
			ball.NewComplex128(1 + 0.125i).AddError(big.NewFloat(0.125)),
			ball.NewComplex128(1 - 0.125i).AddError(big.NewFloat(0.0625)),
		}
		require.True(t, c.ValidateRealRoots(touching, 64))

		// complex coefficients
		q := NewFromBalls([]*ball.Ball{ball.I(), ball.NewInt64(1)})
		require.False(t, q.ValidateRealRoots([]*ball.Ball{ball.New().Neg(ball.I()).AddError(big.NewFloat(1e-3))}, 64))
	})

	t.Run("RefineRootsDurandKerner", func(t *testing.T) {
		p := NewFromInt64s(-2, 0, 1)

		roots := []*ball.Ball{ball.NewInt64(1), ball.NewInt64(1)}
		require.True(t, p.RefineRootsDurandKerner(roots, 64).IsInf())

		roots = []*ball.Ball{ball.NewFloat64(1.5), ball.NewFloat64(-1.5)}
		prev := new(big.Float).SetInf(false)
		for i := 0; i < 6; i++ {
			corr := p.RefineRootsDurandKerner(roots, 128)
			require.Equal(t, -1, corr.Cmp(prev))
			prev = corr
			require.True(t, roots[0].IsExact())
		}
		requireNear(t, roots[0], sqrt2)
	})

	t.Run("ValidateRoots", func(t *testing.T) {
		p := NewFromInt64s(-6, 11, -6, 1)

		// only the disc around 1.0001 is isolated
		roots := []*ball.Ball{ball.NewFloat64(3.5), ball.NewFloat64(1.0001), ball.NewFloat64(2.0001)}
		found := p.ValidateRoots(roots, 64)
		require.Equal(t, 1, found)
		require.True(t, roots[0].ContainsInt64(1))

		roots = []*ball.Ball{ball.NewFloat64(1.0001), ball.NewFloat64(1.9999), ball.NewFloat64(3.0001)}
		require.Equal(t, 3, p.ValidateRoots(roots, 64))
		for i, r := range roots {
			require.True(t, r.ContainsInt64(int64(i+1)))
		}
	})

	t.Run("RootInclusion", func(t *testing.T) {
		p := NewFromInt64s(-2, 0, 1)
		dp := New().Derivative(p, 64)

		r, err := RootInclusion(ball.NewFloat64(1.41421356237), p, dp, 64)
		require.NoError(t, err)
		requireNear(t, r, sqrt2)

		_, err = RootInclusion(ball.NewInt64(0), p, dp, 64)
		require.ErrorIs(t, err, ErrNoContraction)

		// a radius too large for the derivative to stay away from zero
		_, err = RootInclusion(ball.NewInt64(1).AddError(big.NewFloat(2)), p, dp, 64)
		require.ErrorIs(t, err, ErrNoContraction)
	})

	t.Run("RootBoundFujiwara", func(t *testing.T) {
		p := NewFromInt64s(-6, 11, -6, 1)
		b := p.RootBoundFujiwara(64)
		require.GreaterOrEqual(t, b.Cmp(big.NewFloat(3)), 0)

		require.Equal(t, 0, NewFromInt64s(5).RootBoundFujiwara(64).Sign())

		q := NewFromBalls([]*ball.Ball{ball.NewInt64(1), ball.New().AddError(big.NewFloat(1))})
		require.True(t, q.RootBoundFujiwara(64).IsInf())
	})
}
