package poly

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuneinsight/ballpoly/ball"
	"github.com/tuneinsight/ballpoly/utils/bignum"
)

const (
	euler   = "0.5772156649015328606065120900824024310422"
	zeta2   = "1.6449340668482264364724151666460251892189"
	dzeta2  = "-0.9375482543158437537025740945678649778979"
	pi      = "3.1415926535897932384626433832795028841972"
	sqrtPi  = "1.7724538509055160272981674833411451827975"
	log2    = "0.6931471805599453094172321214581765680755"
	stielt1 = "0.0728158454836767248605863758749547830"
)

// requireNear checks that b is an accurate enclosure of the real number given in decimal.
func requireNear(t *testing.T, b *ball.Ball, value string) {
	t.Helper()
	require.True(t, b.IsFinite(), b.String())
	want := ball.NewRat(rat(value), nil, 256).AddError(big.NewFloat(1e-30))
	require.True(t, b.Overlaps(want), "%s does not contain %s", b.String(), value)
	require.Equal(t, -1, b.Rad().Cmp(big.NewFloat(1e-12)), "%s is too wide", b.String())
}

// requireNearCoeffs calls requireNear on the first coefficients of p.
func requireNearCoeffs(t *testing.T, p *Poly, values ...string) {
	t.Helper()
	for i, v := range values {
		requireNear(t, p.Coeff(i), v)
	}
}

func mulRat(s string, a, b int64) string {
	return new(big.Rat).Mul(rat(s), big.NewRat(a, b)).FloatString(40)
}

func TestSeries(t *testing.T) {

	prec := uint(128)

	x := NewFromInt64s(0, 1)
	onePlusX := NewFromInt64s(1, 1)

	t.Run("InvSeries", func(t *testing.T) {
		p := New()
		require.NoError(t, p.InvSeries(NewFromInt64s(1, -1), 100, prec))
		require.Equal(t, 100, p.Len())
		for i := 0; i < 100; i++ {
			require.True(t, p.Coeff(i).ContainsInt64(1))
		}

		require.ErrorIs(t, p.InvSeries(x, 10, prec), ErrNotInvertible)
		require.Equal(t, 100, p.Len())
	})

	t.Run("DivSeries", func(t *testing.T) {
		// (1 + x)/(1 - x) = 1 + 2x + 2x^2 + ...
		p := New()
		require.NoError(t, p.DivSeries(onePlusX, NewFromInt64s(1, -1), 20, prec))
		require.True(t, p.Coeff(0).ContainsInt64(1))
		for i := 1; i < 20; i++ {
			require.True(t, p.Coeff(i).ContainsInt64(2))
		}
	})

	t.Run("ComposeSeries", func(t *testing.T) {

		// 1/(1 - y) at y = x + x^2 is the generating function of the Fibonacci numbers
		g := New()
		require.NoError(t, g.InvSeries(NewFromInt64s(1, -1), 60, prec))
		f := NewFromInt64s(0, 1, 1)

		fib := make([]*big.Int, 60)
		fib[0], fib[1] = big.NewInt(1), big.NewInt(1)
		for i := 2; i < len(fib); i++ {
			fib[i] = new(big.Int).Add(fib[i-1], fib[i-2])
		}

		for name, compose := range map[string]func(p, g, f *Poly, n int, prec uint) *Poly{
			"Horner":    (*Poly).ComposeSeriesHorner,
			"BrentKung": (*Poly).ComposeSeriesBrentKung,
			"Dispatch":  (*Poly).ComposeSeries,
		} {
			t.Run(name, func(t *testing.T) {
				require.True(t, compose(New(), g, f, 60, prec).ContainsBigInts(fib))
			})
		}

		// g(f) with f(0) != 0: (1 + y)^2 at y = 1 + x
		p := New().ComposeSeries(NewFromInt64s(1, 2, 1), onePlusX, 5, prec)
		require.True(t, p.Equal(NewFromInt64s(4, 4, 1)))
	})

	t.Run("RevertSeries", func(t *testing.T) {

		// the inverse of x + x^2 has the signed Catalan numbers as coefficients
		f := NewFromInt64s(0, 1, 1)
		n := 40

		want := make([]*big.Int, n)
		want[0] = new(big.Int)
		for k := 1; k < n; k++ {
			c := bignum.Binomial(2*(k-1), k-1)
			c.Quo(c, big.NewInt(int64(k)))
			if k%2 == 0 {
				c.Neg(c)
			}
			want[k] = c
		}

		for name, revert := range map[string]func(p, f *Poly, n int, prec uint) error{
			"Lagrange":     (*Poly).RevertSeriesLagrange,
			"LagrangeFast": (*Poly).RevertSeriesLagrangeFast,
			"Newton":       (*Poly).RevertSeriesNewton,
			"Dispatch":     (*Poly).RevertSeries,
		} {
			t.Run(name, func(t *testing.T) {
				p := New()
				require.NoError(t, revert(p, f, n, prec))
				require.True(t, p.ContainsBigInts(want))
			})
		}

		p := NewFromInt64s(9)
		require.ErrorIs(t, p.RevertSeries(onePlusX, 5, prec), ErrDomain)
		require.ErrorIs(t, p.RevertSeries(NewFromInt64s(0, 0, 1), 5, prec), ErrNotInvertible)
		require.True(t, p.Equal(NewFromInt64s(9)))
	})

	t.Run("ExpSeries", func(t *testing.T) {
		p := New().ExpSeries(x, 10, 64)
		fact := big.NewInt(1)
		for k := 0; k < 10; k++ {
			if k > 0 {
				fact.Mul(fact, big.NewInt(int64(k)))
			}
			require.True(t, p.Coeff(k).ContainsRat(new(big.Rat).SetFrac(big.NewInt(1), fact), nil), "k = %d", k)
		}

		// exp(2x) exp(-x) = exp(x)
		e2 := New().ExpSeries(NewFromInt64s(0, 2), 30, prec)
		e1 := New().ExpSeries(NewFromInt64s(0, -1), 30, prec)
		require.True(t, New().MulLow(e2, e1, 30, prec).Overlaps(New().ExpSeries(x, 30, prec)))

		require.True(t, New().ExpSeries(New(), 5, prec).Equal(NewFromInt64s(1)))
	})

	t.Run("LogSeries", func(t *testing.T) {
		p := New()
		require.NoError(t, p.LogSeries(onePlusX, 12, prec))
		require.True(t, p.Coeff(0).IsExactZero())
		for k := 1; k < 12; k++ {
			c := big.NewRat(1, int64(k))
			if k%2 == 0 {
				c.Neg(c)
			}
			require.True(t, p.Coeff(k).ContainsRat(c, nil), "k = %d", k)
		}

		// log(exp(h)) = h
		h := NewFromInt64s(0, 3, -1, 2)
		require.NoError(t, p.LogSeries(New().ExpSeries(h, 20, prec), 20, prec))
		require.True(t, p.ContainsBigInts([]*big.Int{big.NewInt(0), big.NewInt(3), big.NewInt(-1), big.NewInt(2)}))

		require.ErrorIs(t, p.LogSeries(x, 5, prec), ErrNotInvertible)
	})

	t.Run("SqrtSeries", func(t *testing.T) {
		p := New()
		require.NoError(t, p.SqrtSeries(onePlusX, 5, prec))
		require.True(t, p.ContainsRats([]*big.Rat{big.NewRat(1, 1), big.NewRat(1, 2), big.NewRat(-1, 8), big.NewRat(1, 16), big.NewRat(-5, 128)}))

		require.NoError(t, p.RsqrtSeries(onePlusX, 4, prec))
		require.True(t, p.ContainsRats([]*big.Rat{big.NewRat(1, 1), big.NewRat(-1, 2), big.NewRat(3, 8), big.NewRat(-5, 16)}))

		require.NoError(t, p.PowSeries(onePlusX, ball.NewRat(big.NewRat(1, 2), nil, prec), 5, prec))
		require.True(t, p.ContainsRats([]*big.Rat{big.NewRat(1, 1), big.NewRat(1, 2), big.NewRat(-1, 8), big.NewRat(1, 16), big.NewRat(-5, 128)}))

		// integer exponents take the exact path
		require.NoError(t, p.PowSeries(onePlusX, ball.NewInt64(3), 10, prec))
		require.True(t, p.Equal(NewFromInt64s(1, 3, 3, 1)))
		require.True(t, New().PowUintSeries(onePlusX, 3, 2, prec).Equal(NewFromInt64s(1, 3)))

		// (4 + x)^2 under the square root
		require.NoError(t, p.SqrtSeries(NewFromInt64s(16, 8, 1), 6, prec))
		require.True(t, p.ContainsBigInts([]*big.Int{big.NewInt(4), big.NewInt(1)}))

		// constant term straddling the branch cut but not containing zero
		a0 := ball.NewComplex128(-1 + 0.001i).AddError(big.NewFloat(0.01))
		require.True(t, a0.IsNonZero())
		a := NewFromBalls([]*ball.Ball{a0, ball.NewInt64(1)})
		q := p.Copy()
		for _, n := range []int{4, 100} {
			require.ErrorIs(t, p.SqrtSeries(a, n, prec), ErrDomain)
			require.ErrorIs(t, p.RsqrtSeries(a, n, prec), ErrDomain)
			require.True(t, p.Equal(q))
		}

		// exactly on the cut
		require.NoError(t, p.SqrtSeries(NewFromInt64s(-4, 1), 3, prec))
		require.True(t, p.Coeff(0).ContainsRat(new(big.Rat), big.NewRat(2, 1)))
	})

	t.Run("SinCosSeries", func(t *testing.T) {
		h := NewFromInt64s(1, 2, -3)
		n := 25

		s, c := New(), New()
		SinCosSeries(s, c, h, n, prec)
		require.True(t, s.Overlaps(New().SinSeries(h, n, prec)))
		require.True(t, c.Overlaps(New().CosSeries(h, n, prec)))

		// sin^2 + cos^2 = 1
		s2 := New().MulLow(s, s, n, prec)
		s2.Add(s2, New().MulLow(c, c, n, prec), prec)
		require.True(t, s2.ContainsBigInts([]*big.Int{big.NewInt(1)}))

		// cosh^2 - sinh^2 = 1
		SinhCoshSeries(s, c, h, n, prec)
		s2 = New().MulLow(c, c, n, prec)
		s2.Sub(s2, New().MulLow(s, s, n, prec), prec)
		require.True(t, s2.ContainsBigInts([]*big.Int{big.NewInt(1)}))
		require.True(t, s.Overlaps(New().SinhSeries(h, n, prec)))
		require.True(t, c.Overlaps(New().CoshSeries(h, n, prec)))

		sx := New().SinSeries(x, 6, prec)
		require.True(t, sx.ContainsRats([]*big.Rat{big.NewRat(0, 1), big.NewRat(1, 1), big.NewRat(0, 1), big.NewRat(-1, 6), big.NewRat(0, 1), big.NewRat(1, 120)}))
	})

	t.Run("TanSeries", func(t *testing.T) {
		p := New()
		require.NoError(t, p.TanSeries(x, 6, prec))
		require.True(t, p.ContainsRats([]*big.Rat{big.NewRat(0, 1), big.NewRat(1, 1), big.NewRat(0, 1), big.NewRat(1, 3), big.NewRat(0, 1), big.NewRat(2, 15)}))
		require.NoError(t, p.TanhSeries(x, 6, prec))
		require.True(t, p.ContainsRats([]*big.Rat{big.NewRat(0, 1), big.NewRat(1, 1), big.NewRat(0, 1), big.NewRat(-1, 3), big.NewRat(0, 1), big.NewRat(2, 15)}))

		// cos vanishes at pi/2
		h := NewFromBalls([]*ball.Ball{ball.New().Mul2Exp(ball.Pi(prec), -1)})
		require.ErrorIs(t, p.TanSeries(h, 3, prec), ErrNotInvertible)
	})
}

func TestSpecialSeries(t *testing.T) {

	prec := uint(128)

	onePlusX := NewFromInt64s(1, 1)

	t.Run("GammaSeries", func(t *testing.T) {
		p := New()
		require.NoError(t, p.GammaSeries(onePlusX, 2, prec))
		requireNearCoeffs(t, p, "1", "-"+euler)

		require.NoError(t, p.GammaSeries(NewFromBalls([]*ball.Ball{ball.NewFloat64(0.5)}), 1, prec))
		requireNear(t, p.Coeff(0), sqrtPi)

		require.NoError(t, p.GammaSeries(NewFromBalls([]*ball.Ball{ball.NewFloat64(-0.5)}), 1, prec))
		requireNear(t, p.Coeff(0), mulRat(sqrtPi, -2, 1))

		// gamma(5 + x) = 24 + ...
		require.NoError(t, p.GammaSeries(NewFromInt64s(5, 1), 1, prec))
		requireNear(t, p.Coeff(0), "24")

		require.ErrorIs(t, p.GammaSeries(NewFromInt64s(0, 1), 3, prec), ErrNotInvertible)
		require.ErrorIs(t, p.GammaSeries(NewFromInt64s(-3, 1), 3, prec), ErrNotInvertible)
	})

	t.Run("RGammaSeries", func(t *testing.T) {
		// 1/gamma(x) = x + euler x^2 + ...
		p := New()
		require.NoError(t, p.RGammaSeries(NewFromInt64s(0, 1), 3, prec))
		require.True(t, p.Coeff(0).ContainsInt64(0))
		requireNear(t, p.Coeff(1), "1")
		requireNear(t, p.Coeff(2), euler)
	})

	t.Run("LGammaSeries", func(t *testing.T) {
		p := New()
		require.NoError(t, p.LGammaSeries(onePlusX, 3, prec))
		require.True(t, p.Coeff(0).ContainsInt64(0))
		requireNear(t, p.Coeff(1), "-"+euler)
		requireNear(t, p.Coeff(2), mulRat(zeta2, 1, 2))
	})

	t.Run("DigammaSeries", func(t *testing.T) {
		p := New()
		require.NoError(t, p.DigammaSeries(onePlusX, 2, prec))
		requireNearCoeffs(t, p, "-"+euler, zeta2)
	})

	t.Run("ZetaSeries", func(t *testing.T) {
		p := New()
		one := ball.NewInt64(1)

		require.NoError(t, p.ZetaSeries(NewFromInt64s(2, 1), one, false, 2, prec))
		requireNearCoeffs(t, p, zeta2, dzeta2)

		// zeta(2, 1/2) = 3 zeta(2)
		require.NoError(t, p.ZetaSeries(NewFromInt64s(2), ball.NewFloat64(0.5), false, 1, prec))
		requireNear(t, p.Coeff(0), mulRat(zeta2, 3, 1))

		// zeta(s) - 1/(s - 1) = euler - gamma_1 (s - 1) + ...
		require.NoError(t, p.ZetaSeries(onePlusX, one, true, 2, prec))
		requireNearCoeffs(t, p, euler, stielt1)

		require.ErrorIs(t, p.ZetaSeries(onePlusX, one, false, 2, prec), ErrNotInvertible)
		require.ErrorIs(t, p.ZetaSeries(onePlusX, ball.NewInt64(-1), false, 2, prec), ErrDomain)
	})

	t.Run("ZetaSeriesParallel", func(t *testing.T) {
		s := NewFromBalls([]*ball.Ball{ball.NewComplex128(complex(0.5, 14)), ball.NewInt64(1)})
		a := ball.NewInt64(1)

		want := New()
		require.NoError(t, want.ZetaSeries(s, a, false, 4, prec))

		for _, workers := range []int{1, 2, 5} {
			t.Run(fmt.Sprintf("Workers=%d", workers), func(t *testing.T) {
				p := New()
				require.NoError(t, p.ZetaSeriesParallel(s, a, false, 4, workers, prec))
				require.True(t, p.Equal(want))
			})
		}
	})

	t.Run("PolylogSeries", func(t *testing.T) {
		p := New()
		half := ball.NewFloat64(0.5)

		require.NoError(t, p.PolylogSeries(NewFromInt64s(1), half, 1, prec))
		requireNear(t, p.Coeff(0), log2)

		require.NoError(t, p.PolylogSeries(NewFromInt64s(0), half, 1, prec))
		requireNear(t, p.Coeff(0), "1")

		require.NoError(t, p.PolylogSeries(NewFromInt64s(-1), half, 1, prec))
		requireNear(t, p.Coeff(0), "2")

		require.NoError(t, p.PolylogSeries(NewFromInt64s(2, 1), half, 2, prec))
		requireNear(t, p.Coeff(0), "0.5822405264650125059026563201596801087443")

		// d/ds Li_s(z) = -sum z^k log(k)/k^s
		require.False(t, p.Coeff(1).ContainsZero())
		require.Equal(t, -1, p.Coeff(1).Real().Sign())

		require.ErrorIs(t, p.PolylogSeries(NewFromInt64s(2), ball.NewInt64(1), 1, prec), ErrDomain)
	})

	t.Run("ErfSeries", func(t *testing.T) {
		// erf(x) = 2/sqrt(pi) (x - x^3/3 + ...)
		p := New()
		require.NoError(t, p.ErfSeries(NewFromInt64s(0, 1), 4, prec))
		c := new(big.Rat).Quo(big.NewRat(2, 1), rat(sqrtPi)).FloatString(40)
		require.True(t, p.Coeff(0).ContainsInt64(0))
		requireNear(t, p.Coeff(1), c)
		require.True(t, p.Coeff(2).ContainsInt64(0))
		requireNear(t, p.Coeff(3), mulRat(c, -1, 3))
	})

	t.Run("Agm1Series", func(t *testing.T) {
		p := New()
		require.NoError(t, p.Agm1Series(onePlusX, 3, prec))
		requireNearCoeffs(t, p, "1", "0.5", "-0.0625")

		require.ErrorIs(t, p.Agm1Series(NewFromInt64s(-1, 1), 3, prec), ErrDomain)
	})

	t.Run("EllipticSeries", func(t *testing.T) {
		m := NewFromInt64s(0, 1)

		K := New()
		require.NoError(t, K.EllipticKSeries(m, 3, prec))
		requireNearCoeffs(t, K, mulRat(pi, 1, 2), mulRat(pi, 1, 8), mulRat(pi, 9, 128))

		E := New()
		require.NoError(t, E.EllipticESeries(m, 3, prec))
		requireNearCoeffs(t, E, mulRat(pi, 1, 2), mulRat(pi, -1, 8), mulRat(pi, -3, 128))

		require.Error(t, E.EllipticESeries(NewFromInt64s(1, 1), 3, prec))
	})

	t.Run("EllipticPSeries", func(t *testing.T) {

		tau := ball.I()
		p := New()

		// P vanishes at the half period (1 + i)/2 of the square lattice, where P' vanishes too
		z := NewFromBalls([]*ball.Ball{ball.NewComplex128(complex(0.5, 0.5)), ball.NewInt64(1)})
		require.NoError(t, p.EllipticPSeries(z, tau, 3, prec))
		require.True(t, p.Coeff(0).ContainsInt64(0), p.Coeff(0).String())
		require.True(t, p.Coeff(1).ContainsInt64(0), p.Coeff(1).String())

		z = NewFromBalls([]*ball.Ball{ball.NewFloat64(0.5), ball.NewInt64(1)})
		require.NoError(t, p.EllipticPSeries(z, tau, 3, prec))
		require.True(t, p.Coeff(1).ContainsInt64(0), p.Coeff(1).String())

		// evenness and periodicity
		z0 := ball.NewComplex128(complex(0.3, 0.2))
		q0, q1, q2 := New(), New(), New()
		require.NoError(t, q0.EllipticPSeries(NewFromBalls([]*ball.Ball{z0, ball.NewInt64(1)}), tau, 4, prec))
		require.NoError(t, q1.EllipticPSeries(NewFromBalls([]*ball.Ball{ball.New().Neg(z0), ball.NewInt64(-1)}), tau, 4, prec))
		require.NoError(t, q2.EllipticPSeries(NewFromBalls([]*ball.Ball{ball.New().Add(z0, ball.NewInt64(1), prec), ball.NewInt64(1)}), tau, 4, prec))
		require.True(t, q0.Overlaps(q1))
		require.True(t, q0.Overlaps(q2))

		require.ErrorIs(t, p.EllipticPSeries(NewFromInt64s(0, 1), tau, 3, prec), ErrNotInvertible)
		require.ErrorIs(t, p.EllipticPSeries(z, ball.NewInt64(1), 3, prec), ErrDomain)
	})
}
