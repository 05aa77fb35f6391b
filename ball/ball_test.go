package ball

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	eString    = "2.718281828459045235360287471352662497757247093699959574966967627724077"
	sqrt2      = "1.414213562373095048801688724209698078569671875376948073176679737990732"
	ln2        = "0.6931471805599453094172321214581765680755001343602552541206800094933936"
	ln3        = "1.098612288668109691395245236922525704647490557822749451734694333637494"
	piString   = "3.141592653589793238462643383279502884197169399375105820974944592307816"
	agm12      = "1.45679103104690686918643238326508197497386394322130559079418"
	erf1String = "0.8427007929497148693412206350826092592960669979663029084599418483368903"
)

func rat(s string) *big.Rat {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		panic(s)
	}
	return r
}

func requireContains(t *testing.T, b *Ball, re, im string) {
	t.Helper()
	require.True(t, b.IsFinite(), b.String())
	require.True(t, b.ContainsRat(rat(re), rat(im)), "%s does not contain %s + %si", b.String(), re, im)
}

func TestBall(t *testing.T) {

	prec := uint(128)

	t.Run("Exact", func(t *testing.T) {
		x := NewInt64(-7)
		require.True(t, x.IsExact())
		require.True(t, x.IsReal())
		require.True(t, x.IsNonZero())
		require.False(t, x.ContainsZero())
		require.True(t, New().IsExactZero())
		require.True(t, New().ContainsZero())
		require.False(t, New().IsNonZero())
		require.Equal(t, "-7", x.String())
	})

	t.Run("Rounding", func(t *testing.T) {
		b := NewRat(big.NewRat(1, 3), nil, 64)
		require.False(t, b.IsExact())
		require.True(t, b.ContainsRat(big.NewRat(1, 3), nil))

		n, _ := new(big.Int).SetString("123456789012345678901234567890", 10)
		b = NewBigInt(n, 32)
		require.True(t, b.ContainsBigInt(n))
		b = NewBigInt(n, 128)
		require.True(t, b.IsExact())

		r := New().Round(NewRat(big.NewRat(1, 3), big.NewRat(-2, 3), 128), 16)
		require.Equal(t, uint(16), r.Prec())
		require.True(t, r.ContainsRat(big.NewRat(1, 3), big.NewRat(-2, 3)))
	})

	t.Run("Arithmetic", func(t *testing.T) {
		x := NewComplex128(1 + 2i)
		y := NewRat(big.NewRat(1, 3), big.NewRat(-2, 7), prec)

		requireContains(t, New().Add(x, y, prec), "4/3", "12/7")
		requireContains(t, New().Sub(x, y, prec), "2/3", "16/7")
		// (1+2i)(1/3-2i/7) = 1/3 + 4/7 + i(2/3 - 2/7)
		requireContains(t, New().Mul(x, y, prec), "19/21", "8/21")
		requireContains(t, New().Inv(x, prec), "1/5", "-2/5")
		requireContains(t, New().Div(NewInt64(1), NewInt64(3), prec), "1/3", "0")
		requireContains(t, New().Div(x, NewInt64(4), prec), "1/4", "1/2")
		requireContains(t, New().PowUint(x, 3, prec), "-11", "-2")
		requireContains(t, New().MulI(x), "-2", "1")
		requireContains(t, New().Conj(x), "1", "-2")
		requireContains(t, New().Mul2Exp(x, -3), "1/8", "1/4")
	})

	t.Run("Aliasing", func(t *testing.T) {
		x := NewComplex128(1 + 2i)
		x.Mul(x, x, prec)
		requireContains(t, x, "-3", "4")
		x.Add(x, x, prec)
		requireContains(t, x, "-6", "8")
	})

	t.Run("InclusionMonotonicity", func(t *testing.T) {
		x := NewRat(big.NewRat(5, 7), big.NewRat(1, 9), prec)
		y := NewRat(big.NewRat(-3, 11), big.NewRat(2, 13), prec)
		xw := x.Clone().AddError(big.NewFloat(1e-10))
		yw := y.Clone().AddError(big.NewFloat(1e-12))

		require.True(t, xw.Contains(x))
		require.True(t, New().Mul(xw, yw, prec).Contains(New().Mul(x, y, prec)))
		require.True(t, New().Add(xw, yw, prec).Contains(New().Add(x, y, prec)))
		require.True(t, New().Inv(xw, prec).Contains(New().Inv(x, prec)))
	})

	t.Run("NotInvertible", func(t *testing.T) {
		x := NewFloat64(0.5).AddError(big.NewFloat(1))
		require.False(t, x.IsNonZero())
		require.False(t, New().Inv(x, prec).IsFinite())
		require.False(t, New().DivInt64(x, 0, prec).IsFinite())
	})

	t.Run("Predicates", func(t *testing.T) {
		x := NewFloat64(2.5).AddError(big.NewFloat(0.75))
		y := NewFloat64(3).AddError(big.NewFloat(0.25))
		require.True(t, x.Contains(y))
		require.False(t, y.Contains(x))
		require.True(t, x.Overlaps(y))
		require.False(t, NewInt64(5).Overlaps(y))
		require.True(t, x.ContainsInt64(2))
		require.False(t, x.ContainsInt64(4))

		_, ok := x.UniqueInt()
		require.False(t, ok)

		n, ok := y.UniqueInt()
		require.True(t, ok)
		require.Equal(t, int64(3), n.Int64())

		n, ok = NewFloat64(-4.1).AddError(big.NewFloat(0.2)).UniqueInt()
		require.True(t, ok)
		require.Equal(t, int64(-4), n.Int64())

		_, ok = NewFloat64(0.5).AddError(big.NewFloat(0.1)).UniqueInt()
		require.False(t, ok)

		u := New().Union(NewInt64(1), NewInt64(3), prec)
		require.True(t, u.ContainsInt64(1))
		require.True(t, u.ContainsInt64(3))

		// Equal compares values, not precisions
		half := NewRat(big.NewRat(1, 2), nil, 128)
		require.NotEqual(t, half.Prec(), NewFloat64(0.5).Prec())
		require.True(t, half.Equal(NewFloat64(0.5)))
		require.False(t, half.Equal(NewFloat64(0.5).AddError(big.NewFloat(1e-30))))
	})

	t.Run("Constants", func(t *testing.T) {
		requireContains(t, Pi(prec), piString, "0")
		requireContains(t, Log2Const(prec), ln2, "0")

		// series paths
		require.True(t, Pi(4000).Overlaps(Pi(3000)))
		requireContains(t, Pi(4000), piString, "0")
		requireContains(t, Log2Const(4000), ln2, "0")
	})

	t.Run("Exp", func(t *testing.T) {
		requireContains(t, New().Exp(NewInt64(1), prec), eString, "0")
		requireContains(t, New().Exp(NewInt64(0), prec), "1", "0")
		// exp(i*pi) = -1
		requireContains(t, New().Exp(New().MulI(Pi(prec)), prec), "-1", "0")
		requireContains(t, New().ExpPiI(NewInt64(1), prec), "-1", "0")
		e := New().Exp(NewInt64(-100), prec)
		require.True(t, e.IsNonZero())
	})

	t.Run("Log", func(t *testing.T) {
		requireContains(t, New().Log(NewInt64(2), prec), ln2, "0")
		requireContains(t, New().Log(NewInt64(3), prec), ln3, "0")
		requireContains(t, New().Log(NewInt64(1), prec), "0", "0")
		requireContains(t, New().Log(NewInt64(-1), prec), "0", piString)

		x := NewComplex128(1.5 - 0.25i)
		y := New().Exp(New().Log(x, prec), prec)
		require.True(t, y.ContainsRat(rat("1.5"), rat("-0.25")))

		// straddling the cut
		require.False(t, New().Log(NewFloat64(-2).AddError(big.NewFloat(0.1)), prec).IsFinite())
	})

	t.Run("Sqrt", func(t *testing.T) {
		requireContains(t, New().Sqrt(NewInt64(2), prec), sqrt2, "0")
		requireContains(t, New().Sqrt(NewComplex128(3+4i), prec), "2", "1")
		requireContains(t, New().Sqrt(NewInt64(-4), prec), "0", "2")
		requireContains(t, New().Rsqrt(NewInt64(4), prec), "1/2", "0")

		x := NewComplex128(-3 + 0.5i)
		s := New().Sqrt(x, prec)
		require.True(t, New().Sqr(s, prec).ContainsRat(rat("-3"), rat("0.5")))
		require.Equal(t, 1, s.Real().Sign())

		// straddling the cut
		require.False(t, New().Sqrt(NewComplex128(-1+0.001i).AddError(big.NewFloat(0.01)), prec).IsFinite())
		require.False(t, New().Sqrt(NewFloat64(-2).AddError(big.NewFloat(0.1)), prec).IsFinite())
	})

	t.Run("Pow", func(t *testing.T) {
		requireContains(t, New().Pow(NewInt64(2), NewFloat64(0.5), prec), sqrt2, "0")
		requireContains(t, New().Pow(NewInt64(3), NewInt64(-2), prec), "1/9", "0")
	})

	t.Run("SinCos", func(t *testing.T) {
		for _, x := range []*Ball{NewInt64(1), NewComplex128(0.5 - 1.25i), NewFloat64(1e-30), NewFloat64(3).AddError(big.NewFloat(1e-20))} {
			s, c := New(), New()
			SinCos(s, c, x, prec)
			one := New().Add(New().Sqr(s, prec), New().Sqr(c, prec), prec)
			requireContains(t, one, "1", "0")
		}

		// sin(pi/2) = 1
		x := Pi(prec)
		x.Mul2Exp(x, -1)
		requireContains(t, New().Sin(x, prec), "1", "0")
		requireContains(t, New().Cos(x, prec), "0", "0")

		s, c := New(), New()
		SinhCosh(s, c, NewFloat64(0.75), prec)
		one := New().Sub(New().Sqr(c, prec), New().Sqr(s, prec), prec)
		requireContains(t, one, "1", "0")
	})

	t.Run("Special", func(t *testing.T) {
		requireContains(t, New().Erf(NewInt64(1), prec), erf1String, "0")
		requireContains(t, New().Erf(NewInt64(-1), prec), "-"+erf1String, "0")
		requireContains(t, New().Agm1(NewInt64(2), prec), agm12, "0")
		requireContains(t, New().Agm1(NewInt64(1), prec), "1", "0")
		require.False(t, New().Agm1(NewInt64(-2), prec).IsFinite())
	})

	t.Run("MarshalBinary", func(t *testing.T) {
		for _, x := range []*Ball{New(), NewRat(big.NewRat(1, 3), big.NewRat(-5, 7), prec), Indeterminate(), NewFloat64(2).AddError(big.NewFloat(1e-9))} {
			data, err := x.MarshalBinary()
			require.NoError(t, err)
			y := New()
			require.NoError(t, y.UnmarshalBinary(data))
			require.True(t, x.Equal(y) || !x.IsFinite() && !y.IsFinite(), "%s != %s", x, y)
			require.Equal(t, x.Prec(), y.Prec())
		}

		require.Error(t, New().UnmarshalBinary([]byte{1, 2, 3}))
	})
}
