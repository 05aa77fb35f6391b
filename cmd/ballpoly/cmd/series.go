package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tuneinsight/ballpoly/ball"
	"github.com/tuneinsight/ballpoly/internal/job"
	"github.com/tuneinsight/ballpoly/poly"
)

var seriesCmd = &cobra.Command{
	Use:   "series",
	Short: "Expand a function of the polynomial as a truncated power series",
	Long: `Computes f(p(x)) mod x^n for the function f and the length n of the series
section of the job file. For zeta and polylog the polynomial is the series
of the exponent s, for ellipp it is the series of z.

Functions: ` + strings.Join(seriesNames(), ", "),
	RunE: runSeries,
}

func init() {
	rootCmd.AddCommand(seriesCmd)
}

// seriesFunc sets p to f(h) mod x^n, param being the optional extra argument of f.
type seriesFunc func(p, h *poly.Poly, param *ball.Ball, s *job.Series, prec uint) error

func withParam(name string, f seriesFunc) seriesFunc {
	return func(p, h *poly.Poly, param *ball.Ball, s *job.Series, prec uint) error {
		if param == nil {
			return fmt.Errorf("series %s: missing param", name)
		}
		return f(p, h, param, s, prec)
	}
}

func unary(f func(p, h *poly.Poly, n int, prec uint) error) seriesFunc {
	return func(p, h *poly.Poly, _ *ball.Ball, s *job.Series, prec uint) error {
		return f(p, h, s.Length, prec)
	}
}

func total(f func(p, h *poly.Poly, n int, prec uint) *poly.Poly) seriesFunc {
	return func(p, h *poly.Poly, _ *ball.Ball, s *job.Series, prec uint) error {
		f(p, h, s.Length, prec)
		return nil
	}
}

var seriesFuncs = map[string]seriesFunc{
	"inv":     unary((*poly.Poly).InvSeries),
	"exp":     total((*poly.Poly).ExpSeries),
	"log":     unary((*poly.Poly).LogSeries),
	"sqrt":    unary((*poly.Poly).SqrtSeries),
	"rsqrt":   unary((*poly.Poly).RsqrtSeries),
	"sin":     total((*poly.Poly).SinSeries),
	"cos":     total((*poly.Poly).CosSeries),
	"tan":     unary((*poly.Poly).TanSeries),
	"sinh":    total((*poly.Poly).SinhSeries),
	"cosh":    total((*poly.Poly).CoshSeries),
	"tanh":    unary((*poly.Poly).TanhSeries),
	"revert":  unary((*poly.Poly).RevertSeries),
	"gamma":   unary((*poly.Poly).GammaSeries),
	"rgamma":  unary((*poly.Poly).RGammaSeries),
	"lgamma":  unary((*poly.Poly).LGammaSeries),
	"digamma": unary((*poly.Poly).DigammaSeries),
	"erf":     unary((*poly.Poly).ErfSeries),
	"agm1":    unary((*poly.Poly).Agm1Series),
	"ellipk":  unary((*poly.Poly).EllipticKSeries),
	"ellipe":  unary((*poly.Poly).EllipticESeries),
	"pow": withParam("pow", func(p, h *poly.Poly, e *ball.Ball, s *job.Series, prec uint) error {
		return p.PowSeries(h, e, s.Length, prec)
	}),
	"zeta": withParam("zeta", func(p, h *poly.Poly, a *ball.Ball, s *job.Series, prec uint) error {
		return p.ZetaSeries(h, a, s.Deflate, s.Length, prec)
	}),
	"polylog": withParam("polylog", func(p, h *poly.Poly, z *ball.Ball, s *job.Series, prec uint) error {
		return p.PolylogSeries(h, z, s.Length, prec)
	}),
	"ellipp": withParam("ellipp", func(p, h *poly.Poly, tau *ball.Ball, s *job.Series, prec uint) error {
		return p.EllipticPSeries(h, tau, s.Length, prec)
	}),
}

func seriesNames() (names []string) {
	for name := range seriesFuncs {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

func runSeries(cmd *cobra.Command, args []string) error {

	j, err := loadJob()
	if err != nil {
		return err
	}

	if j.Series == nil {
		return fmt.Errorf("the job file has no series section")
	}

	f, ok := seriesFuncs[j.Series.Function]
	if !ok {
		return fmt.Errorf("unknown series function %q, expected one of %s", j.Series.Function, strings.Join(seriesNames(), ", "))
	}

	h, err := j.Poly()
	if err != nil {
		return err
	}

	var param *ball.Ball
	if j.Series.Param != "" {
		if param, err = j.Ball(j.Series.Param); err != nil {
			return err
		}
	}

	// the power sum of zeta is split among the workers
	if j.Series.Function == "zeta" && j.Workers > 1 {
		f = withParam("zeta", func(p, h *poly.Poly, a *ball.Ball, s *job.Series, prec uint) error {
			return p.ZetaSeriesParallel(h, a, s.Deflate, s.Length, j.Workers, prec)
		})
	}

	logf("%s series of length %d", j.Series.Function, j.Series.Length)

	p := poly.New()
	if err = f(p, h, param, j.Series, j.Prec); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	for i := 0; i < j.Series.Length; i++ {
		printf(w, "%3d: %s\n", i, p.Coeff(i).Format(j.Digits))
	}

	logf("radius statistics\n%s", p.RadiusStats())

	return nil
}
