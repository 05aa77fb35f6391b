package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tuneinsight/ballpoly/poly"
)

var interpolateCmd = &cobra.Command{
	Use:   "interpolate",
	Short: "Interpolate the nodes and values of the job file",
	Long: `Computes the polynomial of degree less than the number of nodes taking the given
values at the nodes. If the enclosure determines integer coefficients, they
are printed as well.`,
	RunE: runInterpolate,
}

func init() {
	rootCmd.AddCommand(interpolateCmd)
}

func runInterpolate(cmd *cobra.Command, args []string) error {

	j, err := loadJob()
	if err != nil {
		return err
	}

	xs, err := j.Balls(j.Nodes)
	if err != nil {
		return err
	}

	ys, err := j.Balls(j.Values)
	if err != nil {
		return err
	}

	if len(xs) == 0 {
		return fmt.Errorf("no interpolation nodes")
	}

	logf("interpolating %d nodes", len(xs))

	p := poly.New()
	if err = p.Interpolate(xs, ys, j.Prec); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	printf(w, "%s\n", p.Format(j.Digits))

	coeffs, err := p.UniqueBigInts()
	switch {
	case err == nil:
		printf(w, "integer coefficients: %v\n", coeffs)
	case errors.Is(err, poly.ErrAmbiguous):
		logf("%v", err)
	default:
		return err
	}

	return nil
}
