package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tuneinsight/ballpoly/ball"
)

var rootsCmd = &cobra.Command{
	Use:   "roots",
	Short: "Isolate the complex roots of the polynomial",
	Long: `Runs the Durand-Kerner iteration from the roots of the job file, or from
default seeds, and prints the Weierstrass discs of the approximations.
Each disc marked isolated contains exactly one root. For real polynomials
the result is also checked by an independent verifier.`,
	RunE: runRoots,
}

func init() {
	rootCmd.AddCommand(rootsCmd)
}

func runRoots(cmd *cobra.Command, args []string) error {

	j, err := loadJob()
	if err != nil {
		return err
	}

	p, err := j.Poly()
	if err != nil {
		return err
	}

	var initial []*ball.Ball
	if len(j.Roots) > 0 {
		if initial, err = j.Balls(j.Roots); err != nil {
			return err
		}
	}

	n := p.Degree()
	if n < 0 {
		return fmt.Errorf("the zero polynomial has no isolated roots")
	}

	logf("root bound %s", p.RootBoundFujiwara(j.Prec).Text('g', 8))

	roots := make([]*ball.Ball, n)
	found, err := p.FindRoots(roots, initial, j.MaxIter, j.Prec)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	printf(w, "%d/%d roots isolated\n", found, n)
	for i, r := range roots {
		status := "isolated"
		if i >= found {
			status = "not isolated"
		}
		printf(w, "%3d: %s (%s)\n", i, r.Format(j.Digits), status)
	}

	if found == n && p.IsReal() {
		printf(w, "verified: %t\n", p.ValidateRealRoots(roots, j.Prec))
	}

	return nil
}
