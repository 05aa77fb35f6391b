package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var fast bool

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Evaluate the polynomial at the points of the job file",
	RunE:  runEval,
}

func init() {
	evalCmd.Flags().BoolVar(&fast, "fast", false, "use the subproduct tree evaluation")
	rootCmd.AddCommand(evalCmd)
}

func runEval(cmd *cobra.Command, args []string) error {

	j, err := loadJob()
	if err != nil {
		return err
	}

	p, err := j.Poly()
	if err != nil {
		return err
	}

	points, err := j.Balls(j.Points)
	if err != nil {
		return err
	}

	if len(points) == 0 {
		return fmt.Errorf("no evaluation points")
	}

	logf("evaluating at %d points with %d workers", len(points), j.Workers)

	var ys = p.EvalVecIteratedParallel(points, j.Workers, j.Prec)
	if fast {
		ys = p.EvalVecFastParallel(points, j.Workers, j.Prec)
	}

	w := cmd.OutOrStdout()
	for i := range points {
		printf(w, "p(%s) = %s\n", j.Points[i], ys[i].Format(j.Digits))
	}

	return nil
}
