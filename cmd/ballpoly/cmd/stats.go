package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print a summary of the polynomial",
	Long: `Prints the degree, the BLAKE3 digest of the binary encoding, the Fujiwara root
bound and the statistics of the coefficient radii of the polynomial.`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {

	j, err := loadJob()
	if err != nil {
		return err
	}

	p, err := j.Poly()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	printf(w, "degree: %d\n", p.Degree())
	printf(w, "digest: %x\n", p.Digest())
	printf(w, "root bound: %s\n", p.RootBoundFujiwara(j.Prec).Text('g', j.Digits))
	fmt.Fprint(w, p.RadiusStats().String())

	return nil
}
