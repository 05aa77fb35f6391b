// Package cmd implements the commands of ballpoly.
package cmd

import (
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"

	"github.com/tuneinsight/ballpoly/internal/job"
)

var (
	cfgFile string
	prec    uint
	digits  int
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "ballpoly",
	Short: "Rigorous polynomial arithmetic with complex ball coefficients",
	Long: `ballpoly evaluates, interpolates, expands and solves polynomials with complex ball
coefficients. Every printed ball contains the exact result.

The polynomial and the parameters of the computation are read from a job file
(YAML or TOML) given with --config.`,
	SilenceUsage: true,
}

// Execute runs the command given on the command line.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "job file (.yaml, .yml or .toml)")
	rootCmd.PersistentFlags().UintVar(&prec, "prec", 0, "working precision in bits, overrides the job file")
	rootCmd.PersistentFlags().IntVar(&digits, "digits", 0, "printed significant digits, overrides the job file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log progress to stderr")
}

// loadJob reads the job file and applies the command line overrides.
func loadJob() (*job.Job, error) {

	if cfgFile == "" {
		return nil, fmt.Errorf("missing job file, use --config")
	}

	j, err := job.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	if prec != 0 {
		j.Prec = prec
	}

	if digits != 0 {
		j.Digits = digits
	}

	logf("job %q: degree %d, %d bits", j.Name, len(j.Coeffs)-1, j.Prec)

	return j, nil
}

func logf(format string, args ...interface{}) {
	if verbose {
		log.Printf(format, args...)
	}
}

func printf(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, format, args...)
}
