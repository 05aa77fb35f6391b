// Command ballpoly runs rigorous polynomial computations described by a job file.
package main

import (
	"os"

	"github.com/tuneinsight/ballpoly/cmd/ballpoly/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
