package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeJob(t *testing.T, name, data string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	prec, digits, verbose = 0, 0, false
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCommands(t *testing.T) {

	path := writeJob(t, "job.yaml", `
name: test
coeffs: ["-6", "11", "-6", "1"]
prec: 128
digits: 10
points: ["0", "1/2", "4, 1"]
nodes: ["0", "1", "2", "3"]
values: ["-6", "0", "0", "0"]
series:
  function: exp
  length: 4
`)

	t.Run("Roots", func(t *testing.T) {
		out, err := run(t, "roots", "--config", path)
		require.NoError(t, err)
		require.Contains(t, out, "3/3 roots isolated")
		require.Contains(t, out, "verified: true")
	})

	t.Run("Eval", func(t *testing.T) {
		out, err := run(t, "eval", "--config", path)
		require.NoError(t, err)
		require.Contains(t, out, "p(0) = ")
		require.Contains(t, out, "p(4, 1) = ")

		out, err = run(t, "eval", "--fast", "--config", path)
		fast = false
		require.NoError(t, err)
		require.Contains(t, out, "p(1/2) = ")
	})

	t.Run("Interpolate", func(t *testing.T) {
		out, err := run(t, "interpolate", "--config", path)
		require.NoError(t, err)
		require.Contains(t, out, "integer coefficients: [-6 11 -6 1]")
	})

	t.Run("Series", func(t *testing.T) {
		out, err := run(t, "series", "--config", path, "--prec", "64")
		require.NoError(t, err)
		require.Contains(t, out, "  3: ")

		zeta := writeJob(t, "zeta.toml", `
coeffs = ["2", "1"]
workers = 3

[series]
function = "zeta"
length = 2
`)
		_, err = run(t, "series", "--config", zeta)
		require.Error(t, err)

		unknown := writeJob(t, "unknown.toml", `
coeffs = ["2", "1"]

[series]
function = "bessel"
`)
		_, err = run(t, "series", "--config", unknown)
		require.Error(t, err)
	})

	t.Run("Stats", func(t *testing.T) {
		out, err := run(t, "stats", "--config", path)
		require.NoError(t, err)
		require.Contains(t, out, "degree: 3")
		require.Contains(t, out, "digest: ")
	})

	t.Run("MissingConfig", func(t *testing.T) {
		cfgFile = ""
		_, err := run(t, "roots")
		require.Error(t, err)
	})
}
