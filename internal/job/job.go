// Package job implements the job files of the ballpoly command: a polynomial given by exact
// coefficients together with the parameters of the operations to run on it.
// Jobs are read from YAML or TOML files.
package job

import (
	"bytes"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/tuneinsight/ballpoly/ball"
	"github.com/tuneinsight/ballpoly/poly"
)

// Format is the encoding of a job file.
type Format int

const (
	// FormatAuto selects the format from the file extension.
	FormatAuto Format = iota
	// FormatYAML is a YAML document.
	FormatYAML
	// FormatTOML is a TOML document.
	FormatTOML
)

func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	default:
		return "unknown"
	}
}

// Default values of the optional fields.
const (
	DefaultPrec    = 128
	DefaultDigits  = 20
	DefaultMaxIter = 100
	DefaultWorkers = 1
	DefaultLength  = 8
)

// Job is a polynomial with the parameters of the operations applied to it.
// Numbers are strings holding an exact rational, "3", "-1/7" or "0.125", or a complex
// rational with the imaginary part after a comma, "1/2, -3".
type Job struct {
	Name    string   `yaml:"name" toml:"name"`
	Coeffs  []string `yaml:"coeffs" toml:"coeffs"`
	Prec    uint     `yaml:"prec" toml:"prec"`
	Digits  int      `yaml:"digits" toml:"digits"`
	MaxIter int      `yaml:"max_iter" toml:"max_iter"`
	Workers int      `yaml:"workers" toml:"workers"`

	// Points are the evaluation points.
	Points []string `yaml:"points" toml:"points"`

	// Nodes and Values are the interpolation data.
	Nodes  []string `yaml:"nodes" toml:"nodes"`
	Values []string `yaml:"values" toml:"values"`

	// Roots are the initial approximations of the roots, the default seeds are used if empty.
	Roots []string `yaml:"roots" toml:"roots"`

	Series *Series `yaml:"series" toml:"series"`
}

// Series describes a power series transform of the polynomial.
type Series struct {
	Function string `yaml:"function" toml:"function"`
	Length   int    `yaml:"length" toml:"length"`

	// Param is the extra argument of zeta (a), polylog (z) and ellipp (tau).
	Param string `yaml:"param" toml:"param"`

	// Deflate removes the pole of zeta.
	Deflate bool `yaml:"deflate" toml:"deflate"`
}

// DetectFormat returns the format implied by the extension of path.
func DetectFormat(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return FormatAuto, fmt.Errorf("cannot DetectFormat: unknown extension %q", ext)
	}
}

// Load reads and decodes the job file at path, whose format is given by its extension.
func Load(path string) (*Job, error) {

	format, err := DetectFormat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot Load: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot Load: %w", err)
	}

	j, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("cannot Load %s: %w", path, err)
	}

	return j, nil
}

// Decode decodes a job, fills in the default values and validates it.
func Decode(data []byte, format Format) (*Job, error) {

	j := new(Job)

	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(j); err != nil {
			return nil, fmt.Errorf("cannot Decode: yaml: %w", err)
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), j)
		if err != nil {
			return nil, fmt.Errorf("cannot Decode: toml: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("cannot Decode: toml: unknown keys %v", undecoded)
		}
	default:
		return nil, fmt.Errorf("cannot Decode: unsupported format %s", format)
	}

	j.SetDefaults()

	if err := j.Validate(); err != nil {
		return nil, fmt.Errorf("cannot Decode: %w", err)
	}

	return j, nil
}

// SetDefaults replaces the unset optional fields by their default values.
func (j *Job) SetDefaults() {
	if j.Prec == 0 {
		j.Prec = DefaultPrec
	}
	if j.Digits == 0 {
		j.Digits = DefaultDigits
	}
	if j.MaxIter == 0 {
		j.MaxIter = DefaultMaxIter
	}
	if j.Workers == 0 {
		j.Workers = DefaultWorkers
	}
	if j.Series != nil && j.Series.Length == 0 {
		j.Series.Length = DefaultLength
	}
}

// Validate checks the consistency of the job and that every number parses.
func (j *Job) Validate() error {

	if j.Digits < 0 || j.MaxIter < 0 || j.Workers < 0 {
		return fmt.Errorf("digits, max_iter and workers must be non-negative")
	}

	if len(j.Nodes) != len(j.Values) {
		return fmt.Errorf("%d nodes but %d values", len(j.Nodes), len(j.Values))
	}

	if j.Series != nil {
		if j.Series.Function == "" {
			return fmt.Errorf("series: missing function")
		}
		if j.Series.Length < 0 {
			return fmt.Errorf("series: negative length %d", j.Series.Length)
		}
	}

	for _, v := range [][]string{j.Coeffs, j.Points, j.Nodes, j.Values, j.Roots} {
		for _, s := range v {
			if _, _, err := ParseComplexRat(s); err != nil {
				return err
			}
		}
	}

	if j.Series != nil && j.Series.Param != "" {
		if _, _, err := ParseComplexRat(j.Series.Param); err != nil {
			return fmt.Errorf("series: %w", err)
		}
	}

	return nil
}

// ParseComplexRat parses "re" or "re, im" where re and im are exact rationals.
func ParseComplexRat(s string) (re, im *big.Rat, err error) {

	r, i, found := strings.Cut(s, ",")

	if re, err = parseRat(r); err != nil {
		return nil, nil, err
	}

	if !found {
		return re, new(big.Rat), nil
	}

	if im, err = parseRat(i); err != nil {
		return nil, nil, err
	}

	return re, im, nil
}

func parseRat(s string) (*big.Rat, error) {
	s = strings.TrimSpace(s)
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, fmt.Errorf("invalid number %q", s)
	}
	return r, nil
}

// Balls returns the balls of prec bits enclosing the numbers of values.
func (j *Job) Balls(values []string) ([]*ball.Ball, error) {
	res := make([]*ball.Ball, len(values))
	for i, s := range values {
		re, im, err := ParseComplexRat(s)
		if err != nil {
			return nil, err
		}
		res[i] = ball.NewRat(re, im, j.Prec)
	}
	return res, nil
}

// Ball returns the ball of prec bits enclosing the number s.
func (j *Job) Ball(s string) (*ball.Ball, error) {
	b, err := j.Balls([]string{s})
	if err != nil {
		return nil, err
	}
	return b[0], nil
}

// Poly returns the polynomial of the job, with coefficients rounded to prec bits.
func (j *Job) Poly() (*poly.Poly, error) {
	coeffs, err := j.Balls(j.Coeffs)
	if err != nil {
		return nil, err
	}
	return poly.NewFromBalls(coeffs), nil
}
