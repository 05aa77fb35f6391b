package poly

import (
	"errors"
)

var (
	// ErrNotInvertible is returned when a divisor, a leading coefficient or the
	// constant term of a series cannot be certified to be non-zero.
	ErrNotInvertible = errors.New("ball may contain zero")

	// ErrNoContraction is returned when a root cannot be certified near a candidate.
	ErrNoContraction = errors.New("no contraction")

	// ErrAmbiguous is returned when a ball does not contain exactly one integer.
	ErrAmbiguous = errors.New("ball does not contain a unique integer")

	// ErrDomain is returned when an argument lies outside the domain on which
	// a function can be evaluated.
	ErrDomain = errors.New("argument outside of domain")
)
