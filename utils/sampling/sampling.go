// Package sampling implements deterministic and secure sampling of integers and floats.
package sampling

import (
	"encoding/binary"
)

// RandUint64 returns a uniform value in [0, 2^64) read from prng.
func RandUint64(prng PRNG) uint64 {
	b := []byte{0, 0, 0, 0, 0, 0, 0, 0}
	if _, err := prng.Read(b); err != nil {
		panic(err)
	}
	return binary.LittleEndian.Uint64(b)
}

// RandFloat64 returns a float in [min, max) read from prng.
func RandFloat64(prng PRNG, min, max float64) float64 {
	f := float64(RandUint64(prng)>>11) / (1 << 53)
	return min + f*(max-min)
}
