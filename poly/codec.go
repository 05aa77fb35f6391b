package poly

import (
	"fmt"

	"github.com/tuneinsight/ballpoly/ball"
	"github.com/tuneinsight/ballpoly/utils"
	"github.com/zeebo/blake3"
)

// MarshalBinary encodes p on a slice of bytes: the number of coefficients
// followed by the exact encoding of each coefficient.
func (p *Poly) MarshalBinary() (data []byte, err error) {
	buf := utils.NewBuffer(nil)
	buf.WriteUint64(uint64(len(p.coeffs)))
	for i, c := range p.coeffs {
		var b []byte
		if b, err = c.MarshalBinary(); err != nil {
			return nil, fmt.Errorf("cannot MarshalBinary: coefficient %d: %w", i, err)
		}
		buf.WriteBytes(b)
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes a slice of bytes generated by MarshalBinary on p.
// p is left untouched on error.
func (p *Poly) UnmarshalBinary(data []byte) (err error) {

	buf := utils.NewBuffer(data)

	n, err := buf.ReadUint64()
	if err != nil {
		return fmt.Errorf("cannot UnmarshalBinary: %w", err)
	}

	// each coefficient takes at least 8 bytes
	if n > uint64(buf.Len()/8) {
		return fmt.Errorf("cannot UnmarshalBinary: %d coefficients do not fit in %d bytes", n, buf.Len())
	}

	res := make([]*ball.Ball, n)
	for i := range res {
		var b []byte
		if b, err = buf.ReadBytes(); err != nil {
			return fmt.Errorf("cannot UnmarshalBinary: coefficient %d: %w", i, err)
		}
		res[i] = ball.New()
		if err = res[i].UnmarshalBinary(b); err != nil {
			return fmt.Errorf("cannot UnmarshalBinary: coefficient %d: %w", i, err)
		}
	}

	if buf.Len() != 0 {
		return fmt.Errorf("cannot UnmarshalBinary: %d trailing bytes", buf.Len())
	}

	p.install(res)
	return
}

// Digest returns the BLAKE3 hash of the binary encoding of p.
// Polynomials with identical coefficients, midpoint precisions included, have the same digest.
func (p *Poly) Digest() (sum [32]byte) {
	data, err := p.MarshalBinary()
	if err != nil {
		// big.Float encoding only fails on nil receivers
		panic(err)
	}
	return blake3.Sum256(data)
}
