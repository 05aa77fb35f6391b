package ball

import (
	"fmt"
	"math/big"

	"github.com/tuneinsight/ballpoly/utils"
)

// MarshalBinary encodes x on a slice of bytes.
// The encoding is exact: the midpoint keeps its precision and the radius its value.
func (x *Ball) MarshalBinary() (p []byte, err error) {
	buf := utils.NewBuffer(nil)
	for _, f := range []*big.Float{x.mid[0], x.mid[1], x.rad} {
		var b []byte
		if b, err = f.GobEncode(); err != nil {
			return nil, fmt.Errorf("cannot MarshalBinary: %w", err)
		}
		buf.WriteBytes(b)
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes a slice of bytes generated by MarshalBinary on x.
func (x *Ball) UnmarshalBinary(p []byte) (err error) {
	buf := utils.NewBuffer(p)
	if _, err = x.ReadFrom(buf); err != nil {
		return
	}
	if buf.Len() != 0 {
		return fmt.Errorf("cannot UnmarshalBinary: %d trailing bytes", buf.Len())
	}
	return
}

// ReadFrom decodes a ball written by MarshalBinary from buf and returns the number of bytes consumed.
// x is left untouched on error.
func (x *Ball) ReadFrom(buf *utils.Buffer) (n int, err error) {

	start := buf.Len()

	var fs [3]*big.Float
	for i := range fs {
		var b []byte
		if b, err = buf.ReadBytes(); err != nil {
			return start - buf.Len(), fmt.Errorf("cannot UnmarshalBinary: %w", err)
		}
		fs[i] = new(big.Float)
		if err = fs[i].GobDecode(b); err != nil {
			return start - buf.Len(), fmt.Errorf("cannot UnmarshalBinary: %w", err)
		}
	}

	if fs[2].Sign() < 0 {
		return start - buf.Len(), fmt.Errorf("cannot UnmarshalBinary: negative radius")
	}

	x.mid[0], x.mid[1] = fs[0], fs[1]
	x.rad = magAbs(fs[2])

	return start - buf.Len(), nil
}
