package utils

import (
	"encoding/binary"
	"fmt"
)

// Buffer is a simple wrapper around a []byte to facilitate the marshaling of ball polynomials.
type Buffer struct {
	buf []byte
}

// NewBuffer creates a new buffer from the provided backing slice.
func NewBuffer(s []byte) *Buffer {
	return &Buffer{s}
}

// WriteUint64 appends v in big-endian order.
func (b *Buffer) WriteUint64(v uint64) {
	b.buf = binary.BigEndian.AppendUint64(b.buf, v)
}

// WriteBytes appends the length of s followed by s.
func (b *Buffer) WriteBytes(s []byte) {
	b.WriteUint64(uint64(len(s)))
	b.buf = append(b.buf, s...)
}

// ReadUint64 consumes a big-endian uint64.
func (b *Buffer) ReadUint64() (v uint64, err error) {
	if len(b.buf) < 8 {
		return 0, fmt.Errorf("cannot ReadUint64: buffer has %d < 8 bytes", len(b.buf))
	}
	v = binary.BigEndian.Uint64(b.buf[:8])
	b.buf = b.buf[8:]
	return
}

// ReadBytes consumes a length-prefixed byte slice written by WriteBytes.
// The returned slice aliases the buffer.
func (b *Buffer) ReadBytes() (s []byte, err error) {
	var n uint64
	if n, err = b.ReadUint64(); err != nil {
		return nil, fmt.Errorf("cannot ReadBytes: %w", err)
	}
	if uint64(len(b.buf)) < n {
		return nil, fmt.Errorf("cannot ReadBytes: buffer has %d < %d bytes", len(b.buf), n)
	}
	s = b.buf[:n]
	b.buf = b.buf[n:]
	return
}

// Len returns the number of unread bytes.
func (b *Buffer) Len() int {
	return len(b.buf)
}

// Bytes returns the unread bytes.
func (b *Buffer) Bytes() []byte {
	return b.buf
}
