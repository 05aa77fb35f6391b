// Package utils contains helper structures and functions shared by the ball and poly packages.
package utils

import (
	"math/bits"

	"golang.org/x/exp/constraints"
)

// Min returns the minimum of a and b.
func Min[V constraints.Ordered](a, b V) V {
	if a <= b {
		return a
	}
	return b
}

// Max returns the maximum of a and b.
func Max[V constraints.Ordered](a, b V) V {
	if a >= b {
		return a
	}
	return b
}

// CeilLog2 returns ceil(log2(n)) for n >= 1.
func CeilLog2(n int) int {
	if n <= 1 {
		return 0
	}
	return bits.Len64(uint64(n - 1))
}

// CeilSqrt returns the smallest m such that m*m >= n.
func CeilSqrt(n int) (m int) {
	if n <= 0 {
		return 0
	}
	m = 1 << ((bits.Len64(uint64(n)) + 1) >> 1)
	for (m-1)*(m-1) >= n {
		m--
	}
	return
}

// ChunkBounds splits [0, n) into consecutive chunks of size at most chunk and returns
// their boundaries [b[0], b[1]), [b[1], b[2]), ...
// The boundaries depend only on n and chunk.
func ChunkBounds(n, chunk int) (b []int) {
	if chunk < 1 {
		chunk = 1
	}
	b = append(b, 0)
	for lo := 0; lo < n; lo += chunk {
		b = append(b, Min(lo+chunk, n))
	}
	return
}
