package bignum

import (
	"fmt"
	"math/big"
)

// Factorial returns n!.
func Factorial(n int) *big.Int {
	if n < 0 {
		panic(fmt.Errorf("cannot Factorial: negative argument %d", n))
	}
	return new(big.Int).MulRange(1, int64(n))
}

// Binomial returns the binomial coefficient C(n, k), which is zero for k < 0 or k > n.
func Binomial(n, k int) *big.Int {
	if k < 0 || k > n {
		return new(big.Int)
	}
	return new(big.Int).Binomial(int64(n), int64(k))
}
