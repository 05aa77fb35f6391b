package bignum

import (
	"math/big"
)

// BernoulliNumbers returns the exact Bernoulli numbers B_0, ..., B_{n-1}
// with the convention B_1 = -1/2.
func BernoulliNumbers(n int) (B []*big.Rat) {

	B = make([]*big.Rat, n)

	tmp := new(big.Rat)
	acc := new(big.Rat)

	for m := 0; m < n; m++ {

		B[m] = new(big.Rat)

		if m == 0 {
			B[m].SetInt64(1)
			continue
		}

		// B_{2k+1} = 0 for k >= 1
		if m > 1 && m&1 == 1 {
			continue
		}

		// B_m = -1/(m+1) sum_{k<m} C(m+1, k) B_k
		acc.SetInt64(0)
		for k := 0; k < m; k++ {
			if B[k].Sign() == 0 {
				continue
			}
			tmp.SetInt(Binomial(m+1, k))
			tmp.Mul(tmp, B[k])
			acc.Add(acc, tmp)
		}

		B[m].SetFrac64(-1, int64(m+1))
		B[m].Mul(B[m], acc)
	}

	return
}
