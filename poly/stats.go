package poly

import (
	"fmt"
	"math"
	"math/big"

	"github.com/montanaflynn/stats"
)

// RadiusStats summarizes the log2 of the radii of the coefficients of a polynomial.
// Exact coefficients are counted but excluded from the statistics, and indeterminate
// coefficients are reported as +Inf.
type RadiusStats struct {
	Exact         int
	Indeterminate int
	Min           float64
	Max           float64
	Mean          float64
	Median        float64
}

func (rs RadiusStats) String() string {
	return fmt.Sprintf(`
┌────────────┬─────────┐
│ Log2 Rad   │         │
├────────────┼─────────┤
│MIN         │ %7.2f │
│MAX         │ %7.2f │
│AVG         │ %7.2f │
│MED         │ %7.2f │
└────────────┴─────────┘
Exact         : %d
Indeterminate : %d
`,
		rs.Min, rs.Max, rs.Mean, rs.Median, rs.Exact, rs.Indeterminate)
}

// RadiusStats returns statistics on the log2 of the radii of the coefficients of p.
// The statistics are zero if every coefficient is exact.
func (p *Poly) RadiusStats() (rs RadiusStats) {

	var data stats.Float64Data
	for _, c := range p.coeffs {
		r := c.Rad()
		switch {
		case r.Sign() == 0:
			rs.Exact++
		case r.IsInf():
			rs.Indeterminate++
		default:
			mant := new(big.Float)
			e := r.MantExp(mant)
			m, _ := mant.Float64()
			data = append(data, float64(e)+math.Log2(m))
		}
	}

	if rs.Indeterminate > 0 {
		rs.Max = math.Inf(1)
	}

	if len(data) == 0 {
		if rs.Indeterminate > 0 {
			rs.Min, rs.Mean, rs.Median = rs.Max, rs.Max, rs.Max
		}
		return
	}

	rs.Min, _ = data.Min()
	if rs.Indeterminate == 0 {
		rs.Max, _ = data.Max()
	}
	rs.Mean, _ = data.Mean()
	rs.Median, _ = data.Median()

	if rs.Indeterminate > 0 {
		rs.Mean = math.Inf(1)
	}

	return
}
