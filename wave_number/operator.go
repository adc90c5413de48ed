package wave_number

import (
	"fmt"

	"github.com/james-bowman/sparse"
)

// Operator assembles the block circulant operator of nCell periodic cells
// from the three coupling blocks, so that dU/dt = Operator U.
func (an *Analyzer) Operator(nCell int) (op *sparse.CSR, err error) {
	if nCell < 3 {
		return nil, fmt.Errorf("the periodic operator needs at least 3 cells, have %d", nCell)
	}
	var (
		n   = an.N
		dok = sparse.NewDOK(nCell*n, nCell*n)
	)
	for k := 0; k < nCell; k++ {
		var (
			kPrev = (k - 1 + nCell) % nCell
			kNext = (k + 1) % nCell
		)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				row := k*n + i
				if v := an.SPrev.At(i, j); v != 0 {
					dok.Set(row, kPrev*n+j, v)
				}
				if v := an.SCurr.At(i, j); v != 0 {
					dok.Set(row, k*n+j, v)
				}
				if v := an.SNext.At(i, j); v != 0 {
					dok.Set(row, kNext*n+j, v)
				}
			}
		}
	}
	return dok.ToCSR(), nil
}
