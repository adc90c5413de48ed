package limiter

import (
	"math"

	"github.com/minicfd/gocfd1d/mesh"
	"github.com/minicfd/gocfd1d/polynomial"
	"gonum.org/v1/gonum/mat"
)

// Limiter computes the limited K x N coefficients of one cell. It reads the
// expansions of the whole part and must not modify them.
type Limiter interface {
	Limit(part *mesh.Part, c *mesh.Cell, exps []polynomial.Expansion) *mat.Dense
}

// Detector flags the cells that need limiting.
type Detector interface {
	Troubled(part *mesh.Part, exps []polynomial.Expansion) []bool
}

// Reconstruct limits the troubled cells, all cells when det is nil, and
// returns how many were limited. New coefficients are computed from the old
// ones before any cell is updated.
func Reconstruct(part *mesh.Part, exps []polynomial.Expansion, lim Limiter, det Detector) (nLimited int) {
	if len(exps) == 0 || exps[0].Degree() == 0 {
		return
	}
	var (
		troubled []bool
		coeffs   = make([]*mat.Dense, len(exps))
	)
	if det != nil {
		troubled = det.Troubled(part, exps)
	}
	for _, c := range part.Cells {
		if troubled != nil && !troubled[c.ID] {
			continue
		}
		coeffs[c.ID] = lim.Limit(part, c, exps)
	}
	for k, C := range coeffs {
		if C != nil {
			exps[k].SetCoeff(C)
			nLimited++
		}
	}
	return
}

// valueFrom evaluates the expansion of c's i-th neighbor at x given in c's frame.
func valueFrom(c *mesh.Cell, i int, exps []polynomial.Expansion) func(x float64) []float64 {
	var (
		src   = exps[c.Neighbors[i].ID]
		shift = c.Shifts[i]
	)
	return func(x float64) []float64 {
		return src.Value(x + shift)
	}
}

// borrow returns the neighbor polynomials approximated on c and shifted to
// c's average, followed by c's own expansion.
func borrow(part *mesh.Part, c *mesh.Cell, exps []polynomial.Expansion) (cands []polynomial.Expansion) {
	var (
		mine = exps[c.ID]
		avg  = mine.Average()
	)
	for i := range c.Neighbors {
		cand := mine.Clone()
		cand.Approximate(valueFrom(c, i, exps))
		delta := cand.Average()
		for i := range delta {
			delta[i] = avg[i] - delta[i]
		}
		cand.ShiftAverage(delta)
		cands = append(cands, cand)
	}
	cands = append(cands, mine.Clone())
	return
}

// IsNotSmooth compares the cell center value with the neighbors'
// extrapolations on the first and last components.
type IsNotSmooth struct{}

func (IsNotSmooth) Troubled(part *mesh.Part, exps []polynomial.Expansion) (troubled []bool) {
	troubled = make([]bool, len(exps))
	for _, c := range part.Cells {
		troubled[c.ID] = notSmooth(part, c, exps)
	}
	return
}

func notSmooth(part *mesh.Part, c *mesh.Cell, exps []polynomial.Expansion) bool {
	if len(c.Neighbors) == 0 {
		return false
	}
	var (
		mine       = exps[c.ID]
		K          = mine.Components()
		P          = mine.Degree()
		components = []int{0, K - 1}
		center     = c.Line.Center()
		myValues   = mine.Value(center)
		avg        = mine.Average()
		maxAbs     = make([]float64, K)
		sumAbsDiff = make([]float64, K)
	)
	for _, i := range components {
		maxAbs[i] = math.Max(1.e-9, math.Abs(avg[i]))
	}
	for i, nb := range c.Neighbors {
		var (
			nbValues = valueFrom(c, i, exps)(center)
			nbAvg    = exps[nb.ID].Average()
		)
		for _, i := range components {
			sumAbsDiff[i] += math.Abs(myValues[i] - nbValues[i])
			maxAbs[i] = math.Max(maxAbs[i], math.Abs(nbAvg[i]))
		}
	}
	divisor := math.Pow(c.Line.Length(), float64(P+1)/2) * float64(len(c.Neighbors))
	reference := 1.
	if P >= 3 {
		reference = 3
	}
	for _, i := range components {
		if sumAbsDiff[i]/maxAbs[i]/divisor > reference {
			return true
		}
	}
	return false
}

// Average replaces the polynomial by its cell average.
type Average struct{}

func (Average) Limit(part *mesh.Part, c *mesh.Cell, exps []polynomial.Expansion) *mat.Dense {
	var (
		cand = exps[c.ID].Clone()
		avg  = cand.Average()
	)
	cand.Approximate(func(float64) []float64 { return avg })
	return cand.Coeff()
}

// Majority sets every component to the value held by more than half of the
// quadrature points. A cell without such a value in some component is left
// unchanged.
type Majority struct{}

func (Majority) Limit(part *mesh.Part, c *mesh.Cell, exps []polynomial.Expansion) *mat.Dense {
	var (
		mine = exps[c.ID]
		K    = mine.Components()
		N    = mine.Terms()
	)
	if mine.Degree() < 2 {
		return mine.Coeff()
	}
	values := pointValues(mine)
	major := make([]float64, K)
	for i := 0; i < K; i++ {
		var (
			count = make(map[float64]int)
			found bool
		)
		for q := 0; q < N; q++ {
			v := values[q][i]
			count[v]++
			if count[v]*2 > N {
				major[i], found = v, true
				break
			}
		}
		if !found {
			return mine.Coeff()
		}
	}
	cand := mine.Clone()
	cand.Approximate(func(float64) []float64 { return major })
	return cand.Coeff()
}

// pointValues samples the expansion at its quadrature points, nodal
// expansions return their stored values.
func pointValues(e polynomial.Expansion) (values [][]float64) {
	switch p := e.(type) {
	case *polynomial.Interpolation:
		C := p.Coeff()
		for q := 0; q < p.Terms(); q++ {
			values = append(values, mat.Col(nil, q, C))
		}
		return
	case *polynomial.Projection:
		for _, xi := range p.Quadrature().X {
			values = append(values, p.Value(p.Line().LocalToGlobal(xi)))
		}
		return
	}
	panic("unknown expansion type")
}
