package polynomial

import (
	"fmt"

	"github.com/minicfd/gocfd1d/DG1D"
	"gonum.org/v1/gonum/mat"
)

// Expansion approximates a K component field on one cell by a polynomial
// of degree P with N = P+1 terms per component.
type Expansion interface {
	Components() int
	Degree() int
	Terms() int
	Line() DG1D.Line
	// Coeff is K x N in the expansion's own basis
	Coeff() *mat.Dense
	SetCoeff(c *mat.Dense)
	Approximate(f func(x float64) []float64)
	Value(x float64) []float64
	Gradient(x float64) []float64
	// Derivatives holds the l-th derivative of every component in column l
	Derivatives(x float64) *mat.Dense
	Average() []float64
	ShiftAverage(delta []float64)
	BasisValues(x float64) []float64
	BasisGradients(x float64) []float64
	Clone() Expansion
}

// taylorBase stores a K x N polynomial as coefficients of (x - center)^l.
type taylorBase struct {
	line   DG1D.Line
	degree int
	k      int
	taylor *mat.Dense
}

func newTaylorBase(k, degree int, line DG1D.Line) taylorBase {
	if k < 1 || degree < 0 {
		panic(fmt.Errorf("invalid expansion shape: components %d, degree %d", k, degree))
	}
	return taylorBase{
		line:   line,
		degree: degree,
		k:      k,
		taylor: mat.NewDense(k, degree+1, nil),
	}
}

func (tb *taylorBase) Components() int { return tb.k }
func (tb *taylorBase) Degree() int     { return tb.degree }
func (tb *taylorBase) Terms() int      { return tb.degree + 1 }
func (tb *taylorBase) Line() DG1D.Line { return tb.line }

func (tb *taylorBase) Value(x float64) (v []float64) {
	var (
		pow = mat.NewVecDense(tb.Terms(), DG1D.TaylorValues(tb.Terms(), x-tb.line.Center()))
		res = mat.NewVecDense(tb.k, nil)
	)
	res.MulVec(tb.taylor, pow)
	return res.RawVector().Data
}

func (tb *taylorBase) Derivatives(x float64) (D *mat.Dense) {
	var (
		n  = tb.Terms()
		dk = DG1D.TaylorDerivatives(n, x-tb.line.Center())
		T  = mat.NewDense(n, n, nil)
	)
	// column k of T holds the k-th derivatives of the monomials
	for k := 0; k < n; k++ {
		for l := k; l < n; l++ {
			T.Set(l, k, dk[k][l])
		}
	}
	D = mat.NewDense(tb.k, n, nil)
	D.Mul(tb.taylor, T)
	return
}

func (tb *taylorBase) Gradient(x float64) []float64 {
	if tb.degree == 0 {
		return make([]float64, tb.k)
	}
	return mat.Col(nil, 1, tb.Derivatives(x))
}

// Taylor returns a copy of the K x N Taylor coefficients about the cell center.
func (tb *taylorBase) Taylor() *mat.Dense {
	return mat.DenseCopyOf(tb.taylor)
}
