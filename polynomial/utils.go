package polynomial

import (
	"fmt"

	"github.com/minicfd/gocfd1d/DG1D"
	"github.com/minicfd/gocfd1d/utils"
	"gonum.org/v1/gonum/mat"
)

// TruncatedLegendre copies the lowest degree+1 modes of p into a new projection.
func TruncatedLegendre(degree int, p *Projection) (t *Projection) {
	if degree > p.Degree() {
		panic(fmt.Errorf("cannot truncate degree %d to %d", p.Degree(), degree))
	}
	t = NewProjection(p.Components(), degree, p.Line())
	t.SetCoeff(mat.DenseCopyOf(p.coeff.Slice(0, p.Components(), 0, degree+1)))
	return
}

// Smoothness returns, per component, sum_{l=1..P} h^(2l-1) int (d^l u/dx^l)^2 dx.
func Smoothness(e Expansion) (beta []float64) {
	var (
		line = e.Line()
		q    = DG1D.GaussLegendre(e.Terms())
		h    = line.Length()
		K    = e.Components()
	)
	beta = make([]float64, K)
	for iq, xi := range q.X {
		D := e.Derivatives(line.LocalToGlobal(xi))
		for l := 1; l <= e.Degree(); l++ {
			scale := utils.POW(h, 2*l-1)
			for i := 0; i < K; i++ {
				d := D.At(i, l)
				beta[i] += q.W[iq] * line.Jacobian() * d * d * scale
			}
		}
	}
	return
}

// Project approximates src on dst's cell, src may live on another cell.
func Project(dst, src Expansion) {
	dst.Approximate(src.Value)
}
