package spatial

import (
	"github.com/minicfd/gocfd1d/DG1D"
	"github.com/minicfd/gocfd1d/mesh"
	"github.com/minicfd/gocfd1d/polynomial"
	"github.com/minicfd/gocfd1d/riemann"
	"gonum.org/v1/gonum/mat"
)

// DG is the modal discontinuous Galerkin scheme on Legendre projections.
// Its solution column holds Legendre coefficients.
type DG struct {
	*FiniteElement
	quad DG1D.Quadrature
	dL   [][]float64 // Legendre derivatives at the quadrature points
}

func NewDG(part *mesh.Part, degree int, rs riemann.Convective, opts ...Option) (dg *DG, err error) {
	var fe *FiniteElement
	if fe, err = newFiniteElement(part, degree, rs, opts); err != nil {
		return
	}
	dg = &DG{
		FiniteElement: fe,
		quad:          DG1D.GaussLegendre(degree + 1),
	}
	for _, xi := range dg.quad.X {
		dg.dL = append(dg.dL, DG1D.LegendreDerivatives(degree+1, xi))
	}
	fe.init(dg)
	return
}

func (dg *DG) newExpansion(line DG1D.Line) polynomial.Expansion {
	return polynomial.NewProjection(dg.K, dg.Degree, line)
}

// cellResidual is
//
//	dc_l/dt = (sum_q w_q F_q L_l'(xi_q) - F*_R + (-1)^l F*_L) / M_ll,  M_ll = J 2/(2l+1)
func (dg *DG) cellResidual(c *mesh.Cell, fluxL, fluxR []float64) (R *mat.Dense) {
	var (
		e  = dg.exps[c.ID]
		N  = dg.terms()
		J  = c.Line.Jacobian()
		nu = dg.nu[c.ID]
	)
	R = mat.NewDense(dg.K, N, nil)
	for q, xi := range dg.quad.X {
		F := dg.pointFlux(e, c.Line.LocalToGlobal(xi), nu)
		for i := 0; i < dg.K; i++ {
			for l := 1; l < N; l++ {
				R.Set(i, l, R.At(i, l)+dg.quad.W[q]*F[i]*dg.dL[q][l])
			}
		}
	}
	sign := 1.
	for l := 0; l < N; l++ {
		mass := J * 2 / float64(2*l+1)
		for i := 0; i < dg.K; i++ {
			R.Set(i, l, (R.At(i, l)-fluxR[i]+sign*fluxL[i])/mass)
		}
		sign = -sign
	}
	return
}
