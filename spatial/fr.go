package spatial

import (
	"fmt"

	"github.com/minicfd/gocfd1d/DG1D"
	"github.com/minicfd/gocfd1d/mesh"
	"github.com/minicfd/gocfd1d/polynomial"
	"github.com/minicfd/gocfd1d/riemann"
	"gonum.org/v1/gonum/mat"
)

// FR is flux reconstruction on Lagrange interpolations at the Gauss points,
// corrected by a Vincent function. Its solution column holds nodal values.
type FR struct {
	*FiniteElement
	Correction *DG1D.Vincent
	D          [][]float64 // D[i][j] = l_j'(xi_i)
	lL, lR     []float64   // l_j(-1), l_j(+1)
	gL, gR     []float64   // correction derivatives at the nodes
}

// NewFR builds the scheme with the Vincent parameter c,
// c = DG1D.DiscontinuousGalerkin(degree) recovers nodal DG.
func NewFR(part *mesh.Part, degree int, rs riemann.Convective, c float64, opts ...Option) (fr *FR, err error) {
	if degree < 1 {
		return nil, fmt.Errorf("flux reconstruction needs degree >= 1, got %d", degree)
	}
	var fe *FiniteElement
	if fe, err = newFiniteElement(part, degree, rs, opts); err != nil {
		return
	}
	var (
		q  = DG1D.GaussLegendre(degree + 1)
		lb = DG1D.NewLagrange(q.X)
	)
	fr = &FR{
		FiniteElement: fe,
		Correction:    DG1D.NewVincent(degree, c),
		lL:            lb.Values(-1),
		lR:            lb.Values(1),
	}
	for _, xi := range q.X {
		fr.D = append(fr.D, lb.Gradients(xi))
		fr.gL = append(fr.gL, fr.Correction.LocalToLeftDerivative(xi))
		fr.gR = append(fr.gR, fr.Correction.LocalToRightDerivative(xi))
	}
	fe.init(fr)
	return
}

func (fr *FR) newExpansion(line DG1D.Line) polynomial.Expansion {
	return polynomial.NewInterpolation(fr.K, fr.Degree, line)
}

// cellResidual is
//
//	du_i/dt = -(1/J) [sum_j F_j l_j'(xi_i) + (F*_L - F_L) g_L'(xi_i) + (F*_R - F_R) g_R'(xi_i)]
func (fr *FR) cellResidual(c *mesh.Cell, fluxL, fluxR []float64) (R *mat.Dense) {
	var (
		ip = fr.exps[c.ID].(*polynomial.Interpolation)
		N  = fr.terms()
		J  = c.Line.Jacobian()
		nu = fr.nu[c.ID]
		F  = make([][]float64, N)
		FL = make([]float64, fr.K)
		FR = make([]float64, fr.K)
	)
	for j, x := range ip.Nodes() {
		F[j] = fr.pointFlux(ip, x, nu)
		for i := 0; i < fr.K; i++ {
			FL[i] += fr.lL[j] * F[j][i]
			FR[i] += fr.lR[j] * F[j][i]
		}
	}
	R = mat.NewDense(fr.K, N, nil)
	for n := 0; n < N; n++ {
		for i := 0; i < fr.K; i++ {
			var dF float64
			for j := 0; j < N; j++ {
				dF += fr.D[n][j] * F[j][i]
			}
			dF += (fluxL[i]-FL[i])*fr.gL[n] + (fluxR[i]-FR[i])*fr.gR[n]
			R.Set(i, n, -dF/J)
		}
	}
	return
}
