package polynomial

import (
	"fmt"

	"github.com/minicfd/gocfd1d/DG1D"
	"gonum.org/v1/gonum/mat"
)

// Projection is the modal expansion on Legendre polynomials of the local
// coordinate, orthogonal under the cell integral.
type Projection struct {
	taylorBase
	quad        DG1D.Quadrature
	coeff       *mat.Dense
	legToTaylor *mat.Dense // N x N, column k maps mode k onto the Taylor basis
}

func NewProjection(k, degree int, line DG1D.Line) (p *Projection) {
	p = &Projection{
		taylorBase: newTaylorBase(k, degree, line),
		quad:       DG1D.GaussLegendre(degree + 1),
		coeff:      mat.NewDense(k, degree+1, nil),
	}
	p.legToTaylor = legendreOnTaylor(degree+1, line.Jacobian())
	return
}

// legendreOnTaylor expresses L_k((x-c)/J) in powers of (x-c).
func legendreOnTaylor(n int, jacobian float64) (M *mat.Dense) {
	M = mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		M.Set(i, i, 1)
	}
	for k := 2; k < n; k++ {
		a := float64(2*k-1) / float64(k)
		b := float64(k-1) / float64(k)
		for i := k; i >= 1; i-- {
			M.Set(i, k, a*M.At(i-1, k-1))
		}
		M.Set(0, k, 0)
		for i := 0; i <= k-2; i++ {
			M.Set(i, k, M.At(i, k)-b*M.At(i, k-2))
		}
	}
	scale := 1.
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			M.Set(i, j, M.At(i, j)/scale)
		}
		scale *= jacobian
	}
	return
}

func (p *Projection) Coeff() *mat.Dense { return mat.DenseCopyOf(p.coeff) }

func (p *Projection) SetCoeff(c *mat.Dense) {
	r, cc := c.Dims()
	if r != p.k || cc != p.Terms() {
		panic(fmt.Errorf("coefficient shape %dx%d does not match %dx%d", r, cc, p.k, p.Terms()))
	}
	p.coeff.Copy(c)
	p.updateTaylor()
}

func (p *Projection) updateTaylor() {
	p.taylor.Mul(p.coeff, p.legToTaylor.T())
}

func (p *Projection) Approximate(f func(x float64) []float64) {
	var (
		n = p.Terms()
	)
	p.coeff.Zero()
	for q, xi := range p.quad.X {
		var (
			fq = f(p.line.LocalToGlobal(xi))
			L  = DG1D.LegendreValues(n, xi)
		)
		for i := 0; i < p.k; i++ {
			for l := 0; l < n; l++ {
				p.coeff.Set(i, l, p.coeff.At(i, l)+p.quad.W[q]*fq[i]*L[l])
			}
		}
	}
	for l := 0; l < n; l++ {
		norm := float64(2*l+1) / 2
		for i := 0; i < p.k; i++ {
			p.coeff.Set(i, l, p.coeff.At(i, l)*norm)
		}
	}
	p.updateTaylor()
}

func (p *Projection) Average() []float64 {
	return mat.Col(nil, 0, p.coeff)
}

func (p *Projection) ShiftAverage(delta []float64) {
	for i := 0; i < p.k; i++ {
		p.coeff.Set(i, 0, p.coeff.At(i, 0)+delta[i])
	}
	p.updateTaylor()
}

func (p *Projection) BasisValues(x float64) []float64 {
	return DG1D.LegendreValues(p.Terms(), p.line.GlobalToLocal(x))
}

func (p *Projection) BasisGradients(x float64) (g []float64) {
	g = DG1D.LegendreDerivatives(p.Terms(), p.line.GlobalToLocal(x))
	for i := range g {
		g[i] /= p.line.Jacobian()
	}
	return
}

// ModeWeight is the cell integral of the squared mode.
func (p *Projection) ModeWeight(k int) float64 {
	return p.line.Jacobian() * 2 / float64(2*k+1)
}

// ModeEnergy returns, per component, the energy carried by mode k.
func (p *Projection) ModeEnergy(k int) (e []float64) {
	e = make([]float64, p.k)
	w := p.ModeWeight(k)
	for i := range e {
		c := p.coeff.At(i, k)
		e[i] = c * c * w
	}
	return
}

func (p *Projection) Quadrature() DG1D.Quadrature { return p.quad }

func (p *Projection) Clone() Expansion {
	c := NewProjection(p.k, p.degree, p.line)
	c.SetCoeff(p.coeff)
	return c
}
