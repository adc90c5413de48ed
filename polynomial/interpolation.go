package polynomial

import (
	"fmt"

	"github.com/minicfd/gocfd1d/DG1D"
	"gonum.org/v1/gonum/mat"
)

// Interpolation is the nodal expansion on Lagrange polynomials at the Gauss points.
type Interpolation struct {
	taylorBase
	quad     DG1D.Quadrature
	lagrange *DG1D.Lagrange
	values   *mat.Dense // K x N nodal values
	vinvT    *mat.Dense // transposed inverse of the nodal Taylor Vandermonde
}

func NewInterpolation(k, degree int, line DG1D.Line) (ip *Interpolation) {
	var (
		n = degree + 1
	)
	ip = &Interpolation{
		taylorBase: newTaylorBase(k, degree, line),
		quad:       DG1D.GaussLegendre(n),
		values:     mat.NewDense(k, n, nil),
	}
	ip.lagrange = DG1D.NewLagrange(ip.quad.X)
	V := mat.NewDense(n, n, nil)
	for i, xi := range ip.quad.X {
		V.SetRow(i, DG1D.TaylorValues(n, line.LocalToGlobal(xi)-line.Center()))
	}
	var vinv mat.Dense
	if err := vinv.Inverse(V); err != nil {
		panic(fmt.Errorf("unable to invert nodal vandermonde: %w", err))
	}
	ip.vinvT = mat.DenseCopyOf(vinv.T())
	return
}

// Nodes are the global coordinates of the interpolation points.
func (ip *Interpolation) Nodes() (x []float64) {
	x = make([]float64, len(ip.quad.X))
	for i, xi := range ip.quad.X {
		x[i] = ip.line.LocalToGlobal(xi)
	}
	return
}

func (ip *Interpolation) LocalNodes() []float64 { return ip.quad.X }

func (ip *Interpolation) Quadrature() DG1D.Quadrature { return ip.quad }

func (ip *Interpolation) Lagrange() *DG1D.Lagrange { return ip.lagrange }

func (ip *Interpolation) Coeff() *mat.Dense { return mat.DenseCopyOf(ip.values) }

func (ip *Interpolation) SetCoeff(c *mat.Dense) {
	r, cc := c.Dims()
	if r != ip.k || cc != ip.Terms() {
		panic(fmt.Errorf("coefficient shape %dx%d does not match %dx%d", r, cc, ip.k, ip.Terms()))
	}
	ip.values.Copy(c)
	ip.updateTaylor()
}

// SetValues sets the K component value at node i.
func (ip *Interpolation) SetValues(i int, u []float64) {
	ip.values.SetCol(i, u)
	ip.updateTaylor()
}

func (ip *Interpolation) updateTaylor() {
	ip.taylor.Mul(ip.values, ip.vinvT)
}

func (ip *Interpolation) Approximate(f func(x float64) []float64) {
	for i, x := range ip.Nodes() {
		ip.values.SetCol(i, f(x))
	}
	ip.updateTaylor()
}

func (ip *Interpolation) Average() (avg []float64) {
	avg = make([]float64, ip.k)
	for j, w := range ip.quad.W {
		for i := range avg {
			avg[i] += w * ip.values.At(i, j) / 2
		}
	}
	return
}

func (ip *Interpolation) ShiftAverage(delta []float64) {
	n := ip.Terms()
	for i := 0; i < ip.k; i++ {
		for j := 0; j < n; j++ {
			ip.values.Set(i, j, ip.values.At(i, j)+delta[i])
		}
	}
	ip.updateTaylor()
}

func (ip *Interpolation) BasisValues(x float64) []float64 {
	return ip.lagrange.Values(ip.line.GlobalToLocal(x))
}

func (ip *Interpolation) BasisGradients(x float64) (g []float64) {
	g = ip.lagrange.Gradients(ip.line.GlobalToLocal(x))
	for i := range g {
		g[i] /= ip.line.Jacobian()
	}
	return
}

func (ip *Interpolation) Clone() Expansion {
	c := NewInterpolation(ip.k, ip.degree, ip.line)
	c.SetCoeff(ip.values)
	return c
}
