package polynomial

import (
	"math"
	"testing"

	"github.com/minicfd/gocfd1d/DG1D"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func cubic(x float64) []float64 {
	return []float64{1 + x - 2*x*x + 0.5*x*x*x, math.Sin(x)}
}

func TestProjection(t *testing.T) {
	line := DG1D.NewLine(0.5, 2.5)
	{ // a polynomial of the expansion degree is reproduced exactly
		p := NewProjection(2, 3, line)
		p.Approximate(cubic)
		for _, x := range []float64{0.5, 1.1, 2.5} {
			assert.InDelta(t, cubic(x)[0], p.Value(x)[0], 1.e-12)
			assert.InDelta(t, 1-4*x+1.5*x*x, p.Gradient(x)[0], 1.e-12)
			D := p.Derivatives(x)
			assert.InDelta(t, -4+3*x, D.At(0, 2), 1.e-11)
			assert.InDelta(t, 3., D.At(0, 3), 1.e-10)
		}
		// average equals the mean value
		exact := (2.5 + 0.5*2.5*2.5 - 2./3*math.Pow(2.5, 3) + 0.125*math.Pow(2.5, 4) -
			(0.5 + 0.5*0.25 - 2./3*0.125 + 0.125*0.0625)) / 2
		assert.InDelta(t, exact, p.Average()[0], 1.e-12)
		assert.InDelta(t, p.Line().Length()*p.Average()[0],
			line.Integrate(DG1D.GaussLegendre(4), func(x float64) float64 { return p.Value(x)[0] }), 1.e-12)
	}
	{ // mode weights and energies
		p := NewProjection(1, 2, line)
		p.SetCoeff(mat.NewDense(1, 3, []float64{1, 2, 3}))
		assert.InDelta(t, 2., p.ModeWeight(0), 1.e-15)
		assert.InDelta(t, 2./3, p.ModeWeight(1), 1.e-15)
		assert.InDelta(t, 9*2./5, p.ModeEnergy(2)[0], 1.e-14)
		// L_2(xi) with xi = (x - 1.5)
		x := 2.
		xi := x - 1.5
		assert.InDelta(t, 1+2*xi+3*(1.5*xi*xi-0.5), p.Value(x)[0], 1.e-14)
		assert.InDeltaSlice(t, DG1D.LegendreValues(3, xi), p.BasisValues(x), 1.e-15)
	}
	{ // shifting the average moves every value by the same amount
		p := NewProjection(2, 2, line)
		p.Approximate(cubic)
		before := p.Value(1.3)
		p.ShiftAverage([]float64{0.5, -1})
		after := p.Value(1.3)
		assert.InDelta(t, before[0]+0.5, after[0], 1.e-13)
		assert.InDelta(t, before[1]-1, after[1], 1.e-13)
		c := p.Clone()
		assert.Equal(t, p.Value(2.), c.Value(2.))
	}
	assert.Panics(t, func() { NewProjection(1, 2, line).SetCoeff(mat.NewDense(2, 2, nil)) })
}

func TestInterpolation(t *testing.T) {
	line := DG1D.NewLine(-1, 3)
	ip := NewInterpolation(2, 3, line)
	ip.Approximate(cubic)
	{
		for i, x := range ip.Nodes() {
			assert.InDelta(t, cubic(x)[1], ip.Coeff().At(1, i), 1.e-15)
		}
		for _, x := range []float64{-1, 0.3, 3} {
			assert.InDelta(t, cubic(x)[0], ip.Value(x)[0], 1.e-11)
			assert.InDelta(t, 1-4*x+1.5*x*x, ip.Gradient(x)[0], 1.e-11)
		}
	}
	{ // Lagrange basis and Taylor form agree
		x := 1.7
		var v float64
		for j, b := range ip.BasisValues(x) {
			v += b * ip.Coeff().At(1, j)
		}
		assert.InDelta(t, v, ip.Value(x)[1], 1.e-12)
		var g float64
		for j, b := range ip.BasisGradients(x) {
			g += b * ip.Coeff().At(1, j)
		}
		assert.InDelta(t, g, ip.Gradient(x)[1], 1.e-11)
	}
	{ // both expansions agree on the average of a cubic
		p := NewProjection(2, 3, line)
		p.Approximate(cubic)
		assert.InDelta(t, p.Average()[0], ip.Average()[0], 1.e-12)
	}
	{
		ip.SetValues(0, []float64{10, 10})
		assert.Equal(t, 10., ip.Coeff().At(0, 0))
	}
}

func TestTruncatedAndSmoothness(t *testing.T) {
	line := DG1D.NewLine(0, 1)
	{
		p := NewProjection(1, 4, line)
		p.Approximate(func(x float64) []float64 { return []float64{math.Exp(x)} })
		tr := TruncatedLegendre(1, p)
		assert.Equal(t, 1, tr.Degree())
		assert.InDelta(t, p.Average()[0], tr.Average()[0], 1.e-15)
		assert.InDelta(t, p.Coeff().At(0, 1), tr.Coeff().At(0, 1), 1.e-15)
		assert.Panics(t, func() { TruncatedLegendre(5, p) })
	}
	{ // a constant is perfectly smooth, a line has beta = h * slope^2 * h
		p := NewProjection(1, 2, line)
		p.Approximate(func(x float64) []float64 { return []float64{3} })
		assert.InDelta(t, 0., Smoothness(p)[0], 1.e-13)
		line2 := DG1D.NewLine(0, 0.5)
		p2 := NewProjection(1, 2, line2)
		p2.Approximate(func(x float64) []float64 { return []float64{2 * x} })
		assert.InDelta(t, 0.5*4*0.5, Smoothness(p2)[0], 1.e-13)
	}
	{ // projection onto a neighbor cell continues the polynomial
		src := NewProjection(2, 3, DG1D.NewLine(0, 1))
		src.Approximate(cubic)
		dst := NewInterpolation(2, 3, DG1D.NewLine(1, 2))
		Project(dst, src)
		assert.InDelta(t, src.Value(1.5)[0], dst.Value(1.5)[0], 1.e-11)
	}
}
