package DG1D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/floats"
)

func TestJacobiGQ(t *testing.T) {
	{ // Gauss-Legendre nodes and weights for three points
		X, W := JacobiGQ(0, 0, 2)
		assert.InDeltaSlice(t, []float64{-math.Sqrt(0.6), 0, math.Sqrt(0.6)}, X, 1.e-12)
		assert.InDeltaSlice(t, []float64{5. / 9, 8. / 9, 5. / 9}, W, 1.e-12)
	}
	{ // Weights sum to the measure of [-1,1] for any order
		for N := 0; N < 10; N++ {
			_, W := JacobiGQ(0, 0, N)
			assert.InDelta(t, 2., floats.Sum(W), 1.e-12)
		}
	}
	{ // Jacobi weights integrate (1-x)^a (1+x)^b
		alpha, beta := 0.3, 0.7
		_, W := JacobiGQ(alpha, beta, 5)
		exact := math.Pow(2, alpha+beta+1) * math.Gamma(alpha+1) * math.Gamma(beta+1) / math.Gamma(alpha+beta+2)
		assert.InDelta(t, exact, floats.Sum(W), 1.e-12)
	}
}

func TestJacobiGL(t *testing.T) {
	X := JacobiGL(0, 0, 3)
	assert.InDeltaSlice(t, []float64{-1, -1 / math.Sqrt(5), 1 / math.Sqrt(5), 1}, X, 1.e-12)
	X = JacobiGL(0, 0, 1)
	assert.Equal(t, []float64{-1, 1}, X)
}

func TestJacobiP(t *testing.T) {
	r := []float64{-1, -0.3, 0.2, 1}
	{ // orthonormal Legendre: P_n = sqrt((2n+1)/2) L_n
		for n := 0; n < 6; n++ {
			p := JacobiP(r, 0, 0, n)
			for i, x := range r {
				assert.InDelta(t, math.Sqrt(float64(2*n+1)/2)*Legendre(n, x), p[i], 1.e-12)
			}
		}
	}
	{ // gradient against finite differences
		n, h := 4, 1.e-6
		g := GradJacobiP([]float64{0.3}, 0, 0, n)
		fd := (JacobiP([]float64{0.3 + h}, 0, 0, n)[0] - JacobiP([]float64{0.3 - h}, 0, 0, n)[0]) / (2 * h)
		assert.InDelta(t, fd, g[0], 1.e-6)
	}
	{
		V := Vandermonde1D(3, JacobiGL(0, 0, 3))
		nr, nc := V.Dims()
		assert.Equal(t, 4, nr)
		assert.Equal(t, 4, nc)
	}
}

func TestQuadrature(t *testing.T) {
	{ // n Gauss points integrate degree 2n-1 exactly
		for n := 1; n < 8; n++ {
			q := GaussLegendre(n)
			deg := 2*n - 1
			got := q.Integrate(func(x float64) float64 { return math.Pow(x, float64(deg-1)) })
			exact := 0.
			if (deg-1)%2 == 0 {
				exact = 2. / float64(deg)
			}
			assert.InDelta(t, exact, got, 1.e-12)
		}
	}
	{ // Lobatto includes the end points
		q := GaussLobatto(4)
		assert.Equal(t, -1., q.X[0])
		assert.Equal(t, 1., q.X[3])
		assert.InDelta(t, 2., floats.Sum(q.W), 1.e-12)
		assert.InDelta(t, 2./5, q.Integrate(func(x float64) float64 { return x * x * x * x }), 1.e-12)
	}
	{ // integration over a global line
		l := NewLine(1, 3)
		q := GaussLegendre(3)
		assert.InDelta(t, (27.-1.)/3, l.Integrate(q, func(x float64) float64 { return x * x }), 1.e-12)
		assert.InDelta(t, 2., l.Average(q, func(x float64) float64 { return x }), 1.e-12)
	}
	assert.Panics(t, func() { GaussLegendre(0) })
}

func TestLine(t *testing.T) {
	l := NewLine(2, 6)
	assert.Equal(t, 4., l.Length())
	assert.Equal(t, 4., l.Center())
	assert.Equal(t, 2., l.Jacobian())
	assert.Equal(t, 6., l.LocalToGlobal(1))
	assert.Equal(t, -0.5, l.GlobalToLocal(3))
	assert.True(t, l.Contains(2))
	assert.False(t, l.Contains(6.1))
	assert.Panics(t, func() { NewLine(1, 1) })
}
