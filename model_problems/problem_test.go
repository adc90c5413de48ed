package model_problems_test

import (
	"math"
	"testing"

	"github.com/minicfd/gocfd1d/mesh"
	"github.com/minicfd/gocfd1d/model_problems"
	"github.com/minicfd/gocfd1d/model_problems/Advection1D"
	"github.com/minicfd/gocfd1d/spatial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBisect(t *testing.T) {
	{
		x, err := model_problems.Bisect(func(x float64) float64 { return x*x - 2 }, 0, 2, 1.e-14)
		require.NoError(t, err)
		assert.InDelta(t, math.Sqrt2, x, 1.e-13)
	}
	{
		x, err := model_problems.Bisect(math.Sin, 0, 1, 1.e-14)
		require.NoError(t, err)
		assert.Equal(t, 0., x)
	}
	_, err := model_problems.Bisect(func(x float64) float64 { return x*x + 1 }, -1, 1, 1.e-14)
	assert.Error(t, err)
}

func TestErrorNorms(t *testing.T) {
	var (
		ad                   = Advection1D.NewAdvection(1, 0)
		xMin, xMax, periodic = ad.Domain()
	)
	part, err := mesh.NewUniform(xMin, xMax, 16, periodic)
	require.NoError(t, err)
	errL2 := func(degree int) float64 {
		dg, err := spatial.NewDG(part, degree, ad.Riemann(), model_problems.Options(ad)...)
		require.NoError(t, err)
		dg.Approximate(ad.Initial)
		norms := model_problems.ErrorNorms(ad, dg.FiniteElement, 0)
		require.Len(t, norms, 1)
		assert.Equal(t, "u", norms[0].Field)
		assert.LessOrEqual(t, norms[0].L1, math.Sqrt(xMax-xMin)*norms[0].L2+1.e-15)
		assert.LessOrEqual(t, norms[0].L2, math.Sqrt(xMax-xMin)*norms[0].Linf+1.e-15)
		return norms[0].L2
	}
	e1, e2 := errL2(1), errL2(3)
	assert.Less(t, e2, 1.e-4)
	assert.Less(t, e2, 0.01*e1)
}
