package sod_shock_tube

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSOD(t *testing.T) {
	{
		X, Rho, P, U, _ := SOD_calc(0.1)
		assert.Equal(t, len(X), len(Rho))
		assert.Equal(t, 0., X[0])
		assert.Equal(t, 1., X[len(X)-1])
		assert.Equal(t, 1., Rho[0])
		assert.Equal(t, 0.125, Rho[len(Rho)-1])
		for i := 1; i < len(X); i++ {
			assert.LessOrEqual(t, X[i-1], X[i])
			assert.True(t, Rho[i] <= Rho[i-1]+1.e-12)
		}
		for i, x := range X {
			if x > 0.5 && x < 0.59 {
				assert.InDelta(t, 0.42632, Rho[i], 1.e-4)
				assert.InDelta(t, 0.30313, P[i], 1.e-4)
				assert.InDelta(t, 0.92745, U[i], 1.e-4)
			}
			if x > 0.6 && x < 0.67 {
				assert.InDelta(t, 0.26557, Rho[i], 1.e-4)
			}
		}
	}
	{
		tb := NewSOD()
		x1, _, x3, x4 := tb.Waves(0.1)
		assert.InDelta(t, 0.6752, x4, 1.e-4)
		assert.InDelta(t, 0.5-math.Sqrt(1.4)*0.1, x1, 1.e-12)
		assert.InDelta(t, 0.5928, x3, 1.e-4)
		_, _, _, x4 = tb.Waves(0.2)
		assert.InDelta(t, 0.8504, x4, 1.e-4)
		assert.Equal(t, tb.Left, tb.State(0.3, 0))
		assert.Equal(t, tb.Right, tb.State(0.7, 0))
	}
	{ // Lax: left fan, contact, right shock
		tb := NewLax()
		x1, x2, x3, x4 := tb.Waves(0.1)
		assert.Less(t, x1, x2)
		assert.Less(t, x2, x3)
		assert.Less(t, x3, x4)
		pStar, uStar := tb.StarState()
		assert.InDelta(t, pStar, tb.State(0.5*(x2+x3), 0.1).P, 1.e-10)
		assert.InDelta(t, uStar, tb.State(0.5*(x3+x4), 0.1).U, 1.e-10)
	}
}
