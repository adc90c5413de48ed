package limiter

import (
	"math"

	"github.com/minicfd/gocfd1d/mesh"
	"github.com/minicfd/gocfd1d/polynomial"
	"gonum.org/v1/gonum/mat"
)

// Minmod is the TVB slope limiter. A cell whose end values pass the
// modified minmod test keeps its polynomial, otherwise it is replaced by a
// linear one with the limited mean slope. M = 0 gives the TVD limiter.
type Minmod struct {
	M float64
}

func (mm Minmod) Limit(part *mesh.Part, c *mesh.Cell, exps []polynomial.Expansion) *mat.Dense {
	var (
		mine       = exps[c.ID]
		K          = mine.Components()
		h          = c.Line.Length()
		avg        = mine.Average()
		uL         = mine.Value(c.Line.XLeft)
		uR         = mine.Value(c.Line.XRight)
		avgL, avgR = avg, avg
		limited    bool
		slope      = make([]float64, K)
	)
	for _, nb := range c.Neighbors {
		if nb.Right == c.Left {
			avgL = exps[nb.ID].Average()
		}
		if nb.Left == c.Right {
			avgR = exps[nb.ID].Average()
		}
	}
	tvb := mm.M * h * h
	for i := 0; i < K; i++ {
		var (
			dPlus  = avgR[i] - avg[i]
			dMinus = avg[i] - avgL[i]
			tR     = uR[i] - avg[i]
			tL     = avg[i] - uL[i]
		)
		if math.Abs(tR) > tvb && minmod(tR, dPlus, dMinus) != tR {
			limited = true
		}
		if math.Abs(tL) > tvb && minmod(tL, dPlus, dMinus) != tL {
			limited = true
		}
		slope[i] = minmod((uR[i]-uL[i])/h, dPlus/h, dMinus/h)
	}
	if !limited {
		return mine.Coeff()
	}
	center := c.Line.Center()
	cand := mine.Clone()
	cand.Approximate(func(x float64) (u []float64) {
		u = make([]float64, K)
		for i := range u {
			u[i] = avg[i] + slope[i]*(x-center)
		}
		return
	})
	return cand.Coeff()
}

func minmod(a ...float64) (m float64) {
	s := math.Copysign(1, a[0])
	m = math.Abs(a[0])
	for _, v := range a[1:] {
		if math.Copysign(1, v) != s {
			return 0
		}
		m = math.Min(m, math.Abs(v))
	}
	return s * m
}
