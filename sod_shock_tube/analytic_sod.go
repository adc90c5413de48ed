package sod_shock_tube

import (
	"math"

	"github.com/minicfd/gocfd1d/riemann/euler"
)

// Tube is a shock tube on [XMin, XMax] with the diaphragm at X0.
type Tube struct {
	Gas            euler.Gas
	Left, Right    euler.Primitive
	XMin, XMax, X0 float64
	exact          *euler.Exact
	pStar, uStar   float64
}

func NewTube(gas euler.Gas, left, right euler.Primitive, xMin, xMax, x0 float64) (tb *Tube) {
	tb = &Tube{
		Gas:   gas,
		Left:  left,
		Right: right,
		XMin:  xMin,
		XMax:  xMax,
		X0:    x0,
		exact: euler.NewExact(gas),
	}
	tb.pStar, tb.uStar = tb.exact.StarState(left, right)
	return
}

// NewSOD is (1, 0, 1) | (0.125, 0, 0.1) on [0, 1].
func NewSOD() *Tube {
	return NewTube(euler.NewGas(1.4),
		euler.Primitive{Rho: 1, P: 1}, euler.Primitive{Rho: 0.125, P: 0.1}, 0, 1, 0.5)
}

// NewLax is (0.445, 0.698, 3.528) | (0.5, 0, 0.571) on [0, 1].
func NewLax() *Tube {
	return NewTube(euler.NewGas(1.4),
		euler.Primitive{Rho: 0.445, U: 0.698, P: 3.528}, euler.Primitive{Rho: 0.5, P: 0.571}, 0, 1, 0.5)
}

func (tb *Tube) StarState() (pStar, uStar float64) { return tb.pStar, tb.uStar }

// State is the exact solution at x and time t.
func (tb *Tube) State(x, t float64) euler.Primitive {
	if t <= 0 {
		if x < tb.X0 {
			return tb.Left
		}
		return tb.Right
	}
	return tb.exact.Sample(tb.Left, tb.Right, (x-tb.X0)/t)
}

// Waves returns the head and tail of the left wave, the contact and the
// right wave front at time t.
func (tb *Tube) Waves(t float64) (x1, x2, x3, x4 float64) {
	var (
		g      = tb.Gas
		aL, aR = g.SoundSpeedOf(tb.Left), g.SoundSpeedOf(tb.Right)
		gg     = 0.5 * g.GammaMinusOne() / g.Gamma
		shock  = func(ratio float64) float64 {
			return math.Sqrt(0.5*g.GammaPlusOne()/g.Gamma*ratio + gg)
		}
	)
	if ratio := tb.pStar / tb.Left.P; ratio > 1 {
		x1 = tb.Left.U - aL*shock(ratio)
		x2 = x1
	} else {
		x1 = tb.Left.U - aL
		x2 = tb.uStar - aL*math.Pow(ratio, gg)
	}
	x3 = tb.uStar
	if ratio := tb.pStar / tb.Right.P; ratio > 1 {
		x4 = tb.Right.U + aR*shock(ratio)
	} else {
		x4 = tb.Right.U + aR
	}
	return tb.X0 + x1*t, tb.X0 + x2*t, tb.X0 + x3*t, tb.X0 + x4*t
}

// Profile samples the solution on both sides of every wave, with nFan
// points inside the left fan.
func (tb *Tube) Profile(t float64, nFan int) (X, Rho, P, U, E []float64) {
	var (
		tol            = 1.e-8
		x1, x2, x3, x4 = tb.Waves(t)
	)
	X = []float64{tb.XMin, x1 - tol, x1 + tol}
	for i := 1; i < nFan && x2 > x1; i++ {
		X = append(X, x1+(x2-x1)*float64(i)/float64(nFan))
	}
	X = append(X, x2-tol, x2+tol, x3-tol, x3+tol, x4-tol, x4+tol, tb.XMax)
	for _, x := range X {
		s := tb.State(x, t)
		Rho = append(Rho, s.Rho)
		P = append(P, s.P)
		U = append(U, s.U)
		E = append(E, s.P/(tb.Gas.GammaMinusOne()*s.Rho))
	}
	return
}

func SOD_calc(t float64) (X, Rho, P, U, E []float64) {
	return NewSOD().Profile(t, 10)
}
