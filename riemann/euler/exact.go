package euler

import (
	"math"
)

// Exact is the exact Riemann solver (Toro, chapter 4) including vacuum states.
type Exact struct {
	gas Gas
	Tol float64
}

func NewExact(g Gas) *Exact { return &Exact{gas: g, Tol: 1.e-8} }

func (e *Exact) Gas() Gas { return e.gas }

func (e *Exact) FluxUpwind(left, right Primitive) []float64 {
	return e.gas.PrimitiveToFlux(e.Sample(left, right, 0))
}

// pressureFunction returns f_K(p) and its derivative for one side.
func (e *Exact) pressureFunction(p float64, s Primitive, a float64) (f, df float64) {
	g := e.gas
	if p > s.P { // shock
		A := 2 / (g.GammaPlusOne() * s.Rho)
		B := g.GammaMinusOne() / g.GammaPlusOne() * s.P
		sq := math.Sqrt(A / (p + B))
		f = (p - s.P) * sq
		df = sq * (1 - 0.5*(p-s.P)/(B+p))
	} else { // rarefaction
		ratio := p / s.P
		f = 2 * a / g.GammaMinusOne() * (math.Pow(ratio, 0.5*g.GammaMinusOne()/g.Gamma) - 1)
		df = math.Pow(ratio, -0.5*g.GammaPlusOne()/g.Gamma) / (s.Rho * a)
	}
	return
}

// StarState solves for the pressure and velocity between the nonlinear waves.
func (e *Exact) StarState(left, right Primitive) (pStar, uStar float64) {
	var (
		g      = e.gas
		aL, aR = g.SoundSpeedOf(left), g.SoundSpeedOf(right)
		du     = right.U - left.U
		p      = 0.5*(left.P+right.P) - 0.125*du*(left.Rho+right.Rho)*(aL+aR)
	)
	p = math.Max(e.Tol, p)
	for iter := 0; iter < 100; iter++ {
		fL, dfL := e.pressureFunction(p, left, aL)
		fR, dfR := e.pressureFunction(p, right, aR)
		pNew := p - (fL+fR+du)/(dfL+dfR)
		if pNew < 0 {
			pNew = e.Tol
		}
		change := 2 * math.Abs(pNew-p) / (pNew + p)
		p = pNew
		if change < e.Tol {
			break
		}
	}
	fL, _ := e.pressureFunction(p, left, aL)
	fR, _ := e.pressureFunction(p, right, aR)
	return p, 0.5*(left.U+right.U) + 0.5*(fR-fL)
}

// Sample returns the self-similar solution at speed s = x/t. A side without
// positive density and pressure is vacuum.
func (e *Exact) Sample(left, right Primitive, s float64) Primitive {
	for _, st := range []*Primitive{&left, &right} {
		if st.IsVacuum() {
			*st = Primitive{}
		}
	}
	var (
		g      = e.gas
		aL, aR = g.SoundSpeedOf(left), g.SoundSpeedOf(right)
		gm1    = g.GammaMinusOne()
	)
	switch {
	case left.Rho == 0 && right.Rho == 0:
		return Primitive{}
	case right.Rho == 0:
		return e.leftIntoVacuum(left, aL, s)
	case left.Rho == 0:
		return e.rightIntoVacuum(right, aR, s)
	case 2*(aL+aR)/gm1 <= right.U-left.U: // vacuum generated in the middle
		if s <= left.U+2*aL/gm1 {
			return e.leftIntoVacuum(left, aL, s)
		}
		if s >= right.U-2*aR/gm1 {
			return e.rightIntoVacuum(right, aR, s)
		}
		return Primitive{}
	}
	pStar, uStar := e.StarState(left, right)
	if s <= uStar {
		return e.sampleLeft(left, aL, pStar, uStar, s)
	}
	return e.sampleRight(right, aR, pStar, uStar, s)
}

func (e *Exact) leftFan(left Primitive, aL, s float64) Primitive {
	var (
		g  = e.gas
		g5 = 2 / g.GammaPlusOne()
		g7 = 0.5 * g.GammaMinusOne()
		c  = g5 * (aL + g7*(left.U-s))
	)
	return Primitive{
		Rho: left.Rho * math.Pow(c/aL, 2/g.GammaMinusOne()),
		U:   g5 * (aL + g7*left.U + s),
		P:   left.P * math.Pow(c/aL, 2*g.Gamma/g.GammaMinusOne()),
	}
}

func (e *Exact) rightFan(right Primitive, aR, s float64) Primitive {
	var (
		g  = e.gas
		g5 = 2 / g.GammaPlusOne()
		g7 = 0.5 * g.GammaMinusOne()
		c  = g5 * (aR - g7*(right.U-s))
	)
	return Primitive{
		Rho: right.Rho * math.Pow(c/aR, 2/g.GammaMinusOne()),
		U:   g5 * (-aR + g7*right.U + s),
		P:   right.P * math.Pow(c/aR, 2*g.Gamma/g.GammaMinusOne()),
	}
}

func (e *Exact) leftIntoVacuum(left Primitive, aL, s float64) Primitive {
	switch {
	case s <= left.U-aL:
		return left
	case s < left.U+2*aL/e.gas.GammaMinusOne():
		return e.leftFan(left, aL, s)
	}
	return Primitive{}
}

func (e *Exact) rightIntoVacuum(right Primitive, aR, s float64) Primitive {
	switch {
	case s >= right.U+aR:
		return right
	case s > right.U-2*aR/e.gas.GammaMinusOne():
		return e.rightFan(right, aR, s)
	}
	return Primitive{}
}

func (e *Exact) sampleLeft(left Primitive, aL, pStar, uStar, s float64) Primitive {
	var (
		g     = e.gas
		ratio = pStar / left.P
		g6    = g.GammaMinusOne() / g.GammaPlusOne()
	)
	if pStar > left.P { // shock
		sL := left.U - aL*math.Sqrt(0.5*g.GammaPlusOne()/g.Gamma*ratio+0.5*g.GammaMinusOne()/g.Gamma)
		if s <= sL {
			return left
		}
		return Primitive{Rho: left.Rho * (ratio + g6) / (g6*ratio + 1), U: uStar, P: pStar}
	}
	if s <= left.U-aL {
		return left
	}
	tail := uStar - aL*math.Pow(ratio, 0.5*g.GammaMinusOne()/g.Gamma)
	if s > tail {
		return Primitive{Rho: left.Rho * math.Pow(ratio, 1/g.Gamma), U: uStar, P: pStar}
	}
	return e.leftFan(left, aL, s)
}

func (e *Exact) sampleRight(right Primitive, aR, pStar, uStar, s float64) Primitive {
	var (
		g     = e.gas
		ratio = pStar / right.P
		g6    = g.GammaMinusOne() / g.GammaPlusOne()
	)
	if pStar > right.P { // shock
		sR := right.U + aR*math.Sqrt(0.5*g.GammaPlusOne()/g.Gamma*ratio+0.5*g.GammaMinusOne()/g.Gamma)
		if s >= sR {
			return right
		}
		return Primitive{Rho: right.Rho * (ratio + g6) / (g6*ratio + 1), U: uStar, P: pStar}
	}
	if s >= right.U+aR {
		return right
	}
	tail := uStar + aR*math.Pow(ratio, 0.5*g.GammaMinusOne()/g.Gamma)
	if s <= tail {
		return Primitive{Rho: right.Rho * math.Pow(ratio, 1/g.Gamma), U: uStar, P: pStar}
	}
	return e.rightFan(right, aR, s)
}
