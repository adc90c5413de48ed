package euler

import (
	"fmt"
)

type Primitive struct {
	Rho, U, P float64
}

func (p Primitive) KineticEnergy() float64 { return 0.5 * p.U * p.U }

func (p Primitive) String() string {
	return fmt.Sprintf("rho = %8.5f, u = %8.5f, p = %8.5f", p.Rho, p.U, p.P)
}

func (p *Primitive) setZeroIfNegative() {
	if p.Rho < 0 || p.P < 0 {
		*p = Primitive{}
	}
}

// IsVacuum is true when the density or the pressure is not positive.
func (p Primitive) IsVacuum() bool { return p.Rho <= 0 || p.P <= 0 }

// ConservativeToPrimitive maps (rho, rho u, rho E) to (rho, u, p); a state with
// negative density or pressure becomes vacuum.
func (g Gas) ConservativeToPrimitive(c []float64) (p Primitive) {
	p = Primitive{Rho: c[0], U: c[1], P: c[2]}
	p.setZeroIfNegative()
	if p.Rho != 0 {
		p.U /= p.Rho
		p.P = (p.P - 0.5*p.Rho*p.U*p.U) * g.GammaMinusOne()
		p.setZeroIfNegative()
	}
	return
}

func (g Gas) PrimitiveToConservative(p Primitive) []float64 {
	return []float64{
		p.Rho,
		p.Rho * p.U,
		p.P/g.GammaMinusOne() + 0.5*p.Rho*p.U*p.U,
	}
}

func (g Gas) PrimitiveToFlux(p Primitive) (f []float64) {
	f = g.PrimitiveToConservative(p)
	for i := range f {
		f[i] *= p.U
	}
	f[1] += p.P
	f[2] += p.P * p.U
	return
}

func (g Gas) SoundSpeedOf(p Primitive) float64 {
	return g.SoundSpeed(p.Rho, p.P)
}

// TotalEnthalpy is H = a^2/(gamma-1) + u^2/2.
func (g Gas) TotalEnthalpy(p Primitive) float64 {
	a := g.SoundSpeedOf(p)
	return a*a/g.GammaMinusOne() + p.KineticEnergy()
}

func (g Gas) Temperature(p Primitive) float64 {
	if p.Rho == 0 {
		return 0
	}
	return p.P / (p.Rho * g.R)
}
