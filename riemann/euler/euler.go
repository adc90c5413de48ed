package euler

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Euler adapts a Solver to conservative states (rho, rho u, rho E).
type Euler struct {
	Solver Solver
}

func New(solver Solver) *Euler {
	return &Euler{Solver: solver}
}

func (eu *Euler) Gas() Gas { return eu.Solver.Gas() }

func (eu *Euler) Components() int { return 3 }

func (eu *Euler) Flux(u []float64) []float64 {
	g := eu.Gas()
	return g.PrimitiveToFlux(g.ConservativeToPrimitive(u))
}

func (eu *Euler) FluxUpwind(uL, uR []float64) []float64 {
	g := eu.Gas()
	return eu.Solver.FluxUpwind(g.ConservativeToPrimitive(uL), g.ConservativeToPrimitive(uR))
}

func (eu *Euler) MaxSpeed(u []float64) float64 {
	g := eu.Gas()
	p := g.ConservativeToPrimitive(u)
	return math.Abs(p.U) + g.SoundSpeedOf(p)
}

// EigenMatrices returns L and R of dF/dU at u, with L R = I.
func (eu *Euler) EigenMatrices(u []float64) (L, R *mat.Dense) {
	var (
		g  = eu.Gas()
		p  = g.ConservativeToPrimitive(u)
		a  = g.SoundSpeedOf(p)
		v  = p.U
		h  = g.TotalEnthalpy(p)
		b1 = g.GammaMinusOne() / (a * a)
		b2 = b1 * v * v / 2
	)
	R = mat.NewDense(3, 3, []float64{
		1, 1, 1,
		v - a, v, v + a,
		h - v*a, v * v / 2, h + v*a,
	})
	L = mat.NewDense(3, 3, []float64{
		0.5 * (b2 + v/a), 0.5 * (-b1*v - 1/a), 0.5 * b1,
		1 - b2, b1 * v, -b1,
		0.5 * (b2 - v/a), 0.5 * (-b1*v + 1/a), 0.5 * b1,
	})
	return
}

func (eu *Euler) FluxOnSupersonicInlet(given []float64) []float64 {
	return eu.Flux(given)
}

func (eu *Euler) FluxOnSupersonicOutlet(inner []float64) []float64 {
	return eu.Flux(inner)
}

// FluxOnInviscidWall upwinds against the mirrored state; normal is -1 on a
// left boundary and +1 on a right boundary.
func (eu *Euler) FluxOnInviscidWall(inner []float64, normal float64) []float64 {
	var (
		g      = eu.Gas()
		p      = g.ConservativeToPrimitive(inner)
		mirror = g.PrimitiveToConservative(Primitive{Rho: p.Rho, U: -p.U, P: p.P})
	)
	if normal > 0 {
		return eu.FluxUpwind(inner, mirror)
	}
	return eu.FluxUpwind(mirror, inner)
}

func (eu *Euler) FluxOnSubsonicInlet(inner, given []float64, normal float64) []float64 {
	var (
		g          = eu.Gas()
		pi         = g.ConservativeToPrimitive(inner)
		po         = g.ConservativeToPrimitive(given)
		pb         = po
		uNuO, uNuI = po.U * normal, pi.U * normal
		ai         = g.SoundSpeedOf(pi)
		rhoAi      = pi.Rho * ai
	)
	if !(uNuO > 0) {
		rhoAi = -rhoAi
	}
	pb.P = 0.5 * (pi.P + po.P + rhoAi*(uNuO-uNuI))
	pJump := po.P - pb.P
	pb.Rho -= pJump / (ai * ai)
	pb.U += pJump / rhoAi * normal
	return g.PrimitiveToFlux(pb)
}

func (eu *Euler) FluxOnSubsonicOutlet(inner, given []float64, normal float64) []float64 {
	var (
		g     = eu.Gas()
		pi    = g.ConservativeToPrimitive(inner)
		po    = g.ConservativeToPrimitive(given)
		pb    = pi
		ai    = g.SoundSpeedOf(pi)
		rhoAi = pi.Rho * ai
	)
	pb.P = po.P
	pJump := pi.P - pb.P
	pb.Rho -= pJump / (ai * ai)
	if !(pi.U*normal > 0) {
		rhoAi = -rhoAi
	}
	pb.U += pJump / rhoAi * normal
	return g.PrimitiveToFlux(pb)
}

// FluxOnSmartBoundary upwinds between the inner and the given state.
func (eu *Euler) FluxOnSmartBoundary(inner, given []float64, normal float64) []float64 {
	if normal > 0 {
		return eu.FluxUpwind(inner, given)
	}
	return eu.FluxUpwind(given, inner)
}
