package diffusive

import (
	"fmt"

	"github.com/minicfd/gocfd1d/riemann/euler"
)

// Diffusive gives the viscous part of the total flux, F = f(U) + Flux(U, U_x).
type Diffusive interface {
	Flux(u, ux []float64) []float64
	// Viscosity is the largest kinematic diffusivity, used for time step limits
	Viscosity() float64
}

// Isotropic is F_v = -nu U_x applied to every component.
type Isotropic struct {
	Nu float64
}

func (iso Isotropic) Flux(u, ux []float64) (f []float64) {
	f = make([]float64, len(ux))
	for i, g := range ux {
		f[i] = -iso.Nu * g
	}
	return
}

func (iso Isotropic) Viscosity() float64 { return iso.Nu }

// NavierStokes1D is the viscous flux of the 1D compressible Navier-Stokes
// equations with dynamic viscosity mu = Nu rho.
type NavierStokes1D struct {
	Gas    euler.Gas
	Nu, Pr float64
}

func NewNavierStokes1D(gas euler.Gas, nu, prandtl float64) (ns *NavierStokes1D) {
	if nu < 0 || !(prandtl > 0) {
		panic(fmt.Errorf("invalid viscosity %v or prandtl number %v", nu, prandtl))
	}
	return &NavierStokes1D{Gas: gas, Nu: nu, Pr: prandtl}
}

func (ns *NavierStokes1D) Flux(u, ux []float64) []float64 {
	var (
		g   = ns.Gas
		rho = u[0]
	)
	if rho <= 0 {
		return make([]float64, 3)
	}
	var (
		v     = u[1] / rho
		vx    = (ux[1] - v*ux[0]) / rho
		p     = g.GammaMinusOne() * (u[2] - 0.5*rho*v*v)
		px    = g.GammaMinusOne() * (ux[2] - 0.5*ux[0]*v*v - rho*v*vx)
		tx    = (px*rho - p*ux[0]) / (rho * rho * g.R)
		mu    = ns.Nu * rho
		kappa = mu * g.Cp() / ns.Pr
		tau   = 4. / 3 * mu * vx
	)
	return []float64{0, -tau, -(v*tau + kappa*tx)}
}

func (ns *NavierStokes1D) Viscosity() float64 {
	// thermal diffusivity may exceed the momentum one
	if gp := ns.Gas.Gamma / ns.Pr; gp > 4./3 {
		return ns.Nu * gp
	}
	return ns.Nu * 4 / 3
}

// DDG is the direct DG common gradient
//
//	u_x* = Beta0 [u] / d + {u_x} + Beta1 d [u_xx]
//
// where [.] is the right minus left jump and d the distance between cell centers.
type DDG struct {
	Beta0, Beta1 float64
}

func NewDDG() DDG { return DDG{Beta0: 2, Beta1: 1. / 12} }

func (ddg DDG) CommonGradient(d float64, uL, uR, uxL, uxR, uxxL, uxxR []float64) (g []float64) {
	g = make([]float64, len(uL))
	for i := range g {
		g[i] = ddg.Beta0*(uR[i]-uL[i])/d + 0.5*(uxL[i]+uxR[i]) + ddg.Beta1*d*(uxxR[i]-uxxL[i])
	}
	return
}
