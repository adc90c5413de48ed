package Euler1D

import (
	"fmt"
	"math"
	"strings"

	"github.com/minicfd/gocfd1d/mesh"
	"github.com/minicfd/gocfd1d/riemann"
	"github.com/minicfd/gocfd1d/riemann/diffusive"
	"github.com/minicfd/gocfd1d/riemann/euler"
	"github.com/minicfd/gocfd1d/sod_shock_tube"
	"github.com/minicfd/gocfd1d/spatial"
	"github.com/minicfd/gocfd1d/types"
)

type CaseType uint8

const (
	SOD_TUBE CaseType = iota
	LAX_TUBE
	DENSITY_WAVE
)

var caseNames = map[string]CaseType{
	"sod":          SOD_TUBE,
	"lax":          LAX_TUBE,
	"density_wave": DENSITY_WAVE,
	"densitywave":  DENSITY_WAVE,
}

func (ct CaseType) String() string {
	switch ct {
	case SOD_TUBE:
		return "sod"
	case LAX_TUBE:
		return "lax"
	case DENSITY_WAVE:
		return "density_wave"
	}
	return "unknown"
}

func ParseCase(name string) (ct CaseType, err error) {
	var ok bool
	if ct, ok = caseNames[strings.ToLower(strings.TrimSpace(name))]; !ok {
		err = fmt.Errorf("unknown euler case %q", name)
	}
	return
}

// Euler is one of the 1D gas dynamics cases. Shock tubes use far field
// conditions holding the initial states, the density wave is periodic.
type Euler struct {
	Case   CaseType
	Gas    euler.Gas
	Solver euler.Solver
	// Nu > 0 adds the Navier-Stokes viscous flux
	Nu float64
	// LeftBC and RightBC close the tube, the initial end states are given
	LeftBC, RightBC types.BCFLAG
	tube            *sod_shock_tube.Tube
}

func NewEuler(ct CaseType, solver euler.Solver) (eu *Euler) {
	eu = &Euler{
		Case:    ct,
		Gas:     solver.Gas(),
		Solver:  solver,
		LeftBC:  types.BC_Smart,
		RightBC: types.BC_Smart,
	}
	switch ct {
	case SOD_TUBE:
		eu.tube = sod_shock_tube.NewSOD()
	case LAX_TUBE:
		eu.tube = sod_shock_tube.NewLax()
	}
	if eu.tube != nil {
		eu.tube = sod_shock_tube.NewTube(eu.Gas, eu.tube.Left, eu.tube.Right,
			eu.tube.XMin, eu.tube.XMax, eu.tube.X0)
	}
	return
}

func (eu *Euler) Name() string { return fmt.Sprintf("euler %s, gamma = %g", eu.Case, eu.Gas.Gamma) }

func (eu *Euler) Riemann() riemann.Convective { return euler.New(eu.Solver) }

func (eu *Euler) Domain() (xMin, xMax float64, periodic bool) {
	if eu.tube != nil {
		return eu.tube.XMin, eu.tube.XMax, false
	}
	return 0, 1, true
}

func (eu *Euler) Initial(x float64) []float64 { return eu.Exact(x, 0) }

func (eu *Euler) Exact(x, t float64) []float64 {
	if eu.tube != nil {
		return eu.Gas.PrimitiveToConservative(eu.tube.State(x, t))
	}
	// advected at u = 1 on the unit period
	return eu.Gas.PrimitiveToConservative(euler.Primitive{
		Rho: 1 + 0.2*math.Sin(2*math.Pi*(x-t)),
		U:   1,
		P:   1,
	})
}

func (eu *Euler) Boundaries() map[string]spatial.Boundary {
	if eu.tube == nil {
		return nil
	}
	far := func(kind types.BCFLAG, s euler.Primitive) spatial.Boundary {
		u := eu.Gas.PrimitiveToConservative(s)
		return spatial.Boundary{
			Kind:  kind,
			Given: func(x, t float64) []float64 { return u },
		}
	}
	return map[string]spatial.Boundary{
		mesh.LeftBoundary:  far(eu.LeftBC, eu.tube.Left),
		mesh.RightBoundary: far(eu.RightBC, eu.tube.Right),
	}
}

func (eu *Euler) FieldNames() []string { return []string{"rho", "u", "p"} }

func (eu *Euler) Fields(u []float64) []float64 {
	p := eu.Gas.ConservativeToPrimitive(u)
	return []float64{p.Rho, p.U, p.P}
}

// Diffusion is nil for inviscid flow.
func (eu *Euler) Diffusion() diffusive.Diffusive {
	if eu.Nu > 0 {
		return diffusive.NewNavierStokes1D(eu.Gas, eu.Nu, 0.72)
	}
	return nil
}

// Tube is nil for the density wave.
func (eu *Euler) Tube() *sod_shock_tube.Tube { return eu.tube }
