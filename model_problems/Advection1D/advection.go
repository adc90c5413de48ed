package Advection1D

import (
	"fmt"
	"math"

	"github.com/minicfd/gocfd1d/riemann"
	"github.com/minicfd/gocfd1d/riemann/diffusive"
	"github.com/minicfd/gocfd1d/spatial"
)

// Advection is u_t + a u_x = nu u_xx on a periodic domain, started from
// Mode sine periods.
type Advection struct {
	A, Nu      float64
	XMin, XMax float64
	Mode       int
}

func NewAdvection(a, nu float64) *Advection {
	return &Advection{A: a, Nu: nu, XMin: 0, XMax: 2 * math.Pi, Mode: 1}
}

func (ad *Advection) Name() string {
	if ad.Nu > 0 {
		return fmt.Sprintf("advection-diffusion a = %g, nu = %g", ad.A, ad.Nu)
	}
	return fmt.Sprintf("advection a = %g", ad.A)
}

func (ad *Advection) Riemann() riemann.Convective { return riemann.LinearScalar{A: ad.A} }

func (ad *Advection) Domain() (xMin, xMax float64, periodic bool) { return ad.XMin, ad.XMax, true }

func (ad *Advection) wavenumber() float64 {
	return 2 * math.Pi * float64(ad.Mode) / (ad.XMax - ad.XMin)
}

func (ad *Advection) Initial(x float64) []float64 {
	return []float64{math.Sin(ad.wavenumber() * (x - ad.XMin))}
}

func (ad *Advection) Exact(x, t float64) []float64 {
	k := ad.wavenumber()
	return []float64{math.Exp(-ad.Nu*k*k*t) * math.Sin(k*(x-ad.A*t-ad.XMin))}
}

func (ad *Advection) Boundaries() map[string]spatial.Boundary { return nil }

func (ad *Advection) FieldNames() []string { return []string{"u"} }

func (ad *Advection) Fields(u []float64) []float64 { return u }

func (ad *Advection) Diffusion() diffusive.Diffusive {
	if ad.Nu > 0 {
		return diffusive.Isotropic{Nu: ad.Nu}
	}
	return nil
}
