package Burgers1D

import (
	"fmt"
	"math"

	"github.com/minicfd/gocfd1d/model_problems"
	"github.com/minicfd/gocfd1d/riemann"
	"github.com/minicfd/gocfd1d/spatial"
)

// Burgers is u_t + (k u^2/2)_x = 0 on a periodic domain, started from
// Mean + Amplitude sin.
type Burgers struct {
	K               float64
	Mean, Amplitude float64
	XMin, XMax      float64
}

func NewBurgers(k float64) *Burgers {
	return &Burgers{K: k, Mean: 0.5, Amplitude: 1, XMin: 0, XMax: 2}
}

func (bu *Burgers) Name() string { return fmt.Sprintf("burgers k = %g", bu.K) }

func (bu *Burgers) Riemann() riemann.Convective { return riemann.NewBurgers(bu.K) }

func (bu *Burgers) Domain() (xMin, xMax float64, periodic bool) { return bu.XMin, bu.XMax, true }

func (bu *Burgers) Initial(x float64) []float64 {
	return []float64{bu.Mean + bu.Amplitude*math.Sin(2*math.Pi*(x-bu.XMin)/(bu.XMax-bu.XMin))}
}

// ShockTime is when the characteristics first cross.
func (bu *Burgers) ShockTime() float64 {
	return (bu.XMax - bu.XMin) / (2 * math.Pi * math.Abs(bu.K*bu.Amplitude))
}

// Exact solves u = u0(x - k u t), valid only before ShockTime.
func (bu *Burgers) Exact(x, t float64) []float64 {
	if t >= bu.ShockTime() {
		return nil
	}
	var (
		lo = bu.Mean - math.Abs(bu.Amplitude)
		hi = bu.Mean + math.Abs(bu.Amplitude)
	)
	u, err := model_problems.Bisect(func(u float64) float64 {
		return u - bu.Initial(x - bu.K*u*t)[0]
	}, lo, hi, 1.e-14)
	if err != nil {
		return nil
	}
	return []float64{u}
}

func (bu *Burgers) Boundaries() map[string]spatial.Boundary { return nil }

func (bu *Burgers) FieldNames() []string { return []string{"u"} }

func (bu *Burgers) Fields(u []float64) []float64 { return u }
