package spatial

import (
	"math"

	"github.com/minicfd/gocfd1d/limiter"
	"github.com/minicfd/gocfd1d/polynomial"
)

// Viscosity computes the artificial viscosity of every cell.
type Viscosity interface {
	Viscosities(fe *FiniteElement) []float64
}

// troubledOrAll flags every cell when det is nil.
func troubledOrAll(fe *FiniteElement, det limiter.Detector) (troubled []bool) {
	if det != nil {
		return det.Troubled(fe.Part, fe.exps)
	}
	troubled = make([]bool, len(fe.exps))
	for i := range troubled {
		troubled[i] = true
	}
	return
}

// Constant puts Nu on the troubled cells.
type Constant struct {
	Nu       float64
	Detector limiter.Detector
}

func (cv Constant) Viscosities(fe *FiniteElement) (nu []float64) {
	nu = make([]float64, len(fe.exps))
	for k, troubled := range troubledOrAll(fe, cv.Detector) {
		if troubled {
			nu[k] = cv.Nu
		}
	}
	return
}

// Persson is the sub-cell shock capturing viscosity of Persson and Peraire
// (2006), driven by the share of energy in the highest Legendre mode of
// Component.
type Persson struct {
	Kappa, NuMax float64
	Component    int
	Detector     limiter.Detector
}

func NewPersson() Persson { return Persson{Kappa: 2, NuMax: 0.1} }

func (pv Persson) Viscosities(fe *FiniteElement) (nu []float64) {
	nu = make([]float64, len(fe.exps))
	if fe.Degree == 0 {
		return
	}
	for k, troubled := range troubledOrAll(fe, pv.Detector) {
		if troubled {
			nu[k] = pv.cellViscosity(fe.exps[k])
		}
	}
	return
}

func (pv Persson) cellViscosity(e polynomial.Expansion) (nu float64) {
	p, ok := e.(*polynomial.Projection)
	if !ok {
		p = polynomial.NewProjection(e.Components(), e.Degree(), e.Line())
		polynomial.Project(p, e)
	}
	var (
		P     = p.Degree()
		total float64
	)
	for l := 0; l <= P; l++ {
		total += p.ModeEnergy(l)[pv.Component]
	}
	if total <= 0 {
		return 0
	}
	var (
		s0   = -4 * math.Log10(float64(P))
		sGap = math.Log10(p.ModeEnergy(P)[pv.Component]/total) - s0
	)
	nu = p.Line().Length() / float64(P)
	switch {
	case sGap > pv.Kappa:
	case sGap > -pv.Kappa:
		nu *= 0.5 * (1 + math.Sin(sGap/pv.Kappa*math.Pi/2))
	default:
		nu = 0
	}
	return math.Min(nu, pv.NuMax)
}
