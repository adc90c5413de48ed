package euler

import (
	"fmt"
	"math"
	"strings"
)

// Solver computes the x-direction numerical flux between two primitive states.
type Solver interface {
	FluxUpwind(left, right Primitive) []float64
	Gas() Gas
}

// vacuumFlux hands a pair with a vacuum side to the exact solver, the
// approximate solvers divide by the density and the sound speed.
func vacuumFlux(g Gas, left, right Primitive) (f []float64, ok bool) {
	if !left.IsVacuum() && !right.IsVacuum() {
		return nil, false
	}
	return NewExact(g).FluxUpwind(left, right), true
}

type HLLC struct {
	gas Gas
}

func NewHLLC(g Gas) *HLLC { return &HLLC{gas: g} }

func (h *HLLC) Gas() Gas { return h.gas }

func (h *HLLC) FluxUpwind(left, right Primitive) []float64 {
	if f, ok := vacuumFlux(h.gas, left, right); ok {
		return f
	}
	var (
		g      = h.gas
		rhoAve = 0.5 * (left.Rho + right.Rho)
		aLeft  = g.SoundSpeedOf(left)
		aRight = g.SoundSpeedOf(right)
		aAve   = 0.5 * (aLeft + aRight)
		pPVRS  = 0.5 * (left.P + right.P - (right.U-left.U)*rhoAve*aAve)
		pEst   = math.Max(0, pPVRS)
		q      = func(pK float64) float64 {
			if pEst <= pK {
				return 1
			}
			return math.Sqrt(1 + 0.5*g.GammaPlusOne()*(pEst/pK-1)/g.Gamma)
		}
		waveLeft  = left.U - aLeft*q(left.P)
		waveRight = right.U + aRight*q(right.P)
		waveStar  = (right.P - left.P +
			left.Rho*left.U*(waveLeft-left.U) -
			right.Rho*right.U*(waveRight-right.U)) /
			(left.Rho*(waveLeft-left.U) - right.Rho*(waveRight-right.U))
	)
	starFlux := func(s Primitive, waveK float64) (f []float64) {
		f = g.PrimitiveToFlux(s)
		var (
			uK     = g.PrimitiveToConservative(s)
			temp   = s.Rho * (waveK - s.U) / (waveK - waveStar)
			energy = uK[2]/s.Rho + (waveStar-s.U)*(waveStar+s.P/(s.Rho*(waveK-s.U)))
			uStar  = []float64{temp, temp * waveStar, energy * temp}
		)
		for i := range f {
			f[i] += waveK * (uStar[i] - uK[i])
		}
		return
	}
	switch {
	case 0 <= waveLeft:
		return g.PrimitiveToFlux(left)
	case waveRight <= 0:
		return g.PrimitiveToFlux(right)
	case 0 <= waveStar:
		return starFlux(left, waveLeft)
	default:
		return starFlux(right, waveRight)
	}
}

// AUSM is Liou's advection upstream splitting with signed Mach polynomials.
type AUSM struct {
	gas Gas
}

func NewAUSM(g Gas) *AUSM { return &AUSM{gas: g} }

func (au *AUSM) Gas() Gas { return au.gas }

func (au *AUSM) FluxUpwind(left, right Primitive) (f []float64) {
	var ok bool
	if f, ok = vacuumFlux(au.gas, left, right); ok {
		return
	}
	fl, fr := au.signedFlux(left, false), au.signedFlux(right, true)
	f = make([]float64, 3)
	for i := range f {
		f[i] = fl[i] + fr[i]
	}
	return
}

func (au *AUSM) signedFlux(s Primitive, negative bool) (f []float64) {
	var (
		g    = au.gas
		a    = g.SoundSpeedOf(s)
		h    = a*a/g.GammaMinusOne() + s.KineticEnergy()
		mach = s.U / a
		p    = s.P
		sign = 1.
	)
	if negative {
		sign = -1
	}
	signedMach := 0.5 * (1 + sign*mach)
	if mach >= -1 && mach <= 1 {
		mach = sign * signedMach * signedMach
		p *= signedMach
	} else if signedMach < 0 {
		mach = 0
		p = 0
	}
	scale := s.Rho * a * mach
	f = []float64{scale, scale * s.U, scale * h}
	f[1] += p
	return
}

// Roe uses Roe averages with the Harten entropy fix delta = a/20.
type Roe struct {
	gas Gas
}

func NewRoe(g Gas) *Roe { return &Roe{gas: g} }

func (r *Roe) Gas() Gas { return r.gas }

func (r *Roe) FluxUpwind(left, right Primitive) (f []float64) {
	var ok bool
	if f, ok = vacuumFlux(r.gas, left, right); ok {
		return
	}
	var (
		g         = r.gas
		fL, fR    = g.PrimitiveToFlux(left), g.PrimitiveToFlux(right)
		srl, srr  = math.Sqrt(left.Rho), math.Sqrt(right.Rho)
		roeAve    = func(l, r float64) float64 { return (srl*l + srr*r) / (srl + srr) }
		hL, hR    = g.TotalEnthalpy(left), g.TotalEnthalpy(right)
		url, htrl = roeAve(left.U, right.U), roeAve(hL, hR)
		rhorl     = srl * srr
		arl       = math.Sqrt(g.GammaMinusOne() * (htrl - 0.5*url*url))
		delRho    = right.Rho - left.Rho
		delU      = right.U - left.U
		delP      = right.P - left.P
		delta     = arl / 20
		ooarl2    = 1 / (arl * arl)
		f1        = (delP - rhorl*arl*delU) * 0.5 * ooarl2
		f2        = delRho - delP*ooarl2
		f3        = (delP + rhorl*arl*delU) * 0.5 * ooarl2
		phi       = func(eig float64) float64 {
			// Harten entropy correction
			absLam := math.Abs(eig)
			if absLam > delta {
				return absLam
			}
			return (eig*eig + delta*delta) / (2 * delta)
		}
		phi1, phi2, phi3 = phi(url - arl), phi(url), phi(url + arl)
	)
	diss := []float64{
		phi1*f1 + phi2*f2 + phi3*f3,
		phi1*f1*(url-arl) + phi2*f2*url + phi3*f3*(url+arl),
		phi1*f1*(htrl-arl*url) + phi2*f2*url*url*0.5 + phi3*f3*(htrl+url*arl),
	}
	f = make([]float64, 3)
	for i := range f {
		f[i] = 0.5*(fL[i]+fR[i]) - 0.5*diss[i]
	}
	return
}

// LaxFriedrichs is the local (Rusanov) Lax-Friedrichs flux.
type LaxFriedrichs struct {
	gas Gas
}

func NewLaxFriedrichs(g Gas) *LaxFriedrichs { return &LaxFriedrichs{gas: g} }

func (lf *LaxFriedrichs) Gas() Gas { return lf.gas }

func (lf *LaxFriedrichs) FluxUpwind(left, right Primitive) (f []float64) {
	var ok bool
	if f, ok = vacuumFlux(lf.gas, left, right); ok {
		return
	}
	var (
		g      = lf.gas
		fL, fR = g.PrimitiveToFlux(left), g.PrimitiveToFlux(right)
		uL, uR = g.PrimitiveToConservative(left), g.PrimitiveToConservative(right)
		lm     = math.Max(math.Abs(left.U)+g.SoundSpeedOf(left), math.Abs(right.U)+g.SoundSpeedOf(right))
	)
	f = make([]float64, 3)
	for i := range f {
		f[i] = 0.5*(fL[i]+fR[i]) - 0.5*lm*(uR[i]-uL[i])
	}
	return
}

// NewSolver selects a flux by name: hllc, ausm, roe, lax or exact.
func NewSolver(name string, g Gas) (Solver, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "hllc":
		return NewHLLC(g), nil
	case "ausm":
		return NewAUSM(g), nil
	case "roe":
		return NewRoe(g), nil
	case "lax", "laxfriedrichs", "lax_friedrichs":
		return NewLaxFriedrichs(g), nil
	case "exact", "godunov":
		return NewExact(g), nil
	}
	return nil, fmt.Errorf("unknown euler flux %q", name)
}
