package euler

import (
	"fmt"
	"math"
)

// Gas is a calorically perfect gas.
type Gas struct {
	Gamma, R float64
}

func NewGas(gamma float64) Gas {
	if !(gamma > 1) {
		panic(fmt.Errorf("gamma must be larger than one, got %v", gamma))
	}
	return Gas{Gamma: gamma, R: 287.05}
}

func (g Gas) GammaMinusOne() float64          { return g.Gamma - 1 }
func (g Gas) GammaPlusOne() float64           { return g.Gamma + 1 }
func (g Gas) Cv() float64                     { return g.R / g.GammaMinusOne() }
func (g Gas) Cp() float64                     { return g.R * g.Gamma / g.GammaMinusOne() }
func (g Gas) gammaOverGammaMinusOne() float64 { return g.Gamma / g.GammaMinusOne() }

// SoundSpeed is zero unless both rho and p are positive.
func (g Gas) SoundSpeed(rho, p float64) float64 {
	if rho > 0 && p > 0 {
		return math.Sqrt(g.Gamma * p / rho)
	}
	return 0
}

func (g Gas) SoundSpeedFromTemperature(temperature float64) float64 {
	if temperature > 0 {
		return math.Sqrt(g.Gamma * g.R * temperature)
	}
	return 0
}

func (g Gas) MachFactor(mach float64) float64 {
	return 1 + 0.5*g.GammaMinusOne()*mach*mach
}

func (g Gas) TotalTemperatureToTemperature(mach, totalTemperature float64) float64 {
	return totalTemperature / g.MachFactor(mach)
}

func (g Gas) TotalPressureToPressure(mach, totalPressure float64) float64 {
	return totalPressure / math.Pow(g.MachFactor(mach), g.gammaOverGammaMinusOne())
}

func (g Gas) MachFromTemperatureRatio(ratio float64) float64 {
	return math.Sqrt((ratio - 1) / (0.5 * g.GammaMinusOne()))
}

func (g Gas) MachFromTemperature(temperature, totalTemperature float64) float64 {
	return g.MachFromTemperatureRatio(totalTemperature / temperature)
}

func (g Gas) MachFromPressure(pressure, totalPressure float64) float64 {
	ratio := math.Pow(totalPressure/pressure, 1/g.gammaOverGammaMinusOne())
	return g.MachFromTemperatureRatio(ratio)
}
