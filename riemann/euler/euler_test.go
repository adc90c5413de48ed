package euler

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestGas(t *testing.T) {
	g := NewGas(1.4)
	assert.Equal(t, 0., g.SoundSpeed(0, 1))
	assert.Equal(t, 0., g.SoundSpeed(1, -1))
	assert.InDelta(t, math.Sqrt(1.4), g.SoundSpeed(1, 1), 1.e-15)
	assert.InDelta(t, 1.2, g.MachFactor(1), 1.e-15)
	{ // total conditions round trip
		mach := 0.7
		p := g.TotalPressureToPressure(mach, 1.e5)
		assert.InDelta(t, mach, g.MachFromPressure(p, 1.e5), 1.e-12)
		T := g.TotalTemperatureToTemperature(mach, 300)
		assert.InDelta(t, mach, g.MachFromTemperature(T, 300), 1.e-12)
		assert.InDelta(t, g.SoundSpeed(1.2, 1.2*g.R*T), g.SoundSpeedFromTemperature(T), 1.e-10)
	}
	assert.Panics(t, func() { NewGas(1) })
}

func TestConversions(t *testing.T) {
	g := NewGas(1.4)
	{
		p := Primitive{Rho: 1.2, U: -0.3, P: 2.5}
		c := g.PrimitiveToConservative(p)
		q := g.ConservativeToPrimitive(c)
		assert.InDelta(t, p.Rho, q.Rho, 1.e-15)
		assert.InDelta(t, p.U, q.U, 1.e-15)
		assert.InDelta(t, p.P, q.P, 1.e-14)
		f := g.PrimitiveToFlux(p)
		assert.InDelta(t, c[1], f[0], 1.e-15)
		assert.InDelta(t, c[1]*p.U+p.P, f[1], 1.e-15)
		assert.InDelta(t, (c[2]+p.P)*p.U, f[2], 1.e-15)
	}
	{ // negative pressure or density is vacuum
		assert.Equal(t, Primitive{}, g.ConservativeToPrimitive([]float64{-1, 0, 1}))
		assert.Equal(t, Primitive{}, g.ConservativeToPrimitive([]float64{1, 2, 1}))
	}
}

func TestExact(t *testing.T) {
	g := NewGas(1.4)
	e := NewExact(g)
	{ // Toro test 1, Sod
		left, right := Primitive{Rho: 1, U: 0, P: 1}, Primitive{Rho: 0.125, U: 0, P: 0.1}
		p, u := e.StarState(left, right)
		assert.InDelta(t, 0.30313, p, 1.e-5)
		assert.InDelta(t, 0.92745, u, 1.e-5)
		assert.Equal(t, left, e.Sample(left, right, -2))
		assert.Equal(t, right, e.Sample(left, right, 2))
		contactL := e.Sample(left, right, u-1.e-6)
		contactR := e.Sample(left, right, u+1.e-6)
		assert.InDelta(t, 0.42632, contactL.Rho, 1.e-5)
		assert.InDelta(t, 0.26557, contactR.Rho, 1.e-5)
	}
	{ // Toro test 2, two rarefactions
		left, right := Primitive{Rho: 1, U: -2, P: 0.4}, Primitive{Rho: 1, U: 2, P: 0.4}
		p, u := e.StarState(left, right)
		assert.InDelta(t, 0.00189, p, 1.e-5)
		assert.InDelta(t, 0., u, 1.e-8)
	}
	{ // generated vacuum
		left, right := Primitive{Rho: 1, U: -20, P: 0.4}, Primitive{Rho: 1, U: 20, P: 0.4}
		assert.Equal(t, Primitive{}, e.Sample(left, right, 0))
	}
	{ // expansion into vacuum
		left := Primitive{Rho: 1, U: 0, P: 1}
		s := e.Sample(left, Primitive{}, 0)
		assert.True(t, s.Rho > 0 && s.Rho < 1 && s.U > 0)
		assert.Equal(t, Primitive{}, e.Sample(left, Primitive{}, 100))
	}
}

func TestSolversConsistency(t *testing.T) {
	g := NewGas(1.4)
	solvers := []Solver{NewExact(g), NewHLLC(g), NewAUSM(g), NewRoe(g), NewLaxFriedrichs(g)}
	states := []Primitive{
		{Rho: 1, U: 0.3, P: 1},
		{Rho: 0.5, U: -0.2, P: 0.3},
		{Rho: 1, U: 3, P: 1},
		{Rho: 1, U: -3, P: 1},
	}
	for _, s := range solvers {
		for _, st := range states {
			assert.InDeltaSlice(t, g.PrimitiveToFlux(st), s.FluxUpwind(st, st), 1.e-10)
		}
	}
	{ // supersonic states are fully upwinded
		left, right := Primitive{Rho: 1, U: 3, P: 1}, Primitive{Rho: 0.8, U: 3.2, P: 0.9}
		for _, s := range []Solver{NewExact(g), NewHLLC(g), NewAUSM(g)} {
			assert.InDeltaSlice(t, g.PrimitiveToFlux(left), s.FluxUpwind(left, right), 1.e-10)
		}
	}
	{ // approximate solvers carry about the exact mass flux on Sod
		left, right := Primitive{Rho: 1, U: 0, P: 1}, Primitive{Rho: 0.125, U: 0, P: 0.1}
		exact := NewExact(g).FluxUpwind(left, right)
		assert.InDelta(t, 0.395, exact[0], 0.002)
		for _, s := range []Solver{NewHLLC(g), NewRoe(g)} {
			assert.InDelta(t, exact[0], s.FluxUpwind(left, right)[0], 0.02)
		}
	}
}

func TestVacuumStates(t *testing.T) {
	g := NewGas(1.4)
	solvers := []Solver{NewExact(g), NewHLLC(g), NewAUSM(g), NewRoe(g), NewLaxFriedrichs(g)}
	var (
		gas    = Primitive{Rho: 1, U: 0, P: 1}
		expand = NewExact(g).FluxUpwind(gas, Primitive{})
	)
	assert.True(t, expand[0] > 0)
	for _, vac := range []Primitive{
		{},
		{Rho: -1.e-3, U: 0.5, P: 0.1},
		{Rho: 0.1, U: 0, P: -1.e-10},
		{Rho: 1.e-3, U: 0, P: 0},
	} {
		for _, s := range solvers {
			f := s.FluxUpwind(gas, vac)
			assert.False(t, math.IsNaN(f[0]) || math.IsNaN(f[1]) || math.IsNaN(f[2]))
			assert.InDeltaSlice(t, expand, f, 1.e-12)
			// mirrored pair flows left
			f = s.FluxUpwind(Primitive{P: vac.P, Rho: vac.Rho, U: -vac.U}, gas)
			assert.InDeltaSlice(t, []float64{-expand[0], expand[1], -expand[2]}, f, 1.e-12)
			assert.Equal(t, []float64{0, 0, 0}, s.FluxUpwind(vac, Primitive{Rho: -1}))
		}
	}
}

func TestEulerAdapter(t *testing.T) {
	g := NewGas(1.4)
	eu := New(NewExact(g))
	u := g.PrimitiveToConservative(Primitive{Rho: 1.1, U: 0.4, P: 0.9})
	{
		assert.Equal(t, 3, eu.Components())
		L, R := eu.EigenMatrices(u)
		var I mat.Dense
		I.Mul(L, R)
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				if i == j {
					assert.InDelta(t, 1., I.At(i, j), 1.e-13)
				} else {
					assert.InDelta(t, 0., I.At(i, j), 1.e-13)
				}
			}
		}
		a := g.SoundSpeed(1.1, 0.9)
		assert.InDelta(t, 0.4+a, eu.MaxSpeed(u), 1.e-14)
	}
	{ // no mass crosses a wall
		for _, n := range []float64{-1, 1} {
			f := eu.FluxOnInviscidWall(u, n)
			assert.InDelta(t, 0., f[0], 1.e-10)
			assert.True(t, f[1] > 0)
		}
	}
	{ // boundary fluxes reduce to F(u) when the given state matches the inner one
		for _, n := range []float64{-1, 1} {
			assert.InDeltaSlice(t, eu.Flux(u), eu.FluxOnSubsonicInlet(u, u, n), 1.e-12)
			assert.InDeltaSlice(t, eu.Flux(u), eu.FluxOnSubsonicOutlet(u, u, n), 1.e-12)
			assert.InDeltaSlice(t, eu.Flux(u), eu.FluxOnSmartBoundary(u, u, n), 1.e-10)
		}
		assert.Equal(t, eu.Flux(u), eu.FluxOnSupersonicOutlet(u))
	}
}

func TestNewSolver(t *testing.T) {
	g := NewGas(1.4)
	for _, name := range []string{"HLLC", "ausm", "roe", "lax", "exact"} {
		s, err := NewSolver(name, g)
		assert.NoError(t, err)
		assert.Equal(t, g, s.Gas())
	}
	_, err := NewSolver("rusanov2", g)
	assert.Error(t, err)
}
