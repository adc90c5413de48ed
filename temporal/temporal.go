package temporal

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// System is an ODE system dU/dt = R(U, t) on a flat solution column.
type System interface {
	SolutionColumn() []float64
	SetSolutionColumn(column []float64)
	ResidualColumn(ctx context.Context) ([]float64, error)
	SetTime(t float64)
}

// Scheme advances a System by one step of size dt starting at time t.
type Scheme interface {
	Update(ctx context.Context, sys System, t, dt float64) error
	Name() string
}

type ExplicitEuler struct{}

func (ExplicitEuler) Name() string { return "ExplicitEuler" }

func (ExplicitEuler) Update(ctx context.Context, sys System, t, dt float64) (err error) {
	var (
		u, r []float64
	)
	sys.SetTime(t)
	u = sys.SolutionColumn()
	if r, err = sys.ResidualColumn(ctx); err != nil {
		return
	}
	floats.AddScaled(u, dt, r)
	sys.SetSolutionColumn(u)
	return
}

// SspRungeKutta holds the strong stability preserving schemes of order 1 to 3.
type SspRungeKutta struct {
	Order int
	euler ExplicitEuler
}

func NewSspRungeKutta(order int) (rk *SspRungeKutta, err error) {
	if order < 1 || order > 3 {
		return nil, fmt.Errorf("only 1st, 2nd and 3rd order SSP Runge-Kutta are implemented, got %d", order)
	}
	return &SspRungeKutta{Order: order}, nil
}

func (rk *SspRungeKutta) Name() string { return fmt.Sprintf("SspRungeKutta%d", rk.Order) }

func (rk *SspRungeKutta) Update(ctx context.Context, sys System, t, dt float64) error {
	switch rk.Order {
	case 1:
		return rk.euler.Update(ctx, sys, t, dt)
	case 2:
		return rk.rk2(ctx, sys, t, dt)
	case 3:
		return rk.rk3(ctx, sys, t, dt)
	}
	return fmt.Errorf("invalid SSP Runge-Kutta order %d", rk.Order)
}

func (rk *SspRungeKutta) rk2(ctx context.Context, sys System, t, dt float64) (err error) {
	uCurr := sys.SolutionColumn()
	if err = rk.euler.Update(ctx, sys, t, dt); err != nil {
		return
	}
	if err = rk.euler.Update(ctx, sys, t+dt, dt); err != nil {
		return
	}
	uNext := sys.SolutionColumn()
	floats.Add(uNext, uCurr)
	floats.Scale(0.5, uNext)
	sys.SetSolutionColumn(uNext)
	return
}

func (rk *SspRungeKutta) rk3(ctx context.Context, sys System, t, dt float64) (err error) {
	uCurr := sys.SolutionColumn()
	if err = rk.euler.Update(ctx, sys, t, dt); err != nil {
		return
	}
	if err = rk.euler.Update(ctx, sys, t+dt, dt); err != nil {
		return
	}
	uNext := sys.SolutionColumn()
	floats.AddScaled(uNext, 3, uCurr)
	floats.Scale(0.25, uNext)
	sys.SetSolutionColumn(uNext)
	if err = rk.euler.Update(ctx, sys, t+dt/2, dt); err != nil {
		return
	}
	uNext = sys.SolutionColumn()
	floats.AddScaledTo(uNext, uCurr, 2, uNext)
	floats.Scale(1./3, uNext)
	sys.SetSolutionColumn(uNext)
	return
}

// Low storage five stage fourth order coefficients of Carpenter and Kennedy.
var (
	RK4a = [5]float64{
		0.0,
		-567301805773.0 / 1357537059087.0,
		-2404267990393.0 / 2016746695238.0,
		-3550918686646.0 / 2091501179385.0,
		-1275806237668.0 / 842570457699.0,
	}
	RK4b = [5]float64{
		1432997174477.0 / 9575080441755.0,
		5161836677717.0 / 13612068292357.0,
		1720146321549.0 / 2090206949498.0,
		3134564353537.0 / 4481467310338.0,
		2277821191437.0 / 14882151754819.0,
	}
	RK4c = [5]float64{
		0.0,
		1432997174477.0 / 9575080441755.0,
		2526269341429.0 / 6820363962896.0,
		2006345519317.0 / 3224310063776.0,
		2802321613138.0 / 2924317926251.0,
	}
)

type LowStorageRK4 struct{}

func (LowStorageRK4) Name() string { return "LowStorageRK4" }

func (LowStorageRK4) Update(ctx context.Context, sys System, t, dt float64) (err error) {
	var (
		U     = sys.SolutionColumn()
		resid = make([]float64, len(U))
		rhs   []float64
	)
	for INTRK := 0; INTRK < 5; INTRK++ {
		sys.SetTime(t + dt*RK4c[INTRK])
		if rhs, err = sys.ResidualColumn(ctx); err != nil {
			return
		}
		// resid = rk4a(INTRK) * resid + dt * rhsu;
		// u += rk4b(INTRK) * resid;
		floats.Scale(RK4a[INTRK], resid)
		floats.AddScaled(resid, dt, rhs)
		floats.AddScaled(U, RK4b[INTRK], resid)
		sys.SetSolutionColumn(U)
		U = sys.SolutionColumn()
	}
	return
}

// NewScheme selects a scheme by name: "euler", "ssp1", "ssp2", "ssp3" or "rk4".
func NewScheme(name string) (Scheme, error) {
	switch name {
	case "euler", "ExplicitEuler":
		return ExplicitEuler{}, nil
	case "ssp1", "SspRungeKutta1":
		return NewSspRungeKutta(1)
	case "ssp2", "SspRungeKutta2":
		return NewSspRungeKutta(2)
	case "ssp3", "SspRungeKutta3", "":
		return NewSspRungeKutta(3)
	case "rk4", "LowStorageRK4":
		return LowStorageRK4{}, nil
	}
	return nil, fmt.Errorf("unknown time scheme %q", name)
}

// Observer is called after every step, a non nil error stops the solve.
type Observer func(step int, t float64) error

// Solve advances sys from tStart to tStop with uniform steps no larger than dt.
func Solve(ctx context.Context, sys System, scheme Scheme, tStart, tStop, dt float64,
	observer Observer) (steps int, err error) {
	if !(dt > 0) || tStop < tStart {
		return 0, fmt.Errorf("invalid time span [%v, %v] with dt %v", tStart, tStop, dt)
	}
	Ns := math.Ceil((tStop - tStart) / dt)
	dt = (tStop - tStart) / Ns
	steps = int(Ns)
	for step := 0; step < steps; step++ {
		if err = ctx.Err(); err != nil {
			return step, err
		}
		t := tStart + float64(step)*dt
		if err = scheme.Update(ctx, sys, t, dt); err != nil {
			return step, fmt.Errorf("step %d at t = %v: %w", step, t, err)
		}
		if observer != nil {
			if err = observer(step+1, t+dt); err != nil {
				return step + 1, err
			}
		}
	}
	sys.SetTime(tStop)
	return
}
