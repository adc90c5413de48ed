package spatial

import (
	"context"
	"math"
	"testing"

	"github.com/minicfd/gocfd1d/DG1D"
	"github.com/minicfd/gocfd1d/limiter"
	"github.com/minicfd/gocfd1d/mesh"
	"github.com/minicfd/gocfd1d/polynomial"
	"github.com/minicfd/gocfd1d/riemann"
	"github.com/minicfd/gocfd1d/riemann/diffusive"
	"github.com/minicfd/gocfd1d/riemann/euler"
	"github.com/minicfd/gocfd1d/temporal"
	"github.com/minicfd/gocfd1d/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"gonum.org/v1/gonum/mat"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func sine(x float64) []float64 { return []float64{math.Sin(2 * math.Pi * x)} }

func ring(t *testing.T, n int) *mesh.Part {
	part, err := mesh.NewUniform(0, 1, n, true)
	require.NoError(t, err)
	return part
}

func TestBoundaryValidation(t *testing.T) {
	open, err := mesh.NewUniform(0, 1, 4, false)
	require.NoError(t, err)
	var (
		scalar  = riemann.LinearScalar{A: 1}
		given   = func(x, t float64) []float64 { return []float64{0} }
		upwind  = Boundary{Kind: types.BC_Upwind, Given: given}
		outflow = Boundary{Kind: types.BC_Extrapolation}
	)
	{
		_, err = NewDG(open, 1, scalar)
		assert.Error(t, err)
		_, err = NewDG(open, 1, scalar, WithBoundary(mesh.LeftBoundary, upwind))
		assert.Error(t, err)
		_, err = NewDG(open, 1, scalar,
			WithBoundary(mesh.LeftBoundary, upwind), WithBoundary(mesh.RightBoundary, outflow))
		assert.NoError(t, err)
	}
	{
		_, err = NewDG(open, 1, scalar,
			WithBoundary(mesh.LeftBoundary, Boundary{Kind: types.BC_Upwind}),
			WithBoundary(mesh.RightBoundary, outflow))
		assert.Error(t, err)
		_, err = NewDG(open, 1, scalar,
			WithBoundary(mesh.LeftBoundary, Boundary{Kind: types.BC_Wall}),
			WithBoundary(mesh.RightBoundary, outflow))
		assert.Error(t, err)
		_, err = NewDG(open, 1, scalar,
			WithBoundary(mesh.LeftBoundary, Boundary{Kind: types.BC_Periodic}),
			WithBoundary(mesh.RightBoundary, outflow))
		assert.Error(t, err)
		_, err = NewDG(open, 1, scalar, WithBoundary(mesh.LeftBoundary, upwind),
			WithBoundary(mesh.RightBoundary, outflow), WithBoundary("top", outflow))
		assert.Error(t, err)
	}
	{
		_, err = NewDG(ring(t, 4), 1, scalar, WithBoundary(mesh.LeftBoundary, upwind))
		assert.Error(t, err)
		_, err = NewFR(ring(t, 4), 0, scalar, 0)
		assert.Error(t, err)
		_, err = NewDG(ring(t, 4), -1, scalar)
		assert.Error(t, err)
	}
}

func TestColumn(t *testing.T) {
	dg, err := NewDG(ring(t, 5), 2, riemann.LinearScalar{A: 1})
	require.NoError(t, err)
	dg.Approximate(sine)
	col := dg.SolutionColumn()
	assert.Equal(t, 5*3, len(col))
	// cell 2, component 0, mode 1
	assert.Equal(t, dg.Expansions()[2].Coeff().At(0, 1), col[2*3+1])
	col[2*3+1] = 7
	dg.SetSolutionColumn(col)
	assert.Equal(t, 7., dg.Expansions()[2].Coeff().At(0, 1))
	assert.Panics(t, func() { dg.SetSolutionColumn(col[1:]) })
	u, err := dg.Value(0.9)
	require.NoError(t, err)
	assert.Equal(t, dg.Expansions()[4].Value(0.9), u)
	_, err = dg.Value(2)
	assert.Error(t, err)
}

func TestNaNResidual(t *testing.T) {
	dg, err := NewDG(ring(t, 8), 1, riemann.LinearScalar{A: 1}, WithParallelDegree(2))
	require.NoError(t, err)
	dg.Approximate(sine)
	_, err = dg.ResidualColumn(context.Background())
	require.NoError(t, err)
	col := dg.SolutionColumn()
	col[5*2] = math.NaN()
	dg.SetSolutionColumn(col)
	_, err = dg.ResidualColumn(context.Background())
	require.Error(t, err)
	// upwind with A > 0 spoils cells 5 and 6, both in the second partition
	assert.Contains(t, err.Error(), "cell 5, partition 1 of cells [4, 8)")
}

func TestFreeStream(t *testing.T) {
	var (
		gas   = euler.NewGas(1.4)
		state = gas.PrimitiveToConservative(euler.Primitive{Rho: 1.2, U: 0.3, P: 2})
		rs    = euler.New(euler.NewHLLC(gas))
	)
	for _, build := range []func() (*FiniteElement, error){
		func() (*FiniteElement, error) {
			dg, err := NewDG(ring(t, 6), 3, rs, WithParallelDegree(3))
			if err != nil {
				return nil, err
			}
			return dg.FiniteElement, nil
		},
		func() (*FiniteElement, error) {
			fr, err := NewFR(ring(t, 6), 3, rs, DG1D.HuynhLumpingLobatto(3), WithParallelDegree(3))
			if err != nil {
				return nil, err
			}
			return fr.FiniteElement, nil
		},
	} {
		fe, err := build()
		require.NoError(t, err)
		fe.Approximate(func(float64) []float64 { return state })
		R, err := fe.ResidualColumn(context.Background())
		require.NoError(t, err)
		for _, r := range R {
			assert.InDelta(t, 0., r, 1.e-12)
		}
	}
}

// advectionError integrates u_t + u_x = 0 to t = 0.1 and returns the mean error.
func advectionError(t *testing.T, fe *FiniteElement) (e float64) {
	fe.Approximate(sine)
	scheme, err := temporal.NewSspRungeKutta(3)
	require.NoError(t, err)
	_, err = temporal.Solve(context.Background(), fe, scheme, 0, 0.1, fe.GetTimeStep(1, 0.1), nil)
	require.NoError(t, err)
	q := DG1D.GaussLegendre(5)
	for _, c := range fe.Part.Cells {
		e += c.Line.Integrate(q, func(x float64) float64 {
			return math.Abs(fe.exps[c.ID].Value(x)[0] - sine(x - 0.1)[0])
		})
	}
	return
}

func TestAdvectionConvergence(t *testing.T) {
	rs := riemann.LinearScalar{A: 1}
	{
		var errs []float64
		for _, n := range []int{10, 20} {
			dg, err := NewDG(ring(t, n), 2, rs, WithParallelDegree(4))
			require.NoError(t, err)
			errs = append(errs, advectionError(t, dg.FiniteElement))
		}
		assert.Greater(t, math.Log2(errs[0]/errs[1]), 2.5)
	}
	{
		var errs []float64
		for _, n := range []int{10, 20} {
			fr, err := NewFR(ring(t, n), 2, rs, DG1D.HuynhLumpingLobatto(2))
			require.NoError(t, err)
			errs = append(errs, advectionError(t, fr.FiniteElement))
		}
		assert.Greater(t, math.Log2(errs[0]/errs[1]), 2.5)
	}
}

func TestFRRecoversDG(t *testing.T) {
	var (
		rs   = riemann.LinearScalar{A: 1.5}
		part = ring(t, 4)
		f    = func(x float64) []float64 { return []float64{1 + x - 3*x*x} }
	)
	dg, err := NewDG(part, 2, rs)
	require.NoError(t, err)
	fr, err := NewFR(part, 2, rs, DG1D.DiscontinuousGalerkin(2))
	require.NoError(t, err)
	dg.Approximate(f)
	fr.Approximate(f)
	rDG, err := dg.ResidualColumn(context.Background())
	require.NoError(t, err)
	rFR, err := fr.ResidualColumn(context.Background())
	require.NoError(t, err)
	for k, c := range part.Cells {
		p := polynomial.NewProjection(1, 2, c.Line)
		p.SetCoeff(mat.NewDense(1, 3, rDG[3*k:3*k+3]))
		ip := fr.Expansions()[k].(*polynomial.Interpolation)
		for j, x := range ip.Nodes() {
			assert.InDelta(t, p.Value(x)[0], rFR[3*k+j], 1.e-10)
		}
	}
}

func TestConservation(t *testing.T) {
	part := ring(t, 8)
	dg, err := NewDG(part, 2, riemann.NewBurgers(1), WithParallelDegree(2))
	require.NoError(t, err)
	dg.Approximate(func(x float64) []float64 { return []float64{0.5 + math.Sin(2*math.Pi*x)} })
	R, err := dg.ResidualColumn(context.Background())
	require.NoError(t, err)
	var total float64
	for k, c := range part.Cells {
		total += c.Line.Length() * R[3*k]
	}
	assert.InDelta(t, 0., total, 1.e-12)
}

func TestHeatEquation(t *testing.T) {
	var (
		nu = 0.1
		tf = 0.05
	)
	dg, err := NewDG(ring(t, 20), 2, riemann.LinearScalar{A: 0},
		WithDiffusion(diffusive.Isotropic{Nu: nu}))
	require.NoError(t, err)
	dg.Approximate(sine)
	_, err = temporal.Solve(context.Background(), dg, temporal.LowStorageRK4{}, 0, tf, dg.GetTimeStep(1, 0.05), nil)
	require.NoError(t, err)
	u, err := dg.Value(0.25)
	require.NoError(t, err)
	assert.InDelta(t, math.Exp(-4*math.Pi*math.Pi*nu*tf), u[0], 5.e-3)
}

func TestTimeStep(t *testing.T) {
	part, err := mesh.NewUniform(0, 1, 10, true)
	require.NoError(t, err)
	{
		dg, err := NewDG(part, 1, riemann.LinearScalar{A: 2})
		require.NoError(t, err)
		assert.InDelta(t, 0.5*0.1/(3*2), dg.GetTimeStep(1, 0.5), 1.e-15)
		assert.Equal(t, 1.e-4, dg.GetTimeStep(1.e-4, 0.5))
	}
	{
		dg, err := NewDG(part, 1, riemann.LinearScalar{A: 2}, WithDiffusion(diffusive.Isotropic{Nu: 1}))
		require.NoError(t, err)
		assert.InDelta(t, 0.5*0.01/9, dg.GetTimeStep(1, 0.5), 1.e-15)
	}
}

func TestViscosity(t *testing.T) {
	part := ring(t, 20)
	step := func(x float64) []float64 {
		if x < 0.52 {
			return []float64{1}
		}
		return []float64{0}
	}
	{
		dg, err := NewDG(part, 3, riemann.LinearScalar{A: 1}, WithViscosity(Constant{Nu: 0.01}))
		require.NoError(t, err)
		dg.Approximate(sine)
		for _, nu := range dg.Viscosities() {
			assert.Equal(t, 0.01, nu)
		}
	}
	{
		dg, err := NewDG(part, 3, riemann.LinearScalar{A: 1}, WithViscosity(NewPersson()))
		require.NoError(t, err)
		dg.Approximate(func(x float64) []float64 { return []float64{2 + math.Sin(2*math.Pi*x)} })
		for _, nu := range dg.Viscosities() {
			assert.Equal(t, 0., nu)
		}
		dg.Approximate(step)
		nu := dg.Viscosities()
		assert.Greater(t, nu[10], 0.)
		assert.LessOrEqual(t, nu[10], part.Cells[10].Line.Length()/3)
		assert.Equal(t, 0., nu[3])
	}
	{
		fr, err := NewFR(part, 3, riemann.LinearScalar{A: 1}, 0,
			WithViscosity(Persson{Kappa: 2, NuMax: 0.001, Detector: limiter.IsNotSmooth{}}))
		require.NoError(t, err)
		fr.Approximate(step)
		nu := fr.Viscosities()
		assert.Equal(t, 0.001, nu[10])
		assert.Equal(t, 0., nu[3])
		R, err := fr.ResidualColumn(context.Background())
		require.NoError(t, err)
		assert.Equal(t, len(fr.SolutionColumn()), len(R))
	}
}

func TestSodShockTube(t *testing.T) {
	var (
		gas         = euler.NewGas(1.4)
		left, right = gas.PrimitiveToConservative(euler.Primitive{Rho: 1, P: 1}),
			gas.PrimitiveToConservative(euler.Primitive{Rho: 0.125, P: 0.1})
		rs = euler.New(euler.NewHLLC(gas))
	)
	part, err := mesh.NewUniform(0, 1, 40, false)
	require.NoError(t, err)
	for _, lim := range []limiter.Limiter{limiter.NewEigen(rs), limiter.NewLazy()} {
		dg, err := NewDG(part, 2, rs,
			WithBoundary(mesh.LeftBoundary, Boundary{Kind: types.BC_Wall}),
			WithBoundary(mesh.RightBoundary, Boundary{Kind: types.BC_Wall}),
			WithLimiter(lim, limiter.IsNotSmooth{}),
			WithParallelDegree(4))
		require.NoError(t, err)
		dg.Approximate(func(x float64) []float64 {
			if x < 0.5 {
				return left
			}
			return right
		})
		massBefore := totalMass(dg.FiniteElement)
		_, err = temporal.Solve(context.Background(), dg, temporal.LowStorageRK4{}, 0, 0.1,
			dg.GetTimeStep(1.e-3, 0.1), nil)
		require.NoError(t, err)
		assert.InDelta(t, massBefore, totalMass(dg.FiniteElement), 1.e-10)
		for _, c := range part.Cells {
			rho := dg.Expansions()[c.ID].Average()[0]
			assert.Greater(t, rho, 0.1)
			assert.Less(t, rho, 1.05)
		}
	}
}

func totalMass(fe *FiniteElement) (m float64) {
	for _, c := range fe.Part.Cells {
		m += c.Line.Length() * fe.Expansions()[c.ID].Average()[0]
	}
	return
}
