package spatial

import (
	"context"
	"fmt"
	"math"

	"github.com/minicfd/gocfd1d/DG1D"
	"github.com/minicfd/gocfd1d/limiter"
	"github.com/minicfd/gocfd1d/mesh"
	"github.com/minicfd/gocfd1d/polynomial"
	"github.com/minicfd/gocfd1d/riemann"
	"github.com/minicfd/gocfd1d/riemann/diffusive"
	"github.com/minicfd/gocfd1d/riemann/euler"
	"github.com/minicfd/gocfd1d/types"
	"github.com/minicfd/gocfd1d/utils"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

// Boundary is the condition applied on a named boundary face. Given returns
// the outside state at position x and time t.
type Boundary struct {
	Kind  types.BCFLAG
	Given func(x, t float64) []float64
}

type Option func(fe *FiniteElement)

func WithDiffusion(d diffusive.Diffusive) Option {
	return func(fe *FiniteElement) { fe.Diffusion = d }
}

func WithDDG(ddg diffusive.DDG) Option {
	return func(fe *FiniteElement) { fe.DDG = ddg }
}

func WithBoundary(name string, bc Boundary) Option {
	return func(fe *FiniteElement) { fe.BCs[name] = bc }
}

func WithParallelDegree(n int) Option {
	return func(fe *FiniteElement) { fe.parallelDegree = n }
}

func WithLogger(l *zap.Logger) Option {
	return func(fe *FiniteElement) { fe.logger = utils.LoggerOrNop(l) }
}

// WithLimiter reconstructs the cells flagged by det, all cells when det is
// nil, each time the solution is set.
func WithLimiter(lim limiter.Limiter, det limiter.Detector) Option {
	return func(fe *FiniteElement) { fe.lim, fe.detector = lim, det }
}

// WithViscosity adds artificial viscosity, recomputed each time the solution is set.
func WithViscosity(v Viscosity) Option {
	return func(fe *FiniteElement) { fe.viscosity = v }
}

type cellScheme interface {
	newExpansion(line DG1D.Line) polynomial.Expansion
	// cellResidual is dU/dt of one cell in the expansion's own basis
	cellResidual(c *mesh.Cell, fluxL, fluxR []float64) *mat.Dense
}

// FiniteElement is the discontinuous piecewise polynomial discretization of
// dU/dt + dF/dx = 0 on a Part, shared by the DG and FR schemes.
type FiniteElement struct {
	Part      *mesh.Part
	Degree, K int
	Riemann   riemann.Convective
	Diffusion diffusive.Diffusive
	DDG       diffusive.DDG
	BCs       map[string]Boundary

	exps           []polynomial.Expansion
	time           float64
	nu             []float64 // artificial viscosity per cell
	faceFlux       [][]float64
	parallelDegree int
	pm             *utils.PartitionMap
	lim            limiter.Limiter
	detector       limiter.Detector
	viscosity      Viscosity
	logger         *zap.Logger
	scheme         cellScheme
}

func newFiniteElement(part *mesh.Part, degree int, rs riemann.Convective, opts []Option) (fe *FiniteElement, err error) {
	if part == nil || rs == nil {
		return nil, fmt.Errorf("a part and a riemann solver are required")
	}
	if degree < 0 {
		return nil, fmt.Errorf("invalid degree %d", degree)
	}
	fe = &FiniteElement{
		Part:           part,
		Degree:         degree,
		K:              rs.Components(),
		Riemann:        rs,
		DDG:            diffusive.NewDDG(),
		BCs:            make(map[string]Boundary),
		parallelDegree: 1,
		logger:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(fe)
	}
	if err = fe.checkBoundaries(); err != nil {
		return nil, err
	}
	fe.pm = utils.NewPartitionMap(fe.parallelDegree, part.NumCells())
	for bn := 0; bn < fe.pm.ParallelDegree; bn++ {
		fe.logger.Debug("partition", zap.Int("bucket", bn),
			zap.Int("cells", fe.pm.GetBucketDimension(bn)))
	}
	return
}

func (fe *FiniteElement) checkBoundaries() error {
	if fe.Part.Periodic {
		if len(fe.BCs) != 0 {
			return fmt.Errorf("a periodic part takes no boundary conditions")
		}
		return nil
	}
	_, isEuler := fe.Riemann.(*euler.Euler)
	for _, name := range []string{mesh.LeftBoundary, mesh.RightBoundary} {
		bc, ok := fe.BCs[name]
		if !ok {
			return fmt.Errorf("no boundary condition on %q", name)
		}
		switch bc.Kind {
		case types.BC_None, types.BC_Periodic:
			return fmt.Errorf("boundary %q: %s is not valid on an open part", name, bc.Kind)
		case types.BC_Wall, types.BC_SubsonicInlet, types.BC_SubsonicOutlet:
			if !isEuler {
				return fmt.Errorf("boundary %q: %s needs the euler equations", name, bc.Kind)
			}
		}
		if bc.Kind.NeedsGivenState() && bc.Given == nil {
			return fmt.Errorf("boundary %q: %s needs a given state", name, bc.Kind)
		}
	}
	for name := range fe.BCs {
		if _, ok := fe.Part.Boundaries[name]; !ok {
			return fmt.Errorf("unknown boundary %q", name)
		}
	}
	return nil
}

// init builds the expansions once the concrete scheme is known.
func (fe *FiniteElement) init(scheme cellScheme) {
	fe.scheme = scheme
	fe.exps = make([]polynomial.Expansion, fe.Part.NumCells())
	for k, c := range fe.Part.Cells {
		fe.exps[k] = scheme.newExpansion(c.Line)
	}
	fe.nu = make([]float64, fe.Part.NumCells())
	fe.faceFlux = make([][]float64, len(fe.Part.Faces))
}

func (fe *FiniteElement) Expansions() []polynomial.Expansion { return fe.exps }
func (fe *FiniteElement) Time() float64                      { return fe.time }
func (fe *FiniteElement) SetTime(t float64)                  { fe.time = t }
func (fe *FiniteElement) terms() int                         { return fe.Degree + 1 }

// Viscosities returns the artificial viscosity of every cell.
func (fe *FiniteElement) Viscosities() []float64 {
	return append([]float64(nil), fe.nu...)
}

// Approximate sets every cell to the approximation of f.
func (fe *FiniteElement) Approximate(f func(x float64) []float64) {
	for _, e := range fe.exps {
		e.Approximate(f)
	}
	fe.updateViscosity()
}

func (fe *FiniteElement) Value(x float64) ([]float64, error) {
	c, err := fe.Part.LocateCell(x)
	if err != nil {
		return nil, err
	}
	return fe.exps[c.ID].Value(x), nil
}

// SolutionColumn holds the K x N coefficients of each cell row by row, the
// value of component i, term j, cell k is at k*K*N + i*N + j.
func (fe *FiniteElement) SolutionColumn() (col []float64) {
	kn := fe.K * fe.terms()
	col = make([]float64, len(fe.exps)*kn)
	for k, e := range fe.exps {
		copy(col[k*kn:(k+1)*kn], e.Coeff().RawMatrix().Data)
	}
	return
}

func (fe *FiniteElement) SetSolutionColumn(col []float64) {
	kn := fe.K * fe.terms()
	if len(col) != len(fe.exps)*kn {
		panic(fmt.Errorf("column length %d does not match %d cells of %d", len(col), len(fe.exps), kn))
	}
	for k, e := range fe.exps {
		e.SetCoeff(mat.NewDense(fe.K, fe.terms(), col[k*kn:(k+1)*kn]))
	}
	if fe.lim != nil {
		n := limiter.Reconstruct(fe.Part, fe.exps, fe.lim, fe.detector)
		fe.logger.Debug("limited", zap.Int("cells", n), zap.Float64("time", fe.time))
	}
	fe.updateViscosity()
}

func (fe *FiniteElement) updateViscosity() {
	if fe.viscosity == nil {
		return
	}
	fe.nu = fe.viscosity.Viscosities(fe)
}

func (fe *FiniteElement) ResidualColumn(ctx context.Context) (col []float64, err error) {
	var (
		kn    = fe.K * fe.terms()
		cells = fe.Part.Cells
	)
	col = make([]float64, len(cells)*kn)
	// each cell owns its right face, and its left face on a boundary
	if err = fe.pm.Range(ctx, func(ctx context.Context, bn, kMin, kMax int) error {
		for k := kMin; k < kMax; k++ {
			c := cells[k]
			if c.Left.IsBoundary() {
				fe.faceFlux[c.Left.ID] = fe.boundaryFlux(c.Left)
			}
			fe.faceFlux[c.Right.ID] = fe.commonFlux(c.Right)
		}
		return ctx.Err()
	}); err != nil {
		return nil, err
	}
	if err = fe.pm.Range(ctx, func(ctx context.Context, bn, kMin, kMax int) error {
		for k := kMin; k < kMax; k++ {
			c := cells[k]
			R := fe.scheme.cellResidual(c, fe.faceFlux[c.Left.ID], fe.faceFlux[c.Right.ID])
			copy(col[k*kn:(k+1)*kn], R.RawMatrix().Data)
		}
		return ctx.Err()
	}); err != nil {
		return nil, err
	}
	if utils.IsNan(col) {
		return nil, fe.nanError(col, kn)
	}
	return
}

// nanError names the first cell with a NaN residual and the partition
// that computed it.
func (fe *FiniteElement) nanError(col []float64, kn int) error {
	for k := 0; k < len(fe.Part.Cells); k++ {
		if !utils.IsNan(col[k*kn : (k+1)*kn]) {
			continue
		}
		bn, kMin, kMax := fe.pm.GetBucket(k)
		return fmt.Errorf("residual is NaN at time %v in cell %d, partition %d of cells [%d, %d)",
			fe.time, k, bn, kMin, kMax)
	}
	return fmt.Errorf("residual is NaN at time %v", fe.time)
}

func (fe *FiniteElement) viscous() bool {
	return fe.Diffusion != nil || fe.viscosity != nil
}

// viscousFlux is the physical diffusive flux plus -nu U_x.
func (fe *FiniteElement) viscousFlux(u, ux []float64, nu float64) (f []float64) {
	f = make([]float64, len(u))
	if fe.Diffusion != nil {
		copy(f, fe.Diffusion.Flux(u, ux))
	}
	for i := range f {
		f[i] -= nu * ux[i]
	}
	return
}

// pointFlux is the total flux of expansion e at x.
func (fe *FiniteElement) pointFlux(e polynomial.Expansion, x, nu float64) (f []float64) {
	u := e.Value(x)
	f = fe.Riemann.Flux(u)
	if fe.viscous() {
		addTo(f, fe.viscousFlux(u, e.Gradient(x), nu))
	}
	return
}

func (fe *FiniteElement) commonFlux(f *mesh.Face) (flux []float64) {
	if f.IsBoundary() {
		return fe.boundaryFlux(f)
	}
	var (
		holder, sharer = fe.exps[f.Holder.ID], fe.exps[f.Sharer.ID]
		xL, xR         = f.Holder.Line.XRight, f.Sharer.Line.XLeft
		uL, uR         = holder.Value(xL), sharer.Value(xR)
	)
	flux = fe.Riemann.FluxUpwind(uL, uR)
	if !fe.viscous() {
		return
	}
	var (
		DL, DR = holder.Derivatives(xL), sharer.Derivatives(xR)
		ux     = fe.DDG.CommonGradient(fe.Part.Distance(f), uL, uR,
			derivative(DL, 1), derivative(DR, 1), derivative(DL, 2), derivative(DR, 2))
		u  = make([]float64, len(uL))
		nu = 0.5 * (fe.nu[f.Holder.ID] + fe.nu[f.Sharer.ID])
	)
	for i := range u {
		u[i] = 0.5 * (uL[i] + uR[i])
	}
	addTo(flux, fe.viscousFlux(u, ux, nu))
	return
}

func (fe *FiniteElement) boundaryFlux(f *mesh.Face) (flux []float64) {
	var (
		c      = f.Inner()
		e      = fe.exps[c.ID]
		bc     = fe.BCs[f.Boundary]
		normal = f.Normal()
		x      = c.Line.XRight
		given  []float64
	)
	if normal < 0 {
		x = c.Line.XLeft
	}
	inner := e.Value(x)
	if bc.Given != nil {
		given = bc.Given(f.X, fe.time)
	}
	eu, isEuler := fe.Riemann.(*euler.Euler)
	switch bc.Kind {
	case types.BC_Upwind, types.BC_Smart:
		if isEuler && bc.Kind == types.BC_Smart {
			flux = eu.FluxOnSmartBoundary(inner, given, normal)
		} else if normal > 0 {
			flux = fe.Riemann.FluxUpwind(inner, given)
		} else {
			flux = fe.Riemann.FluxUpwind(given, inner)
		}
	case types.BC_Extrapolation, types.BC_SupersonicOutlet:
		flux = fe.Riemann.Flux(inner)
	case types.BC_SupersonicInlet:
		flux = fe.Riemann.Flux(given)
	case types.BC_Wall:
		flux = eu.FluxOnInviscidWall(inner, normal)
	case types.BC_SubsonicInlet:
		flux = eu.FluxOnSubsonicInlet(inner, given, normal)
	case types.BC_SubsonicOutlet:
		flux = eu.FluxOnSubsonicOutlet(inner, given, normal)
	default:
		panic(fmt.Errorf("boundary %q has no flux for %s", f.Boundary, bc.Kind))
	}
	if fe.viscous() {
		addTo(flux, fe.viscousFlux(inner, e.Gradient(x), fe.nu[c.ID]))
	}
	return
}

// GetTimeStep limits dtGuess by the convective and diffusive stability bounds of every cell.
func (fe *FiniteElement) GetTimeStep(dtGuess, cfl float64) (dt float64) {
	var (
		p2     = float64(2*fe.Degree + 1)
		nuPhys float64
	)
	if fe.Diffusion != nil {
		nuPhys = fe.Diffusion.Viscosity()
	}
	dt = dtGuess
	for _, c := range fe.Part.Cells {
		var (
			e      = fe.exps[c.ID]
			h      = c.Line.Length()
			lambda float64
		)
		for _, xi := range DG1D.GaussLegendre(e.Terms()).X {
			lambda = math.Max(lambda, fe.Riemann.MaxSpeed(e.Value(c.Line.LocalToGlobal(xi))))
		}
		if lambda > 0 {
			dt = math.Min(dt, cfl*h/(p2*lambda))
		}
		if nu := nuPhys + fe.nu[c.ID]; nu > 0 {
			dt = math.Min(dt, cfl*h*h/(p2*p2*nu))
		}
	}
	return
}

// derivative returns column l of a derivative matrix, zero above the degree.
func derivative(D *mat.Dense, l int) []float64 {
	r, c := D.Dims()
	if l >= c {
		return make([]float64, r)
	}
	return mat.Col(nil, l, D)
}

func addTo(a, b []float64) {
	for i := range a {
		a[i] += b[i]
	}
}
