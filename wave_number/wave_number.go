package wave_number

import (
	"context"
	"fmt"
	"math"
	"math/cmplx"
	"sort"

	"github.com/minicfd/gocfd1d/riemann"
	"github.com/minicfd/gocfd1d/spatial"
	"gonum.org/v1/gonum/mat"
)

// Analyzer holds the coupling of one cell of a linear, uniform, periodic
// discretization to itself and its two neighbors:
//
//	dU_j/dt = SPrev U_{j-1} + SCurr U_j + SNext U_{j+1}
type Analyzer struct {
	// A is the advection speed, B the diffusivity
	A, B, H             float64
	N                   int
	SPrev, SCurr, SNext *mat.Dense
}

// NewAnalyzer probes fe with unit vectors around its middle cell. fe must
// discretize u_t + a u_x = b u_xx on a periodic part of at least 3 cells.
func NewAnalyzer(ctx context.Context, fe *spatial.FiniteElement) (an *Analyzer, err error) {
	ls, ok := fe.Riemann.(riemann.LinearScalar)
	if !ok {
		return nil, fmt.Errorf("wavenumber analysis needs linear scalar advection, have %T", fe.Riemann)
	}
	var (
		part  = fe.Part
		nCell = part.NumCells()
	)
	if !part.Periodic || nCell < 3 {
		return nil, fmt.Errorf("wavenumber analysis needs a periodic part of at least 3 cells")
	}
	var (
		n     = fe.K * (fe.Degree + 1)
		iCurr = nCell / 2
		first = iCurr * n
		col   = make([]float64, nCell*n)
	)
	an = &Analyzer{
		A:     ls.A,
		H:     part.Cells[iCurr].Line.Length(),
		N:     n,
		SPrev: mat.NewDense(n, n, nil),
		SCurr: mat.NewDense(n, n, nil),
		SNext: mat.NewDense(n, n, nil),
	}
	probe := func(iCell, j int, S *mat.Dense) error {
		for i := range col {
			col[i] = 0
		}
		col[iCell*n+j] = 1
		fe.SetSolutionColumn(col)
		R, err := fe.ResidualColumn(ctx)
		if err != nil {
			return err
		}
		S.SetCol(j, R[first:first+n])
		return nil
	}
	if fe.Diffusion != nil {
		an.B = fe.Diffusion.Viscosity()
	}
	for j := 0; j < n; j++ {
		if err = probe(iCurr, j, an.SCurr); err != nil {
			return nil, err
		}
		if err = probe(iCurr-1, j, an.SPrev); err != nil {
			return nil, err
		}
		if err = probe(iCurr+1, j, an.SNext); err != nil {
			return nil, err
		}
	}
	return
}

// Matrix returns the real and imaginary parts of
// S(kh) = SCurr + SPrev exp(-i kh) + SNext exp(i kh).
func (an *Analyzer) Matrix(kh float64) (Re, Im *mat.Dense) {
	var (
		c, s = math.Cos(kh), math.Sin(kh)
		n    = an.N
	)
	Re, Im = mat.NewDense(n, n, nil), mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			prev, next := an.SPrev.At(i, j), an.SNext.At(i, j)
			Re.Set(i, j, an.SCurr.At(i, j)+(prev+next)*c)
			Im.Set(i, j, (next-prev)*s)
		}
	}
	return
}

// Eigenvalues of S(kh), from the real block [[Re, -Im], [Im, Re]] whose
// eigenvectors [v; -iv] belong to S and [v; iv] to its conjugate.
func (an *Analyzer) Eigenvalues(kh float64) (values []complex128, err error) {
	var (
		Re, Im = an.Matrix(kh)
		n      = an.N
		eig    mat.Eigen
	)
	if mat.Norm(Im, math.Inf(1)) <= 1.e-14*(1+mat.Norm(Re, math.Inf(1))) {
		if ok := eig.Factorize(Re, mat.EigenNone); !ok {
			return nil, fmt.Errorf("eigen decomposition failed at kh = %v", kh)
		}
		return eig.Values(nil), nil
	}
	M := mat.NewDense(2*n, 2*n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			M.Set(i, j, Re.At(i, j))
			M.Set(i, j+n, -Im.At(i, j))
			M.Set(i+n, j, Im.At(i, j))
			M.Set(i+n, j+n, Re.At(i, j))
		}
	}
	if ok := eig.Factorize(M, mat.EigenRight); !ok {
		return nil, fmt.Errorf("eigen decomposition failed at kh = %v", kh)
	}
	var (
		all  = eig.Values(nil)
		vecs mat.CDense
	)
	eig.VectorsTo(&vecs)
	type candidate struct {
		value complex128
		ratio float64
	}
	cands := make([]candidate, len(all))
	for k, v := range all {
		var mine, other float64
		for i := 0; i < n; i++ {
			x1, x2 := vecs.At(i, k), vecs.At(i+n, k)
			mine += sq(cmplx.Abs(x2 + 1i*x1))
			other += sq(cmplx.Abs(x2 - 1i*x1))
		}
		cands[k] = candidate{value: v, ratio: mine / (mine + other)}
	}
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].ratio < cands[j].ratio })
	for _, c := range cands[:n] {
		values = append(values, c.value)
	}
	return
}

func sq(x float64) float64 { return x * x }

// ModifiedWavenumbers maps every eigenvalue to i h lambda / a, which is kh
// itself for the exact advection operator.
func (an *Analyzer) ModifiedWavenumbers(kh float64) (modes []complex128, err error) {
	var values []complex128
	if values, err = an.Eigenvalues(kh); err != nil {
		return
	}
	for _, v := range values {
		modes = append(modes, 1i*complex(an.H/an.A, 0)*v)
	}
	return
}

// PhysicalMode picks the mode approximating kh: modes are ordered by their
// norm and kh/pi selects the branch, wrapped onto (-n, n].
func PhysicalMode(kh float64, modes []complex128) complex128 {
	var (
		n      = len(modes)
		sorted = append([]complex128(nil), modes...)
	)
	sort.SliceStable(sorted, func(i, j int) bool { return cmplx.Abs(sorted[i]) < cmplx.Abs(sorted[j]) })
	iInterval := int(math.Floor(kh / math.Pi))
	for iInterval > n {
		iInterval -= 2 * n
	}
	for iInterval <= -n {
		iInterval += 2 * n
	}
	var iMode int
	switch {
	case iInterval < 0:
		iMode = -1 - iInterval
	case iInterval == n:
		iMode = iInterval - 1
	default:
		iMode = iInterval
	}
	return sorted[iMode]
}

// Exact is kh - i (kh)^2 / Re with Re = a h / b; b = 0 gives Re = +Inf.
func Exact(kh, reynolds float64) complex128 {
	return complex(kh, -kh*kh/reynolds)
}

// Reynolds is the cell Reynolds number a h / b.
func (an *Analyzer) Reynolds() float64 {
	if an.B == 0 {
		return math.Inf(1)
	}
	return an.A * an.H / an.B
}

// Sample is the spectrum at one kh.
type Sample struct {
	KH       float64
	Modes    []complex128
	Physical complex128
	Exact    complex128
}

// Sweep samples nSample wavenumbers evenly on [khMin, khMax].
func (an *Analyzer) Sweep(khMin, khMax float64, nSample int) (samples []Sample, err error) {
	if nSample < 2 {
		return nil, fmt.Errorf("need at least two samples, have %d", nSample)
	}
	for i := 0; i < nSample; i++ {
		s := Sample{KH: khMin + (khMax-khMin)*float64(i)/float64(nSample-1)}
		if s.Modes, err = an.ModifiedWavenumbers(s.KH); err != nil {
			return
		}
		s.Physical = PhysicalMode(s.KH, s.Modes)
		s.Exact = Exact(s.KH, an.Reynolds())
		samples = append(samples, s)
	}
	return
}
