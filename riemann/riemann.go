package riemann

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Convective is a flux function F(U) with an upwind (numerical) flux between two states.
type Convective interface {
	Components() int
	Flux(u []float64) []float64
	FluxUpwind(uL, uR []float64) []float64
	MaxSpeed(u []float64) float64
}

// Characteristic gives the left (rows) and right (columns) eigenvectors of dF/dU.
type Characteristic interface {
	EigenMatrices(u []float64) (L, R *mat.Dense)
}

type LinearScalar struct {
	A float64
}

func (ls LinearScalar) Components() int { return 1 }

func (ls LinearScalar) Flux(u []float64) []float64 {
	return []float64{ls.A * u[0]}
}

func (ls LinearScalar) FluxUpwind(uL, uR []float64) []float64 {
	if ls.A > 0 {
		return ls.Flux(uL)
	}
	return ls.Flux(uR)
}

func (ls LinearScalar) MaxSpeed(u []float64) float64 { return math.Abs(ls.A) }

func (ls LinearScalar) EigenMatrices(u []float64) (L, R *mat.Dense) {
	return mat.NewDense(1, 1, []float64{1}), mat.NewDense(1, 1, []float64{1})
}

// Burgers is f(u) = K u^2 / 2 with the exact Godunov flux.
type Burgers struct {
	K float64
}

func NewBurgers(k float64) (b Burgers) {
	if !(k > 0) {
		panic(fmt.Errorf("burgers coefficient must be positive, got %v", k))
	}
	return Burgers{K: k}
}

func (b Burgers) Components() int { return 1 }

func (b Burgers) flux(u float64) float64 { return 0.5 * b.K * u * u }

func (b Burgers) Flux(u []float64) []float64 {
	return []float64{b.flux(u[0])}
}

func (b Burgers) FluxUpwind(uL, uR []float64) []float64 {
	var (
		ul, ur = uL[0], uR[0]
		f      float64
	)
	switch {
	case ul > ur: // shock
		if b.K*(ul+ur)/2 > 0 {
			f = b.flux(ul)
		} else {
			f = b.flux(ur)
		}
	case b.K*ul >= 0:
		f = b.flux(ul)
	case b.K*ur <= 0:
		f = b.flux(ur)
	default: // sonic rarefaction
		f = 0
	}
	return []float64{f}
}

func (b Burgers) MaxSpeed(u []float64) float64 { return math.Abs(b.K * u[0]) }

func (b Burgers) EigenMatrices(u []float64) (L, R *mat.Dense) {
	return mat.NewDense(1, 1, []float64{1}), mat.NewDense(1, 1, []float64{1})
}

// LinearSystem is F = A U for a constant, real diagonalizable A.
type LinearSystem struct {
	A      *mat.Dense
	Lambda []float64
	L, R   *mat.Dense
}

func NewLinearSystem(A *mat.Dense) (ls *LinearSystem, err error) {
	var (
		n, nc = A.Dims()
		eig   mat.Eigen
	)
	if n != nc {
		return nil, fmt.Errorf("linear system needs a square matrix, have %dx%d", n, nc)
	}
	if ok := eig.Factorize(A, mat.EigenRight); !ok {
		return nil, fmt.Errorf("eigen decomposition failed")
	}
	ls = &LinearSystem{
		A:      mat.DenseCopyOf(A),
		Lambda: make([]float64, n),
		R:      mat.NewDense(n, n, nil),
		L:      mat.NewDense(n, n, nil),
	}
	values := eig.Values(nil)
	for i, v := range values {
		if math.Abs(imag(v)) > 1.e-12*(1+math.Abs(real(v))) {
			return nil, fmt.Errorf("linear system is not hyperbolic, eigenvalue %v", v)
		}
		ls.Lambda[i] = real(v)
	}
	var vecs mat.CDense
	eig.VectorsTo(&vecs)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			ls.R.Set(i, j, real(vecs.At(i, j)))
		}
	}
	if err = ls.L.Inverse(ls.R); err != nil {
		return nil, fmt.Errorf("eigenvectors are not independent: %w", err)
	}
	return
}

func (ls *LinearSystem) Components() int {
	n, _ := ls.A.Dims()
	return n
}

func (ls *LinearSystem) Flux(u []float64) []float64 {
	var f mat.VecDense
	f.MulVec(ls.A, mat.NewVecDense(len(u), u))
	return f.RawVector().Data
}

func (ls *LinearSystem) FluxUpwind(uL, uR []float64) (f []float64) {
	n := len(uL)
	f = make([]float64, n)
	for k, lambda := range ls.Lambda {
		u := uR
		if lambda > 0 {
			u = uL
		}
		var w float64
		for j := 0; j < n; j++ {
			w += ls.L.At(k, j) * u[j]
		}
		w *= lambda
		for i := 0; i < n; i++ {
			f[i] += ls.R.At(i, k) * w
		}
	}
	return
}

func (ls *LinearSystem) MaxSpeed(u []float64) (s float64) {
	for _, l := range ls.Lambda {
		s = math.Max(s, math.Abs(l))
	}
	return
}

func (ls *LinearSystem) EigenMatrices(u []float64) (L, R *mat.Dense) {
	return ls.L, ls.R
}
