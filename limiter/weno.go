package limiter

import (
	"fmt"

	"github.com/minicfd/gocfd1d/mesh"
	"github.com/minicfd/gocfd1d/polynomial"
	"github.com/minicfd/gocfd1d/riemann"
	"gonum.org/v1/gonum/mat"
)

// Lazy is a WENO reconstruction with fixed linear weights: W0 for every
// borrowed neighbor polynomial and 1 - n W0 for the cell's own.
type Lazy struct {
	W0, Eps float64
}

func NewLazy() Lazy { return Lazy{W0: 0.001, Eps: 1.e-6} }

func (lz Lazy) Limit(part *mesh.Part, c *mesh.Cell, exps []polynomial.Expansion) *mat.Dense {
	cands := borrow(part, c, exps)
	coeffs := make([]*mat.Dense, len(cands))
	for j, cand := range cands {
		coeffs[j] = cand.Coeff()
	}
	return weightedSum(coeffs, smoothWeights(cands, lz.W0, lz.Eps))
}

// Eigen is Lazy applied to characteristic variables, the eigen matrices are
// taken at the cell average.
type Eigen struct {
	W0, Eps float64
	Riemann riemann.Characteristic
}

func NewEigen(r riemann.Characteristic) Eigen {
	return Eigen{W0: 0.001, Eps: 1.e-6, Riemann: r}
}

func (eg Eigen) Limit(part *mesh.Part, c *mesh.Cell, exps []polynomial.Expansion) *mat.Dense {
	var (
		cands  = borrow(part, c, exps)
		L, R   = eg.Riemann.EigenMatrices(exps[c.ID].Average())
		coeffs = make([]*mat.Dense, len(cands))
	)
	for j, cand := range cands {
		var W mat.Dense
		W.Mul(L, cand.Coeff())
		coeffs[j] = &W
		cand.SetCoeff(&W)
	}
	var C mat.Dense
	C.Mul(R, weightedSum(coeffs, smoothWeights(cands, eg.W0, eg.Eps)))
	return &C
}

// smoothWeights returns, per candidate and component, the normalized
// nonlinear weights. The last candidate is the cell's own.
func smoothWeights(cands []polynomial.Expansion, w0, eps float64) (weights [][]float64) {
	var (
		n   = len(cands) - 1
		K   = cands[0].Components()
		sum = make([]float64, K)
	)
	if lin := 1 - float64(n)*w0; lin <= 0 {
		panic(fmt.Errorf("linear weight %v of %d neighbors leaves nothing for the cell", w0, n))
	}
	weights = make([][]float64, len(cands))
	for j, cand := range cands {
		lin := w0
		if j == n {
			lin = 1 - float64(n)*w0
		}
		beta := polynomial.Smoothness(cand)
		weights[j] = make([]float64, K)
		for i, b := range beta {
			b += eps
			weights[j][i] = lin / (b * b)
			sum[i] += weights[j][i]
		}
	}
	for _, w := range weights {
		for i := range w {
			w[i] /= sum[i]
		}
	}
	return
}

// weightedSum combines K x N coefficients row by row.
func weightedSum(coeffs []*mat.Dense, weights [][]float64) (C *mat.Dense) {
	K, N := coeffs[0].Dims()
	C = mat.NewDense(K, N, nil)
	for j, cj := range coeffs {
		for i := 0; i < K; i++ {
			for l := 0; l < N; l++ {
				C.Set(i, l, C.At(i, l)+weights[j][i]*cj.At(i, l))
			}
		}
	}
	return
}
