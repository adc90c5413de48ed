package DG1D

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// JacobiGQ returns the N+1 Gauss quadrature nodes and weights of the Jacobi
// polynomial P_N^(alpha,beta), nodes in ascending order.
func JacobiGQ(alpha, beta float64, N int) (X, W []float64) {
	if N == 0 {
		return []float64{-(alpha - beta) / (alpha + beta + 2.)}, []float64{2.}
	}
	var (
		h1 = make([]float64, N+1)
		d0 = make([]float64, N+1)
		d1 = make([]float64, N)
	)
	for i := 0; i < N+1; i++ {
		h1[i] = 2*float64(i) + alpha + beta
	}
	// main diagonal: diag(-1/2*(alpha^2-beta^2)./(h1+2)./h1)
	fac := -.5 * (alpha*alpha - beta*beta)
	for i := 0; i < N+1; i++ {
		d0[i] = fac / (h1[i] * (h1[i] + 2.))
	}
	if alpha+beta < 10*1.e-16 {
		d0[0] = 0.
	}
	for i := 0; i < N; i++ {
		ip1 := float64(i + 1)
		val := h1[i]
		d1[i] = 2. / (val + 2.)
		d1[i] *= math.Sqrt(ip1 * (ip1 + alpha + beta) * (ip1 + alpha) * (ip1 + beta) / ((val + 1.) * (val + 3.)))
	}
	JJ := mat.NewSymDense(N+1, nil)
	for i := 0; i < N+1; i++ {
		JJ.SetSym(i, i, d0[i])
		if i < N {
			JJ.SetSym(i, i+1, d1[i])
		}
	}
	var eig mat.EigenSym
	if ok := eig.Factorize(JJ, true); !ok {
		panic("eigenvalue decomposition failed")
	}
	X = eig.Values(nil)
	VVr := mat.NewDense(N+1, N+1, nil)
	eig.VectorsTo(VVr)
	W = make([]float64, N+1)
	g0 := gamma0(alpha, beta)
	for i, v := range VVr.RawRowView(0) {
		W[i] = v * v * g0
	}
	return
}

// JacobiGL returns the N+1 Gauss-Lobatto nodes of the Jacobi polynomial P_N^(alpha,beta).
func JacobiGL(alpha, beta float64, N int) (X []float64) {
	X = make([]float64, N+1)
	X[0], X[N] = -1, 1
	if N == 1 {
		return
	}
	xint, _ := JacobiGQ(alpha+1, beta+1, N-2)
	copy(X[1:N], xint)
	return
}

// JacobiP evaluates the orthonormal Jacobi polynomial of order N at r.
func JacobiP(r []float64, alpha, beta float64, N int) (p []float64) {
	var (
		Nc = len(r)
		rg = 1. / math.Sqrt(gamma0(alpha, beta))
	)
	pOld := make([]float64, Nc)
	for i := range pOld {
		pOld[i] = rg
	}
	if N == 0 {
		return pOld
	}
	ab := alpha + beta
	rg1 := 1. / math.Sqrt(gamma1(alpha, beta))
	pCur := make([]float64, Nc)
	for i, x := range r {
		pCur[i] = rg1 * ((ab+2.0)*x/2.0 + (alpha-beta)/2.0)
	}
	a1, b1, ab1 := alpha+1., beta+1., ab+1.
	aold := 2.0 * math.Sqrt(a1*b1/(ab+3.0)) / (ab + 2.0)
	for i := 0; i < N-1; i++ {
		ip1 := float64(i + 1)
		ip2 := ip1 + 1
		h1 := 2.0*ip1 + ab
		anew := 2.0 / (h1 + 2.0) * math.Sqrt(ip2*(ip1+ab1)*(ip1+a1)*(ip1+b1)/(h1+1.0)/(h1+3.0))
		bnew := -(alpha*alpha - beta*beta) / h1 / (h1 + 2.0)
		pNew := make([]float64, Nc)
		for j, x := range r {
			pNew[j] = (-aold*pOld[j] + (x-bnew)*pCur[j]) / anew
		}
		pOld, pCur = pCur, pNew
		aold = anew
	}
	return pCur
}

func GradJacobiP(r []float64, alpha, beta float64, N int) (p []float64) {
	if N == 0 {
		return make([]float64, len(r))
	}
	p = JacobiP(r, alpha+1, beta+1, N-1)
	fN := float64(N)
	fac := math.Sqrt(fN * (fN + alpha + beta + 1))
	for i := range p {
		p[i] *= fac
	}
	return
}

// Vandermonde1D builds V(i,j) = P_j(r_i) with orthonormal Legendre columns.
func Vandermonde1D(N int, R []float64) (V *mat.Dense) {
	V = mat.NewDense(len(R), N+1, nil)
	for j := 0; j < N+1; j++ {
		V.SetCol(j, JacobiP(R, 0, 0, j))
	}
	return
}

func gamma0(alpha, beta float64) float64 {
	ab1 := alpha + beta + 1.
	a1 := alpha + 1.
	b1 := beta + 1.
	return math.Gamma(a1) * math.Gamma(b1) * math.Pow(2, ab1) / ab1 / math.Gamma(ab1)
}

func gamma1(alpha, beta float64) float64 {
	ab := alpha + beta
	a1 := alpha + 1.
	b1 := beta + 1.
	return a1 * b1 * gamma0(alpha, beta) / (ab + 3.0)
}
