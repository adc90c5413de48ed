package DG1D

// TaylorValues returns the monomials dx^0 ... dx^(n-1).
func TaylorValues(n int, dx float64) (v []float64) {
	v = make([]float64, n)
	p := 1.
	for l := range v {
		v[l] = p
		p *= dx
	}
	return
}

// TaylorDerivativeFactor is l!/(l-k)!, the factor in d^k/dx^k of dx^l.
func TaylorDerivativeFactor(l, k int) (f float64) {
	if k > l {
		return 0
	}
	f = 1
	for m := l - k + 1; m <= l; m++ {
		f *= float64(m)
	}
	return
}

// TaylorDerivatives returns d^k/dx^k of dx^l as D[k][l].
func TaylorDerivatives(n int, dx float64) (D [][]float64) {
	pow := TaylorValues(n, dx)
	D = make([][]float64, n)
	for k := 0; k < n; k++ {
		D[k] = make([]float64, n)
		for l := k; l < n; l++ {
			D[k][l] = pow[l-k] * TaylorDerivativeFactor(l, k)
		}
	}
	return
}
