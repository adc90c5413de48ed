package DG1D

// Legendre evaluates the (unnormalized) Legendre polynomial L_k at x.
func Legendre(k int, x float64) float64 {
	if k == 0 {
		return 1
	}
	pOld, pCur := 1., x
	for n := 1; n < k; n++ {
		fn := float64(n)
		pOld, pCur = pCur, ((2*fn+1)*x*pCur-fn*pOld)/(fn+1)
	}
	return pCur
}

// LegendreValues returns L_0(x) ... L_{n-1}(x).
func LegendreValues(n int, x float64) (v []float64) {
	v = make([]float64, n)
	if n == 0 {
		return
	}
	v[0] = 1
	if n > 1 {
		v[1] = x
	}
	for k := 1; k+1 < n; k++ {
		fk := float64(k)
		v[k+1] = ((2*fk+1)*x*v[k] - fk*v[k-1]) / (fk + 1)
	}
	return
}

// LegendreDerivatives returns dL_k/dx for k = 0 ... n-1.
func LegendreDerivatives(n int, x float64) (d []float64) {
	v := LegendreValues(n, x)
	d = make([]float64, n)
	for k := 1; k < n; k++ {
		d[k] = float64(k)*v[k-1] + x*d[k-1]
	}
	return
}

// LegendreSecondDerivatives returns d2L_k/dx2 for k = 0 ... n-1.
func LegendreSecondDerivatives(n int, x float64) (dd []float64) {
	d := LegendreDerivatives(n, x)
	dd = make([]float64, n)
	for k := 1; k < n; k++ {
		dd[k] = float64(k+1)*d[k-1] + x*dd[k-1]
	}
	return
}
