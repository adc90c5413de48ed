package DG1D

import "fmt"

// Quadrature holds nodes and weights on the reference interval [-1, 1].
type Quadrature struct {
	X, W []float64
}

// GaussLegendre returns the n-point Gauss rule, exact up to degree 2n-1.
func GaussLegendre(n int) (q Quadrature) {
	if n < 1 {
		panic(fmt.Errorf("gauss rule needs at least one point, got %d", n))
	}
	q.X, q.W = JacobiGQ(0, 0, n-1)
	return
}

// GaussLobatto returns the n-point Lobatto rule, exact up to degree 2n-3.
func GaussLobatto(n int) (q Quadrature) {
	if n < 2 {
		panic(fmt.Errorf("lobatto rule needs at least two points, got %d", n))
	}
	N := n - 1
	q.X = JacobiGL(0, 0, N)
	q.W = make([]float64, n)
	fN := float64(N)
	for i, x := range q.X {
		pN := Legendre(N, x)
		q.W[i] = 2. / (fN * (fN + 1) * pN * pN)
	}
	return
}

func (q Quadrature) Points() int {
	return len(q.X)
}

// Integrate evaluates the rule for f on [-1, 1].
func (q Quadrature) Integrate(f func(xi float64) float64) (sum float64) {
	for i, x := range q.X {
		sum += q.W[i] * f(x)
	}
	return
}

// Integrate evaluates the rule for f over the global extent of the line.
func (l Line) Integrate(q Quadrature, f func(x float64) float64) (sum float64) {
	J := l.Jacobian()
	for i, xi := range q.X {
		sum += q.W[i] * f(l.LocalToGlobal(xi))
	}
	return sum * J
}

func (l Line) Average(q Quadrature, f func(x float64) float64) float64 {
	return l.Integrate(q, f) / l.Length()
}
