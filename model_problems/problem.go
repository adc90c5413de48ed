package model_problems

import (
	"fmt"
	"math"

	"github.com/minicfd/gocfd1d/DG1D"
	"github.com/minicfd/gocfd1d/riemann"
	"github.com/minicfd/gocfd1d/riemann/diffusive"
	"github.com/minicfd/gocfd1d/spatial"
)

// Problem is a one dimensional initial boundary value problem.
type Problem interface {
	Name() string
	Riemann() riemann.Convective
	Domain() (xMin, xMax float64, periodic bool)
	Initial(x float64) []float64
	// Exact is nil when there is no closed form solution at t
	Exact(x, t float64) []float64
	// Boundaries is keyed by mesh boundary name, empty for periodic domains
	Boundaries() map[string]spatial.Boundary
	FieldNames() []string
	// Fields maps a conserved state onto the named output fields
	Fields(u []float64) []float64
}

// Viscous is implemented by problems carrying a physical diffusive flux.
type Viscous interface {
	Diffusion() diffusive.Diffusive
}

// Options are the spatial options needed by p itself.
func Options(p Problem) (opts []spatial.Option) {
	for name, bc := range p.Boundaries() {
		opts = append(opts, spatial.WithBoundary(name, bc))
	}
	if v, ok := p.(Viscous); ok && v.Diffusion() != nil {
		opts = append(opts, spatial.WithDiffusion(v.Diffusion()))
	}
	return
}

// Norms are the L1, L2 and Linf errors of one output field.
type Norms struct {
	Field        string
	L1, L2, Linf float64
}

func (n Norms) String() string {
	return fmt.Sprintf("%-6s L1 = %10.4e, L2 = %10.4e, Linf = %10.4e", n.Field, n.L1, n.L2, n.Linf)
}

// ErrorNorms integrates |fields(u) - fields(exact)| over the domain with a
// P+3 point Gauss rule. It returns nil when p has no exact solution at t.
func ErrorNorms(p Problem, fe *spatial.FiniteElement, t float64) (norms []Norms) {
	var (
		names      = p.FieldNames()
		xMin, _, _ = p.Domain()
		quad       = DG1D.GaussLegendre(fe.Degree + 3)
	)
	if p.Exact(xMin, t) == nil {
		return nil
	}
	norms = make([]Norms, len(names))
	for i, name := range names {
		norms[i].Field = name
	}
	for _, e := range fe.Expansions() {
		line := e.Line()
		for q, xi := range quad.X {
			var (
				x     = line.LocalToGlobal(xi)
				w     = quad.W[q] * line.Jacobian()
				have  = p.Fields(e.Value(x))
				exact = p.Fields(p.Exact(x, t))
			)
			for i := range names {
				d := math.Abs(have[i] - exact[i])
				norms[i].L1 += w * d
				norms[i].L2 += w * d * d
				norms[i].Linf = math.Max(norms[i].Linf, d)
			}
		}
	}
	for i := range norms {
		norms[i].L2 = math.Sqrt(norms[i].L2)
	}
	return
}

// Bisect finds the root of f in [a, b], f(a) and f(b) must not share a sign.
func Bisect(f func(x float64) float64, a, b, tol float64) (x float64, err error) {
	fa, fb := f(a), f(b)
	switch {
	case fa == 0:
		return a, nil
	case fb == 0:
		return b, nil
	case math.Signbit(fa) == math.Signbit(fb):
		return 0, fmt.Errorf("root is not bracketed in [%v, %v]", a, b)
	}
	for iter := 0; iter < 200 && b-a > tol; iter++ {
		x = 0.5 * (a + b)
		fx := f(x)
		if fx == 0 {
			return x, nil
		}
		if math.Signbit(fx) == math.Signbit(fa) {
			a, fa = x, fx
		} else {
			b = x
		}
	}
	return 0.5 * (a + b), nil
}
