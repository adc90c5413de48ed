package Maxwell1D

import (
	"fmt"
	"math"

	"github.com/minicfd/gocfd1d/riemann"
	"github.com/minicfd/gocfd1d/spatial"
	"gonum.org/v1/gonum/mat"
)

// Maxwell is the transverse pair
//
//	eps E_t + H_x = 0
//	mu  H_t + E_x = 0
//
// in a uniform periodic medium, started from E = sin(pi x), H = 0.
type Maxwell struct {
	Epsilon, Mu float64
	XMin, XMax  float64
	rs          *riemann.LinearSystem
}

func NewMaxwell(epsilon, mu float64) (mx *Maxwell, err error) {
	if epsilon <= 0 || mu <= 0 {
		return nil, fmt.Errorf("permittivity and permeability must be positive, have %v and %v", epsilon, mu)
	}
	mx = &Maxwell{Epsilon: epsilon, Mu: mu, XMin: -2, XMax: 2}
	A := mat.NewDense(2, 2, []float64{
		0, 1 / epsilon,
		1 / mu, 0,
	})
	if mx.rs, err = riemann.NewLinearSystem(A); err != nil {
		return nil, err
	}
	return
}

func (mx *Maxwell) Name() string {
	return fmt.Sprintf("maxwell eps = %g, mu = %g", mx.Epsilon, mx.Mu)
}

func (mx *Maxwell) Riemann() riemann.Convective { return mx.rs }

func (mx *Maxwell) Domain() (xMin, xMax float64, periodic bool) { return mx.XMin, mx.XMax, true }

// Speed is the wave speed 1/sqrt(eps mu).
func (mx *Maxwell) Speed() float64 { return 1 / math.Sqrt(mx.Epsilon*mx.Mu) }

// Impedance is sqrt(mu/eps).
func (mx *Maxwell) Impedance() float64 { return math.Sqrt(mx.Mu / mx.Epsilon) }

func (mx *Maxwell) e0(x float64) float64 {
	// two periods on the default domain
	return math.Sin(4 * math.Pi * (x - mx.XMin) / (mx.XMax - mx.XMin))
}

func (mx *Maxwell) Initial(x float64) []float64 { return []float64{mx.e0(x), 0} }

// Exact splits the initial pulse into E + Z H moving right and E - Z H moving left.
func (mx *Maxwell) Exact(x, t float64) []float64 {
	var (
		c     = mx.Speed()
		right = mx.e0(x - c*t)
		left  = mx.e0(x + c*t)
	)
	return []float64{0.5 * (right + left), 0.5 * (right - left) / mx.Impedance()}
}

func (mx *Maxwell) Boundaries() map[string]spatial.Boundary { return nil }

func (mx *Maxwell) FieldNames() []string { return []string{"E", "H"} }

func (mx *Maxwell) Fields(u []float64) []float64 { return u }
