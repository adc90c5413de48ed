package Solver1D

import (
	"fmt"
	"strings"

	"github.com/minicfd/gocfd1d/DG1D"
	"github.com/minicfd/gocfd1d/InputParameters"
	"github.com/minicfd/gocfd1d/limiter"
	"github.com/minicfd/gocfd1d/mesh"
	"github.com/minicfd/gocfd1d/model_problems"
	"github.com/minicfd/gocfd1d/model_problems/Advection1D"
	"github.com/minicfd/gocfd1d/model_problems/Burgers1D"
	"github.com/minicfd/gocfd1d/model_problems/Euler1D"
	"github.com/minicfd/gocfd1d/model_problems/Maxwell1D"
	"github.com/minicfd/gocfd1d/riemann"
	"github.com/minicfd/gocfd1d/riemann/euler"
	"github.com/minicfd/gocfd1d/spatial"
	"github.com/minicfd/gocfd1d/temporal"
	"github.com/minicfd/gocfd1d/types"
	"go.uber.org/zap"
)

// NewProblem builds the model problem named by ip.Model and ip.Case. The
// domain of the scalar problems comes from XMin and XMax.
func NewProblem(ip *InputParameters.InputParameters1D) (p model_problems.Problem, err error) {
	switch ip.Model {
	case "advection":
		ad := Advection1D.NewAdvection(ip.Speed, ip.Nu)
		if ip.XMax > ip.XMin {
			ad.XMin, ad.XMax = ip.XMin, ip.XMax
		}
		return ad, nil
	case "burgers":
		bu := Burgers1D.NewBurgers(ip.Speed)
		if ip.XMax > ip.XMin {
			bu.XMin, bu.XMax = ip.XMin, ip.XMax
		}
		return bu, nil
	case "maxwell":
		var mx *Maxwell1D.Maxwell
		if mx, err = Maxwell1D.NewMaxwell(1, 1); err != nil {
			return
		}
		return mx, nil
	case "euler":
		var (
			ct     Euler1D.CaseType
			solver euler.Solver
		)
		if ct, err = Euler1D.ParseCase(ip.Case); err != nil {
			return
		}
		if solver, err = euler.NewSolver(ip.FluxType, euler.NewGas(ip.Gamma)); err != nil {
			return
		}
		eu := Euler1D.NewEuler(ct, solver)
		eu.Nu = ip.Nu
		if ip.LeftBC != "" {
			if eu.LeftBC, err = types.ParseBCName(ip.LeftBC); err != nil {
				return
			}
		}
		if ip.RightBC != "" {
			if eu.RightBC, err = types.ParseBCName(ip.RightBC); err != nil {
				return
			}
		}
		return eu, nil
	}
	return nil, fmt.Errorf("unknown model %q", ip.Model)
}

func correction(name string, degree int) (c float64, err error) {
	switch strings.ToLower(name) {
	case "dg":
		return DG1D.DiscontinuousGalerkin(degree), nil
	case "huynh", "":
		return DG1D.HuynhLumpingLobatto(degree), nil
	case "sd":
		return DG1D.SpectralDifference(degree), nil
	}
	return 0, fmt.Errorf("unknown correction %q", name)
}

// Discretize builds the spatial scheme selected by ip for p.
func Discretize(ip *InputParameters.InputParameters1D, p model_problems.Problem,
	logger *zap.Logger) (fe *spatial.FiniteElement, sys temporal.System, err error) {
	var (
		xMin, xMax, periodic = p.Domain()
		part                 *mesh.Part
		rs                   = p.Riemann()
		opts                 = model_problems.Options(p)
		det                  limiter.Detector
	)
	if part, err = mesh.NewUniform(xMin, xMax, ip.Cells, periodic); err != nil {
		return
	}
	if ip.TroubleDetector == "notsmooth" {
		det = limiter.IsNotSmooth{}
	}
	switch ip.Limiter {
	case "", "none":
	case "lazy":
		opts = append(opts, spatial.WithLimiter(limiter.NewLazy(), det))
	case "eigen":
		ch, ok := rs.(riemann.Characteristic)
		if !ok {
			return nil, nil, fmt.Errorf("%s has no characteristic decomposition", p.Name())
		}
		opts = append(opts, spatial.WithLimiter(limiter.NewEigen(ch), det))
	case "minmod":
		opts = append(opts, spatial.WithLimiter(limiter.Minmod{}, det))
	case "average":
		opts = append(opts, spatial.WithLimiter(limiter.Average{}, det))
	case "majority":
		opts = append(opts, spatial.WithLimiter(limiter.Majority{}, det))
	default:
		return nil, nil, fmt.Errorf("unknown limiter %q", ip.Limiter)
	}
	switch ip.Viscosity {
	case "", "none":
	case "constant":
		opts = append(opts, spatial.WithViscosity(spatial.Constant{Nu: ip.ArtificialNu, Detector: det}))
	case "persson":
		pv := spatial.NewPersson()
		if ip.Kappa > 0 {
			pv.Kappa = ip.Kappa
		}
		if ip.ArtificialNu > 0 {
			pv.NuMax = ip.ArtificialNu
		}
		pv.Detector = det
		opts = append(opts, spatial.WithViscosity(pv))
	default:
		return nil, nil, fmt.Errorf("unknown viscosity %q", ip.Viscosity)
	}
	opts = append(opts, spatial.WithParallelDegree(ip.ParallelDegree), spatial.WithLogger(logger))
	switch ip.Method {
	case "DG":
		var dg *spatial.DG
		if dg, err = spatial.NewDG(part, ip.PolynomialOrder, rs, opts...); err != nil {
			return
		}
		return dg.FiniteElement, dg, nil
	case "FR":
		var (
			c  float64
			fr *spatial.FR
		)
		if c, err = correction(ip.Correction, ip.PolynomialOrder); err != nil {
			return
		}
		if fr, err = spatial.NewFR(part, ip.PolynomialOrder, rs, c, opts...); err != nil {
			return
		}
		return fr.FiniteElement, fr, nil
	}
	return nil, nil, fmt.Errorf("unknown method %q", ip.Method)
}
