package Solver1D

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/minicfd/gocfd1d/InputParameters"
	"github.com/minicfd/gocfd1d/mesh"
	"github.com/minicfd/gocfd1d/model_problems"
	"github.com/minicfd/gocfd1d/spatial"
	"github.com/minicfd/gocfd1d/temporal"
	"github.com/minicfd/gocfd1d/utils"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

// Runner advances a model problem frame by frame, writing the solution and
// its error against the exact solution after every frame.
type Runner struct {
	Input   *InputParameters.InputParameters1D
	Problem model_problems.Problem
	FE      *spatial.FiniteElement
	System  temporal.System
	Scheme  temporal.Scheme
	RunID   uuid.UUID
	// Chart is optional, frames are drawn on it when set
	Chart      *utils.LineChart
	GraphDelay time.Duration
	// Quiet turns off the console progress lines
	Quiet bool

	logger *zap.Logger
	pvd    []mesh.PVDEntry
}

type Frame struct {
	Index int
	Time  float64
	Steps int
	Norms []model_problems.Norms
}

func NewRunner(ip *InputParameters.InputParameters1D, logger *zap.Logger) (r *Runner, err error) {
	if err = ip.Validate(); err != nil {
		return
	}
	r = &Runner{
		Input:  ip,
		RunID:  uuid.New(),
		logger: utils.LoggerOrNop(logger),
	}
	if r.Problem, err = NewProblem(ip); err != nil {
		return nil, err
	}
	if r.FE, r.System, err = Discretize(ip, r.Problem, r.logger); err != nil {
		return nil, err
	}
	if r.Scheme, err = temporal.NewScheme(ip.TimeScheme); err != nil {
		return nil, err
	}
	r.logger = r.logger.With(zap.String("run", r.RunID.String()))
	return
}

func (r *Runner) frameTime(i int) float64 {
	ip := r.Input
	return ip.TStart + float64(i)*(ip.TStop-ip.TStart)/float64(ip.NFrames)
}

func (r *Runner) path(name string) string { return filepath.Join(r.Input.OutputDir, name) }

func (r *Runner) framePath(i int) string { return r.path(fmt.Sprintf("frame_%05d.dat", i)) }

func (r *Runner) vtuPath(i int) string { return r.path(fmt.Sprintf("solution_%05d.vtu", i)) }

// Initialize sets the initial condition, or restarts from frame IFramePrev.
// It returns the index of the frame the solution now holds.
func (r *Runner) Initialize() (iFrame int, err error) {
	if r.Input.IFramePrev < 0 {
		r.FE.Approximate(r.Problem.Initial)
		r.FE.SetSolutionColumn(r.FE.SolutionColumn())
		r.FE.SetTime(r.Input.TStart)
		return 0, nil
	}
	iFrame = r.Input.IFramePrev
	var (
		file   *os.File
		tFrame float64
		coeffs []*mat.Dense
	)
	if file, err = os.Open(r.framePath(iFrame)); err != nil {
		return 0, fmt.Errorf("unable to restart: %w", err)
	}
	defer file.Close()
	if tFrame, coeffs, err = mesh.ReadFrame(file); err != nil {
		return 0, fmt.Errorf("unable to restart from frame %d: %w", iFrame, err)
	}
	if len(coeffs) != r.FE.Part.NumCells() {
		return 0, fmt.Errorf("frame %d has %d cells, the mesh has %d", iFrame, len(coeffs), r.FE.Part.NumCells())
	}
	var col []float64
	for k, C := range coeffs {
		if nr, nc := C.Dims(); nr != r.FE.K || nc != r.FE.Degree+1 {
			return 0, fmt.Errorf("frame %d cell %d is %dx%d, want %dx%d", iFrame, k, nr, nc, r.FE.K, r.FE.Degree+1)
		}
		for i := 0; i < r.FE.K; i++ {
			col = append(col, mat.Row(nil, i, C)...)
		}
	}
	r.FE.SetSolutionColumn(col)
	r.FE.SetTime(tFrame)
	if math.Abs(tFrame-r.frameTime(iFrame)) > 1.e-9*(1+math.Abs(tFrame)) {
		r.logger.Warn("restart frame time differs from the frame schedule",
			zap.Int("frame", iFrame), zap.Float64("time", tFrame), zap.Float64("scheduled", r.frameTime(iFrame)))
	}
	err = r.restorePVD(iFrame)
	return
}

// restorePVD lists the frames 0 ... last already on disk in the collection.
func (r *Runner) restorePVD(last int) error {
	r.pvd = r.pvd[:0]
	for i := 0; i <= last; i++ {
		file, err := os.Open(r.framePath(i))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return err
		}
		t, _, err := mesh.ReadFrame(file)
		file.Close()
		if err != nil {
			return fmt.Errorf("unable to read frame %d: %w", i, err)
		}
		r.pvd = append(r.pvd, mesh.PVDEntry{Time: t, File: r.vtuPath(i)})
	}
	return nil
}

// Run advances from the initial or restart frame through frame NFrames.
func (r *Runner) Run(ctx context.Context) (frames []Frame, err error) {
	ip := r.Input
	if err = os.MkdirAll(ip.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("unable to create output directory: %w", err)
	}
	var first int
	if first, err = r.Initialize(); err != nil {
		return
	}
	r.logger.Info("starting run",
		zap.String("problem", r.Problem.Name()), zap.String("method", ip.Method),
		zap.Int("degree", ip.PolynomialOrder), zap.Int("cells", ip.Cells),
		zap.String("scheme", r.Scheme.Name()), zap.Int("frame", first))
	if first == 0 {
		var f Frame
		if f, err = r.output(0, 0); err != nil {
			return
		}
		frames = append(frames, f)
	}
	for iFrame := first + 1; iFrame <= ip.NFrames; iFrame++ {
		var (
			t0, t1 = r.frameTime(iFrame - 1), r.frameTime(iFrame)
			dt     = r.FE.GetTimeStep((t1-t0)/float64(ip.StepsPerFrame), ip.CFL)
			steps  int
			f      Frame
		)
		if steps, err = temporal.Solve(ctx, r.System, r.Scheme, t0, t1, dt, nil); err != nil {
			return frames, fmt.Errorf("frame %d: %w", iFrame, err)
		}
		if f, err = r.output(iFrame, steps); err != nil {
			return
		}
		frames = append(frames, f)
	}
	if err = mesh.WritePVD(r.path("solution.pvd"), r.pvd); err != nil {
		return
	}
	r.logger.Info("run complete", zap.Int("frames", len(frames)), zap.String("memory", utils.GetMemUsage()))
	err = r.writeErrors(frames)
	return
}

func (r *Runner) output(iFrame, steps int) (f Frame, err error) {
	f = Frame{
		Index: iFrame,
		Time:  r.FE.Time(),
		Steps: steps,
		Norms: model_problems.ErrorNorms(r.Problem, r.FE, r.FE.Time()),
	}
	var file *os.File
	if file, err = os.Create(r.framePath(iFrame)); err != nil {
		return f, fmt.Errorf("unable to write frame %d: %w", iFrame, err)
	}
	var coeffs []*mat.Dense
	for _, e := range r.FE.Expansions() {
		coeffs = append(coeffs, e.Coeff())
	}
	if err = mesh.WriteFrame(file, f.Time, coeffs); err != nil {
		file.Close()
		return
	}
	if err = file.Close(); err != nil {
		return
	}
	vtu := r.vtuPath(iFrame)
	if err = r.FE.Part.WriteVTUFile(vtu, r.Input.SamplesPerCell, r.Problem.FieldNames(), r.sample); err != nil {
		return
	}
	r.pvd = append(r.pvd, mesh.PVDEntry{Time: f.Time, File: vtu})
	if !r.Quiet {
		fmt.Printf("Frame %4d, Time = %8.5f, steps = %6d\n", iFrame, f.Time, steps)
		for _, n := range f.Norms {
			fmt.Printf("\t%s\n", n)
		}
	}
	fields := []zap.Field{zap.Int("frame", iFrame), zap.Float64("time", f.Time), zap.Int("steps", steps)}
	for _, n := range f.Norms {
		fields = append(fields, zap.Float64(n.Field+"_L2", n.L2))
	}
	r.logger.Info("frame", fields...)
	if r.Chart != nil {
		r.plot()
	}
	return
}

func (r *Runner) sample(c *mesh.Cell, x float64) []float64 {
	return r.Problem.Fields(r.FE.Expansions()[c.ID].Value(x))
}

func (r *Runner) plot() {
	var (
		x, f, fe []float64
		n        = r.Input.SamplesPerCell
		t        = r.FE.Time()
	)
	for _, c := range r.FE.Part.Cells {
		for i := 0; i < n; i++ {
			xg := c.Line.LocalToGlobal(-1 + 2*float64(i)/float64(n-1))
			x = append(x, xg)
			f = append(f, r.sample(c, xg)[0])
			if u := r.Problem.Exact(xg, t); u != nil {
				fe = append(fe, r.Problem.Fields(u)[0])
			}
		}
	}
	name := r.Problem.FieldNames()[0]
	if len(fe) == len(x) {
		r.Chart.Plot(0, x, fe, 0.7, name+" exact")
	}
	r.Chart.Plot(r.GraphDelay, x, f, -0.7, name)
}

// writeErrors stores one row per frame: run, method, degree, cells, frame,
// time, then L1 L2 Linf of each field. A restart keeps the rows of the
// frames up to IFramePrev.
func (r *Runner) writeErrors(frames []Frame) (err error) {
	var (
		ip     = r.Input
		header = []string{"run", "method", "degree", "cells", "frame", "time"}
		ff     = func(v float64) string { return strconv.FormatFloat(v, 'g', 10, 64) }
		rows   [][]string
	)
	for _, name := range r.Problem.FieldNames() {
		header = append(header, name+"_L1", name+"_L2", name+"_Linf")
	}
	rows = append(rows, header)
	if ip.IFramePrev >= 0 {
		var old [][]string
		if old, err = r.previousErrors(len(header)); err != nil {
			return
		}
		rows = append(rows, old...)
	}
	for _, f := range frames {
		if f.Norms == nil {
			continue
		}
		row := []string{r.RunID.String(), ip.Method, strconv.Itoa(ip.PolynomialOrder),
			strconv.Itoa(ip.Cells), strconv.Itoa(f.Index), ff(f.Time)}
		for _, n := range f.Norms {
			row = append(row, ff(n.L1), ff(n.L2), ff(n.Linf))
		}
		rows = append(rows, row)
	}
	var file *os.File
	if file, err = os.Create(r.path("errors.csv")); err != nil {
		return fmt.Errorf("unable to write error summary: %w", err)
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()
	w := csv.NewWriter(file)
	if err = w.WriteAll(rows); err != nil {
		return
	}
	return w.Error()
}

// previousErrors reads the rows of frames up to IFramePrev from an earlier
// errors.csv, none when the file is missing.
func (r *Runner) previousErrors(nCol int) (rows [][]string, err error) {
	file, err := os.Open(r.path("errors.csv"))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()
	var records [][]string
	if records, err = csv.NewReader(file).ReadAll(); err != nil {
		return nil, fmt.Errorf("unable to read the error summary to restart: %w", err)
	}
	for i, rec := range records {
		if i == 0 || len(rec) != nCol {
			continue
		}
		if iFrame, aerr := strconv.Atoi(rec[4]); aerr == nil && iFrame <= r.Input.IFramePrev {
			rows = append(rows, rec)
		}
	}
	return
}
