/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/minicfd/gocfd1d/DG1D"
	"github.com/minicfd/gocfd1d/mesh"
	"github.com/minicfd/gocfd1d/riemann"
	"github.com/minicfd/gocfd1d/riemann/diffusive"
	"github.com/minicfd/gocfd1d/spatial"
	"github.com/minicfd/gocfd1d/utils"
	"github.com/minicfd/gocfd1d/wave_number"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type WaveNumber struct {
	Method, Correction string
	Degree, Cells      int
	Samples            int
	XLeft, XRight      float64
	Nu                 float64
	Beta0, Beta1       float64
}

// WaveNumberCmd represents the wavenumber command
var WaveNumberCmd = &cobra.Command{
	Use:   "wavenumber",
	Short: "Modified wavenumber analysis of the DG and FR schemes",
	Long: `
Probes the linear advection-diffusion discretization and prints the modified
wavenumbers of every mode for kh in [0, (P+1) pi],

gocfd1d wavenumber --method FR -n 3 --correction Huynh`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		wn := &WaveNumber{}
		fl := cmd.Flags()
		wn.Method, _ = fl.GetString("method")
		wn.Correction, _ = fl.GetString("correction")
		wn.Degree, _ = fl.GetInt("n")
		wn.Cells, _ = fl.GetInt("k")
		wn.Samples, _ = fl.GetInt("samples")
		wn.XLeft, _ = fl.GetFloat64("xLeft")
		wn.XRight, _ = fl.GetFloat64("xRight")
		wn.Nu, _ = fl.GetFloat64("nu")
		wn.Beta0, _ = fl.GetFloat64("beta0")
		wn.Beta1, _ = fl.GetFloat64("beta1")
		var samples []wave_number.Sample
		if samples, err = wn.Run(cmd.Context()); err != nil {
			return
		}
		out := cmd.OutOrStdout()
		if file, _ := fl.GetString("output"); file != "" {
			var f *os.File
			if f, err = os.Create(file); err != nil {
				return
			}
			defer f.Close()
			out = f
		}
		if err = WriteWaveNumbers(out, samples); err != nil {
			return
		}
		if graph, _ := fl.GetBool("graph"); graph {
			plotWaveNumbers(samples, wn.Degree)
		}
		return
	},
}

func init() {
	rootCmd.AddCommand(WaveNumberCmd)
	fl := WaveNumberCmd.Flags()
	fl.String("method", "DG", "spatial scheme: DG or FR")
	fl.String("correction", "Huynh", "FR correction: DG, Huynh or SD")
	fl.IntP("n", "n", 3, "polynomial degree")
	fl.IntP("k", "k", 10, "number of cells")
	fl.IntP("samples", "s", 50, "number of sampled wavenumbers")
	fl.Float64("xLeft", 0, "left end of the domain")
	fl.Float64("xRight", 10, "right end of the domain")
	fl.Float64("nu", 1.e-3, "diffusivity")
	fl.Float64("beta0", diffusive.NewDDG().Beta0, "DDG jump coefficient")
	fl.Float64("beta1", diffusive.NewDDG().Beta1, "DDG second derivative coefficient")
	fl.StringP("output", "o", "", "CSV file for the spectrum, stdout when empty")
	fl.BoolP("graph", "g", false, "plot the physical mode against the exact one")
}

func (wn *WaveNumber) Run(ctx context.Context) (samples []wave_number.Sample, err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	var part *mesh.Part
	if part, err = mesh.NewUniform(wn.XLeft, wn.XRight, wn.Cells, true); err != nil {
		return
	}
	var (
		rs   = riemann.LinearScalar{A: 1}
		opts = []spatial.Option{spatial.WithLogger(logger)}
		fe   *spatial.FiniteElement
	)
	if wn.Nu > 0 {
		opts = append(opts, spatial.WithDiffusion(diffusive.Isotropic{Nu: wn.Nu}),
			spatial.WithDDG(diffusive.DDG{Beta0: wn.Beta0, Beta1: wn.Beta1}))
	}
	switch wn.Method {
	case "DG":
		var dg *spatial.DG
		if dg, err = spatial.NewDG(part, wn.Degree, rs, opts...); err != nil {
			return
		}
		fe = dg.FiniteElement
	case "FR":
		var (
			c  float64
			fr *spatial.FR
		)
		switch wn.Correction {
		case "DG":
			c = DG1D.DiscontinuousGalerkin(wn.Degree)
		case "Huynh":
			c = DG1D.HuynhLumpingLobatto(wn.Degree)
		case "SD":
			c = DG1D.SpectralDifference(wn.Degree)
		default:
			return nil, fmt.Errorf("unknown correction %q", wn.Correction)
		}
		if fr, err = spatial.NewFR(part, wn.Degree, rs, c, opts...); err != nil {
			return
		}
		fe = fr.FiniteElement
	default:
		return nil, fmt.Errorf("unknown method %q", wn.Method)
	}
	var an *wave_number.Analyzer
	if an, err = wave_number.NewAnalyzer(ctx, fe); err != nil {
		return
	}
	logger.Debug("wavenumber analysis",
		zap.String("method", wn.Method), zap.Int("degree", wn.Degree), zap.Float64("reynolds", an.Reynolds()))
	return an.Sweep(0, float64(wn.Degree+1)*math.Pi, wn.Samples)
}

// WriteWaveNumbers writes kh, the physical and exact modified wavenumbers,
// then the real and imaginary parts of every mode.
func WriteWaveNumbers(w io.Writer, samples []wave_number.Sample) error {
	var (
		cw = csv.NewWriter(w)
		ff = func(v float64) string { return strconv.FormatFloat(v, 'g', 12, 64) }
	)
	if len(samples) == 0 {
		return fmt.Errorf("no samples")
	}
	header := []string{"kh", "physical_re", "physical_im", "exact_re", "exact_im"}
	for i := range samples[0].Modes {
		header = append(header, fmt.Sprintf("mode%d_re", i), fmt.Sprintf("mode%d_im", i))
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, s := range samples {
		row := []string{ff(s.KH), ff(real(s.Physical)), ff(imag(s.Physical)), ff(real(s.Exact)), ff(imag(s.Exact))}
		for _, m := range s.Modes {
			row = append(row, ff(real(m)), ff(imag(m)))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func plotWaveNumbers(samples []wave_number.Sample, degree int) {
	var (
		khMax                    = float64(degree+1) * math.Pi
		kh, physRe, physIm, exRe []float64
		exIm                     []float64
	)
	for _, s := range samples {
		kh = append(kh, s.KH)
		physRe = append(physRe, real(s.Physical))
		physIm = append(physIm, imag(s.Physical))
		exRe = append(exRe, real(s.Exact))
		exIm = append(exIm, imag(s.Exact))
	}
	lc := utils.NewLineChart(1280, 1280, 0, khMax, -khMax, khMax)
	lc.Plot(0, kh, exRe, 0.7, "exact Re")
	lc.Plot(0, kh, exIm, 0.4, "exact Im")
	lc.Markers(kh, physRe, -0.7, "physical Re")
	lc.Markers(kh, physIm, -0.4, "physical Im")
	fmt.Println("Close the chart window or interrupt to exit")
	select {}
}
