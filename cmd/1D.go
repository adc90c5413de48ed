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
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/minicfd/gocfd1d/InputParameters"
	"github.com/minicfd/gocfd1d/model_problems/Solver1D"
	"github.com/minicfd/gocfd1d/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// OneDCmd represents the 1D command
var OneDCmd = &cobra.Command{
	Use:   "1D",
	Short: "One Dimensional Model Problem Solutions",
	Long: `
Executes the DG or FR solver for a variety of model problems. Parameters come
from the YAML input file and are overridden by flags given on the command line,

gocfd1d 1D -I sod.yaml -n 3 -k 200`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var ip *InputParameters.InputParameters1D
		if example, _ := cmd.Flags().GetBool("example"); example {
			return InputParameters.NewInputParameters1D().Write(os.Stdout)
		}
		if ip, err = processInput1D(cmd.Flags()); err != nil {
			return
		}
		ip.Print()
		var r *Solver1D.Runner
		if r, err = Solver1D.NewRunner(ip, logger); err != nil {
			return
		}
		if graph, _ := cmd.Flags().GetBool("graph"); graph {
			var (
				xMin, xMax, _ = r.Problem.Domain()
				fMin, fMax    = fieldRange(r)
			)
			r.Chart = utils.NewLineChart(1920, 1280, xMin, xMax, fMin, fMax)
			delay, _ := cmd.Flags().GetInt("delay")
			r.GraphDelay = time.Duration(delay) * time.Millisecond
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return measure(viper.GetBool("perf"), func() error {
			_, err := r.Run(ctx)
			return err
		})
	},
}

func init() {
	rootCmd.AddCommand(OneDCmd)
	fl := OneDCmd.Flags()
	flags1D(fl)
	if err := viper.BindPFlag("1D.inputFile", fl.Lookup("inputFile")); err != nil {
		panic(err)
	}
}

func flags1D(fl *pflag.FlagSet) {
	ip := InputParameters.NewInputParameters1D()
	fl.StringP("inputFile", "I", "", "YAML file of input parameters, see --example")
	fl.Bool("example", false, "print an example input file and exit")
	fl.StringP("model", "m", ip.Model, "model to run: advection, burgers, maxwell or euler")
	fl.StringP("case", "c", ip.Case, "case to run, for euler: sod, lax or density_wave")
	fl.String("method", ip.Method, "spatial scheme: DG or FR")
	fl.IntP("n", "n", ip.PolynomialOrder, "polynomial degree")
	fl.IntP("k", "k", ip.Cells, "number of cells")
	fl.Float64("CFL", ip.CFL, "CFL - increase for speedup, decrease for stability")
	fl.Float64("finalTime", ip.TStop, "the target end time for the sim")
	fl.Int("frames", ip.NFrames, "number of output frames")
	fl.Int("restart", ip.IFramePrev, "restart from this frame in the output directory, -1 starts fresh")
	fl.StringP("output", "o", ip.OutputDir, "output directory")
	fl.BoolP("graph", "g", false, "display a graph while computing solution")
	fl.IntP("delay", "d", 0, "milliseconds of delay for plotting")
}

// processInput1D reads the input file, from the flag or the config key
// 1D.inputFile, then applies every flag set on the command line.
func processInput1D(fl *pflag.FlagSet) (ip *InputParameters.InputParameters1D, err error) {
	ip = InputParameters.NewInputParameters1D()
	file, _ := fl.GetString("inputFile")
	if file == "" {
		file = viper.GetString("1D.inputFile")
	}
	if file != "" {
		if err = ip.ReadFile(file); err != nil {
			return nil, err
		}
	}
	fl.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "model":
			ip.Model = f.Value.String()
		case "case":
			ip.Case = f.Value.String()
		case "method":
			ip.Method = f.Value.String()
		case "n":
			ip.PolynomialOrder, _ = fl.GetInt("n")
		case "k":
			ip.Cells, _ = fl.GetInt("k")
		case "CFL":
			ip.CFL, _ = fl.GetFloat64("CFL")
		case "finalTime":
			ip.TStop, _ = fl.GetFloat64("finalTime")
		case "frames":
			ip.NFrames, _ = fl.GetInt("frames")
		case "restart":
			ip.IFramePrev, _ = fl.GetInt("restart")
		case "output":
			ip.OutputDir = f.Value.String()
		}
	})
	if err = ip.Validate(); err != nil {
		return nil, fmt.Errorf("%w\nprint a valid input file with --example", err)
	}
	return
}

// fieldRange brackets the first output field of the initial condition.
func fieldRange(r *Solver1D.Runner) (fMin, fMax float64) {
	xMin, xMax, _ := r.Problem.Domain()
	fMin, fMax = 1.e30, -1.e30
	for i := 0; i <= 200; i++ {
		x := xMin + (xMax-xMin)*float64(i)/200
		f := r.Problem.Fields(r.Problem.Initial(x))[0]
		fMin, fMax = min(fMin, f), max(fMax, f)
	}
	pad := 0.1*(fMax-fMin) + 0.05
	return fMin - pad, fMax + pad
}
