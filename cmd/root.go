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
	"fmt"
	"os"
	"path/filepath"

	"github.com/minicfd/gocfd1d/utils"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	cfgFile  string
	logger   = zap.NewNop()
	profiler interface{ Stop() }
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gocfd1d",
	Short: "One dimensional high order CFD",
	Long: `
Discontinuous Galerkin and Flux Reconstruction solvers for one dimensional
conservation laws, with limiters, artificial viscosity and wavenumber analysis.

gocfd1d 1D -I input.yaml`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
		if logger, err = utils.NewLogger(viper.GetBool("verbose")); err != nil {
			return
		}
		logger.Debug("starting", zap.String("command", cmd.Name()), zap.String("blas", utils.BLASBackend))
		switch prof := viper.GetString("profile"); prof {
		case "":
		case "cpu":
			profiler = profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
		case "mem":
			profiler = profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook)
		default:
			return fmt.Errorf("unknown profile %q, use cpu or mem", prof)
		}
		return
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if profiler != nil {
			profiler.Stop()
			profiler = nil
		}
		_ = logger.Sync()
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.gocfd1d.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug level logging")
	rootCmd.PersistentFlags().String("profile", "", "write a cpu or mem profile to the working directory")
	rootCmd.PersistentFlags().Bool("perf", false, "count CPU instructions and cycles of the run (linux only)")
	for _, name := range []string{"verbose", "profile", "perf"} {
		if err := viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)); err != nil {
			panic(err)
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.AddConfigPath(filepath.Join(home, ".config"))
		viper.SetConfigName(".gocfd1d")
	}
	viper.SetEnvPrefix("GOCFD1D")
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}
