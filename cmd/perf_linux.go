//go:build linux

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

	perf "github.com/hodgesds/perf-utils"
	"go.uber.org/zap"
)

// measure runs f, counting its CPU instructions when enabled. The counter
// needs perf_event_paranoid access, f runs uncounted otherwise.
func measure(enabled bool, f func() error) error {
	if !enabled {
		return f()
	}
	var (
		ran    bool
		runErr error
	)
	instructions, err := perf.CPUInstructions(func() error {
		ran = true
		runErr = f()
		return nil
	})
	if err != nil {
		logger.Warn("perf counters unavailable", zap.Error(err))
		if !ran {
			return f()
		}
		return runErr
	}
	fmt.Printf("Perf: %d CPU instructions, %.3f s enabled\n",
		instructions.Value, float64(instructions.TimeEnabled)*1.e-9)
	return runErr
}
