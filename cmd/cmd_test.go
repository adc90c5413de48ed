package cmd

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/minicfd/gocfd1d/InputParameters"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse1D(t *testing.T, args ...string) (*InputParameters.InputParameters1D, error) {
	fl := pflag.NewFlagSet("1D", pflag.ContinueOnError)
	flags1D(fl)
	require.NoError(t, fl.Parse(args))
	return processInput1D(fl)
}

func TestProcessInput1D(t *testing.T) {
	{ // defaults
		ip, err := parse1D(t)
		require.NoError(t, err)
		assert.Equal(t, InputParameters.NewInputParameters1D(), ip)
	}
	{ // flags override the input file, unset flags leave it alone
		file := filepath.Join(t.TempDir(), "in.yaml")
		require.NoError(t, os.WriteFile(file, []byte("Model: burgers\nCells: 64\nPolynomialOrder: 3\nCase: \"\"\nLimiter: minmod\n"), 0o644))
		ip, err := parse1D(t, "-I", file, "-k", "32", "--method", "FR", "--CFL", "0.25")
		require.NoError(t, err)
		assert.Equal(t, "burgers", ip.Model)
		assert.Equal(t, 3, ip.PolynomialOrder)
		assert.Equal(t, 32, ip.Cells)
		assert.Equal(t, "FR", ip.Method)
		assert.Equal(t, 0.25, ip.CFL)
		assert.Equal(t, "minmod", ip.Limiter)
	}
	{
		_, err := parse1D(t, "--method", "FV")
		assert.Error(t, err)
		_, err = parse1D(t, "-I", filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	}
}

func TestOneDCmd(t *testing.T) {
	dir := t.TempDir()
	rootCmd.SetArgs([]string{"1D", "-m", "advection", "-c", "", "-n", "1", "-k", "12",
		"--finalTime", "0.2", "--frames", "2", "-o", dir})
	require.NoError(t, rootCmd.Execute())
	for _, name := range []string{"frame_00002.dat", "solution_00002.vtu", "solution.pvd", "errors.csv"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}

func TestWaveNumber(t *testing.T) {
	wn := &WaveNumber{Method: "FR", Correction: "SD", Degree: 2, Cells: 10, Samples: 8, XRight: 10}
	samples, err := wn.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, samples, 8)
	var buf bytes.Buffer
	require.NoError(t, WriteWaveNumbers(&buf, samples))
	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 9)
	assert.Equal(t, []string{"kh", "physical_re", "physical_im", "exact_re", "exact_im",
		"mode0_re", "mode0_im", "mode1_re", "mode1_im", "mode2_re", "mode2_im"}, rows[0])
	assert.Equal(t, "0", rows[1][0])
	{
		wn.Correction = "Jameson"
		_, err = wn.Run(context.Background())
		assert.Error(t, err)
		wn.Method = "FV"
		_, err = wn.Run(context.Background())
		assert.Error(t, err)
	}
	assert.Error(t, WriteWaveNumbers(&buf, nil))
}
