package mesh

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestPart(t *testing.T) {
	{ // open part
		p, err := NewUniform(0, 1, 4, false)
		require.NoError(t, err)
		assert.Equal(t, 4, p.NumCells())
		assert.Equal(t, 5, len(p.Faces))
		left, right := p.Boundaries[LeftBoundary], p.Boundaries[RightBoundary]
		require.NotNil(t, left)
		require.NotNil(t, right)
		assert.Nil(t, left.Holder)
		assert.Equal(t, p.Cells[0], left.Sharer)
		assert.Equal(t, -1., left.Normal())
		assert.Equal(t, p.Cells[3], right.Holder)
		assert.Equal(t, 1., right.Normal())
		assert.Equal(t, 1., right.X)
		for k := 1; k < 4; k++ {
			f := p.Cells[k].Left
			assert.Equal(t, p.Cells[k-1].Right, f)
			assert.Equal(t, p.Cells[k-1], f.Holder)
			assert.Equal(t, p.Cells[k], f.Sharer)
			assert.InDelta(t, 0.25, p.Distance(f), 1.e-15)
		}
		assert.Equal(t, 1, len(p.Cells[0].Neighbors))
		assert.Equal(t, 2, len(p.Cells[1].Neighbors))
	}
	{ // periodic part closes the ring
		p, err := NewUniform(-1, 1, 3, true)
		require.NoError(t, err)
		assert.Equal(t, 3, len(p.Faces))
		assert.Empty(t, p.Boundaries)
		f := p.Cells[0].Left
		assert.Equal(t, p.Cells[2].Right, f)
		assert.Equal(t, p.Cells[2], f.Holder)
		assert.Equal(t, p.Cells[0], f.Sharer)
		for _, c := range p.Cells {
			assert.Equal(t, 2, len(c.Neighbors))
		}
		assert.Equal(t, []float64{2, 0}, p.Cells[0].Shifts)
		assert.Equal(t, []float64{0, 0}, p.Cells[1].Shifts)
		assert.Equal(t, []float64{0, -2}, p.Cells[2].Shifts)
	}
	{ // two periodic cells meet twice, the shift follows the face
		p, err := NewUniform(0, 2, 2, true)
		require.NoError(t, err)
		assert.Equal(t, []*Cell{p.Cells[1], p.Cells[1]}, p.Cells[0].Neighbors)
		assert.Equal(t, []float64{2, 0}, p.Cells[0].Shifts)
		assert.Equal(t, []*Cell{p.Cells[0], p.Cells[0]}, p.Cells[1].Neighbors)
		assert.Equal(t, []float64{0, -2}, p.Cells[1].Shifts)
	}
	{ // nonuniform vertices
		p, err := NewFromVertices([]float64{0, 0.1, 0.4, 1}, false)
		require.NoError(t, err)
		assert.InDelta(t, 0.2, p.Distance(p.Cells[1].Left), 1.e-15)
		assert.InDelta(t, 0.1, p.MinLength(), 1.e-15)
		c, err := p.LocateCell(0.3)
		require.NoError(t, err)
		assert.Equal(t, 1, c.ID)
		c, err = p.LocateCell(0.1)
		require.NoError(t, err)
		assert.Equal(t, 0, c.ID)
		_, err = p.LocateCell(1.5)
		assert.Error(t, err)
	}
	{
		_, err := NewFromVertices([]float64{0, 1, 0.5}, false)
		assert.Error(t, err)
		_, err = NewUniform(0, 1, 1, true)
		assert.Error(t, err)
		_, err = NewUniform(1, 0, 4, false)
		assert.Error(t, err)
	}
}

func TestFrameRoundTrip(t *testing.T) {
	coeffs := []*mat.Dense{
		mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6}),
		mat.NewDense(2, 3, []float64{0.1, -2e-17, 3.5, 1. / 3, 5, 6}),
	}
	var buf bytes.Buffer
	require.NoError(t, WriteFrame(&buf, 0.125, coeffs))
	time, read, err := ReadFrame(&buf)
	require.NoError(t, err)
	assert.Equal(t, 0.125, time)
	require.Len(t, read, 2)
	assert.True(t, mat.Equal(coeffs[1], read[1]))
	{
		_, _, err = ReadFrame(strings.NewReader("0 2 1 1\n1\n"))
		assert.Error(t, err)
		_, _, err = ReadFrame(strings.NewReader("0 1 1 2\n1\n"))
		assert.Error(t, err)
	}
}

func TestVTK(t *testing.T) {
	p, err := NewUniform(0, 1, 2, false)
	require.NoError(t, err)
	dir := t.TempDir()
	file := filepath.Join(dir, "frame_0.vtu")
	err = p.WriteVTUFile(file, 3, []string{"U", "2U"}, func(c *Cell, x float64) []float64 {
		return []float64{x, 2 * x}
	})
	require.NoError(t, err)
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	s := string(data)
	assert.Contains(t, s, `NumberOfPoints="6" NumberOfCells="4"`)
	assert.Contains(t, s, `Name="2U"`)
	require.NoError(t, WritePVD(filepath.Join(dir, "run.pvd"), []PVDEntry{{Time: 0.5, File: file}}))
	data, err = os.ReadFile(filepath.Join(dir, "run.pvd"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `timestep="0.5" file="frame_0.vtu"`)
	assert.Error(t, p.WriteVTU(&bytes.Buffer{}, 1, nil, nil))
}
