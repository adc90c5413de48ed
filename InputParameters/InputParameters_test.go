package InputParameters

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputParameters1D(t *testing.T) {
	{
		ip := NewInputParameters1D()
		require.NoError(t, ip.Validate())
		require.NoError(t, ip.Parse([]byte(`
Title: "Burgers"
Model: burgers
Method: FR
PolynomialOrder: 3
Cells: 40
TStop: 0.1
Limiter: lazy
`)))
		assert.Equal(t, "burgers", ip.Model)
		assert.Equal(t, "FR", ip.Method)
		assert.Equal(t, 3, ip.PolynomialOrder)
		assert.Equal(t, 40, ip.Cells)
		assert.Equal(t, 0.1, ip.TStop)
		// untouched keys keep the defaults
		assert.Equal(t, 0.5, ip.CFL)
		assert.Equal(t, -1, ip.IFramePrev)
	}
	{
		ip := NewInputParameters1D()
		assert.Error(t, ip.Parse([]byte("Method: FV\n")))
		ip = NewInputParameters1D()
		assert.Error(t, ip.Parse([]byte("TStart: 1\nTStop: 0.5\n")))
		ip = NewInputParameters1D()
		assert.Error(t, ip.Parse([]byte("Method: FR\nPolynomialOrder: 0\n")))
		ip = NewInputParameters1D()
		assert.Error(t, ip.Parse([]byte("Cells: [1, 2]\n")))
		ip = NewInputParameters1D()
		assert.Error(t, ip.Parse([]byte("LeftBC: porous\n")))
		ip = NewInputParameters1D()
		assert.NoError(t, ip.Parse([]byte("LeftBC: wall\nRightBC: Supersonic_Outlet\n")))
		assert.Equal(t, "wall", ip.LeftBC)
	}
	{ // written parameters read back the same
		ip := NewInputParameters1D()
		ip.Nu = 0.25
		var buf bytes.Buffer
		require.NoError(t, ip.Write(&buf))
		back := &InputParameters1D{}
		require.NoError(t, back.Parse(buf.Bytes()))
		assert.Equal(t, ip, back)
	}
}
