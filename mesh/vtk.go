package mesh

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Sampler evaluates the K component solution at x inside cell c.
type Sampler func(c *Cell, x float64) []float64

// WriteVTU writes an ASCII VTK unstructured grid with nSample points per
// cell joined by line segments, and one point array per field name.
func (p *Part) WriteVTU(w io.Writer, nSample int, names []string, sample Sampler) (err error) {
	if nSample < 2 {
		return fmt.Errorf("need at least two samples per cell, have %d", nSample)
	}
	var (
		bw      = bufio.NewWriter(w)
		nPoints = nSample * len(p.Cells)
		nLines  = (nSample - 1) * len(p.Cells)
		x       = make([]float64, 0, nPoints)
		values  = make([][]float64, 0, nPoints)
	)
	for _, c := range p.Cells {
		for i := 0; i < nSample; i++ {
			xi := -1 + 2*float64(i)/float64(nSample-1)
			xg := c.Line.LocalToGlobal(xi)
			v := sample(c, xg)
			if len(v) != len(names) {
				return fmt.Errorf("sampler returned %d values for %d names", len(v), len(names))
			}
			x = append(x, xg)
			values = append(values, v)
		}
	}
	fmt.Fprintf(bw, "<?xml version=\"1.0\"?>\n")
	fmt.Fprintf(bw, "<VTKFile type=\"UnstructuredGrid\" version=\"0.1\" byte_order=\"LittleEndian\">\n")
	fmt.Fprintf(bw, "  <UnstructuredGrid>\n")
	fmt.Fprintf(bw, "    <Piece NumberOfPoints=\"%d\" NumberOfCells=\"%d\">\n", nPoints, nLines)
	fmt.Fprintf(bw, "      <PointData>\n")
	for iv, name := range names {
		fmt.Fprintf(bw, "        <DataArray type=\"Float64\" Name=\"%s\" format=\"ascii\">\n", name)
		for _, v := range values {
			fmt.Fprintf(bw, "          %.15g\n", v[iv])
		}
		fmt.Fprintf(bw, "        </DataArray>\n")
	}
	fmt.Fprintf(bw, "      </PointData>\n")
	fmt.Fprintf(bw, "      <Points>\n")
	fmt.Fprintf(bw, "        <DataArray type=\"Float64\" NumberOfComponents=\"3\" format=\"ascii\">\n")
	for _, xg := range x {
		fmt.Fprintf(bw, "          %.15g 0 0\n", xg)
	}
	fmt.Fprintf(bw, "        </DataArray>\n")
	fmt.Fprintf(bw, "      </Points>\n")
	fmt.Fprintf(bw, "      <Cells>\n")
	fmt.Fprintf(bw, "        <DataArray type=\"Int32\" Name=\"connectivity\" format=\"ascii\">\n")
	for k := range p.Cells {
		for i := 0; i < nSample-1; i++ {
			first := k*nSample + i
			fmt.Fprintf(bw, "          %d %d\n", first, first+1)
		}
	}
	fmt.Fprintf(bw, "        </DataArray>\n")
	fmt.Fprintf(bw, "        <DataArray type=\"Int32\" Name=\"offsets\" format=\"ascii\">\n")
	for i := 1; i <= nLines; i++ {
		fmt.Fprintf(bw, "          %d\n", 2*i)
	}
	fmt.Fprintf(bw, "        </DataArray>\n")
	fmt.Fprintf(bw, "        <DataArray type=\"UInt8\" Name=\"types\" format=\"ascii\">\n")
	for i := 0; i < nLines; i++ {
		fmt.Fprintf(bw, "          3\n") // VTK_LINE
	}
	fmt.Fprintf(bw, "        </DataArray>\n")
	fmt.Fprintf(bw, "      </Cells>\n")
	fmt.Fprintf(bw, "    </Piece>\n")
	fmt.Fprintf(bw, "  </UnstructuredGrid>\n")
	fmt.Fprintf(bw, "</VTKFile>\n")
	return bw.Flush()
}

func (p *Part) WriteVTUFile(fileName string, nSample int, names []string, sample Sampler) (err error) {
	var file *os.File
	if file, err = os.Create(fileName); err != nil {
		return fmt.Errorf("unable to create %s: %w", fileName, err)
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()
	return p.WriteVTU(file, nSample, names, sample)
}

type PVDEntry struct {
	Time float64
	File string
}

// WritePVD writes a ParaView collection of per frame files.
func WritePVD(fileName string, entries []PVDEntry) (err error) {
	var file *os.File
	if file, err = os.Create(fileName); err != nil {
		return fmt.Errorf("unable to create %s: %w", fileName, err)
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()
	bw := bufio.NewWriter(file)
	fmt.Fprintf(bw, "<?xml version=\"1.0\"?>\n")
	fmt.Fprintf(bw, "<VTKFile type=\"Collection\" version=\"0.1\" byte_order=\"LittleEndian\">\n")
	fmt.Fprintf(bw, "  <Collection>\n")
	for _, e := range entries {
		fmt.Fprintf(bw, "    <DataSet timestep=\"%.15g\" file=\"%s\"/>\n", e.Time, filepath.Base(e.File))
	}
	fmt.Fprintf(bw, "  </Collection>\n")
	fmt.Fprintf(bw, "</VTKFile>\n")
	return bw.Flush()
}
