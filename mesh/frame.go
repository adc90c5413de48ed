package mesh

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// WriteFrame stores one K x N coefficient matrix per cell as text:
//
//	time nCells K N
//	c_00 c_01 ... (one line per cell, row major)
func WriteFrame(w io.Writer, time float64, coeffs []*mat.Dense) error {
	if len(coeffs) == 0 {
		return fmt.Errorf("empty frame")
	}
	var (
		bw   = bufio.NewWriter(w)
		K, N = coeffs[0].Dims()
	)
	fmt.Fprintf(bw, "%.17g %d %d %d\n", time, len(coeffs), K, N)
	for ic, c := range coeffs {
		if r, cc := c.Dims(); r != K || cc != N {
			return fmt.Errorf("cell %d has shape %dx%d, want %dx%d", ic, r, cc, K, N)
		}
		fields := make([]string, 0, K*N)
		for i := 0; i < K; i++ {
			for j := 0; j < N; j++ {
				fields = append(fields, strconv.FormatFloat(c.At(i, j), 'g', 17, 64))
			}
		}
		fmt.Fprintln(bw, strings.Join(fields, " "))
	}
	return bw.Flush()
}

func ReadFrame(r io.Reader) (time float64, coeffs []*mat.Dense, err error) {
	var (
		sc           = bufio.NewScanner(r)
		nCells, K, N int
	)
	sc.Buffer(make([]byte, 1024*1024), 64*1024*1024)
	if !sc.Scan() {
		return 0, nil, fmt.Errorf("missing frame header")
	}
	if _, err = fmt.Sscanf(sc.Text(), "%g %d %d %d", &time, &nCells, &K, &N); err != nil {
		return 0, nil, fmt.Errorf("bad frame header %q: %w", sc.Text(), err)
	}
	coeffs = make([]*mat.Dense, nCells)
	for ic := 0; ic < nCells; ic++ {
		if !sc.Scan() {
			return 0, nil, fmt.Errorf("frame ends after %d of %d cells", ic, nCells)
		}
		fields := strings.Fields(sc.Text())
		if len(fields) != K*N {
			return 0, nil, fmt.Errorf("cell %d has %d values, want %d", ic, len(fields), K*N)
		}
		data := make([]float64, K*N)
		for i, f := range fields {
			if data[i], err = strconv.ParseFloat(f, 64); err != nil {
				return 0, nil, fmt.Errorf("cell %d: %w", ic, err)
			}
		}
		coeffs[ic] = mat.NewDense(K, N, data)
	}
	if err = sc.Err(); err != nil {
		return 0, nil, err
	}
	return
}
