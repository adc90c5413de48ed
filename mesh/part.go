package mesh

import (
	"fmt"
	"sort"

	"github.com/james-bowman/sparse"
	"github.com/minicfd/gocfd1d/DG1D"
)

const (
	LeftBoundary  = "left"
	RightBoundary = "right"
)

// Face is a point between two cells. Holder is the cell on its left and
// Sharer the cell on its right, either is nil on a non periodic boundary.
type Face struct {
	ID             int
	X              float64
	Holder, Sharer *Cell
	Boundary       string // empty on interior faces
}

func (f *Face) IsBoundary() bool { return f.Holder == nil || f.Sharer == nil }

// Inner is the only cell touching a boundary face.
func (f *Face) Inner() *Cell {
	if f.Holder != nil {
		return f.Holder
	}
	return f.Sharer
}

// Normal points out of the domain on a boundary face.
func (f *Face) Normal() float64 {
	if f.Sharer == nil {
		return 1
	}
	return -1
}

type Cell struct {
	ID          int
	Line        DG1D.Line
	Left, Right *Face
	Neighbors   []*Cell
	// Shifts[i] moves a coordinate of this cell's frame into Neighbors[i]'s
	Shifts []float64
}

type Part struct {
	Cells      []*Cell
	Faces      []*Face
	Periodic   bool
	Boundaries map[string]*Face
}

func NewUniform(xMin, xMax float64, nCells int, periodic bool) (*Part, error) {
	if nCells < 1 || !(xMin < xMax) {
		return nil, fmt.Errorf("invalid uniform mesh: [%v, %v] with %d cells", xMin, xMax, nCells)
	}
	vx := make([]float64, nCells+1)
	dx := (xMax - xMin) / float64(nCells)
	for i := range vx {
		vx[i] = xMin + float64(i)*dx
	}
	vx[nCells] = xMax
	return NewFromVertices(vx, periodic)
}

// NewFromVertices builds the part from increasing vertex coordinates.
func NewFromVertices(vx []float64, periodic bool) (p *Part, err error) {
	var (
		K = len(vx) - 1
	)
	if K < 1 {
		return nil, fmt.Errorf("need at least two vertices, have %d", len(vx))
	}
	if periodic && K < 2 {
		return nil, fmt.Errorf("a periodic part needs at least two cells")
	}
	if !sort.Float64sAreSorted(vx) {
		return nil, fmt.Errorf("vertices must be increasing")
	}
	p = &Part{
		Cells:      make([]*Cell, K),
		Periodic:   periodic,
		Boundaries: make(map[string]*Face),
	}
	for k := 0; k < K; k++ {
		if !(vx[k] < vx[k+1]) {
			return nil, fmt.Errorf("cell %d has zero length", k)
		}
		p.Cells[k] = &Cell{ID: k, Line: DG1D.NewLine(vx[k], vx[k+1])}
	}
	EToV := make([][2]int, K)
	for k := range EToV {
		EToV[k] = [2]int{k, k + 1}
	}
	if periodic {
		EToV[K-1][1] = 0
	}
	p.connect(EToV)
	return
}

// connect matches the local faces of all cells through the sparse product FToV FToV^T.
func (p *Part) connect(EToV [][2]int) {
	var (
		NFaces     = 2
		K          = len(EToV)
		Nv         = K + 1
		TotalFaces = NFaces * K
	)
	FToVTmp := sparse.NewDOK(TotalFaces, Nv)
	for k := 0; k < K; k++ {
		for face := 0; face < NFaces; face++ {
			FToVTmp.Set(k*NFaces+face, EToV[k][face], 1)
		}
	}
	FToV := FToVTmp.ToCSR()
	FToF := sparse.NewCSR(TotalFaces, TotalFaces, nil, nil, nil)
	FToF.Mul(FToV, FToV.T())
	// faces sharing a vertex have a one off the diagonal
	match := make([]int, TotalFaces)
	for i := range match {
		match[i] = -1
	}
	FToF.DoNonZero(func(i, j int, v float64) {
		if i != j && v == 1 {
			match[i] = j
		}
	})
	var (
		faceOf = make([]*Face, TotalFaces)
	)
	newFace := func(x float64) (f *Face) {
		f = &Face{ID: len(p.Faces), X: x}
		p.Faces = append(p.Faces, f)
		return
	}
	for k, c := range p.Cells {
		for lf := 0; lf < NFaces; lf++ {
			gf := k*NFaces + lf
			if faceOf[gf] != nil {
				continue
			}
			x := c.Line.XLeft
			if lf == 1 {
				x = c.Line.XRight
			}
			f := newFace(x)
			faceOf[gf] = f
			if nb := match[gf]; nb >= 0 {
				faceOf[nb] = f
			}
		}
	}
	L := p.XMax() - p.XMin()
	for k, c := range p.Cells {
		c.Left, c.Right = faceOf[k*NFaces], faceOf[k*NFaces+1]
		c.Left.Sharer = c
		c.Right.Holder = c
		if nb := match[k*NFaces]; nb >= 0 {
			c.Neighbors = append(c.Neighbors, p.Cells[nb/NFaces])
			c.Shifts = append(c.Shifts, 0)
			if nb/NFaces >= k {
				// left neighbor across the wrap sits at the right end
				c.Shifts[len(c.Shifts)-1] = L
			}
		}
		if nb := match[k*NFaces+1]; nb >= 0 {
			c.Neighbors = append(c.Neighbors, p.Cells[nb/NFaces])
			c.Shifts = append(c.Shifts, 0)
			if nb/NFaces <= k {
				c.Shifts[len(c.Shifts)-1] = -L
			}
		}
	}
	for _, f := range p.Faces {
		switch {
		case f.Holder == nil:
			f.Boundary = LeftBoundary
			p.Boundaries[LeftBoundary] = f
		case f.Sharer == nil:
			f.Boundary = RightBoundary
			p.Boundaries[RightBoundary] = f
		}
	}
}

func (p *Part) NumCells() int { return len(p.Cells) }

func (p *Part) XMin() float64 { return p.Cells[0].Line.XLeft }

func (p *Part) XMax() float64 { return p.Cells[len(p.Cells)-1].Line.XRight }

// Distance is the center to center distance across a face, or the inner
// cell length on a boundary.
func (p *Part) Distance(f *Face) float64 {
	if f.IsBoundary() {
		return f.Inner().Line.Length()
	}
	return 0.5 * (f.Holder.Line.Length() + f.Sharer.Line.Length())
}

// LocateCell returns the cell containing x, preferring the left one on a face.
func (p *Part) LocateCell(x float64) (c *Cell, err error) {
	i := sort.Search(len(p.Cells), func(i int) bool { return p.Cells[i].Line.XRight >= x })
	if i == len(p.Cells) || !p.Cells[i].Line.Contains(x) {
		return nil, fmt.Errorf("point %v is outside [%v, %v]", x, p.XMin(), p.XMax())
	}
	return p.Cells[i], nil
}

func (p *Part) MinLength() (h float64) {
	h = p.Cells[0].Line.Length()
	for _, c := range p.Cells[1:] {
		if l := c.Line.Length(); l < h {
			h = l
		}
	}
	return
}
