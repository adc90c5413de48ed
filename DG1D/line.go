package DG1D

// Line maps the reference interval [-1, 1] onto [XLeft, XRight].
type Line struct {
	XLeft, XRight float64
}

func NewLine(xLeft, xRight float64) Line {
	if !(xLeft < xRight) {
		panic("line must have XLeft < XRight")
	}
	return Line{XLeft: xLeft, XRight: xRight}
}

func (l Line) Length() float64 {
	return l.XRight - l.XLeft
}

func (l Line) Center() float64 {
	return 0.5 * (l.XLeft + l.XRight)
}

// Jacobian is dx/dxi, constant for a linear map.
func (l Line) Jacobian() float64 {
	return 0.5 * l.Length()
}

func (l Line) LocalToGlobal(xi float64) float64 {
	return l.Center() + l.Jacobian()*xi
}

func (l Line) GlobalToLocal(x float64) float64 {
	return (x - l.Center()) / l.Jacobian()
}

// Contains reports whether x is inside the closed line.
func (l Line) Contains(x float64) bool {
	return l.XLeft <= x && x <= l.XRight
}
