package DG1D

// Lagrange is the nodal basis on a set of distinct reference nodes.
type Lagrange struct {
	Nodes []float64
	denom []float64
}

func NewLagrange(nodes []float64) (lb *Lagrange) {
	n := len(nodes)
	lb = &Lagrange{
		Nodes: append([]float64{}, nodes...),
		denom: make([]float64, n),
	}
	for j := 0; j < n; j++ {
		d := 1.
		for m := 0; m < n; m++ {
			if m != j {
				d *= nodes[j] - nodes[m]
			}
		}
		if d == 0 {
			panic("lagrange nodes must be distinct")
		}
		lb.denom[j] = d
	}
	return
}

func (lb *Lagrange) Terms() int {
	return len(lb.Nodes)
}

// Values returns l_j(x) for every node j.
func (lb *Lagrange) Values(x float64) (v []float64) {
	n := len(lb.Nodes)
	v = make([]float64, n)
	for j := 0; j < n; j++ {
		num := 1.
		for m := 0; m < n; m++ {
			if m != j {
				num *= x - lb.Nodes[m]
			}
		}
		v[j] = num / lb.denom[j]
	}
	return
}

// Gradients returns dl_j/dx for every node j.
func (lb *Lagrange) Gradients(x float64) (g []float64) {
	n := len(lb.Nodes)
	g = make([]float64, n)
	for j := 0; j < n; j++ {
		var sum float64
		for i := 0; i < n; i++ {
			if i == j {
				continue
			}
			prod := 1.
			for m := 0; m < n; m++ {
				if m != j && m != i {
					prod *= x - lb.Nodes[m]
				}
			}
			sum += prod
		}
		g[j] = sum / lb.denom[j]
	}
	return
}
