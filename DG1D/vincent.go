package DG1D

import "fmt"

// Vincent is the one-parameter family of FR correction functions of degree k+1.
//
//	g_R = [L_k + (eta L_{k-1} + L_{k+1}) / (1 + eta)] / 2,   g_L(x) = g_R(-x)
type Vincent struct {
	K   int
	Eta float64
}

func NewVincent(k int, c float64) *Vincent {
	if k < 1 {
		panic(fmt.Errorf("vincent correction needs k >= 1, got %d", k))
	}
	akFac := vincentAkFactorial(k)
	return &Vincent{
		K:   k,
		Eta: c * float64(2*k+1) * akFac * akFac / 2,
	}
}

// vincentAkFactorial is a_k k! with a_k = (2k)! / (2^k (k!)^2).
func vincentAkFactorial(k int) (v float64) {
	v = 1
	for m := k + 1; m <= 2*k; m++ {
		v *= float64(m)
	}
	for m := 0; m < k; m++ {
		v /= 2
	}
	return
}

// DiscontinuousGalerkin gives the correction that recovers nodal DG.
func DiscontinuousGalerkin(k int) float64 {
	return 0
}

// HuynhLumpingLobatto gives eta = (k+1)/k, the g2 scheme with g_R'(-1) = 0.
func HuynhLumpingLobatto(k int) float64 {
	akFac := vincentAkFactorial(k)
	eta := float64(k+1) / float64(k)
	return 2 * eta / (float64(2*k+1) * akFac * akFac)
}

func (v *Vincent) rightValue(x float64) float64 {
	L := LegendreValues(v.K+2, x)
	k := v.K
	return 0.5 * (L[k] + (v.Eta*L[k-1]+L[k+1])/(1+v.Eta))
}

func (v *Vincent) rightDerivative(x float64) float64 {
	D := LegendreDerivatives(v.K+2, x)
	k := v.K
	return 0.5 * (D[k] + (v.Eta*D[k-1]+D[k+1])/(1+v.Eta))
}

func (v *Vincent) LocalToRightValue(x float64) float64 {
	return v.rightValue(x)
}

func (v *Vincent) LocalToLeftValue(x float64) float64 {
	return v.rightValue(-x)
}

func (v *Vincent) LocalToLeftDerivative(x float64) float64 {
	return -v.rightDerivative(-x)
}

func (v *Vincent) LocalToRightDerivative(x float64) float64 {
	return -v.LocalToLeftDerivative(-x)
}

// SpectralDifference gives eta = k/(k+1).
func SpectralDifference(k int) float64 {
	akFac := vincentAkFactorial(k)
	eta := float64(k) / float64(k+1)
	return 2 * eta / (float64(2*k+1) * akFac * akFac)
}
