package grid

import (
	"fmt"
	"math"
)

// Equiangular returns the equiangular grid for order nMax: 2(nMax+1)
// colatitudes θ_j = π(2j+1)/(4(nMax+1)) times 2(nMax+1) azimuths. The
// colatitude weights follow Fejér's first rule, which makes the grid exact
// for order nMax.
func Equiangular(nMax int, opts ...Option) (*Grid, error) {
	if nMax < 0 {
		return nil, fmt.Errorf("grid: equiangular order must be >= 0: %d", nMax)
	}
	q := 2 * (nMax + 1)
	cosNodes := make([]float64, q)
	weights := make([]float64, q)
	for j := 0; j < q; j++ {
		theta := math.Pi * float64(2*j+1) / float64(2*q)
		sum := 0.0
		for k := 1; k <= q/2; k++ {
			sum += math.Cos(2*float64(k)*theta) / float64(4*k*k-1)
		}
		cosNodes[j] = math.Cos(theta)
		weights[j] = 2 / float64(q) * (1 - 2*sum)
	}
	return productGrid(cosNodes, weights, q, nMax, opts)
}
