package grid

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/integrate/quad"
)

// Gaussian returns the Gauss–Legendre product grid for order nMax:
// nMax+1 colatitudes at the Gauss–Legendre nodes times 2(nMax+1) equally
// spaced azimuths. Its weights are exact for order nMax.
func Gaussian(nMax int, opts ...Option) (*Grid, error) {
	if nMax < 0 {
		return nil, fmt.Errorf("grid: gaussian order must be >= 0: %d", nMax)
	}
	nodes, nodeWeights := GaussLegendre(nMax + 1)
	return productGrid(nodes, nodeWeights, 2*(nMax+1), nMax, opts)
}

// GaussLegendre returns the q-point Gauss–Legendre nodes on [-1, 1] in
// ascending order and their weights (summing to 2).
func GaussLegendre(q int) (nodes, weights []float64) {
	x := make([]float64, q)
	w := make([]float64, q)
	quad.Legendre{}.FixedLocations(x, w, -1, 1)

	idx := make([]int, q)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return x[idx[a]] < x[idx[b]] })

	nodes = make([]float64, q)
	weights = make([]float64, q)
	for i, k := range idx {
		nodes[i] = x[k]
		weights[i] = w[k]
	}
	return nodes, weights
}

// productGrid combines colatitude nodes (as cosθ values with weights summing
// to 2) with nAzimuth equally spaced azimuths.
func productGrid(cosNodes, nodeWeights []float64, nAzimuth, exact int, opts []Option) (*Grid, error) {
	pts := make([]Direction, 0, len(cosNodes)*nAzimuth)
	w := make([]float64, 0, cap(pts))
	dPhi := 2 * math.Pi / float64(nAzimuth)
	for i, x := range cosNodes {
		theta := math.Acos(x)
		for j := 0; j < nAzimuth; j++ {
			pts = append(pts, Direction{Colatitude: theta, Azimuth: float64(j) * dPhi})
			w = append(w, nodeWeights[i]*dPhi)
		}
	}
	return New(pts, w, append([]Option{WithExactOrder(exact)}, opts...)...)
}
