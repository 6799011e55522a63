package grid

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-spharray/sphere"
)

const (
	duplicateResolution = 1e-9
	coverageTolerance   = 1e-10
)

// checkDuplicates rejects points that coincide on the sphere. Coincidence is
// tested on quantized unit vectors so that all azimuths at a pole collapse.
func checkDuplicates(pts []Direction) error {
	seen := make(map[[3]int64]int, len(pts))
	for i, p := range pts {
		x, y, z := p.Cartesian()
		key := [3]int64{
			int64(math.Round(x / duplicateResolution)),
			int64(math.Round(y / duplicateResolution)),
			int64(math.Round(z / duplicateResolution)),
		}
		if _, ok := seen[key]; ok {
			return &sphere.InvalidGridError{Reason: "duplicate point", Index: i}
		}
		seen[key] = i
	}
	return nil
}

// checkCoverage rejects point sets confined to one great circle: their 3×3
// scatter matrix then has a zero eigenvalue (the circle's normal).
func checkCoverage(pts []Direction) error {
	if len(pts) < 3 {
		return &sphere.InvalidGridError{Reason: "fewer than 3 points cannot cover the sphere", Index: -1}
	}

	scatter := mat.NewSymDense(3, nil)
	for _, p := range pts {
		x, y, z := p.Cartesian()
		v := [3]float64{x, y, z}
		for r := 0; r < 3; r++ {
			for c := r; c < 3; c++ {
				scatter.SetSym(r, c, scatter.At(r, c)+v[r]*v[c]/float64(len(pts)))
			}
		}
	}

	var eig mat.EigenSym
	if !eig.Factorize(scatter, false) {
		return &sphere.InvalidGridError{Reason: "coverage check failed to converge", Index: -1}
	}
	vals := eig.Values(nil)
	minVal := vals[0]
	for _, v := range vals[1:] {
		minVal = math.Min(minVal, v)
	}
	if minVal < coverageTolerance {
		return &sphere.InvalidGridError{Reason: "points lie on a single great circle", Index: -1}
	}
	return nil
}
