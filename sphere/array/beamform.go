package array

import (
	"math"
	"sync"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-spharray/sphere"
	"github.com/cwbudde/algo-spharray/sphere/basis"
	"github.com/cwbudde/algo-spharray/sphere/grid"
	"github.com/cwbudde/algo-spharray/sphere/indexing"
)

var defaultEvaluator = basis.NewEvaluator()

// Beamform steers an axisymmetric beam with per-degree weights w to look:
// y = Σ_n d_n Σ_m B_n^m(look)·a_n^m. For the coefficients of a unit plane
// wave from look and normalized weights, y = 1.
func Beamform(coeffs []complex128, nMax int, typ basis.Type, look grid.Direction, w []float64) (complex128, error) {
	if err := checkBeamInput(coeffs, nMax, w); err != nil {
		return 0, err
	}
	y, err := defaultEvaluator.EvaluateDirection(look, nMax, typ)
	if err != nil {
		return 0, err
	}
	return steer(coeffs, y, nMax, w), nil
}

// BeamformGrid steers the beam to every point of g.
func BeamformGrid(coeffs []complex128, nMax int, typ basis.Type, g *grid.Grid, w []float64) ([]complex128, error) {
	if g == nil {
		return nil, errNilGrid
	}
	if err := checkBeamInput(coeffs, nMax, w); err != nil {
		return nil, err
	}
	b, err := defaultEvaluator.Evaluate(g, nMax, typ)
	if err != nil {
		return nil, err
	}
	out := make([]complex128, g.Len())
	row := make([]complex128, indexing.NumCoefficients(nMax))
	for i := range out {
		row = b.Row(i, row)
		out[i] = steer(coeffs, row, nMax, w)
	}
	return out, nil
}

// SteeredResponse returns the output power |y|² of the beam steered to every
// point of g.
func SteeredResponse(coeffs []complex128, nMax int, typ basis.Type, g *grid.Grid, w []float64) ([]float64, error) {
	y, err := BeamformGrid(coeffs, nMax, typ, g, w)
	if err != nil {
		return nil, err
	}
	return power(y), nil
}

// PlaneWaveDecomposition returns the plane-wave amplitude arriving from each
// point of g: the maximum-directivity beam scaled by 4π/(N+1)², so a unit
// plane wave yields 1 in its direction of arrival.
func PlaneWaveDecomposition(coeffs []complex128, nMax int, typ basis.Type, g *grid.Grid) ([]complex128, error) {
	if err := validateOrder(nMax); err != nil {
		return nil, err
	}
	w := MaxDirectivityWeights(nMax)
	scale := 4 * math.Pi / float64(indexing.NumCoefficients(nMax))
	for n := range w {
		w[n] = scale
	}
	return BeamformGrid(coeffs, nMax, typ, g, w)
}

// EstimateDirection returns the point of g with the largest plane-wave
// decomposition power, and that power.
func EstimateDirection(coeffs []complex128, nMax int, typ basis.Type, g *grid.Grid) (grid.Direction, float64, error) {
	pwd, err := PlaneWaveDecomposition(coeffs, nMax, typ, g)
	if err != nil {
		return grid.Direction{}, 0, err
	}
	p := power(pwd)
	best := 0
	for i, v := range p {
		if v > p[best] {
			best = i
		}
	}
	return g.Point(best), p[best], nil
}

func checkBeamInput(coeffs []complex128, nMax int, w []float64) error {
	if err := validateCoefficients(coeffs, nMax); err != nil {
		return err
	}
	return sphere.CheckLen("beam weights", nMax+1, len(w))
}

func steer(coeffs, y []complex128, nMax int, w []float64) complex128 {
	var acc complex128
	for n := 0; n <= nMax; n++ {
		var deg complex128
		for k := n * n; k < (n+1)*(n+1); k++ {
			deg += y[k] * coeffs[k]
		}
		acc += complex(w[n], 0) * deg
	}
	return acc
}

// scratchBuf holds pooled memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	if cap(buf.data) < 2*n {
		buf.data = make([]float64, 2*n)
	}
	buf.data = buf.data[:2*n]
	return buf.data[:n], buf.data[n:], buf
}

// power returns |y|² per element.
func power(y []complex128) []float64 {
	re, im, buf := getScratch(len(y))
	defer scratchPool.Put(buf)
	for i, v := range y {
		re[i] = real(v)
		im[i] = imag(v)
	}
	out := make([]float64, len(y))
	vecmath.Power(out, re, im)
	return out
}
