package array

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-spharray/sphere/special"
)

var errZeroResponse = errors.New("array: weights have zero on-axis response")

// MaxDirectivityWeights returns d_n = 1, the hypercardioid of order nMax.
func MaxDirectivityWeights(nMax int) []float64 {
	if nMax < 0 {
		return nil
	}
	w := make([]float64, nMax+1)
	for i := range w {
		w[i] = 1
	}
	return w
}

// MaxREWeights returns the max-rE weights d_n = P_n(cos(137.9°/(nMax+1.51))).
func MaxREWeights(nMax int) []float64 {
	if nMax < 0 {
		return nil
	}
	x := math.Cos(137.9 * math.Pi / 180 / (float64(nMax) + 1.51))
	return special.LegendreSeries(nMax, x)
}

// InPhaseWeights returns d_n = N!(N+1)! / ((N+n+1)!(N−n)!), a pattern
// without side lobes.
func InPhaseWeights(nMax int) []float64 {
	if nMax < 0 {
		return nil
	}
	w := make([]float64, nMax+1)
	w[0] = 1
	for n := 0; n < nMax; n++ {
		w[n+1] = w[n] * float64(nMax-n) / float64(nMax+n+2)
	}
	return w
}

// NormalizeWeights scales w so the beam pattern is 1 on axis, that is
// Σ d_n(2n+1)/4π = 1.
func NormalizeWeights(w []float64) ([]float64, error) {
	sum := 0.0
	for n, d := range w {
		sum += d * float64(2*n+1)
	}
	sum /= 4 * math.Pi
	if sum == 0 || math.IsNaN(sum) {
		return nil, errZeroResponse
	}
	out := make([]float64, len(w))
	for n, d := range w {
		out[n] = d / sum
	}
	return out, nil
}

// DirectivityIndex returns the directivity index of an axisymmetric beam
// in dB: 10·log10((Σ d_n(2n+1))² / Σ d_n²(2n+1)).
func DirectivityIndex(w []float64) float64 {
	var num, den float64
	for n, d := range w {
		k := float64(2*n + 1)
		num += d * k
		den += d * d * k
	}
	if den == 0 {
		return math.Inf(-1)
	}
	return 10 * math.Log10(num*num/den)
}

// BeamPattern evaluates Σ d_n (2n+1)/4π P_n(cos γ) at each angle γ from the
// look direction.
func BeamPattern(w []float64, angles []float64) []float64 {
	if len(w) == 0 {
		return make([]float64, len(angles))
	}
	nMax := len(w) - 1
	out := make([]float64, len(angles))
	for i, g := range angles {
		p := special.LegendreSeries(nMax, math.Cos(g))
		acc := 0.0
		for n, d := range w {
			acc += d * float64(2*n+1) * p[n]
		}
		out[i] = acc / (4 * math.Pi)
	}
	return out
}
