package array

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-spharray/sphere/basis"
	"github.com/cwbudde/algo-spharray/sphere/grid"
	"github.com/cwbudde/algo-spharray/sphere/special"
)

// PlaneWaveCoefficients returns the coefficients of a unit-amplitude,
// order-limited plane wave arriving from dir, without modal strength:
// conj(Y_n^m(dir)) for the complex basis and R_n^m(dir) for the real one.
func PlaneWaveCoefficients(nMax int, typ basis.Type, dir grid.Direction) ([]complex128, error) {
	y, err := defaultEvaluator.EvaluateDirection(dir, nMax, typ)
	if err != nil {
		return nil, err
	}
	if typ == basis.Complex {
		for i, v := range y {
			y[i] = cmplx.Conj(v)
		}
	}
	return y, nil
}

// PlaneWavePressure simulates the pressure of a unit plane wave from dir on
// the sensors of g, truncated at degree nMax:
// p(r̂) = Σ_n b_n(kr) Σ_m conj(Y_n^m(dir)) Y_n^m(r̂) = Σ_n b_n (2n+1)/4π P_n(cos γ).
func PlaneWavePressure(g *grid.Grid, nMax int, kr float64, t Type, dir grid.Direction) ([]complex128, error) {
	if g == nil {
		return nil, errNilGrid
	}
	b, err := ModalStrength(nMax, kr, t)
	if err != nil {
		return nil, err
	}
	out := make([]complex128, g.Len())
	for i := range out {
		cosGamma := math.Cos(grid.AngularDistance(g.Point(i), dir))
		p := special.LegendreSeries(nMax, cosGamma)
		var acc complex128
		for n, bn := range b {
			acc += bn * complex(float64(2*n+1)/(4*math.Pi)*p[n], 0)
		}
		out[i] = acc
	}
	return out, nil
}
