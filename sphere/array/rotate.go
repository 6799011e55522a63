package array

import (
	"math"

	"github.com/cwbudde/algo-spharray/sphere/basis"
	"github.com/cwbudde/algo-spharray/sphere/indexing"
)

// RotateZ rotates the sound field by alpha radians about the z axis, so a
// source at azimuth φ moves to φ+alpha.
func RotateZ(coeffs []complex128, nMax int, typ basis.Type, alpha float64) ([]complex128, error) {
	if err := validateCoefficients(coeffs, nMax); err != nil {
		return nil, err
	}
	out := make([]complex128, len(coeffs))
	for n := 0; n <= nMax; n++ {
		out[indexing.ACN(n, 0)] = coeffs[indexing.ACN(n, 0)]
		for m := 1; m <= n; m++ {
			s, c := math.Sincos(float64(m) * alpha)
			pos := indexing.ACN(n, m)
			neg := indexing.ACN(n, -m)
			if typ == basis.Real {
				cs, sn := coeffs[pos], coeffs[neg]
				out[pos] = cs*complex(c, 0) - sn*complex(s, 0)
				out[neg] = cs*complex(s, 0) + sn*complex(c, 0)
				continue
			}
			out[pos] = coeffs[pos] * complex(c, -s)
			out[neg] = coeffs[neg] * complex(c, s)
		}
	}
	return out, nil
}
