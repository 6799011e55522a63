package array

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-spharray/sphere/special"
)

// Type is the acoustic configuration of a spherical array.
type Type int

const (
	// Open is an acoustically transparent sphere of omnidirectional sensors.
	Open Type = iota
	// Rigid is a rigid sphere with flush-mounted sensors.
	Rigid
	// Cardioid is an open sphere of outward-facing cardioid sensors.
	Cardioid
)

func (t Type) String() string {
	switch t {
	case Open:
		return "open"
	case Rigid:
		return "rigid"
	case Cardioid:
		return "cardioid"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// ModalStrength returns b_n(kr) for n = 0..nMax. With these factors a unit
// plane wave from direction Ω has coefficients b_n·conj(Y_n^m(Ω)):
//
//	open:     4π iⁿ jₙ(kr)
//	rigid:    4π iⁿ⁺¹ / ((kr)² hₙ⁽¹⁾′(kr))
//	cardioid: 4π iⁿ (jₙ(kr) − i jₙ′(kr))
//
// At kr = 0 the rigid sphere takes its limit b_0 = 4π, b_n = 0 otherwise.
func ModalStrength(nMax int, kr float64, t Type) ([]complex128, error) {
	if err := validateOrder(nMax); err != nil {
		return nil, err
	}
	if err := validateKR(kr); err != nil {
		return nil, err
	}

	b := make([]complex128, nMax+1)
	switch t {
	case Open:
		j := special.SphericalBesselJ(nMax, kr)
		for n := range b {
			b[n] = 4 * math.Pi * special.IPow(n) * complex(j[n], 0)
		}

	case Rigid:
		if kr == 0 {
			b[0] = 4 * math.Pi
			return b, nil
		}
		dh := special.SphericalHankel1Prime(nMax, kr)
		kr2 := kr * kr
		for n := range b {
			den := complex(kr2*real(dh[n]), kr2*imag(dh[n]))
			v := 4 * math.Pi * special.IPow(n+1) / den
			// yₙ′ overflows at small kr; fall back to the kr → 0 limit.
			if den == 0 || cmplx.IsNaN(den) || cmplx.IsInf(den) || cmplx.IsNaN(v) || cmplx.IsInf(v) {
				v = 0
				if n == 0 {
					v = 4 * math.Pi
				}
			}
			b[n] = v
		}

	case Cardioid:
		j := special.SphericalBesselJ(nMax, kr)
		dj := special.SphericalBesselJPrime(nMax, kr)
		for n := range b {
			b[n] = 4 * math.Pi * special.IPow(n) * complex(j[n], -dj[n])
		}

	default:
		return nil, fmt.Errorf("array: unknown array type %d", int(t))
	}
	return b, nil
}
