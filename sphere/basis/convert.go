package basis

import (
	"math"

	"github.com/cwbudde/algo-spharray/sphere"
	"github.com/cwbudde/algo-spharray/sphere/indexing"
)

// ComplexToReal maps complex-basis coefficients to real-basis coefficients of
// the same field. The map is unitary.
func ComplexToReal(c []complex128) ([]complex128, error) {
	nMax, err := orderOf(len(c))
	if err != nil {
		return nil, err
	}
	out := make([]complex128, len(c))
	for n := 0; n <= nMax; n++ {
		out[indexing.ACN(n, 0)] = c[indexing.ACN(n, 0)]
		for m := 1; m <= n; m++ {
			pos := c[indexing.ACN(n, m)]
			neg := c[indexing.ACN(n, -m)]
			if m%2 == 1 {
				pos = -pos
			}
			out[indexing.ACN(n, m)] = (pos + neg) / math.Sqrt2
			out[indexing.ACN(n, -m)] = 1i * (pos - neg) / math.Sqrt2
		}
	}
	return out, nil
}

// RealToComplex is the inverse of ComplexToReal.
func RealToComplex(d []complex128) ([]complex128, error) {
	nMax, err := orderOf(len(d))
	if err != nil {
		return nil, err
	}
	out := make([]complex128, len(d))
	for n := 0; n <= nMax; n++ {
		out[indexing.ACN(n, 0)] = d[indexing.ACN(n, 0)]
		for m := 1; m <= n; m++ {
			cosPart := d[indexing.ACN(n, m)]
			sinPart := d[indexing.ACN(n, -m)]
			pos := (cosPart - 1i*sinPart) / math.Sqrt2
			if m%2 == 1 {
				pos = -pos
			}
			out[indexing.ACN(n, m)] = pos
			out[indexing.ACN(n, -m)] = (cosPart + 1i*sinPart) / math.Sqrt2
		}
	}
	return out, nil
}

func orderOf(n int) (int, error) {
	nMax, ok := indexing.OrderFromLength(n)
	if !ok {
		r := int(math.Sqrt(float64(n)))
		return -1, &sphere.DimensionMismatchError{What: "coefficients", Expected: max(r, 1) * max(r, 1), Actual: n}
	}
	return nMax, nil
}
