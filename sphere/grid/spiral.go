package grid

import (
	"fmt"
	"math"
)

// FibonacciSpiral returns n near-uniform points on a golden-angle spiral with
// equal weights. The weights are not an exact quadrature; transforms on this
// grid use least squares.
func FibonacciSpiral(n int, opts ...Option) (*Grid, error) {
	if n <= 0 {
		return nil, fmt.Errorf("grid: spiral point count must be > 0: %d", n)
	}
	golden := math.Pi * (3 - math.Sqrt(5))
	pts := make([]Direction, n)
	for i := range pts {
		z := 1 - (2*float64(i)+1)/float64(n)
		pts[i] = Direction{Colatitude: math.Acos(z), Azimuth: WrapAzimuth(float64(i) * golden)}
	}
	return New(pts, nil, opts...)
}
