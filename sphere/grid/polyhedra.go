package grid

import "math"

// Platonic solids. Their vertices form spherical t-designs, so equal weights
// integrate polynomials up to degree t exactly and the grids are exact for
// order floor(t/2).

// Tetrahedron returns the 4 tetrahedron vertices (2-design, order 1).
func Tetrahedron(opts ...Option) (*Grid, error) {
	v := [][3]float64{{1, 1, 1}, {1, -1, -1}, {-1, 1, -1}, {-1, -1, 1}}
	return fromVertices(v, 1, opts)
}

// Octahedron returns the 6 octahedron vertices (3-design, order 1).
func Octahedron(opts ...Option) (*Grid, error) {
	v := [][3]float64{{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1}}
	return fromVertices(v, 1, opts)
}

// Cube returns the 8 cube vertices (3-design, order 1).
func Cube(opts ...Option) (*Grid, error) {
	v := make([][3]float64, 0, 8)
	for _, a := range []float64{1, -1} {
		for _, b := range []float64{1, -1} {
			for _, c := range []float64{1, -1} {
				v = append(v, [3]float64{a, b, c})
			}
		}
	}
	return fromVertices(v, 1, opts)
}

// Icosahedron returns the 12 icosahedron vertices (5-design, order 2).
func Icosahedron(opts ...Option) (*Grid, error) {
	phi := (1 + math.Sqrt(5)) / 2
	v := make([][3]float64, 0, 12)
	for _, a := range []float64{1, -1} {
		for _, b := range []float64{1, -1} {
			v = append(v,
				[3]float64{0, a, b * phi},
				[3]float64{a, b * phi, 0},
				[3]float64{b * phi, 0, a},
			)
		}
	}
	return fromVertices(v, 2, opts)
}

// Dodecahedron returns the 20 dodecahedron vertices (5-design, order 2).
func Dodecahedron(opts ...Option) (*Grid, error) {
	phi := (1 + math.Sqrt(5)) / 2
	v := make([][3]float64, 0, 20)
	for _, a := range []float64{1, -1} {
		for _, b := range []float64{1, -1} {
			for _, c := range []float64{1, -1} {
				v = append(v, [3]float64{a, b, c})
			}
			v = append(v,
				[3]float64{0, a / phi, b * phi},
				[3]float64{a / phi, b * phi, 0},
				[3]float64{b * phi, 0, a / phi},
			)
		}
	}
	return fromVertices(v, 2, opts)
}

func fromVertices(v [][3]float64, exact int, opts []Option) (*Grid, error) {
	pts := make([]Direction, len(v))
	for i, p := range v {
		pts[i] = FromCartesian(p[0], p[1], p[2])
	}
	return New(pts, nil, append([]Option{WithExactOrder(exact)}, opts...)...)
}
