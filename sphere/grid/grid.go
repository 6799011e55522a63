package grid

import (
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-spharray/sphere"
)

// FullSphere is the area of the unit sphere; weights are normalized to it.
const FullSphere = 4 * math.Pi

var nextID atomic.Uint64

// Grid is an immutable set of sampling directions with quadrature weights.
// It is safe for concurrent read access.
type Grid struct {
	id         uint64
	points     []Direction
	weights    []float64
	exactOrder int
	radius     float64
	rings      []Ring
	ringsOK    bool
}

// New validates points and weights and returns a Grid.
//
// Azimuths are wrapped into [0, 2π). A nil weights slice assigns equal
// weights. Weights are rescaled to sum to 4π.
func New(points []Direction, weights []float64, opts ...Option) (*Grid, error) {
	cfg := applyOptions(opts)

	if len(points) == 0 {
		return nil, &sphere.InvalidGridError{Reason: "no points", Index: -1}
	}

	pts := make([]Direction, len(points))
	for i, p := range points {
		if math.IsNaN(p.Colatitude) || math.IsInf(p.Colatitude, 0) ||
			math.IsNaN(p.Azimuth) || math.IsInf(p.Azimuth, 0) {
			return nil, &sphere.InvalidGridError{Reason: "non-finite angle", Index: i}
		}
		if p.Colatitude < 0 || p.Colatitude > math.Pi {
			return nil, &sphere.InvalidGridError{Reason: "colatitude outside [0, π]", Index: i}
		}
		pts[i] = Direction{Colatitude: p.Colatitude, Azimuth: WrapAzimuth(p.Azimuth)}
	}

	w, err := normalizeWeights(weights, len(pts))
	if err != nil {
		return nil, err
	}

	if err := checkDuplicates(pts); err != nil {
		return nil, err
	}

	if cfg.isotropic {
		if err := checkCoverage(pts); err != nil {
			return nil, err
		}
	}

	g := &Grid{
		id:         nextID.Add(1),
		points:     pts,
		weights:    w,
		exactOrder: cfg.exactOrder,
		radius:     cfg.radius,
	}
	g.rings, g.ringsOK = detectRings(pts, w)
	return g, nil
}

func normalizeWeights(weights []float64, n int) ([]float64, error) {
	w := make([]float64, n)
	if weights == nil {
		for i := range w {
			w[i] = FullSphere / float64(n)
		}
		return w, nil
	}
	if len(weights) != n {
		return nil, &sphere.InvalidGridError{Reason: "weight count does not match point count", Index: -1}
	}

	sum := 0.0
	for i, v := range weights {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return nil, &sphere.InvalidGridError{Reason: "weight must be finite and nonnegative", Index: i}
		}
		sum += v
	}
	if sum == 0 {
		return nil, &sphere.InvalidGridError{Reason: "weights sum to zero", Index: -1}
	}

	scale := FullSphere / sum
	for i, v := range weights {
		w[i] = v * scale
	}
	return w, nil
}

// ID returns the process-unique identity of the grid.
func (g *Grid) ID() uint64 { return g.id }

// Len returns the number of points.
func (g *Grid) Len() int { return len(g.points) }

// Point returns point i.
func (g *Grid) Point(i int) Direction { return g.points[i] }

// Points returns a copy of all points.
func (g *Grid) Points() []Direction {
	out := make([]Direction, len(g.points))
	copy(out, g.points)
	return out
}

// Colatitude returns the colatitude of point i.
func (g *Grid) Colatitude(i int) float64 { return g.points[i].Colatitude }

// Azimuth returns the azimuth of point i.
func (g *Grid) Azimuth(i int) float64 { return g.points[i].Azimuth }

// Weight returns the quadrature weight of point i.
func (g *Grid) Weight(i int) float64 { return g.weights[i] }

// Weights returns a copy of the quadrature weights.
func (g *Grid) Weights() []float64 {
	out := make([]float64, len(g.weights))
	copy(out, g.weights)
	return out
}

// ExactOrder returns the largest order the weights integrate exactly, or -1.
func (g *Grid) ExactOrder() int { return g.exactOrder }

// HasQuadrature reports whether the weights are exact for order n.
func (g *Grid) HasQuadrature(n int) bool {
	return g.exactOrder >= 0 && n <= g.exactOrder
}

// Radius returns the physical array radius in meters (1 if unset).
func (g *Grid) Radius() float64 { return g.radius }

// Rings returns the iso-latitude rings of the grid. ok is false unless every
// point belongs to a ring with equally spaced azimuths and equal weights. A
// ring has at least two points, except at the poles.
func (g *Grid) Rings() (rings []Ring, ok bool) {
	if !g.ringsOK {
		return nil, false
	}
	return g.rings, true
}

// Cartesian returns the unit vectors of all points as separate x, y, z slices.
func (g *Grid) Cartesian() (x, y, z []float64) {
	x = make([]float64, len(g.points))
	y = make([]float64, len(g.points))
	z = make([]float64, len(g.points))
	for i, p := range g.points {
		x[i], y[i], z[i] = p.Cartesian()
	}
	return x, y, z
}

// WithWeights returns a grid with the same points and new weights. The exact
// order is cleared unless opts set it again.
func (g *Grid) WithWeights(weights []float64, opts ...Option) (*Grid, error) {
	return New(g.points, weights, append([]Option{WithRadius(g.radius)}, opts...)...)
}

// Subset returns a grid made of the selected points. Weights are renormalized
// and the exact order is cleared.
func (g *Grid) Subset(indices []int) (*Grid, error) {
	pts := make([]Direction, len(indices))
	w := make([]float64, len(indices))
	for i, idx := range indices {
		if idx < 0 || idx >= len(g.points) {
			return nil, &sphere.InvalidGridError{Reason: "subset index out of range", Index: idx}
		}
		pts[i] = g.points[idx]
		w[i] = g.weights[idx]
	}
	return New(pts, w, WithRadius(g.radius))
}

// Rotated returns the grid rotated by z-y-z Euler angles. Rotation preserves
// the weights and the exact order.
func (g *Grid) Rotated(alpha, beta, gamma float64) (*Grid, error) {
	r := eulerZYZ(alpha, beta, gamma)
	pts := make([]Direction, len(g.points))
	for i, p := range g.points {
		x, y, z := p.Cartesian()
		pts[i] = FromCartesian(
			r[0][0]*x+r[0][1]*y+r[0][2]*z,
			r[1][0]*x+r[1][1]*y+r[1][2]*z,
			r[2][0]*x+r[2][1]*y+r[2][2]*z,
		)
	}
	return New(pts, g.weights, WithRadius(g.radius), WithExactOrder(g.exactOrder))
}

// eulerZYZ returns Rz(alpha)·Ry(beta)·Rz(gamma).
func eulerZYZ(alpha, beta, gamma float64) [3][3]float64 {
	sa, ca := math.Sincos(alpha)
	sb, cb := math.Sincos(beta)
	sg, cg := math.Sincos(gamma)
	return [3][3]float64{
		{ca*cb*cg - sa*sg, -ca*cb*sg - sa*cg, ca * sb},
		{sa*cb*cg + ca*sg, -sa*cb*sg + ca*cg, sa * sb},
		{-sb * cg, sb * sg, cb},
	}
}
