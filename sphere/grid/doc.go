// Package grid describes sampling points on the unit sphere.
//
// A Grid is an immutable value object: an ordered list of directions
// (colatitude θ ∈ [0, π], azimuth φ ∈ [0, 2π)) with a parallel list of
// nonnegative quadrature weights that sum to 4π. Operations that "resample"
// a grid return a new Grid with its own identity.
//
// Generators cover the common spherical array layouts: Gauss–Legendre and
// equiangular product grids with exact weights, Platonic t-designs, Fibonacci
// spirals and the em32 capsule layout.
package grid
