// Package sphere holds the error and warning taxonomy shared by the spherical
// array processing packages.
//
// The numeric work lives in the sub-packages:
//   - grid: sampling grids on the unit sphere and their quadrature weights.
//   - special: associated Legendre functions and spherical Bessel/Hankel functions.
//   - basis: real and complex spherical harmonic basis matrices.
//   - transform: forward and inverse spherical harmonic transforms.
//   - array: radial filters, beamforming and plane-wave decomposition.
//
// Conventions used throughout: angles are radians, coefficients are ordered
// by ACN (n² + n + m), basis functions are orthonormal on the unit sphere and
// quadrature weights sum to 4π.
package sphere
