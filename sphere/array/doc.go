// Package array implements spherical microphone array processing in the
// spherical harmonic domain: modal strength of open, rigid and cardioid
// arrays, regularized radial filters, axisymmetric beamforming, plane-wave
// decomposition and direction estimation, sound field simulation and
// rotation about the z axis.
//
// Coefficient vectors use ACN ordering and either basis type of
// package basis. Wrong vector lengths are reported as
// *sphere.DimensionMismatchError.
package array
