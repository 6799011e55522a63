// Package special provides the special functions behind spherical harmonic
// processing: fully normalized associated Legendre functions evaluated by a
// stable three-term recursion, Legendre polynomials, and spherical Bessel and
// Hankel functions with their derivatives.
//
// Normalization: LegendreTable stores
//
//	P̄_n^m(x) = sqrt((2n+1)/(4π) · (n-m)!/(n+m)!) · P_n^m(x)
//
// for 0 <= m <= n, without the Condon–Shortley phase. With this scaling
// P̄_n^m(cosθ)·e^{imφ} has unit norm on the sphere for m = 0, and the basis
// package derives the real and complex harmonics from it.
package special
