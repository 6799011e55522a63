// Package basis evaluates spherical harmonic basis matrices on sampling grids.
//
// Two orthonormal conventions are supported, both in ACN order:
//
//	Complex: Y_n^m(θ,φ) = (-1)^m·P̄_n^m(cosθ)·e^{imφ} for m >= 0 and
//	         Y_n^{-m} = (-1)^m·conj(Y_n^m) (Condon–Shortley phase included).
//	Real:    √2·P̄_n^m(cosθ)·cos(mφ) for m > 0, P̄_n^0(cosθ) for m = 0 and
//	         √2·P̄_n^{|m|}(cosθ)·sin(|m|φ) for m < 0 (no Condon–Shortley phase).
//
// P̄ is the orthonormal associated Legendre function of package special. The
// degree-0 function equals 1/√(4π) in both conventions. The two bases are
// related by a unitary matrix, see ComplexToReal and RealToComplex.
package basis
