// Package transform implements forward and inverse spherical harmonic
// transforms on arbitrary sampling grids.
//
// An [Engine] owns a cache of [Plan] values keyed by grid identity, maximum
// order and basis type. A plan holds the basis matrix and, depending on the
// grid, either quadrature weights (optionally with a per-ring FFT fast path)
// or a regularized least-squares pseudo-inverse. Numerical degradation is
// reported as [sphere.Warning] values on the plan and on every [Result].
//
// Engines are safe for concurrent use.
package transform
