// Package indexing maps spherical harmonic degree/order pairs to linear
// coefficient indices.
//
// ACN (ambisonic channel number) is the ordering used by every other package
// in this module: index = n² + n + m. SID (single index designation) is
// provided for interoperability with older ambisonic tooling.
package indexing

import "math"

// NumCoefficients returns (nMax+1)², the coefficient count up to degree nMax.
// Negative nMax yields 0.
func NumCoefficients(nMax int) int {
	if nMax < 0 {
		return 0
	}
	return (nMax + 1) * (nMax + 1)
}

// OrderFromLength returns nMax for a coefficient vector of length n.
// ok is false if n is not a perfect square.
func OrderFromLength(n int) (nMax int, ok bool) {
	if n <= 0 {
		return -1, false
	}
	r := int(math.Sqrt(float64(n)) + 0.5)
	if r*r != n {
		return -1, false
	}
	return r - 1, true
}

// ACN returns the ACN index of degree n and order m.
func ACN(n, m int) int {
	return n*n + n + m
}

// NM returns degree and order of an ACN index.
func NM(acn int) (n, m int) {
	n = int(math.Sqrt(float64(acn)))
	for n*n > acn {
		n--
	}
	for (n+1)*(n+1) <= acn {
		n++
	}
	return n, acn - n*n - n
}

// Degrees returns the degree of each ACN index up to nMax.
func Degrees(nMax int) []int {
	out := make([]int, NumCoefficients(nMax))
	for n := 0; n <= nMax; n++ {
		for m := -n; m <= n; m++ {
			out[ACN(n, m)] = n
		}
	}
	return out
}

// SID returns the SID index of degree n and order m. Within a degree the
// orders run n, -n, n-1, -(n-1), ..., 0.
func SID(n, m int) int {
	idx := n*n + 2*(n-abs(m))
	if m < 0 {
		idx++
	}
	return idx
}

// SIDToACN returns the permutation p with p[sid] = acn for all indices up to nMax.
func SIDToACN(nMax int) []int {
	out := make([]int, NumCoefficients(nMax))
	for n := 0; n <= nMax; n++ {
		for m := -n; m <= n; m++ {
			out[SID(n, m)] = ACN(n, m)
		}
	}
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
