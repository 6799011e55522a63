package testutil

import "math/rand"

// DeterministicCoefficients returns count complex values with real and
// imaginary parts uniform in [-1, 1), from a fixed seed.
func DeterministicCoefficients(seed int64, count int) []complex128 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]complex128, count)
	for i := range out {
		out[i] = complex(rng.Float64()*2-1, rng.Float64()*2-1)
	}
	return out
}

// DeterministicReal returns count values uniform in [-1, 1) from a fixed seed.
func DeterministicReal(seed int64, count int) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, count)
	for i := range out {
		out[i] = rng.Float64()*2 - 1
	}
	return out
}

// ToComplex widens a real slice.
func ToComplex(x []float64) []complex128 {
	out := make([]complex128, len(x))
	for i, v := range x {
		out[i] = complex(v, 0)
	}
	return out
}

// Constant returns count copies of v.
func Constant(v complex128, count int) []complex128 {
	out := make([]complex128, count)
	for i := range out {
		out[i] = v
	}
	return out
}
