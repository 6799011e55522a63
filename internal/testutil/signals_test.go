package testutil

import "testing"

func TestDeterministicCoefficientsReproducible(t *testing.T) {
	a := DeterministicCoefficients(7, 16)
	b := DeterministicCoefficients(7, 16)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("index %d: %v != %v", i, a[i], b[i])
		}
		if real(a[i]) < -1 || real(a[i]) >= 1 || imag(a[i]) < -1 || imag(a[i]) >= 1 {
			t.Fatalf("index %d out of range: %v", i, a[i])
		}
	}
}

func TestDeterministicRealReproducible(t *testing.T) {
	a := DeterministicReal(3, 8)
	b := DeterministicReal(3, 8)
	RequireSliceNearlyEqual(t, a, b, 0)
}

func TestToComplexAndConstant(t *testing.T) {
	c := ToComplex([]float64{1, -2})
	if c[0] != 1 || c[1] != -2 {
		t.Fatalf("ToComplex = %v", c)
	}
	k := Constant(2+1i, 3)
	if len(k) != 3 || k[2] != 2+1i {
		t.Fatalf("Constant = %v", k)
	}
}
