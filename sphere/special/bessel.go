package special

import "math"

// SphericalBesselJ returns j_0(x) … j_nMax(x).
//
// Values are computed by Miller's downward recursion, normalized against the
// closed forms of j_0 or j_1, which stays accurate for n > x where upward
// recursion loses all digits. Below smallArgument the power series is used;
// its terms underflow to 0 where the recursion would overflow.
func SphericalBesselJ(nMax int, x float64) []float64 {
	if nMax < 0 {
		return nil
	}
	out := make([]float64, nMax+1)
	if x == 0 {
		out[0] = 1
		return out
	}

	ax := math.Abs(x)
	if ax < smallArgument {
		besselJSeries(out, ax)
	} else {
		besselJMiller(out, ax)
	}
	if x < 0 {
		for i := 1; i < len(out); i += 2 {
			out[i] = -out[i]
		}
	}
	return out
}

const smallArgument = 1e-3

// besselJSeries evaluates j_n(x) = xⁿ/(2n+1)!!·(1 − x²/(2(2n+3)) + x⁴/(8(2n+3)(2n+5))).
// The omitted terms are O(x⁶) relative to the leading one.
func besselJSeries(out []float64, x float64) {
	x2 := x * x
	lead := 1.0
	for n := range out {
		if n > 0 {
			lead *= x / float64(2*n+1)
		}
		a := float64(2*n + 3)
		b := float64(2*n + 5)
		out[n] = lead * (1 - x2/(2*a) + x2*x2/(8*a*b))
	}
}

func besselJMiller(out []float64, ax float64) {
	nMax := len(out) - 1
	top := nMax
	if int(ax) > top {
		top = int(ax)
	}
	start := top + 20 + int(math.Sqrt(40*float64(top+1)))

	const (
		rescaleAbove = 1e250
		rescale      = 1e-250
	)

	next, curr := 0.0, 1e-30
	for k := start; k > 0; k-- {
		prev := float64(2*k+1)/ax*curr - next
		next, curr = curr, prev
		if k-1 <= nMax {
			out[k-1] = curr
		}
		if math.Abs(curr) > rescaleAbove {
			curr *= rescale
			next *= rescale
			for i := k - 1; i <= nMax; i++ {
				out[i] *= rescale
			}
		}
	}

	s, c := math.Sincos(ax)
	j0 := s / ax
	j1 := s/(ax*ax) - c/ax
	scale := j0 / curr
	if math.Abs(j0) < math.Abs(j1) {
		scale = j1 / next
	}
	for i := range out {
		out[i] *= scale
	}
}

// SphericalBesselY returns y_0(x) … y_nMax(x) for x > 0 by upward recursion,
// which is stable for the second kind. x <= 0 yields -Inf.
func SphericalBesselY(nMax int, x float64) []float64 {
	if nMax < 0 {
		return nil
	}
	out := make([]float64, nMax+1)
	if x <= 0 {
		for i := range out {
			out[i] = math.Inf(-1)
		}
		return out
	}
	s, c := math.Sincos(x)
	out[0] = -c / x
	if nMax == 0 {
		return out
	}
	out[1] = -c/(x*x) - s/x
	for n := 1; n < nMax; n++ {
		out[n+1] = float64(2*n+1)/x*out[n] - out[n-1]
	}
	return out
}

// SphericalBesselJPrime returns j_n'(x) for n = 0 … nMax.
func SphericalBesselJPrime(nMax int, x float64) []float64 {
	if nMax < 0 {
		return nil
	}
	if x == 0 {
		out := make([]float64, nMax+1)
		if nMax >= 1 {
			out[1] = 1.0 / 3
		}
		return out
	}
	return derivative(SphericalBesselJ(nMax+1, x), x)
}

// SphericalBesselYPrime returns y_n'(x) for n = 0 … nMax, x > 0.
func SphericalBesselYPrime(nMax int, x float64) []float64 {
	if nMax < 0 {
		return nil
	}
	return derivative(SphericalBesselY(nMax+1, x), x)
}

// SphericalHankel1 returns h_n^(1)(x) = j_n(x) + i·y_n(x).
func SphericalHankel1(nMax int, x float64) []complex128 {
	return combine(SphericalBesselJ(nMax, x), SphericalBesselY(nMax, x), 1)
}

// SphericalHankel2 returns h_n^(2)(x) = j_n(x) - i·y_n(x).
func SphericalHankel2(nMax int, x float64) []complex128 {
	return combine(SphericalBesselJ(nMax, x), SphericalBesselY(nMax, x), -1)
}

// SphericalHankel1Prime returns the derivative of h_n^(1) at x > 0.
func SphericalHankel1Prime(nMax int, x float64) []complex128 {
	return combine(SphericalBesselJPrime(nMax, x), SphericalBesselYPrime(nMax, x), 1)
}

// SphericalHankel2Prime returns the derivative of h_n^(2) at x > 0.
func SphericalHankel2Prime(nMax int, x float64) []complex128 {
	return combine(SphericalBesselJPrime(nMax, x), SphericalBesselYPrime(nMax, x), -1)
}

// derivative applies f_n' = f_{n-1} - (n+1)/x·f_n; f holds one extra degree.
func derivative(f []float64, x float64) []float64 {
	nMax := len(f) - 2
	out := make([]float64, nMax+1)
	out[0] = -f[1]
	for n := 1; n <= nMax; n++ {
		out[n] = f[n-1] - float64(n+1)/x*f[n]
	}
	return out
}

func combine(re, im []float64, sign float64) []complex128 {
	if re == nil {
		return nil
	}
	out := make([]complex128, len(re))
	for i := range re {
		out[i] = complex(re[i], sign*im[i])
	}
	return out
}

// IPow returns iⁿ for integer n.
func IPow(n int) complex128 {
	switch ((n % 4) + 4) % 4 {
	case 0:
		return 1
	case 1:
		return 1i
	case 2:
		return -1
	default:
		return -1i
	}
}
