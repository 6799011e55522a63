package array

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-spharray/sphere"
)

// Regularization selects how the modal strength is inverted.
type Regularization int

const (
	// Tikhonov uses conj(b)/(|b|²+λ²) with λ chosen so the gain never
	// exceeds the limit.
	Tikhonov Regularization = iota
	// SoftLimit uses the arctangent limiter (2a/π)(|b|/b)·atan(π/(2a|b|)).
	SoftLimit
	// NoRegularization inverts b directly where its gain stays below the
	// limit and falls back to Tikhonov elsewhere.
	NoRegularization
)

func (r Regularization) String() string {
	switch r {
	case Tikhonov:
		return "tikhonov"
	case SoftLimit:
		return "soft-limit"
	case NoRegularization:
		return "none"
	default:
		return fmt.Sprintf("Regularization(%d)", int(r))
	}
}

// DefaultLimitDB is the default radial filter gain limit.
const DefaultLimitDB = 20.0

// RadialOptions configures RadialFilter.
type RadialOptions struct {
	ArrayType      Type
	Regularization Regularization
	// LimitDB is the maximum filter gain relative to an ideal omni
	// response. Values <= 0 select DefaultLimitDB.
	LimitDB float64
}

// DefaultRadialOptions returns Tikhonov filters for a rigid sphere with a
// 20 dB gain limit.
func DefaultRadialOptions() RadialOptions {
	return RadialOptions{
		ArrayType:      Rigid,
		Regularization: Tikhonov,
		LimitDB:        DefaultLimitDB,
	}
}

// RadialResult holds per-degree radial filters d_n and the degrees that hit
// the gain limit.
type RadialResult struct {
	Filters  []complex128
	Warnings []sphere.Warning
}

// RadialFilter returns filters d_n ≈ 1/b_n for n = 0..nMax. A degree whose
// unregularized gain exceeds the limit, or whose modal strength vanishes, is
// reported with a WarningNearSingular and always inverted with
// regularization. The filters are finite for every kr >= 0.
func RadialFilter(nMax int, kr float64, opts RadialOptions) (RadialResult, error) {
	b, err := ModalStrength(nMax, kr, opts.ArrayType)
	if err != nil {
		return RadialResult{}, err
	}
	limitDB := opts.LimitDB
	if limitDB <= 0 {
		limitDB = DefaultLimitDB
	}
	a := math.Pow(10, limitDB/20)

	res := RadialResult{Filters: make([]complex128, len(b))}
	for n, bn := range b {
		// Normalize so an ideal omni degree has |b̃| = 1.
		bt := bn / (4 * math.Pi)
		mag := cmplx.Abs(bt)
		singular := mag == 0 || 1/mag > a

		var d complex128
		switch {
		case opts.Regularization == SoftLimit:
			d = softLimit(bt, mag, a)
		case opts.Regularization == NoRegularization && !singular:
			d = 1 / bt
		default:
			d = tikhonov(bt, mag, a)
		}
		res.Filters[n] = d / (4 * math.Pi)

		if singular {
			res.Warnings = append(res.Warnings, sphere.Warning{
				Kind:    sphere.WarningNearSingular,
				Degree:  n,
				Message: fmt.Sprintf("modal strength %.3g below gain limit %.1f dB at kr=%.4g", mag, limitDB, kr),
			})
		}
	}
	return res, nil
}

func tikhonov(b complex128, mag, a float64) complex128 {
	lambda := 1 / (2 * a)
	return cmplx.Conj(b) / complex(mag*mag+lambda*lambda, 0)
}

func softLimit(b complex128, mag, a float64) complex128 {
	if mag == 0 {
		return complex(a, 0)
	}
	phase := cmplx.Conj(b) / complex(mag, 0)
	return phase * complex(2*a/math.Pi*math.Atan(math.Pi/(2*a*mag)), 0)
}

// ApplyRadialFilter multiplies every coefficient of degree n by filters[n].
func ApplyRadialFilter(coeffs []complex128, nMax int, filters []complex128) ([]complex128, error) {
	if err := validateCoefficients(coeffs, nMax); err != nil {
		return nil, err
	}
	if err := sphere.CheckLen("radial filters", nMax+1, len(filters)); err != nil {
		return nil, err
	}
	out := make([]complex128, len(coeffs))
	for n := 0; n <= nMax; n++ {
		for k := n * n; k < (n+1)*(n+1); k++ {
			out[k] = coeffs[k] * filters[n]
		}
	}
	return out, nil
}
