package array

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-spharray/sphere"
)

// FIROptions configures RadialFilterFIR.
type FIROptions struct {
	Radial RadialOptions
	// Length is the FIR length, a power of two >= 16. Default 512.
	Length int
	// SampleRate in Hz. Default 48000.
	SampleRate float64
	// Radius of the array in meters. Default 0.042.
	Radius float64
	// SpeedOfSound in m/s. Default 343.
	SpeedOfSound float64
}

// DefaultFIROptions returns 512-tap filters for a 4.2 cm rigid array at
// 48 kHz.
func DefaultFIROptions() FIROptions {
	return FIROptions{
		Radial:       DefaultRadialOptions(),
		Length:       512,
		SampleRate:   48000,
		Radius:       0.042,
		SpeedOfSound: 343,
	}
}

// FIRResult holds one impulse response per degree and the degrees that hit
// the gain limit at any frequency.
type FIRResult struct {
	Taps     [][]float64
	Warnings []sphere.Warning
}

// RadialFilterFIR designs linear-phase FIR radial filters. The regularized
// filter response is sampled on the FFT grid 0..fs/2, made Hermitian,
// inverse transformed, centered and Hann tapered.
func RadialFilterFIR(nMax int, opts FIROptions) (FIRResult, error) {
	if err := validateOrder(nMax); err != nil {
		return FIRResult{}, err
	}
	def := DefaultFIROptions()
	if opts.Length == 0 {
		opts.Length = def.Length
	}
	if opts.SampleRate <= 0 {
		opts.SampleRate = def.SampleRate
	}
	if opts.Radius <= 0 {
		opts.Radius = def.Radius
	}
	if opts.SpeedOfSound <= 0 {
		opts.SpeedOfSound = def.SpeedOfSound
	}
	size := opts.Length
	if size < 16 || size&(size-1) != 0 {
		return FIRResult{}, fmt.Errorf("array: FIR length must be a power of two >= 16: %d", size)
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return FIRResult{}, fmt.Errorf("array: failed to create FFT plan: %w", err)
	}

	spectra := make([][]complex128, nMax+1)
	for n := range spectra {
		spectra[n] = make([]complex128, size)
	}
	limited := make(map[int]float64)

	half := size / 2
	for k := 0; k <= half; k++ {
		f := float64(k) * opts.SampleRate / float64(size)
		kr := 2 * math.Pi * f * opts.Radius / opts.SpeedOfSound
		res, err := RadialFilter(nMax, kr, opts.Radial)
		if err != nil {
			return FIRResult{}, err
		}
		for _, w := range res.Warnings {
			if _, ok := limited[w.Degree]; !ok {
				limited[w.Degree] = f
			}
		}
		// Delay by half the length so the response is centered.
		delay := cmplx.Rect(1, -math.Pi*float64(k))
		for n, d := range res.Filters {
			v := d * delay
			if k == 0 || k == half {
				v = complex(real(v), 0)
			}
			spectra[n][k] = v
			if k > 0 && k < half {
				spectra[n][size-k] = cmplx.Conj(v)
			}
		}
	}

	taper := hann(size)
	out := FIRResult{Taps: make([][]float64, nMax+1)}
	buf := make([]complex128, size)
	for n, spec := range spectra {
		if err := plan.Inverse(buf, spec); err != nil {
			return FIRResult{}, fmt.Errorf("array: inverse FFT failed: %w", err)
		}
		taps := make([]float64, size)
		for i, v := range buf {
			taps[i] = real(v)
		}
		vecmath.MulBlockInPlace(taps, taper)
		out.Taps[n] = taps
	}

	degrees := make([]int, 0, len(limited))
	for n := range limited {
		degrees = append(degrees, n)
	}
	sort.Ints(degrees)
	for _, n := range degrees {
		out.Warnings = append(out.Warnings, sphere.Warning{
			Kind:    sphere.WarningNearSingular,
			Degree:  n,
			Message: fmt.Sprintf("gain limited from %.0f Hz", limited[n]),
		})
	}
	return out, nil
}

// hann returns a periodic Hann window of the given size.
func hann(size int) []float64 {
	w := make([]float64, size)
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(size))
	}
	return w
}
