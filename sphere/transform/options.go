package transform

import (
	"fmt"

	"github.com/cwbudde/algo-spharray/sphere/basis"
)

// Method selects how forward coefficients are computed.
type Method int

const (
	// Auto uses quadrature when the grid is exact for the order and least
	// squares otherwise.
	Auto Method = iota
	// Quadrature computes c = Bᴴ·diag(w)·s.
	Quadrature
	// LeastSquares solves B·c = s with an SVD pseudo-inverse.
	LeastSquares
)

func (m Method) String() string {
	switch m {
	case Auto:
		return "auto"
	case Quadrature:
		return "quadrature"
	case LeastSquares:
		return "least-squares"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// Regularization selects how small singular values are treated when the
// least-squares system is ill-conditioned.
type Regularization int

const (
	// TruncatedSVD drops singular values below σmax/threshold.
	TruncatedSVD Regularization = iota
	// Tikhonov damps singular values with σ/(σ²+λ²), λ = σmax/threshold.
	Tikhonov
	// NoRegularization inverts every nonzero singular value.
	NoRegularization
)

func (r Regularization) String() string {
	switch r {
	case TruncatedSVD:
		return "truncated-svd"
	case Tikhonov:
		return "tikhonov"
	case NoRegularization:
		return "none"
	default:
		return fmt.Sprintf("Regularization(%d)", int(r))
	}
}

// DefaultRegularizationThreshold is the condition number above which a
// least-squares plan is reported as ill-conditioned.
const DefaultRegularizationThreshold = 1e6

// Config holds engine settings.
type Config struct {
	BasisType      basis.Type
	Method         Method
	Regularization Regularization
	Threshold      float64
	Workers        int
	MaxStableOrder int
	RingFFT        bool
	Logger         *Logger
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the engine defaults: complex basis, automatic method
// selection, truncated SVD at a threshold of 1e6, one worker, ring FFT on.
func DefaultConfig() Config {
	return Config{
		BasisType:      basis.Complex,
		Method:         Auto,
		Regularization: TruncatedSVD,
		Threshold:      DefaultRegularizationThreshold,
		Workers:        1,
		MaxStableOrder: basis.DefaultMaxStableOrder,
		RingFFT:        true,
		Logger:         NoopLogger(),
	}
}

// WithBasisType selects the complex or real basis.
func WithBasisType(t basis.Type) Option {
	return func(cfg *Config) {
		if t == basis.Complex || t == basis.Real {
			cfg.BasisType = t
		}
	}
}

// WithMethod selects the forward method.
func WithMethod(m Method) Option {
	return func(cfg *Config) {
		if m >= Auto && m <= LeastSquares {
			cfg.Method = m
		}
	}
}

// WithRegularization selects the least-squares regularization.
func WithRegularization(r Regularization) Option {
	return func(cfg *Config) {
		if r >= TruncatedSVD && r <= NoRegularization {
			cfg.Regularization = r
		}
	}
}

// WithRegularizationThreshold sets the condition number threshold.
func WithRegularizationThreshold(kappa float64) Option {
	return func(cfg *Config) {
		if kappa > 0 {
			cfg.Threshold = kappa
		}
	}
}

// WithWorkers sets the goroutine count for basis evaluation and batches.
func WithWorkers(n int) Option {
	return func(cfg *Config) {
		if n >= 1 {
			cfg.Workers = n
		}
	}
}

// WithMaxStableOrder sets the largest order the engine accepts.
func WithMaxStableOrder(n int) Option {
	return func(cfg *Config) {
		if n >= 0 {
			cfg.MaxStableOrder = n
		}
	}
}

// WithRingFFT enables or disables the per-ring FFT path for quadrature plans.
func WithRingFFT(enabled bool) Option {
	return func(cfg *Config) {
		cfg.RingFFT = enabled
	}
}

// WithLogger sets the engine logger. A nil logger is ignored.
func WithLogger(l *Logger) Option {
	return func(cfg *Config) {
		if l != nil {
			cfg.Logger = l
		}
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
