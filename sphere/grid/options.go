package grid

// Option configures grid construction.
type Option func(*config)

type config struct {
	exactOrder int
	isotropic  bool
	radius     float64
}

func defaultConfig() config {
	return config{
		exactOrder: -1,
		radius:     1,
	}
}

// WithExactOrder declares that the weights integrate products of two
// harmonics up to degree n exactly. Negative values clear the declaration.
func WithExactOrder(n int) Option {
	return func(c *config) {
		if n < 0 {
			n = -1
		}
		c.exactOrder = n
	}
}

// WithIsotropicCoverage rejects point sets that lie on a single great circle.
func WithIsotropicCoverage() Option {
	return func(c *config) {
		c.isotropic = true
	}
}

// WithRadius sets the physical array radius in meters.
func WithRadius(r float64) Option {
	return func(c *config) {
		if r > 0 {
			c.radius = r
		}
	}
}

func applyOptions(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
