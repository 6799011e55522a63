package basis

// DefaultMaxStableOrder is the default order ceiling of the Legendre recursion.
const DefaultMaxStableOrder = 500

// Option configures an Evaluator.
type Option func(*config)

type config struct {
	maxStableOrder int
	workers        int
}

func defaultConfig() config {
	return config{
		maxStableOrder: DefaultMaxStableOrder,
		workers:        1,
	}
}

// WithMaxStableOrder sets the largest order accepted by the evaluator.
func WithMaxStableOrder(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.maxStableOrder = n
		}
	}
}

// WithWorkers sets the number of goroutines used to fill basis matrices.
func WithWorkers(n int) Option {
	return func(c *config) {
		if n >= 1 {
			c.workers = n
		}
	}
}
