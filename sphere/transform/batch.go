package transform

import (
	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-spharray/sphere/grid"
)

// ForwardBatch transforms independent sample frames, for example one per
// frequency bin. Frames are processed by up to Workers goroutines; each
// writes only its own result.
func (e *Engine) ForwardBatch(g *grid.Grid, nMax int, frames [][]complex128) ([]Result, error) {
	p, err := e.Plan(g, nMax)
	if err != nil {
		return nil, err
	}
	out := make([]Result, len(frames))
	err = e.forEach(len(frames), func(i int) error {
		r, err := p.Forward(frames[i])
		if err != nil {
			return err
		}
		out[i] = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// InverseBatch synthesizes one sample frame per coefficient vector.
func (e *Engine) InverseBatch(g *grid.Grid, nMax int, coeffs [][]complex128) ([][]complex128, error) {
	p, err := e.Plan(g, nMax)
	if err != nil {
		return nil, err
	}
	out := make([][]complex128, len(coeffs))
	err = e.forEach(len(coeffs), func(i int) error {
		s, err := p.Inverse(coeffs[i])
		if err != nil {
			return err
		}
		out[i] = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (e *Engine) forEach(n int, fn func(int) error) error {
	if e.cfg.Workers <= 1 || n <= 1 {
		for i := 0; i < n; i++ {
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	}
	var g errgroup.Group
	g.SetLimit(e.cfg.Workers)
	for i := 0; i < n; i++ {
		g.Go(func() error { return fn(i) })
	}
	return g.Wait()
}
