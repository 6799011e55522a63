package transform

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/cwbudde/algo-spharray/sphere"
	"github.com/cwbudde/algo-spharray/sphere/basis"
	"github.com/cwbudde/algo-spharray/sphere/grid"
	"github.com/cwbudde/algo-spharray/sphere/indexing"
)

type planKey struct {
	grid  uint64
	order int
	typ   basis.Type
}

// Engine computes transforms and caches one plan per (grid, order, basis
// type). The cache is the only mutable state; it is guarded by an RW mutex
// and a plan is built at most once per key.
type Engine struct {
	cfg  Config
	eval *basis.Evaluator
	log  *Logger

	mu    sync.RWMutex
	plans map[planKey]*Plan
}

// NewEngine returns an Engine configured by opts.
func NewEngine(opts ...Option) *Engine {
	cfg := ApplyOptions(opts...)
	return &Engine{
		cfg: cfg,
		eval: basis.NewEvaluator(
			basis.WithMaxStableOrder(cfg.MaxStableOrder),
			basis.WithWorkers(cfg.Workers),
		),
		log:   cfg.Logger,
		plans: make(map[planKey]*Plan),
	}
}

// Config returns the engine configuration.
func (e *Engine) Config() Config { return e.cfg }

// Plan returns the cached plan for g and nMax, building it on first use.
func (e *Engine) Plan(g *grid.Grid, nMax int) (*Plan, error) {
	if g == nil {
		return nil, &sphere.InvalidGridError{Reason: "nil grid", Index: -1}
	}
	if err := e.eval.CheckOrder(nMax); err != nil {
		return nil, err
	}

	key := planKey{grid: g.ID(), order: nMax, typ: e.cfg.BasisType}
	e.mu.RLock()
	p, ok := e.plans[key]
	e.mu.RUnlock()
	if ok {
		return p, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if p, ok := e.plans[key]; ok {
		return p, nil
	}
	p, err := e.build(g, nMax)
	if err != nil {
		return nil, err
	}
	e.plans[key] = p
	return p, nil
}

func (e *Engine) build(g *grid.Grid, nMax int) (*Plan, error) {
	typ := e.cfg.BasisType
	log := e.log.WithGrid(g.ID(), g.Len()).WithOrder(nMax, typ.String())

	b, err := e.eval.Evaluate(g, nMax, typ)
	if err != nil {
		return nil, err
	}

	method := e.cfg.Method
	if method == Auto {
		method = LeastSquares
		if g.HasQuadrature(nMax) {
			method = Quadrature
		}
	}

	p := &Plan{
		grid:    g,
		nMax:    nMax,
		typ:     typ,
		method:  method,
		basis:   b,
		weights: g.Weights(),
		eval:    e.eval,
	}

	switch method {
	case Quadrature:
		if !g.HasQuadrature(nMax) {
			w := sphere.Warning{
				Kind:    sphere.WarningNonQuadrature,
				Degree:  -1,
				Message: fmt.Sprintf("grid weights are not exact for order %d (exact order %d)", nMax, g.ExactOrder()),
			}
			p.warnings = append(p.warnings, w)
			log.Warn("quadrature on inexact grid", slog.Int("exact_order", g.ExactOrder()))
		}
		if e.cfg.RingFFT {
			p.ring, _ = newRingPath(g, nMax)
		}

	case LeastSquares:
		rb := b
		if typ != basis.Real {
			rb, err = e.eval.Evaluate(g, nMax, basis.Real)
			if err != nil {
				return nil, err
			}
		}
		s, err := newSolver(rb.Dense(), e.cfg.Regularization, e.cfg.Threshold)
		if err != nil {
			return nil, err
		}
		p.solver = s
		if s.illConditioned {
			p.warnings = append(p.warnings, illConditionedWarning(g.Len(), nMax, s.condition, e.cfg.Threshold))
			log.Warn("ill-conditioned transform",
				slog.Float64("condition", s.condition),
				slog.String("regularization", e.cfg.Regularization.String()),
			)
		}
	}

	log.Debug("plan built",
		slog.String("method", method.String()),
		slog.Bool("ring_fft", p.ring != nil),
	)
	return p, nil
}

func illConditionedWarning(points, nMax int, cond, threshold float64) sphere.Warning {
	msg := fmt.Sprintf("condition number exceeds %.3g", threshold)
	if k := indexing.NumCoefficients(nMax); points < k {
		msg = fmt.Sprintf("underdetermined: %d samples for %d coefficients", points, k)
	}
	return sphere.Warning{
		Kind:      sphere.WarningIllConditioned,
		Condition: cond,
		Degree:    -1,
		Message:   msg,
	}
}

// Forward computes the coefficients of samples taken on g.
func (e *Engine) Forward(g *grid.Grid, nMax int, samples []complex128) (Result, error) {
	p, err := e.Plan(g, nMax)
	if err != nil {
		return Result{}, err
	}
	return p.Forward(samples)
}

// Inverse synthesizes samples on g from coefficients.
func (e *Engine) Inverse(g *grid.Grid, nMax int, coeffs []complex128) ([]complex128, error) {
	p, err := e.Plan(g, nMax)
	if err != nil {
		return nil, err
	}
	return p.Inverse(coeffs)
}

// ForwardReal transforms real samples into real-basis coefficients.
func (e *Engine) ForwardReal(g *grid.Grid, nMax int, samples []float64) (RealResult, error) {
	if e.cfg.BasisType != basis.Real {
		return RealResult{}, ErrRealBasisRequired
	}
	in := make([]complex128, len(samples))
	for i, v := range samples {
		in[i] = complex(v, 0)
	}
	res, err := e.Forward(g, nMax, in)
	if err != nil {
		return RealResult{}, err
	}
	out := make([]float64, len(res.Coefficients))
	for i, c := range res.Coefficients {
		out[i] = real(c)
	}
	return RealResult{Coefficients: out, Warnings: res.Warnings}, nil
}

// InverseReal synthesizes real samples from real-basis coefficients.
func (e *Engine) InverseReal(g *grid.Grid, nMax int, coeffs []float64) ([]float64, error) {
	if e.cfg.BasisType != basis.Real {
		return nil, ErrRealBasisRequired
	}
	in := make([]complex128, len(coeffs))
	for i, v := range coeffs {
		in[i] = complex(v, 0)
	}
	s, err := e.Inverse(g, nMax, in)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(s))
	for i, v := range s {
		out[i] = real(v)
	}
	return out, nil
}

// Invalidate drops every cached plan built for g.
func (e *Engine) Invalidate(g *grid.Grid) {
	if g == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	for k := range e.plans {
		if k.grid == g.ID() {
			delete(e.plans, k)
		}
	}
}

// Reset drops all cached plans.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	clear(e.plans)
}

// CacheLen returns the number of cached plans.
func (e *Engine) CacheLen() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.plans)
}
