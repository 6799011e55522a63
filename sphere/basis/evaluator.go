package basis

import (
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-spharray/sphere"
	"github.com/cwbudde/algo-spharray/sphere/grid"
	"github.com/cwbudde/algo-spharray/sphere/indexing"
	"github.com/cwbudde/algo-spharray/sphere/special"
)

// Evaluator computes basis matrices. It holds only configuration and is safe
// for concurrent use.
type Evaluator struct {
	cfg config
}

// NewEvaluator returns an Evaluator configured by opts.
func NewEvaluator(opts ...Option) *Evaluator {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Evaluator{cfg: cfg}
}

// MaxStableOrder returns the configured order ceiling.
func (e *Evaluator) MaxStableOrder() int { return e.cfg.maxStableOrder }

// Workers returns the configured goroutine count.
func (e *Evaluator) Workers() int { return e.cfg.workers }

func errNilGrid() error {
	return &sphere.InvalidGridError{Reason: "nil grid", Index: -1}
}

// CheckOrder returns *sphere.UnsupportedOrderError if nMax is negative or
// above the ceiling.
func (e *Evaluator) CheckOrder(nMax int) error {
	if nMax < 0 || nMax > e.cfg.maxStableOrder {
		return &sphere.UnsupportedOrderError{Order: nMax, Ceiling: e.cfg.maxStableOrder}
	}
	return nil
}

// Evaluate returns the basis matrix of g for degrees up to nMax.
func (e *Evaluator) Evaluate(g *grid.Grid, nMax int, typ Type) (*Matrix, error) {
	if g == nil {
		return nil, errNilGrid()
	}
	if err := e.CheckOrder(nMax); err != nil {
		return nil, err
	}
	out := newMatrix(typ, g.Len(), indexing.NumCoefficients(nMax))
	err := e.forRows(g.Len(), nMax, func(tab *special.LegendreTable, i int) {
		p := g.Point(i)
		tab.Compute(math.Cos(p.Colatitude), math.Sin(p.Colatitude))
		if typ == Real {
			fillReal(out.re.RawRowView(i), p.Azimuth, nMax, tab.At)
		} else {
			fillComplex(out.cx[i*out.cols:(i+1)*out.cols], p.Azimuth, nMax, tab.At)
		}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// EvaluateDirection returns the basis functions at one direction. Real bases
// yield zero imaginary parts.
func (e *Evaluator) EvaluateDirection(d grid.Direction, nMax int, typ Type) ([]complex128, error) {
	if err := e.CheckOrder(nMax); err != nil {
		return nil, err
	}
	tab := special.NewLegendreTable(nMax)
	tab.Compute(math.Cos(d.Colatitude), math.Sin(d.Colatitude))
	out := make([]complex128, indexing.NumCoefficients(nMax))
	if typ == Real {
		row := make([]float64, len(out))
		fillReal(row, d.Azimuth, nMax, tab.At)
		for i, v := range row {
			out[i] = complex(v, 0)
		}
		return out, nil
	}
	fillComplex(out, d.Azimuth, nMax, tab.At)
	return out, nil
}

// EvaluateGradient returns the θ- and φ-derivatives of every basis function
// on g. The φ-derivative is not divided by sinθ, so it stays finite at the
// poles.
func (e *Evaluator) EvaluateGradient(g *grid.Grid, nMax int, typ Type) (dTheta, dPhi *Matrix, err error) {
	if g == nil {
		return nil, nil, errNilGrid()
	}
	if err := e.CheckOrder(nMax); err != nil {
		return nil, nil, err
	}
	cols := indexing.NumCoefficients(nMax)
	dTheta = newMatrix(typ, g.Len(), cols)
	dPhi = newMatrix(typ, g.Len(), cols)
	err = e.forRows(g.Len(), nMax, func(tab *special.LegendreTable, i int) {
		p := g.Point(i)
		tab.Compute(math.Cos(p.Colatitude), math.Sin(p.Colatitude))
		if typ == Real {
			fillReal(dTheta.re.RawRowView(i), p.Azimuth, nMax, tab.Derivative)
			fillRealAzimuthDerivative(dPhi.re.RawRowView(i), tab, p.Azimuth, nMax)
			return
		}
		fillComplex(dTheta.cx[i*cols:(i+1)*cols], p.Azimuth, nMax, tab.Derivative)
		row := dPhi.cx[i*cols : (i+1)*cols]
		fillComplex(row, p.Azimuth, nMax, tab.At)
		for n := 0; n <= nMax; n++ {
			for m := -n; m <= n; m++ {
				row[indexing.ACN(n, m)] *= complex(0, float64(m))
			}
		}
	})
	if err != nil {
		return nil, nil, err
	}
	return dTheta, dPhi, nil
}

// forRows runs fn for every row index. Rows are split into contiguous chunks,
// one LegendreTable per chunk; each row is written by exactly one goroutine,
// so the result does not depend on the worker count.
func (e *Evaluator) forRows(rows, nMax int, fn func(*special.LegendreTable, int)) error {
	workers := e.cfg.workers
	if workers > rows {
		workers = rows
	}
	if workers <= 1 {
		tab := special.NewLegendreTable(nMax)
		for i := 0; i < rows; i++ {
			fn(tab, i)
		}
		return nil
	}

	chunk := (rows + workers - 1) / workers
	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < rows; start += chunk {
		end := min(start+chunk, rows)
		g.Go(func() error {
			tab := special.NewLegendreTable(nMax)
			for i := start; i < end; i++ {
				fn(tab, i)
			}
			return nil
		})
	}
	return g.Wait()
}

type legendreFunc func(n, m int) float64

func fillComplex(dst []complex128, phi float64, nMax int, p legendreFunc) {
	for m := 0; m <= nMax; m++ {
		s, c := math.Sincos(float64(m) * phi)
		sign := 1.0
		if m%2 == 1 {
			sign = -1
		}
		for n := m; n <= nMax; n++ {
			v := p(n, m)
			dst[indexing.ACN(n, m)] = complex(sign*v*c, sign*v*s)
			if m > 0 {
				dst[indexing.ACN(n, -m)] = complex(v*c, -v*s)
			}
		}
	}
}

func fillReal(dst []float64, phi float64, nMax int, p legendreFunc) {
	for m := 0; m <= nMax; m++ {
		if m == 0 {
			for n := 0; n <= nMax; n++ {
				dst[indexing.ACN(n, 0)] = p(n, 0)
			}
			continue
		}
		s, c := math.Sincos(float64(m) * phi)
		for n := m; n <= nMax; n++ {
			v := math.Sqrt2 * p(n, m)
			dst[indexing.ACN(n, m)] = v * c
			dst[indexing.ACN(n, -m)] = v * s
		}
	}
}

func fillRealAzimuthDerivative(dst []float64, tab *special.LegendreTable, phi float64, nMax int) {
	for m := 1; m <= nMax; m++ {
		s, c := math.Sincos(float64(m) * phi)
		fm := float64(m)
		for n := m; n <= nMax; n++ {
			v := math.Sqrt2 * tab.At(n, m)
			dst[indexing.ACN(n, m)] = -fm * v * s
			dst[indexing.ACN(n, -m)] = fm * v * c
		}
	}
}
