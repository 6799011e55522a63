package transform

import (
	"errors"
	"math/cmplx"
	"sync"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-spharray/sphere"
	"github.com/cwbudde/algo-spharray/sphere/basis"
	"github.com/cwbudde/algo-spharray/sphere/grid"
	"github.com/cwbudde/algo-spharray/sphere/indexing"
)

// ErrRealBasisRequired is returned by the real-valued entry points of an
// engine configured for the complex basis.
var ErrRealBasisRequired = errors.New("transform: real-valued transform requires the real basis")

// Result is the outcome of a forward transform.
type Result struct {
	Coefficients []complex128
	Warnings     []sphere.Warning
}

// RealResult is the outcome of a real-valued forward transform.
type RealResult struct {
	Coefficients []float64
	Warnings     []sphere.Warning
}

// Plan is an immutable, precomputed transform for one grid, order and basis
// type. Plans are safe for concurrent use.
type Plan struct {
	grid     *grid.Grid
	nMax     int
	typ      basis.Type
	method   Method
	basis    *basis.Matrix
	weights  []float64
	ring     *ringPath
	solver   *solver
	warnings []sphere.Warning

	eval      *basis.Evaluator
	condOnce  sync.Once
	condition float64
	condErr   error
}

// Order returns the maximum spherical harmonic degree.
func (p *Plan) Order() int { return p.nMax }

// BasisType returns the basis convention of the coefficients.
func (p *Plan) BasisType() basis.Type { return p.typ }

// Method returns the resolved forward method, never Auto.
func (p *Plan) Method() Method { return p.method }

// Points returns the number of samples the plan expects.
func (p *Plan) Points() int { return p.grid.Len() }

// NumCoefficients returns (N+1)².
func (p *Plan) NumCoefficients() int { return indexing.NumCoefficients(p.nMax) }

// Basis returns the basis matrix.
func (p *Plan) Basis() *basis.Matrix { return p.basis }

// UsesRingFFT reports whether forward transforms run on the ring FFT path.
func (p *Plan) UsesRingFFT() bool { return p.ring != nil }

// Regularized reports whether least-squares regularization is active.
func (p *Plan) Regularized() bool { return p.solver != nil && p.solver.regularized }

// Warnings returns a copy of the warnings attached at plan time.
func (p *Plan) Warnings() []sphere.Warning {
	if len(p.warnings) == 0 {
		return nil
	}
	out := make([]sphere.Warning, len(p.warnings))
	copy(out, p.warnings)
	return out
}

// Condition returns the condition number of the basis matrix. It is computed
// when the plan is built for least squares and on first use otherwise.
func (p *Plan) Condition() (float64, error) {
	if p.solver != nil {
		return p.solver.condition, nil
	}
	p.condOnce.Do(func() {
		b := p.basis
		if p.typ != basis.Real {
			// The real and complex bases differ by a unitary map and share
			// their singular values.
			b, p.condErr = p.eval.Evaluate(p.grid, p.nMax, basis.Real)
			if p.condErr != nil {
				return
			}
		}
		p.condition, p.condErr = conditionOf(b.Dense())
	})
	return p.condition, p.condErr
}

// SingularValues returns the singular values of a least-squares plan in
// decreasing order, nil for quadrature plans.
func (p *Plan) SingularValues() []float64 {
	if p.solver == nil {
		return nil
	}
	out := make([]float64, len(p.solver.singular))
	copy(out, p.solver.singular)
	return out
}

// Forward computes the coefficients of samples.
func (p *Plan) Forward(samples []complex128) (Result, error) {
	if err := sphere.CheckLen("samples", p.grid.Len(), len(samples)); err != nil {
		return Result{}, err
	}
	coeffs := make([]complex128, p.NumCoefficients())
	var err error
	switch p.method {
	case LeastSquares:
		coeffs, err = p.leastSquares(coeffs, samples)
	default:
		coeffs, err = p.quadrature(coeffs, samples)
	}
	if err != nil {
		return Result{}, err
	}
	return Result{Coefficients: coeffs, Warnings: p.Warnings()}, nil
}

// Inverse synthesizes samples on the grid from coefficients.
func (p *Plan) Inverse(coeffs []complex128) ([]complex128, error) {
	if err := sphere.CheckLen("coefficients", p.NumCoefficients(), len(coeffs)); err != nil {
		return nil, err
	}
	rows, cols := p.basis.Dims()
	out := make([]complex128, rows)

	if p.typ == basis.Real {
		re, im := splitComplex(coeffs)
		var sRe, sIm mat.VecDense
		sRe.MulVec(p.basis.Dense(), mat.NewVecDense(cols, re))
		sIm.MulVec(p.basis.Dense(), mat.NewVecDense(cols, im))
		for i := range out {
			out[i] = complex(sRe.AtVec(i), sIm.AtVec(i))
		}
		return out, nil
	}

	raw := p.basis.RawComplex()
	for i := range out {
		row := raw[i*cols : (i+1)*cols]
		var acc complex128
		for k, b := range row {
			acc += b * coeffs[k]
		}
		out[i] = acc
	}
	return out, nil
}

func (p *Plan) quadrature(dst, samples []complex128) ([]complex128, error) {
	if p.ring != nil {
		p.ring.forward(dst, samples)
		if p.typ == basis.Real {
			return basis.ComplexToReal(dst)
		}
		return dst, nil
	}

	rows, cols := p.basis.Dims()
	if p.typ == basis.Real {
		re, im := splitComplex(samples)
		vecmath.MulBlockInPlace(re, p.weights)
		vecmath.MulBlockInPlace(im, p.weights)
		var cRe, cIm mat.VecDense
		cRe.MulVec(p.basis.Dense().T(), mat.NewVecDense(rows, re))
		cIm.MulVec(p.basis.Dense().T(), mat.NewVecDense(rows, im))
		for k := range dst {
			dst[k] = complex(cRe.AtVec(k), cIm.AtVec(k))
		}
		return dst, nil
	}

	raw := p.basis.RawComplex()
	for i := 0; i < rows; i++ {
		ws := complex(p.weights[i], 0) * samples[i]
		row := raw[i*cols : (i+1)*cols]
		for k, b := range row {
			dst[k] += cmplx.Conj(b) * ws
		}
	}
	return dst, nil
}

func (p *Plan) leastSquares(dst, samples []complex128) ([]complex128, error) {
	p.solver.apply(dst, samples)
	if p.typ == basis.Real {
		return dst, nil
	}
	return basis.RealToComplex(dst)
}

func splitComplex(v []complex128) (re, im []float64) {
	re = make([]float64, len(v))
	im = make([]float64, len(v))
	for i, c := range v {
		re[i] = real(c)
		im[i] = imag(c)
	}
	return re, im
}
