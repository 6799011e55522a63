package transform

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

var errSVDFailed = errors.New("transform: singular value decomposition did not converge")

// solver is the pseudo-inverse of a real basis matrix.
type solver struct {
	pinv      *mat.Dense // coefficients × points
	condition float64
	singular  []float64
	// illConditioned is set when the condition number exceeds the threshold
	// or the system has fewer samples than coefficients.
	illConditioned bool
	regularized    bool
}

// newSolver factors b (points × coefficients) and builds its pseudo-inverse.
// Ill-conditioned systems have their small singular values treated according
// to reg; otherwise only numerically zero values are dropped.
func newSolver(b *mat.Dense, reg Regularization, threshold float64) (*solver, error) {
	rows, cols := b.Dims()

	var svd mat.SVD
	if !svd.Factorize(b, mat.SVDThin) {
		return nil, errSVDFailed
	}
	sigma := svd.Values(nil)

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	sMax := sigma[0]
	sMin := sigma[len(sigma)-1]
	cond := math.Inf(1)
	if sMin > 0 && rows >= cols {
		cond = sMax / sMin
	}

	ill := rows < cols || cond > threshold
	regularize := ill && reg != NoRegularization

	eps := float64(max(rows, cols)) * sMax * 0x1p-52
	lambda := sMax / threshold
	inv := make([]float64, len(sigma))
	for i, s := range sigma {
		switch {
		case s <= eps:
			inv[i] = 0
		case !regularize:
			inv[i] = 1 / s
		case reg == Tikhonov:
			inv[i] = s / (s*s + lambda*lambda)
		case s < lambda:
			inv[i] = 0
		default:
			inv[i] = 1 / s
		}
	}

	var scaled mat.Dense
	scaled.Mul(&v, mat.NewDiagDense(len(inv), inv))
	pinv := mat.NewDense(cols, rows, nil)
	pinv.Mul(&scaled, u.T())

	return &solver{
		pinv:           pinv,
		condition:      cond,
		singular:       sigma,
		illConditioned: ill,
		regularized:    regularize,
	}, nil
}

// conditionOf returns σmax/σmin of b, +Inf when b has fewer rows than
// columns or is rank deficient.
func conditionOf(b *mat.Dense) (float64, error) {
	rows, cols := b.Dims()
	if rows < cols {
		return math.Inf(1), nil
	}
	var svd mat.SVD
	if !svd.Factorize(b, mat.SVDNone) {
		return 0, errSVDFailed
	}
	sigma := svd.Values(nil)
	if sigma[len(sigma)-1] == 0 {
		return math.Inf(1), nil
	}
	return sigma[0] / sigma[len(sigma)-1], nil
}

// apply writes pinv·s into dst for complex samples.
func (s *solver) apply(dst, samples []complex128) {
	rows, cols := s.pinv.Dims()
	re, im := splitComplex(samples)
	var outRe, outIm mat.VecDense
	outRe.MulVec(s.pinv, mat.NewVecDense(cols, re))
	outIm.MulVec(s.pinv, mat.NewVecDense(cols, im))
	for k := 0; k < rows; k++ {
		dst[k] = complex(outRe.AtVec(k), outIm.AtVec(k))
	}
}
