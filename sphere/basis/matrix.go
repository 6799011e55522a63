package basis

import (
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// Type selects the real or complex harmonic convention.
type Type int

const (
	// Complex selects the complex orthonormal harmonics.
	Complex Type = iota
	// Real selects the real orthonormal (ambisonic) harmonics.
	Real
)

// String returns "complex" or "real".
func (t Type) String() string {
	switch t {
	case Complex:
		return "complex"
	case Real:
		return "real"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// Matrix is an immutable basis matrix of shape points × coefficients.
type Matrix struct {
	typ        Type
	rows, cols int
	re         *mat.Dense
	cx         []complex128
}

func newMatrix(typ Type, rows, cols int) *Matrix {
	m := &Matrix{typ: typ, rows: rows, cols: cols}
	if typ == Real {
		m.re = mat.NewDense(rows, cols, nil)
	} else {
		m.cx = make([]complex128, rows*cols)
	}
	return m
}

// Type returns the basis convention.
func (m *Matrix) Type() Type { return m.typ }

// Dims returns the number of points and coefficients.
func (m *Matrix) Dims() (rows, cols int) { return m.rows, m.cols }

// At returns element (i, j).
func (m *Matrix) At(i, j int) complex128 {
	if m.typ == Real {
		return complex(m.re.At(i, j), 0)
	}
	return m.cx[i*m.cols+j]
}

// Row copies row i into dst (allocated when too short) and returns it.
func (m *Matrix) Row(i int, dst []complex128) []complex128 {
	if cap(dst) < m.cols {
		dst = make([]complex128, m.cols)
	}
	dst = dst[:m.cols]
	if m.typ == Real {
		for j, v := range m.re.RawRowView(i) {
			dst[j] = complex(v, 0)
		}
		return dst
	}
	copy(dst, m.cx[i*m.cols:(i+1)*m.cols])
	return dst
}

// Dense returns the gonum matrix backing a real basis, nil for complex.
// Callers must not modify it.
func (m *Matrix) Dense() *mat.Dense { return m.re }

// RawComplex returns the row-major storage of a complex basis, nil for real.
// Callers must not modify it.
func (m *Matrix) RawComplex() []complex128 { return m.cx }

// Gram returns Bᴴ·diag(weights)·B. For an exact quadrature grid this is the
// identity.
func (m *Matrix) Gram(weights []float64) (*Matrix, error) {
	if len(weights) != m.rows {
		return nil, fmt.Errorf("basis: gram weights length %d, want %d", len(weights), m.rows)
	}

	out := newMatrix(m.typ, m.cols, m.cols)
	if m.typ == Real {
		var scaled mat.Dense
		scaled.Mul(mat.NewDiagDense(m.rows, weights), m.re)
		out.re.Mul(m.re.T(), &scaled)
		return out, nil
	}

	for i := 0; i < m.rows; i++ {
		row := m.cx[i*m.cols : (i+1)*m.cols]
		w := complex(weights[i], 0)
		for j, a := range row {
			ca := cmplx.Conj(a) * w
			dst := out.cx[j*m.cols : (j+1)*m.cols]
			for k, b := range row {
				dst[k] += ca * b
			}
		}
	}
	return out, nil
}
