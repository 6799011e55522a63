package special

import "math"

// LegendreTable evaluates all P̄_n^m for 0 <= m <= n <= nMax at one argument.
// The recursion coefficients are computed once per table, so a table should be
// reused across points. A table is not safe for concurrent use; give each
// goroutine its own.
type LegendreTable struct {
	nMax   int
	a, b   []float64 // three-term coefficients, triangular layout
	sect   []float64 // sectoral factors sqrt((2m+1)/(2m))
	values []float64
	sin    float64
}

// NewLegendreTable allocates a table for degrees up to nMax (>= 0).
func NewLegendreTable(nMax int) *LegendreTable {
	if nMax < 0 {
		nMax = 0
	}
	size := triangular(nMax)
	t := &LegendreTable{
		nMax:   nMax,
		a:      make([]float64, size),
		b:      make([]float64, size),
		sect:   make([]float64, nMax+1),
		values: make([]float64, size),
	}
	for m := 1; m <= nMax; m++ {
		t.sect[m] = math.Sqrt(float64(2*m+1) / float64(2*m))
	}
	for m := 0; m <= nMax; m++ {
		for n := m + 2; n <= nMax; n++ {
			fn, fm := float64(n), float64(m)
			den := fn*fn - fm*fm
			t.a[Index(n, m)] = math.Sqrt((4*fn*fn - 1) / den)
			t.b[Index(n, m)] = math.Sqrt((2*fn + 1) * ((fn-1)*(fn-1) - fm*fm) / ((2*fn - 3) * den))
		}
	}
	return t
}

// Index returns the triangular storage index of (n, m), m >= 0.
func Index(n, m int) int {
	return n*(n+1)/2 + m
}

func triangular(nMax int) int {
	return (nMax + 1) * (nMax + 2) / 2
}

// MaxDegree returns the largest degree held by the table.
func (t *LegendreTable) MaxDegree() int { return t.nMax }

// degreeRecurrence carries P̄_{n-1}^m and P̄_n^m while raising n at fixed m.
type degreeRecurrence struct {
	m          int
	n          int
	prev, curr float64
}

// seed starts the recursion at n = m from the closed-form sectoral value.
func (r *degreeRecurrence) seed(sectoral float64) {
	r.n = r.m
	r.prev = 0
	r.curr = sectoral
}

func (r *degreeRecurrence) step(t *LegendreTable, x float64) {
	next := 0.0
	n := r.n + 1
	if n == r.m+1 {
		next = math.Sqrt(float64(2*r.m+3)) * x * r.curr
	} else {
		idx := Index(n, r.m)
		next = t.a[idx]*x*r.curr - t.b[idx]*r.prev
	}
	r.prev, r.curr, r.n = r.curr, next, n
}

// Compute fills the table for x = cosθ. sinTheta must be sinθ >= 0; passing
// it separately keeps full precision near the poles.
func (t *LegendreTable) Compute(cosTheta, sinTheta float64) {
	t.sin = sinTheta
	sectoral := 1 / math.Sqrt(4*math.Pi)
	for m := 0; m <= t.nMax; m++ {
		if m > 0 {
			sectoral *= t.sect[m] * sinTheta
		}
		r := degreeRecurrence{m: m}
		r.seed(sectoral)
		t.values[Index(m, m)] = r.curr
		for r.n < t.nMax {
			r.step(t, cosTheta)
			t.values[Index(r.n, m)] = r.curr
		}
	}
}

// At returns P̄_n^m for the last computed argument. m may be negative, in
// which case P̄_n^{|m|} is returned.
func (t *LegendreTable) At(n, m int) float64 {
	if m < 0 {
		m = -m
	}
	if n > t.nMax || m > n {
		return 0
	}
	return t.values[Index(n, m)]
}

// Values exposes the triangular value storage. Callers must not modify it.
func (t *LegendreTable) Values() []float64 { return t.values }

// Derivative returns dP̄_n^m(cosθ)/dθ for the last computed argument, m >= 0.
func (t *LegendreTable) Derivative(n, m int) float64 {
	if m < 0 {
		m = -m
	}
	if n > t.nMax || m > n || n == 0 {
		return 0
	}
	fn, fm := float64(n), float64(m)
	up := 0.0
	if m+1 <= n {
		up = math.Sqrt((fn+fm+1)*(fn-fm)) * t.values[Index(n, m+1)]
	}
	if m == 0 {
		return -up
	}
	down := math.Sqrt((fn+fm)*(fn-fm+1)) * t.values[Index(n, m-1)]
	return 0.5 * (down - up)
}

// LegendreSeries returns the Legendre polynomials P_0(x) … P_nMax(x).
func LegendreSeries(nMax int, x float64) []float64 {
	if nMax < 0 {
		return nil
	}
	out := make([]float64, nMax+1)
	out[0] = 1
	if nMax == 0 {
		return out
	}
	out[1] = x
	for n := 1; n < nMax; n++ {
		fn := float64(n)
		out[n+1] = ((2*fn+1)*x*out[n] - fn*out[n-1]) / (fn + 1)
	}
	return out
}

// Legendre returns the Legendre polynomial P_n(x).
func Legendre(n int, x float64) float64 {
	if n < 0 {
		return 0
	}
	return LegendreSeries(n, x)[n]
}
