package transform

import (
	"math"
	"math/cmplx"
	"sync"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-spharray/sphere/grid"
	"github.com/cwbudde/algo-spharray/sphere/indexing"
	"github.com/cwbudde/algo-spharray/sphere/special"
)

// ringPath evaluates quadrature sums on iso-latitude grids. The azimuthal
// sum of each ring is one DFT; the colatitude sum then runs over rings
// instead of points.
type ringPath struct {
	nMax  int
	rings []grid.Ring
	// legendre[r] holds w_r·P̄_n^m(cosθ_r) in special.Index order.
	legendre [][]float64
	pool     sync.Pool
}

type ringWorkspace struct {
	plans map[int]*algofft.Plan[complex128]
	in    []complex128
	out   []complex128
}

func newRingPath(g *grid.Grid, nMax int) (*ringPath, bool) {
	rings, ok := g.Rings()
	if !ok {
		return nil, false
	}

	tab := special.NewLegendreTable(nMax)
	leg := make([][]float64, len(rings))
	maxLen := 0
	for r, ring := range rings {
		tab.Compute(math.Cos(ring.Colatitude), math.Sin(ring.Colatitude))
		vals := make([]float64, len(tab.Values()))
		for i, v := range tab.Values() {
			vals[i] = ring.Weight * v
		}
		leg[r] = vals
		maxLen = max(maxLen, len(ring.Indices))
	}

	rp := &ringPath{nMax: nMax, rings: rings, legendre: leg}
	rp.pool.New = func() any {
		return &ringWorkspace{
			plans: make(map[int]*algofft.Plan[complex128]),
			in:    make([]complex128, maxLen),
			out:   make([]complex128, maxLen),
		}
	}
	return rp, true
}

// forward accumulates complex-basis quadrature coefficients into dst, which
// must be zeroed and hold (nMax+1)² values.
func (rp *ringPath) forward(dst, samples []complex128) {
	ws := rp.pool.Get().(*ringWorkspace)
	defer rp.pool.Put(ws)

	for r, ring := range rp.rings {
		size := len(ring.Indices)
		in := ws.in[:size]
		out := ws.out[:size]
		for j, idx := range ring.Indices {
			in[j] = samples[idx]
		}
		ws.spectrum(out, in)

		leg := rp.legendre[r]
		for m := 0; m <= rp.nMax; m++ {
			shift := cmplx.Rect(1, -float64(m)*ring.Azimuth0)
			pos := shift * out[m%size]
			neg := cmplx.Conj(shift) * out[(size-m%size)%size]
			sign := 1.0
			if m%2 == 1 {
				sign = -1
			}
			for n := m; n <= rp.nMax; n++ {
				p := leg[special.Index(n, m)]
				dst[indexing.ACN(n, m)] += complex(sign*p, 0) * pos
				if m > 0 {
					dst[indexing.ACN(n, -m)] += complex(p, 0) * neg
				}
			}
		}
	}
}

// spectrum computes out[k] = Σ in[j]·exp(-2πijk/len) with an FFT plan when
// one exists for the length, and directly otherwise.
func (ws *ringWorkspace) spectrum(out, in []complex128) {
	size := len(in)
	plan, ok := ws.plans[size]
	if !ok {
		p, err := algofft.NewPlan64(size)
		if err == nil {
			plan = p
		}
		ws.plans[size] = plan
	}
	if plan != nil {
		if err := plan.Forward(out, in); err == nil {
			return
		}
	}
	dft(out, in)
}

func dft(out, in []complex128) {
	size := len(in)
	step := -2 * math.Pi / float64(size)
	for k := range out {
		var acc complex128
		for j, v := range in {
			acc += v * cmplx.Rect(1, step*float64((j*k)%size))
		}
		out[k] = acc
	}
}
