package grid

import (
	"math"
	"sort"
)

// Ring is a set of points sharing one colatitude with equally spaced
// azimuths Azimuth0 + 2πk/len(Indices) and a common weight.
type Ring struct {
	Colatitude float64
	Azimuth0   float64
	Weight     float64
	// Indices lists the grid points of the ring in increasing azimuth order.
	Indices []int
}

const (
	ringAzimuthTolerance = 1e-13
	ringWeightTolerance  = 1e-12
	poleTolerance        = 1e-12
)

func isPole(colat float64) bool {
	return colat < poleTolerance || math.Pi-colat < poleTolerance
}

func detectRings(pts []Direction, w []float64) ([]Ring, bool) {
	byColat := make(map[float64][]int)
	order := make([]float64, 0)
	for i, p := range pts {
		if _, ok := byColat[p.Colatitude]; !ok {
			order = append(order, p.Colatitude)
		}
		byColat[p.Colatitude] = append(byColat[p.Colatitude], i)
	}
	sort.Float64s(order)

	rings := make([]Ring, 0, len(order))
	for _, colat := range order {
		idx := byColat[colat]
		// A lone point only forms a ring at a pole, where every azimuth
		// coincides.
		if len(idx) < 2 && !isPole(colat) {
			return nil, false
		}
		sort.Slice(idx, func(a, b int) bool {
			return pts[idx[a]].Azimuth < pts[idx[b]].Azimuth
		})

		ring := Ring{
			Colatitude: colat,
			Azimuth0:   pts[idx[0]].Azimuth,
			Weight:     w[idx[0]],
			Indices:    idx,
		}
		step := 2 * math.Pi / float64(len(idx))
		for k, i := range idx {
			if math.Abs(w[i]-ring.Weight) > ringWeightTolerance*ring.Weight {
				return nil, false
			}
			want := ring.Azimuth0 + float64(k)*step
			if math.Abs(pts[i].Azimuth-want) > ringAzimuthTolerance {
				return nil, false
			}
		}
		rings = append(rings, ring)
	}
	return rings, true
}
