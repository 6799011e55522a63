package array

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-spharray/internal/testutil"
	"github.com/cwbudde/algo-spharray/sphere"
	"github.com/cwbudde/algo-spharray/sphere/basis"
	"github.com/cwbudde/algo-spharray/sphere/grid"
	"github.com/cwbudde/algo-spharray/sphere/transform"
)

func mustGrid(g *grid.Grid, err error) *grid.Grid {
	if err != nil {
		panic(err)
	}
	return g
}

func TestBeamformMatchesBeamPattern(t *testing.T) {
	const nMax = 3
	src := grid.Direction{Colatitude: 1.1, Azimuth: 0.4}
	w, _ := NormalizeWeights(MaxREWeights(nMax))
	for _, typ := range []basis.Type{basis.Complex, basis.Real} {
		a, err := PlaneWaveCoefficients(nMax, typ, src)
		if err != nil {
			t.Fatal(err)
		}
		for _, look := range []grid.Direction{src, {Colatitude: 0.3, Azimuth: 2}, {Colatitude: 2.9, Azimuth: 5}} {
			y, err := Beamform(a, nMax, typ, look, w)
			if err != nil {
				t.Fatalf("Beamform: %v", err)
			}
			want := BeamPattern(w, []float64{grid.AngularDistance(src, look)})[0]
			if cmplx.Abs(y-complex(want, 0)) > 1e-12 {
				t.Fatalf("%s look %+v: y = %v, want %v", typ, look, y, want)
			}
		}
	}
}

func TestPlaneWaveDecompositionUnitResponse(t *testing.T) {
	const nMax = 4
	search := mustGrid(grid.Gaussian(12))
	src := search.Point(57)
	for _, typ := range []basis.Type{basis.Complex, basis.Real} {
		a, _ := PlaneWaveCoefficients(nMax, typ, src)
		pwd, err := PlaneWaveDecomposition(a, nMax, typ, search)
		if err != nil {
			t.Fatalf("PlaneWaveDecomposition: %v", err)
		}
		if cmplx.Abs(pwd[57]-1) > 1e-12 {
			t.Fatalf("%s: PWD at source = %v, want 1", typ, pwd[57])
		}

		dir, pow, err := EstimateDirection(a, nMax, typ, search)
		if err != nil {
			t.Fatal(err)
		}
		if dir != src || math.Abs(pow-1) > 1e-12 {
			t.Fatalf("%s: estimate %+v (power %v), want %+v", typ, dir, pow, src)
		}

		resp, err := SteeredResponse(a, nMax, typ, search, MaxDirectivityWeights(nMax))
		if err != nil {
			t.Fatal(err)
		}
		for i, v := range resp {
			if v > resp[57]+1e-12 {
				t.Fatalf("%s: response at %d (%v) exceeds source (%v)", typ, i, v, resp[57])
			}
		}
	}
}

// A simulated rigid-sphere recording on the em32 layout is transformed by
// least squares, radially equalized and scanned for its direction of arrival.
func TestDirectionOfArrivalPipeline(t *testing.T) {
	const (
		nMax = 4
		kr   = 2.5
	)
	mic := mustGrid(grid.Eigenmike32())
	search := mustGrid(grid.Gaussian(15))

	for _, idx := range []int{17, 203, 400} {
		src := search.Point(idx)
		p, err := PlaneWavePressure(mic, nMax, kr, Rigid, src)
		if err != nil {
			t.Fatalf("PlaneWavePressure: %v", err)
		}
		e := transform.NewEngine()
		res, err := e.Forward(mic, nMax, p)
		if err != nil {
			t.Fatalf("Forward: %v", err)
		}
		if len(res.Warnings) != 0 {
			t.Fatalf("unexpected transform warnings: %v", res.Warnings)
		}
		rf, err := RadialFilter(nMax, kr, DefaultRadialOptions())
		if err != nil {
			t.Fatal(err)
		}
		a, err := ApplyRadialFilter(res.Coefficients, nMax, rf.Filters)
		if err != nil {
			t.Fatal(err)
		}
		dir, _, err := EstimateDirection(a, nMax, basis.Complex, search)
		if err != nil {
			t.Fatal(err)
		}
		if d := grid.AngularDistance(dir, src); d > 1e-9 {
			t.Fatalf("source %d: estimate %+v is %.3g rad from %+v", idx, dir, d, src)
		}
	}
}

func TestPlaneWavePressureMatchesModalExpansion(t *testing.T) {
	const (
		nMax = 3
		kr   = 1.7
	)
	mic := mustGrid(grid.Icosahedron())
	src := grid.FromDegrees(60, 100)
	p, err := PlaneWavePressure(mic, nMax, kr, Open, src)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := ModalStrength(nMax, kr, Open)
	a, _ := PlaneWaveCoefficients(nMax, basis.Complex, src)
	ev := basis.NewEvaluator()
	for i := 0; i < mic.Len(); i++ {
		y, _ := ev.EvaluateDirection(mic.Point(i), nMax, basis.Complex)
		var want complex128
		for n := 0; n <= nMax; n++ {
			for k := n * n; k < (n+1)*(n+1); k++ {
				want += b[n] * a[k] * y[k]
			}
		}
		if cmplx.Abs(p[i]-want) > 1e-12 {
			t.Fatalf("point %d: pressure %v, want %v", i, p[i], want)
		}
	}
	if _, err := PlaneWavePressure(nil, 1, 1, Open, src); err == nil {
		t.Fatal("expected error for nil grid")
	}
}

func TestBeamformInputErrors(t *testing.T) {
	g := mustGrid(grid.Octahedron())
	a := testutil.DeterministicCoefficients(1, 9)
	if _, err := Beamform(a[:8], 2, basis.Real, grid.Direction{}, MaxDirectivityWeights(2)); !errors.Is(err, sphere.ErrDimensionMismatch) {
		t.Fatalf("err = %v", err)
	}
	if _, err := Beamform(a, 2, basis.Real, grid.Direction{}, MaxDirectivityWeights(1)); !errors.Is(err, sphere.ErrDimensionMismatch) {
		t.Fatalf("err = %v", err)
	}
	if _, err := SteeredResponse(a, 2, basis.Real, nil, MaxDirectivityWeights(2)); err == nil {
		t.Fatal("expected error for nil grid")
	}
	if _, err := PlaneWaveDecomposition(a, -1, basis.Real, g); !errors.Is(err, sphere.ErrUnsupportedOrder) {
		t.Fatalf("err = %v", err)
	}
}

func TestRotateZ(t *testing.T) {
	const nMax = 3
	src := grid.Direction{Colatitude: 0.9, Azimuth: 1.0}
	const alpha = 0.8
	for _, typ := range []basis.Type{basis.Complex, basis.Real} {
		a, _ := PlaneWaveCoefficients(nMax, typ, src)
		rot, err := RotateZ(a, nMax, typ, alpha)
		if err != nil {
			t.Fatalf("RotateZ: %v", err)
		}
		want, _ := PlaneWaveCoefficients(nMax, typ, grid.Direction{Colatitude: src.Colatitude, Azimuth: src.Azimuth + alpha})
		testutil.RequireComplexNearlyEqual(t, rot, want, 1e-13)

		back, _ := RotateZ(rot, nMax, typ, -alpha)
		testutil.RequireComplexNearlyEqual(t, back, a, 1e-13)
	}
	if _, err := RotateZ(make([]complex128, 5), 2, basis.Real, 1); !errors.Is(err, sphere.ErrDimensionMismatch) {
		t.Fatalf("err = %v", err)
	}
}
