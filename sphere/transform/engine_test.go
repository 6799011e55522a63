package transform

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"math/cmplx"
	"strings"
	"sync"
	"testing"

	"github.com/cwbudde/algo-spharray/internal/testutil"
	"github.com/cwbudde/algo-spharray/sphere"
	"github.com/cwbudde/algo-spharray/sphere/basis"
	"github.com/cwbudde/algo-spharray/sphere/grid"
	"github.com/cwbudde/algo-spharray/sphere/indexing"
)

func mustGrid(g *grid.Grid, err error) *grid.Grid {
	if err != nil {
		panic(err)
	}
	return g
}

func TestRoundTripExactGrids(t *testing.T) {
	grids := []struct {
		name string
		nMax int
		g    func() (*grid.Grid, error)
	}{
		{name: "gaussian", nMax: 5, g: func() (*grid.Grid, error) { return grid.Gaussian(5) }},
		{name: "equiangular", nMax: 4, g: func() (*grid.Grid, error) { return grid.Equiangular(4) }},
		{name: "icosahedron", nMax: 2, g: func() (*grid.Grid, error) { return grid.Icosahedron() }},
	}

	for _, tt := range grids {
		for _, typ := range []basis.Type{basis.Complex, basis.Real} {
			for _, ring := range []bool{true, false} {
				name := tt.name + "/" + typ.String()
				if !ring {
					name += "/direct"
				}
				t.Run(name, func(t *testing.T) {
					g := mustGrid(tt.g())
					e := NewEngine(WithBasisType(typ), WithRingFFT(ring))
					want := testutil.DeterministicCoefficients(3, indexing.NumCoefficients(tt.nMax))

					samples, err := e.Inverse(g, tt.nMax, want)
					if err != nil {
						t.Fatalf("Inverse: %v", err)
					}
					res, err := e.Forward(g, tt.nMax, samples)
					if err != nil {
						t.Fatalf("Forward: %v", err)
					}
					if len(res.Warnings) != 0 {
						t.Fatalf("unexpected warnings: %v", res.Warnings)
					}
					testutil.RequireComplexNearlyEqual(t, res.Coefficients, want, 1e-12)

					p, _ := e.Plan(g, tt.nMax)
					if p.Method() != Quadrature {
						t.Fatalf("method = %v, want quadrature", p.Method())
					}
				})
			}
		}
	}
}

func TestForwardOfConstant(t *testing.T) {
	g := mustGrid(grid.Gaussian(3))
	for _, typ := range []basis.Type{basis.Complex, basis.Real} {
		e := NewEngine(WithBasisType(typ))
		res, err := e.Forward(g, 3, testutil.Constant(2.5, g.Len()))
		if err != nil {
			t.Fatalf("Forward: %v", err)
		}
		want := make([]complex128, 16)
		want[0] = complex(2.5*math.Sqrt(4*math.Pi), 0)
		testutil.RequireComplexNearlyEqual(t, res.Coefficients, want, 1e-13)

		res0, err := e.Forward(g, 0, testutil.Constant(2.5, g.Len()))
		if err != nil {
			t.Fatalf("Forward order 0: %v", err)
		}
		if len(res0.Coefficients) != 1 || cmplx.Abs(res0.Coefficients[0]-want[0]) > 1e-13 {
			t.Fatalf("order 0 coefficients = %v", res0.Coefficients)
		}
	}
}

func TestDimensionMismatch(t *testing.T) {
	g := mustGrid(grid.Eigenmike32())
	e := NewEngine()

	_, err := e.Forward(g, 3, make([]complex128, 30))
	if !errors.Is(err, sphere.ErrDimensionMismatch) {
		t.Fatalf("err = %v, want ErrDimensionMismatch", err)
	}
	var dm *sphere.DimensionMismatchError
	if !errors.As(err, &dm) || dm.Expected != 32 || dm.Actual != 30 {
		t.Fatalf("err = %#v", err)
	}

	if _, err := e.Inverse(g, 3, make([]complex128, 15)); !errors.Is(err, sphere.ErrDimensionMismatch) {
		t.Fatalf("inverse err = %v, want ErrDimensionMismatch", err)
	}
}

func TestEngineRejectsBadInput(t *testing.T) {
	e := NewEngine(WithMaxStableOrder(10))
	g := mustGrid(grid.Octahedron())
	if _, err := e.Plan(g, 11); !errors.Is(err, sphere.ErrUnsupportedOrder) {
		t.Fatalf("err = %v, want ErrUnsupportedOrder", err)
	}
	if _, err := e.Plan(g, -1); !errors.Is(err, sphere.ErrUnsupportedOrder) {
		t.Fatalf("err = %v, want ErrUnsupportedOrder", err)
	}
	if _, err := e.Plan(nil, 1); !errors.Is(err, sphere.ErrInvalidGrid) {
		t.Fatalf("err = %v, want ErrInvalidGrid", err)
	}
	if e.CacheLen() != 0 {
		t.Fatalf("failed plans were cached: %d", e.CacheLen())
	}
}

func TestUnderdeterminedLeastSquaresWarns(t *testing.T) {
	g := mustGrid(grid.Eigenmike32())
	var buf bytes.Buffer
	logger := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	e := NewEngine(WithMethod(LeastSquares), WithLogger(logger))

	res, err := e.Forward(g, 5, testutil.DeterministicCoefficients(1, g.Len()))
	if err != nil {
		t.Fatalf("Forward: %v", err)
	}
	if !sphere.HasWarning(res.Warnings, sphere.WarningIllConditioned) {
		t.Fatalf("warnings = %v, want ill-conditioned", res.Warnings)
	}
	if !math.IsInf(res.Warnings[0].Condition, 1) {
		t.Fatalf("condition = %v, want +Inf", res.Warnings[0].Condition)
	}
	if !strings.Contains(res.Warnings[0].Message, "underdetermined") {
		t.Fatalf("message = %q", res.Warnings[0].Message)
	}
	testutil.RequireComplexFinite(t, res.Coefficients)

	p, _ := e.Plan(g, 5)
	if !p.Regularized() || !sphere.HasWarning(p.Warnings(), sphere.WarningIllConditioned) {
		t.Fatal("plan should carry the warning and be regularized")
	}
	if !strings.Contains(buf.String(), "ill-conditioned transform") {
		t.Fatalf("log output missing warning: %s", buf.String())
	}
}

func TestRegularizationModesStayFinite(t *testing.T) {
	g := mustGrid(grid.Eigenmike32())
	samples := testutil.DeterministicCoefficients(9, g.Len())
	for _, reg := range []Regularization{TruncatedSVD, Tikhonov, NoRegularization} {
		t.Run(reg.String(), func(t *testing.T) {
			e := NewEngine(WithRegularization(reg), WithBasisType(basis.Real))
			res, err := e.Forward(g, 6, samples)
			if err != nil {
				t.Fatalf("Forward: %v", err)
			}
			testutil.RequireComplexFinite(t, res.Coefficients)
			p, _ := e.Plan(g, 6)
			if p.Regularized() != (reg != NoRegularization) {
				t.Fatalf("Regularized() = %v", p.Regularized())
			}
			if sv := p.SingularValues(); len(sv) != 32 || sv[0] < sv[31] {
				t.Fatalf("singular values = %v", sv)
			}
		})
	}
}

func TestLeastSquaresRecoversBandLimitedField(t *testing.T) {
	grids := []struct {
		name string
		nMax int
		g    func() (*grid.Grid, error)
	}{
		{name: "em32", nMax: 4, g: func() (*grid.Grid, error) { return grid.Eigenmike32() }},
		{name: "spiral", nMax: 6, g: func() (*grid.Grid, error) { return grid.FibonacciSpiral(100) }},
	}
	for _, tt := range grids {
		for _, typ := range []basis.Type{basis.Complex, basis.Real} {
			t.Run(tt.name+"/"+typ.String(), func(t *testing.T) {
				g := mustGrid(tt.g())
				e := NewEngine(WithBasisType(typ))
				want := testutil.DeterministicCoefficients(21, indexing.NumCoefficients(tt.nMax))
				samples, err := e.Inverse(g, tt.nMax, want)
				if err != nil {
					t.Fatalf("Inverse: %v", err)
				}
				res, err := e.Forward(g, tt.nMax, samples)
				if err != nil {
					t.Fatalf("Forward: %v", err)
				}
				if len(res.Warnings) != 0 {
					t.Fatalf("unexpected warnings: %v", res.Warnings)
				}
				testutil.RequireComplexNearlyEqual(t, res.Coefficients, want, 1e-9)

				p, _ := e.Plan(g, tt.nMax)
				if p.Method() != LeastSquares {
					t.Fatalf("method = %v, want least squares", p.Method())
				}
				cond, err := p.Condition()
				if err != nil || cond < 1 || cond > 100 {
					t.Fatalf("condition = %v, %v", cond, err)
				}
			})
		}
	}
}

func TestRingPathMatchesDirectSum(t *testing.T) {
	grids := []struct {
		name string
		nMax int
		g    func() (*grid.Grid, error)
	}{
		{name: "gaussian", nMax: 7, g: func() (*grid.Grid, error) { return grid.Gaussian(7) }},
		{name: "equiangular", nMax: 5, g: func() (*grid.Grid, error) { return grid.Equiangular(5) }},
	}
	for _, tt := range grids {
		for _, typ := range []basis.Type{basis.Complex, basis.Real} {
			t.Run(tt.name+"/"+typ.String(), func(t *testing.T) {
				g := mustGrid(tt.g())
				// Arbitrary samples, not band-limited: aliasing must match too.
				samples := testutil.DeterministicCoefficients(4, g.Len())

				ring := NewEngine(WithBasisType(typ))
				direct := NewEngine(WithBasisType(typ), WithRingFFT(false))
				pr, _ := ring.Plan(g, tt.nMax)
				pd, _ := direct.Plan(g, tt.nMax)
				if !pr.UsesRingFFT() || pd.UsesRingFFT() {
					t.Fatalf("ring flags = %v/%v", pr.UsesRingFFT(), pd.UsesRingFFT())
				}

				a, err := pr.Forward(samples)
				if err != nil {
					t.Fatalf("ring Forward: %v", err)
				}
				b, err := pd.Forward(samples)
				if err != nil {
					t.Fatalf("direct Forward: %v", err)
				}
				testutil.RequireComplexNearlyEqual(t, a.Coefficients, b.Coefficients, 1e-12)
			})
		}
	}
}

func TestRingPathNeedsRings(t *testing.T) {
	g := mustGrid(grid.Gaussian(3))
	rot := mustGrid(g.Rotated(0.3, 0.7, 0.1))
	p, err := NewEngine().Plan(rot, 3)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if p.UsesRingFFT() || p.Method() != Quadrature {
		t.Fatalf("rotated grid: ring=%v method=%v", p.UsesRingFFT(), p.Method())
	}
	want := testutil.DeterministicCoefficients(8, 16)
	s, _ := p.Inverse(want)
	res, _ := p.Forward(s)
	testutil.RequireComplexNearlyEqual(t, res.Coefficients, want, 1e-12)
}

func TestExplicitQuadratureOnInexactGridWarns(t *testing.T) {
	g := mustGrid(grid.FibonacciSpiral(64))
	e := NewEngine(WithMethod(Quadrature))
	res, err := e.Forward(g, 3, testutil.Constant(1, g.Len()))
	if err != nil {
		t.Fatalf("Forward: %v", err)
	}
	if !sphere.HasWarning(res.Warnings, sphere.WarningNonQuadrature) {
		t.Fatalf("warnings = %v, want non-quadrature", res.Warnings)
	}
	p, err := e.Plan(g, 3)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if p.UsesRingFFT() {
		t.Fatal("spiral grid has no rings but plan uses the ring FFT")
	}
	cond, err := p.Condition()
	if err != nil || math.IsInf(cond, 0) || cond < 1 {
		t.Fatalf("condition = %v, %v", cond, err)
	}
}

func TestPlanCache(t *testing.T) {
	g1 := mustGrid(grid.Gaussian(2))
	g2 := mustGrid(grid.Octahedron())
	e := NewEngine()

	p1, _ := e.Plan(g1, 2)
	p2, _ := e.Plan(g1, 2)
	if p1 != p2 {
		t.Fatal("plan not reused")
	}
	if _, err := e.Plan(g1, 1); err != nil {
		t.Fatal(err)
	}
	if _, err := e.Plan(g2, 1); err != nil {
		t.Fatal(err)
	}
	if e.CacheLen() != 3 {
		t.Fatalf("CacheLen = %d, want 3", e.CacheLen())
	}

	e.Invalidate(g1)
	if e.CacheLen() != 1 {
		t.Fatalf("CacheLen after Invalidate = %d, want 1", e.CacheLen())
	}
	if p3, _ := e.Plan(g1, 2); p3 == p1 {
		t.Fatal("plan survived invalidation")
	}

	e.Reset()
	if e.CacheLen() != 0 {
		t.Fatalf("CacheLen after Reset = %d", e.CacheLen())
	}

	// Rebuilt grids have new identities even with identical points.
	g3, _ := g1.WithWeights(g1.Weights(), grid.WithExactOrder(2))
	a, _ := e.Plan(g1, 2)
	b, _ := e.Plan(g3, 2)
	if a == b {
		t.Fatal("distinct grids share a plan")
	}
}

func TestConcurrentForward(t *testing.T) {
	g := mustGrid(grid.Gaussian(6))
	e := NewEngine(WithBasisType(basis.Real))
	want := testutil.DeterministicCoefficients(5, 49)

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := e.Inverse(g, 6, want)
			if err != nil {
				errs <- err
				return
			}
			res, err := e.Forward(g, 6, s)
			if err != nil {
				errs <- err
				return
			}
			if d, _ := testutil.MaxAbsDiffComplex(res.Coefficients, want); d > 1e-12 {
				errs <- errors.New("concurrent round trip diverged")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}
	if e.CacheLen() != 1 {
		t.Fatalf("CacheLen = %d, want 1", e.CacheLen())
	}
}

func TestBatch(t *testing.T) {
	g := mustGrid(grid.Gaussian(4))
	serial := NewEngine()
	parallel := NewEngine(WithWorkers(4))

	coeffs := make([][]complex128, 9)
	for i := range coeffs {
		coeffs[i] = testutil.DeterministicCoefficients(int64(i+1), 25)
	}
	frames, err := parallel.InverseBatch(g, 4, coeffs)
	if err != nil {
		t.Fatalf("InverseBatch: %v", err)
	}
	results, err := parallel.ForwardBatch(g, 4, frames)
	if err != nil {
		t.Fatalf("ForwardBatch: %v", err)
	}
	for i, r := range results {
		single, _ := serial.Forward(g, 4, frames[i])
		testutil.RequireComplexNearlyEqual(t, r.Coefficients, single.Coefficients, 1e-14)
		testutil.RequireComplexNearlyEqual(t, r.Coefficients, coeffs[i], 1e-12)
	}

	frames[3] = frames[3][:10]
	if _, err := parallel.ForwardBatch(g, 4, frames); !errors.Is(err, sphere.ErrDimensionMismatch) {
		t.Fatalf("err = %v, want ErrDimensionMismatch", err)
	}
}

func TestRealEntryPoints(t *testing.T) {
	g := mustGrid(grid.Equiangular(3))
	e := NewEngine(WithBasisType(basis.Real))
	want := testutil.DeterministicReal(2, 16)

	s, err := e.InverseReal(g, 3, want)
	if err != nil {
		t.Fatalf("InverseReal: %v", err)
	}
	res, err := e.ForwardReal(g, 3, s)
	if err != nil {
		t.Fatalf("ForwardReal: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, res.Coefficients, want, 1e-12)

	full, err := e.Forward(g, 3, testutil.ToComplex(s))
	if err != nil {
		t.Fatalf("Forward: %v", err)
	}
	for k, c := range full.Coefficients {
		if real(c) != res.Coefficients[k] || math.Abs(imag(c)) > 1e-12 {
			t.Fatalf("coefficient %d: Forward = %v, ForwardReal = %v", k, c, res.Coefficients[k])
		}
	}

	cx := NewEngine()
	if _, err := cx.ForwardReal(g, 3, s); !errors.Is(err, ErrRealBasisRequired) {
		t.Fatalf("err = %v, want ErrRealBasisRequired", err)
	}
	if _, err := cx.InverseReal(g, 3, want); !errors.Is(err, ErrRealBasisRequired) {
		t.Fatalf("err = %v, want ErrRealBasisRequired", err)
	}
}

func TestOptionsIgnoreInvalidValues(t *testing.T) {
	cfg := ApplyOptions(
		WithBasisType(basis.Type(9)),
		WithMethod(Method(-1)),
		WithRegularization(Regularization(7)),
		WithRegularizationThreshold(-3),
		WithWorkers(0),
		WithMaxStableOrder(-2),
		WithLogger(nil),
		nil,
	)
	def := DefaultConfig()
	if cfg.BasisType != def.BasisType || cfg.Method != def.Method ||
		cfg.Regularization != def.Regularization || cfg.Threshold != def.Threshold ||
		cfg.Workers != def.Workers || cfg.MaxStableOrder != def.MaxStableOrder || cfg.Logger == nil {
		t.Fatalf("config changed by invalid options: %+v", cfg)
	}
	for _, s := range []string{Auto.String(), Method(5).String(), Tikhonov.String(), Regularization(5).String()} {
		if s == "" {
			t.Fatal("empty name")
		}
	}
}
