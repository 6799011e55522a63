// Command shtinfo prints spherical harmonic transform diagnostics for
// sampling grids.
//
// Usage:
//
//	shtinfo [flags] [grid-name ...]
//
// Without arguments it prints info for all known grids.
//
// Examples:
//
//	shtinfo gaussian equiangular
//	shtinfo -order 4 eigenmike32 spiral
//	shtinfo -order 6 -points 200 -basis real spiral
//	shtinfo -method least-squares -v icosahedron
//	shtinfo -list
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/cmplx"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-spharray/sphere/basis"
	"github.com/cwbudde/algo-spharray/sphere/grid"
	"github.com/cwbudde/algo-spharray/sphere/indexing"
	"github.com/cwbudde/algo-spharray/sphere/transform"
)

type gridEntry struct {
	name string
	// build receives the requested order and point count; fixed layouts
	// ignore both.
	build func(order, points int) (*grid.Grid, error)
}

var registry = []gridEntry{
	{"gaussian", func(n, _ int) (*grid.Grid, error) { return grid.Gaussian(n) }},
	{"equiangular", func(n, _ int) (*grid.Grid, error) { return grid.Equiangular(n) }},
	{"tetrahedron", func(_, _ int) (*grid.Grid, error) { return grid.Tetrahedron() }},
	{"octahedron", func(_, _ int) (*grid.Grid, error) { return grid.Octahedron() }},
	{"cube", func(_, _ int) (*grid.Grid, error) { return grid.Cube() }},
	{"icosahedron", func(_, _ int) (*grid.Grid, error) { return grid.Icosahedron() }},
	{"dodecahedron", func(_, _ int) (*grid.Grid, error) { return grid.Dodecahedron() }},
	{"spiral", func(_, p int) (*grid.Grid, error) { return grid.FibonacciSpiral(p) }},
	{"eigenmike32", func(_, _ int) (*grid.Grid, error) { return grid.Eigenmike32() }},
}

var methods = map[string]transform.Method{
	"auto":          transform.Auto,
	"quadrature":    transform.Quadrature,
	"least-squares": transform.LeastSquares,
}

func main() {
	order := flag.Int("order", 3, "maximum spherical harmonic order")
	points := flag.Int("points", 64, "point count for generated layouts (spiral)")
	basisName := flag.String("basis", "complex", "basis type: complex or real")
	methodName := flag.String("method", "auto", "transform method: auto, quadrature or least-squares")
	threshold := flag.Float64("threshold", transform.DefaultRegularizationThreshold, "condition number threshold for regularization")
	all := flag.Bool("all", false, "show all grids")
	list := flag.Bool("list", false, "list available grid names")
	verbose := flag.Bool("v", false, "log plan construction to stderr")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: shtinfo [flags] [grid-name ...]\n\n")
		fmt.Fprintf(os.Stderr, "Prints spherical harmonic transform diagnostics for sampling grids.\n")
		fmt.Fprintf(os.Stderr, "Without arguments or with -all, prints info for all grids.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  shtinfo gaussian equiangular\n")
		fmt.Fprintf(os.Stderr, "  shtinfo -order 4 eigenmike32 spiral\n")
		fmt.Fprintf(os.Stderr, "  shtinfo -list\n")
	}
	flag.Parse()

	if *list {
		printList(os.Stdout)
		return
	}

	typ := basis.Complex
	switch strings.ToLower(*basisName) {
	case "complex":
	case "real":
		typ = basis.Real
	default:
		fmt.Fprintf(os.Stderr, "error: unknown basis %q\n", *basisName)
		os.Exit(2)
	}
	method, ok := methods[strings.ToLower(*methodName)]
	if !ok {
		fmt.Fprintf(os.Stderr, "error: unknown method %q\n", *methodName)
		os.Exit(2)
	}

	logger := transform.NoopLogger()
	if *verbose {
		logger = transform.NewTextLogger(slog.LevelDebug)
	}

	names := flag.Args()
	if len(names) == 0 || *all {
		names = nil
		for _, e := range registry {
			names = append(names, e.name)
		}
	}
	entries := resolveEntries(names)
	if len(entries) == 0 {
		fmt.Fprintf(os.Stderr, "error: no matching grids\n")
		os.Exit(1)
	}

	engine := transform.NewEngine(
		transform.WithBasisType(typ),
		transform.WithMethod(method),
		transform.WithRegularizationThreshold(*threshold),
		transform.WithLogger(logger),
	)
	printAnalysis(os.Stdout, engine, entries, *order, *points)
}

func printList(w io.Writer) {
	names := make([]string, len(registry))
	for i, e := range registry {
		names[i] = e.name
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintln(w, n)
	}
}

func resolveEntries(names []string) []gridEntry {
	byName := make(map[string]gridEntry, len(registry))
	for _, e := range registry {
		byName[e.name] = e
	}

	var result []gridEntry
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		e, ok := byName[name]
		if !ok {
			fmt.Fprintf(os.Stderr, "warning: unknown grid %q (use -list to see available)\n", name)
			continue
		}
		result = append(result, e)
	}
	return result
}

// analysis is one row of the report.
type analysis struct {
	Points       int
	ExactOrder   int
	Method       transform.Method
	RingFFT      bool
	Condition    float64
	Orthonormal  float64
	RoundTrip    float64
	WarningCount int
}

func analyze(e *transform.Engine, g *grid.Grid, order int) (analysis, error) {
	p, err := e.Plan(g, order)
	if err != nil {
		return analysis{}, err
	}
	cond, err := p.Condition()
	if err != nil {
		return analysis{}, err
	}
	gram, err := p.Basis().Gram(g.Weights())
	if err != nil {
		return analysis{}, err
	}
	ortho := 0.0
	k := indexing.NumCoefficients(order)
	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			want := complex(0, 0)
			if i == j {
				want = 1
			}
			ortho = math.Max(ortho, cmplx.Abs(gram.At(i, j)-want))
		}
	}

	coeffs := make([]complex128, k)
	for i := range coeffs {
		coeffs[i] = complex(math.Sin(float64(i)+1), math.Cos(2*float64(i)))
	}
	s, err := p.Inverse(coeffs)
	if err != nil {
		return analysis{}, err
	}
	res, err := p.Forward(s)
	if err != nil {
		return analysis{}, err
	}
	rt := 0.0
	for i, c := range res.Coefficients {
		rt = math.Max(rt, cmplx.Abs(c-coeffs[i]))
	}

	return analysis{
		Points:       g.Len(),
		ExactOrder:   g.ExactOrder(),
		Method:       p.Method(),
		RingFFT:      p.UsesRingFFT(),
		Condition:    cond,
		Orthonormal:  ortho,
		RoundTrip:    rt,
		WarningCount: len(res.Warnings),
	}, nil
}

func printAnalysis(w io.Writer, e *transform.Engine, entries []gridEntry, order, points int) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Grid\tPoints\tExact\tMethod\tRing FFT\tCond\tOrtho Err\tRound Trip\tWarnings\n"); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output header: %v\n", err)
		return
	}
	if _, err := fmt.Fprintf(tw, "----\t------\t-----\t------\t--------\t----\t---------\t----------\t--------\n"); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output header: %v\n", err)
		return
	}

	for _, entry := range entries {
		g, err := entry.build(order, points)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "error: %s: %v\n", entry.name, err)
			continue
		}
		a, err := analyze(e, g, order)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "error: %s: %v\n", entry.name, err)
			continue
		}
		exact := "-"
		if a.ExactOrder >= 0 {
			exact = fmt.Sprint(a.ExactOrder)
		}
		if _, err := fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%t\t%.3g\t%.2e\t%.2e\t%d\n",
			entry.name,
			a.Points,
			exact,
			a.Method,
			a.RingFFT,
			a.Condition,
			a.Orthonormal,
			a.RoundTrip,
			a.WarningCount,
		); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output row: %v\n", err)
			return
		}
	}
	if err := tw.Flush(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}
