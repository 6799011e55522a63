package transform_test

import (
	"fmt"

	"github.com/cwbudde/algo-spharray/sphere/grid"
	"github.com/cwbudde/algo-spharray/sphere/transform"
)

func ExampleEngine_Forward() {
	g, err := grid.Gaussian(2)
	if err != nil {
		panic(err)
	}
	samples := make([]complex128, g.Len())
	for i := range samples {
		samples[i] = 1
	}

	e := transform.NewEngine()
	res, err := e.Forward(g, 2, samples)
	if err != nil {
		panic(err)
	}
	fmt.Printf("%d coefficients, c00 = %.4f, warnings: %d\n",
		len(res.Coefficients), real(res.Coefficients[0]), len(res.Warnings))
	// Output:
	// 9 coefficients, c00 = 3.5449, warnings: 0
}
