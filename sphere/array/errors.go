package array

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-spharray/sphere"
	"github.com/cwbudde/algo-spharray/sphere/basis"
	"github.com/cwbudde/algo-spharray/sphere/indexing"
)

var errNilGrid = errors.New("array: grid must not be nil")

func validateOrder(nMax int) error {
	if nMax < 0 || nMax > basis.DefaultMaxStableOrder {
		return &sphere.UnsupportedOrderError{Order: nMax, Ceiling: basis.DefaultMaxStableOrder}
	}
	return nil
}

func validateKR(kr float64) error {
	if math.IsNaN(kr) || math.IsInf(kr, 0) || kr < 0 {
		return fmt.Errorf("array: kr must be finite and >= 0: %f", kr)
	}
	return nil
}

func validateCoefficients(coeffs []complex128, nMax int) error {
	if err := validateOrder(nMax); err != nil {
		return err
	}
	return sphere.CheckLen("coefficients", indexing.NumCoefficients(nMax), len(coeffs))
}
