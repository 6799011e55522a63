package sphere

import (
	"errors"
	"fmt"
)

// Sentinel errors. The typed errors below match them with errors.Is.
var (
	ErrInvalidGrid       = errors.New("sphere: invalid sampling grid")
	ErrUnsupportedOrder  = errors.New("sphere: unsupported spherical harmonic order")
	ErrDimensionMismatch = errors.New("sphere: dimension mismatch")
)

// InvalidGridError reports malformed sampling geometry.
type InvalidGridError struct {
	Reason string
	// Index is the offending point, or -1 when the problem is global.
	Index int
}

func (e *InvalidGridError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("sphere: invalid sampling grid: %s (point %d)", e.Reason, e.Index)
	}
	return "sphere: invalid sampling grid: " + e.Reason
}

// Is reports whether target is ErrInvalidGrid.
func (e *InvalidGridError) Is(target error) bool { return target == ErrInvalidGrid }

// UnsupportedOrderError reports an order outside the stable recursion range.
type UnsupportedOrderError struct {
	Order   int
	Ceiling int
}

func (e *UnsupportedOrderError) Error() string {
	if e.Order < 0 {
		return fmt.Sprintf("sphere: order must be >= 0: %d", e.Order)
	}
	return fmt.Sprintf("sphere: order %d exceeds stable limit %d", e.Order, e.Ceiling)
}

// Is reports whether target is ErrUnsupportedOrder.
func (e *UnsupportedOrderError) Is(target error) bool { return target == ErrUnsupportedOrder }

// DimensionMismatchError reports a vector or matrix length mismatch at an API
// boundary.
type DimensionMismatchError struct {
	What     string
	Expected int
	Actual   int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("sphere: %s length mismatch: expected %d, got %d", e.What, e.Expected, e.Actual)
}

// Is reports whether target is ErrDimensionMismatch.
func (e *DimensionMismatchError) Is(target error) bool { return target == ErrDimensionMismatch }

// CheckLen returns a *DimensionMismatchError when got != want.
func CheckLen(what string, want, got int) error {
	if want != got {
		return &DimensionMismatchError{What: what, Expected: want, Actual: got}
	}
	return nil
}
