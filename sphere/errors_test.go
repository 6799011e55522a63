package sphere

import (
	"errors"
	"fmt"
	"testing"
)

func TestTypedErrorsMatchSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{name: "grid", err: &InvalidGridError{Reason: "empty", Index: -1}, sentinel: ErrInvalidGrid},
		{name: "order", err: &UnsupportedOrderError{Order: 900, Ceiling: 500}, sentinel: ErrUnsupportedOrder},
		{name: "dimension", err: &DimensionMismatchError{What: "samples", Expected: 32, Actual: 30}, sentinel: ErrDimensionMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("context: %w", tt.err)
			if !errors.Is(wrapped, tt.sentinel) {
				t.Fatalf("errors.Is(%v, %v) = false", wrapped, tt.sentinel)
			}
			if tt.err.Error() == "" {
				t.Fatal("empty error message")
			}
		})
	}
}

func TestCheckLen(t *testing.T) {
	if err := CheckLen("samples", 32, 32); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := CheckLen("samples", 32, 30)
	var dm *DimensionMismatchError
	if !errors.As(err, &dm) {
		t.Fatalf("err = %v, want *DimensionMismatchError", err)
	}
	if dm.Expected != 32 || dm.Actual != 30 {
		t.Fatalf("got expected=%d actual=%d", dm.Expected, dm.Actual)
	}
}

func TestHasWarning(t *testing.T) {
	ws := []Warning{{Kind: WarningNearSingular, Degree: 3, Message: "gain limited"}}
	if !HasWarning(ws, WarningNearSingular) {
		t.Fatal("expected near-singular warning")
	}
	if HasWarning(ws, WarningIllConditioned) {
		t.Fatal("unexpected ill-conditioned warning")
	}
	if ws[0].String() == "" {
		t.Fatal("empty warning string")
	}
}
