package sphere

import "fmt"

// WarningKind classifies non-fatal numerical degradation.
type WarningKind int

const (
	// WarningIllConditioned marks a least-squares transform whose basis
	// matrix is ill-conditioned or underdetermined.
	WarningIllConditioned WarningKind = iota
	// WarningNonQuadrature marks a quadrature transform requested on a grid
	// whose weights are not exact for the order.
	WarningNonQuadrature
	// WarningNearSingular marks a radial filter degree whose inversion hit
	// the gain limit.
	WarningNearSingular
)

// String returns a short name for the warning kind.
func (k WarningKind) String() string {
	switch k {
	case WarningIllConditioned:
		return "ill-conditioned"
	case WarningNonQuadrature:
		return "non-quadrature"
	case WarningNearSingular:
		return "near-singular"
	default:
		return "unknown"
	}
}

// Warning is a non-fatal signal returned alongside a possibly degraded result.
type Warning struct {
	Kind WarningKind
	// Condition is the basis matrix condition number (ill-conditioned only).
	Condition float64
	// Degree is the affected spherical harmonic degree, or -1.
	Degree  int
	Message string
}

func (w Warning) String() string {
	switch w.Kind {
	case WarningIllConditioned:
		return fmt.Sprintf("%s: %s (cond=%.3g)", w.Kind, w.Message, w.Condition)
	case WarningNearSingular:
		return fmt.Sprintf("%s: degree %d: %s", w.Kind, w.Degree, w.Message)
	default:
		return fmt.Sprintf("%s: %s", w.Kind, w.Message)
	}
}

// HasWarning reports whether ws contains a warning of kind k.
func HasWarning(ws []Warning, k WarningKind) bool {
	for _, w := range ws {
		if w.Kind == k {
			return true
		}
	}
	return false
}
