package domain

import (
	"fmt"
	"math"
)

// PriceRange is the span of underlying prices shown on the diagram's axis
type PriceRange struct {
	Start float64
	End   float64
}

// Validate rejects non-finite bounds and empty or inverted ranges
func (r PriceRange) Validate() error {
	if !IsFinite(r.Start) || !IsFinite(r.End) {
		return fmt.Errorf("%w: range [%v, %v]", ErrNonFiniteValue, r.Start, r.End)
	}
	if r.Start >= r.End {
		return fmt.Errorf("%w: got [%v, %v]", ErrInvalidRange, r.Start, r.End)
	}
	return nil
}

// IsFinite reports whether v is neither NaN nor infinite
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
