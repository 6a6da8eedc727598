package geometry

import "math"

// LinearScale maps a price domain onto a pixel range, rounding to whole pixels
// Values outside the domain extrapolate linearly instead of clamping
type LinearScale struct {
	DomainStart float64
	DomainEnd   float64
	RangeStart  float64
	RangeEnd    float64
}

// NewLinearScale builds a scale from [d0, d1] onto [r0, r1]
func NewLinearScale(d0, d1, r0, r1 float64) LinearScale {
	return LinearScale{DomainStart: d0, DomainEnd: d1, RangeStart: r0, RangeEnd: r1}
}

// Map converts a price into a pixel coordinate
// A zero-width domain maps every input to the middle of the range
func (s LinearScale) Map(v float64) float64 {
	return roundHalfUp(lerp(s.RangeStart, s.RangeEnd, s.normalize(v)))
}

func (s LinearScale) normalize(v float64) float64 {
	span := s.DomainEnd - s.DomainStart
	if span == 0 {
		return 0.5
	}
	if math.IsNaN(span) {
		return math.NaN()
	}
	return (v - s.DomainStart) / span
}

func lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// roundHalfUp rounds .5 toward positive infinity so that -0.5 becomes 0, not -1
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}
