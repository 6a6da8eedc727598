package geometry

import (
	"github.com/accounted4/optionspark/internal/domain"
)

const (
	// DashPattern is the stroke-dasharray of the dashed axis segment
	DashPattern = "3, 3"

	// AxisColor and AxisWidth style both axis segments
	AxisColor = "black"
	AxisWidth = 1.0
)

// Segment is one half of the price axis
type Segment struct {
	From   Point
	To     Point
	Dashed bool
}

// RenderPlan is the backend-agnostic description of one option diagram
type RenderPlan struct {
	Layout    Layout
	Scale     LinearScale
	MidHeight float64
	Before    Segment // range start -> strike
	After     Segment // strike -> range end
	Purchase  CircleMarker
	Current   TriangleMarker
}

// dashStyle records which axis segment is dashed
// Solid means the holder owns the underlying at expiry, dashed means they do not
type dashStyle struct {
	before bool
	after  bool
}

var dashStyles = map[domain.OptionType]dashStyle{
	domain.OptionTypeCall: {before: false, after: true},
	domain.OptionTypePut:  {before: true, after: false},
}

// DashStyle returns whether the before-strike and after-strike segments are dashed
// Types outside the table are styled as PUT so exactly one segment is always dashed
func DashStyle(t domain.OptionType) (before, after bool) {
	style, ok := dashStyles[t]
	if !ok {
		style = dashStyles[domain.OptionTypePut]
	}
	return style.before, style.after
}

// ComputeRenderPlan resolves every position and style of an option diagram
// It never fails: invalid input yields degenerate or non-finite coordinates,
// so callers should validate at their boundary first
func ComputeRenderPlan(option domain.Option, currentPrice float64, rng domain.PriceRange, layout Layout) RenderPlan {
	area := layout.DataArea
	scale := NewLinearScale(rng.Start, rng.End, area.X, area.X+area.W)
	mid := layout.MidHeight()

	start := scale.Map(rng.Start)
	strike := scale.Map(option.StrikePrice.InexactFloat64())
	end := scale.Map(rng.End)

	beforeDashed, afterDashed := DashStyle(option.Type)

	return RenderPlan{
		Layout:    layout,
		Scale:     scale,
		MidHeight: mid,
		Before: Segment{
			From:   Point{X: start, Y: mid},
			To:     Point{X: strike, Y: mid},
			Dashed: beforeDashed,
		},
		After: Segment{
			From:   Point{X: strike, Y: mid},
			To:     Point{X: end, Y: mid},
			Dashed: afterDashed,
		},
		Purchase: NewPurchaseMarker(scale.Map(option.PurchasePrice.InexactFloat64()), mid),
		Current:  NewCurrentMarker(scale.Map(currentPrice), mid),
	}
}
