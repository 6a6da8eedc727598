package geometry

// Size is a canvas extent in pixels
type Size struct {
	W float64
	H float64
}

// Margin is the border reserved around the data area
type Margin struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// Rect is a positioned rectangle in pixel space
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// Layout holds the pixel extents of a diagram
// It is an immutable value: derive variations with WithMargin rather than mutating fields
type Layout struct {
	Full     Size
	Margin   Margin
	DataArea Rect
}

// NewLayout derives the data area from the full size minus the margins
func NewLayout(full Size, margin Margin) Layout {
	return Layout{
		Full:   full,
		Margin: margin,
		DataArea: Rect{
			X: margin.Left,
			Y: margin.Bottom,
			W: full.W - margin.Left - margin.Right,
			H: full.H - margin.Top - margin.Bottom,
		},
	}
}

// DefaultLayout is the fixed 100x25 spark diagram with no margins
func DefaultLayout() Layout {
	return NewLayout(Size{W: 100, H: 25}, Margin{})
}

// WithMargin returns a copy of the layout with the data area recomputed for m
func (l Layout) WithMargin(m Margin) Layout {
	return NewLayout(l.Full, m)
}

// MidHeight is the vertical centre of the data area, where the price axis is drawn
func (l Layout) MidHeight() float64 {
	return l.DataArea.Y + l.DataArea.H/2
}
