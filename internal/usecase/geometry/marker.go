package geometry

import "math"

const (
	// PurchaseMarkerRadius is the radius of the purchase-price dot
	PurchaseMarkerRadius = 3.0

	// CurrentMarkerArea is the area of the current-price triangle, in square pixels
	CurrentMarkerArea = 25.0

	// CurrentMarkerColor fills and strokes the current-price triangle
	CurrentMarkerColor = "green"
)

var sqrt3 = math.Sqrt(3)

// Point is a pixel coordinate
type Point struct {
	X float64
	Y float64
}

// CircleMarker is a filled dot
type CircleMarker struct {
	Center Point
	Radius float64
}

// TriangleMarker is an equilateral glyph whose apex sits on the anchor point
type TriangleMarker struct {
	Center Point
	Area   float64
	Fill   string
	Points [3]Point
}

// triangleUnit is the distance from the glyph's centroid to the middle of its base
func triangleUnit(area float64) float64 {
	return math.Sqrt(area / (sqrt3 * 3))
}

// TriangleOffset is how far below an anchor the triangle's centroid must be
// placed so that its apex touches the anchor. It must track the glyph area.
func TriangleOffset(area float64) float64 {
	return triangleUnit(area) * 2
}

// TrianglePoints returns the apex, bottom-left and bottom-right vertices of an
// upward-pointing equilateral triangle of the given area centred on c
func TrianglePoints(c Point, area float64) [3]Point {
	r := triangleUnit(area)
	return [3]Point{
		{X: c.X, Y: c.Y - 2*r},
		{X: c.X - sqrt3*r, Y: c.Y + r},
		{X: c.X + sqrt3*r, Y: c.Y + r},
	}
}

// NewPurchaseMarker places the purchase dot on the axis at x
func NewPurchaseMarker(x, midHeight float64) CircleMarker {
	return CircleMarker{
		Center: Point{X: x, Y: midHeight},
		Radius: PurchaseMarkerRadius,
	}
}

// NewCurrentMarker places the current-price triangle with its apex on the axis at x
func NewCurrentMarker(x, midHeight float64) TriangleMarker {
	center := Point{X: x, Y: midHeight + TriangleOffset(CurrentMarkerArea)}
	return TriangleMarker{
		Center: center,
		Area:   CurrentMarkerArea,
		Fill:   CurrentMarkerColor,
		Points: TrianglePoints(center, CurrentMarkerArea),
	}
}
