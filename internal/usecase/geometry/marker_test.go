package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTriangleOffset(t *testing.T) {
	// sqrt(25 / (sqrt(3) * 3)) * 2
	assert.InDelta(t, 4.386914, TriangleOffset(25), 1e-6)
	assert.InDelta(t, 0.0, TriangleOffset(0), 1e-12)

	// Quadrupling the area doubles the offset
	assert.InDelta(t, 2*TriangleOffset(25), TriangleOffset(100), 1e-9)
}

func TestTrianglePoints_Geometry(t *testing.T) {
	c := Point{X: 70, Y: 12.5 + TriangleOffset(25)}
	pts := TrianglePoints(c, 25)

	// Apex lands back on the anchor line
	assert.Equal(t, 70.0, pts[0].X)
	assert.InDelta(t, 12.5, pts[0].Y, 1e-9)

	// Base is horizontal and symmetric around the centre
	assert.InDelta(t, pts[1].Y, pts[2].Y, 1e-12)
	assert.InDelta(t, c.X-pts[1].X, pts[2].X-c.X, 1e-12)

	// Shoelace area matches the requested glyph area
	area := math.Abs((pts[0].X*(pts[1].Y-pts[2].Y) +
		pts[1].X*(pts[2].Y-pts[0].Y) +
		pts[2].X*(pts[0].Y-pts[1].Y)) / 2)
	assert.InDelta(t, 25.0, area, 1e-9)

	// Equilateral
	side := func(a, b Point) float64 { return math.Hypot(a.X-b.X, a.Y-b.Y) }
	assert.InDelta(t, side(pts[0], pts[1]), side(pts[1], pts[2]), 1e-9)
	assert.InDelta(t, side(pts[1], pts[2]), side(pts[2], pts[0]), 1e-9)
}

func TestNewPurchaseMarker(t *testing.T) {
	m := NewPurchaseMarker(30, 12.5)

	assert.Equal(t, Point{X: 30, Y: 12.5}, m.Center)
	assert.Equal(t, 3.0, m.Radius)
}

func TestNewCurrentMarker(t *testing.T) {
	m := NewCurrentMarker(70, 12.5)

	assert.Equal(t, 70.0, m.Center.X)
	assert.InDelta(t, 12.5+4.386914, m.Center.Y, 1e-6)
	assert.Equal(t, 25.0, m.Area)
	assert.Equal(t, "green", m.Fill)
	assert.Equal(t, TrianglePoints(m.Center, 25), m.Points)
}
