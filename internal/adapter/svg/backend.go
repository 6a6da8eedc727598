package svg

import (
	"github.com/accounted4/optionspark/internal/usecase/geometry"
)

// Backend is the drawing capability a RenderPlan is painted onto
type Backend interface {
	CreateCanvas(size geometry.Size)
	DrawLine(from, to geometry.Point, dashed bool)
	DrawCircle(center geometry.Point, radius float64)
	DrawPolygon(points []geometry.Point, fill string)
}

// Paint translates a RenderPlan into backend calls
// Paint order: axis before strike, axis after strike, purchase dot, current triangle
func Paint(plan geometry.RenderPlan, b Backend) {
	b.CreateCanvas(plan.Layout.Full)
	b.DrawLine(plan.Before.From, plan.Before.To, plan.Before.Dashed)
	b.DrawLine(plan.After.From, plan.After.To, plan.After.Dashed)
	b.DrawCircle(plan.Purchase.Center, plan.Purchase.Radius)
	b.DrawPolygon(plan.Current.Points[:], plan.Current.Fill)
}

// Render paints the plan onto a fresh SVG document and returns its bytes
func Render(plan geometry.RenderPlan) ([]byte, error) {
	doc := NewDocument()
	Paint(plan, doc)
	return doc.Bytes()
}
