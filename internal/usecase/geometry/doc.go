// Package geometry computes the pixel layout of an option spark diagram.
//
// # Overview
//
// A diagram is a single horizontal price axis split at the strike, plus two
// markers: a dot for the underlying price at purchase and a triangle for the
// current price. [ComputeRenderPlan] resolves every coordinate and style into
// a [RenderPlan] that a drawing backend can paint without further arithmetic.
//
// # Scale
//
// Prices map to pixels through a [LinearScale] over the layout's data area.
// Results are rounded to whole pixels, halves toward +Inf. Prices outside the
// range extrapolate, so markers may land off-canvas.
//
// # Axis styling
//
// The segment on the side where the holder would not own the underlying at
// expiry is dashed:
//
//   - CALL: the segment after the strike
//   - PUT: the segment before the strike
//
// # Integration
//
//	domain.Option → ComputeRenderPlan → svg.Paint → SVG bytes
//
// The engine performs no validation; callers check ranges and finiteness first.
package geometry
