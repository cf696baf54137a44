// Package viewport maps between screen pixels and math coordinates under pan and zoom.
//
// The math origin sits at screen (-OffsetX, OffsetY). Screen y grows downwards, math y grows
// upwards. At Zoom 1 one math unit spans XScale (YScale) pixels.
package viewport

import "math"

// Direction selects a zoom step.
type Direction int8

const (
	ZoomOut Direction = -1
	ZoomIn  Direction = 1
)

// Params holds the fixed tunables of a viewport.
type Params struct {
	XScale    float64
	YScale    float64
	PanX      float64
	PanY      float64
	ZoomSpeed float64
	MinZoom   float64
	MaxZoom   float64
}

// DefaultParams matches the stock configuration.
func DefaultParams() Params {
	return Params{
		XScale:    75,
		YScale:    75,
		PanX:      2,
		PanY:      -2,
		ZoomSpeed: 1.5,
		MinZoom:   0.001,
		MaxZoom:   1000,
	}
}

// State is a copy of the mutable part of a Viewport.
type State struct {
	OffsetX float64
	OffsetY float64
	Zoom    float64
}

// Viewport owns pan offsets and the zoom scalar.
type Viewport struct {
	p Params

	OffsetX float64
	OffsetY float64
	Zoom    float64
}

// New returns a viewport at zoom 1 with the origin in the top-left corner.
func New(p Params) *Viewport {
	return &Viewport{p: p, Zoom: 1}
}

func (v *Viewport) Params() Params { return v.p }

func (v *Viewport) State() State {
	return State{OffsetX: v.OffsetX, OffsetY: v.OffsetY, Zoom: v.Zoom}
}

// Reset returns to zoom 1 and zero offsets.
func (v *Viewport) Reset() {
	v.OffsetX = 0
	v.OffsetY = 0
	v.Zoom = 1
}

// Pan moves the view by a pointer delta (previous minus current position).
func (v *Viewport) Pan(dx, dy float64) {
	v.OffsetX += dx * v.p.PanX
	v.OffsetY += dy * v.p.PanY
}

// ZoomAt performs one zoom step keeping the math point under (sx, sy) fixed on screen.
// It reports whether the zoom changed; a step requested at the bound is a no-op.
func (v *Viewport) ZoomAt(sx, sy int, dir Direction) bool {
	cx := float64(sx) + v.OffsetX
	cy := -float64(sy) + v.OffsetY

	old := v.Zoom
	z := old
	switch {
	case dir == ZoomIn && old != v.p.MaxZoom:
		z *= v.p.ZoomSpeed
		if z > v.p.MaxZoom {
			z = v.p.MaxZoom
		}
	case dir == ZoomOut && old != v.p.MinZoom:
		z /= v.p.ZoomSpeed
		if z < v.p.MinZoom {
			z = v.p.MinZoom
		}
	default:
		return false
	}

	if z == 0 || math.IsNaN(z) || math.IsInf(z, 0) {
		v.Zoom = 1
		return true
	}

	// The clamped step scales by less than ZoomSpeed; use the ratio actually applied.
	r := z / old
	v.Zoom = z
	v.OffsetX += cx*r - cx
	v.OffsetY += cy*r - cy
	return true
}

// ScreenToMath converts a screen position to math coordinates.
func (v *Viewport) ScreenToMath(sx, sy float64) (mx, my float64) {
	mx = (sx + v.OffsetX) / (v.p.XScale * v.Zoom)
	my = (v.OffsetY - sy) / (v.p.YScale * v.Zoom)
	return mx, my
}

// MathToScreen converts math coordinates to a screen position.
func (v *Viewport) MathToScreen(mx, my float64) (sx, sy float64) {
	sx = mx*v.p.XScale*v.Zoom - v.OffsetX
	sy = v.OffsetY - my*v.p.YScale*v.Zoom
	return sx, sy
}

// ScreenY converts a math y value to a screen row.
func (v *Viewport) ScreenY(my float64) float64 {
	return v.OffsetY - my*v.p.YScale*v.Zoom
}

// LeftX is the math x coordinate at screen x = 0.
func (v *Viewport) LeftX() float64 {
	return v.OffsetX / v.p.XScale / v.Zoom
}

// Origin is the screen position of the math origin.
func (v *Viewport) Origin() (x, y float64) {
	return -v.OffsetX, v.OffsetY
}
