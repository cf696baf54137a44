// Package render turns viewport, axis and sampler state into draw calls.
//
// Drawing goes through two capabilities so the same frame logic can target the window
// framebuffer or an offscreen gg canvas.
package render

import (
	"errors"
	"fmt"
	"image/color"
)

// Color is an opaque RGBA color.
type Color = color.RGBA

var (
	ColorBackground = Color{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	ColorAxis       = Color{R: 0x80, G: 0x80, B: 0x80, A: 0xFF}
	ColorCurve      = Color{R: 0x00, G: 0x00, B: 0x00, A: 0xFF}
	ColorHighlight  = Color{R: 0xFF, G: 0x00, B: 0x00, A: 0xFF}
	ColorLabel      = Color{R: 0x40, G: 0x40, B: 0x40, A: 0xFF}
	ColorCrosshair  = Color{R: 0x00, G: 0x00, B: 0x00, A: 0xFF}
)

// LineRenderer draws one 1-pixel segment.
type LineRenderer interface {
	DrawSegment(x0, y0, x1, y1 float64, c Color)
}

// TextStamper rasterizes a label into a box at (x, y).
type TextStamper interface {
	Stamp(text string, x, y, w, h int, c Color) error
}

// ErrInitialization marks failures to set up a rendering target.
var ErrInitialization = errors.New("render: initialization failed")

// LabelError reports a label that could not be stamped.
type LabelError struct {
	Text string
	Err  error
}

func (e *LabelError) Error() string {
	return fmt.Sprintf("render: label %q: %v", e.Text, e.Err)
}

func (e *LabelError) Unwrap() error { return e.Err }

// LabelPolicy decides what a failed label does to the frame.
type LabelPolicy uint8

const (
	// LabelSkip drops the label, logs a warning and keeps drawing.
	LabelSkip LabelPolicy = iota
	// LabelAbort stops the frame and returns the failure.
	LabelAbort
)

func (p LabelPolicy) String() string {
	if p == LabelAbort {
		return "abort"
	}
	return "skip"
}

// ParseLabelPolicy accepts "skip" and "abort".
func ParseLabelPolicy(s string) (LabelPolicy, error) {
	switch s {
	case "", "skip":
		return LabelSkip, nil
	case "abort":
		return LabelAbort, nil
	}
	return LabelSkip, fmt.Errorf("render: unknown label policy %q", s)
}

// Fade blends c toward bg as remaining counts down to zero.
func Fade(c, bg Color, remaining, total uint) Color {
	if total == 0 || remaining >= total {
		return c
	}
	mix := func(a, b uint8) uint8 {
		return uint8((uint(a)*remaining + uint(b)*(total-remaining)) / total)
	}
	return Color{R: mix(c.R, bg.R), G: mix(c.G, bg.G), B: mix(c.B, bg.B), A: 0xFF}
}

// Crosshair draws a cross of the given half-size centered on (x, y).
func Crosshair(lr LineRenderer, x, y, size int, c Color) {
	fx, fy, fs := float64(x), float64(y), float64(size)
	lr.DrawSegment(fx, fy-fs, fx, fy+fs, c)
	lr.DrawSegment(fx-fs, fy, fx+fs, fy, c)
}
