package render

import (
	"fmt"
	"math"

	"plotview/graph/sampler"
	"plotview/graph/viewport"
)

// SampleMode selects how the sampler cursor follows the screen across one frame.
type SampleMode uint8

const (
	// SampleDerive computes every cursor position from the frame's left edge.
	SampleDerive SampleMode = iota
	// SampleAccumulate advances the cursor step by step from the left edge.
	SampleAccumulate
)

func (m SampleMode) String() string {
	if m == SampleAccumulate {
		return "accumulate"
	}
	return "derive"
}

// ParseSampleMode accepts "derive" and "accumulate".
func ParseSampleMode(s string) (SampleMode, error) {
	switch s {
	case "", "derive":
		return SampleDerive, nil
	case "accumulate":
		return SampleAccumulate, nil
	}
	return SampleDerive, fmt.Errorf("render: unknown sample mode %q", s)
}

// Curve draws the sampled function across the visible width.
type Curve struct {
	Sampler *sampler.Sampler
	Width   int
	Height  int

	Color          Color
	HighlightColor Color
	// Highlight alternates the segment color to show the sample density.
	Highlight bool

	Mode SampleMode
	// MaxSegments caps the segments drawn per frame; zero means no cap.
	MaxSegments int
}

// Stats counts the work done for one frame.
type Stats struct {
	Segments int
	Drawn    int
}

// Draw resynchronizes the sampler to the viewport and emits the visible segments.
func (c *Curve) Draw(vp *viewport.Viewport, lr LineRenderer) Stats {
	var st Stats
	if c.Sampler == nil || c.Width <= 0 {
		return st
	}

	dx := c.Sampler.Step() * vp.Params().XScale * vp.Zoom
	if dx <= 0 || math.IsNaN(dx) || math.IsInf(dx, 0) {
		return st
	}

	base := vp.LeftX()
	c.Sampler.Reposition(base)
	prev := vp.ScreenY(c.Sampler.Advance())

	w := float64(c.Width)
	h := float64(c.Height)
	visible := func(y float64) bool { return y >= 0 && y < h }

	col := c.Color
	alt := false
	x := 0.0
	for i := 0; ; i++ {
		if c.Mode == SampleDerive {
			x = float64(i) * dx
			c.Sampler.Seek(base, i+1)
		}
		if x >= w || (c.MaxSegments > 0 && st.Segments >= c.MaxSegments) {
			break
		}

		next := vp.ScreenY(c.Sampler.Advance())
		st.Segments++
		if visible(prev) || visible(next) {
			lr.DrawSegment(x, prev, x+dx, next, col)
			st.Drawn++
		}
		prev = next

		if c.Highlight {
			alt = !alt
			col = c.Color
			if alt {
				col = c.HighlightColor
			}
		}
		x += dx
	}
	return st
}
