package render

import (
	"errors"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"plotview/graph/axis"
	"plotview/graph/sampler"
	"plotview/graph/viewport"
)

type segment struct {
	x0, y0, x1, y1 float64
	c              Color
}

type recorder struct {
	segs []segment
}

func (r *recorder) DrawSegment(x0, y0, x1, y1 float64, c Color) {
	r.segs = append(r.segs, segment{x0, y0, x1, y1, c})
}

type stamp struct {
	text       string
	x, y, w, h int
}

type stamper struct {
	stamps []stamp
	fail   func(text string) error
}

func (s *stamper) Stamp(text string, x, y, w, h int, c Color) error {
	if s.fail != nil {
		if err := s.fail(text); err != nil {
			return err
		}
	}
	s.stamps = append(s.stamps, stamp{text, x, y, w, h})
	return nil
}

func newCurve(step float64, gen sampler.Generator) *Curve {
	return &Curve{
		Sampler:        sampler.New(step, gen),
		Width:          640,
		Height:         480,
		Color:          ColorCurve,
		HighlightColor: ColorHighlight,
	}
}

func TestCurveCoversWidth(t *testing.T) {
	vp := viewport.New(viewport.DefaultParams())
	vp.OffsetY = 240
	c := newCurve(0.1, math.Sin)
	var r recorder

	st := c.Draw(vp, &r)
	// dx = 0.1*75 = 7.5 px; x runs 0, 7.5, ... while x < 640.
	if st.Segments != 86 {
		t.Fatalf("Segments = %d, want 86", st.Segments)
	}
	if st.Drawn != st.Segments || len(r.segs) != st.Drawn {
		t.Fatalf("Drawn = %d, recorded %d, want %d", st.Drawn, len(r.segs), st.Segments)
	}
	if r.segs[0].x0 != 0 {
		t.Fatalf("first segment starts at %g, want 0", r.segs[0].x0)
	}
	last := r.segs[len(r.segs)-1]
	if last.x0 >= 640 || last.x1 < 640 {
		t.Fatalf("last segment [%g,%g] does not reach the right edge", last.x0, last.x1)
	}
	for i := 1; i < len(r.segs); i++ {
		a, b := r.segs[i-1], r.segs[i]
		if a.x1 != b.x0 || a.y1 != b.y0 {
			t.Fatalf("segments %d and %d are not connected: %+v %+v", i-1, i, a, b)
		}
	}
}

func TestCurveStartsAtLeftEdge(t *testing.T) {
	vp := viewport.New(viewport.DefaultParams())
	vp.OffsetX, vp.OffsetY, vp.Zoom = 300, 200, 2
	gen := func(x float64) float64 { return x / 10 }
	c := newCurve(0.01, gen)
	var r recorder
	c.Draw(vp, &r)

	base := vp.LeftX()
	want := vp.ScreenY(gen(base + 0.01))
	if math.Abs(r.segs[0].y0-want) > 1e-9 {
		t.Fatalf("first y = %g, want %g", r.segs[0].y0, want)
	}
	want = vp.ScreenY(gen(base + 0.02))
	if math.Abs(r.segs[0].y1-want) > 1e-9 {
		t.Fatalf("second y = %g, want %g", r.segs[0].y1, want)
	}
}

func TestCurveSkipsOffscreenSegments(t *testing.T) {
	vp := viewport.New(viewport.DefaultParams())
	vp.OffsetY = -1000
	c := newCurve(0.1, math.Sin)
	var r recorder

	st := c.Draw(vp, &r)
	if st.Segments == 0 {
		t.Fatalf("Segments = 0, want sampling to continue")
	}
	if st.Drawn != 0 || len(r.segs) != 0 {
		t.Fatalf("Drawn = %d, want 0", st.Drawn)
	}
}

func TestCurveHighlightAlternates(t *testing.T) {
	vp := viewport.New(viewport.DefaultParams())
	vp.OffsetY = 240
	c := newCurve(0.1, math.Sin)
	c.Highlight = true
	var r recorder
	c.Draw(vp, &r)

	for i, s := range r.segs {
		want := ColorCurve
		if i%2 == 1 {
			want = ColorHighlight
		}
		if s.c != want {
			t.Fatalf("segment %d color %v, want %v", i, s.c, want)
		}
	}
}

func TestCurveMaxSegments(t *testing.T) {
	vp := viewport.New(viewport.DefaultParams())
	vp.OffsetY = 240
	c := newCurve(0.1, math.Sin)
	c.MaxSegments = 10
	var r recorder
	if st := c.Draw(vp, &r); st.Segments != 10 {
		t.Fatalf("Segments = %d, want 10", st.Segments)
	}
}

func TestCurveModesAgree(t *testing.T) {
	vp := viewport.New(viewport.DefaultParams())
	vp.OffsetX, vp.OffsetY, vp.Zoom = -75, 240, 1
	gen, _ := sampler.Lookup("chirp")

	var derived, accumulated recorder
	d := newCurve(0.01, gen)
	d.Draw(vp, &derived)
	a := newCurve(0.01, gen)
	a.Mode = SampleAccumulate
	a.Draw(vp, &accumulated)

	n := len(derived.segs)
	if len(accumulated.segs) < n {
		n = len(accumulated.segs)
	}
	if n == 0 || math.Abs(float64(len(derived.segs)-len(accumulated.segs))) > 1 {
		t.Fatalf("segment counts %d vs %d", len(derived.segs), len(accumulated.segs))
	}
	for i := 0; i < n; i++ {
		if math.Abs(derived.segs[i].y1-accumulated.segs[i].y1) > 1e-6 {
			t.Fatalf("segment %d: y %g vs %g", i, derived.segs[i].y1, accumulated.segs[i].y1)
		}
	}
}

func TestAxesDrawsLinesTicksLabels(t *testing.T) {
	p := &axis.Planner{XScale: 75, YScale: 75, MaxInterval: 150, Width: 640, Height: 480}
	l := p.Plan(viewport.State{OffsetX: -320, OffsetY: 240, Zoom: 1})

	a := &Axes{Width: 640, Height: 480, TickLen: 5, CharW: 6, CharH: 8, LineColor: ColorAxis, LabelColor: ColorLabel}
	var r recorder
	var s stamper
	st, err := a.Draw(l, &r, &s)
	if err != nil {
		t.Fatalf("Draw() err = %v", err)
	}

	wantSegs := 2 + len(l.X.Ticks) + len(l.Y.Ticks)
	if len(r.segs) != wantSegs {
		t.Fatalf("segments = %d, want %d", len(r.segs), wantSegs)
	}
	if st.Stamped != len(l.X.Ticks)+len(l.Y.Ticks) || st.Skipped != 0 {
		t.Fatalf("stats = %+v", st)
	}
	for _, sp := range s.stamps {
		if sp.w != len(sp.text)*6 || sp.h != 8 {
			t.Fatalf("label %q box %dx%d", sp.text, sp.w, sp.h)
		}
	}
	if s.stamps[0].text != "-4.00" {
		t.Fatalf("first label = %q, want -4.00", s.stamps[0].text)
	}
}

func TestAxesSkipPolicyContinues(t *testing.T) {
	p := &axis.Planner{XScale: 75, YScale: 75, MaxInterval: 150, Width: 640, Height: 480}
	l := p.Plan(viewport.State{OffsetX: -320, OffsetY: 240, Zoom: 1})

	var buf strings.Builder
	a := &Axes{Width: 640, Height: 480, TickLen: 5, CharW: 6, CharH: 8, Log: log.New(&buf)}
	boom := errors.New("no texture")
	s := stamper{fail: func(text string) error {
		if text == "1.00" {
			return boom
		}
		return nil
	}}

	st, err := a.Draw(l, &recorder{}, &s)
	if err != nil {
		t.Fatalf("Draw() err = %v, want nil with skip policy", err)
	}
	if st.Skipped != 2 {
		// "1.00" appears once per axis.
		t.Fatalf("Skipped = %d, want 2", st.Skipped)
	}
	if !strings.Contains(buf.String(), "label skipped") {
		t.Fatalf("no warning logged: %q", buf.String())
	}
}

func TestAxesAbortPolicyStops(t *testing.T) {
	p := &axis.Planner{XScale: 75, YScale: 75, MaxInterval: 150, Width: 640, Height: 480}
	l := p.Plan(viewport.State{OffsetX: -320, OffsetY: 240, Zoom: 1})

	boom := errors.New("no texture")
	a := &Axes{Width: 640, Height: 480, TickLen: 5, CharW: 6, CharH: 8, Policy: LabelAbort, Log: log.New(io.Discard)}
	s := stamper{fail: func(text string) error {
		if text == "-2.00" {
			return boom
		}
		return nil
	}}

	st, err := a.Draw(l, &recorder{}, &s)
	var le *LabelError
	if !errors.As(err, &le) || le.Text != "-2.00" || !errors.Is(err, boom) {
		t.Fatalf("Draw() err = %v, want LabelError for -2.00", err)
	}
	if st.Stamped != 2 {
		t.Fatalf("Stamped = %d, want 2 before the failure", st.Stamped)
	}
}

func TestParsePolicies(t *testing.T) {
	if p, err := ParseLabelPolicy("abort"); err != nil || p != LabelAbort {
		t.Fatalf("ParseLabelPolicy(abort) = %v, %v", p, err)
	}
	if _, err := ParseLabelPolicy("retry"); err == nil {
		t.Fatalf("ParseLabelPolicy(retry) err = nil")
	}
	if m, err := ParseSampleMode("accumulate"); err != nil || m != SampleAccumulate {
		t.Fatalf("ParseSampleMode(accumulate) = %v, %v", m, err)
	}
	if _, err := ParseSampleMode("exact"); err == nil {
		t.Fatalf("ParseSampleMode(exact) err = nil")
	}
}

func TestFade(t *testing.T) {
	if got := Fade(ColorCrosshair, ColorBackground, 20, 20); got != ColorCrosshair {
		t.Fatalf("Fade(full) = %v", got)
	}
	if got := Fade(ColorCrosshair, ColorBackground, 0, 20); got != ColorBackground {
		t.Fatalf("Fade(0) = %v, want background", got)
	}
	mid := Fade(ColorCrosshair, ColorBackground, 10, 20)
	if mid.R != 127 || mid.G != 127 || mid.B != 127 {
		t.Fatalf("Fade(half) = %v", mid)
	}
}

func TestCrosshair(t *testing.T) {
	var r recorder
	Crosshair(&r, 50, 60, 10, ColorCrosshair)
	if len(r.segs) != 2 {
		t.Fatalf("segments = %d, want 2", len(r.segs))
	}
	if r.segs[0] != (segment{50, 50, 50, 70, ColorCrosshair}) {
		t.Fatalf("vertical = %+v", r.segs[0])
	}
}
