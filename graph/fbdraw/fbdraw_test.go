package fbdraw

import (
	"errors"
	"io"
	"testing"

	"plotview/graph/render"
	"plotview/hal"
)

func newSurface(t *testing.T, w, h int) (*Surface, hal.Framebuffer) {
	t.Helper()
	host := hal.NewHost(hal.HostConfig{Width: w, Height: h, LogOutput: io.Discard})
	fb := host.Display().Framebuffer()
	s, err := New(fb)
	if err != nil {
		t.Fatalf("New() err = %v", err)
	}
	s.Clear(render.ColorBackground)
	return s, fb
}

func pixelAt(fb hal.Framebuffer, x, y int) uint16 {
	buf := fb.Buffer()
	off := y*fb.StrideBytes() + x*2
	return uint16(buf[off]) | uint16(buf[off+1])<<8
}

func countPixels(fb hal.Framebuffer, want uint16) int {
	n := 0
	for y := 0; y < fb.Height(); y++ {
		for x := 0; x < fb.Width(); x++ {
			if pixelAt(fb, x, y) == want {
				n++
			}
		}
	}
	return n
}

func TestNewRejectsNil(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, render.ErrInitialization) {
		t.Fatalf("New(nil) err = %v, want ErrInitialization", err)
	}
}

func TestDrawSegmentHorizontal(t *testing.T) {
	s, fb := newSurface(t, 32, 16)
	s.DrawSegment(2, 3, 9, 3, render.ColorCurve)

	black := hal.RGB565(0, 0, 0)
	for x := 2; x <= 9; x++ {
		if pixelAt(fb, x, 3) != black {
			t.Fatalf("pixel (%d,3) not drawn", x)
		}
	}
	if got := countPixels(fb, black); got != 8 {
		t.Fatalf("drawn pixels = %d, want 8", got)
	}
}

func TestDrawSegmentDiagonalEndpoints(t *testing.T) {
	s, fb := newSurface(t, 32, 16)
	s.DrawSegment(0, 0, 10, 10, render.ColorCurve)

	black := hal.RGB565(0, 0, 0)
	for i := 0; i <= 10; i++ {
		if pixelAt(fb, i, i) != black {
			t.Fatalf("pixel (%d,%d) not drawn", i, i)
		}
	}
}

func TestDrawSegmentClipped(t *testing.T) {
	s, fb := newSurface(t, 32, 16)
	s.DrawSegment(-100, 5, 100, 5, render.ColorCurve)

	black := hal.RGB565(0, 0, 0)
	if got := countPixels(fb, black); got != 32 {
		t.Fatalf("drawn pixels = %d, want the full row of 32", got)
	}

	s.Clear(render.ColorBackground)
	s.DrawSegment(-50, -50, -10, -20, render.ColorCurve)
	s.DrawSegment(10, 40, 20, 90, render.ColorCurve)
	if got := countPixels(fb, black); got != 0 {
		t.Fatalf("offscreen segments drew %d pixels", got)
	}
}

func TestStampStaysInBox(t *testing.T) {
	s, fb := newSurface(t, 64, 32)
	text := "-1.25"
	w, h := len(text)*LabelCellW, LabelCellH
	if err := s.Stamp(text, 4, 10, w, h, render.ColorCurve); err != nil {
		t.Fatalf("Stamp() err = %v", err)
	}

	black := hal.RGB565(0, 0, 0)
	inside := 0
	for y := 0; y < fb.Height(); y++ {
		for x := 0; x < fb.Width(); x++ {
			if pixelAt(fb, x, y) != black {
				continue
			}
			if x < 4 || x >= 4+w || y < 10 || y >= 10+h {
				t.Fatalf("label pixel (%d,%d) outside box", x, y)
			}
			inside++
		}
	}
	if inside == 0 {
		t.Fatalf("label drew nothing")
	}
}

func TestStampErrors(t *testing.T) {
	s, _ := newSurface(t, 64, 32)
	if err := s.Stamp("1x", 0, 0, 12, 8, render.ColorCurve); !errors.Is(err, ErrLabelSurface) {
		t.Fatalf("unknown glyph: err = %v, want ErrLabelSurface", err)
	}
	if err := s.Stamp("1", 0, 0, MaxLabelBox+1, 8, render.ColorCurve); !errors.Is(err, ErrLabelSurface) {
		t.Fatalf("oversized box: err = %v, want ErrLabelSurface", err)
	}
	if err := s.Stamp("1", 0, 0, 0, 8, render.ColorCurve); !errors.Is(err, ErrLabelSurface) {
		t.Fatalf("empty box: err = %v, want ErrLabelSurface", err)
	}
}

func TestLabelFontCoversLabels(t *testing.T) {
	for _, r := range "0123456789.-+ " {
		if !HasGlyph(r) {
			t.Fatalf("missing glyph %q", r)
		}
	}
	if HasGlyph('x') {
		t.Fatalf("unexpected glyph for 'x'")
	}
}
