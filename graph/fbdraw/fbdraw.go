// Package fbdraw draws segments and labels into an RGB565 hal.Framebuffer.
package fbdraw

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"sync"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"

	"plotview/graph/render"
	"plotview/hal"
)

// MaxLabelBox bounds the scratch surface of one label, in pixels per side.
const MaxLabelBox = 256

// ErrLabelSurface reports a label that cannot be rasterized.
var ErrLabelSurface = errors.New("fbdraw: label surface unavailable")

// Surface is a render.LineRenderer and render.TextStamper over a framebuffer.
type Surface struct {
	fb   hal.Framebuffer
	font tinyfont.Fonter

	pool sync.Pool
}

// New wraps fb. Only RGB565 framebuffers are supported.
func New(fb hal.Framebuffer) (*Surface, error) {
	if fb == nil {
		return nil, fmt.Errorf("%w: no framebuffer", render.ErrInitialization)
	}
	if fb.Format() != hal.PixelFormatRGB565 {
		return nil, fmt.Errorf("%w: unsupported pixel format %d", render.ErrInitialization, fb.Format())
	}
	s := &Surface{fb: fb, font: newLabelFont()}
	s.pool.New = func() any { return &labelSurface{} }
	return s, nil
}

// CharSize is the label font cell.
func (s *Surface) CharSize() (w, h int) { return LabelCellW, LabelCellH }

func (s *Surface) Clear(c render.Color) { s.fb.ClearRGB(c.R, c.G, c.B) }

func (s *Surface) Present() error { return s.fb.Present() }

// DrawSegment rasterizes a 1-pixel line with Bresenham's algorithm, clipped to the framebuffer.
func (s *Surface) DrawSegment(x0, y0, x1, y1 float64, c render.Color) {
	w := float64(s.fb.Width())
	h := float64(s.fb.Height())
	cx0, cy0, cx1, cy1, ok := clipLineToRect(x0, y0, x1, y1, 0, 0, w-1, h-1)
	if !ok {
		return
	}
	s.drawLine(roundInt(cx0), roundInt(cy0), roundInt(cx1), roundInt(cy1), c)
}

func (s *Surface) drawLine(x0, y0, x1, y1 int, c color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	pixel := hal.RGB565(c.R, c.G, c.B)
	err := dx + dy
	for {
		s.setPixel(x0, y0, pixel)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func (s *Surface) setPixel(x, y int, pixel uint16) {
	if x < 0 || y < 0 || x >= s.fb.Width() || y >= s.fb.Height() {
		return
	}
	buf := s.fb.Buffer()
	off := y*s.fb.StrideBytes() + x*2
	if off < 0 || off+1 >= len(buf) {
		return
	}
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

// Stamp rasterizes text into a pooled scratch surface of w by h pixels and blits it at (x, y).
// The scratch surface is returned to the pool on every path.
func (s *Surface) Stamp(text string, x, y, w, h int, c render.Color) error {
	if w <= 0 || h <= 0 || w > MaxLabelBox || h > MaxLabelBox {
		return fmt.Errorf("%w: box %dx%d", ErrLabelSurface, w, h)
	}
	for _, r := range text {
		if !HasGlyph(r) {
			return fmt.Errorf("%w: no glyph for %q", ErrLabelSurface, r)
		}
	}

	ls := s.pool.Get().(*labelSurface)
	defer s.pool.Put(ls)
	ls.reset(w, h)

	tinyfont.WriteLine(ls, s.font, 0, int16(LabelBaseline), text, c)
	s.blit(ls, x, y)
	return nil
}

func (s *Surface) blit(ls *labelSurface, x, y int) {
	for row := 0; row < ls.h; row++ {
		for col := 0; col < ls.w; col++ {
			i := row*ls.w + col
			if !ls.set[i] {
				continue
			}
			s.setPixel(x+col, y+row, ls.pix[i])
		}
	}
}

// labelSurface is a transparent scratch target for one label.
type labelSurface struct {
	w, h int
	pix  []uint16
	set  []bool
}

var _ drivers.Displayer = (*labelSurface)(nil)

func (l *labelSurface) reset(w, h int) {
	l.w, l.h = w, h
	n := w * h
	if cap(l.pix) < n {
		l.pix = make([]uint16, n)
		l.set = make([]bool, n)
	}
	l.pix = l.pix[:n]
	l.set = l.set[:n]
	for i := range l.set {
		l.set[i] = false
	}
}

func (l *labelSurface) Size() (x, y int16) { return int16(l.w), int16(l.h) }

func (l *labelSurface) SetPixel(x, y int16, c color.RGBA) {
	ix, iy := int(x), int(y)
	if ix < 0 || iy < 0 || ix >= l.w || iy >= l.h {
		return
	}
	i := iy*l.w + ix
	l.pix[i] = hal.RGB565(c.R, c.G, c.B)
	l.set[i] = true
}

func (l *labelSurface) Display() error { return nil }

func (l *labelSurface) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	for yy := y; yy < y+height; yy++ {
		for xx := x; xx < x+width; xx++ {
			l.SetPixel(xx, yy, c)
		}
	}
	return nil
}

func (l *labelSurface) SetRotation(drivers.Rotation) error { return nil }

func clipLineToRect(x0, y0, x1, y1, xmin, ymin, xmax, ymax float64) (cx0, cy0, cx1, cy1 float64, ok bool) {
	if math.IsNaN(x0) || math.IsNaN(y0) || math.IsNaN(x1) || math.IsNaN(y1) {
		return 0, 0, 0, 0, false
	}
	dx := x1 - x0
	dy := y1 - y0
	u1 := 0.0
	u2 := 1.0

	p := [4]float64{-dx, dx, -dy, dy}
	q := [4]float64{x0 - xmin, xmax - x0, y0 - ymin, ymax - y0}
	for i := 0; i < 4; i++ {
		if p[i] == 0 {
			if q[i] < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := q[i] / p[i]
		if p[i] < 0 {
			if t > u2 {
				return 0, 0, 0, 0, false
			}
			if t > u1 {
				u1 = t
			}
		} else {
			if t < u1 {
				return 0, 0, 0, 0, false
			}
			if t < u2 {
				u2 = t
			}
		}
	}

	cx0 = clamp(x0+u1*dx, xmin, xmax)
	cy0 = clamp(y0+u1*dy, ymin, ymax)
	cx1 = clamp(x0+u2*dx, xmin, xmax)
	cy1 = clamp(y0+u2*dy, ymin, ymax)
	return cx0, cy0, cx1, cy1, true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func roundInt(v float64) int {
	if v < 0 {
		return int(v - 0.5)
	}
	return int(v + 0.5)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
