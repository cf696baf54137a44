// Package ggdraw renders frames with the gg 2D library, for anti-aliased PNG snapshots.
package ggdraw

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"plotview/graph/render"
)

// ErrNoFont is returned by Stamp when no font face is loaded.
var ErrNoFont = errors.New("ggdraw: no font loaded")

// DefaultFontSize is the label size in points.
const DefaultFontSize = 10

// Canvas is a session.Surface over a gg.Context.
type Canvas struct {
	dc     *gg.Context
	source *text.FontSource
	face   text.Face
}

func New(width, height int) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: canvas %dx%d", render.ErrInitialization, width, height)
	}
	return &Canvas{dc: gg.NewContext(width, height)}, nil
}

// LoadFont loads a TrueType face from path at size points. An empty path loads Go Regular.
func (c *Canvas) LoadFont(path string, size float64) error {
	if size <= 0 {
		size = DefaultFontSize
	}
	var (
		src *text.FontSource
		err error
	)
	if path == "" {
		src, err = text.NewFontSource(goregular.TTF)
	} else {
		src, err = text.NewFontSourceFromFile(path)
	}
	if err != nil {
		return fmt.Errorf("load font %q: %w", path, err)
	}
	if c.source != nil {
		c.source.Close()
	}
	c.source = src
	c.face = src.Face(size)
	c.dc.SetFont(c.face)
	return nil
}

// CharSize estimates the label cell from the loaded face.
func (c *Canvas) CharSize() (w, h int) {
	if c.face == nil {
		return 0, 0
	}
	m := c.face.Metrics()
	return int(c.face.Advance("0") + 0.5), int(m.Ascent + m.Descent + 0.5)
}

func (c *Canvas) Clear(col render.Color) { c.dc.ClearWithColor(gg.FromColor(col)) }

func (c *Canvas) DrawSegment(x0, y0, x1, y1 float64, col render.Color) {
	c.dc.SetColor(col)
	c.dc.SetLineWidth(1)
	c.dc.DrawLine(x0, y0, x1, y1)
	c.dc.Stroke()
}

// Stamp draws text with its top-left corner at (x, y). The box size is advisory.
func (c *Canvas) Stamp(s string, x, y, w, h int, col render.Color) error {
	if c.face == nil {
		return ErrNoFont
	}
	for _, r := range s {
		if !c.face.HasGlyph(r) {
			return fmt.Errorf("ggdraw: no glyph for %q", r)
		}
	}
	c.dc.SetColor(col)
	c.dc.DrawString(s, float64(x), float64(y)+c.face.Metrics().Ascent)
	return nil
}

func (c *Canvas) Image() image.Image { return c.dc.Image() }

func (c *Canvas) SavePNG(path string) error {
	if err := c.dc.SavePNG(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func (c *Canvas) Close() error {
	var err error
	if c.source != nil {
		err = c.source.Close()
		c.source = nil
	}
	return errors.Join(err, c.dc.Close())
}
