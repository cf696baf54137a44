package fbdraw

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// Label font cell and the baseline row within it.
const (
	LabelCellW    = 6
	LabelCellH    = 8
	LabelBaseline = 6
)

// LabelFont is a 5x7 bitmap font in a 6x8 cell covering tick label text.
//
// It implements tinyfont.Fonter. Concurrent access is not safe due to internal glyph reuse.
var LabelFont tinyfont.Fonter = newLabelFont()

func newLabelFont() *labelFont { return &labelFont{} }

type labelFont struct {
	g labelGlyph
}

type labelGlyph struct {
	rows *[7]uint8
	r    rune
}

func (g *labelGlyph) Draw(display drivers.Displayer, x, y int16, c color.RGBA) {
	if g.rows == nil {
		return
	}
	for row := 0; row < 7; row++ {
		b := g.rows[row]
		// bit4 = leftmost pixel.
		for col := 0; col < 5; col++ {
			if b&(0x10>>col) == 0 {
				continue
			}
			display.SetPixel(x+int16(col), y-int16(LabelBaseline-row), c)
		}
	}
}

func (g *labelGlyph) Info() tinyfont.GlyphInfo {
	return tinyfont.GlyphInfo{
		Rune:     g.r,
		Width:    LabelCellW,
		Height:   LabelCellH,
		XAdvance: LabelCellW,
		YOffset:  -LabelBaseline,
	}
}

func (f *labelFont) GetYAdvance() uint8 { return LabelCellH }

func (f *labelFont) GetGlyph(r rune) tinyfont.Glypher {
	rows, ok := glyphs[r]
	if !ok {
		rows = glyphs['?']
	}
	f.g.r = r
	f.g.rows = &rows
	return &f.g
}

// HasGlyph reports whether r has its own bitmap in LabelFont.
func HasGlyph(r rune) bool {
	_, ok := glyphs[r]
	return ok
}

var glyphs = map[rune][7]uint8{
	'0': {0x0E, 0x11, 0x13, 0x15, 0x19, 0x11, 0x0E},
	'1': {0x04, 0x0C, 0x04, 0x04, 0x04, 0x04, 0x0E},
	'2': {0x0E, 0x11, 0x01, 0x02, 0x04, 0x08, 0x1F},
	'3': {0x1F, 0x02, 0x04, 0x02, 0x01, 0x11, 0x0E},
	'4': {0x02, 0x06, 0x0A, 0x12, 0x1F, 0x02, 0x02},
	'5': {0x1F, 0x10, 0x1E, 0x01, 0x01, 0x11, 0x0E},
	'6': {0x06, 0x08, 0x10, 0x1E, 0x11, 0x11, 0x0E},
	'7': {0x1F, 0x01, 0x02, 0x04, 0x08, 0x08, 0x08},
	'8': {0x0E, 0x11, 0x11, 0x0E, 0x11, 0x11, 0x0E},
	'9': {0x0E, 0x11, 0x11, 0x0F, 0x01, 0x02, 0x0C},
	'.': {0x00, 0x00, 0x00, 0x00, 0x00, 0x0C, 0x0C},
	'-': {0x00, 0x00, 0x00, 0x1F, 0x00, 0x00, 0x00},
	'+': {0x00, 0x04, 0x04, 0x1F, 0x04, 0x04, 0x00},
	' ': {},
	'?': {0x0E, 0x11, 0x01, 0x02, 0x04, 0x00, 0x04},
}
