package render

import (
	"github.com/charmbracelet/log"

	"plotview/graph/axis"
)

// Axes draws the axis lines, tick marks and labels of a planned layout.
type Axes struct {
	Width   int
	Height  int
	TickLen int
	// CharW and CharH size the label box: len(label)*CharW by CharH.
	CharW int
	CharH int

	LineColor  Color
	LabelColor Color
	Policy     LabelPolicy
	Log        *log.Logger
}

// LabelStats counts labels per frame.
type LabelStats struct {
	Stamped int
	Skipped int
}

// Draw renders both axes. With LabelAbort the first failing label ends the frame and its
// *LabelError is returned; otherwise failures are logged and skipped.
func (a *Axes) Draw(l axis.Layout, lr LineRenderer, ts TextStamper) (LabelStats, error) {
	var st LabelStats
	tl := float64(a.TickLen)

	if l.X.Visible {
		y := float64(l.X.Line)
		lr.DrawSegment(0, y, float64(a.Width-1), y, a.LineColor)
		for _, t := range l.X.Ticks {
			x := float64(t.Pos)
			lr.DrawSegment(x, y-tl, x, y+tl, a.LineColor)
		}
	}
	if l.Y.Visible {
		x := float64(l.Y.Line)
		lr.DrawSegment(x, 0, x, float64(a.Height-1), a.LineColor)
		for _, t := range l.Y.Ticks {
			y := float64(t.Pos)
			lr.DrawSegment(x-tl, y, x+tl, y, a.LineColor)
		}
	}

	if ts == nil {
		return st, nil
	}

	if l.X.Visible {
		for _, t := range l.X.Ticks {
			w, h := a.box(t.Label)
			if err := a.stamp(ts, t.Label, t.Pos-w/2, l.X.Line+a.TickLen+2, w, h, &st); err != nil {
				return st, err
			}
		}
	}
	if l.Y.Visible {
		for _, t := range l.Y.Ticks {
			w, h := a.box(t.Label)
			if err := a.stamp(ts, t.Label, l.Y.Line+a.TickLen+2, t.Pos-h/2, w, h, &st); err != nil {
				return st, err
			}
		}
	}
	return st, nil
}

func (a *Axes) box(label string) (w, h int) {
	return len(label) * a.CharW, a.CharH
}

func (a *Axes) stamp(ts TextStamper, text string, x, y, w, h int, st *LabelStats) error {
	err := ts.Stamp(text, x, y, w, h, a.LabelColor)
	if err == nil {
		st.Stamped++
		return nil
	}
	le := &LabelError{Text: text, Err: err}
	if a.Policy == LabelAbort {
		return le
	}
	st.Skipped++
	if a.Log != nil {
		a.Log.Warn("label skipped", "text", text, "x", x, "y", y, "err", err)
	}
	return nil
}
