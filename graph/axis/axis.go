// Package axis plans tick marks for the two coordinate axes.
//
// Tick spacing is kept within [MaxInterval/2, MaxInterval] pixels by picking a power-of-two
// divide factor from the zoom: when the zoom doubles the interval splits in two, when it halves
// neighbouring intervals merge.
package axis

import (
	"math"

	"plotview/graph/viewport"
)

// Tick is one labeled graduation.
type Tick struct {
	Pos   int
	Value float64
	Label string
}

// Axis is the plan for one axis in one frame.
type Axis struct {
	Visible bool
	// Line is the screen coordinate of the axis line: a row for the horizontal axis,
	// a column for the vertical one.
	Line   int
	Step   int
	Divide float64
	Ticks  []Tick
}

// Layout holds both axes.
type Layout struct {
	X Axis
	Y Axis
}

// maxTickIndex bounds the tick counter to integers exactly representable as float64.
const maxTickIndex = 1 << 53

// Planner computes tick layouts.
type Planner struct {
	XScale      float64
	YScale      float64
	MaxInterval float64
	Width       int
	Height      int

	xbuf []Tick
	ybuf []Tick
}

// Divide returns the power-of-two factor for a zoom level.
// With maxInterval == 2*scale this is 2^floor(log2(zoom)).
func Divide(zoom, scale, maxInterval float64) float64 {
	px := scale * zoom / (maxInterval / 2)
	if px <= 0 || math.IsNaN(px) || math.IsInf(px, 0) {
		return 1
	}
	return math.Exp2(math.Floor(math.Log2(px)))
}

// Spacing returns the divide factor, the exact pixel distance between ticks and its
// rounded integer form (never below one pixel).
func Spacing(zoom, scale, maxInterval float64) (divide, stepF float64, step int) {
	divide = Divide(zoom, scale, maxInterval)
	stepF = scale * zoom / divide
	if stepF < 1 || math.IsNaN(stepF) {
		stepF = 1
	}
	step = int(math.Round(stepF))
	if step < 1 {
		step = 1
	}
	return divide, stepF, step
}

// Plan computes both axes for the given viewport state. The returned tick slices are
// reused by the next call.
func (p *Planner) Plan(st viewport.State) Layout {
	var l Layout
	l.X, p.xbuf = p.planX(st, p.xbuf[:0])
	l.Y, p.ybuf = p.planY(st, p.ybuf[:0])
	return l
}

// planX lays out the horizontal axis, drawn at row OffsetY.
func (p *Planner) planX(st viewport.State, buf []Tick) (Axis, []Tick) {
	if st.OffsetY < 0 || st.OffsetY > float64(p.Height) {
		return Axis{}, buf
	}
	divide, stepF, step := Spacing(st.Zoom, p.XScale, p.MaxInterval)
	a := Axis{Visible: true, Line: int(st.OffsetY), Step: step, Divide: divide}

	// Tick k sits at k*stepF - OffsetX.
	k0 := math.Ceil(st.OffsetX / stepF)
	if math.Abs(k0) > maxTickIndex {
		a.Ticks = buf
		return a, buf
	}
	k := int64(k0)
	for n := 0; n <= p.Width+1; n++ {
		pos := math.Round(float64(k)*stepF - st.OffsetX)
		if pos >= float64(p.Width) {
			break
		}
		if k != 0 && pos >= 0 {
			v := float64(k) / divide
			buf = append(buf, Tick{Pos: int(pos), Value: v, Label: FormatLabel(v)})
		}
		k++
	}
	a.Ticks = buf
	return a, buf
}

// planY lays out the vertical axis, drawn at column -OffsetX. Values decrease down the screen.
func (p *Planner) planY(st viewport.State, buf []Tick) (Axis, []Tick) {
	if st.OffsetX > 0 || st.OffsetX < -float64(p.Width) {
		return Axis{}, buf
	}
	divide, stepF, step := Spacing(st.Zoom, p.YScale, p.MaxInterval)
	a := Axis{Visible: true, Line: int(-st.OffsetX), Step: step, Divide: divide}

	// Tick k sits at OffsetY - k*stepF.
	k0 := math.Floor(st.OffsetY / stepF)
	if math.Abs(k0) > maxTickIndex {
		a.Ticks = buf
		return a, buf
	}
	k := int64(k0)
	for n := 0; n <= p.Height+1; n++ {
		pos := math.Round(st.OffsetY - float64(k)*stepF)
		if pos >= float64(p.Height) {
			break
		}
		if k != 0 && pos >= 0 {
			v := float64(k) / divide
			buf = append(buf, Tick{Pos: int(pos), Value: v, Label: FormatLabel(v)})
		}
		k--
	}
	a.Ticks = buf
	return a, buf
}
