// Package session runs the per-frame protocol of the plotter: input mutates the viewport,
// the axis planner lays out ticks from the new state, and the curve is resampled.
package session

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"plotview/graph/axis"
	"plotview/graph/render"
	"plotview/graph/sampler"
	"plotview/graph/viewport"
	"plotview/hal/input"
)

// ErrQuit is returned by Step once the user asked to leave.
var ErrQuit = errors.New("session: quit")

// keyPanStep is the pointer-equivalent distance of one arrow key press.
const keyPanStep = 10

// Surface is a frame target.
type Surface interface {
	render.LineRenderer
	render.TextStamper
	Clear(c render.Color)
}

// Input is everything the HAL delivered since the previous frame.
type Input struct {
	Pointer []input.PointerEvent
	Keys    []input.KeyEvent
	// X and Y are the polled pointer position.
	X, Y int
	Quit bool
}

// State is the drag/zoom interaction state. It is not part of the viewport.
type State struct {
	Dragging bool
	AnchorX  int
	AnchorY  int
	// Fade counts down the frames left on the zoom crosshair.
	Fade uint
}

// Options configures a Session.
type Options struct {
	Viewport    viewport.Params
	Width       int
	Height      int
	MaxInterval float64
	TickLen     int
	CharW       int
	CharH       int

	Sampler     *sampler.Sampler
	Mode        render.SampleMode
	MaxSegments int
	Highlight   bool

	LabelPolicy   render.LabelPolicy
	FadeFrames    uint
	CrosshairSize int

	Log *log.Logger
}

// FrameStats summarizes one rendered frame.
type FrameStats struct {
	Curve  render.Stats
	Labels render.LabelStats
	Layout axis.Layout
}

// Session owns the viewport, sampler and interaction state for one window.
type Session struct {
	opts Options
	vp   *viewport.Viewport

	planner *axis.Planner
	axes    *render.Axes
	curve   *render.Curve

	state  State
	px, py int
	frames uint64
	log    *log.Logger
}

func New(opts Options) *Session {
	l := opts.Log
	if l == nil {
		l = log.Default()
	}
	return &Session{
		opts: opts,
		vp:   viewport.New(opts.Viewport),
		planner: &axis.Planner{
			XScale:      opts.Viewport.XScale,
			YScale:      opts.Viewport.YScale,
			MaxInterval: opts.MaxInterval,
			Width:       opts.Width,
			Height:      opts.Height,
		},
		axes: &render.Axes{
			Width:      opts.Width,
			Height:     opts.Height,
			TickLen:    opts.TickLen,
			CharW:      opts.CharW,
			CharH:      opts.CharH,
			LineColor:  render.ColorAxis,
			LabelColor: render.ColorLabel,
			Policy:     opts.LabelPolicy,
			Log:        l,
		},
		curve: &render.Curve{
			Sampler:        opts.Sampler,
			Width:          opts.Width,
			Height:         opts.Height,
			Color:          render.ColorCurve,
			HighlightColor: render.ColorHighlight,
			Highlight:      opts.Highlight,
			Mode:           opts.Mode,
			MaxSegments:    opts.MaxSegments,
		},
		log: l,
	}
}

func (s *Session) Viewport() *viewport.Viewport { return s.vp }
func (s *Session) State() State                 { return s.state }
func (s *Session) Frames() uint64               { return s.frames }

// Step handles input and renders one frame.
func (s *Session) Step(in Input, surf Surface) (FrameStats, error) {
	if err := s.Handle(in); err != nil {
		return FrameStats{}, err
	}
	return s.Render(surf)
}

// Handle applies one frame's worth of input to the viewport and interaction state.
func (s *Session) Handle(in Input) error {
	s.px, s.py = in.X, in.Y

	for _, ev := range in.Pointer {
		switch ev.Kind {
		case input.PointerDown:
			if ev.Button == input.ButtonPrimary {
				s.state.Dragging = true
				s.state.AnchorX, s.state.AnchorY = ev.X, ev.Y
			}
		case input.PointerUp:
			if ev.Button == input.ButtonPrimary {
				s.state.Dragging = false
			}
		case input.PointerWheel:
			s.zoom(ev)
		case input.PointerQuit:
			return ErrQuit
		}
	}

	for _, k := range in.Keys {
		if !k.Press {
			continue
		}
		switch k.Code {
		case input.KeyEscape:
			return ErrQuit
		case input.KeyHome:
			s.vp.Reset()
			s.log.Debug("view reset")
		case input.KeyF1:
			s.curve.Highlight = !s.curve.Highlight
			s.log.Debug("segment highlighting", "on", s.curve.Highlight)
		case input.KeyLeft:
			s.vp.Pan(-keyPanStep, 0)
		case input.KeyRight:
			s.vp.Pan(keyPanStep, 0)
		case input.KeyUp:
			s.vp.Pan(0, -keyPanStep)
		case input.KeyDown:
			s.vp.Pan(0, keyPanStep)
		}
	}

	if in.Quit {
		return ErrQuit
	}

	if s.state.Dragging {
		s.vp.Pan(float64(s.state.AnchorX-in.X), float64(s.state.AnchorY-in.Y))
		s.state.AnchorX, s.state.AnchorY = in.X, in.Y
	}
	return nil
}

func (s *Session) zoom(ev input.PointerEvent) {
	var dir viewport.Direction
	switch {
	case ev.WheelY > 0:
		dir = viewport.ZoomIn
	case ev.WheelY < 0:
		dir = viewport.ZoomOut
	default:
		return
	}
	if s.vp.ZoomAt(ev.X, ev.Y, dir) {
		s.log.Debug("zoom",
			"zoom", s.vp.Zoom,
			"divide", axis.Divide(s.vp.Zoom, s.opts.Viewport.XScale, s.opts.MaxInterval),
			"x", ev.X, "y", ev.Y)
	}
	s.state.Fade = s.opts.FadeFrames
}

// Render draws the axes, the curve and the crosshair for the current state.
func (s *Session) Render(surf Surface) (FrameStats, error) {
	var fs FrameStats
	surf.Clear(render.ColorBackground)

	fs.Layout = s.planner.Plan(s.vp.State())
	labels, err := s.axes.Draw(fs.Layout, surf, surf)
	fs.Labels = labels
	if err != nil {
		return fs, fmt.Errorf("frame %d: %w", s.frames, err)
	}

	fs.Curve = s.curve.Draw(s.vp, surf)

	if s.state.Dragging {
		render.Crosshair(surf, s.px, s.py, s.opts.CrosshairSize, render.ColorCrosshair)
	}
	if s.state.Fade > 0 {
		c := render.Fade(render.ColorCrosshair, render.ColorBackground, s.state.Fade, s.opts.FadeFrames)
		render.Crosshair(surf, s.px, s.py, s.opts.CrosshairSize, c)
		s.state.Fade--
	}

	s.frames++
	return fs, nil
}
