// Package app wires the plotting session to a HAL: it drains input, runs one
// session frame and presents the framebuffer.
package app

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"plotview/graph/fbdraw"
	"plotview/graph/render"
	"plotview/graph/sampler"
	"plotview/graph/session"
	"plotview/hal"
	"plotview/internal/config"
)

// statsEvery is the frame interval of the debug frame summary.
const statsEvery = 300

// App is one plotting session bound to a HAL.
type App struct {
	id   uuid.UUID
	log  *log.Logger
	fb   hal.Framebuffer
	surf *fbdraw.Surface
	kbd  hal.Keyboard
	ptr  hal.Pointer
	sess *session.Session

	in session.Input
}

// New builds the session and returns its per-frame step function.
func New(h hal.HAL, cfg *config.Config) (func() error, error) {
	a, err := newApp(h, cfg)
	if err != nil {
		return nil, err
	}
	return a.Step, nil
}

func newApp(h hal.HAL, cfg *config.Config) (*App, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", render.ErrInitialization, err)
	}

	disp := h.Display()
	if disp == nil || disp.Framebuffer() == nil {
		return nil, fmt.Errorf("%w: no framebuffer", render.ErrInitialization)
	}
	fb := disp.Framebuffer()
	surf, err := fbdraw.New(fb)
	if err != nil {
		return nil, err
	}

	gen, err := sampler.Lookup(cfg.Sampling.Generator)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", render.ErrInitialization, err)
	}
	mode, _ := render.ParseSampleMode(cfg.Sampling.Mode)
	policy, _ := render.ParseLabelPolicy(cfg.Labels.OnFailure)

	id := uuid.New()
	l := h.Logger()
	if l == nil {
		l = log.Default()
	}
	l = l.With("session", id.String()[:8])

	charW, charH := surf.CharSize()
	sess := session.New(session.Options{
		Viewport:      cfg.ViewportParams(),
		Width:         fb.Width(),
		Height:        fb.Height(),
		MaxInterval:   cfg.Axis.MaxInterval,
		TickLen:       cfg.Axis.TickLen,
		CharW:         charW,
		CharH:         charH,
		Sampler:       sampler.New(cfg.Sampling.Step, gen),
		Mode:          mode,
		MaxSegments:   cfg.Sampling.MaxSegments,
		Highlight:     cfg.Debug.HighlightSegments,
		LabelPolicy:   policy,
		FadeFrames:    cfg.Crosshair.FadeFrames,
		CrosshairSize: cfg.Crosshair.Size,
		Log:           l,
	})

	a := &App{id: id, log: l, fb: fb, surf: surf, sess: sess}
	if in := h.Input(); in != nil {
		a.kbd = in.Keyboard()
		a.ptr = in.Pointer()
	}

	l.Info("session started",
		"size", fmt.Sprintf("%dx%d", fb.Width(), fb.Height()),
		"generator", cfg.Sampling.Generator,
		"step", cfg.Sampling.Step,
		"mode", mode)
	return a, nil
}

// Session exposes the running session.
func (a *App) Session() *session.Session { return a.sess }

// Step runs one frame. It returns session.ErrQuit once the user leaves.
func (a *App) Step() error {
	return a.protect(a.step)
}

func (a *App) step() error {
	in := a.poll()
	fs, err := a.sess.Step(in, a.surf)
	if errors.Is(err, session.ErrQuit) {
		a.log.Info("session ended", "frames", a.sess.Frames())
		return err
	}
	if err != nil {
		return err
	}
	if n := a.sess.Frames(); n%statsEvery == 0 {
		a.log.Debug("frame",
			"n", n,
			"segments", fs.Curve.Segments,
			"drawn", fs.Curve.Drawn,
			"labels", fs.Labels.Stamped,
			"skipped", fs.Labels.Skipped)
	}
	return a.surf.Present()
}

// poll drains the HAL queues without blocking.
func (a *App) poll() session.Input {
	a.in.Pointer = a.in.Pointer[:0]
	a.in.Keys = a.in.Keys[:0]

	if a.ptr != nil {
		if ch := a.ptr.Events(); ch != nil {
		drainPointer:
			for {
				select {
				case ev := <-ch:
					a.in.Pointer = append(a.in.Pointer, ev)
				default:
					break drainPointer
				}
			}
		}
		a.in.X, a.in.Y = a.ptr.Position()
	}

	if a.kbd != nil {
		if ch := a.kbd.Events(); ch != nil {
		drainKeys:
			for {
				select {
				case ev := <-ch:
					a.in.Keys = append(a.in.Keys, ev)
				default:
					break drainKeys
				}
			}
		}
	}
	return a.in
}
