//go:build cgo

// Package hostwin shows a hal.Host framebuffer in a desktop window and feeds it pointer and
// keyboard input polled from ebiten.
package hostwin

import (
	"errors"
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"plotview/hal"
	"plotview/internal/buildinfo"
)

// Config controls the window.
type Config struct {
	Host hal.HostConfig
	// Scale multiplies the framebuffer size for the initial window size.
	Scale int
	TPS   int
}

// RunWindow starts a desktop window that displays the framebuffer and forwards input.
// It blocks until the window closes or the step function returns an error.
func RunWindow(cfg Config, newApp func(*hal.Host) (func() error, error)) error {
	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}
	if cfg.TPS <= 0 {
		cfg.TPS = 60
	}

	h := hal.NewHost(cfg.Host)
	step, err := newApp(h)
	if err != nil {
		return err
	}

	w, hgt := h.Size()
	g := &hostGame{h: h, step: step, width: w, height: hgt}
	ebiten.SetWindowTitle("plotview (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(w*cfg.Scale, hgt*cfg.Scale)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(cfg.TPS)

	err = ebiten.RunGame(g)
	if errors.Is(err, errStopped) {
		return g.stepErr
	}
	return err
}

// errStopped ends RunGame once the step function reported an error.
var errStopped = errors.New("hostwin: stopped")

type hostGame struct {
	h      *hal.Host
	step   func() error
	width  int
	height int

	img     *image.RGBA
	fbImg   *ebiten.Image
	stepErr error
}

func (g *hostGame) Update() error {
	poll(g.h)
	if err := g.step(); err != nil {
		g.stepErr = err
		return errStopped
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	if g.img == nil {
		g.img = image.NewRGBA(image.Rect(0, 0, g.width, g.height))
		g.fbImg = ebiten.NewImage(g.width, g.height)
	}
	g.h.SnapshotRGBA(g.img.Pix)
	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}
