// Package hal is the only contact point between the plotter and the host: framebuffer,
// pointer and keyboard input, and the process logger.
package hal

import (
	"github.com/charmbracelet/log"

	"plotview/hal/input"
)

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Keyboard provides key events (best-effort on each platform).
type Keyboard interface {
	Events() <-chan input.KeyEvent
}

// Pointer provides button and wheel events plus the polled pointer position.
type Pointer interface {
	Events() <-chan input.PointerEvent
	Position() (x, y int)
}

// Input provides access to input devices (if available).
type Input interface {
	Keyboard() Keyboard
	Pointer() Pointer
}

// HAL provides the only contact point between the plotter and the outside world.
type HAL interface {
	Logger() *log.Logger
	Display() Display
	Input() Input
}

type (
	PointerEvent = input.PointerEvent
	KeyEvent     = input.KeyEvent
)
