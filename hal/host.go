package hal

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// HostConfig sizes the host framebuffer and configures logging.
type HostConfig struct {
	Width  int
	Height int
	// LogOutput defaults to os.Stderr.
	LogOutput io.Writer
	LogLevel  log.Level
}

// Host is the desktop HAL. Window and headless runners feed its input queues.
type Host struct {
	logger *log.Logger
	fb     *hostFramebuffer
	kbd    *hostKeyboard
	ptr    *hostPointer
}

// NewHost returns a host HAL implementation.
func NewHost(cfg HostConfig) *Host {
	return &Host{
		logger: NewLogger(cfg.LogOutput, "plotview", cfg.LogLevel),
		fb:     newHostFramebuffer(cfg.Width, cfg.Height),
		kbd:    newHostKeyboard(),
		ptr:    newHostPointer(),
	}
}

// NewLogger returns the process logger format shared by every plotview binary.
// A nil w logs to os.Stderr.
func NewLogger(w io.Writer, prefix string, lvl log.Level) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          prefix,
		Level:           lvl,
	})
}

func (h *Host) Logger() *log.Logger { return h.logger }
func (h *Host) Display() Display     { return hostDisplay{fb: h.fb} }
func (h *Host) Input() Input         { return hostInput{kbd: h.kbd, ptr: h.ptr} }

// Size returns the framebuffer dimensions.
func (h *Host) Size() (w, hgt int) { return h.fb.width, h.fb.height }

// PushPointer queues a pointer event; it drops the event when the queue is full.
func (h *Host) PushPointer(ev PointerEvent) { h.ptr.push(ev) }

// PushKey queues a key event; it drops the event when the queue is full.
func (h *Host) PushKey(ev KeyEvent) { h.kbd.push(ev) }

// MovePointer records the polled pointer position.
func (h *Host) MovePointer(x, y int) { h.ptr.move(x, y) }

// SnapshotRGBA converts the framebuffer into dst, which must hold width*height*4 bytes.
func (h *Host) SnapshotRGBA(dst []byte) { h.fb.snapshotRGBA(dst) }

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostInput struct {
	kbd *hostKeyboard
	ptr *hostPointer
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }
func (in hostInput) Pointer() Pointer   { return in.ptr }
