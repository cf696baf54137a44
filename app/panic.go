package app

import (
	"fmt"
	"runtime/debug"
	"strings"

	"plotview/graph/render"
)

// PanicError is a frame that panicked. The session cannot continue after it.
type PanicError struct {
	Frame uint64
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("app: panic in frame %d: %v", e.Frame, e.Value)
}

var panicColor = render.Color{R: 0xC0, A: 0xFF}

// protect runs fn, turning a panic into a *PanicError. The stack goes to the
// log line by line and the framebuffer gets a red border before it is presented.
func (a *App) protect(fn func() error) (err error) {
	defer func() {
		v := recover()
		if v == nil {
			return
		}
		pe := &PanicError{Value: v, Stack: debug.Stack()}
		if a.sess != nil {
			pe.Frame = a.sess.Frames()
		}
		a.reportPanic(pe)
		err = pe
	}()
	return fn()
}

func (a *App) reportPanic(pe *PanicError) {
	a.log.Error("frame panicked", "frame", pe.Frame, "panic", pe.Value)
	for _, line := range strings.Split(string(pe.Stack), "\n") {
		if line == "" {
			continue
		}
		a.log.Error(line)
	}

	if a.surf == nil || a.fb == nil {
		return
	}
	w, h := float64(a.fb.Width()-1), float64(a.fb.Height()-1)
	for i := 0.0; i < 3; i++ {
		a.surf.DrawSegment(i, i, w-i, i, panicColor)
		a.surf.DrawSegment(w-i, i, w-i, h-i, panicColor)
		a.surf.DrawSegment(w-i, h-i, i, h-i, panicColor)
		a.surf.DrawSegment(i, h-i, i, i, panicColor)
	}
	_ = a.surf.Present()
}
