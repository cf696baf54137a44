//go:build cgo

package hostwin

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"plotview/hal"
	"plotview/hal/input"
)

var buttons = []struct {
	eb  ebiten.MouseButton
	btn input.Button
}{
	{ebiten.MouseButtonLeft, input.ButtonPrimary},
	{ebiten.MouseButtonRight, input.ButtonSecondary},
	{ebiten.MouseButtonMiddle, input.ButtonMiddle},
}

var keys = []struct {
	eb   ebiten.Key
	code input.KeyCode
}{
	{ebiten.KeyArrowUp, input.KeyUp},
	{ebiten.KeyArrowDown, input.KeyDown},
	{ebiten.KeyArrowLeft, input.KeyLeft},
	{ebiten.KeyArrowRight, input.KeyRight},
	{ebiten.KeyEscape, input.KeyEscape},
	{ebiten.KeyHome, input.KeyHome},
	{ebiten.KeyF1, input.KeyF1},
}

// poll copies this tick's ebiten input state into the host queues.
func poll(h *hal.Host) {
	x, y := ebiten.CursorPosition()
	h.MovePointer(x, y)

	for _, b := range buttons {
		if inpututil.IsMouseButtonJustPressed(b.eb) {
			h.PushPointer(input.PointerEvent{Kind: input.PointerDown, Button: b.btn, X: x, Y: y})
		}
		if inpututil.IsMouseButtonJustReleased(b.eb) {
			h.PushPointer(input.PointerEvent{Kind: input.PointerUp, Button: b.btn, X: x, Y: y})
		}
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		h.PushPointer(input.PointerEvent{Kind: input.PointerWheel, X: x, Y: y, WheelY: wy})
	}

	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k.eb) {
			h.PushKey(input.KeyEvent{Code: k.code, Press: true})
		}
		if inpututil.IsKeyJustReleased(k.eb) {
			h.PushKey(input.KeyEvent{Code: k.code, Press: false})
		}
	}

	if ebiten.IsWindowBeingClosed() {
		h.PushPointer(input.PointerEvent{Kind: input.PointerQuit})
	}
}
