// Package input defines the pointer and keyboard events delivered by a HAL.
package input

// PointerKind identifies a pointer event.
type PointerKind uint8

const (
	PointerDown PointerKind = iota + 1
	PointerUp
	PointerWheel
	PointerQuit
)

// Button identifies a pointer button.
type Button uint8

const (
	ButtonPrimary Button = iota + 1
	ButtonSecondary
	ButtonMiddle
)

// PointerEvent is a pointer event. X and Y are screen pixels; WheelY is signed, only its sign matters.
type PointerEvent struct {
	Kind   PointerKind
	Button Button
	X      int
	Y      int
	WheelY float64
}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEscape
	KeyHome
	KeyF1
)

// KeyEvent is a keyboard event.
type KeyEvent struct {
	Code  KeyCode
	Press bool
	Rune  rune
}
