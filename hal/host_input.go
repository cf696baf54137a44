package hal

import (
	"sync"

	"plotview/hal/input"
)

type hostKeyboard struct {
	ch chan input.KeyEvent
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{ch: make(chan input.KeyEvent, 64)}
}

func (k *hostKeyboard) Events() <-chan input.KeyEvent { return k.ch }

func (k *hostKeyboard) push(ev input.KeyEvent) {
	select {
	case k.ch <- ev:
	default:
	}
}

type hostPointer struct {
	ch chan input.PointerEvent

	mu   sync.Mutex
	x, y int
}

func newHostPointer() *hostPointer {
	return &hostPointer{ch: make(chan input.PointerEvent, 64)}
}

func (p *hostPointer) Events() <-chan input.PointerEvent { return p.ch }

func (p *hostPointer) Position() (x, y int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.x, p.y
}

func (p *hostPointer) move(x, y int) {
	p.mu.Lock()
	p.x, p.y = x, y
	p.mu.Unlock()
}

func (p *hostPointer) push(ev input.PointerEvent) {
	select {
	case p.ch <- ev:
	default:
	}
}
