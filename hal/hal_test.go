package hal

import (
	"context"
	"errors"
	"io"
	"testing"

	"plotview/hal/input"
)

func TestRGB565RoundTrip(t *testing.T) {
	tests := []struct {
		r, g, b uint8
	}{
		{0, 0, 0},
		{255, 255, 255},
		{255, 0, 0},
		{0x80, 0x80, 0x80},
	}
	for _, tt := range tests {
		r, g, b := RGB888From565(RGB565(tt.r, tt.g, tt.b))
		if absDiff(r, tt.r) > 8 || absDiff(g, tt.g) > 4 || absDiff(b, tt.b) > 8 {
			t.Fatalf("round trip (%d,%d,%d) -> (%d,%d,%d)", tt.r, tt.g, tt.b, r, g, b)
		}
	}
	if RGB565(255, 255, 255) != 0xFFFF {
		t.Fatalf("RGB565(white) = %#x, want 0xffff", RGB565(255, 255, 255))
	}
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}

func TestFramebufferClearAndSnapshot(t *testing.T) {
	h := NewHost(HostConfig{Width: 4, Height: 3, LogOutput: io.Discard})
	fb := h.Display().Framebuffer()
	if fb.Width() != 4 || fb.Height() != 3 || fb.StrideBytes() != 8 || len(fb.Buffer()) != 24 {
		t.Fatalf("framebuffer geometry %dx%d stride %d len %d", fb.Width(), fb.Height(), fb.StrideBytes(), len(fb.Buffer()))
	}

	fb.ClearRGB(255, 0, 0)
	dst := make([]byte, 4*3*4)
	h.SnapshotRGBA(dst)
	for i := 0; i < len(dst); i += 4 {
		if dst[i] != 255 || dst[i+1] != 0 || dst[i+2] != 0 || dst[i+3] != 255 {
			t.Fatalf("pixel %d = %v, want opaque red", i/4, dst[i:i+4])
		}
	}
}

func TestPointerQueue(t *testing.T) {
	h := NewHost(HostConfig{Width: 1, Height: 1, LogOutput: io.Discard})
	p := h.Input().Pointer()

	h.MovePointer(12, 34)
	if x, y := p.Position(); x != 12 || y != 34 {
		t.Fatalf("Position() = (%d,%d), want (12,34)", x, y)
	}

	for i := 0; i < 100; i++ {
		h.PushPointer(input.PointerEvent{Kind: input.PointerWheel, WheelY: 1})
	}
	n := 0
	for {
		select {
		case <-p.Events():
			n++
			continue
		default:
		}
		break
	}
	if n != 64 {
		t.Fatalf("queued %d events, want 64 (excess dropped)", n)
	}
}

func TestRunHeadlessStopsAfterFrames(t *testing.T) {
	calls := 0
	err := RunHeadless(context.Background(), func(h *Host) (func() error, error) {
		return func() error {
			calls++
			return nil
		}, nil
	}, HeadlessConfig{Host: HostConfig{Width: 8, Height: 8, LogOutput: io.Discard}, Hz: 1000, Frames: 5})
	if err != nil {
		t.Fatalf("RunHeadless() err = %v", err)
	}
	if calls != 5 {
		t.Fatalf("step calls = %d, want 5", calls)
	}
}

func TestRunHeadlessPropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	err := RunHeadless(context.Background(), func(h *Host) (func() error, error) {
		return nil, boom
	}, HeadlessConfig{Host: HostConfig{Width: 8, Height: 8, LogOutput: io.Discard}})
	if !errors.Is(err, boom) {
		t.Fatalf("RunHeadless() err = %v, want boom", err)
	}

	err = RunHeadless(context.Background(), func(h *Host) (func() error, error) {
		return func() error { return boom }, nil
	}, HeadlessConfig{Host: HostConfig{Width: 8, Height: 8, LogOutput: io.Discard}, Hz: 1000})
	if !errors.Is(err, boom) {
		t.Fatalf("RunHeadless() err = %v, want boom from step", err)
	}
}
