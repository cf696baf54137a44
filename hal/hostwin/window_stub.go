//go:build !cgo

package hostwin

import (
	"errors"

	"plotview/hal"
)

// Config controls the window.
type Config struct {
	Host  hal.HostConfig
	Scale int
	TPS   int
}

func RunWindow(_ Config, _ func(*hal.Host) (func() error, error)) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")
}
