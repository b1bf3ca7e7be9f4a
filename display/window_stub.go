//go:build !tinygo && !cgo

package display

import (
	"context"
	"errors"
)

func RunWindow(_ context.Context, _ *Framebuffer, _ string, _ int) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")
}
