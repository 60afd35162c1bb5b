package tweakbar

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidBinding is returned when a widget is registered with a nil
	// host variable, a variable of the wrong kind or an invalid range.
	ErrInvalidBinding = errors.New("invalid binding")

	// ErrRenderBackend wraps failures reported by the Renderer during a flush.
	ErrRenderBackend = errors.New("render backend failure")

	// ErrPhaseOrder is the panic value used when Update, Draw and Flush are
	// called out of order within a frame.
	ErrPhaseOrder = errors.New("frame phase order violated")

	// ErrInvalidConfig is returned by Config.Validate.
	ErrInvalidConfig = errors.New("invalid config")
)

// FlushError describes one draw-call group the renderer failed to draw.
// The rest of the batch is still flushed.
type FlushError struct {
	Group int
	State RenderState
	Err   error
}

func (e *FlushError) Error() string {
	return fmt.Sprintf("flush group %d (layer %d, texture %d, blend %s): %v",
		e.Group, e.State.Layer, e.State.Texture, e.State.Blend, e.Err)
}

// Unwrap exposes both the backend error and ErrRenderBackend to errors.Is.
func (e *FlushError) Unwrap() []error {
	return []error{ErrRenderBackend, e.Err}
}

func errPhase(msg string) error {
	return fmt.Errorf("%w: %s", ErrPhaseOrder, msg)
}
