package scene

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidOptions = errors.New("scene: invalid options")
	ErrInvalidBody    = errors.New("scene: invalid body")
	ErrUnstable       = errors.New("scene: non-finite state")
	ErrUnknownAction  = errors.New("scene: unknown script action")
)

// FrameError reports the frame at which strict validation failed.
type FrameError struct {
	Frame  uint64
	Time   float64
	Reason string
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("scene: frame %d (t=%.3f): %s", e.Frame, e.Time, e.Reason)
}

func (e *FrameError) Unwrap() error {
	return ErrUnstable
}
