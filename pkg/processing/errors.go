package processing

import (
	"errors"
	"fmt"
)

// ErrDegenerateImage reports an image that decoded to zero pixel area.
// It is treated like a decode failure by callers.
var ErrDegenerateImage = errors.New("degenerate image: zero pixel area")

// DecodeError reports bytes that could not be interpreted as an image.
// Reason carries the decode library's diagnostic message.
type DecodeError struct {
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode failure: %s", e.Reason)
}
