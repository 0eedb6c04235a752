package offers

import (
	"errors"
	"fmt"
)

// SlotSelectionError is the sole error kind raised by the slot selection
// core. The booking orchestrator converts it into a structured failure
// result; it must never reach a channel adapter as a raw error.
type SlotSelectionError struct {
	Code    string
	Message string
}

func (e *SlotSelectionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewSlotSelectionError(msg string) error {
	return &SlotSelectionError{
		Code:    "slotSelectionError",
		Message: msg,
	}
}

// IsSlotSelectionError reports whether err is a SlotSelectionError.
func IsSlotSelectionError(err error) bool {
	var sse *SlotSelectionError
	return errors.As(err, &sse)
}
