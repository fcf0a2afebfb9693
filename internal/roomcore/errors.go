package roomcore

import (
	"errors"
	"strings"
)

var (
	ErrNoWriter     = errors.New("Failed to create room")
	ErrIncomplete   = errors.New("Please fill all fields")
	ErrBusy         = errors.New("room creation already in progress")
	ErrInvalidPrice = errors.New("invalid price")
	ErrReverted     = errors.New("transaction reverted")
)

// FallbackMessage is shown when a rejection carries no text.
const FallbackMessage = "Something went wrong. Try again."

// UserMessage returns the text a user sees for err.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return FallbackMessage
}
