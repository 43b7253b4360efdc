package domain

import "errors"

// Event errors
var (
	ErrEventNotFound = errors.New("event not found")
	ErrNotEventOwner = errors.New("only the event owner can perform this action")
	ErrAlreadyJoined = errors.New("you already joined this event")
)

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
