package server

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownType  = errors.New("unknown message type")
	ErrUnknownField = errors.New("unknown field")
	ErrMissingField = errors.New("message has no field")
)

// MessageError reports a client message that could not be applied.
type MessageError struct {
	Type  string
	Field string
	Err   error
}

func (e *MessageError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %v", e.Type, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Type, e.Field, e.Err)
}

func (e *MessageError) Unwrap() error {
	return e.Err
}
