package server

import (
	"github.com/muurk/formguard/internal/validation"
	"github.com/muurk/formguard/internal/wrapper"
)

// Client message types.
const (
	TypeMount       = "mount"
	TypeRules       = "rules"
	TypeChange      = "change"
	TypeBlur        = "blur"
	TypeEmulateBlur = "emulate_blur"
	TypeSubmit      = "submit"
	TypeFocus       = "focus"
	TypeValidate    = "validate"
	TypeUnmount     = "unmount"
)

// Server message types. TypeFocus is shared with the client side.
const (
	TypeState = "state"
	TypeError = "error"
)

// ClientMessage is one request from a remote form.
type ClientMessage struct {
	Type     string            `json:"type"`
	Field    string            `json:"field,omitempty"`
	Rules    []validation.Rule `json:"rules,omitempty"`
	Position *wrapper.Position `json:"position,omitempty"`
}

// ServerMessage is one reply to a remote form.
type ServerMessage struct {
	Type   string             `json:"type"`
	Fields []wrapper.Snapshot `json:"fields,omitempty"`
	Valid  bool               `json:"valid"`
	Field  string             `json:"field,omitempty"`
	Offset int                `json:"offset,omitempty"`
	Error  string             `json:"error,omitempty"`
}
