package validation

import (
	"errors"
	"fmt"
)

// BehaviourError reports a rule whose behaviour is not one of immediate,
// lostfocus or submit. It is a programming error in the caller: state
// computation refuses the whole rule set rather than guessing.
type BehaviourError struct {
	Index     int
	Behaviour Behaviour
}

// Error implements the error interface
func (e *BehaviourError) Error() string {
	return fmt.Sprintf("unknown behaviour %q at rule %d", string(e.Behaviour), e.Index)
}

// UnknownLevelError reports a rule whose level is neither error nor warning.
type UnknownLevelError struct {
	Index int
	Level Level
}

// Error implements the error interface
func (e *UnknownLevelError) Error() string {
	return fmt.Sprintf("unknown level %q at rule %d", string(e.Level), e.Index)
}

// IsBehaviourError checks if an error is (or wraps) a BehaviourError
func IsBehaviourError(err error) bool {
	var be *BehaviourError
	return errors.As(err, &be)
}

// IsUnknownLevel checks if an error is (or wraps) an UnknownLevelError
func IsUnknownLevel(err error) bool {
	var le *UnknownLevelError
	return errors.As(err, &le)
}

// ValidateRules checks every rule's enumerations and returns the first
// problem found, with its index filled in.
func ValidateRules(rules []Rule) error {
	for i, r := range rules {
		if err := r.Validate(); err != nil {
			switch e := err.(type) {
			case *BehaviourError:
				e.Index = i
			case *UnknownLevelError:
				e.Index = i
			}
			return err
		}
	}
	return nil
}
