// Package validation implements the per-rule visibility state machine.
//
// A field carries an ordered list of rules. Each rule has already been
// evaluated by the caller (Error is true when the value fails it); this
// package only decides WHEN that failure may be shown.
//
// # Behaviours
//
//   - immediate: shown as soon as Error is true. No visibility is tracked.
//   - lostfocus: shown after the field loses focus. Starts visible unless some
//     field in the form is mid-edit.
//   - submit: hidden until the form is submitted.
//
// # Functions, not objects
//
// Everything here is a pure function over value slices. Transitions return a
// new []Visibility and never mutate their input, so callers can swap a whole
// slice (or one index of it) under their own lock:
//
//	states, err := validation.InitialStates(rules, registry.IsAnyoneChanging())
//	if err != nil {
//	    return err
//	}
//	states = validation.Blur(rules, states)
//	idx, ok := validation.Select(rules, states)
//
// The field controller that owns these slices lives in package wrapper.
package validation
