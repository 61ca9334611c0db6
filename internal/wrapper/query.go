package wrapper

import (
	"slices"

	"github.com/muurk/formguard/internal/validation"
)

// Snapshot is a consistent copy of a wrapper's state.
type Snapshot struct {
	Name     string                  `json:"name"`
	Rules    []validation.Rule       `json:"rules"`
	States   []validation.Visibility `json:"states"`
	Props    Props                   `json:"props"`
	HasError bool                    `json:"has_error"`
	Selected int                     `json:"selected"` // -1 when nothing is shown
	Changing bool                    `json:"changing"`
	Mounted  bool                    `json:"mounted"`
}

// SelectedRule returns the rule chosen for display, if any.
func (s Snapshot) SelectedRule() (validation.Rule, bool) {
	if s.Selected < 0 || s.Selected >= len(s.Rules) {
		return validation.Rule{}, false
	}
	return s.Rules[s.Selected], true
}

// Snapshot returns the wrapper's current state.
func (w *Wrapper) Snapshot() Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()

	isErr, isWarn := validation.DisplayFlags(w.rules, w.states, w.changing)
	selected, ok := validation.Select(w.rules, w.states)
	if !ok {
		selected = -1
	}
	return Snapshot{
		Name:     w.name,
		Rules:    slices.Clone(w.rules),
		States:   slices.Clone(w.states),
		Props:    Props{Error: isErr, Warning: isWarn},
		HasError: validation.HasError(w.rules, w.states),
		Selected: selected,
		Changing: w.changing,
		Mounted:  w.mounted,
	}
}

// Rules returns a copy of the current rules.
func (w *Wrapper) Rules() []validation.Rule {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return slices.Clone(w.rules)
}

// States returns a copy of the current visibility sequence.
func (w *Wrapper) States() []validation.Visibility {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return slices.Clone(w.states)
}

// IsChanging reports whether the field is mid-edit.
func (w *Wrapper) IsChanging() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.changing
}

// HasError reports whether any error-level rule is currently displayed.
func (w *Wrapper) HasError() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return validation.HasError(w.rules, w.states)
}

// IsErrorOrWarning reports whether rule i is currently displayed.
func (w *Wrapper) IsErrorOrWarning(i int) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if i < 0 || i >= len(w.rules) {
		return false
	}
	return validation.IsErrorOrWarning(w.rules[i], w.states[i])
}

// IsError reports whether rule i is a currently displayed error.
func (w *Wrapper) IsError(i int) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if i < 0 || i >= len(w.rules) {
		return false
	}
	return validation.IsError(w.rules[i], w.states[i])
}

// Selected returns the rule chosen for display.
func (w *Wrapper) Selected() (validation.Rule, bool) {
	return w.Snapshot().SelectedRule()
}

// Props returns the flags to inject into the control.
func (w *Wrapper) Props() Props {
	return w.Snapshot().Props
}

// Render draws the control with its injected props and hands it to the
// render function together with the selected rule. A missing control is
// drawn as an empty placeholder.
func (w *Wrapper) Render() string {
	snap := w.Snapshot()

	view := ""
	if w.control != nil {
		view = w.control.View(snap.Props)
	}
	if w.render == nil {
		return view
	}

	rule, ok := snap.SelectedRule()
	if !ok {
		return w.render(view, false, nil)
	}
	return w.render(view, rule.Error, &rule)
}
