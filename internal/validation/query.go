package validation

// IsErrorOrWarning reports whether rule should currently be displayed.
// Immediate rules follow Error; the others also need their state visible.
func IsErrorOrWarning(rule Rule, state Visibility) bool {
	if rule.Behaviour == BehaviourImmediate {
		return rule.Error
	}
	return rule.Error && state.Visible
}

// IsError is IsErrorOrWarning restricted to error-level rules.
func IsError(rule Rule, state Visibility) bool {
	return rule.Level == LevelError && IsErrorOrWarning(rule, state)
}

// HasError reports whether any rule is a displayed error.
func HasError(rules []Rule, states []Visibility) bool {
	for i, r := range rules {
		if IsError(r, stateAt(states, i)) {
			return true
		}
	}
	return false
}

// Select returns the index of the rule to display: the first one, in
// sequence order, that is an error or a warning. An earlier visible warning
// wins over a later error.
func Select(rules []Rule, states []Visibility) (int, bool) {
	for i, r := range rules {
		if IsErrorOrWarning(r, stateAt(states, i)) {
			return i, true
		}
	}
	return -1, false
}

// DisplayFlags returns the error and warning flags handed to the control.
// While the field is changing both are forced off so an edit in progress
// never flashes a stale error.
func DisplayFlags(rules []Rule, states []Visibility, changing bool) (isError, isWarning bool) {
	if changing {
		return false, false
	}
	i, ok := Select(rules, states)
	if !ok {
		return false, false
	}
	r := rules[i]
	return r.Level == LevelError, r.Level == LevelWarning
}

func stateAt(states []Visibility, i int) Visibility {
	if i < len(states) {
		return states[i]
	}
	return Visibility{}
}
