package validation

// InitialState returns the starting visibility of a single rule.
// anyoneChanging is the registry's answer to "is any field mid-edit".
func InitialState(rule Rule, anyoneChanging bool) (Visibility, error) {
	switch rule.Behaviour {
	case BehaviourImmediate:
		return Visibility{}, nil
	case BehaviourLostFocus:
		return Visibility{Visible: !anyoneChanging, Tracked: true}, nil
	case BehaviourSubmit:
		return Visibility{Visible: false, Tracked: true}, nil
	}
	return Visibility{}, &BehaviourError{Behaviour: rule.Behaviour}
}

// InitialStates builds a fresh visibility sequence for rules. The result is
// index-aligned with rules. Any unknown behaviour fails the whole call.
func InitialStates(rules []Rule, anyoneChanging bool) ([]Visibility, error) {
	states := make([]Visibility, len(rules))
	for i, r := range rules {
		st, err := InitialState(r, anyoneChanging)
		if err != nil {
			if be, ok := err.(*BehaviourError); ok {
				be.Index = i
			}
			return nil, err
		}
		states[i] = st
	}
	return states, nil
}

// Blur applies the lost-focus transition: every lostfocus rule becomes
// visible exactly when it failed. Other rules keep their state.
func Blur(rules []Rule, states []Visibility) []Visibility {
	next := clone(states, len(rules))
	for i, r := range rules {
		if r.Behaviour == BehaviourLostFocus {
			next[i] = Visibility{Visible: r.Error, Tracked: true}
		}
	}
	return next
}

// SubmitOne reveals rule i if it is not immediate. It returns a copy of
// states with at most index i replaced, and whether anything changed.
func SubmitOne(rules []Rule, states []Visibility, i int) ([]Visibility, bool) {
	if i < 0 || i >= len(rules) || rules[i].Behaviour == BehaviourImmediate {
		return states, false
	}
	next := clone(states, len(rules))
	next[i] = Visibility{Visible: true, Tracked: true}
	return next, true
}

// Submit reveals every non-immediate rule regardless of Error.
func Submit(rules []Rule, states []Visibility) []Visibility {
	next := clone(states, len(rules))
	for i, r := range rules {
		if r.Behaviour != BehaviourImmediate {
			next[i] = Visibility{Visible: true, Tracked: true}
		}
	}
	return next
}

// AllHidden reports whether no state currently has Visible set. This is the
// validity a field reports to its registry after a blur; note that a submit
// rule revealed by Submit counts even when it passed.
func AllHidden(states []Visibility) bool {
	for _, s := range states {
		if s.Visible {
			return false
		}
	}
	return true
}

func clone(states []Visibility, n int) []Visibility {
	next := make([]Visibility, n)
	copy(next, states)
	return next
}
