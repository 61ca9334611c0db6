package validation

import "slices"

// Level is the severity of a failed rule.
type Level string

const (
	LevelError   Level = "error"
	LevelWarning Level = "warning"
)

// Behaviour governs when a failed rule's message may become visible.
type Behaviour string

const (
	BehaviourImmediate Behaviour = "immediate"
	BehaviourLostFocus Behaviour = "lostfocus"
	BehaviourSubmit    Behaviour = "submit"
)

// Rule is one pre-evaluated validation result attached to a control.
// Rules are compared by value; two slices holding equal rules in the same
// order describe the same definition. Message is display text only.
type Rule struct {
	Error     bool      `yaml:"error" json:"error"`
	Level     Level     `yaml:"level" json:"level"`
	Behaviour Behaviour `yaml:"behaviour" json:"behaviour"`
	Message   string    `yaml:"message,omitempty" json:"message,omitempty"`
}

// Visibility is the per-rule display flag. Tracked is false only for
// immediate rules, whose display follows Error directly.
type Visibility struct {
	Visible bool `yaml:"visible" json:"visible"`
	Tracked bool `yaml:"tracked" json:"tracked"`
}

// Known reports whether b is one of the three supported behaviours.
func (b Behaviour) Known() bool {
	switch b {
	case BehaviourImmediate, BehaviourLostFocus, BehaviourSubmit:
		return true
	}
	return false
}

// Known reports whether l is a supported level.
func (l Level) Known() bool {
	return l == LevelError || l == LevelWarning
}

// Validate checks the rule's enumerations.
func (r Rule) Validate() error {
	if !r.Behaviour.Known() {
		return &BehaviourError{Behaviour: r.Behaviour}
	}
	if !r.Level.Known() {
		return &UnknownLevelError{Level: r.Level}
	}
	return nil
}

// Equal reports whether two rule sequences are equal by value.
func Equal(a, b []Rule) bool {
	return slices.Equal(a, b)
}

// Immediate returns an immediate rule.
func Immediate(failed bool, level Level) Rule {
	return Rule{Error: failed, Level: level, Behaviour: BehaviourImmediate}
}

// LostFocus returns a lostfocus rule.
func LostFocus(failed bool, level Level) Rule {
	return Rule{Error: failed, Level: level, Behaviour: BehaviourLostFocus}
}

// OnSubmit returns a submit rule.
func OnSubmit(failed bool, level Level) Rule {
	return Rule{Error: failed, Level: level, Behaviour: BehaviourSubmit}
}
