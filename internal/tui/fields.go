package tui

import (
	"strings"
	"unicode"

	"github.com/muurk/formguard/internal/validation"
)

// FieldSpec describes one input of the form. Check turns the current value
// into the field's rules; it must return the same number of rules for every
// value.
type FieldSpec struct {
	Name        string
	Label       string
	Placeholder string
	CharLimit   int
	Check       func(value string) []validation.Rule
}

// DefaultFields is the sign-up form shown by `formguard`.
func DefaultFields() []FieldSpec {
	return []FieldSpec{
		{
			Name:        "email",
			Label:       "Email",
			Placeholder: "you@example.com",
			CharLimit:   254,
			Check:       checkEmail,
		},
		{
			Name:        "phone",
			Label:       "Phone",
			Placeholder: "digits only",
			CharLimit:   20,
			Check:       checkPhone,
		},
		{
			Name:        "nickname",
			Label:       "Nickname",
			Placeholder: "optional",
			CharLimit:   40,
			Check:       checkNickname,
		},
	}
}

func checkEmail(v string) []validation.Rule {
	v = strings.TrimSpace(v)
	return []validation.Rule{
		{Error: v == "", Level: validation.LevelError, Behaviour: validation.BehaviourSubmit, Message: "Email is required"},
		{Error: v != "" && !validEmail(v), Level: validation.LevelError, Behaviour: validation.BehaviourLostFocus, Message: "Enter a valid email"},
	}
}

func validEmail(v string) bool {
	at := strings.IndexByte(v, '@')
	return at > 0 && at < len(v)-1 && strings.Contains(v[at:], ".")
}

func checkPhone(v string) []validation.Rule {
	v = strings.TrimSpace(v)
	digitsOnly := strings.IndexFunc(v, func(r rune) bool { return !unicode.IsDigit(r) }) < 0
	return []validation.Rule{
		{Error: v == "", Level: validation.LevelError, Behaviour: validation.BehaviourSubmit, Message: "Phone is required"},
		{Error: v != "" && !digitsOnly, Level: validation.LevelError, Behaviour: validation.BehaviourLostFocus, Message: "Digits only"},
		{Error: v != "" && digitsOnly && len(v) < 7, Level: validation.LevelWarning, Behaviour: validation.BehaviourLostFocus, Message: "That looks short"},
	}
}

func checkNickname(v string) []validation.Rule {
	return []validation.Rule{
		{Error: len([]rune(v)) > 12, Level: validation.LevelWarning, Behaviour: validation.BehaviourImmediate, Message: "Long nicknames may be cut off"},
	}
}
