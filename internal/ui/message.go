package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/formguard/internal/validation"
)

// Default message text when a rule carries none.
const (
	DefaultErrorText   = "Invalid value"
	DefaultWarningText = "Check this value"
)

// RenderMessage is the default wrapper.RenderFunc: the control, then the
// selected rule's message on the next line.
func RenderMessage(control string, hasError bool, selected *validation.Rule) string {
	if !hasError || selected == nil {
		return control
	}
	return lipgloss.JoinVertical(lipgloss.Left, control, MessageLine(*selected))
}

// MessageLine renders a rule's message with its level's marker and colour.
func MessageLine(rule validation.Rule) string {
	text := rule.Message
	if rule.Level == validation.LevelWarning {
		if text == "" {
			text = DefaultWarningText
		}
		return WarningMessageStyle.Render(WarningMarker + " " + text)
	}
	if text == "" {
		text = DefaultErrorText
	}
	return ErrorMessageStyle.Render(FailureMarker + " " + text)
}

// PlainMessage is a RenderFunc without styling, for logs and tests.
func PlainMessage(control string, hasError bool, selected *validation.Rule) string {
	if !hasError || selected == nil {
		return control
	}
	var b strings.Builder
	b.WriteString(control)
	b.WriteString("\n")
	b.WriteString(string(selected.Level))
	b.WriteString(": ")
	if selected.Message != "" {
		b.WriteString(selected.Message)
	} else if selected.Level == validation.LevelWarning {
		b.WriteString(DefaultWarningText)
	} else {
		b.WriteString(DefaultErrorText)
	}
	return b.String()
}
