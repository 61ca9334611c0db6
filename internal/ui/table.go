package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/formguard/internal/validation"
	"github.com/muurk/formguard/internal/wrapper"
)

const (
	colField    = 18
	colProps    = 10
	colStates   = 12
	minColShown = 12
)

// StatesString renders a visibility sequence compactly: V for visible,
// h for tracked but hidden, - for untracked.
func StatesString(states []validation.Visibility) string {
	var b strings.Builder
	for _, s := range states {
		switch {
		case !s.Tracked:
			b.WriteByte('-')
		case s.Visible:
			b.WriteByte('V')
		default:
			b.WriteByte('h')
		}
	}
	return b.String()
}

// PropsString renders the injected control flags.
func PropsString(p wrapper.Props) string {
	switch {
	case p.Error:
		return "error"
	case p.Warning:
		return "warning"
	default:
		return "-"
	}
}

// ShownString describes the selected rule of a snapshot.
func ShownString(s wrapper.Snapshot) string {
	rule, ok := s.SelectedRule()
	if !ok {
		return "-"
	}
	text := rule.Message
	if text == "" {
		text = string(rule.Behaviour)
	}
	return fmt.Sprintf("#%d %s: %s", s.Selected, rule.Level, text)
}

// RenderSnapshotTable renders one row per field: name, states, injected
// props and the shown message.
func RenderSnapshotTable(title string, snaps []wrapper.Snapshot, width int) string {
	shownWidth := width - colField - colStates - colProps - 6
	if shownWidth < minColShown {
		shownWidth = minColShown
	}

	cell := func(s string, w int, style lipgloss.Style) string {
		return style.Width(w).MaxWidth(w).Render(s)
	}

	var lines []string
	if title != "" {
		lines = append(lines, HeaderTitleStyle.Render(title))
	}
	lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
		cell("FIELD", colField, TableHeaderStyle),
		cell("STATES", colStates, TableHeaderStyle),
		cell("PROPS", colProps, TableHeaderStyle),
		cell("SHOWN", shownWidth, TableHeaderStyle),
	))

	for _, s := range snaps {
		name := s.Name
		if s.Changing {
			name += "*"
		}
		propsStyle := TableCellStyle
		switch {
		case s.Props.Error:
			propsStyle = ErrorTitleStyle
		case s.Props.Warning:
			propsStyle = lipgloss.NewStyle().Foreground(WarningColor)
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			cell(name, colField, TableCellStyle),
			cell(StatesString(s.States), colStates, TableCellStyle),
			cell(PropsString(s.Props), colProps, propsStyle),
			cell(ShownString(s), shownWidth, MutedStyle),
		))
	}
	return strings.Join(lines, "\n")
}
