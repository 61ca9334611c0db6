package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/formguard/internal/ui"
	"github.com/muurk/formguard/internal/version"
)

// AppName is shown in the header.
const AppName = "FORMGUARD"

// AppVersion returns the application version from the centralized version package
func AppVersion() string {
	return version.Version
}

// Rows taken by the header and footer around the viewport.
const (
	headerHeight = 2
	footerHeight = 3
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(ui.PrimaryColor).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ui.MutedColor)

	FocusedLabelStyle = lipgloss.NewStyle().
				Foreground(ui.PrimaryColor).
				Bold(true)

	// Left edge of an input, coloured by the injected props.
	gutterPlain   = lipgloss.NewStyle().Foreground(ui.MutedColor).SetString("│")
	gutterError   = lipgloss.NewStyle().Foreground(ui.ErrorColor).SetString("┃")
	gutterWarning = lipgloss.NewStyle().Foreground(ui.WarningColor).SetString("┃")

	StatusValidStyle   = ui.SuccessTitleStyle
	StatusInvalidStyle = ui.ErrorTitleStyle
)
