package ui

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/formguard/internal/wrapper"
)

// RunOnceModel is a Bubble Tea model that renders once and exits.
type RunOnceModel struct {
	content string
}

// NewRunOnceModel creates a model that will render the given content and exit
func NewRunOnceModel(content string) RunOnceModel {
	return RunOnceModel{content: content}
}

// Init implements tea.Model
func (m RunOnceModel) Init() tea.Cmd {
	return tea.Quit
}

// Update implements tea.Model
func (m RunOnceModel) Update(tea.Msg) (tea.Model, tea.Cmd) {
	return m, nil
}

// View implements tea.Model
func (m RunOnceModel) View() string {
	return m.content
}

// RenderOnce renders content through Bubble Tea and exits immediately.
func RenderOnce(content string, out io.Writer) error {
	if out == nil {
		out = os.Stdout
	}
	p := tea.NewProgram(NewRunOnceModel(content), tea.WithOutput(out), tea.WithInput(nil))
	_, err := p.Run()
	return err
}

// Printer writes styled output for the command-line tools.
type Printer struct {
	out   io.Writer
	width int
}

// NewPrinter creates a new Printer that writes to the given writer.
// If w is nil, os.Stdout is used.
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{
		out:   w,
		width: GetTerminalWidth(),
	}
}

// WithWidth overrides the detected terminal width.
func (p *Printer) WithWidth(width int) *Printer {
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}
	p.width = width
	return p
}

// Width returns the width used by this printer
func (p *Printer) Width() int {
	return p.width
}

// Print writes content to the output
func (p *Printer) Print(content string) {
	_, _ = fmt.Fprint(p.out, content)
}

// Println writes content with a newline
func (p *Printer) Println(content string) {
	_, _ = fmt.Fprintln(p.out, content)
}

// Newline prints an empty line
func (p *Printer) Newline() {
	_, _ = fmt.Fprintln(p.out)
}

// PrintHeader prints a command header box
func (p *Printer) PrintHeader(title, command string, params map[string]string) {
	p.Print(RenderHeader(title, command, params, p.width))
	p.Newline()
}

// PrintSuccess prints a success result box
func (p *Printer) PrintSuccess(title string, details map[string]string) {
	p.Print(RenderResult(true, title, details, nil, p.width))
	p.Newline()
}

// PrintError prints a failure result box
func (p *Printer) PrintError(title string, err error, details map[string]string) {
	p.Print(RenderResult(false, title, details, err, p.width))
	p.Newline()
}

// PrintSnapshots prints a table of field states.
func (p *Printer) PrintSnapshots(title string, snaps []wrapper.Snapshot) {
	p.Print(RenderSnapshotTable(title, snaps, p.width))
	p.Newline()
}

// RenderHeader renders a command header box. Params are listed by key.
func RenderHeader(title, command string, params map[string]string, width int) string {
	titleLine := HeaderTitleStyle.Render(strings.ToUpper(title))
	commandLine := HeaderCommandStyle.Render(command)
	top := lipgloss.JoinVertical(lipgloss.Left, titleLine, commandLine)

	var paramLines []string
	for _, key := range slices.Sorted(maps.Keys(params)) {
		paramLines = append(paramLines,
			HeaderParamKeyStyle.Render(key+":")+" "+HeaderParamValueStyle.Render(params[key]))
	}

	dividerWidth := width - 6
	if dividerWidth < 10 {
		dividerWidth = 10
	}
	divider := RenderHorizontalDivider(dividerWidth, "─")

	content := lipgloss.JoinVertical(lipgloss.Left, top, divider, strings.Join(paramLines, "\n"))
	return BoxStyle(width, PrimaryColor).Render(content)
}

// RenderResult renders a success or failure box with sorted details.
func RenderResult(ok bool, title string, details map[string]string, err error, width int) string {
	var lines []string
	color := SuccessColor
	if ok {
		lines = append(lines, SuccessTitleStyle.Render(SuccessMarker+"  "+title))
	} else {
		color = ErrorColor
		lines = append(lines, ErrorTitleStyle.Render(FailureMarker+"  "+title))
	}
	lines = append(lines, "")

	if err != nil {
		lines = append(lines, ErrorMessageStyle.Render("Error: "+err.Error()), "")
	}
	for _, key := range slices.Sorted(maps.Keys(details)) {
		lines = append(lines, MutedStyle.Render(key+":")+" "+TableCellStyle.Render(details[key]))
	}

	return BoxStyle(width, color).Render(strings.Join(lines, "\n"))
}
