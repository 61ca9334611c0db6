package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/muurk/formguard/internal/logging"
	"github.com/muurk/formguard/internal/registry"
	"github.com/muurk/formguard/internal/ui"
	"github.com/muurk/formguard/internal/wrapper"
)

// formKeyMap defines key bindings for the form screen
type formKeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
	Quit   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k formKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Submit, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k formKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev},
		{k.Submit, k.Quit},
	}
}

// Options configure the form.
type Options struct {
	Scroll wrapper.ScrollSettings
	// Fields defaults to DefaultFields.
	Fields []FieldSpec
}

// Status is the outcome of the last submit.
type Status int

const (
	StatusNone Status = iota
	StatusValid
	StatusInvalid
)

// form is the mutable state shared between the model and the field
// controls. The wrapper calls into it from inside Update.
type form struct {
	fields   []*field
	cursor   int
	status   Status
	viewport viewport.Model
}

func (f *form) moveTo(i int) {
	if i < 0 || i >= len(f.fields) {
		return
	}
	for j, fl := range f.fields {
		if j != i {
			fl.input.Blur()
		}
	}
	f.cursor = i
	f.fields[i].input.Focus()
}

func (f *form) scrollTo(line, offset int) {
	y := line - offset
	if y < 0 {
		y = 0
	}
	f.viewport.SetYOffset(y)
}

func (f *form) current() *field {
	return f.fields[f.cursor]
}

// Model is the interactive form.
type Model struct {
	form     *form
	registry *registry.Registry

	Width  int
	Height int

	Help help.Model
	Keys formKeyMap
}

// NewModel builds the form and its wrappers. The first field has focus.
func NewModel(opts Options) (Model, error) {
	specs := opts.Fields
	if len(specs) == 0 {
		specs = DefaultFields()
	}

	reg := registry.New(registry.WithScroll(opts.Scroll))
	f := &form{viewport: viewport.New(ui.MinTerminalWidth, 20)}

	for i, spec := range specs {
		fl := newField(f, i, spec)
		w, err := wrapper.New(fl, spec.Check(""), ui.RenderMessage,
			wrapper.WithName(spec.Name),
			wrapper.WithRegistry(reg),
		)
		if err != nil {
			return Model{}, err
		}
		fl.wrapper = w
		w.Mount()
		f.fields = append(f.fields, fl)
	}
	f.moveTo(0)

	m := Model{
		form:     f,
		registry: reg,
		Help:     help.New(),
		Keys: formKeyMap{
			Next: key.NewBinding(
				key.WithKeys("tab", "down"),
				key.WithHelp("tab/↓", "next"),
			),
			Prev: key.NewBinding(
				key.WithKeys("shift+tab", "up"),
				key.WithHelp("shift+tab/↑", "previous"),
			),
			Submit: key.NewBinding(
				key.WithKeys("ctrl+s", "enter"),
				key.WithHelp("ctrl+s/enter", "submit"),
			),
			Quit: key.NewBinding(
				key.WithKeys("ctrl+c", "esc"),
				key.WithHelp("esc", "quit"),
			),
		},
	}
	m.refresh()
	return m, nil
}

// Registry returns the registry shared by the form's fields.
func (m Model) Registry() *registry.Registry {
	return m.registry
}

// Cursor returns the index of the focused field.
func (m Model) Cursor() int {
	return m.form.cursor
}

// Status returns the outcome of the last submit.
func (m Model) Status() Status {
	return m.form.status
}

// Wrapper returns the wrapper of field i.
func (m Model) Wrapper(i int) *wrapper.Wrapper {
	return m.form.fields[i].wrapper
}

// SetValue replaces field i's text as if it had been typed.
func (m Model) SetValue(i int, v string) error {
	fl := m.form.fields[i]
	fl.input.SetValue(v)
	err := m.changed(fl)
	m.refresh()
	return err
}

// Init initializes the form
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses and window resizes.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Help.Width = msg.Width
		m.form.viewport.Width = msg.Width
		m.form.viewport.Height = max(1, msg.Height-headerHeight-footerHeight)
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.Keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.Keys.Next):
			m.leave(m.form.cursor + 1)
			return m, textinput.Blink
		case key.Matches(msg, m.Keys.Prev):
			m.leave(m.form.cursor - 1)
			return m, textinput.Blink
		case key.Matches(msg, m.Keys.Submit):
			m.submit()
			return m, textinput.Blink
		}
	}

	fl := m.form.current()
	before := fl.value()
	var cmd tea.Cmd
	fl.input, cmd = fl.input.Update(msg)
	if fl.value() != before {
		if err := m.changed(fl); err != nil {
			logging.Error("Failed to apply rules", zap.String("field", fl.spec.Name), zap.Error(err))
		}
	}
	m.refresh()
	return m, cmd
}

// changed marks fl as being edited and recomputes its rules.
func (m Model) changed(fl *field) error {
	fl.opened = false
	fl.wrapper.HandleChange()
	if err := fl.wrapper.SetRules(fl.spec.Check(fl.value())); err != nil {
		return err
	}
	m.form.status = StatusNone
	return nil
}

// leave blurs the focused field and moves to field i, wrapping around.
func (m Model) leave(i int) {
	n := len(m.form.fields)
	m.form.current().wrapper.HandleBlur()
	m.form.moveTo((i + n) % n)
	m.refresh()
}

func (m Model) submit() {
	m.form.current().wrapper.HandleBlur()
	m.refresh()

	valid, err := m.registry.Validate(context.Background())
	if err != nil {
		logging.Error("Submit failed", zap.Error(err))
		return
	}
	if valid {
		m.form.status = StatusValid
	} else {
		m.form.status = StatusInvalid
	}
	m.refresh()
}

// refresh re-renders the fields into the viewport and records each
// field's line.
func (m Model) refresh() {
	var lines []string
	for i, fl := range m.form.fields {
		fl.line = len(lines)

		labelStyle := LabelStyle
		marker := "  "
		if i == m.form.cursor {
			labelStyle = FocusedLabelStyle
			marker = "› "
		}
		label := marker + fl.spec.Label
		if fl.opened {
			label += " " + ui.FailureMarker
		}
		lines = append(lines, labelStyle.Render(label))
		lines = append(lines, strings.Split(fl.wrapper.Render(), "\n")...)
		lines = append(lines, "")
	}

	offset := m.form.viewport.YOffset
	m.form.viewport.SetContent(strings.Join(lines, "\n"))
	m.form.viewport.SetYOffset(offset)
}

// View renders the header, the form and the footer.
func (m Model) View() string {
	header := TitleStyle.Render(fmt.Sprintf("%s %s", AppName, AppVersion()))

	status := ""
	switch m.form.status {
	case StatusValid:
		status = StatusValidStyle.Render(ui.SuccessMarker + " Form is valid")
	case StatusInvalid:
		status = StatusInvalidStyle.Render(ui.FailureMarker + " Fix the highlighted fields")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		m.form.viewport.View(),
		status,
		m.Help.View(m.Keys),
	)
}

// Run shows the form until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	m, err := NewModel(opts)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
