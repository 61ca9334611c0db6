package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/muurk/formguard/internal/wrapper"
)

// field adapts a textinput to the wrapper's control interfaces.
type field struct {
	spec    FieldSpec
	index   int
	input   textinput.Model
	wrapper *wrapper.Wrapper
	form    *form

	// line is the row of the field's label in the rendered form.
	line   int
	opened bool
}

func newField(f *form, index int, spec FieldSpec) *field {
	in := textinput.New()
	in.Placeholder = spec.Placeholder
	in.CharLimit = spec.CharLimit
	in.Width = 40
	in.Prompt = " "
	return &field{spec: spec, index: index, input: in, form: f}
}

func (f *field) View(p wrapper.Props) string {
	gutter := gutterPlain
	switch {
	case p.Error:
		gutter = gutterError
	case p.Warning:
		gutter = gutterWarning
	}
	return gutter.String() + f.input.View()
}

func (f *field) Focus() {
	f.form.moveTo(f.index)
}

func (f *field) ScrollIntoView(ctx context.Context, s wrapper.ScrollSettings) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.form.scrollTo(f.line, s.VerticalOffset)
	return nil
}

func (f *field) Position() (wrapper.Position, bool) {
	return wrapper.Position{X: 0, Y: f.line}, true
}

func (f *field) OpenMessage() {
	f.opened = true
}

func (f *field) value() string {
	return f.input.Value()
}
