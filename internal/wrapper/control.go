package wrapper

import (
	"context"

	"github.com/muurk/formguard/internal/validation"
)

// Props are the flags a wrapper injects into its control.
type Props struct {
	Error   bool `json:"error"`
	Warning bool `json:"warning"`
}

// Position is a control's location, X to the right and Y downwards.
type Position struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
}

// Control is the wrapped input element. View renders it with the injected
// props applied.
type Control interface {
	View(props Props) string
}

// Optional capabilities. A control declares them by implementing the
// interface; the wrapper never probes for anything else.

// Focuser can take input focus.
type Focuser interface {
	Focus()
}

// Scroller can bring itself into view. ScrollIntoView returns once
// scrolling has finished.
type Scroller interface {
	ScrollIntoView(ctx context.Context, settings ScrollSettings) error
}

// Locator knows where the control is on screen. ok is false when the control
// is not laid out.
type Locator interface {
	Position() (pos Position, ok bool)
}

// MessageOpener can force its validation message open, for controls whose
// message is normally shown only on hover.
type MessageOpener interface {
	OpenMessage()
}

// RenderFunc renders a control together with its validation message.
// hasError is true when a rule is selected for display; selected is nil
// otherwise.
type RenderFunc func(control string, hasError bool, selected *validation.Rule) string
