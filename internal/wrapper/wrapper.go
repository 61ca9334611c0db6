package wrapper

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/muurk/formguard/internal/logging"
	"github.com/muurk/formguard/internal/validation"
)

// Wrapper is the field controller for one control.
type Wrapper struct {
	name     string
	control  Control
	render   RenderFunc
	registry Registry

	// op serializes Blur, EmulateBlur, Submit, Focus and SetRules.
	op sync.Mutex

	mu       sync.RWMutex
	rules    []validation.Rule
	states   []validation.Visibility
	changing bool
	mounted  bool
}

// Option configures a Wrapper.
type Option func(*Wrapper)

// WithRegistry attaches the wrapper to a registry. A nil registry is the
// same as no registry.
func WithRegistry(r Registry) Option {
	return func(w *Wrapper) {
		if r != nil {
			w.registry = r
		}
	}
}

// WithName sets the name used in logs and snapshots.
func WithName(name string) Option {
	return func(w *Wrapper) {
		w.name = name
	}
}

// New creates a wrapper and computes its initial visibility. The registry is
// asked whether anyone is mid-edit before the wrapper registers itself.
// control and render may be nil.
func New(control Control, rules []validation.Rule, render RenderFunc, opts ...Option) (*Wrapper, error) {
	w := &Wrapper{
		control:  control,
		render:   render,
		registry: NopRegistry{},
	}
	for _, opt := range opts {
		opt(w)
	}

	rules = slices.Clone(rules)
	states, err := validation.InitialStates(rules, w.registry.IsAnyoneChanging())
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", w.name, err)
	}
	w.rules = rules
	w.states = states

	logging.LogTransition(w.name, "init", states)
	return w, nil
}

// Name returns the wrapper's name.
func (w *Wrapper) Name() string {
	return w.name
}

// Control returns the wrapped control, which may be nil.
func (w *Wrapper) Control() Control {
	return w.control
}

// Mount registers the wrapper with its registry. Calling it twice is a no-op.
func (w *Wrapper) Mount() {
	w.mu.Lock()
	if w.mounted {
		w.mu.Unlock()
		return
	}
	w.mounted = true
	w.mu.Unlock()

	w.registry.Register(w)
}

// Unmount removes the wrapper from its registry.
func (w *Wrapper) Unmount() {
	w.mu.Lock()
	if !w.mounted {
		w.mu.Unlock()
		return
	}
	w.mounted = false
	w.mu.Unlock()

	w.registry.Unregister(w)
}

// SetRules replaces the rule sequence. A value-equal sequence is ignored;
// anything else discards all visibility and starts over.
func (w *Wrapper) SetRules(rules []validation.Rule) error {
	w.op.Lock()
	defer w.op.Unlock()

	w.mu.RLock()
	same := validation.Equal(w.rules, rules)
	w.mu.RUnlock()
	if same {
		return nil
	}

	// Ask before taking the lock: the registry reads IsChanging on every
	// member, including this one.
	anyone := w.registry.IsAnyoneChanging()

	rules = slices.Clone(rules)
	states, err := validation.InitialStates(rules, anyone)
	if err != nil {
		return fmt.Errorf("field %q: %w", w.name, err)
	}

	w.mu.Lock()
	w.rules = rules
	w.states = states
	w.mu.Unlock()

	logging.LogTransition(w.name, "rules", states)
	return nil
}

// HandleChange marks the field as being edited. It never waits on other
// operations.
func (w *Wrapper) HandleChange() {
	w.mu.Lock()
	w.changing = true
	w.mu.Unlock()
}

// HandleBlur runs the blur transition, then reports validity and the blur
// itself to the registry.
func (w *Wrapper) HandleBlur() {
	valid := w.blur("blur")
	w.registry.ReportValidity(w, valid)
	w.registry.NotifyBlur(w)
}

// EmulateBlur runs the blur transition without telling the registry.
func (w *Wrapper) EmulateBlur() {
	w.blur("emulate_blur")
}

func (w *Wrapper) blur(event string) bool {
	w.op.Lock()
	defer w.op.Unlock()

	w.mu.Lock()
	w.states = validation.Blur(w.rules, w.states)
	w.changing = false
	states := w.states
	w.mu.Unlock()

	logging.LogTransition(w.name, event, states)
	return validation.AllHidden(states)
}

// Submit reveals every non-immediate rule. Each rule is committed on its
// own; Submit returns once all of them are in. ctx is only checked before
// starting: a submit that has begun always completes.
func (w *Wrapper) Submit(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	w.op.Lock()
	defer w.op.Unlock()

	w.mu.Lock()
	w.changing = false
	n := len(w.rules)
	w.mu.Unlock()

	var g errgroup.Group
	for i := 0; i < n; i++ {
		g.Go(func() error {
			w.mu.Lock()
			defer w.mu.Unlock()
			w.states, _ = validation.SubmitOne(w.rules, w.states, i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	logging.LogTransition(w.name, "submit", w.States())
	return nil
}

// Focus scrolls the control into view using the registry's vertical offset
// and then gives it input focus. Controls that cannot scroll or focus are
// skipped silently. Focus waits for scrolling to finish; cancel ctx to give
// up on a stalled scroll, in which case focus is not moved.
func (w *Wrapper) Focus(ctx context.Context) error {
	w.op.Lock()
	defer w.op.Unlock()

	if w.control != nil {
		if s, ok := w.control.(Scroller); ok {
			settings := w.registry.ScrollSettings().withDefaults()
			if err := s.ScrollIntoView(ctx, settings); err != nil {
				return fmt.Errorf("field %q: scroll into view: %w", w.name, err)
			}
		}
		if f, ok := w.control.(Focuser); ok {
			f.Focus()
		}
	}

	w.mu.Lock()
	w.changing = false
	w.mu.Unlock()
	return nil
}

// OpenMessage forces the validation message open on controls that support it.
func (w *Wrapper) OpenMessage() {
	if o, ok := w.control.(MessageOpener); ok {
		o.OpenMessage()
	}
}

// ControlPosition returns the control's on-screen position, if it has one.
func (w *Wrapper) ControlPosition() (Position, bool) {
	if l, ok := w.control.(Locator); ok {
		return l.Position()
	}
	return Position{}, false
}

// OnChange returns a change handler that marks w as changing and then
// passes the event on to next, if any.
func OnChange[T any](w *Wrapper, next func(T)) func(T) {
	return func(ev T) {
		w.HandleChange()
		if next != nil {
			next(ev)
		}
	}
}

// OnBlur returns a blur handler that runs w.HandleBlur and then passes the
// event on to next, if any.
func OnBlur[T any](w *Wrapper, next func(T)) func(T) {
	return func(ev T) {
		w.HandleBlur()
		if next != nil {
			next(ev)
		}
	}
}
