package registry

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/muurk/formguard/internal/logging"
	"github.com/muurk/formguard/internal/wrapper"
)

// BlurListener is called after a member blurs.
type BlurListener func(source *wrapper.Wrapper)

// Registry is the in-memory wrapper.Registry.
type Registry struct {
	mu        sync.Mutex
	members   []*wrapper.Wrapper
	validity  map[*wrapper.Wrapper]bool
	listeners []BlurListener
	scroll    wrapper.ScrollSettings
	propagate bool
	metrics   *Metrics
}

var _ wrapper.Registry = (*Registry)(nil)

// Option configures a Registry.
type Option func(*Registry)

// WithScroll sets the scroll settings handed to members on Focus.
func WithScroll(s wrapper.ScrollSettings) Option {
	return func(r *Registry) {
		r.scroll = s
	}
}

// WithBlurPropagation controls whether a member's blur emulates a blur on
// every other member. It is on by default.
func WithBlurPropagation(enabled bool) Option {
	return func(r *Registry) {
		r.propagate = enabled
	}
}

// WithMetrics records registry activity in m.
func WithMetrics(m *Metrics) Option {
	return func(r *Registry) {
		r.metrics = m
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		validity:  make(map[*wrapper.Wrapper]bool),
		propagate: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds w. Adding a member twice is a no-op.
func (r *Registry) Register(w *wrapper.Wrapper) {
	r.mu.Lock()
	if slices.Contains(r.members, w) {
		r.mu.Unlock()
		return
	}
	r.members = append(r.members, w)
	n := len(r.members)
	r.mu.Unlock()

	if r.metrics != nil {
		r.metrics.Members.Inc()
	}
	logging.LogRegistryEvent("register", w.Name(), n)
}

// Unregister removes w. Removing an absent member is a no-op.
func (r *Registry) Unregister(w *wrapper.Wrapper) {
	r.mu.Lock()
	i := slices.Index(r.members, w)
	if i < 0 {
		r.mu.Unlock()
		return
	}
	r.members = slices.Delete(r.members, i, i+1)
	delete(r.validity, w)
	n := len(r.members)
	r.mu.Unlock()

	if r.metrics != nil {
		r.metrics.Members.Dec()
	}
	logging.LogRegistryEvent("unregister", w.Name(), n)
}

// OnBlur adds a listener called after every member blur.
func (r *Registry) OnBlur(l BlurListener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, l)
}

// NotifyBlur relays source's blur to the listeners and, when propagation is
// enabled, emulates a blur on the other members.
func (r *Registry) NotifyBlur(source *wrapper.Wrapper) {
	r.mu.Lock()
	listeners := slices.Clone(r.listeners)
	var siblings []*wrapper.Wrapper
	if r.propagate {
		for _, m := range r.members {
			if m != source {
				siblings = append(siblings, m)
			}
		}
	}
	n := len(r.members)
	r.mu.Unlock()

	if r.metrics != nil {
		r.metrics.Blurs.Inc()
	}
	logging.LogRegistryEvent("blur", source.Name(), n)

	for _, m := range siblings {
		m.EmulateBlur()
	}
	for _, l := range listeners {
		l(source)
	}
}

// ReportValidity records w's validity as of its last blur.
func (r *Registry) ReportValidity(w *wrapper.Wrapper, valid bool) {
	r.mu.Lock()
	if slices.Contains(r.members, w) {
		r.validity[w] = valid
	}
	r.mu.Unlock()

	if r.metrics != nil {
		r.metrics.ValidityReports.WithLabelValues(resultLabel(valid)).Inc()
	}
}

// IsAnyoneChanging reports whether any member is mid-edit.
func (r *Registry) IsAnyoneChanging() bool {
	for _, m := range r.Members() {
		if m.IsChanging() {
			return true
		}
	}
	return false
}

// ScrollSettings returns the shared scroll configuration.
func (r *Registry) ScrollSettings() wrapper.ScrollSettings {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.scroll
}

// SetScrollSettings replaces the shared scroll configuration.
func (r *Registry) SetScrollSettings(s wrapper.ScrollSettings) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scroll = s
}

// Members returns the current members in registration order.
func (r *Registry) Members() []*wrapper.Wrapper {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.members)
}

// Len returns the number of members.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.members)
}

// Lookup returns the member with the given name.
func (r *Registry) Lookup(name string) (*wrapper.Wrapper, bool) {
	for _, m := range r.Members() {
		if m.Name() == name {
			return m, true
		}
	}
	return nil, false
}

// IsValid reports whether every member's last reported validity was true.
// Members that never reported count as valid.
func (r *Registry) IsValid() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, valid := range r.validity {
		if !valid {
			return false
		}
	}
	return true
}

// Validate submits every member, then focuses the first member with an
// error. It returns true when no member has an error.
func (r *Registry) Validate(ctx context.Context) (bool, error) {
	members := r.Members()

	g, gctx := errgroup.WithContext(ctx)
	for _, m := range members {
		g.Go(func() error {
			return m.Submit(gctx)
		})
	}
	if err := g.Wait(); err != nil {
		return false, fmt.Errorf("submit: %w", err)
	}

	var invalid []*wrapper.Wrapper
	hasError := make([]bool, len(members))
	for i, m := range members {
		hasError[i] = m.HasError()
		if hasError[i] {
			invalid = append(invalid, m)
		}
	}

	r.mu.Lock()
	for i, m := range members {
		if slices.Contains(r.members, m) {
			r.validity[m] = !hasError[i]
		}
	}
	r.mu.Unlock()

	valid := len(invalid) == 0
	if r.metrics != nil {
		r.metrics.Validations.WithLabelValues(resultLabel(valid)).Inc()
	}
	if valid {
		logging.Debug("Form validated", zap.Int("members", len(members)))
		return true, nil
	}

	first := FirstByPosition(invalid)
	logging.Debug("Form has errors",
		zap.Int("invalid", len(invalid)),
		zap.String("first", first.Name()),
	)
	if err := first.Focus(ctx); err != nil {
		return false, err
	}
	first.OpenMessage()
	return false, nil
}

// FirstByPosition returns the top-most, then left-most wrapper. Wrappers
// without a position sort after positioned ones, in their given order.
func FirstByPosition(ws []*wrapper.Wrapper) *wrapper.Wrapper {
	if len(ws) == 0 {
		return nil
	}
	type entry struct {
		w   *wrapper.Wrapper
		pos wrapper.Position
		ok  bool
	}
	entries := make([]entry, len(ws))
	for i, w := range ws {
		pos, ok := w.ControlPosition()
		entries[i] = entry{w: w, pos: pos, ok: ok}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.ok != b.ok {
			return a.ok
		}
		if !a.ok {
			return false
		}
		if a.pos.Y != b.pos.Y {
			return a.pos.Y < b.pos.Y
		}
		return a.pos.X < b.pos.X
	})
	return entries[0].w
}
