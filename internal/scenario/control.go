package scenario

import (
	"context"
	"fmt"
	"sync"

	"github.com/muurk/formguard/internal/wrapper"
)

// focusTracker remembers which headless control was focused last.
type focusTracker struct {
	mu      sync.Mutex
	name    string
	offset  int
	opened  string
	focuses int
}

func (t *focusTracker) focused() (name string, offset int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.name, t.offset
}

// headless is a control with no screen. It records focus and scroll calls
// in the shared tracker.
type headless struct {
	name    string
	pos     *wrapper.Position
	tracker *focusTracker
}

func (h *headless) View(p wrapper.Props) string {
	return fmt.Sprintf("[%s error=%v warning=%v]", h.name, p.Error, p.Warning)
}

func (h *headless) Focus() {
	h.tracker.mu.Lock()
	defer h.tracker.mu.Unlock()
	h.tracker.name = h.name
	h.tracker.focuses++
}

func (h *headless) ScrollIntoView(ctx context.Context, s wrapper.ScrollSettings) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	h.tracker.mu.Lock()
	defer h.tracker.mu.Unlock()
	h.tracker.offset = s.VerticalOffset
	return nil
}

func (h *headless) OpenMessage() {
	h.tracker.mu.Lock()
	defer h.tracker.mu.Unlock()
	h.tracker.opened = h.name
}

func (h *headless) Position() (wrapper.Position, bool) {
	if h.pos == nil {
		return wrapper.Position{}, false
	}
	return *h.pos, true
}
