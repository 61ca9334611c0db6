package wrapper

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muurk/formguard/internal/validation"
)

type fakeRegistry struct {
	mu        sync.Mutex
	changing  bool
	scroll    ScrollSettings
	members   []*Wrapper
	blurs     []*Wrapper
	validity  []bool
	anyoneAsk int
}

func (r *fakeRegistry) Register(w *Wrapper) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.members = append(r.members, w)
}

func (r *fakeRegistry) Unregister(w *Wrapper) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, m := range r.members {
		if m == w {
			r.members = append(r.members[:i], r.members[i+1:]...)
			return
		}
	}
}

func (r *fakeRegistry) NotifyBlur(w *Wrapper) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blurs = append(r.blurs, w)
}

func (r *fakeRegistry) ReportValidity(_ *Wrapper, valid bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.validity = append(r.validity, valid)
}

func (r *fakeRegistry) IsAnyoneChanging() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.anyoneAsk++
	return r.changing
}

func (r *fakeRegistry) ScrollSettings() ScrollSettings {
	return r.scroll
}

type fakeControl struct {
	calls    []string
	offset   int
	pos      *Position
	scrollFn func(ctx context.Context) error
}

func (c *fakeControl) View(p Props) string {
	return fmt.Sprintf("[input error=%v warning=%v]", p.Error, p.Warning)
}

func (c *fakeControl) Focus() { c.calls = append(c.calls, "focus") }

func (c *fakeControl) ScrollIntoView(ctx context.Context, s ScrollSettings) error {
	c.calls = append(c.calls, "scroll")
	c.offset = s.VerticalOffset
	if c.scrollFn != nil {
		return c.scrollFn(ctx)
	}
	return nil
}

func (c *fakeControl) Position() (Position, bool) {
	if c.pos == nil {
		return Position{}, false
	}
	return *c.pos, true
}

func (c *fakeControl) OpenMessage() { c.calls = append(c.calls, "open") }

func errRule(b validation.Behaviour) validation.Rule {
	return validation.Rule{Error: true, Level: validation.LevelError, Behaviour: b}
}

func TestScenarioImmediateShownAtConstruction(t *testing.T) {
	w, err := New(nil, []validation.Rule{errRule(validation.BehaviourImmediate)}, nil)
	require.NoError(t, err)

	assert.True(t, w.IsErrorOrWarning(0))
	assert.True(t, w.HasError())

	w.HandleChange()
	w.HandleBlur()
	require.NoError(t, w.Submit(context.Background()))
	assert.True(t, w.IsErrorOrWarning(0), "immediate rules ignore events")
}

func TestScenarioLostFocusPreBlurred(t *testing.T) {
	reg := &fakeRegistry{}
	w, err := New(nil, []validation.Rule{errRule(validation.BehaviourLostFocus)}, nil, WithRegistry(reg))
	require.NoError(t, err)

	assert.True(t, w.IsErrorOrWarning(0))
	assert.Equal(t, 1, reg.anyoneAsk, "registry is consulted before registration")
	assert.Empty(t, reg.members)
}

func TestScenarioLostFocusWhileSomeoneEdits(t *testing.T) {
	reg := &fakeRegistry{changing: true}
	w, err := New(nil, []validation.Rule{errRule(validation.BehaviourLostFocus)}, nil, WithRegistry(reg))
	require.NoError(t, err)

	assert.False(t, w.IsErrorOrWarning(0))

	w.HandleBlur()
	assert.True(t, w.IsErrorOrWarning(0))
}

func TestScenarioSubmitRule(t *testing.T) {
	w, err := New(nil, []validation.Rule{errRule(validation.BehaviourSubmit)}, nil)
	require.NoError(t, err)

	assert.False(t, w.IsErrorOrWarning(0))
	w.HandleBlur()
	assert.False(t, w.IsErrorOrWarning(0), "blur does not reveal submit rules")

	require.NoError(t, w.Submit(context.Background()))
	assert.True(t, w.IsErrorOrWarning(0))
}

func TestScenarioChangeSuppressesDisplay(t *testing.T) {
	w, err := New(&fakeControl{}, []validation.Rule{errRule(validation.BehaviourLostFocus)}, nil)
	require.NoError(t, err)
	require.Equal(t, Props{Error: true}, w.Props())

	w.HandleChange()
	assert.Equal(t, Props{}, w.Props())
	assert.True(t, w.IsErrorOrWarning(0), "the rule itself stays visible")

	w.HandleBlur()
	assert.Equal(t, Props{Error: true}, w.Props())
}

func TestChangeClearedBySubmitAndFocus(t *testing.T) {
	w, err := New(&fakeControl{}, []validation.Rule{errRule(validation.BehaviourLostFocus)}, nil)
	require.NoError(t, err)

	w.HandleChange()
	require.NoError(t, w.Submit(context.Background()))
	assert.False(t, w.IsChanging())

	w.HandleChange()
	require.NoError(t, w.Focus(context.Background()))
	assert.False(t, w.IsChanging())
}

func TestScenarioSelectedRuleOrder(t *testing.T) {
	rules := []validation.Rule{
		errRule(validation.BehaviourLostFocus),
		errRule(validation.BehaviourSubmit),
	}
	w, err := New(nil, rules, nil)
	require.NoError(t, err)

	rule, ok := w.Selected()
	require.True(t, ok)
	assert.Equal(t, rules[0], rule)
	assert.Equal(t, 0, w.Snapshot().Selected)
}

func TestEmulateBlurIdempotentAndSilent(t *testing.T) {
	reg := &fakeRegistry{changing: true}
	rules := []validation.Rule{
		errRule(validation.BehaviourLostFocus),
		{Error: false, Level: validation.LevelWarning, Behaviour: validation.BehaviourLostFocus},
		errRule(validation.BehaviourSubmit),
	}
	w, err := New(nil, rules, nil, WithRegistry(reg))
	require.NoError(t, err)

	w.EmulateBlur()
	first := w.States()
	w.EmulateBlur()
	assert.Equal(t, first, w.States())

	assert.Empty(t, reg.blurs)
	assert.Empty(t, reg.validity)
}

func TestHandleBlurNotifiesRegistry(t *testing.T) {
	reg := &fakeRegistry{}
	w, err := New(nil, []validation.Rule{
		{Error: false, Level: validation.LevelError, Behaviour: validation.BehaviourLostFocus},
	}, nil, WithRegistry(reg))
	require.NoError(t, err)

	w.HandleBlur()
	assert.Equal(t, []*Wrapper{w}, reg.blurs)
	assert.Equal(t, []bool{true}, reg.validity)

	require.NoError(t, w.SetRules([]validation.Rule{errRule(validation.BehaviourLostFocus)}))
	w.HandleBlur()
	assert.Equal(t, []bool{true, false}, reg.validity)
}

func TestSetRulesStability(t *testing.T) {
	rules := []validation.Rule{errRule(validation.BehaviourSubmit)}
	w, err := New(nil, rules, nil)
	require.NoError(t, err)
	require.NoError(t, w.Submit(context.Background()))
	require.True(t, w.IsErrorOrWarning(0))

	// Same values, different backing array: nothing is reset.
	require.NoError(t, w.SetRules([]validation.Rule{errRule(validation.BehaviourSubmit)}))
	assert.True(t, w.IsErrorOrWarning(0))

	// Any value change resets everything, including the submit reveal.
	require.NoError(t, w.SetRules([]validation.Rule{
		errRule(validation.BehaviourSubmit),
		errRule(validation.BehaviourImmediate),
	}))
	assert.False(t, w.IsErrorOrWarning(0))
	assert.Len(t, w.States(), 2)
}

func TestSetRulesDoesNotAliasCallerSlice(t *testing.T) {
	rules := []validation.Rule{errRule(validation.BehaviourImmediate)}
	w, err := New(nil, rules, nil)
	require.NoError(t, err)

	rules[0].Error = false
	assert.True(t, w.HasError())
}

func TestUnknownBehaviour(t *testing.T) {
	bad := []validation.Rule{{Error: true, Level: validation.LevelError, Behaviour: "later"}}

	_, err := New(nil, bad, nil, WithName("email"))
	require.Error(t, err)
	assert.True(t, validation.IsBehaviourError(err))
	assert.Contains(t, err.Error(), "email")

	w, err := New(nil, []validation.Rule{errRule(validation.BehaviourImmediate)}, nil)
	require.NoError(t, err)
	require.Error(t, w.SetRules(bad))
	assert.True(t, w.HasError(), "failed SetRules leaves the previous rules in place")
}

func TestMountUnmountIdempotent(t *testing.T) {
	reg := &fakeRegistry{}
	w, err := New(nil, nil, nil, WithRegistry(reg))
	require.NoError(t, err)

	w.Mount()
	w.Mount()
	assert.Len(t, reg.members, 1)
	assert.True(t, w.Snapshot().Mounted)

	w.Unmount()
	w.Unmount()
	assert.Empty(t, reg.members)
}

func TestNilRegistryIsNop(t *testing.T) {
	w, err := New(nil, []validation.Rule{errRule(validation.BehaviourLostFocus)}, nil, WithRegistry(nil))
	require.NoError(t, err)

	w.Mount()
	w.HandleBlur()
	require.NoError(t, w.Focus(context.Background()))
	w.Unmount()
	assert.True(t, w.HasError())
}

func TestFocusScrollsThenFocuses(t *testing.T) {
	ctrl := &fakeControl{}
	reg := &fakeRegistry{}
	w, err := New(ctrl, nil, nil, WithRegistry(reg))
	require.NoError(t, err)

	require.NoError(t, w.Focus(context.Background()))
	assert.Equal(t, []string{"scroll", "focus"}, ctrl.calls)
	assert.Equal(t, DefaultVerticalOffset, ctrl.offset)

	reg.scroll = ScrollSettings{VerticalOffset: 12}
	require.NoError(t, w.Focus(context.Background()))
	assert.Equal(t, 12, ctrl.offset)
}

func TestFocusStalledScrollHonoursContext(t *testing.T) {
	ctrl := &fakeControl{scrollFn: func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}}
	w, err := New(ctrl, nil, nil)
	require.NoError(t, err)
	w.HandleChange()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = w.Focus(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, []string{"scroll"}, ctrl.calls, "focus is not moved after a failed scroll")
	assert.True(t, w.IsChanging())
}

func TestFocusWithoutCapabilities(t *testing.T) {
	w, err := New(plainControl{}, nil, nil)
	require.NoError(t, err)
	require.NoError(t, w.Focus(context.Background()))

	_, ok := w.ControlPosition()
	assert.False(t, ok)
}

func TestControlPosition(t *testing.T) {
	ctrl := &fakeControl{pos: &Position{X: 3, Y: 7}}
	w, err := New(ctrl, nil, nil)
	require.NoError(t, err)

	pos, ok := w.ControlPosition()
	require.True(t, ok)
	assert.Equal(t, Position{X: 3, Y: 7}, pos)

	w.OpenMessage()
	assert.Equal(t, []string{"open"}, ctrl.calls)
}

func TestSubmitCanceledBeforeStart(t *testing.T) {
	w, err := New(nil, []validation.Rule{errRule(validation.BehaviourSubmit)}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, w.Submit(ctx), context.Canceled)
	assert.False(t, w.IsErrorOrWarning(0))
}

func TestSubmitManyRules(t *testing.T) {
	rules := make([]validation.Rule, 64)
	for i := range rules {
		rules[i] = errRule(validation.BehaviourSubmit)
		if i%3 == 0 {
			rules[i].Behaviour = validation.BehaviourImmediate
		}
	}
	w, err := New(nil, rules, nil)
	require.NoError(t, err)
	require.NoError(t, w.Submit(context.Background()))

	for i, st := range w.States() {
		if i%3 == 0 {
			assert.False(t, st.Tracked, "rule %d", i)
		} else {
			assert.True(t, st.Visible, "rule %d", i)
		}
	}
}

func TestConcurrentOperations(t *testing.T) {
	rules := []validation.Rule{
		errRule(validation.BehaviourLostFocus),
		errRule(validation.BehaviourSubmit),
	}
	w, err := New(&fakeControl{}, rules, nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(3)
		go func() { defer wg.Done(); w.HandleBlur() }()
		go func() { defer wg.Done(); _ = w.Submit(context.Background()) }()
		go func() { defer wg.Done(); w.HandleChange(); _ = w.Props() }()
	}
	wg.Wait()

	assert.Len(t, w.States(), 2)
	assert.True(t, w.States()[1].Visible)
}

func TestChainedHandlers(t *testing.T) {
	reg := &fakeRegistry{}
	w, err := New(nil, []validation.Rule{errRule(validation.BehaviourLostFocus)}, nil, WithRegistry(reg))
	require.NoError(t, err)

	var order []string
	onChange := OnChange(w, func(value string) {
		order = append(order, fmt.Sprintf("change %q changing=%v", value, w.IsChanging()))
	})
	onBlur := OnBlur(w, func(value string) {
		order = append(order, fmt.Sprintf("blur %q changing=%v", value, w.IsChanging()))
	})

	onChange("al")
	onChange("ali")
	onBlur("ali")
	assert.Equal(t, []string{
		`change "al" changing=true`,
		`change "ali" changing=true`,
		`blur "ali" changing=false`,
	}, order)
	assert.Len(t, reg.blurs, 1)

	// nil next handlers are allowed
	OnChange[int](w, nil)(1)
	OnBlur[struct{}](w, nil)(struct{}{})
	assert.False(t, w.IsChanging())
}

type plainControl struct{}

func (plainControl) View(Props) string { return "plain" }
