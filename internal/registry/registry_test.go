package registry

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muurk/formguard/internal/validation"
	"github.com/muurk/formguard/internal/wrapper"
)

type stubControl struct {
	pos     *wrapper.Position
	focused int
	opened  int
	offset  int
}

func (c *stubControl) View(wrapper.Props) string { return "" }
func (c *stubControl) Focus()                     { c.focused++ }
func (c *stubControl) OpenMessage()               { c.opened++ }

func (c *stubControl) ScrollIntoView(_ context.Context, s wrapper.ScrollSettings) error {
	c.offset = s.VerticalOffset
	return nil
}

func (c *stubControl) Position() (wrapper.Position, bool) {
	if c.pos == nil {
		return wrapper.Position{}, false
	}
	return *c.pos, true
}

func mount(t *testing.T, reg *Registry, name string, ctrl wrapper.Control, rules ...validation.Rule) *wrapper.Wrapper {
	t.Helper()
	w, err := wrapper.New(ctrl, rules, nil, wrapper.WithName(name), wrapper.WithRegistry(reg))
	require.NoError(t, err)
	w.Mount()
	return w
}

func TestRegisterIdempotent(t *testing.T) {
	reg := New()
	w := mount(t, reg, "a", nil)

	reg.Register(w)
	assert.Equal(t, 1, reg.Len())

	reg.Unregister(w)
	reg.Unregister(w)
	assert.Equal(t, 0, reg.Len())
}

func TestIsAnyoneChanging(t *testing.T) {
	reg := New()
	a := mount(t, reg, "a", nil)
	mount(t, reg, "b", nil)

	assert.False(t, reg.IsAnyoneChanging())
	a.HandleChange()
	assert.True(t, reg.IsAnyoneChanging())
	a.HandleBlur()
	assert.False(t, reg.IsAnyoneChanging())
}

func TestNewFieldWhileEditingStartsHidden(t *testing.T) {
	reg := New()
	a := mount(t, reg, "a", nil)
	a.HandleChange()

	b := mount(t, reg, "b", nil, validation.LostFocus(true, validation.LevelError))
	assert.False(t, b.IsErrorOrWarning(0))

	// a's blur is propagated to b as an emulated blur
	a.HandleBlur()
	assert.True(t, b.IsErrorOrWarning(0))
}

func TestBlurPropagationDisabled(t *testing.T) {
	reg := New(WithBlurPropagation(false))
	a := mount(t, reg, "a", nil)
	a.HandleChange()
	b := mount(t, reg, "b", nil, validation.LostFocus(true, validation.LevelError))

	a.HandleBlur()
	assert.False(t, b.IsErrorOrWarning(0))
}

func TestBlurListeners(t *testing.T) {
	reg := New()
	a := mount(t, reg, "a", nil)

	var got []string
	reg.OnBlur(func(src *wrapper.Wrapper) { got = append(got, src.Name()) })

	a.HandleBlur()
	a.EmulateBlur()
	assert.Equal(t, []string{"a"}, got)
}

func TestValidityAggregation(t *testing.T) {
	reg := New()
	a := mount(t, reg, "a", nil, validation.LostFocus(true, validation.LevelError))
	b := mount(t, reg, "b", nil, validation.LostFocus(false, validation.LevelError))

	assert.True(t, reg.IsValid(), "nothing reported yet")

	b.HandleBlur()
	assert.True(t, reg.IsValid())

	a.HandleBlur()
	assert.False(t, reg.IsValid())

	a.Unmount()
	assert.True(t, reg.IsValid(), "unregistered members are forgotten")
}

func TestValidateFocusesFirstByPosition(t *testing.T) {
	reg := New(WithScroll(wrapper.ScrollSettings{VerticalOffset: 3}))

	low := &stubControl{pos: &wrapper.Position{X: 0, Y: 20}}
	high := &stubControl{pos: &wrapper.Position{X: 5, Y: 2}}
	unplaced := &stubControl{}
	ok := &stubControl{pos: &wrapper.Position{X: 0, Y: 0}}

	mount(t, reg, "unplaced", unplaced, validation.OnSubmit(true, validation.LevelError))
	mount(t, reg, "low", low, validation.OnSubmit(true, validation.LevelError))
	mount(t, reg, "high", high, validation.OnSubmit(true, validation.LevelError))
	mount(t, reg, "ok", ok, validation.OnSubmit(false, validation.LevelError))

	valid, err := reg.Validate(context.Background())
	require.NoError(t, err)
	assert.False(t, valid)

	assert.Equal(t, 1, high.focused)
	assert.Equal(t, 1, high.opened)
	assert.Equal(t, 3, high.offset)
	assert.Zero(t, low.focused)
	assert.Zero(t, unplaced.focused)
	assert.False(t, reg.IsValid())
}

func TestValidateAllValid(t *testing.T) {
	reg := New()
	ctrl := &stubControl{}
	w := mount(t, reg, "a", ctrl, validation.OnSubmit(false, validation.LevelError))
	mount(t, reg, "b", nil, validation.OnSubmit(true, validation.LevelWarning))

	valid, err := reg.Validate(context.Background())
	require.NoError(t, err)
	assert.True(t, valid, "warnings do not make a form invalid")
	assert.Zero(t, ctrl.focused)
	assert.True(t, w.States()[0].Visible)
}

func TestFirstByPosition(t *testing.T) {
	assert.Nil(t, FirstByPosition(nil))

	a, err := wrapper.New(&stubControl{}, nil, nil, wrapper.WithName("a"))
	require.NoError(t, err)
	b, err := wrapper.New(&stubControl{}, nil, nil, wrapper.WithName("b"))
	require.NoError(t, err)
	assert.Same(t, a, FirstByPosition([]*wrapper.Wrapper{a, b}), "unpositioned keep order")

	c, err := wrapper.New(&stubControl{pos: &wrapper.Position{X: 9, Y: 1}}, nil, nil)
	require.NoError(t, err)
	d, err := wrapper.New(&stubControl{pos: &wrapper.Position{X: 1, Y: 1}}, nil, nil)
	require.NoError(t, err)
	assert.Same(t, d, FirstByPosition([]*wrapper.Wrapper{a, c, d}))
}

func TestLookupAndScroll(t *testing.T) {
	reg := New()
	w := mount(t, reg, "email", nil)

	got, ok := reg.Lookup("email")
	require.True(t, ok)
	assert.Same(t, w, got)
	_, ok = reg.Lookup("missing")
	assert.False(t, ok)

	reg.SetScrollSettings(wrapper.ScrollSettings{VerticalOffset: 8})
	assert.Equal(t, 8, reg.ScrollSettings().VerticalOffset)
}

func TestMetrics(t *testing.T) {
	promReg := prometheus.NewRegistry()
	m := NewMetrics(promReg)
	reg := New(WithMetrics(m))

	a := mount(t, reg, "a", nil, validation.LostFocus(true, validation.LevelError))
	mount(t, reg, "b", nil)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Members))

	a.HandleBlur()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Blurs))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ValidityReports.WithLabelValues("invalid")))

	_, err := reg.Validate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Validations.WithLabelValues("invalid")))

	a.Unmount()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Members))
}

func TestBlurPropagationClearsSiblingEdit(t *testing.T) {
	reg := New()
	a := mount(t, reg, "a", nil)
	b := mount(t, reg, "b", nil, validation.LostFocus(true, validation.LevelError))

	b.HandleChange()
	require.True(t, b.IsChanging())

	a.HandleBlur()
	assert.False(t, b.IsChanging(), "emulated blur ends the sibling's edit")
	assert.True(t, b.Props().Error)
}
