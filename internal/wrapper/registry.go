package wrapper

// DefaultVerticalOffset is used by Focus when the registry does not
// configure a vertical scroll offset.
const DefaultVerticalOffset = 50

// ScrollSettings is the shared scroll configuration handed out by a registry.
type ScrollSettings struct {
	HorizontalOffset int `yaml:"horizontal_offset" json:"horizontal_offset" env:"HORIZONTAL_OFFSET"`
	VerticalOffset   int `yaml:"vertical_offset" json:"vertical_offset" env:"VERTICAL_OFFSET"`
}

// withDefaults fills in DefaultVerticalOffset when none is configured.
func (s ScrollSettings) withDefaults() ScrollSettings {
	if s.VerticalOffset == 0 {
		s.VerticalOffset = DefaultVerticalOffset
	}
	return s
}

// Registry tracks the live wrappers of one form.
//
// Register and Unregister must be idempotent. IsAnyoneChanging may be called
// by a wrapper that has not registered yet. NotifyBlur and ReportValidity
// are called with none of the wrapper's locks held, so implementations may
// call back into any wrapper.
type Registry interface {
	Register(w *Wrapper)
	Unregister(w *Wrapper)
	NotifyBlur(w *Wrapper)
	ReportValidity(w *Wrapper, valid bool)
	IsAnyoneChanging() bool
	ScrollSettings() ScrollSettings
}

// NopRegistry is the null registry: nobody is mid-edit, scroll settings are
// zero, every notification is dropped.
type NopRegistry struct{}

func (NopRegistry) Register(*Wrapper)             {}
func (NopRegistry) Unregister(*Wrapper)           {}
func (NopRegistry) NotifyBlur(*Wrapper)           {}
func (NopRegistry) ReportValidity(*Wrapper, bool) {}
func (NopRegistry) IsAnyoneChanging() bool        { return false }
func (NopRegistry) ScrollSettings() ScrollSettings {
	return ScrollSettings{}
}
