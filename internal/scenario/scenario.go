package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/muurk/formguard/internal/validation"
	"github.com/muurk/formguard/internal/wrapper"
)

// Event names accepted in a step.
const (
	EventChange      = "change"
	EventBlur        = "blur"
	EventEmulateBlur = "emulate_blur"
	EventSubmit      = "submit"
	EventFocus       = "focus"
	EventRules       = "rules"
	EventValidate    = "validate"
	EventMount       = "mount"
	EventUnmount     = "unmount"
)

// Scenario is a parsed scenario document.
type Scenario struct {
	Name     string   `yaml:"name"`
	Settings Settings `yaml:"settings"`
	Fields   []Field  `yaml:"fields"`
	Steps    []Step   `yaml:"steps"`
}

// Settings configure the registry the scenario runs against.
type Settings struct {
	Scroll wrapper.ScrollSettings `yaml:"scroll"`
	// PropagateBlur defaults to true when omitted.
	PropagateBlur *bool `yaml:"propagate_blur"`
}

// Field declares one wrapped control.
type Field struct {
	Name     string            `yaml:"name"`
	Position *wrapper.Position `yaml:"position"`
	Rules    []validation.Rule `yaml:"rules"`
}

// Step is one event applied to a field, or to the whole form for validate.
type Step struct {
	Event string            `yaml:"event"`
	Field string            `yaml:"field"`
	Rules []validation.Rule `yaml:"rules"`
}

// String describes the step for reports.
func (s Step) String() string {
	if s.Field == "" {
		return s.Event
	}
	return s.Event + " " + s.Field
}

// Load reads and parses a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	return Parse(data)
}

// Parse decodes a scenario document and checks field names, rule
// enumerations and step events.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}

	seen := make(map[string]bool, len(s.Fields))
	for i, f := range s.Fields {
		if f.Name == "" {
			return nil, fmt.Errorf("field %d: missing name", i)
		}
		if seen[f.Name] {
			return nil, fmt.Errorf("field %q: declared twice", f.Name)
		}
		if err := validation.ValidateRules(f.Rules); err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		seen[f.Name] = true
	}

	for i, step := range s.Steps {
		if !knownEvent(step.Event) {
			return nil, &StepError{Index: i, Step: step, Err: ErrUnknownEvent}
		}
		if step.Event == EventValidate {
			continue
		}
		if !seen[step.Field] {
			return nil, &StepError{Index: i, Step: step, Err: ErrUnknownField}
		}
		if err := validation.ValidateRules(step.Rules); err != nil {
			return nil, &StepError{Index: i, Step: step, Err: err}
		}
	}
	return &s, nil
}

func knownEvent(e string) bool {
	switch e {
	case EventChange, EventBlur, EventEmulateBlur, EventSubmit, EventFocus,
		EventRules, EventValidate, EventMount, EventUnmount:
		return true
	}
	return false
}
