package scenario

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/muurk/formguard/internal/logging"
	"github.com/muurk/formguard/internal/registry"
	"github.com/muurk/formguard/internal/wrapper"
)

// Frame is the form state after one step.
type Frame struct {
	Index     int                `json:"index"`
	Step      string             `json:"step"`
	Snapshots []wrapper.Snapshot `json:"snapshots"`
	Valid     bool               `json:"valid"`
	// Focused is the field that holds focus, empty when none was focused yet.
	Focused string `json:"focused,omitempty"`
	Offset  int    `json:"offset,omitempty"`
}

// Report is the result of a run.
type Report struct {
	Name   string  `json:"name"`
	Frames []Frame `json:"frames"`
	Valid  bool    `json:"valid"`
}

// Last returns the final frame, or the zero frame for an empty report.
func (r *Report) Last() Frame {
	if len(r.Frames) == 0 {
		return Frame{}
	}
	return r.Frames[len(r.Frames)-1]
}

// Run builds the fields, mounts them in order and applies every step.
// Options are passed to the registry after the scenario's own settings.
func Run(ctx context.Context, s *Scenario, opts ...registry.Option) (*Report, error) {
	propagate := true
	if s.Settings.PropagateBlur != nil {
		propagate = *s.Settings.PropagateBlur
	}
	regOpts := append([]registry.Option{
		registry.WithScroll(s.Settings.Scroll),
		registry.WithBlurPropagation(propagate),
	}, opts...)
	reg := registry.New(regOpts...)

	tracker := &focusTracker{}
	fields := make(map[string]*wrapper.Wrapper, len(s.Fields))
	order := make([]*wrapper.Wrapper, 0, len(s.Fields))
	for _, f := range s.Fields {
		ctrl := &headless{name: f.Name, pos: f.Position, tracker: tracker}
		w, err := wrapper.New(ctrl, f.Rules, nil, wrapper.WithName(f.Name), wrapper.WithRegistry(reg))
		if err != nil {
			return nil, err
		}
		w.Mount()
		fields[f.Name] = w
		order = append(order, w)
	}

	report := &Report{Name: s.Name}
	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if err := apply(ctx, reg, fields, step); err != nil {
			return report, &StepError{Index: i, Step: step, Err: err}
		}

		frame := Frame{
			Index: i,
			Step:  step.String(),
			Valid: reg.IsValid(),
		}
		frame.Focused, frame.Offset = tracker.focused()
		for _, w := range order {
			frame.Snapshots = append(frame.Snapshots, w.Snapshot())
		}
		report.Frames = append(report.Frames, frame)

		logging.Debug("Scenario step",
			zap.Int("index", i),
			zap.String("step", frame.Step),
			zap.Bool("valid", frame.Valid),
		)
	}

	report.Valid = reg.IsValid()
	return report, nil
}

func apply(ctx context.Context, reg *registry.Registry, fields map[string]*wrapper.Wrapper, step Step) error {
	if step.Event == EventValidate {
		_, err := reg.Validate(ctx)
		return err
	}

	w, ok := fields[step.Field]
	if !ok {
		return ErrUnknownField
	}

	switch step.Event {
	case EventChange:
		w.HandleChange()
	case EventBlur:
		w.HandleBlur()
	case EventEmulateBlur:
		w.EmulateBlur()
	case EventSubmit:
		return w.Submit(ctx)
	case EventFocus:
		return w.Focus(ctx)
	case EventRules:
		return w.SetRules(step.Rules)
	case EventMount:
		w.Mount()
	case EventUnmount:
		w.Unmount()
	default:
		return fmt.Errorf("%w %q", ErrUnknownEvent, step.Event)
	}
	return nil
}
