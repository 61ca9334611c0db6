// Package wrapper implements the field controller that sits between one input
// control and its validation rules.
//
// A Wrapper owns the visibility sequence for its rules (see package
// validation), drives it from lifecycle events, and coordinates with a
// Registry of sibling wrappers:
//
//	w, err := wrapper.New(input, rules, ui.RenderMessage,
//	    wrapper.WithName("email"),
//	    wrapper.WithRegistry(reg),
//	)
//	if err != nil {
//	    return err
//	}
//	w.Mount()
//	defer w.Unmount()
//
//	onChange := wrapper.OnChange(w, input.Changed)  // sets changing, then chains
//	onBlur := wrapper.OnBlur[string](w, nil)       // blur transition + registry broadcast
//
// # Events
//
//   - HandleChange: marks the field as changing. Display flags are forced off
//     until the next blur, submit or focus.
//   - HandleBlur: reveals failed lostfocus rules, reports validity to the
//     registry and broadcasts the blur.
//   - EmulateBlur: the same transition without any registry call.
//   - Submit: reveals every non-immediate rule, one commit per rule.
//   - Focus: scrolls the control into view, then focuses it.
//
// SetRules recomputes every visibility from scratch whenever the rules change
// by value. A user-triggered reveal on one rule is lost when any rule in the
// field changes; that reset is intentional.
//
// # Registry
//
// The Registry is injected. Without one, NopRegistry is used: nobody is ever
// mid-edit and all cross-field calls are dropped.
//
// # Concurrency
//
// HandleBlur, EmulateBlur, Submit, Focus and SetRules are serialized per
// wrapper. HandleChange and the query methods never wait behind them, so a
// stalled Focus cannot block typing. Registry notifications are sent after
// the wrapper's own locks are released.
package wrapper
