// Package registry provides the in-memory Registry that coordinates the
// wrappers of one form.
//
// It tracks membership, answers whether any field is mid-edit, aggregates the
// validity each field reports on blur, hands out shared scroll settings, and
// relays blur events:
//
//	reg := registry.New(
//	    registry.WithScroll(wrapper.ScrollSettings{VerticalOffset: 4}),
//	    registry.WithMetrics(metrics),
//	)
//	reg.OnBlur(func(src *wrapper.Wrapper) { ... })
//
// By default a blur on one field emulates a blur on every other member, so
// lostfocus messages that were held back while the user was typing appear as
// soon as editing stops.
//
// Validate submits every member and then scrolls to and focuses the first
// field with an error, ordered top to bottom.
//
// All methods are safe for concurrent use. Listeners and member calls run
// without the registry lock held.
package registry
