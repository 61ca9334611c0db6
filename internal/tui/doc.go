// Package tui is the interactive terminal form behind `formguard`.
//
// Each form field is a bubbles/textinput wrapped by a wrapper.Wrapper. The
// fields share one registry, so the visibility rules of the library can be
// tried out by hand: type to mark a field as changing, tab away to blur it,
// press ctrl+s to submit the whole form and jump to the first error.
//
// # Architecture
//
// Model follows the Bubble Tea Model-Update-View pattern. The fields live
// behind a shared *form so that the wrapper can call back into them (focus,
// scroll, position) while Update runs:
//   - field implements wrapper.Control, Focuser, Scroller, Locator and
//     MessageOpener on top of a textinput.Model.
//   - Scrolling is a bubbles/viewport; ScrollIntoView moves its Y offset so
//     that the field sits VerticalOffset rows below the top.
//   - Positions are line numbers in the rendered form.
//
// # Usage Example
//
//	m, err := tui.NewModel(tui.Options{Scroll: settings.Scroll})
//	if err != nil {
//	    return err
//	}
//	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
package tui
