// Package dropdown provides a single-selection dropdown for Bubble Tea
// screens that writes the chosen mark into shared form state.
//
// The component renders a toggle button. Activating it opens a panel with
// the five fixed options; activating an option closes the panel and emits a
// form.PatchMsg for the host to merge. A press outside the component or
// Escape while it has focus closes the panel without changing the form.
//
// # Quick Start
//
//	store := form.NewStore(form.State{})
//	bus := events.NewBus()
//	mark := dropdown.New(store, dropdown.WithBus(bus), dropdown.WithOrigin(7, 4))
//
//	// In Update():
//	switch msg := msg.(type) {
//	case form.PatchMsg:
//	    store.Apply(msg)
//	case tea.KeyMsg, tea.MouseMsg:
//	    ev := events.New(msg)
//	    cmd := mark.HandleEvent(ev)
//	    bus.Dispatch(ev) // screen-wide listeners, e.g. outside-click
//	    return m, cmd
//	}
//
//	// In View():
//	content := mark.View()
//
//	// On teardown:
//	mark.Unmount()
//
// A host that owns the store can pass WithPatchSink(store.Apply) so commits
// are merged before the next frame instead of arriving as a message.
//
// The outside-click listener is registered on the bus only while the panel
// is open, and Unmount releases it on every path.
package dropdown
