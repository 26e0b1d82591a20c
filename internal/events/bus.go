// Package events implements the host-owned input event bus that components
// use for screen-wide ("document level") listeners.
//
// The host wraps every incoming tea.Msg in an Event, offers it to the
// focused component first, and then dispatches it on the Bus unless the
// component stopped propagation.
package events

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Event wraps a Bubble Tea message with DOM-style dispatch flags.
type Event struct {
	Msg tea.Msg

	defaultPrevented   bool
	propagationStopped bool
}

// New wraps msg in an Event.
func New(msg tea.Msg) *Event {
	return &Event{Msg: msg}
}

// PreventDefault marks the event so the host skips its default handling
// (e.g. forwarding a space key to a text input).
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// StopPropagation keeps the event away from bus listeners.
func (e *Event) StopPropagation() {
	e.propagationStopped = true
}

// PropagationStopped reports whether StopPropagation was called.
func (e *Event) PropagationStopped() bool {
	return e.propagationStopped
}

// Mouse returns the wrapped mouse message, if any.
func (e *Event) Mouse() (tea.MouseMsg, bool) {
	msg, ok := e.Msg.(tea.MouseMsg)
	return msg, ok
}

// Key returns the wrapped key message, if any.
func (e *Event) Key() (tea.KeyMsg, bool) {
	msg, ok := e.Msg.(tea.KeyMsg)
	return msg, ok
}

// Listener receives events dispatched on a Bus.
type Listener func(*Event)

// Bus fans events out to subscribed listeners in subscription order.
// It is driven from a single Bubble Tea Update loop and is not safe for
// concurrent use.
type Bus struct {
	listeners map[uint64]Listener
	order     []uint64
	next      uint64
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{listeners: make(map[uint64]Listener)}
}

// Subscribe registers l and returns its release function. Release is
// idempotent and may be called from inside a listener.
func (b *Bus) Subscribe(l Listener) (release func()) {
	b.next++
	id := b.next
	b.listeners[id] = l
	b.order = append(b.order, id)

	return func() {
		if _, ok := b.listeners[id]; !ok {
			return
		}
		delete(b.listeners, id)
		for i, v := range b.order {
			if v == id {
				b.order = append(b.order[:i:i], b.order[i+1:]...)
				break
			}
		}
	}
}

// Dispatch delivers ev to every listener registered when dispatch starts.
// Listeners released during dispatch are skipped; dispatch ends early once
// a listener stops propagation.
func (b *Bus) Dispatch(ev *Event) {
	if ev == nil || ev.propagationStopped {
		return
	}
	snapshot := append([]uint64(nil), b.order...)
	for _, id := range snapshot {
		l, ok := b.listeners[id]
		if !ok {
			continue
		}
		l(ev)
		if ev.propagationStopped {
			return
		}
	}
}

// Len returns the number of active listeners.
func (b *Bus) Len() int {
	return len(b.listeners)
}
