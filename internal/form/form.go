// Package form holds the shared form state that widgets contribute fields to.
//
// Widgets never replace the state wholesale. They emit a PatchMsg carrying
// only the fields they own, and the host merges it into its Store.
package form

import (
	"maps"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
)

// Field names one value in the form.
type Field string

const (
	// SelectedMarkOption holds the upper-cased mark chosen in the dropdown.
	SelectedMarkOption Field = "selectedMarkOption"
	// Name holds the free-text name entered next to the mark.
	Name Field = "name"
)

// State is an immutable snapshot of form values.
type State struct {
	values map[Field]string
}

// NewState returns a State seeded with a copy of values.
func NewState(values map[Field]string) State {
	return State{values: maps.Clone(values)}
}

// Get returns the value of f and whether it is set.
func (s State) Get(f Field) (string, bool) {
	v, ok := s.values[f]
	return v, ok
}

// Value returns the value of f, or "" when unset.
func (s State) Value(f Field) string {
	return s.values[f]
}

// Fields returns the set fields in lexical order.
func (s State) Fields() []Field {
	return slices.Sorted(maps.Keys(s.values))
}

// Apply returns a new State with p merged over s. Fields not named in p
// keep their values. s itself is not modified.
func (s State) Apply(p Patch) State {
	next := make(map[Field]string, len(s.values)+len(p))
	maps.Copy(next, s.values)
	maps.Copy(next, p)
	return State{values: next}
}

// Patch is a field-level update.
type Patch map[Field]string

// Getter reads form values. *Store satisfies it.
type Getter interface {
	Get(f Field) (string, bool)
}

// PatchMsg asks the owner of the form state to merge Patch.
type PatchMsg struct {
	Source string // ID of the widget that produced the patch
	Patch  Patch
}

// Update returns a command emitting a PatchMsg.
func Update(source string, p Patch) tea.Cmd {
	return func() tea.Msg {
		return PatchMsg{Source: source, Patch: p}
	}
}

// Store owns the current State. Widgets read through it and write to it
// only via PatchMsg, which the host feeds to Apply.
type Store struct {
	state State
}

// NewStore returns a store holding initial.
func NewStore(initial State) *Store {
	return &Store{state: initial}
}

// Get implements Getter.
func (s *Store) Get(f Field) (string, bool) {
	return s.state.Get(f)
}

// Apply merges msg into the current state.
func (s *Store) Apply(msg PatchMsg) {
	s.state = s.state.Apply(msg.Patch)
}

// Set merges a single field.
func (s *Store) Set(f Field, v string) {
	s.state = s.state.Apply(Patch{f: v})
}

// Snapshot returns the current state.
func (s *Store) Snapshot() State {
	return s.state
}
