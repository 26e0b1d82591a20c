// Package workflow defines the open/closed state machine that drives the
// dropdown panel.
package workflow

// State is the visibility of the option panel.
type State string

const (
	StateClosed State = "closed"
	StateOpen   State = "open"
)

// Trigger is the user interaction that requests a transition.
type Trigger string

const (
	TriggerToggle       Trigger = "toggle"
	TriggerOutsideClick Trigger = "outside_click"
	TriggerEscape       Trigger = "escape"
	TriggerCommit       Trigger = "commit"
)

// Transition is one edge of the machine.
type Transition struct {
	From    State
	Trigger Trigger
	To      State
	Guards  []Guard
}

// AllTransitions returns all valid transitions.
// This defines the complete dropdown state machine
func AllTransitions() []*Transition {
	return []*Transition{
		// From closed
		{From: StateClosed, Trigger: TriggerToggle, To: StateOpen},

		// From open
		{From: StateOpen, Trigger: TriggerToggle, To: StateClosed},
		{From: StateOpen, Trigger: TriggerOutsideClick, To: StateClosed, Guards: []Guard{&OutsideGuard{}}},
		{From: StateOpen, Trigger: TriggerEscape, To: StateClosed, Guards: []Guard{&FocusGuard{}}},
		{From: StateOpen, Trigger: TriggerCommit, To: StateClosed},
	}
}

// TransitionName returns a human-readable name for the transition
func TransitionName(from State, trigger Trigger) string {
	switch {
	case from == StateClosed && trigger == TriggerToggle:
		return "open"
	case from == StateOpen && trigger == TriggerToggle:
		return "close"
	case trigger == TriggerOutsideClick:
		return "dismiss-outside"
	case trigger == TriggerEscape:
		return "dismiss-escape"
	case trigger == TriggerCommit:
		return "commit"
	default:
		return string(from) + " → " + string(trigger)
	}
}

// GetTriggersFrom returns the triggers accepted in the given state
func GetTriggersFrom(state State) []Trigger {
	var triggers []Trigger
	for _, t := range AllTransitions() {
		if t.From == state {
			triggers = append(triggers, t.Trigger)
		}
	}
	return triggers
}

// AllStates returns all states, initial state first
func AllStates() []State {
	return []State{StateClosed, StateOpen}
}

// Machine evaluates transitions and their guards.
type Machine struct {
	transitions []*Transition
}

// DefaultMachine returns the machine built from AllTransitions.
func DefaultMachine() *Machine {
	return &Machine{transitions: AllTransitions()}
}

func (m *Machine) find(from State, trigger Trigger) *Transition {
	for _, t := range m.transitions {
		if t.From == from && t.Trigger == trigger {
			return t
		}
	}
	return nil
}

// IsValidTransition reports whether trigger has an edge out of from,
// ignoring guards.
func (m *Machine) IsValidTransition(from State, trigger Trigger) bool {
	return m.find(from, trigger) != nil
}

// Fire evaluates ctx and returns the target state. A missing edge yields a
// *TransitionError; failing guards yield a *ValidationError of *GuardError.
func (m *Machine) Fire(ctx *TransitionContext) (State, error) {
	t := m.find(ctx.From, ctx.Trigger)
	if t == nil {
		return ctx.From, &TransitionError{
			From:    ctx.From,
			Trigger: ctx.Trigger,
			Reason:  "no such transition",
		}
	}

	var verr ValidationError
	for _, g := range t.Guards {
		res := g.Check(ctx)
		if !res.Passed {
			verr.Add(&GuardError{GuardName: g.Name(), Reason: res.Message})
		}
	}
	if verr.HasErrors() {
		return ctx.From, &verr
	}
	return t.To, nil
}
