package workflow

// TransitionContext carries what a guard needs to know about the event.
type TransitionContext struct {
	From    State
	Trigger Trigger

	// Focused is true when keyboard focus is inside the component root.
	Focused bool
	// PointerInside is true when the pointer-down landed inside the root.
	PointerInside bool
}

// GuardResult is the outcome of a guard check.
type GuardResult struct {
	Passed  bool
	Message string
}

// Guard vetoes a transition.
type Guard interface {
	Name() string
	Check(ctx *TransitionContext) GuardResult
}

// FocusGuard only lets Escape close the panel while focus is within the root.
type FocusGuard struct{}

func (g *FocusGuard) Name() string {
	return "FocusGuard"
}

func (g *FocusGuard) Check(ctx *TransitionContext) GuardResult {
	if ctx.Focused {
		return GuardResult{Passed: true}
	}
	return GuardResult{
		Passed:  false,
		Message: "escape pressed while focus is outside the dropdown",
	}
}

// OutsideGuard ignores pointer-downs that land inside the root.
type OutsideGuard struct{}

func (g *OutsideGuard) Name() string {
	return "OutsideGuard"
}

func (g *OutsideGuard) Check(ctx *TransitionContext) GuardResult {
	if !ctx.PointerInside {
		return GuardResult{Passed: true}
	}
	return GuardResult{
		Passed:  false,
		Message: "pointer-down inside the dropdown",
	}
}
