package dropdown

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/markselect/internal/events"
	"github.com/marcus/markselect/internal/form"
	"github.com/marcus/markselect/internal/workflow"
	"github.com/marcus/markselect/pkg/mouse"
)

// Mouse region identifiers
const (
	regionRoot   = "dropdown-root"   // Whole component, button plus open panel
	regionToggle = "dropdown-toggle" // Toggle button
	regionOption = "dropdown-option" // Option row (Data: option index)
)

// Model is the dropdown controller. It owns the open/closed state and
// commits selections to the form through form.PatchMsg.
//
// Model is used by pointer: the outside-click listener it registers on the
// event bus refers back to it.
type Model struct {
	id          string
	form        form.Getter
	bus         *events.Bus
	logger      *slog.Logger
	keys        KeyMap
	machine     *workflow.Machine
	placeholder string
	x, y        int
	width       int

	open    bool
	focused bool
	cursor  int // keyboard-highlighted row, -1 while the button has focus
	hover   int // row under the pointer, -1 for none
	release func()
	sink    func(form.PatchMsg)

	mouse  *mouse.Handler
	bounds mouse.Rect
	rows   rowCache
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithID sets the ID reported as PatchMsg.Source. Default "mark".
func WithID(id string) ModelOption {
	return func(d *Model) {
		if id != "" {
			d.id = id
		}
	}
}

// WithBus sets the bus used for the outside-click listener. Without a bus
// the panel only closes via toggle, Escape and commit.
func WithBus(b *events.Bus) ModelOption {
	return func(d *Model) { d.bus = b }
}

// WithPatchSink makes Commit hand its patch to fn immediately instead of
// returning a command. Hosts that own the store use it so the frame that
// closes the panel already shows the new label.
func WithPatchSink(fn func(form.PatchMsg)) ModelOption {
	return func(d *Model) { d.sink = fn }
}

// WithLogger sets the logger for transition tracing.
func WithLogger(l *slog.Logger) ModelOption {
	return func(d *Model) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithOrigin sets the screen cell of the component's top-left corner.
func WithOrigin(x, y int) ModelOption {
	return func(d *Model) { d.x, d.y = x, y }
}

// WithWidth fixes the panel's row width. Longer labels are truncated.
// Zero sizes the panel to fit the widest option.
func WithWidth(w int) ModelOption {
	return func(d *Model) {
		if w >= 0 {
			d.width = w
		}
	}
}

// WithPlaceholder overrides the label shown before a selection exists.
func WithPlaceholder(p string) ModelOption {
	return func(d *Model) { d.placeholder = p }
}

// WithKeyMap overrides the key bindings.
func WithKeyMap(k KeyMap) ModelOption {
	return func(d *Model) { d.keys = k }
}

// New creates a closed dropdown reading its selection from state.
func New(state form.Getter, opts ...ModelOption) *Model {
	d := &Model{
		id:          "mark",
		form:        state,
		logger:      slog.New(slog.DiscardHandler),
		keys:        DefaultKeyMap(),
		machine:     workflow.DefaultMachine(),
		placeholder: Placeholder,
		cursor:      -1,
		hover:       -1,
		mouse:       mouse.NewHandler(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// ID returns the dropdown's identifier.
func (d *Model) ID() string { return d.id }

// IsOpen reports whether the option panel is shown.
func (d *Model) IsOpen() bool { return d.open }

// Focused reports whether keyboard focus is inside the component.
func (d *Model) Focused() bool { return d.focused }

// Focus gives the component keyboard focus.
func (d *Model) Focus() { d.focused = true }

// Blur removes keyboard focus. The panel stays as it is.
func (d *Model) Blur() { d.focused = false }

// Cursor returns the keyboard-highlighted row, or -1.
func (d *Model) Cursor() int { return d.cursor }

// Hovered returns the row under the pointer, or -1.
func (d *Model) Hovered() int { return d.hover }

// Listening reports whether the outside-click listener is registered.
func (d *Model) Listening() bool { return d.release != nil }

// KeyMap returns the active bindings.
func (d *Model) KeyMap() KeyMap { return d.keys }

// SetOrigin moves the component. Takes effect on the next View.
func (d *Model) SetOrigin(x, y int) {
	d.x, d.y = x, y
}

// Bounds returns the root rectangle measured by the last View.
func (d *Model) Bounds() mouse.Rect { return d.bounds }

// Label returns the toggle button text: the selection, or the placeholder.
func (d *Model) Label() string {
	if d.form != nil {
		if v, ok := d.form.Get(form.SelectedMarkOption); ok && v != "" {
			return v
		}
	}
	return d.placeholder
}

// Toggle opens a closed panel and closes an open one. The event, when
// given, is kept from reaching the bus so the same press cannot also count
// as an outside click.
func (d *Model) Toggle(ev *events.Event) {
	if ev != nil {
		ev.PreventDefault()
		ev.StopPropagation()
	}
	d.fire(workflow.TransitionContext{Trigger: workflow.TriggerToggle})
}

// Commit closes the panel and writes opt's display form into the form
// state, through the patch sink when one is set and otherwise through the
// returned command. Committing the same option twice is harmless.
func (d *Model) Commit(opt Option, ev *events.Event) tea.Cmd {
	if ev != nil {
		ev.PreventDefault()
		ev.StopPropagation()
	}
	if d.open {
		d.fire(workflow.TransitionContext{Trigger: workflow.TriggerCommit})
	}
	patch := form.Patch{form.SelectedMarkOption: opt.Display()}
	if d.sink != nil {
		d.sink(form.PatchMsg{Source: d.id, Patch: patch})
		return nil
	}
	return form.Update(d.id, patch)
}

// Dismiss force-closes the panel without going through the dismiss guards.
func (d *Model) Dismiss() {
	d.setOpen(false)
}

// Unmount releases the outside-click listener. Call when the component is
// removed from the screen, open or not.
func (d *Model) Unmount() {
	d.setOpen(false)
	d.releaseListener()
	d.mouse.Clear()
}

// Update adapts the model to the tea.Model-style update loop for hosts
// that do not keep an event bus.
func (d *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	return d, d.HandleEvent(events.New(msg))
}

// HandleEvent routes a keyboard or mouse event to the component.
func (d *Model) HandleEvent(ev *events.Event) tea.Cmd {
	switch msg := ev.Msg.(type) {
	case tea.KeyMsg:
		return d.handleKey(ev, msg)
	case tea.MouseMsg:
		return d.handleMouse(ev, msg)
	}
	return nil
}

func (d *Model) handleKey(ev *events.Event, msg tea.KeyMsg) tea.Cmd {
	if !d.focused {
		return nil
	}

	switch {
	case key.Matches(msg, d.keys.Dismiss):
		if d.fire(workflow.TransitionContext{Trigger: workflow.TriggerEscape, Focused: d.focused}) {
			ev.StopPropagation()
		}
		return nil

	case key.Matches(msg, d.keys.Up):
		if d.open {
			d.moveCursor(-1)
			ev.PreventDefault()
		}
		return nil

	case key.Matches(msg, d.keys.Down):
		if d.open {
			d.moveCursor(1)
			ev.PreventDefault()
		}
		return nil

	case key.Matches(msg, d.keys.Activate):
		if d.open && d.cursor >= 0 {
			cmd, _ := d.row(d.cursor).activate(ev, d.keys)
			return cmd
		}
		d.Toggle(ev)
		return nil
	}

	return nil
}

func (d *Model) handleMouse(ev *events.Event, msg tea.MouseMsg) tea.Cmd {
	action := d.mouse.HandleMouse(msg)

	switch action.Type {
	case mouse.ActionClick:
		if action.Region == nil {
			// Outside the root; the bus listener decides.
			return nil
		}
		d.focused = true
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		switch action.Region.ID {
		case regionToggle:
			d.Toggle(ev)
		case regionOption:
			if idx, ok := action.Region.Data.(int); ok && d.open {
				cmd, _ := d.row(idx).activate(ev, d.keys)
				return cmd
			}
		}

	case mouse.ActionHover:
		d.hover = -1
		if action.Region != nil && action.Region.ID == regionOption {
			if idx, ok := action.Region.Data.(int); ok {
				d.hover = idx
			}
		}

	case mouse.ActionScrollUp, mouse.ActionScrollDown:
		if d.open && action.Region != nil {
			delta := 1
			if action.Type == mouse.ActionScrollUp {
				delta = -1
			}
			d.moveCursor(delta)
			ev.PreventDefault()
		}
	}

	return nil
}

// onDocumentEvent is the screen-wide listener held while the panel is open.
func (d *Model) onDocumentEvent(ev *events.Event) {
	msg, ok := ev.Mouse()
	if !ok || !mouse.IsPointerDown(msg) {
		return
	}
	d.fire(workflow.TransitionContext{
		Trigger:       workflow.TriggerOutsideClick,
		PointerInside: d.bounds.Contains(msg.X, msg.Y),
	})
}

func (d *Model) row(i int) optionRow {
	opt := options[i]
	return optionRow{
		option: opt,
		onSelect: func(ev *events.Event) tea.Cmd {
			return d.Commit(opt, ev)
		},
	}
}

func (d *Model) moveCursor(delta int) {
	n := len(options)
	switch {
	case d.cursor < 0 && delta > 0:
		d.cursor = 0
	case d.cursor < 0:
		d.cursor = n - 1
	default:
		d.cursor = min(max(d.cursor+delta, 0), n-1)
	}
}

func (d *Model) state() workflow.State {
	if d.open {
		return workflow.StateOpen
	}
	return workflow.StateClosed
}

// fire runs a transition through the machine. Rejected transitions are
// no-ops.
func (d *Model) fire(ctx workflow.TransitionContext) bool {
	ctx.From = d.state()
	to, err := d.machine.Fire(&ctx)
	if err != nil {
		d.logger.Debug("dropdown: transition rejected", "id", d.id, "err", err)
		return false
	}
	d.logger.Debug("dropdown: transition",
		"id", d.id,
		"name", workflow.TransitionName(ctx.From, ctx.Trigger),
		"to", to)
	d.setOpen(to == workflow.StateOpen)
	return true
}

// setOpen is the only place the open flag changes. The outside-click
// listener is held exactly while open is true.
func (d *Model) setOpen(open bool) {
	if d.open == open {
		return
	}
	d.open = open
	d.cursor = -1
	d.hover = -1
	if open {
		d.acquireListener()
	} else {
		d.releaseListener()
	}
}

func (d *Model) acquireListener() {
	if d.bus == nil || d.release != nil {
		return
	}
	d.release = d.bus.Subscribe(d.onDocumentEvent)
}

func (d *Model) releaseListener() {
	if d.release == nil {
		return
	}
	d.release()
	d.release = nil
}

// View renders the button and, when open, the option panel. It also
// records the hit regions for the frame it returns.
func (d *Model) View() string {
	d.mouse.Clear()

	buttonStyle := Button
	if d.focused && d.cursor < 0 {
		buttonStyle = ButtonFocused
	}
	button := buttonStyle.Render(d.Label())
	buttonW, buttonH := lipgloss.Width(button), lipgloss.Height(button)

	if !d.open {
		d.bounds = mouse.Rect{X: d.x, Y: d.y, W: buttonW, H: buttonH}
		d.mouse.HitMap.Add(mouse.Region{ID: regionRoot, Rect: d.bounds})
		d.mouse.HitMap.AddRect(regionToggle, d.x, d.y, buttonW, buttonH, nil)
		return button
	}

	labelW := d.labelWidth(buttonW)
	rows := make([]string, len(options))
	for i, opt := range options {
		rows[i] = d.rows.render(rowState{
			option:      opt,
			width:       labelW,
			highlighted: i == d.cursor,
			hovered:     i == d.hover,
		})
	}
	panel := Panel.Render(strings.Join(rows, "\n"))
	view := lipgloss.JoinVertical(lipgloss.Left, button, panel)

	// Render-then-measure: regions come from the final strings.
	d.bounds = mouse.Rect{X: d.x, Y: d.y, W: lipgloss.Width(view), H: lipgloss.Height(view)}
	d.mouse.HitMap.Add(mouse.Region{ID: regionRoot, Rect: d.bounds})
	d.mouse.HitMap.AddRect(regionToggle, d.x, d.y, buttonW, buttonH, nil)

	rowX := d.x + Panel.GetBorderLeftSize()
	rowY := d.y + buttonH + Panel.GetBorderTopSize()
	for i := range rows {
		d.mouse.HitMap.AddRect(regionOption, rowX, rowY+i, labelW+rowPadding, 1, i)
	}

	return view
}

// labelWidth returns the row label width: fixed by WithWidth, otherwise
// wide enough for every option and at least as wide as the button.
func (d *Model) labelWidth(buttonW int) int {
	if d.width > 0 {
		return max(d.width-rowPadding, 1)
	}
	w := buttonW - rowPadding - Panel.GetHorizontalBorderSize()
	for _, opt := range options {
		w = max(w, lipgloss.Width(opt.Display()))
	}
	return w
}
