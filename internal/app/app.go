// Package app is the form screen that hosts the mark dropdown next to a
// free-text name field. It owns the form store and the event bus.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/markselect/internal/events"
	"github.com/marcus/markselect/internal/form"
	"github.com/marcus/markselect/pkg/dropdown"
	"github.com/marcus/markselect/pkg/mouse"
)

// Screen rows of the form fields. View lays the screen out to match.
const (
	nameRow = 2
	markRow = 4
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(dropdown.Accent)
	labelStyle = lipgloss.NewStyle().Width(8).Foreground(lipgloss.Color("245"))
	savedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Config configures the screen.
type Config struct {
	Mouse     bool
	AltScreen bool
	Width     int    // dropdown panel width, 0 to fit
	Preset    string // initial selectedMarkOption, already validated
	Logger    *slog.Logger
}

type focusTarget int

const (
	focusName focusTarget = iota
	focusMark
)

type keyMap struct {
	Next   key.Binding
	Submit key.Binding
	Guide  key.Binding
	Quit   key.Binding
	mark   dropdown.KeyMap
}

func defaultKeyMap(mark dropdown.KeyMap) keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "next field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Guide: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "guide"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		mark: mark,
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.mark.Activate, k.mark.Dismiss, k.Submit, k.Guide, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return append(k.mark.FullHelp(), []key.Binding{k.Next, k.Submit, k.Guide, k.Quit})
}

// Model is the form screen.
type Model struct {
	store *form.Store
	bus   *events.Bus
	name  textinput.Model
	mark  *dropdown.Model
	help  help.Model
	keys  keyMap

	focus     focusTarget
	showGuide bool
	guide     string
	submitted bool
	logger    *slog.Logger
}

// New builds the screen with the name field focused.
func New(cfg Config) Model {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	initial := map[form.Field]string{}
	if cfg.Preset != "" {
		initial[form.SelectedMarkOption] = cfg.Preset
	}
	store := form.NewStore(form.NewState(initial))
	bus := events.NewBus()

	name := textinput.New()
	name.Placeholder = "name"
	name.CharLimit = 64
	name.Width = 24
	name.Focus()

	mark := dropdown.New(store,
		dropdown.WithBus(bus),
		dropdown.WithPatchSink(func(msg form.PatchMsg) { applyPatch(store, logger, msg) }),
		dropdown.WithLogger(logger),
		dropdown.WithWidth(cfg.Width),
		dropdown.WithOrigin(labelStyle.GetWidth(), markRow),
	)

	return Model{
		store:  store,
		bus:    bus,
		name:   name,
		mark:   mark,
		help:   help.New(),
		keys:   defaultKeyMap(mark.KeyMap()),
		focus:  focusName,
		guide:  renderGuide(60, logger),
		logger: logger,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// State returns the current form values.
func (m Model) State() form.State {
	return m.store.Snapshot()
}

// Submitted reports whether the user saved the form.
func (m Model) Submitted() bool {
	return m.submitted
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.guide = renderGuide(min(max(msg.Width-4, 20), 80), m.logger)
		return m, nil

	case form.PatchMsg:
		applyPatch(m.store, m.logger, msg)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.mark.Unmount()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Submit):
			m.submitted = true
			m.mark.Unmount()
			m.logger.Info("form: submitted", "fields", len(m.store.Snapshot().Fields()))
			return m, tea.Quit
		case key.Matches(msg, m.keys.Guide):
			m.showGuide = !m.showGuide
			return m, nil
		case key.Matches(msg, m.keys.Next) && !m.mark.IsOpen():
			next := focusMark
			if m.focus == focusMark {
				next = focusName
			}
			return m, m.setFocus(next)
		}
	}

	return m.route(msg)
}

// route offers msg to the dropdown, then to screen-wide listeners, then to
// the name field unless the dropdown claimed it.
func (m Model) route(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	ev := events.New(msg)
	cmds = append(cmds, m.mark.HandleEvent(ev))
	m.bus.Dispatch(ev)

	if m.mark.Focused() && m.focus != focusMark {
		cmds = append(cmds, m.setFocus(focusMark))
	}
	if mm, ok := ev.Mouse(); ok && mouse.IsPointerDown(mm) && mm.Y == nameRow {
		cmds = append(cmds, m.setFocus(focusName))
	}

	if m.focus == focusName && !ev.DefaultPrevented() {
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(msg)
		cmds = append(cmds, cmd)
		if v := m.name.Value(); v != m.store.Snapshot().Value(form.Name) {
			cmds = append(cmds, form.Update("name", form.Patch{form.Name: v}))
		}
	}

	return m, tea.Batch(cmds...)
}

func applyPatch(store *form.Store, logger *slog.Logger, msg form.PatchMsg) {
	store.Apply(msg)
	logger.Info("form: patch applied", "source", msg.Source, "fields", len(msg.Patch))
}

func (m *Model) setFocus(target focusTarget) tea.Cmd {
	m.focus = target
	if target == focusMark {
		m.name.Blur()
		m.mark.Focus()
		return nil
	}
	m.mark.Blur()
	return m.name.Focus()
}

// View implements tea.Model.
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Mark entry"))
	sb.WriteString("\n\n")
	sb.WriteString(labelStyle.Render("Name") + m.name.View())
	sb.WriteString("\n\n")

	m.mark.SetOrigin(labelStyle.GetWidth(), markRow)
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render("Mark"), m.mark.View()))
	sb.WriteString("\n\n")

	sb.WriteString(m.help.View(m.keys))
	if m.showGuide {
		sb.WriteString("\n\n")
		sb.WriteString(m.guide)
	}
	return sb.String()
}

// Result is what Run hands back to the caller.
type Result struct {
	State     form.State
	Submitted bool
}

// programOptions maps cfg to Bubble Tea options. Mouse support reports all
// motion so rows highlight under a pointer with no button held.
func programOptions(ctx context.Context, cfg Config) []tea.ProgramOption {
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if cfg.Mouse {
		opts = append(opts, tea.WithMouseAllMotion())
	}
	return opts
}

// Run shows the screen until the user saves or quits.
func Run(ctx context.Context, cfg Config) (Result, error) {
	final, err := tea.NewProgram(New(cfg), programOptions(ctx, cfg)...).Run()
	if err != nil {
		return Result{}, fmt.Errorf("run form: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return Result{}, fmt.Errorf("run form: unexpected model %T", final)
	}
	return Result{State: m.State(), Submitted: m.Submitted()}, nil
}

// Summary formats the saved values for printing after the screen closes.
func Summary(s form.State) string {
	var sb strings.Builder
	for _, f := range s.Fields() {
		fmt.Fprintf(&sb, "%s: %s\n", f, s.Value(f))
	}
	if sb.Len() == 0 {
		return savedStyle.Render("(empty form)") + "\n"
	}
	return sb.String()
}
