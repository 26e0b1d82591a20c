package app

import (
	"bytes"
	"context"
	"reflect"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/marcus/markselect/internal/form"
)

// collect runs cmd and returns the messages it produced. Timer-based
// commands such as cursor blink are abandoned.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	select {
	case msg := <-done:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, collect(c)...)
			}
			return out
		}
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	case <-time.After(50 * time.Millisecond):
		return nil
	}
}

// step feeds msg through Update, applies resulting form patches and
// renders, the way the Bubble Tea runtime would.
func step(t *testing.T, m Model, msg tea.Msg) (Model, []tea.Msg) {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(Model)

	msgs := collect(cmd)
	for _, out := range msgs {
		if patch, ok := out.(form.PatchMsg); ok {
			next, _ = m.Update(patch)
			m = next.(Model)
		}
	}
	m.View()
	return m, msgs
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func pressAt(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

var (
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
)

func newModel(t *testing.T, cfg Config) Model {
	t.Helper()
	m := New(cfg)
	m.View()
	return m
}

func TestNewPreset(t *testing.T) {
	m := newModel(t, Config{Preset: "SK"})
	if got := m.mark.Label(); got != "SK" {
		t.Errorf("Label() = %q, want SK", got)
	}
	if got := m.State().Value(form.SelectedMarkOption); got != "SK" {
		t.Errorf("selection = %q, want SK", got)
	}
}

func TestNewWithoutPresetShowsPlaceholder(t *testing.T) {
	m := newModel(t, Config{})
	if !strings.Contains(m.View(), "માર્કો") {
		t.Error("view should show the placeholder label")
	}
	if _, ok := m.State().Get(form.SelectedMarkOption); ok {
		t.Error("selection should be unset")
	}
}

func TestTypingNamePatchesForm(t *testing.T) {
	m := newModel(t, Config{})
	m = typeText(t, m, "Asha")

	if got := m.State().Value(form.Name); got != "Asha" {
		t.Errorf("Name = %q, want Asha", got)
	}
}

func TestTabMovesFocus(t *testing.T) {
	m := newModel(t, Config{})

	m, _ = step(t, m, keyTab)
	if m.focus != focusMark || !m.mark.Focused() || m.name.Focused() {
		t.Fatalf("after tab: focus=%v mark=%v name=%v", m.focus, m.mark.Focused(), m.name.Focused())
	}

	m, _ = step(t, m, keyTab)
	if m.focus != focusName || m.mark.Focused() || !m.name.Focused() {
		t.Errorf("after second tab: focus=%v mark=%v name=%v", m.focus, m.mark.Focused(), m.name.Focused())
	}
}

func TestKeyboardSelectionFlow(t *testing.T) {
	m := newModel(t, Config{})
	m = typeText(t, m, "Ravi")

	m, _ = step(t, m, keyTab)
	m, _ = step(t, m, keyEnter)
	if !m.mark.IsOpen() {
		t.Fatal("enter on the focused dropdown should open it")
	}
	m, _ = step(t, m, keyDown)
	m, _ = step(t, m, keyDown)
	m, _ = step(t, m, keyEnter)

	state := m.State()
	if got := state.Value(form.SelectedMarkOption); got != "SK" {
		t.Errorf("selection = %q, want SK", got)
	}
	if got := state.Value(form.Name); got != "Ravi" {
		t.Errorf("Name = %q, want Ravi preserved", got)
	}
	if m.mark.IsOpen() {
		t.Error("commit should close the dropdown")
	}
}

func TestSpaceDoesNotReachNameField(t *testing.T) {
	m := newModel(t, Config{})
	m = typeText(t, m, "ab")
	m, _ = step(t, m, keyTab)
	m, _ = step(t, m, keySpace)

	if !m.mark.IsOpen() {
		t.Error("space on the focused dropdown should open it")
	}
	if got := m.State().Value(form.Name); got != "ab" {
		t.Errorf("Name = %q, want ab (space consumed by dropdown)", got)
	}
}

func TestTabIgnoredWhileOpen(t *testing.T) {
	m := newModel(t, Config{})
	m, _ = step(t, m, keyTab)
	m, _ = step(t, m, keyEnter)

	m, _ = step(t, m, keyTab)
	if !m.mark.IsOpen() || m.focus != focusMark {
		t.Errorf("tab while open: open=%v focus=%v, want open with focus kept", m.mark.IsOpen(), m.focus)
	}
}

func TestClickToggleFocusesDropdown(t *testing.T) {
	m := newModel(t, Config{})

	b := m.mark.Bounds()
	m, _ = step(t, m, pressAt(b.X, b.Y))

	if !m.mark.IsOpen() {
		t.Fatal("click on the toggle should open the dropdown")
	}
	if m.focus != focusMark || m.name.Focused() {
		t.Errorf("focus = %v, name focused = %v; want dropdown focus", m.focus, m.name.Focused())
	}
	if m.bus.Len() != 1 {
		t.Errorf("bus has %d listeners while open, want 1", m.bus.Len())
	}
}

func TestClickOutsideClosesAndFocusesName(t *testing.T) {
	m := newModel(t, Config{Preset: "SS"})
	b := m.mark.Bounds()
	m, _ = step(t, m, pressAt(b.X, b.Y))

	m, _ = step(t, m, pressAt(b.X+2, nameRow))

	if m.mark.IsOpen() {
		t.Error("press outside should close the dropdown")
	}
	if m.bus.Len() != 0 {
		t.Errorf("bus has %d listeners after close, want 0", m.bus.Len())
	}
	if m.focus != focusName || !m.name.Focused() {
		t.Errorf("focus = %v, want name field", m.focus)
	}
	if got := m.State().Value(form.SelectedMarkOption); got != "SS" {
		t.Errorf("selection = %q, want SS unchanged", got)
	}
}

func TestClickOptionCommits(t *testing.T) {
	m := newModel(t, Config{})
	b := m.mark.Bounds()
	m, _ = step(t, m, pressAt(b.X, b.Y))

	// Rows start below the button and the panel's top border.
	m, _ = step(t, m, pressAt(b.X+2, b.Y+2+3))

	if got := m.State().Value(form.SelectedMarkOption); got != "નવી" {
		t.Errorf("selection = %q, want નવી", got)
	}
	if m.mark.IsOpen() {
		t.Error("commit should close the dropdown")
	}
}

func TestSubmit(t *testing.T) {
	m := newModel(t, Config{})
	m = typeText(t, m, "x")
	m, _ = step(t, m, keyTab)
	m, _ = step(t, m, keyEnter)

	m, msgs := step(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	if !m.Submitted() {
		t.Error("ctrl+s should submit")
	}
	if m.bus.Len() != 0 {
		t.Errorf("bus has %d listeners after submit, want 0", m.bus.Len())
	}
	quit := false
	for _, msg := range msgs {
		if _, ok := msg.(tea.QuitMsg); ok {
			quit = true
		}
	}
	if !quit {
		t.Error("submit should quit the program")
	}
}

func TestQuitUnmountsDropdown(t *testing.T) {
	m := newModel(t, Config{})
	m, _ = step(t, m, keyTab)
	m, _ = step(t, m, keyEnter)

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})

	if m.Submitted() {
		t.Error("ctrl+c should not submit")
	}
	if m.mark.IsOpen() || m.bus.Len() != 0 {
		t.Errorf("quit left the dropdown open=%v with %d listeners", m.mark.IsOpen(), m.bus.Len())
	}
}

func TestGuideToggle(t *testing.T) {
	m := newModel(t, Config{})

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyF1})
	if !m.showGuide {
		t.Fatal("f1 should show the guide")
	}
	if !strings.Contains(ansi.Strip(m.View()), "Esc") {
		t.Error("guide text missing from view")
	}

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyF1})
	if m.showGuide {
		t.Error("second f1 should hide the guide")
	}
}

func TestSummary(t *testing.T) {
	s := form.NewState(map[form.Field]string{
		form.SelectedMarkOption: "SK",
		form.Name:               "Ravi",
	})
	want := "name: Ravi\nselectedMarkOption: SK\n"
	if got := Summary(s); got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}

	if got := ansi.Strip(Summary(form.State{})); !strings.Contains(got, "empty form") {
		t.Errorf("Summary(empty) = %q", got)
	}
}

func TestMarkOptionsUseDisplayForm(t *testing.T) {
	opts := markOptions()
	want := []string{"SS", "SK", "શિવમ", "નવી", "અન્ય."}
	if len(opts) != len(want) {
		t.Fatalf("got %d options, want %d", len(opts), len(want))
	}
	for i, w := range want {
		if opts[i].Key != w || opts[i].Value != w {
			t.Errorf("option %d = %q/%q, want %q", i, opts[i].Key, opts[i].Value, w)
		}
	}
}

func TestOptionClickShowsSelectionInSameFrame(t *testing.T) {
	m := newModel(t, Config{Preset: "SS"})
	b := m.mark.Bounds()
	m, _ = step(t, m, pressAt(b.X, b.Y))

	// Update only; no commands run, so no PatchMsg is delivered.
	next, _ := m.Update(pressAt(b.X+2, b.Y+2+1))
	m = next.(Model)

	if m.mark.IsOpen() {
		t.Error("commit should close the dropdown")
	}
	if got := m.mark.Label(); got != "SK" {
		t.Errorf("Label() = %q before any command ran, want SK", got)
	}
	if !strings.Contains(m.View(), "SK") {
		t.Error("view should show SK in the frame that closes the panel")
	}
}

func TestProgramOptionsReportAllMotion(t *testing.T) {
	ptr := func(o tea.ProgramOption) uintptr { return reflect.ValueOf(o).Pointer() }
	allMotion := ptr(tea.WithMouseAllMotion())
	cellMotion := ptr(tea.WithMouseCellMotion())

	count := func(opts []tea.ProgramOption, want uintptr) int {
		n := 0
		for _, o := range opts {
			if ptr(o) == want {
				n++
			}
		}
		return n
	}

	opts := programOptions(context.Background(), Config{Mouse: true, AltScreen: true})
	if count(opts, allMotion) != 1 {
		t.Error("mouse support should request all-motion reporting")
	}
	if count(opts, cellMotion) != 0 {
		t.Error("cell-motion reporting drops hover without a held button")
	}

	opts = programOptions(context.Background(), Config{})
	if count(opts, allMotion) != 0 {
		t.Error("no mouse: all-motion reporting should be off")
	}
}

func TestHoverWithoutButtonHighlightsRow(t *testing.T) {
	m := newModel(t, Config{})
	b := m.mark.Bounds()
	m, _ = step(t, m, pressAt(b.X, b.Y))

	m, _ = step(t, m, tea.MouseMsg{X: b.X + 2, Y: b.Y + 2 + 2, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone})

	if got := m.mark.Hovered(); got != 2 {
		t.Errorf("Hovered() = %d after buttonless motion, want 2", got)
	}
	if !m.mark.IsOpen() {
		t.Error("hover should not close the dropdown")
	}
}

func TestRunAccessibleReadsEachAnswer(t *testing.T) {
	var out bytes.Buffer
	res, err := RunAccessible(context.Background(), Config{}, strings.NewReader("Ravi\n2\n"), &out)
	if err != nil {
		t.Fatalf("RunAccessible() error = %v\n%s", err, out.String())
	}
	if !res.Submitted {
		t.Error("answered prompts should submit")
	}
	if got := res.State.Value(form.SelectedMarkOption); got != "SK" {
		t.Errorf("selection = %q, want SK\n%s", got, out.String())
	}
	if got := res.State.Value(form.Name); got != "Ravi" {
		t.Errorf("Name = %q, want Ravi", got)
	}
}

func TestLineReaderOneLinePerRead(t *testing.T) {
	r := newLineReader(strings.NewReader("ab\ncd\nlast"))
	buf := make([]byte, 64)

	var got []string
	for {
		n, err := r.Read(buf)
		if n > 0 {
			got = append(got, string(buf[:n]))
		}
		if err != nil {
			break
		}
	}

	want := []string{"ab\n", "cd\n", "last"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("reads = %q, want %q", got, want)
	}
}

func TestLineReaderSmallBuffer(t *testing.T) {
	r := newLineReader(strings.NewReader("abcdef\nx\n"))
	buf := make([]byte, 4)

	var got []string
	for range 3 {
		n, err := r.Read(buf)
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		got = append(got, string(buf[:n]))
	}

	want := []string{"abcd", "ef\n", "x\n"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("reads = %q, want %q", got, want)
	}
}
