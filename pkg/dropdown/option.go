package dropdown

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/marcus/markselect/internal/events"
	"github.com/marcus/markselect/pkg/mouse"
)

// rowState is everything a row's rendering depends on. It doubles as the
// memo key, so it must stay comparable.
type rowState struct {
	option      Option
	width       int // label width, excluding row padding
	highlighted bool
	hovered     bool
}

// renderOption renders one option row. It is a pure function of st.
// An empty option renders as a visibly blank row.
func renderOption(st rowState) string {
	label := st.option.Display()
	if st.width > 0 {
		label = ansi.Truncate(label, st.width, "…")
	}

	style := Row
	switch {
	case st.highlighted:
		style = RowFocused
	case st.hovered:
		style = RowHighlighted
	}
	return style.Width(st.width + rowPadding).Render(label)
}

// maxCachedRows bounds the memo; width changes on resize would otherwise
// grow it without limit.
const maxCachedRows = 64

// rowCache memoises renderOption by structural equality on rowState.
type rowCache struct {
	entries map[rowState]string
	misses  int
}

func (c *rowCache) render(st rowState) string {
	if s, ok := c.entries[st]; ok {
		return s
	}
	if c.entries == nil || len(c.entries) >= maxCachedRows {
		c.entries = make(map[rowState]string)
	}
	c.misses++
	s := renderOption(st)
	c.entries[st] = s
	return s
}

// optionRow binds an option to its commit callback.
type optionRow struct {
	option   Option
	onSelect func(*events.Event) tea.Cmd
}

// activate runs onSelect when ev is a left-button press or an activation
// key. Keyboard activation suppresses the key's default action.
func (r optionRow) activate(ev *events.Event, keys KeyMap) (tea.Cmd, bool) {
	switch msg := ev.Msg.(type) {
	case tea.KeyMsg:
		if !key.Matches(msg, keys.Activate) {
			return nil, false
		}
		ev.PreventDefault()
	case tea.MouseMsg:
		if !mouse.IsPointerDown(msg) || msg.Button != tea.MouseButtonLeft {
			return nil, false
		}
	default:
		return nil, false
	}
	return r.onSelect(ev), true
}
