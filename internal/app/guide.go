package app

import (
	"log/slog"

	"github.com/charmbracelet/glamour"
)

const guideMarkdown = `# Mark entry

- **Tab** moves between the name field and the mark dropdown.
- **Enter** or **Space** opens the dropdown and picks the highlighted mark.
- **↑/↓** move through the marks, **Esc** closes the list.
- Clicking anywhere outside the list closes it.
- **Ctrl+S** saves the form, **Ctrl+C** quits without saving.
`

// renderGuide renders the keyboard guide. On renderer failure the raw
// markdown is shown instead.
func renderGuide(width int, logger *slog.Logger) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		logger.Warn("guide: create renderer", "err", err)
		return guideMarkdown
	}

	out, err := r.Render(guideMarkdown)
	if err != nil {
		logger.Warn("guide: render", "err", err)
		return guideMarkdown
	}
	return out
}
