package dropdown

import "github.com/charmbracelet/lipgloss"

// Colors
var (
	Accent      = lipgloss.Color("34")  // green button
	AccentDark  = lipgloss.Color("28")  // focused/hovered button
	RowHover    = lipgloss.Color("194") // light green row highlight
	PanelBg     = lipgloss.Color("255")
	PanelFg     = lipgloss.Color("16")
	BorderColor = lipgloss.Color("250")
)

// Button styles
var (
	Button = lipgloss.NewStyle().
		Foreground(lipgloss.Color("255")).
		Background(Accent).
		Padding(0, 2)

	ButtonFocused = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(AccentDark).
			Bold(true).
			Padding(0, 2)
)

// Panel and row styles
var (
	Panel = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(BorderColor).
		BorderBackground(PanelBg)

	Row = lipgloss.NewStyle().
		Foreground(PanelFg).
		Background(PanelBg).
		Padding(0, 2)

	RowHighlighted = lipgloss.NewStyle().
			Foreground(PanelFg).
			Background(RowHover).
			Padding(0, 2)

	RowFocused = lipgloss.NewStyle().
			Foreground(PanelFg).
			Background(RowHover).
			Bold(true).
			Padding(0, 2)
)

// rowPadding is the horizontal padding Row styles add around the label.
const rowPadding = 4
