package theme

import "github.com/charmbracelet/lipgloss"

// Gruvbox backdrop: warm dusk
var Gruvbox = Theme{
	Name:     "gruvbox",
	Backdrop: "warm dusk",

	Background: lipgloss.Color("#282828"),
	Foreground: lipgloss.Color("#EBDBB2"),
	Subtle:     lipgloss.Color("#928374"),
	Highlight:  lipgloss.Color("#3C3836"),
	Border:     lipgloss.Color("#504945"),

	Primary:   lipgloss.Color("#FE8019"),
	Secondary: lipgloss.Color("#8EC07C"),
	Info:      lipgloss.Color("#83A598"),

	Success: lipgloss.Color("#B8BB26"),
	Warning: lipgloss.Color("#FABD2F"),
	Error:   lipgloss.Color("#FB4934"),

	CardBackground: lipgloss.Color("#32302F"),
	CardDone:       lipgloss.Color("#7C6F64"),
}
