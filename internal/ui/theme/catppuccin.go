package theme

import "github.com/charmbracelet/lipgloss"

// Catppuccin backdrop: mocha starfield
var Catppuccin = Theme{
	Name:     "catppuccin",
	Backdrop: "mocha starfield",

	Background: lipgloss.Color("#1E1E2E"),
	Foreground: lipgloss.Color("#CDD6F4"),
	Subtle:     lipgloss.Color("#6C7086"),
	Highlight:  lipgloss.Color("#313244"),
	Border:     lipgloss.Color("#45475A"),

	Primary:   lipgloss.Color("#CBA6F7"),
	Secondary: lipgloss.Color("#F5C2E7"),
	Info:      lipgloss.Color("#74C7EC"),

	Success: lipgloss.Color("#A6E3A1"),
	Warning: lipgloss.Color("#F9E2AF"),
	Error:   lipgloss.Color("#F38BA8"),

	CardBackground: lipgloss.Color("#181825"),
	CardDone:       lipgloss.Color("#585B70"),
}
