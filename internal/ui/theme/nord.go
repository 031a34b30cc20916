package theme

import "github.com/charmbracelet/lipgloss"

// Nord backdrop: polar night with frost accents
var Nord = Theme{
	Name:     "nord",
	Backdrop: "polar night",

	Background: lipgloss.Color("#2E3440"),
	Foreground: lipgloss.Color("#ECEFF4"),
	Subtle:     lipgloss.Color("#4C566A"),
	Highlight:  lipgloss.Color("#3B4252"),
	Border:     lipgloss.Color("#4C566A"),

	Primary:   lipgloss.Color("#88C0D0"),
	Secondary: lipgloss.Color("#81A1C1"),
	Info:      lipgloss.Color("#5E81AC"),

	Success: lipgloss.Color("#A3BE8C"),
	Warning: lipgloss.Color("#EBCB8B"),
	Error:   lipgloss.Color("#BF616A"),

	CardBackground: lipgloss.Color("#3B4252"),
	CardDone:       lipgloss.Color("#616E88"),
}
