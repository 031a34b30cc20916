package ui

import "time"

// Messages for inter-component communication

// ThemeChangedMsg indicates the theme was changed
type ThemeChangedMsg struct {
	ThemeName string
}

// BackdropTickMsg is sent every backdrop interval to rotate the theme
type BackdropTickMsg struct {
	At time.Time
}
