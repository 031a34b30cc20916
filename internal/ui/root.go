package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/SyrineLarbi/Daily-planner/internal/app"
	"github.com/SyrineLarbi/Daily-planner/internal/ui/theme"
	"github.com/SyrineLarbi/Daily-planner/internal/ui/views"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DateFormat is the header date layout, e.g. "Monday, Jan 2"
const DateFormat = "Monday, Jan 2"

// ViewMode selects the content area
type ViewMode int

const (
	ViewBoard ViewMode = iota
	ViewTimeline
)

// RootModel is the main application model
type RootModel struct {
	app    *app.App
	keys   KeyMap
	help   help.Model
	width  int
	height int
	now    func() time.Time

	boardView    views.BoardView
	timelineView views.TimelineView
	viewMode     ViewMode
	helpVisible  bool

	// Blocking alert; any key dismisses it
	alert string

	// Status message
	statusMsg string
}

// NewRootModel creates a new root model
func NewRootModel(application *app.App) RootModel {
	h := help.New()
	h.ShowAll = true

	if t, ok := theme.ByName(application.Config.Theme); ok {
		theme.SetTheme(t)
	}

	return RootModel{
		app:  application,
		keys: DefaultKeyMap(),
		help: h,
		now:  time.Now,
		boardView: views.NewBoardView(
			application.Store,
			application.Icons,
			application.Notifier,
			application.Config.DefaultColor,
		),
		timelineView: views.NewTimelineView(application.Store),
	}
}

// WithClock replaces the clock used for the header date
func (m RootModel) WithClock(now func() time.Time) RootModel {
	m.now = now
	m.timelineView = m.timelineView.WithClock(now)
	return m
}

// Init starts the backdrop rotation
func (m RootModel) Init() tea.Cmd {
	return tea.Batch(m.boardView.Init(), m.backdropTick())
}

// backdropTick schedules the next backdrop rotation, if enabled
func (m RootModel) backdropTick() tea.Cmd {
	interval := m.app.Config.BackdropInterval
	if interval <= 0 {
		return nil
	}
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return BackdropTickMsg{At: t}
	})
}

// Update handles messages
func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.app.Logger.Printf("ui: %T", msg)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		// Reserve space for header (1 line) and footer (2 lines)
		m.boardView = m.boardView.SetSize(m.width, m.height-3)
		m.timelineView = m.timelineView.SetSize(m.width, m.height-3)
		return m, nil

	case BackdropTickMsg:
		theme.SetTheme(theme.Next(theme.Current.Theme.Name))
		return m, m.backdropTick()

	case views.AlertMsg:
		m.alert = msg.Message
		notifier := m.app.Notifier
		return m, func() tea.Msg {
			notifier.SendAlert(msg.Message)
			return nil
		}

	case tea.KeyMsg:
		// The alert blocks everything until dismissed
		if m.alert != "" {
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			m.alert = ""
			return m, nil
		}

		// Clear status on any keypress
		m.statusMsg = ""

		isInputMode := m.boardView.IsInputMode()

		// Global keybindings
		switch {
		case key.Matches(msg, m.keys.Quit):
			// ctrl+c always quits, but 'q' only quits when not in input mode
			if msg.String() == "ctrl+c" || !isInputMode {
				return m, tea.Quit
			}

		case key.Matches(msg, m.keys.ThemeCycle):
			return m, m.cycleTheme()
		}

		if isInputMode {
			break
		}

		if key.Matches(msg, m.keys.Help) {
			m.helpVisible = !m.helpVisible
			return m, nil
		}
		if m.helpVisible {
			if msg.String() == "esc" {
				m.helpVisible = false
			}
			return m, nil
		}

		if key.Matches(msg, m.keys.Timeline) {
			m.toggleView()
			return m, nil
		}
		if m.viewMode == ViewTimeline {
			newTimeline, cmd := m.timelineView.Update(msg)
			m.timelineView = newTimeline.(views.TimelineView)
			return m, cmd
		}

	case ThemeChangedMsg:
		m.statusMsg = fmt.Sprintf("Backdrop: %s", msg.ThemeName)
		return m, nil
	}

	newBoard, cmd := m.boardView.Update(msg)
	m.boardView = newBoard.(views.BoardView)
	return m, cmd
}

// View renders the UI
func (m RootModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var sections []string
	sections = append(sections, m.renderHeader())

	contentHeight := m.height - 3
	if m.statusMsg != "" {
		contentHeight--
	}

	var content string
	switch {
	case m.alert != "":
		content = m.renderAlert(contentHeight)
	case m.helpVisible:
		content = m.renderHelp()
	case m.viewMode == ViewTimeline:
		content = m.timelineView.View()
	default:
		content = m.boardView.View()
	}

	// Ensure content fills available space
	contentLines := strings.Count(content, "\n") + 1
	if contentLines < contentHeight {
		content += strings.Repeat("\n", contentHeight-contentLines)
	}
	sections = append(sections, content)
	sections = append(sections, m.renderFooter())

	return strings.Join(sections, "\n")
}

// renderHeader renders the title, today's date and the backdrop
func (m RootModel) renderHeader() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	title := styles.Header.Render("Daily planner")
	date := styles.Date.Render(m.now().Format(DateFormat))

	backdrop := lipgloss.NewStyle().
		Foreground(t.Subtle).
		Padding(0, 1).
		Render(fmt.Sprintf("%s · %s", t.Name, t.Backdrop))

	leftSide := lipgloss.JoinHorizontal(lipgloss.Center, title, date)
	gap := m.width - lipgloss.Width(leftSide) - lipgloss.Width(backdrop)
	if gap < 0 {
		gap = 0
	}

	return leftSide + strings.Repeat(" ", gap) + backdrop
}

// renderFooter renders the status line and key hints
func (m RootModel) renderFooter() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	key := func(k, desc string) string {
		return styles.HelpKey.Render(k) + styles.HelpDesc.Render(" "+desc)
	}
	sep := styles.HelpSeparator.Render(" │ ")

	var statusLine string
	if m.statusMsg != "" {
		statusLine = lipgloss.NewStyle().Foreground(t.Info).Render(m.statusMsg)
	}

	var line1, line2 string
	switch {
	case m.alert != "":
		line1 = key("any key", "dismiss")
	case m.helpVisible:
		line1 = key("?/esc", "close help")
	case m.viewMode == ViewTimeline:
		line1 = key("j/k", "slot") + sep +
			key("t", "now") + sep +
			key("v", "board") + sep +
			key("q", "quit")
	default:
		switch m.boardView.Mode() {
		case views.BoardModeForm:
			line1 = key("tab", "next field") + sep +
				key("←/→", "time slot") + sep +
				key("enter/C-s", "save") + sep +
				key("esc", "cancel")
		case views.BoardModeConfirmDelete:
			line1 = key("y", "delete") + sep + key("n/esc", "keep")
		case views.BoardModeDrag:
			line1 = key("j/k", "choose slot") + sep +
				key("m/enter", "drop") + sep +
				key("esc", "release")
		default:
			line1 = key("a", "add") + sep +
				key("enter", "edit") + sep +
				key("tab", "done") + sep +
				key("d", "del") + sep +
				key("m", "move")
			line2 = key("c", "copy") + sep +
				key("v", "timeline") + sep +
				key("ctrl+t", "backdrop") + sep +
				key("?", "help") + sep +
				key("q", "quit")
		}
	}

	var lines []string
	if statusLine != "" {
		lines = append(lines, statusLine)
	}
	if line1 != "" {
		lines = append(lines, line1)
	}
	if line2 != "" {
		lines = append(lines, line2)
	}
	return strings.Join(lines, "\n")
}

// renderAlert renders the blocking alert centered in the content area
func (m RootModel) renderAlert(height int) string {
	styles := theme.Current.Styles
	box := styles.Alert.Render(m.alert + "\n\n" + styles.HelpDesc.Render("Press any key"))
	return lipgloss.Place(m.width, max(height, 1), lipgloss.Center, lipgloss.Center, box)
}

// renderHelp renders the help overlay
func (m RootModel) renderHelp() string {
	styles := theme.Current.Styles

	var b strings.Builder
	b.WriteString(styles.PanelTitle.Render("Daily planner help"))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n\n")
	b.WriteString(styles.HelpDesc.Render("Cards are ordered by position; m picks a card up and drops it onto another to swap them."))
	return b.String()
}

// toggleView switches between the board and the timeline
func (m *RootModel) toggleView() {
	if m.viewMode == ViewTimeline {
		m.viewMode = ViewBoard
		return
	}
	m.viewMode = ViewTimeline
}

// Mode returns the active content view
func (m RootModel) Mode() ViewMode {
	return m.viewMode
}

// cycleTheme moves to the next backdrop and reports it in the status line
func (m RootModel) cycleTheme() tea.Cmd {
	next := theme.Next(theme.Current.Theme.Name)
	theme.SetTheme(next)
	return func() tea.Msg {
		return ThemeChangedMsg{ThemeName: next.Name}
	}
}

// Run starts the terminal board
func Run(application *app.App) error {
	p := tea.NewProgram(NewRootModel(application), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
