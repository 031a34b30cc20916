package views

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SyrineLarbi/Daily-planner/internal/icon"
	"github.com/SyrineLarbi/Daily-planner/internal/notify"
	"github.com/SyrineLarbi/Daily-planner/internal/render"
	"github.com/SyrineLarbi/Daily-planner/internal/richtext"
	"github.com/SyrineLarbi/Daily-planner/internal/store"
	"github.com/SyrineLarbi/Daily-planner/internal/ui/theme"
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// BoardMode represents the current input mode of the board
type BoardMode int

const (
	BoardModeNormal BoardMode = iota
	BoardModeDrag
	BoardModeConfirmDelete
	BoardModeForm
)

// AlertMsg asks the root model for a blocking alert
// (defined here to avoid circular import with ui package)
type AlertMsg struct {
	Message string
}

// iconLoadedMsg carries the image chosen in the form
type iconLoadedMsg struct {
	result icon.Result
}

// BoardView shows the task cards and drives every store mutation
type BoardView struct {
	store    *store.Store
	icons    *icon.Loader
	notifier *notify.Notifier
	width    int
	height   int

	cursor    int
	mode      BoardMode
	form      FormView
	statusMsg string

	// copy writes to the system clipboard; replaced in tests
	copy func(string) error
}

// NewBoardView creates the board over s
func NewBoardView(s *store.Store, icons *icon.Loader, notifier *notify.Notifier, defaultColor string) BoardView {
	return BoardView{
		store:    s,
		icons:    icons,
		notifier: notifier,
		form:     NewFormView(defaultColor),
		copy:     clipboard.WriteAll,
	}
}

// Init initializes the board view
func (v BoardView) Init() tea.Cmd {
	return nil
}

// IsInputMode returns true when the view is capturing keys
// (form open or delete confirmation pending)
func (v BoardView) IsInputMode() bool {
	return v.mode == BoardModeForm || v.mode == BoardModeConfirmDelete
}

// Mode returns the current board mode
func (v BoardView) Mode() BoardMode {
	return v.mode
}

// Cursor returns the position of the focused card
func (v BoardView) Cursor() int {
	return v.cursor
}

// SetSize updates the view dimensions
func (v BoardView) SetSize(width, height int) BoardView {
	v.width = width
	v.height = height
	v.form = v.form.SetWidth(width)
	return v
}

// Update handles messages for the board
func (v BoardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case iconLoadedMsg:
		return v.handleIconLoaded(msg)

	case tea.KeyMsg:
		switch v.mode {
		case BoardModeForm:
			return v.handleFormMode(msg)
		case BoardModeConfirmDelete:
			return v.handleDeleteConfirm(msg)
		case BoardModeDrag:
			return v.handleDragMode(msg)
		default:
			return v.handleNormalMode(msg)
		}
	}

	return v, nil
}

// handleNormalMode handles keypresses in normal mode
func (v BoardView) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v.statusMsg = ""
	count := v.store.Len()

	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < count-1 {
			v.cursor++
		}
	case "g":
		v.cursor = 0
	case "G":
		v.cursor = max(0, count-1)

	case "a":
		v.form = v.form.ForNew()
		v.mode = BoardModeForm

	case "enter", "e":
		if task, ok := v.store.Task(v.cursor); ok {
			v.form = v.form.ForEdit(v.cursor, task)
			v.mode = BoardModeForm
		}

	case "d":
		if _, ok := v.store.Task(v.cursor); ok {
			v.mode = BoardModeConfirmDelete
		}

	case "tab", " ":
		return v.toggle()

	case "m":
		if _, ok := v.store.Task(v.cursor); ok {
			v.store.BeginDrag(v.cursor)
			v.mode = BoardModeDrag
			v.statusMsg = "Moving card: choose a slot and press m or enter"
		}

	case "c":
		if task, ok := v.store.Task(v.cursor); ok {
			card := render.TaskCard(task, v.cursor, false)
			if err := v.copy(CardText(card)); err != nil {
				v.statusMsg = fmt.Sprintf("Copy failed: %v", err)
			} else {
				v.statusMsg = fmt.Sprintf("Copied \"%s\"", task.Title)
			}
		}
	}

	return v, nil
}

// handleDragMode moves the drop target and drops or releases the card
func (v BoardView) handleDragMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := v.store.Len()

	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < count-1 {
			v.cursor++
		}
	case "g":
		v.cursor = 0
	case "G":
		v.cursor = max(0, count-1)

	case "m", "enter":
		v.mode = BoardModeNormal
		source, _ := v.store.DragSource()
		changed, err := v.store.DropOn(v.cursor)
		// Dropping on the source itself leaves the drag active
		v.store.EndDrag()
		if err != nil {
			return v, v.storeFailed(err)
		}
		if changed {
			v.statusMsg = fmt.Sprintf("Swapped cards %d and %d", source+1, v.cursor+1)
		} else {
			v.statusMsg = ""
		}

	case "esc":
		if source, ok := v.store.DragSource(); ok {
			v.cursor = source
		}
		v.store.EndDrag()
		v.mode = BoardModeNormal
		v.statusMsg = ""
	}

	return v, nil
}

// handleDeleteConfirm answers the delete prompt
func (v BoardView) handleDeleteConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var answer store.Answer
	switch msg.String() {
	case "y", "Y":
		answer = true
	case "n", "N", "esc":
		answer = false
	default:
		return v, nil
	}
	v.mode = BoardModeNormal

	deleted, err := v.store.Delete(v.cursor, answer)
	if err != nil {
		return v, v.storeFailed(err)
	}
	if deleted {
		v.statusMsg = "Task deleted"
		if v.cursor >= v.store.Len() {
			v.cursor = max(0, v.store.Len()-1)
		}
	}
	return v, nil
}

// toggle flips the focused task and celebrates completion
func (v BoardView) toggle() (tea.Model, tea.Cmd) {
	if _, ok := v.store.Task(v.cursor); !ok {
		return v, nil
	}
	if err := v.store.ToggleCompleted(v.cursor); err != nil {
		return v, v.storeFailed(err)
	}

	task, _ := v.store.Task(v.cursor)
	if !task.Completed {
		return v, nil
	}
	notifier := v.notifier
	title := task.Title
	return v, func() tea.Msg {
		notifier.SendTaskCompleted(title)
		return nil
	}
}

// handleFormMode forwards keys to the form and saves on submit
func (v BoardView) handleFormMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var (
		cmd    tea.Cmd
		action FormAction
	)
	v.form, cmd, action = v.form.Update(msg)

	switch action {
	case FormCancel:
		v.mode = BoardModeNormal
		return v, nil

	case FormSubmit:
		path := v.form.ImagePath()
		if path == "" {
			return v.save("")
		}
		v.form = v.form.Loading(true)
		return v, loadIcon(v.icons, path)
	}

	return v, cmd
}

// loadIcon reads the image in the background; the board saves once it arrives
func loadIcon(loader *icon.Loader, path string) tea.Cmd {
	return func() tea.Msg {
		return iconLoadedMsg{result: <-loader.LoadAsync(context.Background(), path)}
	}
}

func (v BoardView) handleIconLoaded(msg iconLoadedMsg) (tea.Model, tea.Cmd) {
	if v.mode != BoardModeForm || !v.form.IsLoading() {
		return v, nil
	}
	if err := msg.result.Err; err != nil {
		switch {
		case errors.Is(err, icon.ErrNotImage):
			v.form = v.form.WithError("Only image files allowed!")
		default:
			v.form = v.form.WithError(err.Error())
		}
		return v, nil
	}
	return v.save(msg.result.DataURI)
}

// save commits the form to the store
func (v BoardView) save(dataURI string) (tea.Model, tea.Cmd) {
	draft, err := v.form.Draft()
	if err != nil {
		v.form = v.form.WithError(err.Error())
		return v, nil
	}
	draft.NewImage = dataURI

	if position, editing := v.form.Editing(); editing {
		err = v.store.Update(position, draft)
		if err == nil {
			v.cursor = position
			v.statusMsg = "Task updated"
		}
	} else {
		var position int
		position, err = v.store.Create(draft)
		if err == nil {
			v.cursor = position
			v.statusMsg = "Task added"
		}
	}

	v.form = v.form.Loading(false)
	v.mode = BoardModeNormal
	if err != nil {
		return v, v.storeFailed(err)
	}
	return v, nil
}

// storeFailed turns a store error into an alert or a status line
func (v *BoardView) storeFailed(err error) tea.Cmd {
	if errors.Is(err, store.ErrStorageFull) {
		return func() tea.Msg {
			return AlertMsg{Message: store.StorageFullMessage}
		}
	}
	v.statusMsg = fmt.Sprintf("Error: %v", err)
	return nil
}

// CardText renders a card as plain text for the clipboard
func CardText(card render.Card) string {
	var b strings.Builder
	b.WriteString(card.Title)
	if card.Start != "" || card.End != "" {
		b.WriteString(" (" + card.TimeRange + ")")
	}
	if text := richtext.PlainText(card.Description); text != "" {
		b.WriteString("\n" + text)
	}
	return b.String()
}

// View renders the board
func (v BoardView) View() string {
	if v.mode == BoardModeForm {
		return v.form.View()
	}

	styles := theme.Current.Styles
	t := theme.Current.Theme

	var sections []string

	if v.mode == BoardModeConfirmDelete {
		task, _ := v.store.Task(v.cursor)
		prompt := lipgloss.NewStyle().Foreground(t.Warning).Bold(true).
			Render(fmt.Sprintf("%s \"%s\" (y/n)", store.DeletePrompt, task.Title))
		sections = append(sections, prompt)
	} else if v.statusMsg != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(t.Info).Render(v.statusMsg))
	}

	source, dragging := v.store.DragSource()
	if !dragging {
		source = render.NoDrag
	}
	cards := render.Board(v.store.Tasks(), source)

	if len(cards) == 0 {
		empty := styles.Placeholder.Render("No tasks yet. Press a to add one.")
		sections = append(sections, "", empty)
		return strings.Join(sections, "\n")
	}

	rendered := make([]string, len(cards))
	for i, card := range cards {
		rendered[i] = v.renderCard(card, i == v.cursor)
	}

	sections = append(sections, v.window(rendered, v.height-len(sections)))
	return strings.Join(sections, "\n")
}

// window keeps the focused card visible within height lines
func (v BoardView) window(rendered []string, height int) string {
	if height <= 0 {
		return strings.Join(rendered, "\n")
	}
	cursor := min(max(v.cursor, 0), len(rendered)-1)

	start := 0
	for start < cursor {
		used := 0
		for i := start; i <= cursor; i++ {
			used += lipgloss.Height(rendered[i])
		}
		if used <= height {
			break
		}
		start++
	}
	return strings.Join(rendered[start:], "\n")
}

// renderCard renders one card box
func (v BoardView) renderCard(card render.Card, focused bool) string {
	styles := theme.Current.Styles

	box := styles.Card
	switch {
	case card.Dragging:
		box = styles.CardDragging
	case focused:
		box = styles.CardFocused
	}
	if v.width > 4 {
		box = box.Width(v.width - 4)
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(card.Color))
	if card.Completed {
		titleStyle = styles.CardDone.Bold(true)
	}

	marker := "💡"
	if card.CustomImage {
		marker = "🖼"
	}
	title := marker + " " + titleStyle.Render(card.Title)
	if card.Completed {
		title = "✓ " + title
	}
	if card.Dragging {
		title += styles.Placeholder.Render("  ⇅ moving")
	}

	lines := []string{title}
	if card.Start != "" || card.End != "" {
		lines = append(lines, styles.CardTime.Render(card.TimeRange))
	}
	body := styles.CardBody
	if card.Completed {
		body = styles.CardDone
	}
	for _, line := range card.Lines {
		lines = append(lines, body.Render(line))
	}

	return box.Render(strings.Join(lines, "\n"))
}
