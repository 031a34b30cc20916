package views

import (
	"strings"

	"github.com/SyrineLarbi/Daily-planner/internal/icon"
	"github.com/SyrineLarbi/Daily-planner/internal/model"
	"github.com/SyrineLarbi/Daily-planner/internal/richtext"
	"github.com/SyrineLarbi/Daily-planner/internal/store"
	"github.com/SyrineLarbi/Daily-planner/internal/ui/theme"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// FormField identifies the focused field of the task form
type FormField int

const (
	FieldTitle FormField = iota
	FieldDescription
	FieldStart
	FieldEnd
	FieldColor
	FieldImage
	fieldCount
)

// FormAction tells the board what the last key did to the form
type FormAction int

const (
	FormContinue FormAction = iota
	FormSubmit
	FormCancel
)

// FormView is the add/edit task modal
type FormView struct {
	width int

	editing  bool
	position int

	focus       FormField
	title       textinput.Model
	description textarea.Model
	start       int // index into slots, -1 when unset
	end         int
	color       textinput.Model
	image       textinput.Model
	slots       []string

	// Stored HTML of the edited task and the editor text it was shown as;
	// the HTML is saved unchanged unless the text was edited
	storedDescription string
	loadedDescription string

	defaultColor string
	loading      bool   // waiting for the icon to load
	err          string // shown under the form
}

// NewFormView creates an empty form
func NewFormView(defaultColor string) FormView {
	title := textinput.New()
	title.Placeholder = model.DefaultTitle
	title.CharLimit = 256

	desc := textarea.New()
	desc.Placeholder = "Notes, use - for bullet points"
	desc.CharLimit = 0
	desc.ShowLineNumbers = false
	desc.SetWidth(60)
	desc.SetHeight(5)

	color := textinput.New()
	color.Placeholder = defaultColor
	color.CharLimit = 16

	img := textinput.New()
	img.Placeholder = "path to an image file"
	img.CharLimit = 1024

	return FormView{
		title:        title,
		description:  desc,
		color:        color,
		image:        img,
		start:        -1,
		end:          -1,
		slots:        model.TimeSlots(),
		defaultColor: defaultColor,
	}
}

// ForNew resets the form for a new task
func (f FormView) ForNew() FormView {
	f = NewFormView(f.defaultColor).SetWidth(f.width)
	f.color.SetValue(f.defaultColor)
	return f.focusField(FieldTitle)
}

// ForEdit fills the form with the task at position
func (f FormView) ForEdit(position int, task model.Task) FormView {
	f = NewFormView(f.defaultColor).SetWidth(f.width)
	f.editing = true
	f.position = position
	f.title.SetValue(task.Title)
	f.description.SetValue(richtext.ToMarkdown(task.Description))
	f.storedDescription = task.Description
	f.loadedDescription = f.description.Value()
	f.start = model.SlotIndex(task.Start)
	f.end = model.SlotIndex(task.End)
	f.color.SetValue(task.Color)
	f.image.Placeholder = "keep current image"
	return f.focusField(FieldTitle)
}

// SetWidth updates the form width
func (f FormView) SetWidth(width int) FormView {
	f.width = width
	inner := width - 20
	if inner < 20 {
		inner = 20
	}
	f.title.Width = inner
	f.color.Width = inner
	f.image.Width = inner
	f.description.SetWidth(inner)
	return f
}

// Editing reports whether the form edits an existing task, and which
func (f FormView) Editing() (int, bool) {
	return f.position, f.editing
}

// ImagePath returns the chosen image file, empty when none was chosen
func (f FormView) ImagePath() string {
	return icon.ExpandHome(f.image.Value())
}

// Draft converts the form values into a store draft without an image
func (f FormView) Draft() (store.Draft, error) {
	desc, err := f.descriptionHTML()
	if err != nil {
		return store.Draft{}, err
	}
	return store.Draft{
		Title:       f.title.Value(),
		Description: desc,
		Start:       f.slot(f.start),
		End:         f.slot(f.end),
		Color:       f.color.Value(),
	}, nil
}

// descriptionHTML converts the editor text, keeping the stored HTML of an
// edited task when its text was not touched
func (f FormView) descriptionHTML() (string, error) {
	text := f.description.Value()
	if f.editing && text == f.loadedDescription {
		return f.storedDescription, nil
	}
	return richtext.FromMarkdown(text)
}

// Loading marks the form as waiting for its image
func (f FormView) Loading(loading bool) FormView {
	f.loading = loading
	if loading {
		f.err = ""
	}
	return f
}

// IsLoading reports whether the form waits for its image
func (f FormView) IsLoading() bool {
	return f.loading
}

// WithError shows err under the form
func (f FormView) WithError(err string) FormView {
	f.err = err
	f.loading = false
	return f
}

func (f FormView) slot(idx int) string {
	if idx < 0 || idx >= len(f.slots) {
		return ""
	}
	return f.slots[idx]
}

func (f FormView) focusField(field FormField) FormView {
	f.focus = field
	f.title.Blur()
	f.description.Blur()
	f.color.Blur()
	f.image.Blur()

	switch field {
	case FieldTitle:
		f.title.Focus()
	case FieldDescription:
		f.description.Focus()
	case FieldColor:
		f.color.Focus()
	case FieldImage:
		f.image.Focus()
	}
	return f
}

// stepSlot moves a slot picker; unset pickers start at the first slot
func (f FormView) stepSlot(idx, delta int) int {
	if idx < 0 {
		return 0
	}
	n := len(f.slots)
	return ((idx+delta)%n + n) % n
}

// Update handles a key while the form is open
func (f FormView) Update(msg tea.KeyMsg) (FormView, tea.Cmd, FormAction) {
	if f.loading {
		return f, nil, FormContinue
	}

	switch msg.String() {
	case "esc":
		return f, nil, FormCancel
	case "ctrl+s":
		return f, nil, FormSubmit
	case "tab":
		return f.focusField((f.focus + 1) % fieldCount), nil, FormContinue
	case "shift+tab":
		return f.focusField((f.focus + fieldCount - 1) % fieldCount), nil, FormContinue
	case "enter":
		if f.focus != FieldDescription {
			return f, nil, FormSubmit
		}
	}

	var cmd tea.Cmd
	switch f.focus {
	case FieldTitle:
		f.title, cmd = f.title.Update(msg)
	case FieldDescription:
		f.description, cmd = f.description.Update(msg)
	case FieldColor:
		f.color, cmd = f.color.Update(msg)
	case FieldImage:
		f.image, cmd = f.image.Update(msg)
	case FieldStart, FieldEnd:
		idx := &f.start
		if f.focus == FieldEnd {
			idx = &f.end
		}
		switch msg.String() {
		case "right", "l", "+":
			*idx = f.stepSlot(*idx, 1)
		case "left", "h", "-":
			*idx = f.stepSlot(*idx, -1)
		case "up", "k":
			*idx = f.stepSlot(*idx, -2)
		case "down", "j":
			*idx = f.stepSlot(*idx, 2)
		case "backspace", "x":
			*idx = -1
		}
	}
	return f, cmd, FormContinue
}

// View renders the form
func (f FormView) View() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	heading := "New task"
	if f.editing {
		heading = "Edit task"
	}

	field := func(which FormField, label, body string) string {
		box := styles.Input
		if f.focus == which {
			box = styles.InputFocused
		}
		return lipgloss.JoinHorizontal(lipgloss.Center, styles.Label.Render(label), box.Render(body))
	}
	slot := func(idx int) string {
		if v := f.slot(idx); v != "" {
			return "◂ " + v + " ▸"
		}
		return styles.Placeholder.Render("◂ --:-- ▸")
	}

	swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(f.color.Value())).Render("■ ")
	if strings.TrimSpace(f.color.Value()) == "" {
		swatch = lipgloss.NewStyle().Foreground(lipgloss.Color(f.defaultColor)).Render("■ ")
	}

	rows := []string{
		styles.PanelTitle.Render(heading),
		field(FieldTitle, "Title", f.title.View()),
		field(FieldDescription, "Description", f.description.View()),
		field(FieldStart, "Start", slot(f.start)),
		field(FieldEnd, "End", slot(f.end)),
		field(FieldColor, "Color", swatch+f.color.View()),
		field(FieldImage, "Icon", f.image.View()),
	}

	switch {
	case f.loading:
		rows = append(rows, lipgloss.NewStyle().Foreground(t.Info).Render("Loading icon..."))
	case f.err != "":
		rows = append(rows, lipgloss.NewStyle().Foreground(t.Error).Render(f.err))
	}

	return styles.Panel.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
