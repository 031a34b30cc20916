package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/SyrineLarbi/Daily-planner/internal/model"
	"github.com/SyrineLarbi/Daily-planner/internal/render"
	"github.com/SyrineLarbi/Daily-planner/internal/store"
	"github.com/SyrineLarbi/Daily-planner/internal/ui/theme"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TimelineView lays the board out along the half-hour slots of the day.
// It only reads the store.
type TimelineView struct {
	store  *store.Store
	width  int
	height int
	now    func() time.Time

	// Selected slot index into model.TimeSlots
	cursor int
	offset int
}

// NewTimelineView creates a timeline over s, starting at the current slot
func NewTimelineView(s *store.Store) TimelineView {
	v := TimelineView{store: s, now: time.Now}
	v.cursor = v.currentSlot()
	return v
}

// WithClock replaces the clock used by the "now" jump
func (v TimelineView) WithClock(now func() time.Time) TimelineView {
	v.now = now
	v.cursor = v.currentSlot()
	v.center()
	return v
}

// Init initializes the timeline view
func (v TimelineView) Init() tea.Cmd {
	return nil
}

// SetSize sets the view dimensions
func (v TimelineView) SetSize(width, height int) TimelineView {
	v.width = width
	v.height = height
	v.center()
	return v
}

// Cursor returns the selected slot index
func (v TimelineView) Cursor() int {
	return v.cursor
}

// IsInputMode returns whether the view is in input mode
func (v TimelineView) IsInputMode() bool {
	return false
}

func (v TimelineView) currentSlot() int {
	t := v.now()
	return t.Hour()*2 + t.Minute()/30
}

// Update handles slot navigation
func (v TimelineView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	last := len(model.TimeSlots()) - 1

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "k", "up":
			if v.cursor > 0 {
				v.cursor--
			}
		case "j", "down":
			if v.cursor < last {
				v.cursor++
			}
		case "pgup":
			v.cursor = max(v.cursor-v.visibleSlots(), 0)
		case "pgdown":
			v.cursor = min(v.cursor+v.visibleSlots(), last)
		case "g":
			v.cursor = 0
		case "G":
			v.cursor = last
		case "t": // now
			v.cursor = v.currentSlot()
		}
		v.scroll()
	}
	return v, nil
}

// center puts the cursor in the middle of the visible window
func (v *TimelineView) center() {
	visible := v.visibleSlots()
	v.offset = max(min(v.cursor-visible/2, len(model.TimeSlots())-visible), 0)
}

// scroll keeps the cursor inside the visible window
func (v *TimelineView) scroll() {
	visible := v.visibleSlots()
	if v.cursor < v.offset {
		v.offset = v.cursor
	}
	if v.cursor >= v.offset+visible {
		v.offset = v.cursor - visible + 1
	}
}

// SlotCards returns the cards scheduled over slot, in board order.
// A card covers its start slot up to, not including, its end slot;
// a card whose end is missing or not after its start covers only its start.
func SlotCards(cards []render.Card, slot int) []render.Card {
	var out []render.Card
	for _, card := range cards {
		first, last, ok := cardSpan(card)
		if ok && slot >= first && slot <= last {
			out = append(out, card)
		}
	}
	return out
}

// UnscheduledCards returns the cards without a start slot
func UnscheduledCards(cards []render.Card) []render.Card {
	var out []render.Card
	for _, card := range cards {
		if _, _, ok := cardSpan(card); !ok {
			out = append(out, card)
		}
	}
	return out
}

func cardSpan(card render.Card) (first, last int, ok bool) {
	first = model.SlotIndex(card.Start)
	if first < 0 {
		return 0, 0, false
	}
	last = first
	if end := model.SlotIndex(card.End); end > first {
		last = end - 1
	}
	return first, last, true
}

func (v TimelineView) visibleSlots() int {
	// title, blank line and the unscheduled footer
	return max(v.height-4, 1)
}

// View renders the timeline
func (v TimelineView) View() string {
	t := theme.Current.Theme
	styles := theme.Current.Styles

	cards := render.Board(v.store.Tasks(), render.NoDrag)
	slots := model.TimeSlots()

	visible := v.visibleSlots()
	offset := v.offset

	var lines []string
	lines = append(lines, styles.PanelTitle.Render("Timeline"), "")

	labelStyle := lipgloss.NewStyle().Foreground(t.Subtle)
	for i := offset; i < len(slots) && i < offset+visible; i++ {
		label := labelStyle.Render(slots[i])
		if i == v.cursor {
			label = lipgloss.NewStyle().Bold(true).Foreground(t.Primary).Render("▶" + slots[i])
		} else {
			label = " " + label
		}

		var parts []string
		for _, card := range SlotCards(cards, i) {
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(card.Color))
			if card.Completed {
				style = styles.CardDone
			}
			if first, _, _ := cardSpan(card); first == i {
				parts = append(parts, style.Render("■ "+card.Title))
			} else {
				parts = append(parts, style.Render("┃"))
			}
		}
		lines = append(lines, fmt.Sprintf("%s │ %s", label, strings.Join(parts, "  ")))
	}

	anytime := UnscheduledCards(cards)
	if len(anytime) > 0 {
		titles := make([]string, 0, len(anytime))
		for _, card := range anytime {
			titles = append(titles, card.Title)
		}
		lines = append(lines, labelStyle.Render("Anytime: "+strings.Join(titles, ", ")))
	}

	return strings.Join(lines, "\n")
}
