package views

import (
	"testing"
	"time"

	"github.com/SyrineLarbi/Daily-planner/internal/render"
	"github.com/SyrineLarbi/Daily-planner/internal/storage"
	"github.com/SyrineLarbi/Daily-planner/internal/store"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTimeline(t *testing.T, drafts ...store.Draft) TimelineView {
	t.Helper()
	s := store.New(storage.NewMemory(0), store.Options{})
	s.Load()
	for _, d := range drafts {
		_, err := s.Create(d)
		require.NoError(t, err)
	}

	clock := func() time.Time { return time.Date(2024, time.March, 4, 8, 40, 0, 0, time.UTC) }
	return NewTimelineView(s).WithClock(clock).SetSize(80, 20)
}

func TestSlotCards_Spans(t *testing.T) {
	cards := []render.Card{
		{Title: "Breakfast", Start: "08:00", End: "09:00"},
		{Title: "Call", Start: "08:30"},
		{Title: "Backwards", Start: "10:00", End: "09:00"},
		{Title: "Anytime"},
	}

	titles := func(slot int) []string {
		var out []string
		for _, c := range SlotCards(cards, slot) {
			out = append(out, c.Title)
		}
		return out
	}

	assert.Equal(t, []string{"Breakfast"}, titles(16))
	assert.Equal(t, []string{"Breakfast", "Call"}, titles(17))
	assert.Empty(t, titles(18), "end slot is exclusive")
	assert.Equal(t, []string{"Backwards"}, titles(20))
	assert.Empty(t, titles(19))

	unscheduled := UnscheduledCards(cards)
	require.Len(t, unscheduled, 1)
	assert.Equal(t, "Anytime", unscheduled[0].Title)
}

func TestTimeline_StartsAtCurrentSlot(t *testing.T) {
	v := newTestTimeline(t)
	assert.Equal(t, 17, v.Cursor())
}

func TestTimeline_Navigation(t *testing.T) {
	v := newTestTimeline(t)

	step := func(k string) {
		m, _ := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
		v = m.(TimelineView)
	}

	step("j")
	assert.Equal(t, 18, v.Cursor())
	step("g")
	assert.Equal(t, 0, v.Cursor())
	step("k")
	assert.Equal(t, 0, v.Cursor())
	step("G")
	assert.Equal(t, 47, v.Cursor())
	step("j")
	assert.Equal(t, 47, v.Cursor())
	step("t")
	assert.Equal(t, 17, v.Cursor())
}

func TestTimeline_View(t *testing.T) {
	v := newTestTimeline(t,
		store.Draft{Title: "Breakfast", Start: "08:00", End: "09:00"},
		store.Draft{Title: "Stretch"},
	)

	view := v.View()
	assert.Contains(t, view, "Timeline")
	assert.Contains(t, view, "▶08:30")
	assert.Contains(t, view, "■ Breakfast")
	assert.Contains(t, view, "Anytime: Stretch")
}
