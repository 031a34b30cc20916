package ui

import (
	"testing"
	"time"

	"github.com/SyrineLarbi/Daily-planner/internal/app"
	"github.com/SyrineLarbi/Daily-planner/internal/config"
	"github.com/SyrineLarbi/Daily-planner/internal/store"
	"github.com/SyrineLarbi/Daily-planner/internal/ui/theme"
	"github.com/SyrineLarbi/Daily-planner/internal/ui/views"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRoot(t *testing.T) RootModel {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.Storage = config.StorageMemory
	cfg.Notifications = false
	cfg.Theme = "nord"

	application, err := app.New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { application.Close() })

	clock := func() time.Time {
		return time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC)
	}
	m := NewRootModel(application).WithClock(clock)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return updated.(RootModel)
}

func send(m RootModel, msg tea.Msg) (RootModel, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(RootModel), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestRoot_HeaderShowsDate(t *testing.T) {
	m := newTestRoot(t)

	view := m.View()
	assert.Contains(t, view, "Monday, Mar 4")
	assert.Contains(t, view, "Daily planner")
}

func TestRoot_BackdropRotates(t *testing.T) {
	m := newTestRoot(t)
	require.Equal(t, "nord", theme.Current.Theme.Name)

	m, cmd := send(m, BackdropTickMsg{At: time.Now()})

	assert.Equal(t, "dracula", theme.Current.Theme.Name)
	assert.NotNil(t, cmd, "next tick scheduled")
	assert.Contains(t, m.View(), "violet night")
}

func TestRoot_BackdropDisabled(t *testing.T) {
	m := newTestRoot(t)
	m.app.Config.BackdropInterval = 0

	assert.Nil(t, m.backdropTick())
}

func TestRoot_AlertBlocksUntilDismissed(t *testing.T) {
	m := newTestRoot(t)

	m, cmd := send(m, views.AlertMsg{Message: store.StorageFullMessage})
	assert.NotNil(t, cmd)
	assert.Contains(t, m.View(), store.StorageFullMessage)

	// The key that dismisses the alert does not reach the board
	m, _ = send(m, runes("a"))
	assert.NotContains(t, m.View(), store.StorageFullMessage)
	assert.Equal(t, views.BoardModeNormal, m.boardView.Mode())
}

func TestRoot_HelpToggle(t *testing.T) {
	m := newTestRoot(t)

	m, _ = send(m, runes("?"))
	assert.True(t, m.helpVisible)
	assert.Contains(t, m.View(), "help")

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.helpVisible)
}

func TestRoot_QuitOnlyOutsideInput(t *testing.T) {
	m := newTestRoot(t)

	m, _ = send(m, runes("a"))
	require.True(t, m.boardView.IsInputMode())

	m, _ = send(m, runes("q"))
	assert.True(t, m.boardView.IsInputMode(), "q types into the form")

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	_, cmd := send(m, runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestRoot_AddThroughBoard(t *testing.T) {
	m := newTestRoot(t)

	m, _ = send(m, runes("a"))
	for _, r := range "Gym" {
		m, _ = send(m, runes(string(r)))
	}
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, 1, m.app.Store.Len())
	assert.Contains(t, m.View(), "Gym")
}

func TestRoot_TimelineToggle(t *testing.T) {
	m := newTestRoot(t)
	_, err := m.app.Store.Create(store.Draft{Title: "Standup", Start: "09:00", End: "09:30"})
	require.NoError(t, err)

	m, _ = send(m, runes("v"))
	assert.Equal(t, ViewTimeline, m.Mode())
	assert.Contains(t, m.View(), "■ Standup")

	// Board keys do not reach the board while the timeline is shown
	m, _ = send(m, runes("a"))
	assert.Equal(t, views.BoardModeNormal, m.boardView.Mode())

	m, _ = send(m, runes("v"))
	assert.Equal(t, ViewBoard, m.Mode())
}
