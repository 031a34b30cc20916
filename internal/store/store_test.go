package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/SyrineLarbi/Daily-planner/internal/model"
	"github.com/SyrineLarbi/Daily-planner/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *storage.Memory) {
	t.Helper()
	backend := storage.NewMemory(0)
	s := New(backend, Options{})
	s.Load()
	return s, backend
}

// persisted decodes what the backend currently holds
func persisted(t *testing.T, backend *storage.Memory) []model.Task {
	t.Helper()
	raw, ok, err := backend.GetItem(DefaultKey)
	require.NoError(t, err)
	require.True(t, ok, "nothing persisted")

	var tasks []model.Task
	require.NoError(t, json.Unmarshal([]byte(raw), &tasks))
	return tasks
}

func requireInSync(t *testing.T, s *Store, backend *storage.Memory) {
	t.Helper()
	assert.Equal(t, s.Tasks(), persisted(t, backend))
}

func titles(s *Store) []string {
	var out []string
	for _, task := range s.Tasks() {
		out = append(out, task.Title)
	}
	return out
}

func TestLoad_MissingKeyIsEmpty(t *testing.T) {
	s, _ := newTestStore(t)
	assert.Equal(t, 0, s.Len())
}

func TestLoad_CorruptValueIsEmpty(t *testing.T) {
	backend := storage.NewMemory(0)
	require.NoError(t, backend.SetItem(DefaultKey, "{not json"))

	s := New(backend, Options{})
	s.Load()

	assert.Equal(t, 0, s.Len())
}

func TestLoad_NullIsEmpty(t *testing.T) {
	backend := storage.NewMemory(0)
	require.NoError(t, backend.SetItem(DefaultKey, "null"))

	s := New(backend, Options{})
	s.Load()

	assert.NotNil(t, s.Tasks())
	assert.Equal(t, 0, s.Len())
}

func TestLoad_ToleratesMissingFields(t *testing.T) {
	backend := storage.NewMemory(0)
	require.NoError(t, backend.SetItem(DefaultKey, `[{"title":"Old","color":"#fff"}]`))

	s := New(backend, Options{})
	s.Load()

	task, ok := s.Task(0)
	require.True(t, ok)
	assert.Equal(t, "Old", task.Title)
	assert.False(t, task.Completed)
	assert.Equal(t, model.PlaceholderImage, task.IconRef())
}

func TestCreate_GymScenario(t *testing.T) {
	s, backend := newTestStore(t)

	pos, err := s.Create(Draft{Title: "Gym", Start: "07:00", End: "08:00", Color: "#ff0000"})
	require.NoError(t, err)
	assert.Equal(t, 0, pos)

	require.Equal(t, 1, s.Len())
	task, _ := s.Task(0)
	assert.Equal(t, "Gym", task.Title)
	assert.Equal(t, "07:00", task.Start)
	assert.Equal(t, "08:00", task.End)
	assert.Equal(t, "#ff0000", task.Color)
	assert.Equal(t, model.PlaceholderImage, task.Image)
	requireInSync(t, s, backend)
}

func TestCreate_BlankTitleIsUntitled(t *testing.T) {
	s, _ := newTestStore(t)

	for _, title := range []string{"", "   "} {
		_, err := s.Create(Draft{Title: title})
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"Untitled", "Untitled"}, titles(s))
}

func TestCreate_Defaults(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Create(Draft{Title: "x", Description: "<ul><li>a</li></ul>", Start: "07:20"})
	require.NoError(t, err)

	task, _ := s.Task(0)
	assert.Equal(t, model.DefaultColor, task.Color)
	assert.Equal(t, "<ul><li>a</li></ul>", task.Description)
	assert.Equal(t, "07:00", task.Start)
	assert.Equal(t, "", task.End)
}

func TestCreate_NewImageWins(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Create(Draft{Title: "x", NewImage: "data:image/gif;base64,R0lG"})
	require.NoError(t, err)

	task, _ := s.Task(0)
	assert.Equal(t, "data:image/gif;base64,R0lG", task.Image)
}

func TestResolveImage(t *testing.T) {
	const uri = "data:image/png;base64,AAAA"
	const prev = "data:image/png;base64,BBBB"

	assert.Equal(t, uri, ResolveImage(uri, false, ""))
	assert.Equal(t, uri, ResolveImage(uri, true, prev))
	assert.Equal(t, prev, ResolveImage("", true, prev))
	assert.Equal(t, model.PlaceholderImage, ResolveImage("", false, prev))
	assert.Equal(t, model.PlaceholderImage, ResolveImage("", true, ""))
}

func TestUpdate_RetainsPreviousImage(t *testing.T) {
	s, backend := newTestStore(t)
	const img = "data:image/png;base64,iVBORw0KGgo="

	_, err := s.Create(Draft{Title: "Read", NewImage: img})
	require.NoError(t, err)

	require.NoError(t, s.Update(0, Draft{Title: "Read more"}))

	task, _ := s.Task(0)
	assert.Equal(t, "Read more", task.Title)
	assert.Equal(t, img, task.Image)
	requireInSync(t, s, backend)
}

func TestUpdate_KeepsCompleted(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.Create(Draft{Title: "a"})
	require.NoError(t, err)
	require.NoError(t, s.ToggleCompleted(0))

	require.NoError(t, s.Update(0, Draft{Title: "b"}))

	task, _ := s.Task(0)
	assert.True(t, task.Completed)
}

func TestUpdate_OutOfRangeIsNoop(t *testing.T) {
	s, backend := newTestStore(t)
	_, err := s.Create(Draft{Title: "a"})
	require.NoError(t, err)

	assert.NoError(t, s.Update(5, Draft{Title: "b"}))
	assert.NoError(t, s.Update(-1, Draft{Title: "b"}))

	assert.Equal(t, []string{"a"}, titles(s))
	requireInSync(t, s, backend)
}

func TestDelete_RequiresConfirmation(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.Create(Draft{Title: "a"})
	require.NoError(t, err)

	var asked string
	removed, err := s.Delete(0, ConfirmFunc(func(prompt string) bool {
		asked = prompt
		return false
	}))
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, DeletePrompt, asked)
	assert.Equal(t, 1, s.Len())

	removed, err = s.Delete(0, nil)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, 1, s.Len())
}

func TestDelete_ShiftsLaterTasks(t *testing.T) {
	s, backend := newTestStore(t)
	for _, title := range []string{"a", "b", "c", "d"} {
		_, err := s.Create(Draft{Title: title})
		require.NoError(t, err)
	}

	removed, err := s.Delete(1, Answer(true))
	require.NoError(t, err)
	assert.True(t, removed)

	assert.Equal(t, []string{"a", "c", "d"}, titles(s))
	requireInSync(t, s, backend)
}

func TestDelete_OutOfRangeDoesNotAsk(t *testing.T) {
	s, _ := newTestStore(t)

	removed, err := s.Delete(0, ConfirmFunc(func(string) bool {
		t.Fatal("confirmer should not be asked")
		return true
	}))
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestReorder_Scenario(t *testing.T) {
	s, backend := newTestStore(t)
	_, _ = s.Create(Draft{Title: "A"})
	_, _ = s.Create(Draft{Title: "B"})

	require.NoError(t, s.Reorder(0, 1))

	assert.Equal(t, []string{"B", "A"}, titles(s))
	requireInSync(t, s, backend)
}

func TestReorder_SelfInverse(t *testing.T) {
	s, _ := newTestStore(t)
	for _, title := range []string{"a", "b", "c", "d", "e"} {
		_, _ = s.Create(Draft{Title: title})
	}
	original := s.Tasks()

	for a := 0; a < 5; a++ {
		for b := 0; b < 5; b++ {
			require.NoError(t, s.Reorder(a, b))
			require.NoError(t, s.Reorder(a, b))
			assert.Equal(t, original, s.Tasks(), "reorder(%d,%d) twice", a, b)
		}
	}
}

func TestReorder_InvalidIsNoop(t *testing.T) {
	s, _ := newTestStore(t)
	_, _ = s.Create(Draft{Title: "a"})
	_, _ = s.Create(Draft{Title: "b"})

	require.NoError(t, s.Reorder(0, 0))
	require.NoError(t, s.Reorder(0, 7))
	require.NoError(t, s.Reorder(-1, 1))

	assert.Equal(t, []string{"a", "b"}, titles(s))
}

func TestDragProtocol(t *testing.T) {
	s, backend := newTestStore(t)
	for _, title := range []string{"a", "b", "c"} {
		_, _ = s.Create(Draft{Title: title})
	}

	// No active source
	changed, err := s.DropOn(1)
	require.NoError(t, err)
	assert.False(t, changed)

	// Dropping on the source itself
	s.BeginDrag(0)
	changed, err = s.DropOn(0)
	require.NoError(t, err)
	assert.False(t, changed)

	// Valid drop swaps and clears the source
	changed, err = s.DropOn(2)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, []string{"c", "b", "a"}, titles(s))
	_, active := s.DragSource()
	assert.False(t, active)
	requireInSync(t, s, backend)

	// Releasing without a drop changes nothing
	s.BeginDrag(1)
	s.EndDrag()
	changed, err = s.DropOn(0)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, []string{"c", "b", "a"}, titles(s))

	// Invalid source is ignored
	s.BeginDrag(9)
	_, active = s.DragSource()
	assert.False(t, active)
}

func TestToggleCompleted(t *testing.T) {
	s, backend := newTestStore(t)
	_, _ = s.Create(Draft{Title: "a"})

	require.NoError(t, s.ToggleCompleted(0))
	task, _ := s.Task(0)
	assert.True(t, task.Completed)
	requireInSync(t, s, backend)

	require.NoError(t, s.ToggleCompleted(0))
	task, _ = s.Task(0)
	assert.False(t, task.Completed)
	assert.NoError(t, s.ToggleCompleted(3))
}

func TestCreate_StorageFullRollsBack(t *testing.T) {
	backend := storage.NewMemory(200)
	s := New(backend, Options{})
	s.Load()

	_, err := s.Create(Draft{Title: "Gym"})
	require.NoError(t, err)
	before := s.Tasks()

	_, err = s.Create(Draft{Title: "X", NewImage: "data:image/png;base64," + strings.Repeat("A", 500)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStorageFull))

	assert.Equal(t, before, s.Tasks())
	assert.NotContains(t, titles(s), "X")
	requireInSync(t, s, backend)
}

func TestUpdate_FailedWriteRollsBack(t *testing.T) {
	s, backend := newTestStore(t)
	_, _ = s.Create(Draft{Title: "a"})

	backend.FailWrites = fmt.Errorf("disk on fire")
	err := s.Update(0, Draft{Title: "b"})
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrStorageFull))

	assert.Equal(t, []string{"a"}, titles(s))
}

func TestDelete_FailedWriteRollsBack(t *testing.T) {
	s, backend := newTestStore(t)
	_, _ = s.Create(Draft{Title: "a"})
	_, _ = s.Create(Draft{Title: "b"})

	backend.FailWrites = storage.ErrQuotaExceeded
	removed, err := s.Delete(0, Answer(true))
	assert.ErrorIs(t, err, ErrStorageFull)
	assert.False(t, removed)
	assert.Equal(t, []string{"a", "b"}, titles(s))
}

func TestDelete_FailedWriteKeepsDragSource(t *testing.T) {
	s, backend := newTestStore(t)
	_, _ = s.Create(Draft{Title: "a"})
	_, _ = s.Create(Draft{Title: "b"})
	s.BeginDrag(1)

	backend.FailWrites = storage.ErrQuotaExceeded
	_, err := s.Delete(0, Answer(true))
	require.ErrorIs(t, err, ErrStorageFull)

	source, ok := s.DragSource()
	assert.True(t, ok)
	assert.Equal(t, 1, source)

	backend.FailWrites = nil
	removed, err := s.Delete(0, Answer(true))
	require.NoError(t, err)
	assert.True(t, removed)
	_, ok = s.DragSource()
	assert.False(t, ok, "a committed delete ends the drag")
}

func TestDropOn_FailedWriteKeepsDragSource(t *testing.T) {
	s, backend := newTestStore(t)
	_, _ = s.Create(Draft{Title: "a"})
	_, _ = s.Create(Draft{Title: "b"})
	s.BeginDrag(0)

	backend.FailWrites = storage.ErrQuotaExceeded
	changed, err := s.DropOn(1)
	require.ErrorIs(t, err, ErrStorageFull)
	assert.False(t, changed)
	assert.Equal(t, []string{"a", "b"}, titles(s))

	source, ok := s.DragSource()
	assert.True(t, ok)
	assert.Equal(t, 0, source)
}

func TestMutationsStayInSync(t *testing.T) {
	s, backend := newTestStore(t)

	steps := []func() error{
		func() error { _, err := s.Create(Draft{Title: "a"}); return err },
		func() error { _, err := s.Create(Draft{Title: "b"}); return err },
		func() error { _, err := s.Create(Draft{Title: "c"}); return err },
		func() error { return s.Update(1, Draft{Title: "B"}) },
		func() error { _, err := s.Delete(0, Answer(true)); return err },
		func() error { return s.Reorder(0, 1) },
		func() error { _, err := s.Create(Draft{Title: "d"}); return err },
		func() error { _, err := s.Delete(2, Answer(true)); return err },
	}
	for i, step := range steps {
		require.NoError(t, step(), "step %d", i)
		requireInSync(t, s, backend)
	}

	assert.Equal(t, []string{"c", "B"}, titles(s))
}

func TestLoad_RoundTripsThroughBackend(t *testing.T) {
	s, backend := newTestStore(t)
	_, _ = s.Create(Draft{Title: "a", Start: "09:30"})
	_, _ = s.Create(Draft{Title: "b"})
	require.NoError(t, s.ToggleCompleted(1))

	reloaded := New(backend, Options{})
	reloaded.Load()

	assert.Equal(t, s.Tasks(), reloaded.Tasks())
}

func TestOptions_CustomKeyAndColor(t *testing.T) {
	backend := storage.NewMemory(0)
	s := New(backend, Options{Key: "board", DefaultColor: "#000000"})
	s.Load()

	_, err := s.Create(Draft{Title: "a"})
	require.NoError(t, err)

	_, ok, _ := backend.GetItem("board")
	assert.True(t, ok)
	task, _ := s.Task(0)
	assert.Equal(t, "#000000", task.Color)
}

func TestClear_RemovesPersistedBoard(t *testing.T) {
	s, backend := newTestStore(t)
	_, _ = s.Create(Draft{Title: "a"})
	_, _ = s.Create(Draft{Title: "b"})
	s.BeginDrag(0)

	var asked string
	cleared, err := s.Clear(ConfirmFunc(func(prompt string) bool {
		asked = prompt
		return true
	}))
	require.NoError(t, err)
	assert.True(t, cleared)
	assert.Equal(t, ClearPrompt, asked)
	assert.Equal(t, 0, s.Len())
	_, ok := s.DragSource()
	assert.False(t, ok)

	_, ok, err = backend.GetItem(DefaultKey)
	require.NoError(t, err)
	assert.False(t, ok)

	s.Load()
	assert.Equal(t, 0, s.Len())
}

func TestClear_NeedsConfirmation(t *testing.T) {
	s, backend := newTestStore(t)
	_, _ = s.Create(Draft{Title: "a"})

	cleared, err := s.Clear(Answer(false))
	require.NoError(t, err)
	assert.False(t, cleared)

	cleared, err = s.Clear(nil)
	require.NoError(t, err)
	assert.False(t, cleared)

	assert.Equal(t, []string{"a"}, titles(s))
	requireInSync(t, s, backend)
}

func TestClear_EmptyBoardDoesNotAsk(t *testing.T) {
	s, _ := newTestStore(t)

	cleared, err := s.Clear(ConfirmFunc(func(string) bool {
		t.Fatal("asked on an empty board")
		return true
	}))
	require.NoError(t, err)
	assert.False(t, cleared)
}

func TestClear_FailedRemoveKeepsBoard(t *testing.T) {
	s, backend := newTestStore(t)
	_, _ = s.Create(Draft{Title: "a"})

	backend.FailWrites = fmt.Errorf("disk on fire")
	cleared, err := s.Clear(Answer(true))
	require.Error(t, err)
	assert.False(t, cleared)
	assert.Equal(t, []string{"a"}, titles(s))

	backend.FailWrites = nil
	requireInSync(t, s, backend)
}
