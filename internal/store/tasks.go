package store

import (
	"fmt"
	"strings"

	"github.com/SyrineLarbi/Daily-planner/internal/model"
)

// Draft holds the form values for a create or update
type Draft struct {
	Title       string
	Description string // HTML fragment, stored verbatim
	Start       string
	End         string
	Color       string

	// NewImage is the data URI of a newly chosen image, empty when none was chosen
	NewImage string
}

// Confirmer gates destructive operations behind a yes/no question
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to a Confirmer
type ConfirmFunc func(prompt string) bool

// Confirm implements Confirmer
func (f ConfirmFunc) Confirm(prompt string) bool {
	return f(prompt)
}

// Answer is a Confirmer with a fixed reply, for adapters that asked the user already
type Answer bool

// Confirm implements Confirmer
func (a Answer) Confirm(string) bool {
	return bool(a)
}

// ResolveImage picks the image stored on a saved task:
// a newly chosen image always wins; otherwise an edit keeps the previous
// image and a new task gets the placeholder.
func ResolveImage(newImage string, isEditing bool, previous string) string {
	switch {
	case newImage != "":
		return newImage
	case isEditing && previous != "":
		return previous
	default:
		return model.PlaceholderImage
	}
}

// build turns a draft into a task record
func (s *Store) build(d Draft, isEditing bool, previous model.Task) model.Task {
	title := d.Title
	if strings.TrimSpace(title) == "" {
		title = model.DefaultTitle
	}
	color := strings.TrimSpace(d.Color)
	if color == "" {
		color = s.color
	}

	return model.Task{
		Title:       title,
		Description: d.Description,
		Start:       model.SnapSlot(d.Start),
		End:         model.SnapSlot(d.End),
		Color:       color,
		Image:       ResolveImage(d.NewImage, isEditing, previous.Image),
	}
}

// Create appends a new task built from d and returns its position
func (s *Store) Create(d Draft) (int, error) {
	prev := s.snapshot()

	s.tasks = append(s.tasks, s.build(d, false, model.Task{}))
	if err := s.commit(prev, "create"); err != nil {
		return -1, err
	}
	return len(s.tasks) - 1, nil
}

// Update replaces the task at position with one built from d.
// The completion flag is carried over. Out of range positions are ignored.
func (s *Store) Update(position int, d Draft) error {
	if !s.valid(position) {
		return nil
	}
	prev := s.snapshot()

	old := s.tasks[position]
	task := s.build(d, true, old)
	task.Completed = old.Completed
	s.tasks[position] = task

	return s.commit(prev, "update")
}

// Delete removes the task at position once c confirms. Without a
// confirmation, or for an out of range position, nothing changes.
// It reports whether a task was removed.
func (s *Store) Delete(position int, c Confirmer) (bool, error) {
	if !s.valid(position) || c == nil {
		return false, nil
	}
	if !c.Confirm(DeletePrompt) {
		return false, nil
	}
	prev := s.snapshot()

	s.tasks = append(s.tasks[:position:position], s.tasks[position+1:]...)
	if err := s.commit(prev, "delete"); err != nil {
		return false, err
	}
	s.EndDrag()
	return true, nil
}

// Clear removes the board from storage once c confirms. An empty board,
// a nil confirmer or a "no" changes nothing. It reports whether the board
// was cleared.
func (s *Store) Clear(c Confirmer) (bool, error) {
	if len(s.tasks) == 0 || c == nil {
		return false, nil
	}
	if !c.Confirm(ClearPrompt) {
		return false, nil
	}

	if err := s.backend.RemoveItem(s.key); err != nil {
		s.log.Printf("store: clear failed: %v", err)
		return false, fmt.Errorf("failed to clear tasks: %w", err)
	}
	s.log.Printf("store: cleared %d tasks", len(s.tasks))
	s.tasks = []model.Task{}
	s.EndDrag()
	return true, nil
}

// Reorder swaps the tasks at a and b.
// Equal or out of range positions are ignored.
func (s *Store) Reorder(a, b int) error {
	if a == b || !s.valid(a) || !s.valid(b) {
		return nil
	}
	prev := s.snapshot()

	s.tasks[a], s.tasks[b] = s.tasks[b], s.tasks[a]
	return s.commit(prev, "reorder")
}

// ToggleCompleted flips the completion flag of the task at position
func (s *Store) ToggleCompleted(position int) error {
	if !s.valid(position) {
		return nil
	}
	prev := s.snapshot()

	s.tasks[position].Completed = !s.tasks[position].Completed
	return s.commit(prev, "toggle")
}
