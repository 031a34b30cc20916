// Package store owns the ordered task board and its persisted mirror.
//
// A Store is the only sanctioned way to mutate the board. Every mutation is
// written through to the storage backend before it returns; when the write
// fails the in-memory board is restored to its state before the mutation, so
// memory and storage never diverge.
//
// A Store is not safe for concurrent use. Adapters serialize access: the
// terminal board calls it from its single update loop and the web server
// holds a mutex around every call.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/SyrineLarbi/Daily-planner/internal/model"
	"github.com/SyrineLarbi/Daily-planner/internal/storage"
)

// DefaultKey is the storage key holding the serialized board
const DefaultKey = "tasks"

// DeletePrompt is the question asked before a task is removed
const DeletePrompt = "Are you sure you want to delete this task?"

// ClearPrompt is the question asked before the whole board is removed
const ClearPrompt = "Are you sure you want to delete every task?"

// StorageFullMessage is the alert shown to the user when a save does not fit
const StorageFullMessage = "Storage full! Image too large. Use smaller icons."

// ErrStorageFull is returned when the backend rejects a write for lack of space
var ErrStorageFull = errors.New(StorageFullMessage)

// Options configures a Store
type Options struct {
	// Key is the storage key (DefaultKey when empty)
	Key string
	// DefaultColor is applied to drafts without a color (model.DefaultColor when empty)
	DefaultColor string
	// Logger receives debug output; discarded when nil
	Logger *log.Logger
}

// Store holds the board in memory and mirrors it to a storage backend
type Store struct {
	backend storage.Backend
	key     string
	color   string
	log     *log.Logger

	tasks []model.Task

	// dragSource is the position being dragged, -1 when no drag is active
	dragSource int
}

// New creates a store over backend. Call Load to read the persisted board.
func New(backend storage.Backend, opts Options) *Store {
	if opts.Key == "" {
		opts.Key = DefaultKey
	}
	if opts.DefaultColor == "" {
		opts.DefaultColor = model.DefaultColor
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	return &Store{
		backend:    backend,
		key:        opts.Key,
		color:      opts.DefaultColor,
		log:        opts.Logger,
		tasks:      []model.Task{},
		dragSource: -1,
	}
}

// Load reads the persisted board. A missing, unreadable or corrupt value
// leaves the store with an empty board; Load never fails.
func (s *Store) Load() {
	s.tasks = []model.Task{}
	s.dragSource = -1

	raw, ok, err := s.backend.GetItem(s.key)
	if err != nil {
		s.log.Printf("store: failed to read %q, starting empty: %v", s.key, err)
		return
	}
	if !ok || raw == "" {
		return
	}

	var tasks []model.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		s.log.Printf("store: failed to parse %q, starting empty: %v", s.key, err)
		return
	}
	if tasks != nil {
		s.tasks = tasks
	}
	s.log.Printf("store: loaded %d tasks", len(s.tasks))
}

// Len returns the number of tasks on the board
func (s *Store) Len() int {
	return len(s.tasks)
}

// Tasks returns a copy of the board in order
func (s *Store) Tasks() []model.Task {
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Task returns the task at position
func (s *Store) Task(position int) (model.Task, bool) {
	if !s.valid(position) {
		return model.Task{}, false
	}
	return s.tasks[position], true
}

func (s *Store) valid(position int) bool {
	return position >= 0 && position < len(s.tasks)
}

// snapshot copies the board so a failed write can be undone
func (s *Store) snapshot() []model.Task {
	return s.Tasks()
}

// commit persists the board, restoring prev when the write fails
func (s *Store) commit(prev []model.Task, op string) error {
	if err := s.persist(); err != nil {
		s.tasks = prev
		s.log.Printf("store: %s rolled back: %v", op, err)
		return err
	}
	s.log.Printf("store: %s persisted (%d tasks)", op, len(s.tasks))
	return nil
}

// persist serializes the full board to the backend
func (s *Store) persist() error {
	data, err := json.Marshal(s.tasks)
	if err != nil {
		return fmt.Errorf("failed to encode tasks: %w", err)
	}

	if err := s.backend.SetItem(s.key, string(data)); err != nil {
		if errors.Is(err, storage.ErrQuotaExceeded) {
			return fmt.Errorf("%w (%d bytes)", ErrStorageFull, len(data))
		}
		return fmt.Errorf("failed to save tasks: %w", err)
	}
	return nil
}
