package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/SyrineLarbi/Daily-planner/internal/icon"
	"github.com/SyrineLarbi/Daily-planner/internal/render"
	"github.com/SyrineLarbi/Daily-planner/internal/richtext"
	"github.com/SyrineLarbi/Daily-planner/internal/store"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// errBadInput marks malformed requests
var errBadInput = errors.New("bad input")

// boardResponse is the body of every board endpoint
type boardResponse struct {
	Changed  bool          `json:"changed"`
	Position *int          `json:"position,omitempty"`
	Token    string        `json:"token,omitempty"`
	Cards    []render.Card `json:"cards"`
}

// taskInput is the JSON form of a create or update request
type taskInput struct {
	Title       string `json:"title"`
	Description string `json:"description"` // HTML fragment
	Markdown    string `json:"markdown"`    // used when description is empty
	Start       string `json:"start"`
	End         string `json:"end"`
	Color       string `json:"color"`
	Image       string `json:"image"` // data URI, optional
}

type dragInput struct {
	Position int `json:"position"`
}

func newDragToken() string {
	return uuid.NewString()
}

// Health handles GET /healthz
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"service": "daily-planner",
	})
}

// ListTasks handles GET /api/tasks
func (s *Server) ListTasks(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	writeJSON(w, http.StatusOK, s.board(false))
}

// CreateTask handles POST /api/tasks
func (s *Server) CreateTask(w http.ResponseWriter, r *http.Request) {
	draft, err := s.readDraft(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pos, err := s.store.Create(draft)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	resp := s.board(true)
	resp.Position = &pos
	writeJSON(w, http.StatusCreated, resp)
}

// UpdateTask handles PUT /api/tasks/{pos}
func (s *Server) UpdateTask(w http.ResponseWriter, r *http.Request) {
	pos, err := position(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	draft, err := s.readDraft(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.store.Task(pos)
	if err := s.store.Update(pos, draft); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.board(exists))
}

// DeleteTask handles DELETE /api/tasks/{pos}?confirm=true.
// Without confirm=true the prompt is answered "no" and 409 is returned.
func (s *Server) DeleteTask(w http.ResponseWriter, r *http.Request) {
	pos, err := position(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	confirmed := r.URL.Query().Get("confirm") == "true"

	s.mu.Lock()
	defer s.mu.Unlock()

	asked := false
	deleted, err := s.store.Delete(pos, store.ConfirmFunc(func(string) bool {
		asked = true
		return confirmed
	}))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if asked && !confirmed {
		writeError(w, http.StatusConflict, store.DeletePrompt)
		return
	}
	writeJSON(w, http.StatusOK, s.board(deleted))
}

// ToggleTask handles POST /api/tasks/{pos}/toggle
func (s *Server) ToggleTask(w http.ResponseWriter, r *http.Request) {
	pos, err := position(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.store.Task(pos)
	if err := s.store.ToggleCompleted(pos); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.board(exists))
}

// BeginDrag handles POST /api/drag. A new drag replaces any earlier one.
func (s *Server) BeginDrag(w http.ResponseWriter, r *http.Request) {
	var in dragInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.fail(w, r, fmt.Errorf("%w: %v", errBadInput, err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.EndDrag()
	s.dragToken = ""
	s.store.BeginDrag(in.Position)

	resp := s.board(false)
	if _, ok := s.store.DragSource(); ok {
		s.dragToken = s.newToken()
		resp.Token = s.dragToken
	}
	writeJSON(w, http.StatusOK, resp)
}

// DropDrag handles POST /api/drag/{token}/drop/{pos}.
// A stale token, or a drop on the source, changes nothing.
func (s *Server) DropDrag(w http.ResponseWriter, r *http.Request) {
	target, err := position(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	token := mux.Vars(r)["token"]

	s.mu.Lock()
	defer s.mu.Unlock()

	if token == "" || token != s.dragToken {
		writeJSON(w, http.StatusOK, s.board(false))
		return
	}

	changed, err := s.store.DropOn(target)
	s.store.EndDrag()
	s.dragToken = ""
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.board(changed))
}

// EndDrag handles DELETE /api/drag/{token}
func (s *Server) EndDrag(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	s.mu.Lock()
	defer s.mu.Unlock()

	if token != "" && token == s.dragToken {
		s.store.EndDrag()
		s.dragToken = ""
	}
	writeJSON(w, http.StatusOK, s.board(false))
}

// board renders the cards; the caller holds s.mu
func (s *Server) board(changed bool) boardResponse {
	if _, ok := s.store.DragSource(); !ok {
		s.dragToken = ""
	}
	return boardResponse{
		Changed: changed,
		Cards:   render.Board(s.store.Tasks(), s.dragSourceOrNone()),
	}
}

func (s *Server) dragSourceOrNone() int {
	if source, ok := s.store.DragSource(); ok {
		return source
	}
	return render.NoDrag
}

// readDraft decodes a multipart form or a JSON body into a draft
func (s *Server) readDraft(r *http.Request) (store.Draft, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		return s.readMultipartDraft(r)
	}

	var in taskInput
	if err := json.NewDecoder(io.LimitReader(r.Body, s.icons.MaxBytes*2)).Decode(&in); err != nil {
		return store.Draft{}, fmt.Errorf("%w: %v", errBadInput, err)
	}
	if in.Image != "" && !strings.HasPrefix(in.Image, "data:image/") {
		return store.Draft{}, icon.ErrNotImage
	}
	if in.Description == "" && in.Markdown != "" {
		html, err := richtext.FromMarkdown(in.Markdown)
		if err != nil {
			return store.Draft{}, fmt.Errorf("%w: %v", errBadInput, err)
		}
		in.Description = html
	}

	return store.Draft{
		Title:       in.Title,
		Description: in.Description,
		Start:       in.Start,
		End:         in.End,
		Color:       in.Color,
		NewImage:    in.Image,
	}, nil
}

func (s *Server) readMultipartDraft(r *http.Request) (store.Draft, error) {
	if err := r.ParseMultipartForm(s.icons.MaxBytes + 1<<20); err != nil {
		return store.Draft{}, fmt.Errorf("%w: %v", errBadInput, err)
	}

	draft := store.Draft{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Start:       r.FormValue("start"),
		End:         r.FormValue("end"),
		Color:       r.FormValue("color"),
	}

	file, header, err := r.FormFile("image")
	switch {
	case errors.Is(err, http.ErrMissingFile):
		return draft, nil
	case err != nil:
		return store.Draft{}, fmt.Errorf("%w: %v", errBadInput, err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, s.icons.MaxBytes+1))
	if err != nil {
		return store.Draft{}, fmt.Errorf("failed to read upload: %w", err)
	}
	if len(data) == 0 {
		return draft, nil
	}
	if int64(len(data)) > s.icons.MaxBytes {
		return store.Draft{}, icon.ErrTooLarge
	}

	uri, err := icon.FromBytes(data, header.Header.Get("Content-Type"))
	if err != nil {
		return store.Draft{}, err
	}
	draft.NewImage = uri
	return draft, nil
}

// position parses the {pos} route variable
func position(r *http.Request) (int, error) {
	raw := mux.Vars(r)["pos"]
	pos, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: position %q", errBadInput, raw)
	}
	return pos, nil
}

// fail maps an error to its status code and user message
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "internal error"

	switch {
	case errors.Is(err, store.ErrStorageFull):
		status, message = http.StatusInsufficientStorage, store.StorageFullMessage
	case errors.Is(err, icon.ErrNotImage):
		status, message = http.StatusUnsupportedMediaType, "Only image files allowed!"
	case errors.Is(err, icon.ErrTooLarge):
		status, message = http.StatusRequestEntityTooLarge, "Image file too large. Use smaller icons."
	case errors.Is(err, errBadInput):
		status, message = http.StatusBadRequest, err.Error()
	}

	s.log.Printf("web: %s %s failed (request %s): %v", r.Method, r.URL.Path, RequestIDFromContext(r.Context()), err)
	writeError(w, status, message)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
