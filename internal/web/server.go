// Package web serves the planner board to a browser.
//
// The page and the JSON API share one Store. Store calls are serialized by
// the server mutex; image bytes are decoded before the lock is taken.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/SyrineLarbi/Daily-planner/internal/icon"
	"github.com/SyrineLarbi/Daily-planner/internal/model"
	"github.com/SyrineLarbi/Daily-planner/internal/store"
	"github.com/gorilla/mux"
)

//go:embed assets
var assets embed.FS

// Options configures the browser board
type Options struct {
	Store        *store.Store
	Icons        *icon.Loader
	Logger       *log.Logger
	DefaultColor string

	// BackdropInterval rotates the page backdrop; 0 disables rotation
	BackdropInterval time.Duration

	// Now is the clock used for the page header; defaults to time.Now
	Now func() time.Time
}

// Server is the browser adapter
type Server struct {
	mu        sync.Mutex
	store     *store.Store
	dragToken string // token of the drag the store currently tracks

	icons    *icon.Loader
	log      *log.Logger
	page     *template.Template
	static   fs.FS
	opts     Options
	newToken func() string
}

// New creates a server over opts.Store
func New(opts Options) (*Server, error) {
	if opts.Store == nil {
		return nil, errors.New("store is required")
	}
	if opts.Icons == nil {
		opts.Icons = icon.NewLoader(0)
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	if opts.DefaultColor == "" {
		opts.DefaultColor = model.DefaultColor
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	page, err := template.New("board.html").Funcs(pageFuncs).ParseFS(assets, "assets/templates/board.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}
	static, err := fs.Sub(assets, "assets")
	if err != nil {
		return nil, fmt.Errorf("failed to open assets: %w", err)
	}

	return &Server{
		store:    opts.Store,
		icons:    opts.Icons,
		log:      opts.Logger,
		page:     page,
		static:   static,
		opts:     opts,
		newToken: newDragToken,
	}, nil
}

// Router builds the route table
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/", s.Page).Methods(http.MethodGet)
	router.HandleFunc("/healthz", s.Health).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/tasks", s.ListTasks).Methods(http.MethodGet)
	api.HandleFunc("/tasks", s.CreateTask).Methods(http.MethodPost)
	api.HandleFunc("/tasks/{pos}", s.UpdateTask).Methods(http.MethodPut)
	api.HandleFunc("/tasks/{pos}", s.DeleteTask).Methods(http.MethodDelete)
	api.HandleFunc("/tasks/{pos}/toggle", s.ToggleTask).Methods(http.MethodPost)
	api.HandleFunc("/drag", s.BeginDrag).Methods(http.MethodPost)
	api.HandleFunc("/drag/{token}/drop/{pos}", s.DropDrag).Methods(http.MethodPost)
	api.HandleFunc("/drag/{token}", s.EndDrag).Methods(http.MethodDelete)

	files := http.FileServer(http.FS(s.static))
	router.PathPrefix("/static/").Handler(files)
	router.PathPrefix("/images/").Handler(files)

	return router
}

// Handler returns the router wrapped in the request middleware
func (s *Server) Handler() http.Handler {
	return Chain(s.Router(),
		WithRequestID,
		WithRecover(s.log),
		WithAccessLog(s.log),
	)
}

// ListenAndServe serves on addr until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
