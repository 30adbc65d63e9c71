// Package server exposes a compiled form definition over HTTP. Every POST
// gets a fresh controller, so requests never share form state.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/goliatone/go-formstate/pkg/definition"
	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/httpbind"
)

// Submission is an accepted form post.
type Submission struct {
	ID          string         `json:"id"`
	Form        string         `json:"form"`
	Values      map[string]any `json:"values"`
	SubmittedAt time.Time      `json:"submittedAt"`
}

type formResponse struct {
	Definition *definition.Definition `json:"definition"`
	Snapshot   form.Snapshot          `json:"snapshot"`
}

type errorResponse struct {
	Error  string              `json:"error"`
	Fields map[string][]string `json:"fields,omitempty"`
}

// Option configures the server.
type Option func(*Server)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides time.Now for submission timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

// Server serves one form.
type Server struct {
	def      *definition.Definition
	compiled *definition.Compiled
	logger   *slog.Logger
	now      func() time.Time
	router   chi.Router

	mu          sync.RWMutex
	submissions map[string]Submission
}

// New builds the handler for def.
func New(def *definition.Definition, compiled *definition.Compiled, opts ...Option) *Server {
	s := &Server{
		def:         def,
		compiled:    compiled,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:         time.Now,
		submissions: make(map[string]Submission),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Get("/", s.handleForm)
	r.Post("/", s.handleSubmit)
	r.Get("/submissions/{id}", s.handleSubmission)
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	ctrl, err := s.controller(nil)
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	s.compiled.Bind(ctrl)
	writeJSON(w, http.StatusOK, formResponse{Definition: s.def, Snapshot: ctrl.Snapshot()})
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var accepted map[string]any
	ctrl, err := s.controller(func(state map[string]any, _ form.SubmitEvent) {
		accepted = state
	})
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}

	if _, err := httpbind.Bind(r, s.compiled.Bind(ctrl)); err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}

	ctrl.Validate()
	if !ctrl.HandleSubmit(httpbind.NewSubmitEvent(r)) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:  "validation failed",
			Fields: httpbind.ErrorPayload(ctrl.Errors()),
		})
		return
	}

	sub := Submission{
		ID:          uuid.NewString(),
		Form:        s.compiled.Name,
		Values:      accepted,
		SubmittedAt: s.now().UTC(),
	}
	s.mu.Lock()
	s.submissions[sub.ID] = sub
	s.mu.Unlock()

	s.logger.Info("form submitted",
		"form", sub.Form,
		"submission_id", sub.ID,
		"request_id", middleware.GetReqID(r.Context()),
	)
	writeJSON(w, http.StatusCreated, sub)
}

func (s *Server) handleSubmission(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.RLock()
	sub, ok := s.submissions[id]
	s.mu.RUnlock()
	if !ok {
		s.fail(w, r, http.StatusNotFound, errors.New("submission not found"))
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

// Submission returns a stored submission.
func (s *Server) Submission(id string) (Submission, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sub, ok := s.submissions[id]
	return sub, ok
}

func (s *Server) controller(onSubmit form.SubmitFunc) (*form.Controller, error) {
	return s.compiled.NewController(onSubmit, form.WithLogger(s.logger))
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	s.logger.Warn("request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"status", status,
		"error", err,
	)
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := s.now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", s.now().Sub(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
