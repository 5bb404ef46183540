package api

import (
	"encoding/json"
	"log"
	"net/http"

	"taskboard/internal/errors"
	"taskboard/internal/services"
)

// Server is the HTTP API server. It is a thin pass-through: all
// decision logic lives in the services it wraps.
type Server struct {
	tasks   services.TaskService
	queries services.QueryService
	mux     *http.ServeMux
}

// New creates a new Server.
func New(tasks services.TaskService, queries services.QueryService) *Server {
	s := &Server{
		tasks:   tasks,
		queries: queries,
		mux:     http.NewServeMux(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.mux.HandleFunc("POST /api/tasks", s.handleTaskCreate)
	s.mux.HandleFunc("PATCH /api/tasks/{id}", s.handleTaskUpdate)
	s.mux.HandleFunc("GET /api/tasks/active", s.handleActiveTaskList)
	s.mux.HandleFunc("GET /api/tasks/finished", s.handleFinishedTaskList)

	s.mux.HandleFunc("GET /health", s.handleHealth)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write json: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusForError(err), map[string]string{"error": errors.UserMessage(err)})
}

// statusForError maps the error taxonomy onto HTTP status codes.
func statusForError(err error) int {
	appErr, ok := errors.AsAppError(err)
	if !ok {
		return http.StatusInternalServerError
	}

	switch appErr.Type {
	case errors.ErrorTypeValidation, errors.ErrorTypeStoreValidation:
		return http.StatusBadRequest
	case errors.ErrorTypeUnauthorized:
		return http.StatusForbidden
	case errors.ErrorTypeNotFound:
		return http.StatusNotFound
	case errors.ErrorTypeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
