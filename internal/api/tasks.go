package api

import (
	"encoding/json"
	"net/http"

	"taskboard/internal/logging"
	"taskboard/internal/services"
)

func (s *Server) handleTaskCreate(w http.ResponseWriter, r *http.Request) {
	var input services.CreateTaskInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	logging.Debugf("create task %q for user %q\n", input.TaskName, input.UserID)

	task, err := s.tasks.CreateTask(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (s *Server) handleTaskUpdate(w http.ResponseWriter, r *http.Request) {
	var input services.UpdateTaskInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	input.TaskID = r.PathValue("id")

	logging.Debugf("update task %q for user %q\n", input.TaskID, input.UserID)

	task, err := s.tasks.UpdateTask(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleActiveTaskList(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")

	tasks, err := s.queries.ListActiveTasks(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (s *Server) handleFinishedTaskList(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")

	tasks, err := s.queries.ListFinishedTasks(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}
