package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-school-agenda/internal/logger"
	"github.com/MKhiriev/go-school-agenda/models"
)

func (h *Handler) getHomework(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.sessionUser(w, r)
	if !ok {
		return
	}

	tasks, err := h.services.AgendaService.VisibleTasks(r.Context(), userID)
	if err != nil {
		logger.FromRequest(r).Err(err).Str("user_id", userID).Msg("loading visible tasks failed")
		h.respondError(w, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, tasks)
}

func (h *Handler) addManualTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := h.sessionUser(w, r)
	if !ok {
		return
	}

	var req models.ManualTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	task, err := h.services.AgendaService.AddManualTask(r.Context(), userID, req)
	if err != nil {
		log.Err(err).Str("user_id", userID).Msg("adding manual task failed")
		h.respondError(w, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, models.TaskResponse{Status: "ok", Task: task})
}

func (h *Handler) deleteManualTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := h.sessionUser(w, r)
	if !ok {
		return
	}

	taskID := chi.URLParam(r, "taskID")
	if err := h.services.AgendaService.DeleteManualTask(r.Context(), userID, taskID); err != nil {
		log.Err(err).Str("user_id", userID).Str("task_id", taskID).Msg("deleting manual task failed")
		h.respondError(w, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, models.StatusResponse{Status: "ok"})
}

func (h *Handler) getGrades(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.sessionUser(w, r)
	if !ok {
		return
	}

	grades, err := h.services.AgendaService.Grades(r.Context(), userID)
	if err != nil {
		logger.FromRequest(r).Err(err).Str("user_id", userID).Msg("loading grades failed")
		h.respondError(w, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, grades)
}
