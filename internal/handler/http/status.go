package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-school-agenda/internal/logger"
	"github.com/MKhiriev/go-school-agenda/models"
)

func (h *Handler) getStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.sessionUser(w, r)
	if !ok {
		return
	}

	statuses, err := h.services.StatusService.Statuses(r.Context(), userID)
	if err != nil {
		logger.FromRequest(r).Err(err).Str("user_id", userID).Msg("loading statuses failed")
		h.respondError(w, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, statuses)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := h.sessionUser(w, r)
	if !ok {
		return
	}

	var req models.StatusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.StatusService.SetStatus(r.Context(), userID, req); err != nil {
		log.Err(err).Str("user_id", userID).Str("ev_id", req.EventID).Msg("status update failed")
		h.respondError(w, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, models.StatusResponse{Status: "ok"})
}
