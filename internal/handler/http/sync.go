package http

import (
	"net/http"

	"github.com/MKhiriev/go-school-agenda/internal/logger"
	"github.com/MKhiriev/go-school-agenda/models"
)

// sync triggers a sync cycle for the authenticated user. The call is
// synchronous: the response reports the sizes of the freshly replaced
// datasets.
func (h *Handler) sync(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := h.sessionUser(w, r)
	if !ok {
		return
	}

	result, err := h.services.SyncService.Sync(r.Context(), userID)
	if err != nil {
		log.Err(err).Str("user_id", userID).Msg("sync failed")
		h.respondError(w, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, models.SyncResponse{Status: "ok", SyncResult: result})
}
