package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-school-agenda/internal/logger"
	"github.com/MKhiriev/go-school-agenda/internal/service"
	"github.com/MKhiriev/go-school-agenda/internal/utils"
)

type Handler struct {
	services *service.Services
	version  string

	logger *logger.Logger
}

func NewHandler(services *service.Services, version string, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		version:  version,
		logger:   logger,
	}
}

// sessionUser returns the authenticated user identifier stored in the
// request context by the auth middleware, answering 401 when absent.
func (h *Handler) sessionUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return "", false
	}
	return userID, true
}

// writeJSON serialises payload with the given status code. Encoding
// failures are logged but cannot be reported to the client: the header
// has already been written.
func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.FromRequest(r).Err(err).Msg("response encoding failed")
	}
}
