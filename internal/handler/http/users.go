package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-school-agenda/internal/logger"
	"github.com/MKhiriev/go-school-agenda/internal/utils"
	"github.com/MKhiriev/go-school-agenda/models"
)

// maxUploadBytes bounds multipart uploads (attachments and avatars).
const maxUploadBytes = 32 << 20

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	user, err := h.services.UserService.Register(ctx, req)
	if err != nil {
		log.Err(err).Msg("user registration failed")
		h.respondError(w, err)
		return
	}

	// a fresh account gets its session right away
	_, token, err := h.services.UserService.Login(ctx, user.ID, req.PIN)
	if err != nil {
		log.Err(err).Msg("post-registration login failed")
		h.respondError(w, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, models.LoginResponse{
		Status: "ok",
		Token:  token.String(),
		User:   user.Public(),
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	user, token, err := h.services.UserService.Login(ctx, req.UserID, req.PIN)
	if err != nil {
		log.Err(err).Str("user_id", req.UserID).Msg("login failed")
		h.respondError(w, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, models.LoginResponse{
		Status: "ok",
		Token:  token.String(),
		User:   user.Public(),
	})
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.services.UserService.ListUsers(r.Context())
	if err != nil {
		logger.FromRequest(r).Err(err).Msg("listing users failed")
		h.respondError(w, err)
		return
	}

	public := make([]models.User, 0, len(users))
	for _, u := range users {
		public = append(public, u.Public())
	}
	h.writeJSON(w, r, http.StatusOK, public)
}

func (h *Handler) updatePIN(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := h.pathUserMatchesSession(w, r)
	if !ok {
		return
	}

	var req models.UpdatePINRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.UserService.UpdatePIN(r.Context(), userID, req.OldPIN, req.NewPIN); err != nil {
		log.Err(err).Str("user_id", userID).Msg("pin update failed")
		h.respondError(w, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, models.StatusResponse{Status: "ok"})
}

func (h *Handler) updatePeriod(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := h.pathUserMatchesSession(w, r)
	if !ok {
		return
	}

	var req models.UpdatePeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if _, err := h.services.UserService.UpdatePeriod(r.Context(), userID, req.AcademicPeriod); err != nil {
		log.Err(err).Str("user_id", userID).Msg("period update failed")
		h.respondError(w, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, models.StatusResponse{Status: "ok"})
}

func (h *Handler) uploadAvatar(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := h.pathUserMatchesSession(w, r)
	if !ok {
		return
	}

	file, header, err := h.formFile(w, r)
	if err != nil {
		return
	}
	defer file.Close()

	avatarURL, err := h.services.UserService.SetAvatar(r.Context(), userID, header.Filename, file)
	if err != nil {
		log.Err(err).Str("user_id", userID).Msg("avatar upload failed")
		h.respondError(w, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, models.AvatarResponse{Status: "ok", AvatarURL: avatarURL})
}

// pathUserMatchesSession returns the {userID} path parameter after
// checking it against the authenticated session. A mismatch answers
// 403: a valid token for one user grants nothing on another profile.
func (h *Handler) pathUserMatchesSession(w http.ResponseWriter, r *http.Request) (string, bool) {
	pathUser := chi.URLParam(r, "userID")
	sessionUser, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return "", false
	}
	if pathUser != sessionUser {
		http.Error(w, "cannot act on another user's profile", http.StatusForbidden)
		return "", false
	}
	return pathUser, true
}
