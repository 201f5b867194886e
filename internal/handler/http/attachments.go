package http

import (
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-school-agenda/internal/logger"
	"github.com/MKhiriev/go-school-agenda/models"
)

func (h *Handler) getAttachments(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.sessionUser(w, r)
	if !ok {
		return
	}

	attachments, err := h.services.AttachmentService.Attachments(r.Context(), userID)
	if err != nil {
		logger.FromRequest(r).Err(err).Str("user_id", userID).Msg("loading attachments failed")
		h.respondError(w, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, attachments)
}

func (h *Handler) uploadAttachment(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := h.sessionUser(w, r)
	if !ok {
		return
	}
	eventID := chi.URLParam(r, "eventID")

	file, header, err := h.formFile(w, r)
	if err != nil {
		return
	}
	defer file.Close()

	attachment, err := h.services.AttachmentService.AddAttachment(r.Context(), userID, eventID, header.Filename, file)
	if err != nil {
		log.Err(err).Str("user_id", userID).Str("ev_id", eventID).Msg("attachment upload failed")
		h.respondError(w, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, models.AttachmentResponse{Status: "ok", Attachment: attachment})
}

func (h *Handler) deleteAttachment(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := h.sessionUser(w, r)
	if !ok {
		return
	}
	eventID := chi.URLParam(r, "eventID")
	fileName := chi.URLParam(r, "filename")

	if err := h.services.AttachmentService.DeleteAttachment(r.Context(), userID, eventID, fileName); err != nil {
		log.Err(err).Str("user_id", userID).Str("file", fileName).Msg("attachment deletion failed")
		h.respondError(w, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, models.StatusResponse{Status: "ok"})
}

// serveAttachment streams an uploaded attachment back to the browser.
// The route is public: attachment links are embedded in the frontend as
// plain <a> tags that cannot carry an Authorization header.
func (h *Handler) serveAttachment(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	fileName := chi.URLParam(r, "filename")

	rc, err := h.services.AttachmentService.OpenAttachment(r.Context(), userID, fileName)
	if err != nil {
		h.respondError(w, err)
		return
	}
	defer rc.Close()

	h.streamFile(w, r, fileName, rc)
}

// serveProfileFile streams a file from the profile root, such as an
// uploaded avatar.
func (h *Handler) serveProfileFile(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	fileName := chi.URLParam(r, "filename")

	rc, err := h.services.AttachmentService.OpenProfileFile(r.Context(), userID, fileName)
	if err != nil {
		h.respondError(w, err)
		return
	}
	defer rc.Close()

	h.streamFile(w, r, fileName, rc)
}

func (h *Handler) streamFile(w http.ResponseWriter, r *http.Request, fileName string, src io.Reader) {
	if contentType := mime.TypeByExtension(filepath.Ext(fileName)); contentType != "" {
		w.Header().Set("Content-Type", contentType)
	} else {
		w.Header().Set("Content-Type", "application/octet-stream")
	}

	if _, err := io.Copy(w, src); err != nil {
		logger.FromRequest(r).Err(err).Str("file", fileName).Msg("streaming file failed")
	}
}

// formFile extracts the uploaded "file" part of a multipart request,
// answering 400 itself on malformed input.
func (h *Handler) formFile(w http.ResponseWriter, r *http.Request) (multipart.File, *multipart.FileHeader, error) {
	log := logger.FromRequest(r)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		log.Err(err).Msg("invalid multipart form")
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return nil, nil, err
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		log.Err(err).Msg("missing file form field")
		http.Error(w, "missing file form field", http.StatusBadRequest)
		return nil, nil, err
	}
	return file, header, nil
}
