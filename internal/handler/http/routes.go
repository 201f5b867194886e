package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization: registration, the login check, the
	// pre-login user picker and the static profile files referenced by
	// <img> and <a> tags
	router.Group(func(r chi.Router) {
		r.Post("/api/user/register", h.register)
		r.Post("/api/login", h.login)
		r.Get("/api/users", h.listUsers)
		r.Get("/api/version", h.getServerVersion)

		r.Get("/api/profiles/{userID}/attachments/{filename}", h.serveAttachment)
		r.Get("/api/profiles/{userID}/{filename}", h.serveProfileFile)
	})

	// per-user routes, session token required
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Put("/api/users/{userID}/pin", h.updatePIN)
		r.Put("/api/users/{userID}/period", h.updatePeriod)
		r.Post("/api/users/{userID}/avatar", h.uploadAvatar)

		r.Get("/api/homework", h.getHomework)
		r.Post("/api/manual_tasks", h.addManualTask)
		r.Delete("/api/manual_tasks/{taskID}", h.deleteManualTask)

		r.Get("/api/grades", h.getGrades)

		r.Get("/api/status", h.getStatus)
		r.Post("/api/status", h.updateStatus)

		r.Get("/api/attachments", h.getAttachments)
		r.Post("/api/attachments/{eventID}", h.uploadAttachment)
		r.Delete("/api/attachments/{eventID}/{filename}", h.deleteAttachment)

		r.Post("/api/sync", h.sync)
	})

	return router
}
