package delivery

import (
	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, h *SessionHandler) {
	r.Route("/api", func(pr chi.Router) {
		pr.Use(httputil.RecoverMiddleware)

		pr.Get("/config", h.GetConfig)

		// --- sessions ---
		pr.Post("/sessions", h.CreateSession)
		pr.Get("/sessions/{session_id}", h.GetSession)
		pr.Post("/sessions/{session_id}/recording", h.UploadRecording)
		pr.Post("/sessions/{session_id}/advice", h.GetAdvice)
		pr.Post("/sessions/{session_id}/clear", h.ClearSession)
	})
}
