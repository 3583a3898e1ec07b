package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Routes builds the chi router. Everything under /drafts requires a bearer
// token; /health does not.
func Routes(s *Server, resolver UserResolver) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", s.handleHealth)

	r.Route("/drafts/{draftID}", func(r chi.Router) {
		r.Use(authMiddleware(resolver))
		r.Get("/", s.handleGetDetail)
		r.Get("/ws", s.handleRoomSocket)
		r.Post("/status", s.handleUpdateStatus)
		r.Post("/presence", s.handleHeartbeat)
		r.Post("/picks", s.handleSubmitPick)
	})

	return r
}
