package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Get("/api/recent-user", s.handleRecentUser)
	r.Route("/api/users/{username}", func(r chi.Router) {
		r.Get("/courses", s.handleGetCourses)
		r.Put("/courses", s.handlePutCourses)
		r.Get("/gpa", s.handleGPA)
		r.Post("/pages", s.handleImportPage)
	})

	return r
}
