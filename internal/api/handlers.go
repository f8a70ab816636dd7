package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mira/gradekeeper/internal/errors"
	"github.com/mira/gradekeeper/internal/models"
	"github.com/mira/gradekeeper/internal/services"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGetCourses(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	courses, err := s.GradeService.Courses(r.Context(), username)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"courses": courses})
}

func (s *Server) handlePutCourses(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	var payload struct {
		Courses []models.Course `json:"courses"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid JSON body"))
		return
	}

	if err := s.GradeService.SaveCourses(r.Context(), username, payload.Courses); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"saved": len(payload.Courses)})
}

func (s *Server) handleGPA(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	gpa, err := s.GradeService.GPA(r.Context(), username)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"gpa": gpa})
}

func (s *Server) handleImportPage(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	var page services.PageImport
	if err := json.NewDecoder(r.Body).Decode(&page); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid JSON body"))
		return
	}

	course, err := s.GradeService.ImportPage(r.Context(), username, page)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, course)
}

func (s *Server) handleRecentUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.GradeService.RecentUser(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"username": user})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
