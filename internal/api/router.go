// internal/api/router.go
package api

import "net/http"

func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Subjects
	mux.HandleFunc("POST /subjects", h.createSubject)
	mux.HandleFunc("GET /subjects", h.listSubjects)
	mux.HandleFunc("GET /subjects/{subjectID}", h.getSubject)
	mux.HandleFunc("PUT /subjects/{subjectID}", h.updateSubject)
	mux.HandleFunc("DELETE /subjects/{subjectID}", h.deleteSubject)

	// Answer log and question catalogue
	mux.HandleFunc("POST /answers", h.recordAnswer)
	mux.HandleFunc("POST /questions", h.addQuestion)

	// Statistics
	mux.HandleFunc("GET /users/{userID}/stats", h.getUserSummaries)
	mux.HandleFunc("GET /users/{userID}/subjects/{subjectID}/stats", h.getSubjectStats)

	// Filters
	mux.HandleFunc("POST /filters/normalize", h.normalizeFilter)
}
