package api

import (
	"errors"
	"net/http"

	"github.com/examprep/backend/internal/domain/filter"
	"github.com/examprep/backend/internal/domain/subject"
)

// ── Request / Response types ────────────────────────────────────────────────

// Filter fields accept null, a string, a JSON-encoded array inside a
// string, or an array (optionally of arrays).
type TopicRequest struct {
	Name   string       `json:"name" example:"Gramática"`
	Filter filter.Value `json:"filter" swaggertype:"array,string"`
}

type SubjectRequest struct {
	Name             string         `json:"name" example:"Português"`
	DisciplineFilter filter.Value   `json:"discipline_filter" swaggertype:"array,string"`
	BoardFilter      filter.Value   `json:"board_filter" swaggertype:"array,string"`
	Topics           []TopicRequest `json:"topics"`
	SubjectTagFilter filter.Value   `json:"subject_tag_filter" swaggertype:"array,string"`
}

func (r *SubjectRequest) Validate() error {
	if r.Name == "" {
		return errors.New("name is required")
	}
	for _, t := range r.Topics {
		if t.Name == "" {
			return errors.New("topic name is required")
		}
	}
	return nil
}

// apply copies the request onto cfg, replacing every filter and topic.
func (r *SubjectRequest) apply(cfg *subject.Configuration) error {
	cfg.Name = r.Name
	cfg.DisciplineFilter = r.DisciplineFilter
	cfg.BoardFilter = r.BoardFilter
	cfg.SubjectTagFilter = r.SubjectTagFilter
	cfg.Topics = []subject.Topic{}
	for _, t := range r.Topics {
		if err := cfg.AddTopic(t.Name, t.Filter); err != nil {
			return err
		}
	}
	return nil
}

type TopicResponse struct {
	Name   string       `json:"name" example:"Gramática"`
	Filter filter.Value `json:"filter" swaggertype:"array,string"`
}

type SubjectResponse struct {
	ID               string          `json:"id" example:"a1b2c3d4e5f6g7h8"`
	Name             string          `json:"name" example:"Português"`
	DisciplineFilter filter.Value    `json:"discipline_filter" swaggertype:"array,string"`
	BoardFilter      filter.Value    `json:"board_filter" swaggertype:"array,string"`
	Topics           []TopicResponse `json:"topics"`
	SubjectTagFilter filter.Value    `json:"subject_tag_filter" swaggertype:"array,string"`
}

func toSubjectResponse(cfg *subject.Configuration) SubjectResponse {
	topics := make([]TopicResponse, len(cfg.Topics))
	for i, t := range cfg.Topics {
		topics[i] = TopicResponse{Name: t.Name, Filter: t.Filter}
	}
	return SubjectResponse{
		ID:               cfg.ID,
		Name:             cfg.Name,
		DisciplineFilter: cfg.DisciplineFilter,
		BoardFilter:      cfg.BoardFilter,
		Topics:           topics,
		SubjectTagFilter: cfg.SubjectTagFilter,
	}
}

// ── Handlers ────────────────────────────────────────────────────────────────

// createSubject creates a subject configuration.
// @Summary      Create a subject
// @Description  Create a subject configuration with its discipline, board, topic and subject tag filters.
// @Tags         Subjects
// @Accept       json
// @Produce      json
// @Param        body  body      SubjectRequest  true  "Subject to create"
// @Success      201   {object}  SubjectResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /subjects [post]
func (h *Handler) createSubject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req SubjectRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	cfg := subject.New(req.Name)
	if err := req.apply(cfg); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.SaveSubject(ctx, cfg); err != nil {
		h.logger.Error("failed to save subject", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to save subject")
		return
	}

	respondJSON(w, http.StatusCreated, toSubjectResponse(cfg))
}

// listSubjects lists all subject configurations.
// @Summary      List subjects
// @Tags         Subjects
// @Produce      json
// @Success      200  {array}   SubjectResponse
// @Failure      500  {object}  map[string]string
// @Router       /subjects [get]
func (h *Handler) listSubjects(w http.ResponseWriter, r *http.Request) {
	subjects, err := h.store.ListSubjects(r.Context())
	if h.handleStoreError(w, err, "subjects") {
		return
	}

	response := make([]SubjectResponse, len(subjects))
	for i, cfg := range subjects {
		response[i] = toSubjectResponse(cfg)
	}
	respondJSON(w, http.StatusOK, response)
}

// getSubject returns one subject configuration.
// @Summary      Get a subject
// @Tags         Subjects
// @Produce      json
// @Param        subjectID  path      string  true  "Subject ID"
// @Success      200        {object}  SubjectResponse
// @Failure      404        {object}  map[string]string
// @Router       /subjects/{subjectID} [get]
func (h *Handler) getSubject(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.store.GetSubject(r.Context(), r.PathValue("subjectID"))
	if h.handleStoreError(w, err, "subject") {
		return
	}
	respondJSON(w, http.StatusOK, toSubjectResponse(cfg))
}

// updateSubject replaces a subject configuration.
// @Summary      Update a subject
// @Tags         Subjects
// @Accept       json
// @Produce      json
// @Param        subjectID  path      string          true  "Subject ID"
// @Param        body       body      SubjectRequest  true  "New configuration"
// @Success      200        {object}  SubjectResponse
// @Failure      400        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Router       /subjects/{subjectID} [put]
func (h *Handler) updateSubject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cfg, err := h.store.GetSubject(ctx, r.PathValue("subjectID"))
	if h.handleStoreError(w, err, "subject") {
		return
	}

	var req SubjectRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if err := req.apply(cfg); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if h.handleStoreError(w, h.store.SaveSubject(ctx, cfg), "subject") {
		return
	}
	respondJSON(w, http.StatusOK, toSubjectResponse(cfg))
}

// deleteSubject removes a subject configuration. Answers are kept.
// @Summary      Delete a subject
// @Tags         Subjects
// @Param        subjectID  path  string  true  "Subject ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /subjects/{subjectID} [delete]
func (h *Handler) deleteSubject(w http.ResponseWriter, r *http.Request) {
	if h.handleStoreError(w, h.store.DeleteSubject(r.Context(), r.PathValue("subjectID")), "subject") {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
