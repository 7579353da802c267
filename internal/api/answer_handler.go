package api

import (
	"errors"
	"net/http"

	"github.com/examprep/backend/internal/domain/answer"
	"github.com/examprep/backend/internal/id"
)

// ── Request / Response types ────────────────────────────────────────────────

type RecordAnswerRequest struct {
	UserID      string   `json:"user_id" example:"u1"`
	QuestionID  string   `json:"question_id" example:"q123"`
	Discipline  string   `json:"discipline" example:"Português"`
	Board       string   `json:"board" example:"FGV"`
	TopicTags   []string `json:"topic_tags"`
	SubjectTags []string `json:"subject_tags"`
	IsCorrect   bool     `json:"is_correct"`
}

func (r *RecordAnswerRequest) Validate() error {
	if r.UserID == "" {
		return errors.New("user_id is required")
	}
	if r.QuestionID == "" {
		return errors.New("question_id is required")
	}
	return nil
}

type RecordAnswerResponse struct {
	ID string `json:"id" example:"a1b2c3d4e5f6g7h8"`
}

type AddQuestionRequest struct {
	ID          string   `json:"id,omitempty" example:"q123"`
	Discipline  string   `json:"discipline" example:"Português"`
	Board       string   `json:"board" example:"FGV"`
	TopicTags   []string `json:"topic_tags"`
	SubjectTags []string `json:"subject_tags"`
}

func (r *AddQuestionRequest) Validate() error {
	if r.ID != "" {
		if err := id.Validate(r.ID); err != nil {
			return err
		}
	}
	if r.Discipline == "" && r.Board == "" && len(r.TopicTags) == 0 && len(r.SubjectTags) == 0 {
		return errors.New("at least one of discipline, board, topic_tags or subject_tags is required")
	}
	return nil
}

type AddQuestionResponse struct {
	ID string `json:"id" example:"q123"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// recordAnswer appends an answer to the log.
// @Summary      Record an answer
// @Tags         Answers
// @Accept       json
// @Produce      json
// @Param        body  body      RecordAnswerRequest  true  "Answer"
// @Success      201   {object}  RecordAnswerResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /answers [post]
func (h *Handler) recordAnswer(w http.ResponseWriter, r *http.Request) {
	var req RecordAnswerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	rec, err := answer.New(req.UserID, req.QuestionID, req.Discipline, req.Board, req.TopicTags, req.SubjectTags, req.IsCorrect)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.SaveAnswer(r.Context(), rec); err != nil {
		h.logger.Error("failed to save answer", "error", err, "user_id", rec.UserID)
		respondError(w, http.StatusInternalServerError, "failed to save answer")
		return
	}

	respondJSON(w, http.StatusCreated, RecordAnswerResponse{ID: rec.ID})
}

// addQuestion adds or replaces a catalogue question.
// @Summary      Add a question to the catalogue
// @Tags         Questions
// @Accept       json
// @Produce      json
// @Param        body  body      AddQuestionRequest  true  "Question tags"
// @Success      201   {object}  AddQuestionResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /questions [post]
func (h *Handler) addQuestion(w http.ResponseWriter, r *http.Request) {
	var req AddQuestionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	q := &answer.Question{
		ID:             req.ID,
		DisciplineName: req.Discipline,
		BoardName:      req.Board,
		TopicTags:      req.TopicTags,
		SubjectTags:    req.SubjectTags,
	}
	if q.ID == "" {
		q.ID = id.GenerateID()
	}

	if err := h.store.SaveQuestion(r.Context(), q); err != nil {
		h.logger.Error("failed to save question", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to save question")
		return
	}

	respondJSON(w, http.StatusCreated, AddQuestionResponse{ID: q.ID})
}
