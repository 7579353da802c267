package api

import (
	"net/http"

	"github.com/examprep/backend/internal/service"
	"github.com/examprep/backend/internal/stats"
)

// ── Request / Response types ────────────────────────────────────────────────

type StatsResponse struct {
	SubjectID string              `json:"subject_id" example:"a1b2c3d4e5f6g7h8"`
	UserID    string              `json:"user_id" example:"u1"`
	Overall   stats.Result        `json:"overall"`
	PerTopic  []stats.TopicResult `json:"per_topic"`
	Partial   bool                `json:"partial"`
	Failures  []string            `json:"failures,omitempty"`
}

type SubjectSummaryResponse struct {
	Name       string `json:"name" example:"Português"`
	PoolSize   int    `json:"pool_size" example:"120"`
	Importance int    `json:"importance" example:"35"`
	StatsResponse
}

func toStatsResponse(report *stats.Report) StatsResponse {
	resp := StatsResponse{
		SubjectID: report.SubjectID,
		UserID:    report.UserID,
		Overall:   report.Overall,
		PerTopic:  report.PerTopic,
		Partial:   report.Partial(),
	}
	for _, f := range report.Failures {
		resp.Failures = append(resp.Failures, f.Error())
	}
	return resp
}

func toSummaryResponse(s service.SubjectSummary) SubjectSummaryResponse {
	resp := SubjectSummaryResponse{
		Name:          s.Name,
		PoolSize:      s.PoolSize,
		Importance:    s.Importance,
		StatsResponse: toStatsResponse(s.Report),
	}
	if s.PoolErr != nil {
		resp.Partial = true
		resp.Failures = append(resp.Failures, "question pool: "+s.PoolErr.Error())
	}
	return resp
}

// ── Handlers ────────────────────────────────────────────────────────────────

// getSubjectStats returns a user's statistics for one subject.
// @Summary      Subject statistics
// @Description  Attempts, correct and wrong answers and success rate for the subject as a whole and for each topic. Slots whose answers could not be loaded are zero and listed in failures.
// @Tags         Statistics
// @Produce      json
// @Param        userID     path      string  true  "User ID"
// @Param        subjectID  path      string  true  "Subject ID"
// @Success      200        {object}  StatsResponse
// @Failure      400        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Router       /users/{userID}/subjects/{subjectID}/stats [get]
func (h *Handler) getSubjectStats(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	subjectID := r.PathValue("subjectID")

	report, err := h.stats.SubjectReport(r.Context(), subjectID, userID)
	if h.handleStoreError(w, err, "subject") {
		return
	}
	if report.Partial() {
		h.logger.Warn("partial statistics", "subject_id", subjectID, "user_id", userID, "failures", len(report.Failures))
	}

	respondJSON(w, http.StatusOK, toStatsResponse(report))
}

// getUserSummaries returns a user's statistics for every subject.
// @Summary      All subject statistics
// @Description  One entry per subject, ordered by importance (share of the question pool).
// @Tags         Statistics
// @Produce      json
// @Param        userID  path      string  true  "User ID"
// @Success      200     {array}   SubjectSummaryResponse
// @Failure      400     {object}  map[string]string
// @Failure      500     {object}  map[string]string
// @Router       /users/{userID}/stats [get]
func (h *Handler) getUserSummaries(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.stats.Summaries(r.Context(), r.PathValue("userID"))
	if h.handleStoreError(w, err, "subjects") {
		return
	}

	response := make([]SubjectSummaryResponse, len(summaries))
	for i, s := range summaries {
		response[i] = toSummaryResponse(s)
	}
	respondJSON(w, http.StatusOK, response)
}
