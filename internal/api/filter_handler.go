package api

import (
	"net/http"

	"github.com/examprep/backend/internal/domain/filter"
)

type NormalizeRequest struct {
	Value filter.Value `json:"value" swaggertype:"array,string"`
}

func (r *NormalizeRequest) Validate() error { return nil }

type NormalizeResponse struct {
	Terms   []string `json:"terms"`
	Applied bool     `json:"applied"`
}

// normalizeFilter shows how a raw filter value will be interpreted.
// @Summary      Normalize a filter value
// @Description  Returns the terms a filter resolves to. An empty list means the filter is not applied.
// @Tags         Filters
// @Accept       json
// @Produce      json
// @Param        body  body      NormalizeRequest  true  "Raw filter"
// @Success      200   {object}  NormalizeResponse
// @Failure      400   {object}  map[string]string
// @Router       /filters/normalize [post]
func (h *Handler) normalizeFilter(w http.ResponseWriter, r *http.Request) {
	var req NormalizeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	terms := filter.Normalize(req.Value)
	respondJSON(w, http.StatusOK, NormalizeResponse{Terms: terms, Applied: len(terms) > 0})
}
