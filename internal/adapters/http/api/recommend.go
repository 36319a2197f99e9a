// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strings"
)

// RecommendHandler handles recommendation requests.
type RecommendHandler struct {
	deps Dependencies
}

// NewRecommendHandler creates a new recommendation handler.
func NewRecommendHandler(deps Dependencies) *RecommendHandler {
	return &RecommendHandler{deps: deps}
}

// HandleRecommend handles POST /recommend/{username} requests. The
// optional time_control query parameter filters the user's games by
// time-control label before profiling.
func (h *RecommendHandler) HandleRecommend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	username := strings.TrimPrefix(r.URL.Path, "/recommend/")
	if username == "" || strings.Contains(username, "/") {
		writeError(w, http.StatusBadRequest, "invalid_input", ErrBadRequest)
		return
	}

	timeControl := r.URL.Query().Get("time_control")

	result, err := h.deps.Recommend(r.Context(), username, timeControl)
	if err != nil {
		status, code := classify(err)
		writeError(w, status, code, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
