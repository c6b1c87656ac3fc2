package handler

import (
	"encoding/json"
	"net/http"

	"github.com/uwoguessr/uwoguessr-server/internal/api/apierr"
	"github.com/uwoguessr/uwoguessr-server/internal/api/middleware"
	"github.com/uwoguessr/uwoguessr-server/internal/api/request"
	"github.com/uwoguessr/uwoguessr-server/internal/api/response"
	"github.com/uwoguessr/uwoguessr-server/internal/services/submission"
)

// SubmissionHandler handles daily score submissions
type SubmissionHandler struct {
	controller *submission.Controller
}

// NewSubmissionHandler creates a new submission handler
func NewSubmissionHandler(controller *submission.Controller) *SubmissionHandler {
	return &SubmissionHandler{
		controller: controller,
	}
}

// Submit handles POST /submit-daily-score
func (h *SubmissionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	deviceID := middleware.MustGetDeviceID(r.Context())

	var req request.SubmitScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	result, err := h.controller.Submit(r.Context(), deviceID, req.PlayerName, req.ChallengeDate, req.Guesses)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SubmitScoreResponse{
		Success:         true,
		Entry:           response.LeaderboardEntryFromModel(result.Entry),
		CalculatedScore: result.TotalScore,
		RoundScores:     result.RoundScores,
	})
}
