package handler

import (
	"net/http"

	"github.com/uwoguessr/uwoguessr-server/internal/api/apierr"
	"github.com/uwoguessr/uwoguessr-server/internal/api/response"
	"github.com/uwoguessr/uwoguessr-server/internal/services/challenge"
)

// ChallengeHandler handles daily challenge retrieval
type ChallengeHandler struct {
	challengeService *challenge.Service
}

// NewChallengeHandler creates a new challenge handler
func NewChallengeHandler(challengeService *challenge.Service) *ChallengeHandler {
	return &ChallengeHandler{
		challengeService: challengeService,
	}
}

// Get handles GET /daily-challenge
func (h *ChallengeHandler) Get(w http.ResponseWriter, r *http.Request) {
	daily, err := h.challengeService.GetTodayChallenge(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	locations, err := h.challengeService.ChallengeLocations(r.Context(), daily)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	wireLocations := make([]response.Location, len(locations))
	for i, location := range locations {
		wireLocations[i] = response.LocationFromModel(location)
	}

	response.JSON(w, http.StatusOK, response.DailyChallengeResponse{
		Date:      string(daily.Date),
		Locations: wireLocations,
	})
}
