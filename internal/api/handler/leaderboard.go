package handler

import (
	"net/http"
	"strconv"

	"github.com/uwoguessr/uwoguessr-server/internal/api/apierr"
	"github.com/uwoguessr/uwoguessr-server/internal/api/response"
	"github.com/uwoguessr/uwoguessr-server/internal/services/leaderboard"
)

// LeaderboardHandler handles leaderboard queries
type LeaderboardHandler struct {
	leaderboardService *leaderboard.Service
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(leaderboardService *leaderboard.Service) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardService: leaderboardService,
	}
}

// List handles GET /leaderboard
func (h *LeaderboardHandler) List(w http.ResponseWriter, r *http.Request) {
	period, err := leaderboard.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			apierr.WriteError(w, apierr.NewInvalidRequestError("limit must be an integer"))
			return
		}
	}

	entries, err := h.leaderboardService.List(r.Context(), period, limit)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	wireEntries := make([]response.LeaderboardEntry, len(entries))
	for i, entry := range entries {
		wireEntries[i] = response.LeaderboardEntryFromModel(entry)
	}

	response.JSON(w, http.StatusOK, response.LeaderboardResponse{
		Period:  string(period),
		Entries: wireEntries,
	})
}
