package response

import (
	"time"

	"github.com/uwoguessr/uwoguessr-server/internal/model"
)

// TokenResponse carries a freshly issued device token
type TokenResponse struct {
	Token string `json:"token"`
}

// LeaderboardEntry is the wire form of a leaderboard entry
type LeaderboardEntry struct {
	ID            string    `json:"id"`
	PlayerName    string    `json:"player_name"`
	Score         int       `json:"score"`
	ChallengeDate string    `json:"challenge_date"`
	CreatedAt     time.Time `json:"created_at"`
}

// LeaderboardEntryFromModel converts a model entry to its wire form
func LeaderboardEntryFromModel(entry *model.LeaderboardEntry) LeaderboardEntry {
	return LeaderboardEntry{
		ID:            entry.ID,
		PlayerName:    entry.PlayerName,
		Score:         entry.Score,
		ChallengeDate: string(entry.ChallengeDate),
		CreatedAt:     entry.CreatedAt,
	}
}

// SubmitScoreResponse is the response for a successful score submission
type SubmitScoreResponse struct {
	Success         bool             `json:"success"`
	Entry           LeaderboardEntry `json:"entry"`
	CalculatedScore int              `json:"calculated_score"`
	RoundScores     []int            `json:"round_scores"`
}

// Location is the wire form of a challenge location. True coordinates are
// included: the client needs them to render the result map after each round.
type Location struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	ImageURL  string  `json:"image_url"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// LocationFromModel converts a model location to its wire form
func LocationFromModel(location *model.Location) Location {
	return Location{
		ID:        string(location.ID),
		Name:      location.Name,
		ImageURL:  location.ImageURL,
		Latitude:  location.Latitude,
		Longitude: location.Longitude,
	}
}

// DailyChallengeResponse is the response for the daily challenge
type DailyChallengeResponse struct {
	Date      string     `json:"date"`
	Locations []Location `json:"locations"`
}

// LeaderboardResponse is the response for a leaderboard query
type LeaderboardResponse struct {
	Period  string             `json:"period"`
	Entries []LeaderboardEntry `json:"entries"`
}
