package request

import "github.com/uwoguessr/uwoguessr-server/internal/model"

// SubmitScoreRequest is the request body for submitting a daily score.
// Guesses carry only the pin coordinates; distances and scores are
// computed server-side.
type SubmitScoreRequest struct {
	PlayerName    string        `json:"player_name"`
	ChallengeDate string        `json:"challenge_date"`
	Guesses       []model.Guess `json:"guesses"`
}
