package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/uwoguessr/uwoguessr-server/internal/model"
	"github.com/uwoguessr/uwoguessr-server/internal/services/devicetoken"
	"github.com/uwoguessr/uwoguessr-server/internal/services/leaderboard"
)

// ErrorResponse is the JSON error body. Clients read the message from the
// flat "error" field.
type ErrorResponse struct {
	Error string `json:"error"`
}

// httpError combines an HTTP status code with a client-facing message
type httpError struct {
	status  int
	message string
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.message})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, devicetoken.ErrInvalidToken):
		return &httpError{http.StatusUnauthorized, "Missing or invalid device token"}
	case errors.Is(err, model.ErrInvalidPlayerName):
		return &httpError{http.StatusBadRequest, "Invalid player name"}
	case errors.Is(err, model.ErrInvalidGuessCount):
		return &httpError{http.StatusBadRequest, "Invalid request: player_name, challenge_date, and 5 guesses required"}
	case errors.Is(err, model.ErrInvalidChallengeDate):
		return &httpError{http.StatusBadRequest, "Invalid challenge date"}
	case errors.Is(err, model.ErrFutureChallengeDate):
		return &httpError{http.StatusBadRequest, "Cannot submit scores for future dates"}
	case errors.Is(err, model.ErrAlreadyPlayed):
		return &httpError{http.StatusConflict, "You already played the daily challenge today."}
	case errors.Is(err, model.ErrNameTaken):
		return &httpError{http.StatusConflict, "Name already used today. Try a different name."}
	case errors.Is(err, model.ErrLocationNotFound):
		return &httpError{http.StatusBadRequest, "Unknown location in guesses"}
	case errors.Is(err, leaderboard.ErrInvalidPeriod):
		return &httpError{http.StatusBadRequest, "Invalid leaderboard period"}

	// Misconfiguration and exhaustion surface as server faults
	case errors.Is(err, devicetoken.ErrSecretNotConfigured):
		return &httpError{http.StatusInternalServerError, "Internal server error"}
	case errors.Is(err, model.ErrNotEnoughLocations):
		return &httpError{http.StatusInternalServerError, "Internal server error"}

	default:
		return &httpError{http.StatusInternalServerError, "Internal server error"}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, message}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, "Missing or invalid device token"}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, "Internal server error"}
}
