package model

import "errors"

// Common errors used across the application
var (
	// Location errors
	ErrLocationNotFound   = errors.New("location not found")
	ErrNotEnoughLocations = errors.New("not enough active locations for a challenge")

	// Challenge errors
	ErrChallengeNotFound = errors.New("challenge not found")
	ErrChallengeExists   = errors.New("challenge already exists for this date")

	// Submission errors
	ErrInvalidPlayerName    = errors.New("invalid player name")
	ErrInvalidGuessCount    = errors.New("wrong number of guesses")
	ErrInvalidChallengeDate = errors.New("invalid challenge date")
	ErrFutureChallengeDate  = errors.New("cannot submit for future dates")
	ErrAlreadyPlayed        = errors.New("device already submitted for this date")
	ErrNameTaken            = errors.New("player name already used for this date")
)
