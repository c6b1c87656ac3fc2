package storage

import (
	"context"
	"time"

	"github.com/uwoguessr/uwoguessr-server/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Location operations
	SaveLocation(ctx context.Context, location *model.Location) error
	GetLocation(ctx context.Context, id model.LocationID) (*model.Location, error)
	// GetLocations resolves every id, preserving order. It fails with
	// model.ErrLocationNotFound if any id is missing.
	GetLocations(ctx context.Context, ids []model.LocationID) ([]*model.Location, error)
	ListActiveLocationIDs(ctx context.Context) ([]model.LocationID, error)

	// Challenge operations
	GetChallenge(ctx context.Context, date model.ChallengeDate) (*model.DailyChallenge, error)
	// CreateChallenge is first-writer-wins: it fails with
	// model.ErrChallengeExists if a challenge for the date already exists.
	CreateChallenge(ctx context.Context, challenge *model.DailyChallenge) error

	// Daily device submission ledger.
	// ReserveDailySubmission is an atomic unique insert: it fails with
	// model.ErrAlreadyPlayed if a row for (device, date) already exists,
	// and must be safe under concurrent calls for the same pair.
	ReserveDailySubmission(ctx context.Context, deviceID model.DeviceID, date model.ChallengeDate) error
	ReleaseDailySubmission(ctx context.Context, deviceID model.DeviceID, date model.ChallengeDate) error
	HasDailySubmission(ctx context.Context, deviceID model.DeviceID, date model.ChallengeDate) (bool, error)

	// Leaderboard operations
	SaveLeaderboardEntry(ctx context.Context, entry *model.LeaderboardEntry) error
	// LeaderboardNameExists matches player names case-insensitively.
	LeaderboardNameExists(ctx context.Context, date model.ChallengeDate, playerName string) (bool, error)
	ListLeaderboardByDate(ctx context.Context, date model.ChallengeDate, limit int) ([]*model.LeaderboardEntry, error)
	ListLeaderboardSince(ctx context.Context, since time.Time, limit int) ([]*model.LeaderboardEntry, error)
	ListLeaderboardAllTime(ctx context.Context, limit int) ([]*model.LeaderboardEntry, error)
}
