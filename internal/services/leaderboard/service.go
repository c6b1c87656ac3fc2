package leaderboard

import (
	"context"
	"errors"
	"time"

	"github.com/uwoguessr/uwoguessr-server/internal/dependencies/clock"
	"github.com/uwoguessr/uwoguessr-server/internal/model"
	"github.com/uwoguessr/uwoguessr-server/internal/storage"
)

// ErrInvalidPeriod indicates an unrecognized leaderboard period
var ErrInvalidPeriod = errors.New("invalid leaderboard period")

// Period selects the time window for a leaderboard query
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodAllTime Period = "all-time"
)

// DefaultLimit is the number of entries returned when no limit is given
const DefaultLimit = 100

// weeklyWindow is the lookback for the weekly period
const weeklyWindow = 7 * 24 * time.Hour

// ParsePeriod validates a period string, defaulting to daily when empty
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodDaily, PeriodWeekly, PeriodAllTime:
		return Period(s), nil
	case "":
		return PeriodDaily, nil
	default:
		return "", ErrInvalidPeriod
	}
}

// Service reads leaderboard standings over daily, weekly, and all-time windows
type Service struct {
	storage  storage.Storage
	clock    clock.Clock
	timezone *time.Location
}

// NewService creates a new leaderboard service
func NewService(store storage.Storage, clk clock.Clock, timezone *time.Location) *Service {
	return &Service{
		storage:  store,
		clock:    clk,
		timezone: timezone,
	}
}

// List returns entries for the given period sorted by score descending.
// A non-positive limit falls back to DefaultLimit.
func (s *Service) List(ctx context.Context, period Period, limit int) ([]*model.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	switch period {
	case PeriodDaily:
		today := model.ChallengeDateAt(s.clock.Now().In(s.timezone))
		return s.storage.ListLeaderboardByDate(ctx, today, limit)
	case PeriodWeekly:
		return s.storage.ListLeaderboardSince(ctx, s.clock.Now().Add(-weeklyWindow), limit)
	case PeriodAllTime:
		return s.storage.ListLeaderboardAllTime(ctx, limit)
	default:
		return nil, ErrInvalidPeriod
	}
}
