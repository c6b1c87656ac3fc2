package submission

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/uwoguessr/uwoguessr-server/internal/dependencies/clock"
	"github.com/uwoguessr/uwoguessr-server/internal/model"
	"github.com/uwoguessr/uwoguessr-server/internal/services/scoring"
	"github.com/uwoguessr/uwoguessr-server/internal/storage"
)

// Submission constants
const (
	// GuessesPerSubmission is the exact number of guesses a submission carries
	GuessesPerSubmission = 5

	// MaxPlayerNameLength caps the trimmed player name
	MaxPlayerNameLength = 100
)

// Result is the outcome of a successful submission
type Result struct {
	Entry       *model.LeaderboardEntry
	TotalScore  int
	RoundScores []int
}

// Controller runs the daily submission protocol: it gates one scored
// submission per device per calendar day and computes the authoritative
// score server-side. Client-submitted distances or scores are never read.
type Controller struct {
	storage  storage.Storage
	scoring  scoring.ServiceInterface
	clock    clock.Clock
	timezone *time.Location
	logger   *slog.Logger
}

// NewController creates a new submission controller. The timezone is the
// fixed reference timezone used to decide what "today" means, guarding
// against client clock manipulation.
func NewController(store storage.Storage, scoringService scoring.ServiceInterface, clk clock.Clock, timezone *time.Location, logger *slog.Logger) *Controller {
	return &Controller{
		storage:  store,
		scoring:  scoringService,
		clock:    clk,
		timezone: timezone,
		logger:   logger,
	}
}

// Submit validates and scores a submission for an already-verified device.
//
// The ledger reservation is inserted before scoring; every failure after it
// triggers a compensating deletion so a retried submission can succeed.
// The one-per-device-per-day invariant rests on the reservation insert
// failing atomically on conflict, never on a read-then-write check.
func (c *Controller) Submit(ctx context.Context, deviceID model.DeviceID, playerName string, challengeDate string, guesses []model.Guess) (*Result, error) {
	name := strings.TrimSpace(playerName)
	if name == "" || len(name) > MaxPlayerNameLength {
		return nil, model.ErrInvalidPlayerName
	}

	if len(guesses) != GuessesPerSubmission {
		return nil, model.ErrInvalidGuessCount
	}

	date, err := model.ParseChallengeDate(challengeDate)
	if err != nil {
		return nil, err
	}

	today := model.ChallengeDateAt(c.clock.Now().In(c.timezone))
	if date.After(today) {
		return nil, model.ErrFutureChallengeDate
	}

	// Reserve the device's slot for the day. This is the only race-safe
	// gate: a conflicting insert means the device already played.
	if err := c.storage.ReserveDailySubmission(ctx, deviceID, date); err != nil {
		return nil, err
	}

	result, err := c.scoreAndCommit(ctx, deviceID, name, date, guesses)
	if err != nil {
		c.release(ctx, deviceID, date)
		return nil, err
	}

	return result, nil
}

// scoreAndCommit runs the steps between reservation and commit. Any error
// it returns causes the caller to release the reservation.
func (c *Controller) scoreAndCommit(ctx context.Context, deviceID model.DeviceID, name string, date model.ChallengeDate, guesses []model.Guess) (*Result, error) {
	// Secondary gate: one entry per (case-insensitive) name per day.
	// Unlike the device ledger this is a plain read, not an atomic insert.
	taken, err := c.storage.LeaderboardNameExists(ctx, date, name)
	if err != nil {
		return nil, fmt.Errorf("checking player name: %w", err)
	}
	if taken {
		return nil, model.ErrNameTaken
	}

	ids := make([]model.LocationID, len(guesses))
	for i, g := range guesses {
		ids[i] = g.LocationID
	}

	locations, err := c.storage.GetLocations(ctx, ids)
	if err != nil {
		return nil, err
	}

	// Rescore every round from the resolved true coordinates
	roundScores := make([]int, len(guesses))
	totalScore := 0
	for i, g := range guesses {
		_, score := c.scoring.ScoreGuess(g, locations[i])
		roundScores[i] = score
		totalScore += score
	}

	entry := &model.LeaderboardEntry{
		ID:            uuid.NewString(),
		PlayerName:    name,
		Score:         totalScore,
		ChallengeDate: date,
		CreatedAt:     c.clock.Now(),
	}

	if err := c.storage.SaveLeaderboardEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("saving leaderboard entry: %w", err)
	}

	c.logger.Info("daily score submitted",
		slog.String("device_id", string(deviceID)),
		slog.String("challenge_date", string(date)),
		slog.Int("score", totalScore),
	)

	return &Result{
		Entry:       entry,
		TotalScore:  totalScore,
		RoundScores: roundScores,
	}, nil
}

// release deletes the provisional ledger reservation. A failed release is
// logged but never masks the primary error.
func (c *Controller) release(ctx context.Context, deviceID model.DeviceID, date model.ChallengeDate) {
	if err := c.storage.ReleaseDailySubmission(ctx, deviceID, date); err != nil {
		c.logger.Error("failed to release daily submission reservation",
			slog.String("device_id", string(deviceID)),
			slog.String("challenge_date", string(date)),
			slog.String("error", err.Error()),
		)
	}
}
