package submission

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/uwoguessr/uwoguessr-server/internal/dependencies/mocks"
	"github.com/uwoguessr/uwoguessr-server/internal/model"
	"github.com/uwoguessr/uwoguessr-server/internal/services/scoring"
	"github.com/uwoguessr/uwoguessr-server/internal/storage/memory"
	"github.com/uwoguessr/uwoguessr-server/internal/testutil"
)

type ControllerSuite struct {
	suite.Suite
	storage    *memory.Storage
	clock      *mocks.MockClock
	controller *Controller
	ctx        context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC))
	s.controller = NewController(s.storage, scoring.New(), s.clock, time.UTC, testutil.NopLogger())
	s.ctx = context.Background()

	for i, id := range []model.LocationID{"a", "b", "c", "d", "e"} {
		err := s.storage.SaveLocation(s.ctx, &model.Location{
			ID:        id,
			Name:      "Location " + string(id),
			Latitude:  43.0 + float64(i)*0.01,
			Longitude: -81.27,
			IsActive:  true,
		})
		s.Require().NoError(err)
	}
}

// exactGuesses returns guesses placed exactly on each true location
func (s *ControllerSuite) exactGuesses() []model.Guess {
	guesses := make([]model.Guess, 5)
	for i, id := range []model.LocationID{"a", "b", "c", "d", "e"} {
		guesses[i] = model.Guess{
			LocationID: id,
			Latitude:   43.0 + float64(i)*0.01,
			Longitude:  -81.27,
		}
	}
	return guesses
}

func (s *ControllerSuite) TestSubmitPerfectRun() {
	result, err := s.controller.Submit(s.ctx, "device-0123456789", "Alice", "2024-07-01", s.exactGuesses())
	s.Require().NoError(err)

	s.Equal(25000, result.TotalScore)
	s.Equal([]int{5000, 5000, 5000, 5000, 5000}, result.RoundScores)
	s.Equal("Alice", result.Entry.PlayerName)
	s.Equal(model.ChallengeDate("2024-07-01"), result.Entry.ChallengeDate)
	s.NotEmpty(result.Entry.ID)
	s.Equal(s.clock.Now(), result.Entry.CreatedAt)
}

func (s *ControllerSuite) TestSubmitFarGuessesScoreZero() {
	guesses := make([]model.Guess, 5)
	for i, id := range []model.LocationID{"a", "b", "c", "d", "e"} {
		// Roughly a degree off, far outside the 500m scoring radius
		guesses[i] = model.Guess{LocationID: id, Latitude: 44.0, Longitude: -80.0}
	}

	result, err := s.controller.Submit(s.ctx, "device-0123456789", "Alice", "2024-07-01", guesses)
	s.Require().NoError(err)
	s.Equal(0, result.TotalScore)
	s.Equal([]int{0, 0, 0, 0, 0}, result.RoundScores)
}

func (s *ControllerSuite) TestSubmitPersistsEntry() {
	_, err := s.controller.Submit(s.ctx, "device-0123456789", "Alice", "2024-07-01", s.exactGuesses())
	s.Require().NoError(err)

	entries, err := s.storage.ListLeaderboardByDate(s.ctx, "2024-07-01", 10)
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal("Alice", entries[0].PlayerName)
	s.Equal(25000, entries[0].Score)
}

func (s *ControllerSuite) TestSubmitTrimsPlayerName() {
	result, err := s.controller.Submit(s.ctx, "device-0123456789", "  Alice  ", "2024-07-01", s.exactGuesses())
	s.Require().NoError(err)
	s.Equal("Alice", result.Entry.PlayerName)
}

func (s *ControllerSuite) TestSubmitRejectsEmptyName() {
	_, err := s.controller.Submit(s.ctx, "device-0123456789", "   ", "2024-07-01", s.exactGuesses())
	s.ErrorIs(err, model.ErrInvalidPlayerName)
}

func (s *ControllerSuite) TestSubmitRejectsOverlongName() {
	name := ""
	for i := 0; i <= MaxPlayerNameLength; i++ {
		name += "x"
	}

	_, err := s.controller.Submit(s.ctx, "device-0123456789", name, "2024-07-01", s.exactGuesses())
	s.ErrorIs(err, model.ErrInvalidPlayerName)
}

func (s *ControllerSuite) TestSubmitRejectsWrongGuessCount() {
	_, err := s.controller.Submit(s.ctx, "device-0123456789", "Alice", "2024-07-01", s.exactGuesses()[:4])
	s.ErrorIs(err, model.ErrInvalidGuessCount)

	_, err = s.controller.Submit(s.ctx, "device-0123456789", "Alice", "2024-07-01", nil)
	s.ErrorIs(err, model.ErrInvalidGuessCount)
}

func (s *ControllerSuite) TestSubmitRejectsMalformedDate() {
	_, err := s.controller.Submit(s.ctx, "device-0123456789", "Alice", "July 1st", s.exactGuesses())
	s.ErrorIs(err, model.ErrInvalidChallengeDate)
}

func (s *ControllerSuite) TestSubmitRejectsFutureDate() {
	_, err := s.controller.Submit(s.ctx, "device-0123456789", "Alice", "2024-07-02", s.exactGuesses())
	s.ErrorIs(err, model.ErrFutureChallengeDate)
}

func (s *ControllerSuite) TestSubmitAllowsPastDate() {
	_, err := s.controller.Submit(s.ctx, "device-0123456789", "Alice", "2024-06-30", s.exactGuesses())
	s.NoError(err)
}

func (s *ControllerSuite) TestSubmitTodayUsesReferenceTimezone() {
	// 01:00 UTC on July 2 is still July 1 in a UTC-5 zone
	s.clock.Set(time.Date(2024, 7, 2, 1, 0, 0, 0, time.UTC))
	controller := NewController(s.storage, scoring.New(), s.clock, time.FixedZone("UTC-5", -5*3600), testutil.NopLogger())

	_, err := controller.Submit(s.ctx, "device-0123456789", "Alice", "2024-07-02", s.exactGuesses())
	s.ErrorIs(err, model.ErrFutureChallengeDate)

	_, err = controller.Submit(s.ctx, "device-0123456789", "Alice", "2024-07-01", s.exactGuesses())
	s.NoError(err)
}

func (s *ControllerSuite) TestSubmitSecondAttemptSameDayConflicts() {
	_, err := s.controller.Submit(s.ctx, "device-0123456789", "Alice", "2024-07-01", s.exactGuesses())
	s.Require().NoError(err)

	_, err = s.controller.Submit(s.ctx, "device-0123456789", "Bob", "2024-07-01", s.exactGuesses())
	s.ErrorIs(err, model.ErrAlreadyPlayed)
}

func (s *ControllerSuite) TestSubmitSameDeviceNextDaySucceeds() {
	_, err := s.controller.Submit(s.ctx, "device-0123456789", "Alice", "2024-07-01", s.exactGuesses())
	s.Require().NoError(err)

	s.clock.Advance(24 * time.Hour)

	_, err = s.controller.Submit(s.ctx, "device-0123456789", "Alice", "2024-07-02", s.exactGuesses())
	s.NoError(err)
}

func (s *ControllerSuite) TestSubmitDuplicateNameConflicts() {
	_, err := s.controller.Submit(s.ctx, "device-0123456789", "Alice", "2024-07-01", s.exactGuesses())
	s.Require().NoError(err)

	_, err = s.controller.Submit(s.ctx, "device-9876543210", "alice", "2024-07-01", s.exactGuesses())
	s.ErrorIs(err, model.ErrNameTaken)
}

func (s *ControllerSuite) TestSubmitDuplicateNameReleasesReservation() {
	_, err := s.controller.Submit(s.ctx, "device-0123456789", "Alice", "2024-07-01", s.exactGuesses())
	s.Require().NoError(err)

	_, err = s.controller.Submit(s.ctx, "device-9876543210", "Alice", "2024-07-01", s.exactGuesses())
	s.Require().ErrorIs(err, model.ErrNameTaken)

	// Failed submission must not consume the device's daily slot
	reserved, err := s.storage.HasDailySubmission(s.ctx, "device-9876543210", "2024-07-01")
	s.Require().NoError(err)
	s.False(reserved)

	_, err = s.controller.Submit(s.ctx, "device-9876543210", "Bob", "2024-07-01", s.exactGuesses())
	s.NoError(err)
}

func (s *ControllerSuite) TestSubmitUnknownLocationReleasesReservation() {
	guesses := s.exactGuesses()
	guesses[2].LocationID = "unknown"

	_, err := s.controller.Submit(s.ctx, "device-0123456789", "Alice", "2024-07-01", guesses)
	s.Require().ErrorIs(err, model.ErrLocationNotFound)

	reserved, err := s.storage.HasDailySubmission(s.ctx, "device-0123456789", "2024-07-01")
	s.Require().NoError(err)
	s.False(reserved)

	// No leaderboard entry leaks from the failed attempt
	entries, err := s.storage.ListLeaderboardByDate(s.ctx, "2024-07-01", 10)
	s.Require().NoError(err)
	s.Empty(entries)
}

func (s *ControllerSuite) TestSubmitValidationFailuresLeaveNoReservation() {
	_, err := s.controller.Submit(s.ctx, "device-0123456789", "", "2024-07-01", s.exactGuesses())
	s.Require().Error(err)

	reserved, err := s.storage.HasDailySubmission(s.ctx, "device-0123456789", "2024-07-01")
	s.Require().NoError(err)
	s.False(reserved)
}
