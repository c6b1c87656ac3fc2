package challenge

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/uwoguessr/uwoguessr-server/internal/dependencies/mocks"
	"github.com/uwoguessr/uwoguessr-server/internal/model"
	"github.com/uwoguessr/uwoguessr-server/internal/storage/memory"
	"github.com/uwoguessr/uwoguessr-server/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	random  *mocks.MockRandom
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.service = NewService(s.storage, s.clock, s.random, time.UTC, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) seedLocations(ids ...model.LocationID) {
	s.T().Helper()
	for _, id := range ids {
		err := s.storage.SaveLocation(s.ctx, &model.Location{ID: id, IsActive: true})
		s.Require().NoError(err)
	}
}

func (s *ServiceSuite) TestToday() {
	s.Equal(model.ChallengeDate("2024-07-01"), s.service.Today())
}

func (s *ServiceSuite) TestTodayUsesReferenceTimezone() {
	s.clock.Set(time.Date(2024, 7, 2, 1, 0, 0, 0, time.UTC))
	service := NewService(s.storage, s.clock, s.random, time.FixedZone("UTC-5", -5*3600), testutil.NopLogger())

	s.Equal(model.ChallengeDate("2024-07-01"), service.Today())
}

func (s *ServiceSuite) TestGetTodayChallengeCreatesOnFirstRequest() {
	s.seedLocations("a", "b", "c", "d", "e", "f", "g")

	challenge, err := s.service.GetTodayChallenge(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.ChallengeDate("2024-07-01"), challenge.Date)
	s.Len(challenge.LocationIDs, LocationsPerChallenge)

	// All five must be distinct seeded locations
	seen := map[model.LocationID]bool{}
	for _, id := range challenge.LocationIDs {
		s.False(seen[id])
		seen[id] = true
	}
}

func (s *ServiceSuite) TestGetTodayChallengeIsStable() {
	s.seedLocations("a", "b", "c", "d", "e", "f", "g")

	first, err := s.service.GetTodayChallenge(s.ctx)
	s.Require().NoError(err)

	second, err := s.service.GetTodayChallenge(s.ctx)
	s.Require().NoError(err)
	s.Equal(first.LocationIDs, second.LocationIDs)
}

func (s *ServiceSuite) TestGetTodayChallengeShufflesWithRandom() {
	s.seedLocations("a", "b", "c", "d", "e", "f")

	// With every swap targeting index 0 the sorted list [a..f] becomes
	// [b c d e f a] after the full Fisher-Yates pass
	s.random.QueueIntn(0, 0, 0, 0, 0)

	challenge, err := s.service.GetTodayChallenge(s.ctx)
	s.Require().NoError(err)
	s.Equal([]model.LocationID{"b", "c", "d", "e", "f"}, challenge.LocationIDs)
}

func (s *ServiceSuite) TestGetTodayChallengeNotEnoughLocations() {
	s.seedLocations("a", "b", "c", "d")

	_, err := s.service.GetTodayChallenge(s.ctx)
	s.ErrorIs(err, model.ErrNotEnoughLocations)
}

func (s *ServiceSuite) TestGetTodayChallengeIgnoresInactiveLocations() {
	s.seedLocations("a", "b", "c", "d")
	err := s.storage.SaveLocation(s.ctx, &model.Location{ID: "e", IsActive: false})
	s.Require().NoError(err)

	_, err = s.service.GetTodayChallenge(s.ctx)
	s.ErrorIs(err, model.ErrNotEnoughLocations)
}

func (s *ServiceSuite) TestGetTodayChallengeReturnsExistingWinner() {
	existing := &model.DailyChallenge{
		Date:        "2024-07-01",
		LocationIDs: []model.LocationID{"x1", "x2", "x3", "x4", "x5"},
		CreatedAt:   s.clock.Now(),
	}
	s.Require().NoError(s.storage.CreateChallenge(s.ctx, existing))

	challenge, err := s.service.GetTodayChallenge(s.ctx)
	s.Require().NoError(err)
	s.Equal(existing.LocationIDs, challenge.LocationIDs)
}

func (s *ServiceSuite) TestNewChallengeEachDay() {
	s.seedLocations("a", "b", "c", "d", "e")

	first, err := s.service.GetTodayChallenge(s.ctx)
	s.Require().NoError(err)

	s.clock.Advance(24 * time.Hour)

	second, err := s.service.GetTodayChallenge(s.ctx)
	s.Require().NoError(err)
	s.NotEqual(first.Date, second.Date)
}

func (s *ServiceSuite) TestChallengeLocationsPreservesOrder() {
	s.seedLocations("a", "b", "c", "d", "e")

	challenge := &model.DailyChallenge{
		Date:        "2024-07-01",
		LocationIDs: []model.LocationID{"c", "a", "e", "b", "d"},
	}

	locations, err := s.service.ChallengeLocations(s.ctx, challenge)
	s.Require().NoError(err)
	s.Require().Len(locations, 5)
	for i, id := range challenge.LocationIDs {
		s.Equal(id, locations[i].ID)
	}
}

func (s *ServiceSuite) TestLoadLocationsFromFile() {
	path := filepath.Join(s.T().TempDir(), "locations.json")
	content := `[
		{"id": "loc-1", "name": "Middlesex College", "image_url": "https://example.test/mc.jpg", "latitude": 43.0105, "longitude": -81.2767},
		{"name": "University College", "latitude": 43.0096, "longitude": -81.2737}
	]`
	s.Require().NoError(os.WriteFile(path, []byte(content), 0o644))

	count, err := s.service.LoadLocationsFromFile(s.ctx, path)
	s.Require().NoError(err)
	s.Equal(2, count)

	location, err := s.storage.GetLocation(s.ctx, "loc-1")
	s.Require().NoError(err)
	s.Equal("Middlesex College", location.Name)
	s.True(location.IsActive)

	// The unnamed-id entry got a generated id and is active too
	ids, err := s.storage.ListActiveLocationIDs(s.ctx)
	s.Require().NoError(err)
	s.Len(ids, 2)
}

func (s *ServiceSuite) TestLoadLocationsFromFileMissing() {
	_, err := s.service.LoadLocationsFromFile(s.ctx, filepath.Join(s.T().TempDir(), "nope.json"))
	s.Error(err)
}

func (s *ServiceSuite) TestLoadLocationsFromFileMalformed() {
	path := filepath.Join(s.T().TempDir(), "bad.json")
	s.Require().NoError(os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := s.service.LoadLocationsFromFile(s.ctx, path)
	s.Error(err)
}
