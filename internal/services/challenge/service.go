package challenge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/uwoguessr/uwoguessr-server/internal/dependencies/clock"
	"github.com/uwoguessr/uwoguessr-server/internal/dependencies/random"
	"github.com/uwoguessr/uwoguessr-server/internal/model"
	"github.com/uwoguessr/uwoguessr-server/internal/storage"
)

// LocationsPerChallenge is the number of locations in every daily challenge
const LocationsPerChallenge = 5

// Service manages the daily challenge lifecycle: deterministic lookup for a
// date, lazy creation on first request, and the location catalog behind it.
type Service struct {
	storage  storage.Storage
	clock    clock.Clock
	random   random.Random
	timezone *time.Location
	logger   *slog.Logger
}

// NewService creates a new challenge service
func NewService(store storage.Storage, clk clock.Clock, rnd random.Random, timezone *time.Location, logger *slog.Logger) *Service {
	return &Service{
		storage:  store,
		clock:    clk,
		random:   rnd,
		timezone: timezone,
		logger:   logger,
	}
}

// Today returns the current challenge date in the service's reference timezone
func (s *Service) Today() model.ChallengeDate {
	return model.ChallengeDateAt(s.clock.Now().In(s.timezone))
}

// GetTodayChallenge returns today's challenge, creating it on first request.
// Creation races resolve via the storage-level unique insert: the loser
// re-reads the winner's challenge, so all callers see the same five
// locations for the day.
func (s *Service) GetTodayChallenge(ctx context.Context) (*model.DailyChallenge, error) {
	date := s.Today()

	challenge, err := s.storage.GetChallenge(ctx, date)
	if err == nil {
		return challenge, nil
	}
	if !errors.Is(err, model.ErrChallengeNotFound) {
		return nil, err
	}

	created, err := s.createChallenge(ctx, date)
	if err == nil {
		return created, nil
	}
	if errors.Is(err, model.ErrChallengeExists) {
		return s.storage.GetChallenge(ctx, date)
	}
	return nil, err
}

func (s *Service) createChallenge(ctx context.Context, date model.ChallengeDate) (*model.DailyChallenge, error) {
	ids, err := s.storage.ListActiveLocationIDs(ctx)
	if err != nil {
		return nil, err
	}
	if len(ids) < LocationsPerChallenge {
		return nil, model.ErrNotEnoughLocations
	}

	// Fisher-Yates, then take the head
	for i := len(ids) - 1; i > 0; i-- {
		j := s.random.Intn(i + 1)
		ids[i], ids[j] = ids[j], ids[i]
	}

	challenge := &model.DailyChallenge{
		Date:        date,
		LocationIDs: ids[:LocationsPerChallenge],
		CreatedAt:   s.clock.Now(),
	}

	if err := s.storage.CreateChallenge(ctx, challenge); err != nil {
		return nil, err
	}

	s.logger.Info("daily challenge created", slog.String("date", string(date)))
	return challenge, nil
}

// ChallengeLocations resolves a challenge's locations in challenge order
func (s *Service) ChallengeLocations(ctx context.Context, challenge *model.DailyChallenge) ([]*model.Location, error) {
	return s.storage.GetLocations(ctx, challenge.LocationIDs)
}

// seedLocation is the on-disk shape of one location in a seed file
type seedLocation struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	ImageURL  string  `json:"image_url"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// LoadLocationsFromFile loads a JSON array of locations into storage,
// marking each active. Entries without an id get a generated one.
func (s *Service) LoadLocationsFromFile(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading locations file: %w", err)
	}

	var seeds []seedLocation
	if err := json.Unmarshal(data, &seeds); err != nil {
		return 0, fmt.Errorf("parsing locations file: %w", err)
	}

	now := s.clock.Now()
	for _, seed := range seeds {
		id := seed.ID
		if id == "" {
			id = uuid.NewString()
		}
		location := &model.Location{
			ID:        model.LocationID(id),
			Name:      seed.Name,
			ImageURL:  seed.ImageURL,
			Latitude:  seed.Latitude,
			Longitude: seed.Longitude,
			IsActive:  true,
			CreatedAt: now,
		}
		if err := s.storage.SaveLocation(ctx, location); err != nil {
			return 0, fmt.Errorf("saving location %q: %w", seed.Name, err)
		}
	}

	s.logger.Info("locations loaded", slog.Int("count", len(seeds)), slog.String("path", path))
	return len(seeds), nil
}
