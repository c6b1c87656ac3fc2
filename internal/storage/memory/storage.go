package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/uwoguessr/uwoguessr-server/internal/model"
	"github.com/uwoguessr/uwoguessr-server/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	locations  map[model.LocationID]*model.Location
	challenges map[model.ChallengeDate]*model.DailyChallenge
	ledger     map[ledgerKey]struct{}
	entries    []*model.LeaderboardEntry
	nameIndex  map[nameKey]struct{}
}

type ledgerKey struct {
	deviceID model.DeviceID
	date     model.ChallengeDate
}

type nameKey struct {
	date model.ChallengeDate
	name string // lowercased
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		locations:  make(map[model.LocationID]*model.Location),
		challenges: make(map[model.ChallengeDate]*model.DailyChallenge),
		ledger:     make(map[ledgerKey]struct{}),
		nameIndex:  make(map[nameKey]struct{}),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Location operations

func (s *Storage) SaveLocation(ctx context.Context, location *model.Location) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locations[location.ID] = location
	return nil
}

func (s *Storage) GetLocation(ctx context.Context, id model.LocationID) (*model.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	location, ok := s.locations[id]
	if !ok {
		return nil, model.ErrLocationNotFound
	}
	return location, nil
}

func (s *Storage) GetLocations(ctx context.Context, ids []model.LocationID) ([]*model.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	locations := make([]*model.Location, len(ids))
	for i, id := range ids {
		location, ok := s.locations[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", model.ErrLocationNotFound, id)
		}
		locations[i] = location
	}
	return locations, nil
}

func (s *Storage) ListActiveLocationIDs(ctx context.Context) ([]model.LocationID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]model.LocationID, 0, len(s.locations))
	for id, location := range s.locations {
		if location.IsActive {
			ids = append(ids, id)
		}
	}

	// Deterministic order so callers can shuffle reproducibly
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// Challenge operations

func (s *Storage) GetChallenge(ctx context.Context, date model.ChallengeDate) (*model.DailyChallenge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	challenge, ok := s.challenges[date]
	if !ok {
		return nil, model.ErrChallengeNotFound
	}
	return challenge, nil
}

func (s *Storage) CreateChallenge(ctx context.Context, challenge *model.DailyChallenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.challenges[challenge.Date]; ok {
		return model.ErrChallengeExists
	}
	s.challenges[challenge.Date] = challenge
	return nil
}

// Daily device submission ledger

func (s *Storage) ReserveDailySubmission(ctx context.Context, deviceID model.DeviceID, date model.ChallengeDate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := ledgerKey{deviceID: deviceID, date: date}
	if _, ok := s.ledger[key]; ok {
		return model.ErrAlreadyPlayed
	}
	s.ledger[key] = struct{}{}
	return nil
}

func (s *Storage) ReleaseDailySubmission(ctx context.Context, deviceID model.DeviceID, date model.ChallengeDate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ledger, ledgerKey{deviceID: deviceID, date: date})
	return nil
}

func (s *Storage) HasDailySubmission(ctx context.Context, deviceID model.DeviceID, date model.ChallengeDate) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.ledger[ledgerKey{deviceID: deviceID, date: date}]
	return ok, nil
}

// Leaderboard operations

func (s *Storage) SaveLeaderboardEntry(ctx context.Context, entry *model.LeaderboardEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	s.nameIndex[nameKey{date: entry.ChallengeDate, name: strings.ToLower(entry.PlayerName)}] = struct{}{}
	return nil
}

func (s *Storage) LeaderboardNameExists(ctx context.Context, date model.ChallengeDate, playerName string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.nameIndex[nameKey{date: date, name: strings.ToLower(playerName)}]
	return ok, nil
}

func (s *Storage) ListLeaderboardByDate(ctx context.Context, date model.ChallengeDate, limit int) ([]*model.LeaderboardEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterEntries(limit, func(e *model.LeaderboardEntry) bool {
		return e.ChallengeDate == date
	}), nil
}

func (s *Storage) ListLeaderboardSince(ctx context.Context, since time.Time, limit int) ([]*model.LeaderboardEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterEntries(limit, func(e *model.LeaderboardEntry) bool {
		return !e.CreatedAt.Before(since)
	}), nil
}

func (s *Storage) ListLeaderboardAllTime(ctx context.Context, limit int) ([]*model.LeaderboardEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterEntries(limit, func(*model.LeaderboardEntry) bool { return true }), nil
}

// filterEntries returns matching entries sorted by score descending.
// Caller must hold at least a read lock.
func (s *Storage) filterEntries(limit int, match func(*model.LeaderboardEntry) bool) []*model.LeaderboardEntry {
	result := make([]*model.LeaderboardEntry, 0)
	for _, entry := range s.entries {
		if match(entry) {
			result = append(result, entry)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Score > result[j].Score
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}
