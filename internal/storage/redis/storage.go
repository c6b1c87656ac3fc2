package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/uwoguessr/uwoguessr-server/internal/model"
	"github.com/uwoguessr/uwoguessr-server/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Location operations

func (s *Storage) SaveLocation(ctx context.Context, location *model.Location) error {
	data, err := json.Marshal(location)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + active index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, locationKey(location.ID), data, 0)
	if location.IsActive {
		pipe.SAdd(ctx, activeLocationsKey(), string(location.ID))
	} else {
		pipe.SRem(ctx, activeLocationsKey(), string(location.ID))
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetLocation(ctx context.Context, id model.LocationID) (*model.Location, error) {
	data, err := s.client.Get(ctx, locationKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrLocationNotFound
		}
		return nil, err
	}

	var location model.Location
	if err := json.Unmarshal(data, &location); err != nil {
		return nil, err
	}
	return &location, nil
}

func (s *Storage) GetLocations(ctx context.Context, ids []model.LocationID) ([]*model.Location, error) {
	if len(ids) == 0 {
		return []*model.Location{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = locationKey(id)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	locations := make([]*model.Location, len(ids))
	for i, val := range values {
		if val == nil {
			return nil, fmt.Errorf("%w: %s", model.ErrLocationNotFound, ids[i])
		}
		var location model.Location
		if err := json.Unmarshal([]byte(val.(string)), &location); err != nil {
			return nil, err
		}
		locations[i] = &location
	}

	return locations, nil
}

func (s *Storage) ListActiveLocationIDs(ctx context.Context) ([]model.LocationID, error) {
	members, err := s.client.SMembers(ctx, activeLocationsKey()).Result()
	if err != nil {
		return nil, err
	}

	ids := make([]model.LocationID, len(members))
	for i, m := range members {
		ids[i] = model.LocationID(m)
	}

	// SMEMBERS order is unspecified; sort so callers shuffle from a stable base
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// Challenge operations

func (s *Storage) GetChallenge(ctx context.Context, date model.ChallengeDate) (*model.DailyChallenge, error) {
	data, err := s.client.Get(ctx, challengeKey(date)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrChallengeNotFound
		}
		return nil, err
	}

	var challenge model.DailyChallenge
	if err := json.Unmarshal(data, &challenge); err != nil {
		return nil, err
	}
	return &challenge, nil
}

func (s *Storage) CreateChallenge(ctx context.Context, challenge *model.DailyChallenge) error {
	data, err := json.Marshal(challenge)
	if err != nil {
		return err
	}

	// SETNX: first writer wins, concurrent creators observe the conflict
	ok, err := s.client.SetNX(ctx, challengeKey(challenge.Date), data, 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		return model.ErrChallengeExists
	}
	return nil
}

// Daily device submission ledger

func (s *Storage) ReserveDailySubmission(ctx context.Context, deviceID model.DeviceID, date model.ChallengeDate) error {
	// SETNX is the atomic unique insert: the insert itself fails on
	// conflict, so concurrent requests for the same (device, date) cannot
	// both reserve.
	ok, err := s.client.SetNX(ctx, ledgerKey(deviceID, date), "1", 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		return model.ErrAlreadyPlayed
	}
	return nil
}

func (s *Storage) ReleaseDailySubmission(ctx context.Context, deviceID model.DeviceID, date model.ChallengeDate) error {
	return s.client.Del(ctx, ledgerKey(deviceID, date)).Err()
}

func (s *Storage) HasDailySubmission(ctx context.Context, deviceID model.DeviceID, date model.ChallengeDate) (bool, error) {
	exists, err := s.client.Exists(ctx, ledgerKey(deviceID, date)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

// Leaderboard operations

func (s *Storage) SaveLeaderboardEntry(ctx context.Context, entry *model.LeaderboardEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index updates
	pipe := s.client.Pipeline()
	pipe.Set(ctx, entryKey(entry.ID), data, 0)
	pipe.ZAdd(ctx, dateIndexKey(entry.ChallengeDate), redis.Z{Score: float64(entry.Score), Member: entry.ID})
	pipe.ZAdd(ctx, scoreIndexKey(), redis.Z{Score: float64(entry.Score), Member: entry.ID})
	pipe.ZAdd(ctx, createdIndexKey(), redis.Z{Score: float64(entry.CreatedAt.Unix()), Member: entry.ID})
	pipe.Set(ctx, nameIndexKey(entry.ChallengeDate, entry.PlayerName), entry.ID, 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) LeaderboardNameExists(ctx context.Context, date model.ChallengeDate, playerName string) (bool, error) {
	exists, err := s.client.Exists(ctx, nameIndexKey(date, playerName)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

func (s *Storage) ListLeaderboardByDate(ctx context.Context, date model.ChallengeDate, limit int) ([]*model.LeaderboardEntry, error) {
	ids, err := s.client.ZRevRange(ctx, dateIndexKey(date), 0, rangeStop(limit)).Result()
	if err != nil {
		return nil, err
	}
	return s.fetchEntries(ctx, ids)
}

func (s *Storage) ListLeaderboardSince(ctx context.Context, since time.Time, limit int) ([]*model.LeaderboardEntry, error) {
	ids, err := s.client.ZRangeByScore(ctx, createdIndexKey(), &redis.ZRangeBy{
		Min: fmt.Sprintf("%d", since.Unix()),
		Max: "+inf",
	}).Result()
	if err != nil {
		return nil, err
	}

	entries, err := s.fetchEntries(ctx, ids)
	if err != nil {
		return nil, err
	}

	// The created index orders by time; re-sort by score for the leaderboard
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (s *Storage) ListLeaderboardAllTime(ctx context.Context, limit int) ([]*model.LeaderboardEntry, error) {
	ids, err := s.client.ZRevRange(ctx, scoreIndexKey(), 0, rangeStop(limit)).Result()
	if err != nil {
		return nil, err
	}
	return s.fetchEntries(ctx, ids)
}

// fetchEntries loads leaderboard entries by id, preserving order
func (s *Storage) fetchEntries(ctx context.Context, ids []string) ([]*model.LeaderboardEntry, error) {
	if len(ids) == 0 {
		return []*model.LeaderboardEntry{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = entryKey(id)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]*model.LeaderboardEntry, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // Index may briefly reference a deleted entry
		}
		var entry model.LeaderboardEntry
		if err := json.Unmarshal([]byte(val.(string)), &entry); err != nil {
			continue // Skip invalid data
		}
		entries = append(entries, &entry)
	}

	return entries, nil
}

// rangeStop converts a limit to a ZRANGE stop index (-1 means everything)
func rangeStop(limit int) int64 {
	if limit <= 0 {
		return -1
	}
	return int64(limit - 1)
}
