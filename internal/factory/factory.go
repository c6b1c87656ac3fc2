package factory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/uwoguessr/uwoguessr-server/internal/dependencies/clock"
	"github.com/uwoguessr/uwoguessr-server/internal/dependencies/random"
	"github.com/uwoguessr/uwoguessr-server/internal/services/challenge"
	"github.com/uwoguessr/uwoguessr-server/internal/services/devicetoken"
	"github.com/uwoguessr/uwoguessr-server/internal/services/leaderboard"
	"github.com/uwoguessr/uwoguessr-server/internal/services/scoring"
	"github.com/uwoguessr/uwoguessr-server/internal/services/submission"
	"github.com/uwoguessr/uwoguessr-server/internal/storage"
	"github.com/uwoguessr/uwoguessr-server/internal/storage/memory"
	redisstorage "github.com/uwoguessr/uwoguessr-server/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// DefaultTimezone is the reference timezone deciding what "today" means.
// Fixed server-side so client clock changes cannot shift the challenge day.
const DefaultTimezone = "America/Toronto"

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock    clock.Clock
	Random   random.Random
	Timezone *time.Location

	// Services
	ScoringService       *scoring.Service
	TokenService         *devicetoken.Service
	ChallengeService     *challenge.Service
	LeaderboardService   *leaderboard.Service
	SubmissionController *submission.Controller
}

// Config holds configuration for the application factory
type Config struct {
	// TokenSecret is the HMAC signing secret for device tokens
	TokenSecret string
	// Timezone is the IANA name of the reference timezone (optional)
	// If empty, defaults to DefaultTimezone
	Timezone string
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	tzName := cfg.Timezone
	if tzName == "" {
		tzName = DefaultTimezone
	}
	timezone, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", tzName, err)
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	return newWithDependencies(store, clk, rnd, timezone, cfg.TokenSecret, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, timezone *time.Location, tokenSecret string, logger *slog.Logger) *App {
	// Create services
	scoringService := scoring.New()
	tokenService := devicetoken.New(devicetoken.Config{Secret: tokenSecret}, clk)
	challengeService := challenge.NewService(store, clk, rnd, timezone, logger)
	leaderboardService := leaderboard.NewService(store, clk, timezone)
	submissionController := submission.NewController(store, scoringService, clk, timezone, logger)

	return &App{
		Storage:              store,
		Clock:                clk,
		Random:               rnd,
		Timezone:             timezone,
		ScoringService:       scoringService,
		TokenService:         tokenService,
		ChallengeService:     challengeService,
		LeaderboardService:   leaderboardService,
		SubmissionController: submissionController,
	}
}
