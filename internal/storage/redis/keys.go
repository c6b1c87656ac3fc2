package redis

import (
	"fmt"
	"strings"

	"github.com/uwoguessr/uwoguessr-server/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "guessr"

// Key generation functions for each entity type

// locationKey returns the Redis key for a Location
func locationKey(id model.LocationID) string {
	return fmt.Sprintf("%s:location:%s", keyPrefix, id)
}

// activeLocationsKey returns the Redis key for the SET of active location ids
func activeLocationsKey() string {
	return fmt.Sprintf("%s:idx:active_locations", keyPrefix)
}

// challengeKey returns the Redis key for a DailyChallenge
func challengeKey(date model.ChallengeDate) string {
	return fmt.Sprintf("%s:challenge:%s", keyPrefix, date)
}

// ledgerKey returns the Redis key for a daily device submission reservation
func ledgerKey(deviceID model.DeviceID, date model.ChallengeDate) string {
	return fmt.Sprintf("%s:ledger:%s:%s", keyPrefix, date, deviceID)
}

// entryKey returns the Redis key for a LeaderboardEntry
func entryKey(id string) string {
	return fmt.Sprintf("%s:lb:entry:%s", keyPrefix, id)
}

// dateIndexKey returns the Redis key for the per-date ZSET of entries by score
func dateIndexKey(date model.ChallengeDate) string {
	return fmt.Sprintf("%s:idx:lb:date:%s", keyPrefix, date)
}

// createdIndexKey returns the Redis key for the global ZSET of entries by creation time
func createdIndexKey() string {
	return fmt.Sprintf("%s:idx:lb:created", keyPrefix)
}

// scoreIndexKey returns the Redis key for the global ZSET of entries by score
func scoreIndexKey() string {
	return fmt.Sprintf("%s:idx:lb:score", keyPrefix)
}

// nameIndexKey returns the Redis key for the (date, lowercased name) uniqueness index
func nameIndexKey(date model.ChallengeDate, playerName string) string {
	return fmt.Sprintf("%s:idx:lb:name:%s:%s", keyPrefix, date, strings.ToLower(playerName))
}
