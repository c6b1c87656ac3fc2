package model

import "time"

// LocationID identifies a location in the catalog
type LocationID string

// DeviceID is the anonymous identifier carried inside a device token
type DeviceID string

// Coordinate is a (latitude, longitude) pair in degrees
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Location is a catalog entry with a photo and its true coordinates
type Location struct {
	ID        LocationID `json:"id"`
	Name      string     `json:"name"`
	ImageURL  string     `json:"image_url"`
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
}

// Coordinate returns the location's true coordinate
func (l *Location) Coordinate() Coordinate {
	return Coordinate{Latitude: l.Latitude, Longitude: l.Longitude}
}

// Guess is one round's client-submitted pin for a target location
type Guess struct {
	LocationID LocationID `json:"location_id"`
	Latitude   float64    `json:"guess_lat"`
	Longitude  float64    `json:"guess_lng"`
}

// Coordinate returns the guessed coordinate
func (g Guess) Coordinate() Coordinate {
	return Coordinate{Latitude: g.Latitude, Longitude: g.Longitude}
}

// DailyChallenge is the set of locations to guess for a calendar day
type DailyChallenge struct {
	Date        ChallengeDate `json:"date"`
	LocationIDs []LocationID  `json:"location_ids"`
	CreatedAt   time.Time     `json:"created_at"`
}

// LeaderboardEntry is an append-only scored result for a challenge day
type LeaderboardEntry struct {
	ID            string        `json:"id"`
	PlayerName    string        `json:"player_name"`
	Score         int           `json:"score"`
	ChallengeDate ChallengeDate `json:"challenge_date"`
	CreatedAt     time.Time     `json:"created_at"`
}

// DailyDeviceSubmission is the ledger row gating one scored submission
// per device per calendar day
type DailyDeviceSubmission struct {
	DeviceID      DeviceID      `json:"device_id"`
	ChallengeDate ChallengeDate `json:"challenge_date"`
}
