package scoring

import (
	"math"

	"github.com/uwoguessr/uwoguessr-server/internal/model"
)

// Scoring constants
const (
	// EarthRadiusMeters is the fixed Earth radius used by the haversine formula
	EarthRadiusMeters = 6371000

	// MaxScore is the score for a perfect guess
	MaxScore = 5000

	// MaxDistanceMeters is the cutoff radius beyond which a guess scores zero
	MaxDistanceMeters = 500
)

// Service computes distances and scores for guesses.
// It is pure and total: no state, no I/O, no error cases.
type Service struct{}

// New creates a new scoring service
func New() *Service {
	return &Service{}
}

// Distance returns the great-circle distance between two coordinates in
// meters, using the haversine formula. Symmetric, non-negative, and zero
// iff both coordinates are identical.
func (s *Service) Distance(a, b model.Coordinate) float64 {
	dLat := radians(b.Latitude - a.Latitude)
	dLon := radians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(a.Latitude))*math.Cos(radians(b.Latitude))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * EarthRadiusMeters * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// Score converts a distance in meters to a point value in [0, MaxScore]
// under a linear decay to MaxDistanceMeters. Rounding is half-away-from-zero
// (math.Round), matching JS Math.round for the non-negative values this
// curve produces. Monotonically non-increasing in distance.
func (s *Service) Score(distanceMeters float64) int {
	if distanceMeters > MaxDistanceMeters {
		return 0
	}
	return int(math.Round(MaxScore * (1 - distanceMeters/MaxDistanceMeters)))
}

// ScoreGuess scores a single guess against the true location coordinate,
// returning the distance in meters and the resulting score.
func (s *Service) ScoreGuess(guess model.Guess, location *model.Location) (float64, int) {
	distance := s.Distance(guess.Coordinate(), location.Coordinate())
	return distance, s.Score(distance)
}

func radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// Interface for dependency injection
type ServiceInterface interface {
	Distance(a, b model.Coordinate) float64
	Score(distanceMeters float64) int
	ScoreGuess(guess model.Guess, location *model.Location) (float64, int)
}

var _ ServiceInterface = (*Service)(nil)
