package model

import "time"

// ChallengeDateLayout is the wire format for challenge dates
const ChallengeDateLayout = "2006-01-02"

// ChallengeDate is a calendar date string in YYYY-MM-DD form.
// Lexicographic comparison of two ChallengeDates matches chronological order.
type ChallengeDate string

// ParseChallengeDate validates a YYYY-MM-DD date string
func ParseChallengeDate(s string) (ChallengeDate, error) {
	if _, err := time.Parse(ChallengeDateLayout, s); err != nil {
		return "", ErrInvalidChallengeDate
	}
	return ChallengeDate(s), nil
}

// ChallengeDateAt returns the calendar date of t in t's own location
func ChallengeDateAt(t time.Time) ChallengeDate {
	return ChallengeDate(t.Format(ChallengeDateLayout))
}

// After reports whether d is strictly after other
func (d ChallengeDate) After(other ChallengeDate) bool {
	return string(d) > string(other)
}
