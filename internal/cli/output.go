package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case TokenResult:
		o.printTokenResult(v)
	case Challenge:
		o.printChallenge(v)
	case SubmitResult:
		o.printSubmitResult(v)
	case Leaderboard:
		o.printLeaderboard(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// TokenResult response type (matches API)
type TokenResult struct {
	Token string `json:"token"`
}

// Location response type
type Location struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	ImageURL  string  `json:"image_url"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Challenge response type
type Challenge struct {
	Date      string     `json:"date"`
	Locations []Location `json:"locations"`
}

// Entry response type
type Entry struct {
	ID            string `json:"id"`
	PlayerName    string `json:"player_name"`
	Score         int    `json:"score"`
	ChallengeDate string `json:"challenge_date"`
}

// SubmitResult response type
type SubmitResult struct {
	Success         bool  `json:"success"`
	Entry           Entry `json:"entry"`
	CalculatedScore int   `json:"calculated_score"`
	RoundScores     []int `json:"round_scores"`
}

// Leaderboard response type
type Leaderboard struct {
	Period  string  `json:"period"`
	Entries []Entry `json:"entries"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printTokenResult(t TokenResult) {
	fmt.Printf("Token: %s\n", t.Token)
}

func (o *Output) printChallenge(c Challenge) {
	fmt.Printf("Challenge: %s\n", c.Date)
	fmt.Printf("Locations (%d):\n", len(c.Locations))
	for i, loc := range c.Locations {
		fmt.Printf("  %d. %s (%s)\n", i+1, loc.Name, loc.ID)
		fmt.Printf("     %s\n", loc.ImageURL)
	}
}

func (o *Output) printSubmitResult(r SubmitResult) {
	fmt.Printf("Score: %d\n", r.CalculatedScore)
	fmt.Print("Rounds:")
	for _, score := range r.RoundScores {
		fmt.Printf(" %d", score)
	}
	fmt.Println()
	fmt.Printf("Entry: %s (%s)\n", r.Entry.PlayerName, r.Entry.ID)
}

func (o *Output) printLeaderboard(l Leaderboard) {
	fmt.Printf("Leaderboard (%s):\n", l.Period)
	if len(l.Entries) == 0 {
		fmt.Println("  (empty)")
		return
	}
	for i, entry := range l.Entries {
		fmt.Printf("  %2d. %-20s %6d  %s\n", i+1, entry.PlayerName, entry.Score, entry.ChallengeDate)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
