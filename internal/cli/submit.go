package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newSubmitCmd() *cobra.Command {
	var name, date string
	var guesses []string

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit today's guesses for scoring",
		Long: `Submit five guesses for the daily challenge.

Each --guess is "location_id:lat:lng", in challenge order, for example:

  guessrctl submit --name Alice --date 2024-07-01 \
    --guess loc-1:43.0105:-81.2767 --guess loc-2:43.0096:-81.2737 ...`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Token == "" {
				return fmt.Errorf("no device token; run 'guessrctl token' first")
			}

			parsed := make([]map[string]any, len(guesses))
			for i, raw := range guesses {
				guess, err := parseGuess(raw)
				if err != nil {
					return err
				}
				parsed[i] = guess
			}

			req := map[string]any{
				"player_name":    name,
				"challenge_date": date,
				"guesses":        parsed,
			}
			var result SubmitResult

			if err := client.Post("/submit-daily-score", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Player name for the leaderboard (required)")
	cmd.Flags().StringVar(&date, "date", "", "Challenge date YYYY-MM-DD (required)")
	cmd.Flags().StringArrayVar(&guesses, "guess", nil, "Guess as location_id:lat:lng (repeat 5 times)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("guess")

	return cmd
}

// parseGuess parses a "location_id:lat:lng" flag value
func parseGuess(raw string) (map[string]any, error) {
	parts := strings.Split(raw, ":")
	if len(parts) != 3 {
		return nil, fmt.Errorf("invalid guess %q: expected location_id:lat:lng", raw)
	}

	lat, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude in guess %q", raw)
	}
	lng, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude in guess %q", raw)
	}

	return map[string]any{
		"location_id": parts[0],
		"guess_lat":   lat,
		"guess_lng":   lng,
	}, nil
}
