package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

func newLeaderboardCmd() *cobra.Command {
	var period string
	var limit int

	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			query := url.Values{}
			if period != "" {
				query.Set("period", period)
			}
			if limit > 0 {
				query.Set("limit", fmt.Sprintf("%d", limit))
			}

			path := "/leaderboard"
			if encoded := query.Encode(); encoded != "" {
				path += "?" + encoded
			}

			var result Leaderboard
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&period, "period", "daily", "Period: daily, weekly, all-time")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum entries to return")

	return cmd
}
