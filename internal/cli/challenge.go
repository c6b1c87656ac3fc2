package cli

import (
	"github.com/spf13/cobra"
)

func newChallengeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "challenge",
		Short: "Fetch today's daily challenge",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Challenge

			if err := client.Get("/daily-challenge", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
