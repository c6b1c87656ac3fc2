package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Issue a new device token and save it",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result TokenResult

			if err := client.Post("/issue-device-token", nil, &result); err != nil {
				return err
			}

			// Save token for subsequent commands
			if err := cfg.SaveToken(result.Token); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
