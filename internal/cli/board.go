package cli

import (
	"github.com/spf13/cobra"
)

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show the leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := gateway.ListLeaderboard(cmd.Context())
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(entries)
			return nil
		},
	}

	return cmd
}
