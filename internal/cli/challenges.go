package cli

import (
	"github.com/spf13/cobra"
)

func newChallengesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "challenges",
		Short: "List published challenges",
		RunE: func(cmd *cobra.Command, args []string) error {
			challenges, err := gateway.ListChallenges(cmd.Context())
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(challenges)
			return nil
		},
	}

	return cmd
}
