package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mangestic/ctfctl/internal/model"
)

func newSubmitCmd() *cobra.Command {
	var challengeID, flag string

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a flag for a challenge",
		RunE: func(cmd *cobra.Command, args []string) error {
			if challengeID == "" || flag == "" {
				return fmt.Errorf("--challenge and --flag are required")
			}

			if err := gateway.SubmitFlag(cmd.Context(), model.ChallengeID(challengeID), flag); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Flag benar!")
			return nil
		},
	}

	cmd.Flags().StringVar(&challengeID, "challenge", "", "Challenge ID (required)")
	cmd.Flags().StringVar(&flag, "flag", "", "Flag to submit (required)")
	_ = cmd.MarkFlagRequired("challenge")
	_ = cmd.MarkFlagRequired("flag")

	return cmd
}
