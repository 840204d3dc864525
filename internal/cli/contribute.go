package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mangestic/ctfctl/internal/model"
	"github.com/mangestic/ctfctl/internal/session"
)

func newContributeCmd() *cobra.Command {
	var title, description, flag, tags string
	var points int

	cmd := &cobra.Command{
		Use:   "contribute",
		Short: "Contribute a new challenge",
		RunE: func(cmd *cobra.Command, args []string) error {
			if title == "" || description == "" || flag == "" {
				return fmt.Errorf("--title, --description, and --flag are required")
			}

			draft := model.ChallengeDraft{
				Title:       title,
				Description: description,
				Flag:        flag,
				Points:      points,
				Tags:        session.ParseTags(tags),
			}

			if err := gateway.CreateChallenge(cmd.Context(), draft); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Tantangan dikirim!")
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Challenge title (required)")
	cmd.Flags().StringVar(&description, "description", "", "Challenge description (required)")
	cmd.Flags().StringVar(&flag, "flag", "", "The correct flag (required)")
	cmd.Flags().IntVar(&points, "points", 100, "Points awarded for solving")
	cmd.Flags().StringVar(&tags, "tags", "", "Comma-separated tags")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("description")
	_ = cmd.MarkFlagRequired("flag")

	return cmd
}
