package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mangestic/ctfctl/internal/client"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		RunE: func(cmd *cobra.Command, args []string) error {
			httpClient := client.NewClient(cfg.ServerURL)

			status, body, err := httpClient.Get(cmd.Context(), "/api/health")
			if err != nil {
				return err
			}
			if status < 200 || status >= 300 {
				return fmt.Errorf("health check failed with status %d", status)
			}

			var result HealthResult
			if err := json.Unmarshal(body, &result); err != nil {
				return fmt.Errorf("unexpected health response: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
