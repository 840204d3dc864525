package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mangestic/ctfctl/internal/client"
)

var (
	cfg     *Config
	gateway *client.Gateway
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "ctfctl",
		Short: "CLI tool for the CTF platform API",
		Long: `ctfctl is a CLI tool for interacting with the CTF platform JSON API.

It supports account registration and login, browsing the leaderboard and
challenge list, contributing challenges, and submitting flags. The console
subcommand starts an interactive session.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			gateway = client.NewGateway(cfg.ServerURL)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: CTFCTL_SERVER)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newAccountCmd())
	rootCmd.AddCommand(newBoardCmd())
	rootCmd.AddCommand(newChallengesCmd())
	rootCmd.AddCommand(newContributeCmd())
	rootCmd.AddCommand(newSubmitCmd())
	rootCmd.AddCommand(newConsoleCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
