package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "plinkctl",
		Short: "CLI tool for the plinko ledger API",
		Long: `plinkctl is a CLI tool for interacting with the plinko ledger JSON API.

It supports all API operations including wallet sessions, daily check-ins,
turn purchases, plays (plain and confidential), ledger queries, owner
administration, and real-time SSE event streaming.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load token from file if not provided via flag/env
			if err := cfg.LoadToken(); err != nil {
				return err
			}

			// Create HTTP client
			client = NewClient(cfg.ServerURL, cfg.Token)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: PLINKO_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.Token, "token", cfg.Token, "Session token (env: PLINKO_TOKEN)")
	rootCmd.PersistentFlags().StringVar(&cfg.TokenFile, "token-file", cfg.TokenFile, "Token file path (env: PLINKO_TOKEN_FILE)")
	rootCmd.PersistentFlags().StringVar(&cfg.KeyFile, "key-file", cfg.KeyFile, "Score key file path (env: PLINKO_KEY_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")

	// Add subcommands
	rootCmd.AddCommand(newWalletCmd())
	rootCmd.AddCommand(newCheckInCmd())
	rootCmd.AddCommand(newBuyCmd())
	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newInfoCmd())
	rootCmd.AddCommand(newScoreCmd())
	rootCmd.AddCommand(newLeaderboardCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newBalanceCmd())
	rootCmd.AddCommand(newAdminCmd())
	rootCmd.AddCommand(newEventsCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
