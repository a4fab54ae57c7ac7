package cli

import (
	"github.com/spf13/cobra"

	"github.com/plinkolabs/plinko/internal/confidential"
	"github.com/plinkolabs/plinko/internal/model"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <address>",
		Short: "Show a player's ledger record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result PlayerInfo

			if err := client.Get("/api/v1/players/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newScoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score <address>",
		Short: "Fetch and decrypt a player's confidential score",
		Long: `Fetch a player's confidential score accumulator and decrypt it with
the local score key. Decryption only succeeds for the key the scores
were submitted under; anyone else sees only the opaque ciphertext.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result ScoreQueryResult

			if err := client.Get("/api/v1/players/"+args[0]+"/score", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)

			if len(result.C1) == 0 {
				out.Print(ScoreResult{Address: result.Address, Score: 0})
				return nil
			}

			keys, err := loadOrCreateKeyPair()
			if err != nil {
				return err
			}

			ct, err := confidential.Unmarshal(model.ScoreCiphertext{C1: result.C1, C2: result.C2})
			if err != nil {
				return err
			}
			score, err := confidential.Decrypt(keys.Private, ct)
			if err != nil {
				return err
			}

			out.Print(ScoreResult{Address: result.Address, Score: score})
			return nil
		},
	}
}

func newLeaderboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the games-played leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Leaderboard

			if err := client.Get("/api/v1/leaderboard", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the total player count",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result TotalPlayers

			if err := client.Get("/api/v1/stats/players", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newBalanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show the treasury balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Balance

			if err := client.Get("/api/v1/balance", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
