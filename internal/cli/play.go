package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plinkolabs/plinko/internal/confidential"
	"github.com/plinkolabs/plinko/internal/model"
)

func newCheckInCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkin",
		Short: "Perform the daily check-in for free turns",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result PlayerInfo

			if err := client.Post("/api/v1/checkin", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newBuyCmd() *cobra.Command {
	var count uint64

	cmd := &cobra.Command{
		Use:   "buy",
		Short: "Buy turns at the fixed price",
		RunE: func(cmd *cobra.Command, args []string) error {
			if count == 0 {
				return fmt.Errorf("--count must be positive")
			}

			// Attach the exact payment; anything else is rejected
			req := map[string]uint64{
				"count":        count,
				"payment_nano": count * uint64(model.TurnPrice),
			}
			var result PlayerInfo

			if err := client.Post("/api/v1/turns/purchase", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().Uint64Var(&count, "count", 1, "Number of turns to buy")

	return cmd
}

func newPlayCmd() *cobra.Command {
	var score uint64

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Consume a turn and drop a ball",
		Long: `Consume a turn and drop a ball.

With --score, the given score is encrypted under your local score key
and submitted confidentially: the server folds it into your accumulator
without ever seeing the plaintext. Use "plinkctl score <address>" with
the same key to read the running total back.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			if !cmd.Flags().Changed("score") {
				var result PlayResult
				if err := client.Post("/api/v1/plays", nil, &result); err != nil {
					return err
				}
				out.Print(result)
				return nil
			}

			keys, err := loadOrCreateKeyPair()
			if err != nil {
				return err
			}
			pub, err := confidential.MarshalPublicKey(keys.Public)
			if err != nil {
				return err
			}

			ct, proofData, err := confidential.Encrypt(keys.Public, score)
			if err != nil {
				return err
			}
			wire, err := ct.Marshal()
			if err != nil {
				return err
			}

			req := map[string]any{
				"public_key": pub,
				"score_c1":   wire.C1,
				"score_c2":   wire.C2,
				"proof":      proofData,
			}
			var result ScorePlayResult
			if err := client.Post("/api/v1/plays/confidential", req, &result); err != nil {
				return err
			}

			out.Print(result)
			return nil
		},
	}

	cmd.Flags().Uint64Var(&score, "score", 0, "Submit this score confidentially with the play")

	return cmd
}
