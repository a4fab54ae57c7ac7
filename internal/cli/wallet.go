package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newWalletCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Wallet session commands",
	}

	cmd.AddCommand(newWalletConnectCmd())
	cmd.AddCommand(newWalletDisconnectCmd())

	return cmd
}

func newWalletConnectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "connect <address>",
		Short: "Connect a wallet address and save the session token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"address": args[0]}
			var result Session

			if err := client.Post("/api/v1/wallet/connect", req, &result); err != nil {
				return err
			}

			// Save token
			if err := cfg.SaveToken(result.SessionToken); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	return cmd
}

func newWalletDisconnectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disconnect",
		Short: "End the current session and discard the saved token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post("/api/v1/wallet/disconnect", nil, nil); err != nil {
				return err
			}

			if err := cfg.ClearToken(); err != nil {
				return fmt.Errorf("failed to clear token: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Disconnected")
			return nil
		},
	}
}
