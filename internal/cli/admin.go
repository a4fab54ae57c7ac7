package cli

import (
	"github.com/spf13/cobra"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Owner-only treasury commands",
	}

	cmd.AddCommand(newAdminWithdrawCmd())
	cmd.AddCommand(newAdminTransferCmd())
	cmd.AddCommand(newAdminOwnerCmd())

	return cmd
}

func newAdminWithdrawCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "withdraw",
		Short: "Withdraw the full treasury balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Withdrawal

			if err := client.Post("/api/v1/admin/withdraw", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newAdminTransferCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transfer <address>",
		Short: "Transfer ownership to another address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"new_owner": args[0]}
			var result Owner

			if err := client.Post("/api/v1/admin/transfer-ownership", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newAdminOwnerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "owner",
		Short: "Show the current owner",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Owner

			if err := client.Get("/api/v1/admin/owner", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
