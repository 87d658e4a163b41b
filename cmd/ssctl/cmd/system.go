package cmd

import (
	"github.com/spf13/cobra"
)

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show gateway status and configured credentials",
		Example: `  ssctl status
  ssctl status --server http://gateway.internal:5002`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := newClient().Status(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput() {
				return outputJSON(out, s)
			}
			return printStatus(out, s)
		},
	}
}

func quotaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quota",
		Short: "Show SP-API daily usage per operation",
		Example: `  ssctl quota
  ssctl quota --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ops, err := newClient().Quota(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput() {
				return outputJSON(out, ops)
			}
			return printQuotaTable(out, ops)
		},
	}
}
