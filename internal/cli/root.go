// Package cli implements the redeemer command tree.
package cli

import (
	"context"

	"github.com/spf13/cobra"
)

type rootFlags struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "redeemer",
		Short:         "Redeem signed token vouchers",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "path to a YAML config file")

	cmd.AddCommand(
		newServeCmd(flags),
		newSignCmd(),
		newDigestCmd(),
		newAdminTokenCmd(flags),
		newTokenIDCmd(),
	)

	return cmd
}

// Execute runs the root command
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}
