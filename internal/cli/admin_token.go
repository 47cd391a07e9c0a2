package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/layer-3/redeemer/adapters/tokenizer"
	"github.com/layer-3/redeemer/core"
	"github.com/layer-3/redeemer/internal/config"
)

func newAdminTokenCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "admin-token",
		Short: "Issue a bearer token for the configured administrator",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(root.configPath)
			if err != nil {
				return err
			}

			admin, err := core.ParseAddress(cfg.Admin.Address)
			if err != nil {
				return err
			}

			token, err := tokenizer.NewJWTTokenizer([]byte(cfg.Admin.Secret), cfg.Admin.TokenTTL).AddressToToken(admin)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
}
