package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-bundle-keeper/internal/service"
)

func newTokenCmd(opts *rootOptions) *cobra.Command {
	var subject string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an admin token signed with the node's token key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			token, err := service.NewAuthService(cfg.App).CreateToken(cmd.Context(), subject)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token.SignedString)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "admin", "operator name put in the token")
	return cmd
}
