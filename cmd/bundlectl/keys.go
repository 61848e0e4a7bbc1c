package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-bundle-keeper/internal/crypto"
	"github.com/MKhiriev/go-bundle-keeper/models"
)

func newKeygenCmd() *cobra.Command {
	var keysDir, role string

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Create the node identity in a key directory, or show the existing one",
		RunE: func(cmd *cobra.Command, args []string) error {
			r := models.Role(role)
			if !r.Valid() {
				return fmt.Errorf("%w: %q", crypto.ErrInvalidRole, role)
			}
			id, err := crypto.LoadOrCreateIdentity(keysDir, r)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s identity %s\n", id.Role, id.PeerID())
			return nil
		},
	}
	cmd.Flags().StringVar(&keysDir, "keys", "", "identity key directory")
	cmd.Flags().StringVar(&role, "role", string(models.RoleClient), "node role (client|server)")
	_ = cmd.MarkFlagRequired("keys")
	return cmd
}

func newExportKeysCmd() *cobra.Command {
	var keysDir, out string

	cmd := &cobra.Command{
		Use:   "export-keys",
		Short: "Write the public keys of an identity for its peers to import",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := crypto.LoadIdentity(keysDir)
			if err != nil {
				return err
			}
			if out == "" {
				return printJSON(cmd.OutOrStdout(), id.PublicKeys())
			}
			if err = crypto.WritePublicKeys(out, id.PublicKeys()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "public keys of %s written to %s\n", id.PeerID(), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&keysDir, "keys", "", "identity key directory")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (stdout when empty)")
	_ = cmd.MarkFlagRequired("keys")
	return cmd
}
