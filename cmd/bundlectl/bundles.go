package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-bundle-keeper/internal/bundle"
	"github.com/MKhiriev/go-bundle-keeper/internal/crypto"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <bundle-file>",
		Short: "Print the header of a bundle file and check its signature without decrypting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, h, err := bundle.ReadFile(args[0])
			if err != nil {
				return err
			}
			if err = crypto.VerifyHeader(b.Header, b.Payload, b.Signature); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
			}
			return printJSON(cmd.OutOrStdout(), h)
		},
	}
}

func newDecryptCmd() *cobra.Command {
	var keysDir, out string

	cmd := &cobra.Command{
		Use:   "decrypt <bundle-file>",
		Short: "Verify and decrypt a bundle addressed to this identity into a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := crypto.LoadIdentity(keysDir)
			if err != nil {
				return err
			}
			sc, err := crypto.NewSecurityContext(id)
			if err != nil {
				return err
			}

			b, _, err := bundle.ReadFile(args[0])
			if err != nil {
				return err
			}
			plaintext, err := crypto.NewEngine(sc).Open(b.Header, b.Payload, b.Signature)
			if err != nil {
				return err
			}
			payload, err := bundle.DecodePayload(plaintext)
			if err != nil {
				return err
			}
			if err = bundle.Extract(payload, out); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "bundle %s from %s: %d acknowledgements, %d adus written to %s\n",
				b.ID, b.Header.SenderID, len(payload.Acks), len(payload.ADUs), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&keysDir, "keys", "", "identity key directory of the recipient")
	cmd.Flags().StringVarP(&out, "out", "o", ".", "output directory")
	_ = cmd.MarkFlagRequired("keys")
	return cmd
}
