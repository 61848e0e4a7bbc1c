package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-bundle-keeper/internal/config"
	"github.com/MKhiriev/go-bundle-keeper/internal/logger"
	"github.com/MKhiriev/go-bundle-keeper/internal/store"
)

// rootOptions are the flags shared by every subcommand.
type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "bundlectl",
		Short:         "Manage a bundle node: keys, routes, tokens and bundle files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "node JSON config file (env variables apply as well)")

	root.AddCommand(
		newKeygenCmd(),
		newExportKeysCmd(),
		newInspectCmd(),
		newDecryptCmd(),
		newRouteCmd(opts),
		newTokenCmd(opts),
	)
	return root
}

// loadConfig reads the node configuration the same way the node does.
func (o *rootOptions) loadConfig() (*config.StructuredConfig, error) {
	var args []string
	if o.configPath != "" {
		args = []string{"-c", o.configPath}
	}
	return config.GetStructuredConfig(args)
}

// openStorages opens the node database. It fails while the node itself
// holds the data directory.
func (o *rootOptions) openStorages(ctx context.Context) (*store.Storages, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	return store.NewStorages(ctx, cfg.Storage, cfg.Window.MaxBytes, logger.Nop())
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
