// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"path/filepath"
)

// validate checks that the merged [StructuredConfig] satisfies the invariants
// shared by both roles. Role-specific requirements are checked by
// [StructuredConfig.ValidateServer] and [StructuredConfig.ValidateClient].
func (cfg *StructuredConfig) validate() error {
	if cfg.App.Role != "" && cfg.App.Role != RoleClient && cfg.App.Role != RoleServer {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidAppConfigs, cfg.App.Role)
	}

	if cfg.Window.MaxBytes <= 0 || cfg.Window.MaxCount <= 0 || cfg.Window.MaxBundlesInFlight <= 0 {
		return ErrInvalidWindowConfigs
	}

	if cfg.Storage.DB.Driver != DriverSQLite && cfg.Storage.DB.Driver != DriverPostgres {
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
	}

	return nil
}

// ValidateServer checks the settings a bundle server cannot start without.
func (cfg *StructuredConfig) ValidateServer() error {
	if cfg.Storage.DB.DSN == "" || cfg.Storage.Files.DataDir == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.KeysDir == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.Workers.TransferInterval < 0 || cfg.Workers.DeliveryInterval < 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

// ValidateClient checks the settings a bundle client cannot start without.
func (cfg *StructuredConfig) ValidateClient() error {
	if cfg.Storage.DB.DSN == "" || cfg.Storage.Files.DataDir == "" {
		return ErrInvalidStorageConfigs
	}
	if cfg.Storage.DB.Driver == DriverSQLite && filepath.Base(cfg.Storage.DB.DSN) == ":memory:" {
		return fmt.Errorf("%w: in-memory database loses cursors", ErrInvalidStorageConfigs)
	}

	if cfg.App.KeysDir == "" || cfg.App.ServerKeysFile == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.Adapter.ServerURL == "" && cfg.Adapter.TransportDir == "" {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.TransferInterval <= 0 || cfg.Workers.DeliveryInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

// GetServerConfig loads the configuration of a bundle server.
func GetServerConfig(args []string) (*StructuredConfig, error) {
	cfg, err := GetStructuredConfig(args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}
	cfg.App.Role = RoleServer

	return cfg, cfg.ValidateServer()
}

// GetClientConfig loads the configuration of a bundle client.
func GetClientConfig(args []string) (*StructuredConfig, error) {
	cfg, err := GetStructuredConfig(args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}
	cfg.App.Role = RoleClient

	return cfg, cfg.ValidateClient()
}
