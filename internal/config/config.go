// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// Defaults applied to zero-valued fields after all sources are merged.
const (
	DefaultWindowMaxCount           = 10
	DefaultWindowMaxBytes     int64 = 1 << 20
	DefaultMaxBundlesInFlight       = 3
	DefaultTransferInterval         = time.Minute
	DefaultDeliveryInterval         = 10 * time.Second
	DefaultRequestTimeout           = 30 * time.Second
	DefaultDBDriver                 = DriverSQLite
	DefaultTokenIssuer              = "bundle-keeper"
	DefaultTokenDuration            = time.Hour
)

// StructuredConfig is the top-level configuration container of a bundle node.
// It aggregates all sub-configurations and is populated by merging values from
// environment variables, command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env:       direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds node identity, key locations and admin token parameters.
	App App `envPrefix:"APP_"`

	// Storage holds the cursor database and the payload file store settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Window bounds the size of a single bundle and the bundles in flight.
	Window Window `envPrefix:"WINDOW_"`

	// Server holds the HTTP listener settings.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the settings of the outbound transport clients.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds the tick intervals of the background jobs.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds node-level settings.
type App struct {
	// Role is either "client" or "server".
	// Env: APP_ROLE
	Role string `env:"ROLE"`

	// KeysDir is the directory with the node's own identity key files.
	// Env: APP_KEYS_DIR
	KeysDir string `env:"KEYS_DIR"`

	// ServerKeysFile is the published key file of the server. Only clients
	// need it.
	// Env: APP_SERVER_KEYS_FILE
	ServerKeysFile string `env:"SERVER_KEYS_FILE"`

	// TokenSignKey signs and verifies admin JWT tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim of admin tokens.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is the lifetime of issued admin tokens.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// Version is exposed via /api/version.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the persistence settings.
type Storage struct {
	DB    DB    `envPrefix:"DB_"`
	Files Files `envPrefix:"FILES_"`
}

// DB holds connection settings for the cursor database.
type DB struct {
	// Driver is "sqlite3" or "pgx".
	// Env: STORAGE_DB_DRIVER
	Driver string `env:"DRIVER"`

	// DSN is a file path for sqlite3 or a connection URI for pgx.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Files holds the payload store location.
type Files struct {
	// DataDir is the root of ADU payload and bundle files.
	// Env: STORAGE_FILES_DATA_DIR
	DataDir string `env:"DATA_DIR"`
}

// Window holds the bundle sizing limits.
type Window struct {
	// MaxBytes is the byte budget of the ADUs in one bundle.
	// Env: WINDOW_MAX_BYTES
	MaxBytes int64 `env:"MAX_BYTES"`

	// MaxCount is the ADU count budget of one bundle.
	// Env: WINDOW_MAX_COUNT
	MaxCount int `env:"MAX_COUNT"`

	// MaxBundlesInFlight caps unacknowledged bundles per peer.
	// Env: WINDOW_MAX_BUNDLES_IN_FLIGHT
	MaxBundlesInFlight int `env:"MAX_BUNDLES_IN_FLIGHT"`
}

// Server holds the inbound HTTP settings.
type Server struct {
	// HTTPAddress is the listen address in "host:port" format.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds outbound transport settings.
type Adapter struct {
	// ServerURL is the base URL of the bundle server for the HTTP transport.
	// Env: ADAPTER_SERVER_URL
	ServerURL string `env:"SERVER_URL"`

	// TransportDir is the root of the carried-media transport. When set the
	// directory transport is used instead of HTTP.
	// Env: ADAPTER_TRANSPORT_DIR
	TransportDir string `env:"TRANSPORT_DIR"`

	// TransportID identifies this carrier to the server inventory.
	// Env: ADAPTER_TRANSPORT_ID
	TransportID string `env:"TRANSPORT_ID"`

	// RequestTimeout bounds a single outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds the background job intervals.
type Workers struct {
	// TransferInterval is the period of the poll/send cycle.
	// Env: WORKERS_TRANSFER_INTERVAL
	TransferInterval time.Duration `env:"TRANSFER_INTERVAL"`

	// DeliveryInterval is the period of ADU dispatch to app routes.
	// Env: WORKERS_DELIVERY_INTERVAL
	DeliveryInterval time.Duration `env:"DELIVERY_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the configuration from all
// sources in priority order (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(args).
		withJSON().
		build()
}
