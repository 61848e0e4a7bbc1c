package config

import "errors"

// Roles and drivers accepted by the configuration.
const (
	RoleClient = "client"
	RoleServer = "server"

	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

// Validation errors returned when required configuration groups are
// incomplete or invalid.
var (
	// ErrInvalidAdapterConfigs indicates that no outbound transport is set.
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs indicates missing or unusable storage settings.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates a bad role or missing key locations.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidWorkerConfigs indicates non-positive job intervals.
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
	// ErrInvalidWindowConfigs indicates a non-positive window limit.
	ErrInvalidWindowConfigs = errors.New("invalid window configuration")
	// ErrInvalidEnvConfigs indicates an environment variable that cannot be
	// parsed into its field.
	ErrInvalidEnvConfigs = errors.New("invalid environment configuration")
	// ErrInvalidServerConfigs indicates a missing listen address.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
)
