// Package config provides configuration loading, merging, and validation
// facilities for bundle nodes.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// The main entry points are [GetServerConfig] and [GetClientConfig]; both
// return the same [StructuredConfig] validated for their role.
package config
