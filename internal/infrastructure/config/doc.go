// Package config loads and validates service configuration.
//
// Configuration comes from three layers, each overriding the last:
// hardcoded defaults, an optional YAML file, and LOCOREG_* environment
// variables. The access keys for the two credential tiers are part of
// the configuration and are validated as present before the service
// starts.
package config
