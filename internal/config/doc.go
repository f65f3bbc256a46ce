// Package config loads the bridge configuration from a YAML file, the
// PLAYER_BRIDGE_* environment and command line flags, in that order.
package config
