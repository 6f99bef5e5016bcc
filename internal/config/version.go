package config

import (
	"fmt"
)

// Version information (set via -ldflags during build).
var (
	Version = "dev"
	Build   = "unknown"
)

// GetVersion returns the current version string.
func GetVersion() string {
	return Version
}

// GetFullVersion returns version with build info.
func GetFullVersion() string {
	return fmt.Sprintf("%s (build: %s)", Version, Build)
}
