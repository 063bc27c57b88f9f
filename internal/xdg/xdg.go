// Package xdg resolves XDG Base Directory paths used to locate the default
// interpreter manifest.
package xdg

import (
	"os"
	"path/filepath"
)

// ConfigHome returns the base directory for user-specific configuration
// files, per the XDG Base Directory Specification.
func ConfigHome() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv("HOME")
		if homeDir == "" {
			homeDir = "/tmp"
		}
	}
	return filepath.Join(homeDir, ".config")
}

// DefaultManifestPath is where spanrun looks for an interpreter manifest
// when neither --manifest nor --prefix is given.
func DefaultManifestPath() string {
	return filepath.Join(ConfigHome(), "spanrun", "manifest.toml")
}
