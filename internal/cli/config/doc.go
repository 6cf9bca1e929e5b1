// Package config provides CLI configuration for tunevault.
//
// This package defines CLI-specific configuration:
//
//   - spec.go: CLIConfig struct (~/.tunevault/config.yaml)
//   - default.go: Default values
//   - verify.go: Validation
//   - sanitize.go: Credential masking for display
//   - loader.go: Loading (file < env < flags) and saving
package config
