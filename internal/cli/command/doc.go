// Package command provides the tunevault-cli command tree.
//
// This package defines all CLI commands using urfave/cli/v2:
//
//   - root.go: App, global flags, runtime setup and teardown
//   - runtime.go: Wiring of config, logger, metrics and services
//   - session.go: Show the current session
//   - info.go: Look up a catalogue entity
//   - download.go: Fetch and decrypt an entity's assets to disk
//   - config.go: Show or write the CLI configuration
//   - version.go: Build information
//
// Commands follow a consistent pattern: parse arguments, call the
// runtime's services, format output.
package command
