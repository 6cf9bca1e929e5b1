// Package output renders command results for tunevault-cli.
//
//   - formatter.go: Formatter interface and factory
//   - table.go: Aligned tables for terminals
//   - json.go, yaml.go: Machine-readable output for scripting
//   - progress.go: Download progress on stderr
//
// Command results implement Tabular to control their table layout; JSON
// and YAML encode the same value directly.
package output
