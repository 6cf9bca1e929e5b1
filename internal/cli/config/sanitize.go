package config

import "github.com/yndnr/tunevault-go/internal/telemetry/logger"

// Sanitize returns a copy of cfg safe to display.
func Sanitize(cfg *CLIConfig) *CLIConfig {
	out := *cfg
	out.Credential = logger.RedactString(cfg.Credential)
	return &out
}
