package config

import (
	"net/url"

	"github.com/yndnr/tunevault-go/internal/core/domain"
	"github.com/yndnr/tunevault-go/internal/telemetry/logger"
)

// Verify checks the configuration for invalid values.
func Verify(cfg *CLIConfig) error {
	if err := verifyEndpoints(&cfg.Endpoints); err != nil {
		return err
	}
	if err := verifyTransport(&cfg.Transport); err != nil {
		return err
	}
	if cfg.Session.TTL <= 0 {
		return domain.ErrInvalidConfig.WithDetails("session.ttl must be positive")
	}
	if cfg.Download.Concurrency < 1 {
		return domain.ErrInvalidConfig.WithDetails("download.concurrency must be at least 1")
	}

	switch cfg.Output {
	case "table", "json", "yaml":
	default:
		return domain.ErrInvalidConfig.WithDetailsf("output %q must be table, json or yaml", cfg.Output)
	}

	if _, err := logger.ParseLevel(cfg.Log.Level); err != nil {
		return domain.ErrInvalidConfig.WithDetailsf("log.level %q must be debug, info, warn or error", cfg.Log.Level)
	}

	switch cfg.Log.Format {
	case "text", "json":
	default:
		return domain.ErrInvalidConfig.WithDetailsf("log.format %q must be text or json", cfg.Log.Format)
	}
	return nil
}

func verifyEndpoints(cfg *EndpointsSection) error {
	for name, raw := range map[string]string{"endpoints.gateway": cfg.Gateway, "endpoints.media": cfg.Media} {
		u, err := url.Parse(raw)
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return domain.ErrInvalidConfig.WithDetailsf("%s %q is not an http(s) URL", name, raw)
		}
	}
	return nil
}

func verifyTransport(cfg *TransportSection) error {
	if cfg.Timeout <= 0 {
		return domain.ErrInvalidConfig.WithDetails("transport.timeout must be positive")
	}
	if cfg.RateLimit < 0 {
		return domain.ErrInvalidConfig.WithDetails("transport.rate_limit must not be negative")
	}
	if cfg.RateLimit > 0 && cfg.Burst < 1 {
		return domain.ErrInvalidConfig.WithDetails("transport.burst must be at least 1 when rate_limit is set")
	}
	return nil
}
