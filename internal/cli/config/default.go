package config

import (
	"time"

	"github.com/yndnr/tunevault-go/internal/core/domain"
	"github.com/yndnr/tunevault-go/internal/core/service"
	"github.com/yndnr/tunevault-go/internal/infra/transport"
)

// Default values.
const (
	DefaultTimeout     = 30 * time.Second
	DefaultRateLimit   = 10.0
	DefaultBurst       = 5
	DefaultConcurrency = 4
	DefaultOutput      = "table"
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
)

// Default returns the default CLI configuration.
func Default() *CLIConfig {
	return &CLIConfig{
		Endpoints: EndpointsSection{
			Gateway: service.DefaultGatewayURL,
			Media:   service.DefaultMediaURL,
		},
		Transport: TransportSection{
			Timeout:   DefaultTimeout,
			RateLimit: DefaultRateLimit,
			Burst:     DefaultBurst,
			UserAgent: transport.DefaultUserAgent,
		},
		Session: SessionSection{
			TTL: domain.SessionTTL,
		},
		Download: DownloadSection{
			OutDir:      ".",
			Concurrency: DefaultConcurrency,
		},
		Output: DefaultOutput,
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
