package config

import "time"

// CLIConfig is the configuration for tunevault-cli.
type CLIConfig struct {
	// Credential is the long-lived account credential; empty means anonymous.
	Credential string `koanf:"credential" yaml:"credential" json:"credential"`

	Endpoints EndpointsSection `koanf:"endpoints" yaml:"endpoints" json:"endpoints"`
	Transport TransportSection `koanf:"transport" yaml:"transport" json:"transport"`
	Session   SessionSection   `koanf:"session" yaml:"session" json:"session"`
	Download  DownloadSection  `koanf:"download" yaml:"download" json:"download"`

	// Output is the default output format: table, json, yaml.
	Output string `koanf:"output" yaml:"output" json:"output"`

	Log     LogSection     `koanf:"log" yaml:"log" json:"log"`
	Metrics MetricsSection `koanf:"metrics" yaml:"metrics" json:"metrics"`
}

// EndpointsSection configures upstream URLs.
type EndpointsSection struct {
	Gateway string `koanf:"gateway" yaml:"gateway" json:"gateway"`
	Media   string `koanf:"media" yaml:"media" json:"media"`
}

// TransportSection configures the HTTP client.
type TransportSection struct {
	Timeout   time.Duration `koanf:"timeout" yaml:"timeout" json:"timeout"`
	RateLimit float64       `koanf:"rate_limit" yaml:"rate_limit" json:"rate_limit"`
	Burst     int           `koanf:"burst" yaml:"burst" json:"burst"`
	UserAgent string        `koanf:"user_agent" yaml:"user_agent" json:"user_agent"`
	CAFile    string        `koanf:"ca_file" yaml:"ca_file,omitempty" json:"ca_file,omitempty"` // extra PEM roots
}

// SessionSection configures session reuse.
type SessionSection struct {
	TTL time.Duration `koanf:"ttl" yaml:"ttl" json:"ttl"`
}

// DownloadSection configures the download command.
type DownloadSection struct {
	Lossless    bool   `koanf:"lossless" yaml:"lossless" json:"lossless"`
	OutDir      string `koanf:"out_dir" yaml:"out_dir" json:"out_dir"`
	Concurrency int    `koanf:"concurrency" yaml:"concurrency" json:"concurrency"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level" yaml:"level" json:"level"`    // debug, info, warn, error
	Format string `koanf:"format" yaml:"format" json:"format"` // text, json
}

// MetricsSection configures the optional Prometheus endpoint.
type MetricsSection struct {
	// Addr enables a /metrics listener when non-empty.
	Addr string `koanf:"addr" yaml:"addr" json:"addr"`
}
