package command

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/yndnr/tunevault-go/internal/cli/config"
	"github.com/yndnr/tunevault-go/internal/cli/output"
	"github.com/yndnr/tunevault-go/internal/core/domain"
	"github.com/yndnr/tunevault-go/internal/core/service"
	"github.com/yndnr/tunevault-go/internal/infra/shutdown"
	"github.com/yndnr/tunevault-go/internal/infra/tlsroots"
	"github.com/yndnr/tunevault-go/internal/infra/transport"
	"github.com/yndnr/tunevault-go/internal/telemetry/logger"
	"github.com/yndnr/tunevault-go/internal/telemetry/metric"
)

// shutdownTimeout bounds cleanup hooks such as stopping the metrics listener.
const shutdownTimeout = 5 * time.Second

// Runtime holds everything a command needs for one invocation.
type Runtime struct {
	Config     *config.CLIConfig
	ConfigPath string
	Logger     logger.Logger
	Metrics    *metric.Registry

	Transport *transport.Client
	Sessions  *service.SessionStore
	Catalogue *service.Catalogue
	Pipeline  *service.Pipeline

	// MetricsAddr is the bound metrics listener address, if any.
	MetricsAddr string

	ctx      context.Context
	shutdown *shutdown.Handler
	stop     func() error
}

// newRuntime loads configuration and wires the services. No network call
// is made; the session exchange happens on first use.
func newRuntime(parent context.Context, configPath string, flags map[string]any, logOut io.Writer) (*Runtime, error) {
	cfg, err := config.Load(configPath, flags)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: logOut,
	})
	if err != nil {
		return nil, domain.ErrInvalidConfig.WithCause(err)
	}
	logger.SetDefault(log)

	if parent == nil {
		parent = context.Background()
	}

	rt := &Runtime{
		Config:     cfg,
		ConfigPath: configPath,
		Logger:     log,
		Metrics:    metric.NewRegistry(),
		shutdown:   shutdown.NewHandler(shutdownTimeout),
	}
	rt.ctx, rt.stop = rt.shutdown.Context(logger.WithLogger(parent, log))

	tlsConfig, err := tlsroots.ClientConfig(cfg.Transport.CAFile)
	if err != nil {
		rt.stop()
		return nil, domain.ErrInvalidConfig.WithDetails("transport.ca_file").WithCause(err)
	}

	rt.Transport = transport.New(transport.Config{
		Credential: cfg.Credential,
		Timeout:    cfg.Transport.Timeout,
		RateLimit:  cfg.Transport.RateLimit,
		Burst:      cfg.Transport.Burst,
		UserAgent:  cfg.Transport.UserAgent,
		TLS:        tlsConfig,
	}, transport.WithMetrics(rt.Metrics))

	gateway := service.NewGateway(rt.Transport, cfg.Endpoints.Gateway)
	rt.Sessions = service.NewSessionStore(gateway,
		service.WithTTL(cfg.Session.TTL),
		service.WithSessionMetrics(rt.Metrics))
	rt.Catalogue = service.NewCatalogue(gateway, rt.Sessions)

	resolver := service.NewMediaResolver(rt.Sessions, service.NewLicenseClient(rt.Transport, cfg.Endpoints.Media))
	rt.Pipeline = service.NewPipeline(rt.Sessions, resolver, rt.Transport,
		service.WithPipelineMetrics(rt.Metrics))
	rt.Metrics.MustRegister(metric.NewCollector(rt.Pipeline.Keys().Len))

	if cfg.Metrics.Addr != "" {
		if err := rt.serveMetrics(cfg.Metrics.Addr); err != nil {
			rt.stop()
			return nil, err
		}
	}

	log.Debug("runtime ready",
		"gateway", cfg.Endpoints.Gateway,
		"anonymous", cfg.Credential == "",
		"output", cfg.Output)
	return rt, nil
}

// Context returns the invocation context; it is cancelled on SIGINT/SIGTERM.
func (rt *Runtime) Context() context.Context {
	return rt.ctx
}

// Formatter returns the formatter for the configured output format.
func (rt *Runtime) Formatter() (output.Formatter, output.Format, error) {
	format, err := output.ParseFormat(rt.Config.Output)
	if err != nil {
		return nil, "", err
	}
	return output.NewFormatter(format), format, nil
}

// Close releases signal handling and runs shutdown hooks.
func (rt *Runtime) Close() error {
	return rt.stop()
}

func (rt *Runtime) serveMetrics(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	rt.MetricsAddr = ln.Addr().String()

	mux := http.NewServeMux()
	mux.Handle("/metrics", rt.Metrics.Handler())
	server := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			rt.Logger.Error("metrics server stopped", "error", err)
		}
	}()
	rt.shutdown.OnShutdown(server.Shutdown)

	rt.Logger.Info("serving metrics", "addr", rt.MetricsAddr)
	return nil
}
