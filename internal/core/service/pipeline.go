package service

import (
	"context"
	"time"

	"github.com/yndnr/tunevault-go/internal/core/domain"
	"github.com/yndnr/tunevault-go/internal/telemetry/logger"
	"github.com/yndnr/tunevault-go/internal/telemetry/metric"
	"github.com/yndnr/tunevault-go/pkg/crypto/stripe"
	"github.com/yndnr/tunevault-go/pkg/crypto/trackkey"
)

// Fetcher downloads raw media bytes.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, error)
}

// Download is a fully decrypted asset.
type Download struct {
	Asset    domain.AssetDescriptor
	Encoding domain.Encoding
	Data     []byte
}

// Pipeline fetches and decrypts single assets. It holds no per-request
// state and may be used by many goroutines at once.
type Pipeline struct {
	sessions SessionProvider
	resolver *MediaResolver
	fetcher  Fetcher
	keys     *trackkey.Deriver
	metrics  *metric.Registry
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithKeyDeriver shares a key cache between pipelines.
func WithKeyDeriver(d *trackkey.Deriver) PipelineOption {
	return func(p *Pipeline) {
		p.keys = d
	}
}

// WithPipelineMetrics records stage outcomes in reg.
func WithPipelineMetrics(reg *metric.Registry) PipelineOption {
	return func(p *Pipeline) {
		p.metrics = reg
	}
}

// NewPipeline creates a Pipeline.
func NewPipeline(sessions SessionProvider, resolver *MediaResolver, fetcher Fetcher, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		sessions: sessions,
		resolver: resolver,
		fetcher:  fetcher,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.keys == nil {
		p.keys = trackkey.NewDeriver()
	}
	return p
}

// Keys returns the pipeline's key cache.
func (p *Pipeline) Keys() *trackkey.Deriver {
	return p.keys
}

// FetchAndDecrypt runs every stage for asset. The first failing stage
// aborts the run and is reported as a *domain.StageError.
func (p *Pipeline) FetchAndDecrypt(ctx context.Context, asset domain.AssetDescriptor, wantLossless bool) (*Download, error) {
	if logger.RequestIDFromContext(ctx) == "" {
		ctx = logger.WithRequestID(ctx, logger.NewRequestID())
	}
	ctx = logger.WithAssetID(ctx, asset.ID)
	log := logger.L(ctx)
	start := time.Now()

	// resolvedID is set once resolution settles on a fallback asset.
	var resolvedID string
	fail := func(stage string, err error) (*Download, error) {
		p.metrics.RecordPipeline(stage, "error", time.Since(start).Seconds())
		log.Warn("pipeline failed", "stage", stage, "error", err)
		return nil, &domain.StageError{AssetID: asset.ID, ResolvedID: resolvedID, Stage: stage, Err: err}
	}

	// 1. Session
	if _, err := p.sessions.EnsureValid(ctx); err != nil {
		return fail(domain.StageSession, err)
	}

	// 2. Resolve encoding and source URL
	res, err := p.resolver.Resolve(ctx, asset, wantLossless)
	if err != nil {
		return fail(domain.StageResolve, err)
	}
	if res.Asset.ID != asset.ID {
		resolvedID = res.Asset.ID
	}
	log = log.With("resolved_id", res.Asset.ID, "encoding", res.Encoding)
	log.Debug("asset resolved")

	// 3. Fetch raw bytes
	payload, err := p.fetcher.Fetch(ctx, res.SourceURL)
	if err != nil {
		return fail(domain.StageFetch, err)
	}

	// 4. Decrypt with the key of the asset actually fetched
	key := p.keys.Key(res.Asset.ID)
	data, err := stripe.Decrypt(payload, key.Bytes())
	if err != nil {
		return fail(domain.StageDecrypt, domain.ErrCipher.WithCause(err))
	}

	p.metrics.RecordPipeline("done", "ok", time.Since(start).Seconds())
	p.metrics.AddDecryptedBytes(len(data))
	log.Info("asset decrypted", "bytes", len(data), "duration", time.Since(start))

	return &Download{Asset: res.Asset, Encoding: res.Encoding, Data: data}, nil
}
