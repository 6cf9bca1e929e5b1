package logger

import (
	"context"
	"crypto/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

type contextKey string

const (
	loggerKey    contextKey = "tunevault.logger"
	requestIDKey contextKey = "tunevault.request_id"
	assetIDKey   contextKey = "tunevault.asset_id"
)

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext extracts the logger from context.
// Returns the default logger if none is set.
func FromContext(ctx context.Context) Logger {
	if l, ok := ctx.Value(loggerKey).(Logger); ok {
		return l
	}
	return Default()
}

// NewRequestID returns a lowercase ULID. Request ids sort by creation time,
// which keeps interleaved concurrent downloads readable in logs.
func NewRequestID() string {
	id := ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader)
	return strings.ToLower(id.String())
}

// WithRequestID adds a request ID to the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFromContext extracts the request ID from context.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// WithAssetID records the catalogue asset a request works on.
func WithAssetID(ctx context.Context, assetID string) context.Context {
	return context.WithValue(ctx, assetIDKey, assetID)
}

// AssetIDFromContext extracts the asset ID from context.
func AssetIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(assetIDKey).(string); ok {
		return id
	}
	return ""
}

// L returns the context's logger bound to ctx; its records carry the
// context's request and asset ids.
func L(ctx context.Context) Logger {
	l := FromContext(ctx)
	if sl, ok := l.(*slogLogger); ok {
		return sl.bind(ctx)
	}
	if id := RequestIDFromContext(ctx); id != "" {
		l = l.With("request_id", id)
	}
	return l
}
