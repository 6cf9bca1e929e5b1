// Package logger provides structured logging for tunevault.
//
// This package wraps log/slog:
//
//   - logger.go: Logger interface, handler configuration, global level
//   - context.go: Context-aware logging with request ids
//   - redact.go: Sensitive data redaction
//
// Credentials, license tokens, session ids and cookies are redacted at the
// handler level, so call sites may log request metadata freely.
package logger
