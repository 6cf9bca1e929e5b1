// Package transport is the HTTP collaborator used by the catalogue gateway,
// the licensing client and the media fetcher.
//
// Responsibilities:
//
//   - Attach the identity cookie when a long-lived credential is configured
//     and the caller has not set a Cookie header itself
//   - Pace outgoing requests with a token bucket (golang.org/x/time/rate)
//   - Enforce a per-request timeout through the http.Client
//   - Surface every network, status and decoding failure as domain.ErrTransport
//
// The client never retries.
package transport
