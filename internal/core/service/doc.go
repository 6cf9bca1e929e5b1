// Package service implements the media retrieval pipeline.
//
// Services hold no storage of their own. They define small interfaces for
// their collaborators (transport, authenticator, source locator) so tests
// can substitute hand-written fakes.
//
// This package contains:
//
//   - Gateway: catalogue API calls and the session exchange
//   - SessionStore: cached session with single-flight refresh
//   - LicenseClient: exchanges asset tokens for encoding-scoped source URLs
//   - MediaResolver: fallback, entitlement and encoding selection
//   - Pipeline: session, resolve, fetch and decrypt for one asset
//   - Catalogue: typed lookup of tracks, albums, artists and playlists
//
// All services are safe for concurrent use.
package service
