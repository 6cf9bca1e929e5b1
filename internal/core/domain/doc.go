// Package domain defines the core domain models for tunevault.
//
// Domain models are pure value objects without any IO dependencies or
// framework coupling. This package contains:
//
//   - Session: the authorization context issued by the catalogue
//   - AssetDescriptor and Encoding: what can be fetched, in which format
//   - Entity: closed union of catalogue records (track, album, artist, playlist)
//   - Reference: parsed user input naming a catalogue entity
//   - Errors: coded domain errors and pipeline stage errors
package domain
