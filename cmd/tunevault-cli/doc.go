// Package main provides the entry point for tunevault-cli.
//
// tunevault-cli looks up catalogue entities and downloads their tracks,
// decrypting each media payload locally:
//
//   - session: authenticate and show the current session
//   - info: show a track, album, artist or playlist
//   - download: fetch and decrypt every track of an entity
//   - config: show or write the configuration file
//
// Usage:
//
//	tunevault-cli info album:302127
//	tunevault-cli --credential $ARL download -d ./music album/302127
//	tunevault-cli -o json session
package main
