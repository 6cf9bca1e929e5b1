// Package buildinfo exposes build information for tunevault-cli.
//
// Version, Commit and BuildTime are injected via ldflags:
//
//	go build -ldflags "-X github.com/yndnr/tunevault-go/internal/infra/buildinfo.Version=v1.0.0"
//
// When Commit is not injected it is read from the VCS stamp the Go
// toolchain embeds in the binary.
package buildinfo
