// Package buildinfo exposes version information for the redislite binaries.
//
// Values are injected at build time via ldflags:
//
//	go build -ldflags "-X github.com/yndnr/redislite/internal/infra/buildinfo.Version=v0.1.0"
//
// Fields left unset fall back to what the Go toolchain embedded in the binary.
package buildinfo
