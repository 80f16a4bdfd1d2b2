// Package buildinfo provides build information for fretehub-cli.
//
// Values are injected via ldflags and fall back to the module build
// information embedded by the Go toolchain:
//
//	go build -ldflags "-X github.com/fretehub/fretehub-go/internal/infra/buildinfo.Version=v1.0.0"
package buildinfo
