// Package buildinfo keeps version information injected at link time:
//
//	go build -ldflags "-X github.com/seqmap/seqmap/buildinfo.Version=v1.2.3"
package buildinfo

var (
	Version   = "unknown"
	BuildTime = "unknown"
)
