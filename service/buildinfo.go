package service

import (
	"time"

	"github.com/orcka/invoiceapi/data"
)

// Fallbacks for build metadata that was not provided.
const (
	DefaultGitSHA  = "dev-snapshot"
	DefaultVersion = "0.0.0"
)

type buildInfo interface {
	BuildInfo() data.BuildInfo
}

// BuildInfo assembles the build metadata for one request. It cannot fail:
// configured values are taken as opaque strings and empty ones are replaced
// by fallbacks. The build time fallback is taken from the clock on every call.
func (s *service) BuildInfo() data.BuildInfo {
	build := s.config.Build
	buildTime := build.Time
	if buildTime == "" {
		buildTime = s.now().UTC().Format(time.RFC3339Nano)
	}
	return data.BuildInfo{
		ServiceName:  data.ServiceName,
		TechStack:    data.TechStack,
		BuildTime:    buildTime,
		GitSHA:       orDefault(build.GitSHA, DefaultGitSHA),
		BuildVersion: orDefault(build.Version, DefaultVersion),
		Dependencies: data.Dependencies(),
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
