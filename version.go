package selfserve

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

const modulePath = "github.com/GenerateNU/selfserve"

var (
	// Version is the library semantic version (injected at build time optionally).
	Version = "v0.3.0"
	// GitCommit is the git SHA (inject via -ldflags at build time).
	GitCommit = "unknown"
	// BuildDate is the build timestamp (inject via -ldflags).
	BuildDate = "unknown"
	// GoVersion records the Go toolchain version used.
	GoVersion = runtime.Version()
)

var readBuildInfo = debug.ReadBuildInfo

type versionInfo struct {
	version, commit, buildDate string
}

// resolveVersion fills whatever -ldflags left unset from the binary's
// embedded build info: the module version for go install builds and the
// vcs stamps for builds inside a checkout.
func resolveVersion() versionInfo {
	v := versionInfo{version: Version, commit: GitCommit, buildDate: BuildDate}
	info, ok := readBuildInfo()
	if !ok || info == nil {
		return v
	}

	mod := &info.Main
	if mod.Path != modulePath {
		mod = nil
		for _, dep := range info.Deps {
			if dep.Path == modulePath {
				mod = dep
				break
			}
		}
	}
	if mod != nil && mod.Version != "" && mod.Version != "(devel)" {
		v.version = mod.Version
	}

	var dirty bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if v.commit == "unknown" && s.Value != "" {
				v.commit = s.Value
			}
		case "vcs.time":
			if v.buildDate == "unknown" && s.Value != "" {
				v.buildDate = s.Value
			}
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if dirty && GitCommit == "unknown" && v.commit != "unknown" {
		v.commit += "-dirty"
	}
	return v
}

// GetVersion returns a human-readable version string.
func GetVersion() string {
	v := resolveVersion()
	return fmt.Sprintf("selfserve %s (commit: %s, built: %s, go: %s)",
		v.version, v.commit, v.buildDate, GoVersion)
}

// GetVersionInfo returns version metadata as a map for logging / metrics.
func GetVersionInfo() map[string]string {
	v := resolveVersion()
	return map[string]string{
		"version":    v.version,
		"commit":     v.commit,
		"build_date": v.buildDate,
		"go_version": GoVersion,
	}
}
