// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
)

// These variables are set via -ldflags at build time, for example:
//
//	go build -ldflags "-X github.com/richgrov/go2remote/lib/version.GitCommit=$(git rev-parse --short HEAD)"
var (
	// GitCommit is the short git SHA of the build.
	GitCommit = "unknown"

	// GitDirty is "true" when the tree had uncommitted changes.
	GitDirty = "false"

	// BuildTime is the UTC timestamp of the build.
	BuildTime = "unknown"

	// Version is the semantic version, set manually for releases.
	Version = "0.1.0-dev"
)

type stamp struct {
	commit string
	dirty  bool
	time   string
}

var resolved = sync.OnceValue(func() stamp {
	s := stamp{commit: GitCommit, dirty: GitDirty == "true", time: BuildTime}
	if s.commit != "unknown" {
		return s
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return s
	}
	return fromBuildSettings(s, info.Settings)
})

func fromBuildSettings(s stamp, settings []debug.BuildSetting) stamp {
	for _, setting := range settings {
		switch setting.Key {
		case "vcs.revision":
			s.commit = setting.Value
			if len(s.commit) > 12 {
				s.commit = s.commit[:12]
			}
		case "vcs.modified":
			s.dirty = setting.Value == "true"
		case "vcs.time":
			if s.time == "unknown" {
				s.time = setting.Value
			}
		}
	}
	return s
}

// Info returns a one-line version string for `go2remote version`.
func Info() string {
	s := resolved()
	return format(s)
}

func format(s stamp) string {
	dirty := ""
	if s.dirty {
		dirty = "-dirty"
	}
	return fmt.Sprintf("%s (%s%s, %s)", Version, s.commit, dirty, s.time)
}

// Full returns Info plus the Go version and platform.
func Full() string {
	return fmt.Sprintf("%s\n  Go: %s\n  Platform: %s/%s",
		Info(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Commit returns the git commit of the build.
func Commit() string {
	return resolved().commit
}
