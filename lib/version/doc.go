// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports build information for the go2remote binaries.
//
// [GitCommit], [GitDirty], [BuildTime], and [Version] are injected with
// -ldflags -X. When the commit is not injected, the VCS stamp the Go
// toolchain embeds in module builds is used instead, so `go install`
// builds still report their revision.
package version
