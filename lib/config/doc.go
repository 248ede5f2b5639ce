// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for go2remote.
//
// Configuration is loaded from a single file specified by either the
// GO2REMOTE_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There is no automatic file search. A host that runs
// without either uses [Default] directly; command-line flags are
// applied on top by the caller.
//
// Duration fields accept Go duration strings ("2s", "500ms"). Variable
// expansion is performed on path fields after loading: ${HOME} and
// ${VAR:-default} patterns are expanded.
//
// Key exports:
//
//   - [Config] -- master struct with Robot, Session, ICE, Logging,
//     Emotes, Capture
//   - [Default] -- returns a Config with the robot's standard values
//   - [Load] and [LoadFile] -- the two entry points for loading
//
// This package depends on no other go2remote packages.
package config
