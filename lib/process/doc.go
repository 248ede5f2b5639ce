// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

// Package process holds entrypoint helpers shared by the go2remote
// binaries.
package process
