// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the go2remote command tree.
//
// Every command that talks to a robot accepts the same global flags
// (--config, --robot, --log-level, --capture, --dry-run). Flag values
// override the YAML configuration, which overrides the built-in
// defaults. With --dry-run, commands drive a transport.NopController
// instead of connecting.
package commands
