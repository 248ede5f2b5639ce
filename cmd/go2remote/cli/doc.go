// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for the go2remote
// CLI.
//
// The central type is [Command]: a named subcommand with optional
// nested [Command.Subcommands], a [pflag.FlagSet] factory, and a Run
// function. [Command.Execute] handles flag parsing, subcommand routing,
// and help output with examples. Unknown commands and flags get a
// "did you mean" suggestion when one is within edit distance 3.
//
// [NewLogger] builds the slog logger every command logs through, and
// [ExitError] lets a command exit non-zero without an extra error line.
package cli
