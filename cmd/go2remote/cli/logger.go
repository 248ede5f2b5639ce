// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewLogger returns the logger for CLI commands, writing to stderr.
// Format "auto" selects text when stderr is a terminal and JSON
// otherwise.
func NewLogger(level, format string) (*slog.Logger, error) {
	return newLogger(os.Stderr, term.IsTerminal(int(os.Stderr.Fd())), level, format)
}

func newLogger(w io.Writer, terminal bool, level, format string) (*slog.Logger, error) {
	var slogLevel slog.Level
	if err := slogLevel.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	options := &slog.HandlerOptions{Level: slogLevel}

	text := terminal
	switch format {
	case "text":
		text = true
	case "json":
		text = false
	case "auto", "":
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}
	if text {
		return slog.New(slog.NewTextHandler(w, options)), nil
	}
	return slog.New(slog.NewJSONHandler(w, options)), nil
}
