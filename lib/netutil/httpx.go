// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil holds small I/O helpers shared by the signaling client
// and the data channel transport.
//
// Robot signaling responses are a few kilobytes of base64 text. Reads
// are bounded at MaxResponseSize so a misbehaving device on the local
// network cannot make the client allocate without limit.
package netutil

import (
	"io"
	"strings"
)

// MaxResponseSize bounds signaling response body reads: 1 MiB.
const MaxResponseSize int64 = 1 << 20

// ReadResponse reads an HTTP response body up to MaxResponseSize bytes.
func ReadResponse(body io.Reader) ([]byte, error) {
	return io.ReadAll(io.LimitReader(body, MaxResponseSize))
}

// ErrorBody reads an error response body for use in an error message.
// Read errors are ignored and the result is trimmed and truncated to
// 256 bytes.
func ErrorBody(body io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(body, MaxResponseSize))
	text := strings.TrimSpace(string(data))
	if len(text) > 256 {
		text = text[:256] + "..."
	}
	return text
}
