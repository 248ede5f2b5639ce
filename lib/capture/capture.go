// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

package capture

import (
	"errors"
	"fmt"
	"time"
)

// Magic identifies a capture file.
const Magic = "G2RC"

// FormatVersion is the preamble version written by this package.
const FormatVersion = 1

const preambleSize = len(Magic) + 2

// ErrNotCapture is returned when a stream does not start with the
// capture preamble.
var ErrNotCapture = errors.New("capture: not a capture file")

// Compression identifies the stream compression of a capture file.
// Values are stored in the preamble and must not change.
type Compression uint8

const (
	CompressionNone Compression = 0
	CompressionLZ4  Compression = 1
	CompressionZstd Compression = 2
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// ParseCompression parses a compression name. The empty string selects
// zstd.
func ParseCompression(name string) (Compression, error) {
	switch name {
	case "", "zstd":
		return CompressionZstd, nil
	case "lz4":
		return CompressionLZ4, nil
	case "none":
		return CompressionNone, nil
	default:
		return 0, fmt.Errorf("unknown capture compression %q", name)
	}
}

// Header is the first item of every capture.
type Header struct {
	Created time.Time `cbor:"created" json:"created"`
	Robot   string    `cbor:"robot,omitempty" json:"robot,omitempty"`
	Version string    `cbor:"version,omitempty" json:"version,omitempty"`
}

// Record is one captured frame.
type Record struct {
	Sequence  uint64    `cbor:"seq" json:"seq"`
	Time      time.Time `cbor:"time" json:"time"`
	Direction string    `cbor:"dir" json:"dir"`
	Payload   string    `cbor:"payload" json:"payload"`
}
