// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

package capture

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/richgrov/go2remote/lib/codec"
)

// Reader reads records from a capture stream.
type Reader struct {
	header      Header
	compression Compression
	decoder     *codec.Decoder
	release     func()
	file        *os.File
}

// Open opens the capture file at path.
func Open(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening capture file: %w", err)
	}
	reader, err := NewReader(file)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	reader.file = file
	return reader, nil
}

// NewReader validates the preamble, reads the header, and returns a
// Reader positioned at the first record.
func NewReader(r io.Reader) (*Reader, error) {
	preamble := make([]byte, preambleSize)
	if _, err := io.ReadFull(r, preamble); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrNotCapture
		}
		return nil, fmt.Errorf("reading capture preamble: %w", err)
	}
	if string(preamble[:len(Magic)]) != Magic {
		return nil, ErrNotCapture
	}
	if version := preamble[len(Magic)]; version != FormatVersion {
		return nil, fmt.Errorf("unsupported capture format version %d", version)
	}

	compression := Compression(preamble[len(Magic)+1])
	stream, release, err := newDecompressor(r, compression)
	if err != nil {
		return nil, err
	}
	reader := &Reader{
		compression: compression,
		decoder:     codec.NewDecoder(stream),
		release:     release,
	}
	if err := reader.decoder.Decode(&reader.header); err != nil {
		release()
		return nil, fmt.Errorf("reading capture header: %w", err)
	}
	return reader, nil
}

func newDecompressor(r io.Reader, compression Compression) (io.Reader, func(), error) {
	switch compression {
	case CompressionNone:
		return r, func() {}, nil
	case CompressionLZ4:
		return lz4.NewReader(r), func() {}, nil
	case CompressionZstd:
		decoder, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("creating zstd decoder: %w", err)
		}
		return decoder, decoder.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported capture compression %s", compression)
	}
}

// Header returns the capture header.
func (r *Reader) Header() Header {
	return r.header
}

// Compression returns the stream compression recorded in the preamble.
func (r *Reader) Compression() Compression {
	return r.compression
}

// Next returns the next record, or io.EOF after the last one.
func (r *Reader) Next() (Record, error) {
	var record Record
	if err := r.decoder.Decode(&record); err != nil {
		if errors.Is(err, io.EOF) {
			return Record{}, io.EOF
		}
		return Record{}, fmt.Errorf("reading capture record: %w", err)
	}
	return record, nil
}

// Close releases decompressor resources and closes the file if the
// reader was opened with Open.
func (r *Reader) Close() error {
	r.release()
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}
