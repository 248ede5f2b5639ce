// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

package capture

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/richgrov/go2remote/lib/codec"
)

// ErrClosed is returned by Write after Close.
var ErrClosed = errors.New("capture: writer closed")

// Writer appends records to a capture stream.
type Writer struct {
	mu         sync.Mutex
	compressor io.WriteCloser
	encoder    *codec.Encoder
	file       *os.File
	sequence   uint64
	closed     bool
}

// Create creates (or truncates) the capture file at path and writes the
// header.
func Create(path string, compression Compression, header Header) (*Writer, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating capture file: %w", err)
	}
	writer, err := NewWriter(file, compression, header)
	if err != nil {
		file.Close()
		return nil, err
	}
	writer.file = file
	return writer, nil
}

// NewWriter writes the preamble and header to w and returns a Writer
// for the records that follow. Close does not close w.
func NewWriter(w io.Writer, compression Compression, header Header) (*Writer, error) {
	preamble := append([]byte(Magic), FormatVersion, byte(compression))
	if _, err := w.Write(preamble); err != nil {
		return nil, fmt.Errorf("writing capture preamble: %w", err)
	}

	compressor, err := newCompressor(w, compression)
	if err != nil {
		return nil, err
	}
	writer := &Writer{
		compressor: compressor,
		encoder:    codec.NewEncoder(compressor),
	}
	if err := writer.encoder.Encode(header); err != nil {
		compressor.Close()
		return nil, fmt.Errorf("writing capture header: %w", err)
	}
	return writer, nil
}

func newCompressor(w io.Writer, compression Compression) (io.WriteCloser, error) {
	switch compression {
	case CompressionNone:
		return nopWriteCloser{w}, nil
	case CompressionLZ4:
		return lz4.NewWriter(w), nil
	case CompressionZstd:
		encoder, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, fmt.Errorf("creating zstd encoder: %w", err)
		}
		return encoder, nil
	default:
		return nil, fmt.Errorf("unsupported capture compression %s", compression)
	}
}

// Write appends a record. The record's Sequence is assigned by the
// writer, starting at 1.
func (w *Writer) Write(record Record) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrClosed
	}
	w.sequence++
	record.Sequence = w.sequence
	if err := w.encoder.Encode(record); err != nil {
		return fmt.Errorf("writing capture record %d: %w", record.Sequence, err)
	}
	return nil
}

// Count returns the number of records written.
func (w *Writer) Count() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.sequence
}

// Close flushes the compressed stream and closes the file if the writer
// was opened with Create. Close is idempotent.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true

	err := w.compressor.Close()
	if w.file != nil {
		err = errors.Join(err, w.file.Close())
	}
	if err != nil {
		return fmt.Errorf("closing capture: %w", err)
	}
	return nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
