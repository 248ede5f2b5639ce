// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

package capture

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestRoundTrip(t *testing.T) {
	created := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	for _, compression := range []Compression{CompressionNone, CompressionLZ4, CompressionZstd} {
		t.Run(compression.String(), func(t *testing.T) {
			var buffer bytes.Buffer
			writer, err := NewWriter(&buffer, compression, Header{Created: created, Robot: "192.168.12.1"})
			if err != nil {
				t.Fatalf("NewWriter: %v", err)
			}
			payloads := []string{
				`{"type":"heartbeat","data":{"timeInStr":"2026-03-14 15:09:26","timeInNum":1773500966}}`,
				`{"type":"validation","data":"challenge"}`,
				`{"type":"msg","topic":"rt/api/sport/request"}`,
			}
			for i, payload := range payloads {
				direction := "outbound"
				if i == 1 {
					direction = "inbound"
				}
				record := Record{Time: created.Add(time.Duration(i) * time.Second), Direction: direction, Payload: payload}
				if err := writer.Write(record); err != nil {
					t.Fatalf("Write %d: %v", i, err)
				}
			}
			if writer.Count() != 3 {
				t.Errorf("Count = %d, want 3", writer.Count())
			}
			if err := writer.Close(); err != nil {
				t.Fatalf("Close: %v", err)
			}

			reader, err := NewReader(&buffer)
			if err != nil {
				t.Fatalf("NewReader: %v", err)
			}
			defer reader.Close()
			if reader.Compression() != compression {
				t.Errorf("Compression = %s, want %s", reader.Compression(), compression)
			}
			header := reader.Header()
			if !header.Created.Equal(created) || header.Robot != "192.168.12.1" {
				t.Errorf("Header = %+v", header)
			}
			for i, payload := range payloads {
				record, err := reader.Next()
				if err != nil {
					t.Fatalf("Next %d: %v", i, err)
				}
				if record.Sequence != uint64(i+1) {
					t.Errorf("record %d sequence = %d, want %d", i, record.Sequence, i+1)
				}
				if record.Payload != payload {
					t.Errorf("record %d payload = %q, want %q", i, record.Payload, payload)
				}
				if !record.Time.Equal(created.Add(time.Duration(i) * time.Second)) {
					t.Errorf("record %d time = %v", i, record.Time)
				}
			}
			if _, err := reader.Next(); !errors.Is(err, io.EOF) {
				t.Errorf("Next past end = %v, want io.EOF", err)
			}
		})
	}
}

func TestCreateOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.g2rc")
	writer, err := Create(path, CompressionZstd, Header{Created: time.Now()})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := writer.Write(Record{Time: time.Now(), Direction: "inbound", Payload: "{}"}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if err := writer.Write(Record{}); !errors.Is(err, ErrClosed) {
		t.Errorf("Write after Close = %v, want ErrClosed", err)
	}

	reader, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer reader.Close()
	record, err := reader.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if record.Payload != "{}" || record.Direction != "inbound" {
		t.Errorf("record = %+v", record)
	}
}

func TestConcurrentWrites(t *testing.T) {
	var buffer bytes.Buffer
	writer, err := NewWriter(&buffer, CompressionLZ4, Header{})
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	var wg sync.WaitGroup
	for g := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 25 {
				if err := writer.Write(Record{Payload: fmt.Sprintf("%d-%d", g, i)}); err != nil {
					t.Errorf("Write: %v", err)
				}
			}
		}()
	}
	wg.Wait()
	if err := writer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reader, err := NewReader(&buffer)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	defer reader.Close()
	var want uint64 = 1
	for {
		record, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if record.Sequence != want {
			t.Fatalf("sequence = %d, want %d", record.Sequence, want)
		}
		want++
	}
	if want != 101 {
		t.Errorf("read %d records, want 100", want-1)
	}
}

func TestNewReaderRejectsForeignData(t *testing.T) {
	cases := map[string][]byte{
		"empty":     nil,
		"short":     []byte("G2"),
		"bad magic": []byte("NOPE\x01\x02"),
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := NewReader(bytes.NewReader(data)); !errors.Is(err, ErrNotCapture) {
				t.Errorf("NewReader = %v, want ErrNotCapture", err)
			}
		})
	}

	if _, err := NewReader(bytes.NewReader([]byte("G2RC\x09\x00"))); err == nil {
		t.Error("NewReader accepted an unknown format version")
	}
	if _, err := NewReader(bytes.NewReader([]byte("G2RC\x01\x7f"))); err == nil {
		t.Error("NewReader accepted an unknown compression")
	}
}

func TestParseCompression(t *testing.T) {
	cases := map[string]Compression{"": CompressionZstd, "zstd": CompressionZstd, "lz4": CompressionLZ4, "none": CompressionNone}
	for name, want := range cases {
		got, err := ParseCompression(name)
		if err != nil {
			t.Fatalf("ParseCompression(%q): %v", name, err)
		}
		if got != want {
			t.Errorf("ParseCompression(%q) = %s, want %s", name, got, want)
		}
	}
	if _, err := ParseCompression("gzip"); err == nil {
		t.Error("ParseCompression(gzip) succeeded")
	}
}
