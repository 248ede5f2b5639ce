// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bufio"
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/richgrov/go2remote/lib/capture"
)

func writeTestCapture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.g2rc")
	created := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	writer, err := capture.Create(path, capture.CompressionZstd, capture.Header{Created: created, Robot: "192.168.12.1"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	records := []capture.Record{
		{Time: created, Direction: "inbound", Payload: `{"type":"validation","data":"challenge"}`},
		{Time: created.Add(time.Second), Direction: "outbound", Payload: `{"type":"validation","topic":"","data":"x"}`},
	}
	for _, record := range records {
		if err := writer.Write(record); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return path
}

func decodeLines(t *testing.T, output []byte) []dumpLine {
	t.Helper()
	var lines []dumpLine
	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		var line dumpLine
		if err := json.Unmarshal(scanner.Bytes(), &line); err != nil {
			t.Fatalf("line %q is not JSON: %v", scanner.Text(), err)
		}
		lines = append(lines, line)
	}
	return lines
}

func TestCaptureDump(t *testing.T) {
	path := writeTestCapture(t)
	var output bytes.Buffer

	if err := newRoot(&output).Execute([]string{"capture", "dump", path}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	lines := decodeLines(t, output.Bytes())
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), output.String())
	}
	if lines[0].Header == nil || lines[0].Header.Robot != "192.168.12.1" {
		t.Errorf("first line = %+v, want header", lines[0])
	}
	if lines[1].Record == nil || lines[1].Record.Direction != "inbound" || lines[1].Record.Sequence != 1 {
		t.Errorf("second line = %+v", lines[1])
	}
	if lines[2].Record == nil || lines[2].Record.Direction != "outbound" || lines[2].Record.Sequence != 2 {
		t.Errorf("third line = %+v", lines[2])
	}
}

func TestCaptureDumpRecordsOnly(t *testing.T) {
	path := writeTestCapture(t)
	var output bytes.Buffer

	if err := newRoot(&output).Execute([]string{"capture", "dump", "--records-only", path}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	lines := decodeLines(t, output.Bytes())
	if len(lines) != 2 || lines[0].Header != nil {
		t.Errorf("lines = %+v, want two records", lines)
	}
}

func TestCaptureDumpRejectsOtherFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-a-capture")
	if err := writeFile(path, "hello world"); err != nil {
		t.Fatal(err)
	}
	if err := newRoot(&bytes.Buffer{}).Execute([]string{"capture", "dump", path}); err == nil {
		t.Error("dump accepted a non-capture file")
	}
}

func TestCaptureDumpColor(t *testing.T) {
	path := writeTestCapture(t)

	var plain bytes.Buffer
	if err := newRoot(&plain).Execute([]string{"capture", "dump", "--color", "auto", path}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if bytes.Contains(plain.Bytes(), []byte("\x1b[")) {
		t.Error("auto color highlighted output to a non-terminal")
	}

	var colored bytes.Buffer
	if err := newRoot(&colored).Execute([]string{"capture", "dump", "--color", "always", path}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !bytes.Contains(colored.Bytes(), []byte("\x1b[")) {
		t.Error("--color always produced no ANSI escapes")
	}
	if !bytes.Contains(colored.Bytes(), []byte("192.168.12.1")) {
		t.Error("colored output lost the header")
	}

	if err := newRoot(&bytes.Buffer{}).Execute([]string{"capture", "dump", "--color", "sometimes", path}); err == nil {
		t.Error("accepted --color sometimes")
	}
}
