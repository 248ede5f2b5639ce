// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

package drive

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func TestLogHandlerFallsBackWithoutProgram(t *testing.T) {
	var output bytes.Buffer
	handler := NewLogHandler(slog.LevelInfo, slog.NewTextHandler(&output, nil))
	logger := slog.New(handler).With("command", "drive")

	logger.Info("connected to robot", "robot", "192.168.12.1")
	if !strings.Contains(output.String(), "command=drive") || !strings.Contains(output.String(), "robot=192.168.12.1") {
		t.Errorf("fallback output = %q", output.String())
	}
}

func TestLogHandlerSendsToProgram(t *testing.T) {
	var output bytes.Buffer
	handler := NewLogHandler(slog.LevelInfo, slog.NewTextHandler(&output, nil))
	messages := make(chan tea.Msg, 4)
	handler.setSender(func(message tea.Msg) { messages <- message })
	logger := slog.New(handler).With("command", "drive")

	logger.Debug("below level")
	logger.Warn("robot connection error", "error", "send failed")

	select {
	case message := <-messages:
		record, ok := message.(logRecordMsg)
		if !ok {
			t.Fatalf("message = %T, want logRecordMsg", message)
		}
		want := "robot connection error (command=drive, error=send failed)"
		if record.Summary != want {
			t.Errorf("Summary = %q, want %q", record.Summary, want)
		}
		if record.Level != slog.LevelWarn {
			t.Errorf("Level = %v, want warn", record.Level)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no message delivered")
	}
	select {
	case message := <-messages:
		t.Errorf("unexpected second message %+v", message)
	case <-time.After(50 * time.Millisecond):
	}
	if output.Len() != 0 {
		t.Errorf("fallback received %q while a program was attached", output.String())
	}

	handler.SetProgram(nil)
	logger.Info("detached")
	if !strings.Contains(output.String(), "detached") {
		t.Errorf("fallback output after detach = %q", output.String())
	}
}

func TestLogHandlerGroups(t *testing.T) {
	handler := NewLogHandler(slog.LevelInfo, nil)
	derived := handler.WithGroup("pion").(*LogHandler)

	record := slog.NewRecord(time.Now(), slog.LevelInfo, "ice state", 0)
	record.AddAttrs(slog.String("state", "checking"))
	if got := derived.summary(record); got != "ice state (pion.state=checking)" {
		t.Errorf("summary = %q", got)
	}
	if derived.send != handler.send {
		t.Error("derived handler does not share the program pointer")
	}
}
