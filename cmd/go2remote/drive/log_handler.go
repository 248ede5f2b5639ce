// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

package drive

import (
	"context"
	"log/slog"
	"strings"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
)

// logRecordMsg delivers a log record to the status line.
type logRecordMsg struct {
	Summary string
	Level   slog.Level
}

type sendFunc func(tea.Msg)

// LogHandler is a slog.Handler that shows records in the drive status
// line while a program is attached, and writes them to a fallback
// handler otherwise. Connection setup and teardown logs therefore reach
// stderr, and logs during the session do not corrupt the screen.
//
// Handlers derived with WithAttrs or WithGroup share the attached
// program.
type LogHandler struct {
	level    slog.Level
	send     *atomic.Pointer[sendFunc]
	fallback slog.Handler
	attrs    []slog.Attr
	groups   []string
}

// NewLogHandler returns a handler for records at or above level.
func NewLogHandler(level slog.Level, fallback slog.Handler) *LogHandler {
	return &LogHandler{
		level:    level,
		send:     &atomic.Pointer[sendFunc]{},
		fallback: fallback,
	}
}

// SetProgram attaches program, or detaches when program is nil.
func (handler *LogHandler) SetProgram(program *tea.Program) {
	if program == nil {
		handler.send.Store(nil)
		return
	}
	handler.setSender(program.Send)
}

func (handler *LogHandler) setSender(send sendFunc) {
	handler.send.Store(&send)
}

// Enabled implements slog.Handler.
func (handler *LogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= handler.level
}

// Handle implements slog.Handler. Delivery to the program is
// asynchronous because records can be logged from inside Update.
func (handler *LogHandler) Handle(ctx context.Context, record slog.Record) error {
	send := handler.send.Load()
	if send == nil {
		if handler.fallback == nil {
			return nil
		}
		return handler.fallback.Handle(ctx, record)
	}

	message := logRecordMsg{Summary: handler.summary(record), Level: record.Level}
	go (*send)(message)
	return nil
}

// summary formats "message (key=value, ...)".
func (handler *LogHandler) summary(record slog.Record) string {
	prefix := ""
	if len(handler.groups) > 0 {
		prefix = strings.Join(handler.groups, ".") + "."
	}
	var parts []string
	for _, attr := range handler.attrs {
		parts = append(parts, attr.Key+"="+attr.Value.String())
	}
	record.Attrs(func(attr slog.Attr) bool {
		parts = append(parts, prefix+attr.Key+"="+attr.Value.String())
		return true
	})
	if len(parts) == 0 {
		return record.Message
	}
	return record.Message + " (" + strings.Join(parts, ", ") + ")"
}

// WithAttrs implements slog.Handler.
func (handler *LogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := handler.derive()
	derived.attrs = append(derived.attrs, attrs...)
	if handler.fallback != nil {
		derived.fallback = handler.fallback.WithAttrs(attrs)
	}
	return derived
}

// WithGroup implements slog.Handler.
func (handler *LogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return handler
	}
	derived := handler.derive()
	derived.groups = append(derived.groups, name)
	if handler.fallback != nil {
		derived.fallback = handler.fallback.WithGroup(name)
	}
	return derived
}

func (handler *LogHandler) derive() *LogHandler {
	return &LogHandler{
		level:    handler.level,
		send:     handler.send,
		fallback: handler.fallback,
		attrs:    append([]slog.Attr(nil), handler.attrs...),
		groups:   append([]string(nil), handler.groups...),
	}
}
