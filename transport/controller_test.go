// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

package transport

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNopController(t *testing.T) {
	var output bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&output, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var controller Controller = NopController{Logger: logger}
	if err := controller.Move(0.5, 0, 0); err != nil {
		t.Errorf("Move: %v", err)
	}
	if err := controller.Emote(1016); err != nil {
		t.Errorf("Emote: %v", err)
	}
	if err := controller.Dispose(); err != nil {
		t.Errorf("Dispose: %v", err)
	}

	logged := output.String()
	for _, want := range []string{"command=move", "x=0.5", "command=emote", "id=1016", "command=dispose"} {
		if !strings.Contains(logged, want) {
			t.Errorf("log output missing %q:\n%s", want, logged)
		}
	}

	if err := (NopController{}).Move(1, 1, 1); err != nil {
		t.Errorf("Move without logger: %v", err)
	}
}
