// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

package transport

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestPionLoggerFactory(t *testing.T) {
	var output bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&output, &slog.HandlerOptions{Level: slog.LevelInfo}))

	pionLogger := pionLoggerFactory{logger: logger}.NewLogger("ice")
	pionLogger.Debugf("hidden %d", 1)
	pionLogger.Trace("hidden trace")
	pionLogger.Infof("gathered %d candidates", 3)
	pionLogger.Warn("turn server unreachable")
	pionLogger.Errorf("failed to %s", "bind")

	logged := output.String()
	if strings.Contains(logged, "hidden") {
		t.Errorf("records below the handler level were emitted:\n%s", logged)
	}
	for _, want := range []string{
		`level=INFO msg="gathered 3 candidates" pion=ice`,
		`level=WARN msg="turn server unreachable" pion=ice`,
		`level=ERROR msg="failed to bind" pion=ice`,
	} {
		if !strings.Contains(logged, want) {
			t.Errorf("log output missing %q:\n%s", want, logged)
		}
	}
}
