// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/richgrov/go2remote/lib/version"
)

func TestVersion(t *testing.T) {
	var output bytes.Buffer
	if err := newRoot(&output).Execute([]string{"version"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.HasPrefix(output.String(), "go2remote "+version.Version) {
		t.Errorf("output = %q", output.String())
	}
}

func TestRootListsCommands(t *testing.T) {
	root := newRoot(&bytes.Buffer{})
	var help bytes.Buffer
	root.PrintHelp(&help)
	for _, name := range []string{"connect", "move", "emote", "emotes", "drive", "capture", "version"} {
		if !strings.Contains(help.String(), "  "+name) {
			t.Errorf("help missing %q:\n%s", name, help.String())
		}
	}
}

func TestUnexpectedArguments(t *testing.T) {
	err := newRoot(&bytes.Buffer{}).Execute([]string{"move", "forward", "--dry-run"})
	if err == nil || !strings.Contains(err.Error(), "unexpected argument: forward") {
		t.Errorf("Execute = %v, want unexpected argument error", err)
	}
}
