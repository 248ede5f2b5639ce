// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

package emote

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/richgrov/go2remote/protocol"
)

func TestDefaultTable(t *testing.T) {
	table := Default()
	cases := map[string]int{
		"soft-stop": 1003,
		"hard-stop": 1001,
		"shake":     1016,
		"heart":     1036,
		"beg":       1029,
		"pounce":    1032,
		"jump":      1031,
		"sit":       1009,
		"stretch":   1017,
		"roll":      1021,
		"dance1":    1022,
		"dance2":    1023,
		"flip":      1030,
	}
	if table.Len() != len(cases) {
		t.Errorf("Len = %d, want %d", table.Len(), len(cases))
	}
	for name, want := range cases {
		entry, err := table.Lookup(name)
		if err != nil {
			t.Errorf("Lookup(%q): %v", name, err)
			continue
		}
		if entry.ID != want {
			t.Errorf("Lookup(%q).ID = %d, want %d", name, entry.ID, want)
		}
	}
	if first := table.Entries()[0]; first.Name != "soft-stop" {
		t.Errorf("first entry = %q, want soft-stop", first.Name)
	}
}

func TestLookup(t *testing.T) {
	table := Default()

	entry, err := table.Lookup("  Heart ")
	if err != nil || entry.Name != "heart" {
		t.Errorf("Lookup(Heart) = %+v, %v", entry, err)
	}

	entry, err = table.Lookup("1030")
	if err != nil || entry.Name != "flip" || entry.ID != protocol.APIFrontFlip {
		t.Errorf("Lookup(1030) = %+v, %v", entry, err)
	}

	entry, err = table.Lookup("1042")
	if err != nil || entry.Name != "" || entry.ID != 1042 {
		t.Errorf("Lookup(1042) = %+v, %v", entry, err)
	}

	if _, err := table.Lookup("moonwalk"); !errors.Is(err, ErrUnknown) {
		t.Errorf("Lookup(moonwalk) = %v, want ErrUnknown", err)
	}
	if _, err := table.Lookup("-5"); err == nil {
		t.Error("Lookup(-5) succeeded")
	}
}

func TestMerge(t *testing.T) {
	data := []byte(`{
		// newer firmware
		"wiggle": 1033,
		"heart": 1099,
		"bow": 1040, /* trailing comma below */
	}`)
	table, err := Default().Merge(data)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if table.Len() != Default().Len()+2 {
		t.Errorf("Len = %d, want %d", table.Len(), Default().Len()+2)
	}
	if entry, _ := table.Lookup("heart"); entry.ID != 1099 {
		t.Errorf("heart = %d, want override 1099", entry.ID)
	}
	entries := table.Entries()
	if entries[len(entries)-2].Name != "bow" || entries[len(entries)-1].Name != "wiggle" {
		t.Errorf("appended entries = %+v, want bow then wiggle", entries[len(entries)-2:])
	}
	if entry, _ := Default().Lookup("heart"); entry.ID != 1036 {
		t.Error("Merge mutated the receiver")
	}
}

func TestMergeRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"not an object": `[1, 2]`,
		"bad name":      `{"Big Wave": 1050}`,
		"zero id":       `{"wave": 0}`,
		"string id":     `{"wave": "1050"}`,
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Default().Merge([]byte(data)); err == nil {
				t.Errorf("Merge(%s) succeeded", data)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	table, err := LoadFile("")
	if err != nil || table.Len() != Default().Len() {
		t.Fatalf("LoadFile(\"\") = %d entries, %v", table.Len(), err)
	}

	path := filepath.Join(t.TempDir(), "emotes.jsonc")
	if err := os.WriteFile(path, []byte(`{"wiggle": 1033}`), 0o644); err != nil {
		t.Fatal(err)
	}
	table, err = LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if entry, err := table.Lookup("wiggle"); err != nil || entry.ID != 1033 {
		t.Errorf("wiggle = %+v, %v", entry, err)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.jsonc")); err == nil {
		t.Error("LoadFile of a missing file succeeded")
	}
}
