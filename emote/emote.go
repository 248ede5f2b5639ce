// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

// Package emote maps gesture names to the robot's sport API ids.
//
// The built-in table covers the gestures the Go2 firmware exposes plus
// the two stop commands. A JSONC file of "name": id pairs can be merged
// over it to rename gestures or add ones from newer firmware:
//
//	{
//	  // firmware 1.1.7
//	  "wiggle": 1033,
//	  "heart": 1036,
//	}
package emote

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/richgrov/go2remote/protocol"
)

// ErrUnknown is returned by Lookup for names not in the table.
var ErrUnknown = errors.New("unknown emote")

var namePattern = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// Entry is one named gesture.
type Entry struct {
	Name string
	ID   int
}

// Table is an ordered set of named gestures. A Table is immutable once
// built and safe for concurrent use.
type Table struct {
	entries []Entry
	byName  map[string]int
}

// Default returns the built-in table.
func Default() *Table {
	return newTable([]Entry{
		{"soft-stop", protocol.APIStopMove},
		{"hard-stop", protocol.APIDamp},
		{"shake", protocol.APIHello},
		{"heart", protocol.APIFingerHeart},
		{"beg", protocol.APIScrape},
		{"pounce", protocol.APIFrontPounce},
		{"jump", protocol.APIFrontJump},
		{"sit", protocol.APISit},
		{"stretch", protocol.APIStretch},
		{"roll", protocol.APIWallow},
		{"dance1", protocol.APIDance1},
		{"dance2", protocol.APIDance2},
		{"flip", protocol.APIFrontFlip},
	})
}

func newTable(entries []Entry) *Table {
	table := &Table{
		entries: entries,
		byName:  make(map[string]int, len(entries)),
	}
	for i, entry := range entries {
		table.byName[entry.Name] = i
	}
	return table
}

// Entries returns the gestures in table order.
func (t *Table) Entries() []Entry {
	return slices.Clone(t.entries)
}

// Len returns the number of gestures.
func (t *Table) Len() int {
	return len(t.entries)
}

// Lookup resolves a gesture name (case-insensitive) or a positive
// numeric id. Numeric ids not in the table are passed through with an
// empty name so firmware gestures can be tried before they are named.
func (t *Table) Lookup(nameOrID string) (Entry, error) {
	key := strings.ToLower(strings.TrimSpace(nameOrID))
	if index, ok := t.byName[key]; ok {
		return t.entries[index], nil
	}
	if id, err := strconv.Atoi(key); err == nil {
		if id <= 0 {
			return Entry{}, fmt.Errorf("emote id %d must be positive", id)
		}
		for _, entry := range t.entries {
			if entry.ID == id {
				return entry, nil
			}
		}
		return Entry{ID: id}, nil
	}
	return Entry{}, fmt.Errorf("%w %q", ErrUnknown, nameOrID)
}

// Merge parses a JSONC object of name → id and returns a new table with
// those entries applied over t. Existing names keep their position; new
// names are appended in sorted order.
func (t *Table) Merge(data []byte) (*Table, error) {
	var overrides map[string]int
	if err := json.Unmarshal(jsonc.ToJSON(data), &overrides); err != nil {
		return nil, fmt.Errorf("parsing emote table: %w", err)
	}

	entries := slices.Clone(t.entries)
	var added []Entry
	for name, id := range overrides {
		if !namePattern.MatchString(name) {
			return nil, fmt.Errorf("emote name %q must be lowercase letters, digits, and dashes", name)
		}
		if id <= 0 {
			return nil, fmt.Errorf("emote %q: id %d must be positive", name, id)
		}
		if index, ok := t.byName[name]; ok {
			entries[index].ID = id
			continue
		}
		added = append(added, Entry{Name: name, ID: id})
	}
	slices.SortFunc(added, func(a, b Entry) int { return strings.Compare(a.Name, b.Name) })
	return newTable(append(entries, added...)), nil
}

// LoadFile merges the JSONC table at path over the built-in table. An
// empty path returns the built-in table.
func LoadFile(path string) (*Table, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading emote table: %w", err)
	}
	table, err := Default().Merge(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}
