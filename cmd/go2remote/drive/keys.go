// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

package drive

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the drive key bindings.
type KeyMap struct {
	Forward   key.Binding
	Back      key.Binding
	Left      key.Binding
	Right     key.Binding
	TurnLeft  key.Binding
	TurnRight key.Binding
	Stop      key.Binding
	Quit      key.Binding
}

// DefaultKeyMap is WASD for translation and Q/E for yaw.
var DefaultKeyMap = KeyMap{
	Forward: key.NewBinding(
		key.WithKeys("w", "up"),
		key.WithHelp("w/↑", "forward"),
	),
	Back: key.NewBinding(
		key.WithKeys("s", "down"),
		key.WithHelp("s/↓", "back"),
	),
	Left: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "strafe left"),
	),
	Right: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "strafe right"),
	),
	TurnLeft: key.NewBinding(
		key.WithKeys("q", "left"),
		key.WithHelp("q/←", "turn left"),
	),
	TurnRight: key.NewBinding(
		key.WithKeys("e", "right"),
		key.WithHelp("e/→", "turn right"),
	),
	Stop: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "stop"),
	),
	Quit: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "quit"),
	),
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Forward, k.Back, k.Left, k.Right, k.TurnLeft, k.TurnRight, k.Stop, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Forward, k.Back, k.Left, k.Right},
		{k.TurnLeft, k.TurnRight},
		{k.Stop, k.Quit},
	}
}
