// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

package transport

import "log/slog"

// Controller is what a host drives once it has a session.
type Controller interface {
	// Move sends a velocity command: x forward, y lateral, z yaw.
	Move(x, y, z float64) error

	// Emote triggers a gesture by id.
	Emote(id int) error

	// Dispose ends the session. It is idempotent.
	Dispose() error
}

// Compile-time interface checks.
var (
	_ Controller = (*Connection)(nil)
	_ Controller = NopController{}
)

// NopController accepts every command and sends nothing. Hosts use it
// to exercise their controls without a robot.
type NopController struct {
	// Logger receives one debug record per command. Nil discards.
	Logger *slog.Logger
}

func (c NopController) Move(x, y, z float64) error {
	c.log("move", "x", x, "y", y, "z", z)
	return nil
}

func (c NopController) Emote(id int) error {
	c.log("emote", "id", id)
	return nil
}

func (c NopController) Dispose() error {
	c.log("dispose")
	return nil
}

func (c NopController) log(command string, args ...any) {
	if c.Logger == nil {
		return
	}
	c.Logger.Debug("nop controller command", append([]any{"command", command}, args...)...)
}
