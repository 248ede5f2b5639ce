// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

// Package drive is the keyboard teleoperation TUI behind
// "go2remote drive".
//
// Terminals report key presses but not releases, so each axis stays
// active for a hold window after its last press. Key auto-repeat keeps
// a held key inside the window. While any axis is active the model
// sends a Move on every tick; when all axes lapse it sends one zero
// Move and goes quiet.
package drive
