// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source so that periodic
// work (the session heartbeat, command request ids, teleop repeat
// loops) can be driven deterministically in tests.
//
// Production code holds a Clock field set to Real(). Tests construct a
// FakeClock with Fake(), wait for the code under test to register its
// timers with WaitForTimers, and then move time forward with Advance:
//
//	fake := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	scheduler := newHeartbeat(fake, ...)
//	fake.WaitForTimers(1)
//	fake.Advance(2 * time.Second)
//
// Nothing in this package sleeps on the wall clock.
package clock
