// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil holds channel assertions shared by go2remote tests.
//
// [RequireReceive] and [RequireClosed] wrap the select-with-timeout
// safety valve so a broken test fails instead of hanging.
// [RequireNoReceive] asserts that nothing arrives within a window, which
// is how tests check that a disposed session stays silent.
//
// All helpers call Fatalf on failure.
package testutil
