// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

package signaling

import "errors"

var (
	// ErrNetwork wraps every failure to reach the robot's signaling
	// endpoint or to get a 2xx response from it.
	ErrNetwork = errors.New("signaling request failed")

	// ErrMalformedDiscovery reports a /con_notify response that does
	// not decode to a usable discovery payload.
	ErrMalformedDiscovery = errors.New("malformed discovery payload")

	// ErrMalformedAnswer reports a decrypted answer that is not a
	// session description.
	ErrMalformedAnswer = errors.New("malformed session description answer")
)
