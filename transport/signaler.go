// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

package transport

import (
	"context"

	"github.com/pion/webrtc/v4"
)

// Signaler abstracts the exchange of session descriptions with the
// robot. The production implementation is RobotSignaler; tests use
// MemorySignaler.
//
// The signaling model is vanilla ICE: all ICE candidates are gathered
// before the offer is handed over, so connection establishment requires
// exactly one signaling round-trip (offer → answer).
type Signaler interface {
	// Exchange delivers a complete offer and returns the robot's
	// answer. Implementations must honor ctx cancellation.
	Exchange(ctx context.Context, offer webrtc.SessionDescription) (webrtc.SessionDescription, error)
}
