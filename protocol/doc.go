// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

// Package protocol defines the application messages exchanged with the
// robot over the "data" channel once a session is connected.
//
// Every frame is a JSON text message with a "type" field. Clients send
// three kinds:
//
//   - "heartbeat", every two seconds while connected, carrying the local
//     wall-clock time as text and as unix seconds.
//   - "validation", answering the robot's challenge with
//     [robotcrypto.ChallengeResponse].
//   - "msg", a sport API request on topic [TopicSportRequest]. The
//     request parameter is itself JSON-encoded into a string.
//
// [Encoder] builds "msg" envelopes with fresh request ids. [Router]
// dispatches inbound frames: it answers validation challenges through a
// [Sender] and passes everything else to an optional hook.
package protocol
