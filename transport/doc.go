// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

// Package transport owns the realtime session with a robot: one pion
// PeerConnection carrying a single data channel labelled "data", plus a
// receive-only video transceiver and a send-receive audio transceiver
// that the robot expects to see in the offer. Media is never decoded;
// inbound tracks are logged and ignored.
//
// A [Connection] walks a small state machine:
//
//	New → OfferCreated → AwaitingAnswer → Connected → Closed
//
// with Errored reachable from every non-terminal state. Closed and
// Errored are terminal; a Connection is never reused. Connect creates
// the offer, waits for ICE gathering to finish (vanilla ICE: the robot
// receives every candidate in one round-trip), hands the offer to a
// [Signaler], applies the answer, and waits for the data channel to
// open. Once connected a heartbeat frame is sent every two seconds and
// inbound frames are routed through [protocol.Router], which answers
// the robot's validation challenge.
//
// Pion invokes its callbacks on its own goroutines. Those callbacks
// never touch Connection state: they post events to a buffered channel
// drained by a single event-loop goroutine, which performs every state
// transition triggered from the network side. Connect and Dispose may
// be called from any goroutine.
//
// Signaling is abstracted behind [Signaler]. [RobotSignaler] runs the
// robot's HTTP key exchange on port 9991 (discovery, hybrid AES/RSA
// encryption of the offer, decryption of the answer). [MemorySignaler]
// hands offers to an in-process answerer for tests.
//
// Every failure is reported as an [*Error] carrying a [Kind] (network,
// crypto, channel, protocol) to the configured error sink. Handshake
// failures leave the Connection Errored; send failures and malformed
// inbound frames are reported without tearing the session down.
//
// [Controller] is the surface a host drives: Move, Emote, and Dispose.
// [NopController] implements it without a robot for UI development.
package transport
