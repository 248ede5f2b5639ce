// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

// Package robottest provides an in-process fake robot for tests and
// local development.
//
// A [Robot] serves the two signaling endpoints the real robot exposes
// on port 9991: GET /con_notify returns a discovery payload embedding a
// freshly generated RSA public key, and POST /con_ing_<suffix> decrypts
// the client's session key and offer, answers the offer with a pion
// PeerConnection, and returns the answer encrypted under the session
// key. Once the client's "data" channel opens the robot issues a
// validation challenge and checks the reply.
//
// Every text frame the robot receives is delivered on [Robot.Frames].
// Tests use [Robot.Send] to push frames to the client and
// [Robot.CloseChannels] to simulate the robot dropping the session.
//
// This package imports no go2remote transport code, so the transport
// package's own tests can use it.
package robottest
