// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

package transport

import (
	"errors"
	"fmt"

	"github.com/richgrov/go2remote/lib/robotcrypto"
	"github.com/richgrov/go2remote/protocol"
	"github.com/richgrov/go2remote/signaling"
)

var (
	// ErrNotOpen is returned when sending while the Connection is not
	// connected or the data channel is not open.
	ErrNotOpen = errors.New("data channel is not open")

	// ErrInvalidState is returned when an operation is not legal in the
	// Connection's current state, such as a second Connect.
	ErrInvalidState = errors.New("invalid connection state")

	// ErrChannelClosed reports that the data channel closed without
	// Dispose being called.
	ErrChannelClosed = errors.New("data channel closed unexpectedly")

	// ErrPeerConnectionFailed reports that ICE or DTLS failed after the
	// handshake.
	ErrPeerConnectionFailed = errors.New("peer connection failed")

	// ErrDisposed is returned by Connect when Dispose ran while it was
	// still connecting.
	ErrDisposed = errors.New("connection disposed")
)

// Kind classifies an Error by the layer it came from.
type Kind int

const (
	// KindNetwork covers HTTP signaling failures.
	KindNetwork Kind = iota + 1

	// KindCrypto covers encryption and decryption failures.
	KindCrypto

	// KindChannel covers peer connection and data channel failures.
	KindChannel

	// KindProtocol covers payloads that do not decode as expected.
	KindProtocol
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindCrypto:
		return "crypto"
	case KindChannel:
		return "channel"
	case KindProtocol:
		return "protocol"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is the error type reported to the error sink and returned from
// Connection methods. Use errors.As to read the Kind; errors.Is sees
// through to the cause.
type Error struct {
	Kind Kind

	// Op names the step that failed, such as "signaling" or "send".
	Op string

	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Kind, e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// classify wraps err in an Error for op. An err that already is an
// Error keeps its kind.
func classify(op string, err error) *Error {
	var existing *Error
	if errors.As(err, &existing) {
		return existing
	}

	kind := KindChannel
	switch {
	case errors.Is(err, signaling.ErrNetwork):
		kind = KindNetwork
	case errors.Is(err, robotcrypto.ErrCrypto):
		kind = KindCrypto
	case errors.Is(err, signaling.ErrMalformedDiscovery),
		errors.Is(err, signaling.ErrMalformedAnswer),
		errors.Is(err, protocol.ErrMalformedFrame):
		kind = KindProtocol
	}
	return &Error{Kind: kind, Op: op, Err: err}
}
