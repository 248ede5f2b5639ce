// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

package transport

import "fmt"

// State is the lifecycle position of a Connection.
type State int

const (
	// StateNew is a constructed Connection that has not started
	// connecting.
	StateNew State = iota

	// StateOfferCreated means the local offer is set and ICE gathering
	// is in progress.
	StateOfferCreated

	// StateAwaitingAnswer means the complete offer has been handed to
	// the Signaler.
	StateAwaitingAnswer

	// StateConnected means the data channel is open and the heartbeat
	// is running.
	StateConnected

	// StateClosed is terminal: Dispose was called.
	StateClosed

	// StateErrored is terminal: the handshake or the session failed.
	StateErrored
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "new"
	case StateOfferCreated:
		return "offer-created"
	case StateAwaitingAnswer:
		return "awaiting-answer"
	case StateConnected:
		return "connected"
	case StateClosed:
		return "closed"
	case StateErrored:
		return "errored"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Terminal reports whether no further transitions are possible.
func (s State) Terminal() bool {
	return s == StateClosed || s == StateErrored
}

// transitions lists the legal successors of each state.
var transitions = map[State][]State{
	StateNew:            {StateOfferCreated, StateClosed, StateErrored},
	StateOfferCreated:   {StateAwaitingAnswer, StateClosed, StateErrored},
	StateAwaitingAnswer: {StateConnected, StateClosed, StateErrored},
	StateConnected:      {StateClosed, StateErrored},
}

// canTransition reports whether from → to is legal.
func canTransition(from, to State) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
