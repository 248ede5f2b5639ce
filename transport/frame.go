// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

package transport

import "time"

// Direction is the direction of a data channel frame.
type Direction int

const (
	Inbound Direction = iota + 1
	Outbound
)

func (d Direction) String() string {
	switch d {
	case Inbound:
		return "inbound"
	case Outbound:
		return "outbound"
	default:
		return "unknown"
	}
}

// Frame is one text frame seen on the data channel.
type Frame struct {
	Direction Direction
	Time      time.Time
	Payload   string
}

// FrameObserver is called for every text frame sent or received. It
// runs on the sending goroutine or the event loop and must not block.
type FrameObserver func(Frame)
