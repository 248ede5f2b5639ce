// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

package transport

import (
	"sync"
	"time"

	"github.com/richgrov/go2remote/lib/clock"
	"github.com/richgrov/go2remote/protocol"
)

// DefaultHeartbeatInterval is the keep-alive period the robot expects.
const DefaultHeartbeatInterval = 2 * time.Second

// heartbeat sends a keep-alive frame on every tick until stopped.
type heartbeat struct {
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// startHeartbeat starts the heartbeat loop. send errors go to onError;
// the loop keeps running after a failed send.
func startHeartbeat(clk clock.Clock, interval time.Duration, send func(any) error, onError func(error)) *heartbeat {
	h := &heartbeat{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	ticker := clk.NewTicker(interval)

	go func() {
		defer close(h.done)
		defer ticker.Stop()
		for {
			select {
			case <-h.stop:
				return
			case <-ticker.C:
			}

			// A tick and stop may be ready together; stop wins.
			select {
			case <-h.stop:
				return
			default:
			}

			if err := send(protocol.NewHeartbeat(clk.Now())); err != nil {
				onError(err)
			}
		}
	}()
	return h
}

// Stop ends the loop and waits for it to exit. No frame is sent after
// Stop returns. Must not be called from send or onError.
func (h *heartbeat) Stop() {
	h.stopOnce.Do(func() { close(h.stop) })
	<-h.done
}
