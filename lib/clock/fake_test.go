// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"testing"
	"time"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFakeClockNow(t *testing.T) {
	clock := Fake(epoch)
	if got := clock.Now(); !got.Equal(epoch) {
		t.Fatalf("Now() = %v, want %v", got, epoch)
	}
	clock.Advance(5 * time.Second)
	if got, want := clock.Now(), epoch.Add(5*time.Second); !got.Equal(want) {
		t.Fatalf("Now() after Advance = %v, want %v", got, want)
	}
}

func TestFakeClockAfter(t *testing.T) {
	clock := Fake(epoch)
	channel := clock.After(3 * time.Second)

	clock.Advance(2 * time.Second)
	select {
	case <-channel:
		t.Fatal("After fired before deadline")
	default:
	}

	clock.Advance(1 * time.Second)
	select {
	case <-channel:
	default:
		t.Fatal("After did not fire at deadline")
	}
	if pending := clock.PendingCount(); pending != 0 {
		t.Errorf("PendingCount() = %d after one-shot fired, want 0", pending)
	}
}

func TestFakeClockAfterNonPositive(t *testing.T) {
	clock := Fake(epoch)
	for _, duration := range []time.Duration{0, -time.Second} {
		select {
		case <-clock.After(duration):
		default:
			t.Fatalf("After(%v) should be ready immediately", duration)
		}
	}
}

func TestFakeClockTicker(t *testing.T) {
	clock := Fake(epoch)
	ticker := clock.NewTicker(2 * time.Second)
	defer ticker.Stop()

	clock.Advance(1999 * time.Millisecond)
	select {
	case <-ticker.C:
		t.Fatal("ticker fired before first interval")
	default:
	}

	clock.Advance(time.Millisecond)
	select {
	case <-ticker.C:
	default:
		t.Fatal("ticker did not fire at first interval")
	}

	clock.Advance(2 * time.Second)
	select {
	case tick := <-ticker.C:
		if want := epoch.Add(4 * time.Second); !tick.Equal(want) {
			t.Errorf("tick = %v, want %v", tick, want)
		}
	default:
		t.Fatal("ticker did not fire at second interval")
	}
}

func TestFakeClockTickerDropsWhenFull(t *testing.T) {
	clock := Fake(epoch)
	ticker := clock.NewTicker(time.Second)
	defer ticker.Stop()

	clock.Advance(5 * time.Second)

	received := 0
	for {
		select {
		case <-ticker.C:
			received++
			continue
		default:
		}
		break
	}
	if received != 1 {
		t.Errorf("received %d buffered ticks, want 1", received)
	}
}

func TestFakeClockTickerStop(t *testing.T) {
	clock := Fake(epoch)
	ticker := clock.NewTicker(time.Second)
	ticker.Stop()

	clock.Advance(3 * time.Second)
	select {
	case <-ticker.C:
		t.Fatal("stopped ticker fired")
	default:
	}
	if pending := clock.PendingCount(); pending != 0 {
		t.Errorf("PendingCount() = %d after Stop, want 0", pending)
	}
}

func TestFakeClockTickerNonPositivePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("NewTicker(0) did not panic")
		}
	}()
	Fake(epoch).NewTicker(0)
}

func TestFakeClockWaitForTimers(t *testing.T) {
	clock := Fake(epoch)
	registered := make(chan struct{})

	go func() {
		ticker := clock.NewTicker(time.Second)
		defer ticker.Stop()
		close(registered)
		<-ticker.C
	}()

	clock.WaitForTimers(1)
	<-registered
	if pending := clock.PendingCount(); pending != 1 {
		t.Fatalf("PendingCount() = %d, want 1", pending)
	}
}
