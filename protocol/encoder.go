// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

package protocol

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	mathrand "math/rand/v2"
	"sync"

	"github.com/richgrov/go2remote/lib/clock"
)

// requestIDModulus bounds the millisecond component of a request id.
const requestIDModulus = 1 << 31

// requestIDJitter is the exclusive upper bound of the random component
// added to every request id.
const requestIDJitter = 1000

// Command is one sport API call before encoding.
type Command struct {
	// RequestID is normally assigned by the Encoder.
	RequestID int64

	APIID int

	// Parameter is JSON-encoded into Request.Parameter.
	Parameter any
}

// moveParameter fixes the x, y, z field order of a move parameter.
type moveParameter struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Encoder builds sport API envelopes. It is safe for concurrent use.
type Encoder struct {
	clock clock.Clock

	mu     sync.Mutex
	jitter *mathrand.Rand
}

// NewEncoder returns an Encoder whose request ids come from clk and a
// generator seeded from random. A nil random uses crypto/rand.
func NewEncoder(clk clock.Clock, random io.Reader) (*Encoder, error) {
	if clk == nil {
		clk = clock.Real()
	}
	if random == nil {
		random = rand.Reader
	}

	var seed [32]byte
	if _, err := io.ReadFull(random, seed[:]); err != nil {
		return nil, fmt.Errorf("seeding request id generator: %w", err)
	}
	return &Encoder{
		clock:  clk,
		jitter: mathrand.New(mathrand.NewChaCha8(seed)),
	}, nil
}

// NextRequestID returns the current unix milliseconds modulo 2^31 plus
// a random value in [0, 1000). Ids may collide; the robot treats the
// command stream as fire-and-forget.
func (e *Encoder) NextRequestID() int64 {
	millis := e.clock.Now().UnixMilli() % requestIDModulus

	e.mu.Lock()
	jitter := e.jitter.Int64N(requestIDJitter)
	e.mu.Unlock()

	return millis + jitter
}

// Encode wraps command in a sport request envelope. A zero RequestID
// is replaced by NextRequestID.
func (e *Encoder) Encode(command Command) (Envelope, error) {
	parameter, err := json.Marshal(command.Parameter)
	if err != nil {
		return Envelope{}, fmt.Errorf("encoding parameter of api %d: %w", command.APIID, err)
	}

	requestID := command.RequestID
	if requestID == 0 {
		requestID = e.NextRequestID()
	}

	return Envelope{
		Type:  TypeMessage,
		Topic: TopicSportRequest,
		Data: Request{
			Header: Header{
				Identity: Identity{ID: requestID, APIID: command.APIID},
			},
			Parameter: string(parameter),
		},
	}, nil
}

// Move encodes a velocity command: x forward, y lateral, z yaw rate.
func (e *Encoder) Move(x, y, z float64) (Envelope, error) {
	return e.Encode(Command{
		APIID:     APIMove,
		Parameter: moveParameter{X: x, Y: y, Z: z},
	})
}

// Emote encodes a gesture. The gesture id is both the api id and the
// parameter.
func (e *Encoder) Emote(id int) (Envelope, error) {
	return e.Encode(Command{APIID: id, Parameter: id})
}
