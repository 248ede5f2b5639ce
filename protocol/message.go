// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

package protocol

import (
	"encoding/json"
	"time"
)

// Message types carried in the "type" field of every frame.
const (
	TypeHeartbeat  = "heartbeat"
	TypeValidation = "validation"
	TypeMessage    = "msg"
)

// TopicSportRequest is the topic of every sport API request.
const TopicSportRequest = "rt/api/sport/request"

// ValidationOK is the challenge text the robot sends once it has
// accepted a validation response. It needs no reply.
const ValidationOK = "Validation Ok."

// heartbeatTimeLayout renders timeInStr as "YYYY-MM-DD HH:MM:SS".
const heartbeatTimeLayout = "2006-01-02 15:04:05"

// Envelope is an outbound sport API request.
type Envelope struct {
	Type  string  `json:"type"`
	Topic string  `json:"topic"`
	Data  Request `json:"data"`
}

// Request is the body of an Envelope.
type Request struct {
	Header Header `json:"header"`

	// Parameter is the JSON encoding of the API parameter, carried as a
	// string.
	Parameter string `json:"parameter"`
}

// Header identifies a request.
type Header struct {
	Identity Identity `json:"identity"`
}

// Identity pairs a request id with the sport API it invokes.
type Identity struct {
	ID    int64 `json:"id"`
	APIID int   `json:"api_id"`
}

// Heartbeat is the keep-alive frame.
type Heartbeat struct {
	Type string        `json:"type"`
	Data HeartbeatTime `json:"data"`
}

// HeartbeatTime is the time a heartbeat was sent.
type HeartbeatTime struct {
	TimeInStr string `json:"timeInStr"`
	TimeInNum int64  `json:"timeInNum"`
}

// NewHeartbeat returns the heartbeat frame for now. timeInStr uses the
// local time zone; timeInNum is whole unix seconds.
func NewHeartbeat(now time.Time) Heartbeat {
	return Heartbeat{
		Type: TypeHeartbeat,
		Data: HeartbeatTime{
			TimeInStr: now.Local().Format(heartbeatTimeLayout),
			TimeInNum: now.Unix(),
		},
	}
}

// ValidationResponse answers a validation challenge.
type ValidationResponse struct {
	Topic string `json:"topic"`
	Type  string `json:"type"`
	Data  string `json:"data"`
}

// Inbound is the generic shape of a frame received from the robot.
// Data is left undecoded for the consumer.
type Inbound struct {
	Type  string          `json:"type"`
	Topic string          `json:"topic,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
}
