// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/richgrov/go2remote/lib/robotcrypto"
)

// ErrMalformedFrame reports an inbound text frame that is not a JSON
// object with a string "type", or a validation frame whose data is not
// a string.
var ErrMalformedFrame = errors.New("malformed inbound frame")

// Sender writes one outbound frame. The transport's Connection
// satisfies it.
type Sender interface {
	Send(message any) error
}

// RouterConfig configures a Router.
type RouterConfig struct {
	// Sender carries validation responses back to the robot. Required.
	Sender Sender

	// OnMessage receives every inbound frame that is not a validation
	// challenge. Optional.
	OnMessage func(Inbound)

	// OnValidated is called each time the robot reports that
	// validation succeeded. Optional.
	OnValidated func()

	Logger *slog.Logger
}

// Router dispatches inbound frames.
type Router struct {
	sender      Sender
	onMessage   func(Inbound)
	onValidated func()
	logger      *slog.Logger
}

// NewRouter returns a Router for config.
func NewRouter(config RouterConfig) *Router {
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Router{
		sender:      config.Sender,
		onMessage:   config.OnMessage,
		onValidated: config.OnValidated,
		logger:      logger,
	}
}

// HandleText routes one text frame. A validation challenge is answered
// through the Sender; "Validation Ok." needs no answer. The returned
// error wraps ErrMalformedFrame for undecodable frames, or the Sender's
// error when the answer could not be sent. Neither is fatal to the
// session.
func (r *Router) HandleText(text string) error {
	var frame Inbound
	if err := json.Unmarshal([]byte(text), &frame); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}

	if frame.Type != TypeValidation {
		r.logger.Debug("robot message received", "type", frame.Type, "topic", frame.Topic)
		if r.onMessage != nil {
			r.onMessage(frame)
		}
		return nil
	}

	var challenge string
	if err := json.Unmarshal(frame.Data, &challenge); err != nil {
		return fmt.Errorf("%w: validation data is not a string: %v", ErrMalformedFrame, err)
	}

	if challenge == ValidationOK {
		r.logger.Info("robot accepted validation")
		if r.onValidated != nil {
			r.onValidated()
		}
		return nil
	}

	r.logger.Debug("answering validation challenge")
	response := ValidationResponse{
		Topic: "",
		Type:  TypeValidation,
		Data:  robotcrypto.ChallengeResponse(challenge),
	}
	if err := r.sender.Send(response); err != nil {
		return fmt.Errorf("sending validation response: %w", err)
	}
	return nil
}

// HandleBinary drops a binary frame. The robot sends none on the data
// channel.
func (r *Router) HandleBinary(data []byte) {
	r.logger.Warn("dropping unexpected binary frame", "length", len(data))
}
