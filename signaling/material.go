// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

package signaling

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/richgrov/go2remote/lib/robotcrypto"
	"github.com/richgrov/go2remote/lib/secret"
)

// Material is the key material of a single handshake: the route suffix
// and public key taken from the discovery payload, and a freshly
// generated session key held in locked memory. Close it once the answer
// has been opened; a Material is never reused.
type Material struct {
	// Suffix selects the POST /con_ing_<suffix> route.
	Suffix string

	// PublicKeyBody is the robot's bare base64 RSA public key.
	PublicKeyBody string

	sessionKey *secret.Buffer
}

// NewMaterial derives handshake material from a discovery payload and
// generates a session key from random. Tail characters that do not map
// to a route digit are logged and skipped.
func NewMaterial(discoveryPayload string, random io.Reader, logger *slog.Logger) (*Material, error) {
	keyBody, err := ExtractPublicKeyBody(discoveryPayload)
	if err != nil {
		return nil, err
	}

	suffix, unknown := DeriveSuffix(discoveryPayload)
	for _, character := range unknown {
		logger.Warn("discovery payload tail has a character outside the route alphabet",
			"character", character,
		)
	}

	key, err := robotcrypto.GenerateSymmetricKey(random)
	if err != nil {
		return nil, err
	}
	sessionKey, err := secret.NewFromBytes([]byte(key))
	if err != nil {
		return nil, fmt.Errorf("protecting session key: %w", err)
	}

	return &Material{
		Suffix:        suffix,
		PublicKeyBody: keyBody,
		sessionKey:    sessionKey,
	}, nil
}

// SessionKey returns the 32-character session key.
func (m *Material) SessionKey() string {
	return m.sessionKey.String()
}

// Seal encrypts offer into a signaling request: Data1 is the offer JSON
// under the session key, Data2 is the session key under the robot's
// public key.
func (m *Material) Seal(offer Offer, random io.Reader) (Request, error) {
	plaintext, err := json.Marshal(offer)
	if err != nil {
		return Request{}, fmt.Errorf("encoding offer: %w", err)
	}

	sessionKey := m.SessionKey()
	data1, err := robotcrypto.EncryptECB(plaintext, sessionKey)
	if err != nil {
		return Request{}, fmt.Errorf("encrypting offer: %w", err)
	}
	data2, err := robotcrypto.EncryptChunked([]byte(sessionKey), m.PublicKeyBody, random)
	if err != nil {
		return Request{}, fmt.Errorf("encrypting session key: %w", err)
	}
	return Request{Data1: data1, Data2: data2}, nil
}

// OpenAnswer decrypts the body of the robot's POST response into a
// session description. An absent type is taken to mean "answer".
func (m *Material) OpenAnswer(body string) (SessionDescription, error) {
	plaintext, err := robotcrypto.DecryptECB(body, m.SessionKey())
	if err != nil {
		return SessionDescription{}, fmt.Errorf("decrypting answer: %w", err)
	}

	var answer SessionDescription
	if err := json.Unmarshal([]byte(plaintext), &answer); err != nil {
		return SessionDescription{}, fmt.Errorf("%w: %v", ErrMalformedAnswer, err)
	}
	if answer.SDP == "" {
		return SessionDescription{}, fmt.Errorf("%w: empty sdp", ErrMalformedAnswer)
	}
	if answer.Type == "" {
		answer.Type = "answer"
	}
	return answer, nil
}

// Close wipes the session key.
func (m *Material) Close() error {
	return m.sessionKey.Close()
}
