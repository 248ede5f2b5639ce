// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

package transport

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/pion/webrtc/v4"

	"github.com/richgrov/go2remote/signaling"
)

// Compile-time interface check.
var _ Signaler = (*RobotSignaler)(nil)

// RobotSignalerConfig configures a RobotSignaler.
type RobotSignalerConfig struct {
	// Address is the robot's IP address or host name. Required.
	Address string

	// Port defaults to signaling.DefaultPort.
	Port int

	// PeerID is sent as the offer's "id". Defaults to
	// signaling.DefaultPeerID.
	PeerID string

	// HTTPClient defaults to a client with no timeout.
	HTTPClient *http.Client

	// Random is the source for session keys and RSA padding. Defaults to
	// crypto/rand.
	Random io.Reader

	Logger *slog.Logger
}

// RobotSignaler performs the robot's HTTP key exchange: it fetches the
// discovery payload, encrypts the offer under a fresh session key,
// encrypts the session key under the robot's public key, posts both,
// and decrypts the answer.
type RobotSignaler struct {
	client *signaling.Client
	peerID string
	random io.Reader
	logger *slog.Logger
}

// NewRobotSignaler returns a RobotSignaler for config.Address.
func NewRobotSignaler(config RobotSignalerConfig) (*RobotSignaler, error) {
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	client, err := signaling.NewClient(signaling.ClientConfig{
		Address:    config.Address,
		Port:       config.Port,
		HTTPClient: config.HTTPClient,
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}

	peerID := config.PeerID
	if peerID == "" {
		peerID = signaling.DefaultPeerID
	}
	random := config.Random
	if random == nil {
		random = rand.Reader
	}

	return &RobotSignaler{
		client: client,
		peerID: peerID,
		random: random,
		logger: logger,
	}, nil
}

func (s *RobotSignaler) Exchange(ctx context.Context, offer webrtc.SessionDescription) (webrtc.SessionDescription, error) {
	discovery, err := s.client.Discover(ctx)
	if err != nil {
		return webrtc.SessionDescription{}, err
	}

	material, err := signaling.NewMaterial(discovery.Data1, s.random, s.logger)
	if err != nil {
		return webrtc.SessionDescription{}, fmt.Errorf("preparing key exchange: %w", err)
	}
	defer material.Close()

	sealed, err := material.Seal(signaling.Offer{
		ID:    s.peerID,
		Type:  webrtc.SDPTypeOffer.String(),
		Token: "",
		SDP:   offer.SDP,
	}, s.random)
	if err != nil {
		return webrtc.SessionDescription{}, err
	}

	s.logger.Info("sending encrypted offer", "robot", s.client.BaseURL(), "suffix", material.Suffix)

	body, err := s.client.Exchange(ctx, material.Suffix, sealed)
	if err != nil {
		return webrtc.SessionDescription{}, err
	}

	answer, err := material.OpenAnswer(body)
	if err != nil {
		return webrtc.SessionDescription{}, err
	}

	sdpType := webrtc.NewSDPType(answer.Type)
	if sdpType != webrtc.SDPTypeAnswer && sdpType != webrtc.SDPTypePranswer {
		return webrtc.SessionDescription{}, fmt.Errorf("%w: unexpected description type %q", signaling.ErrMalformedAnswer, answer.Type)
	}
	return webrtc.SessionDescription{Type: sdpType, SDP: answer.SDP}, nil
}
