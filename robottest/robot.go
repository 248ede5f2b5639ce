// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

package robottest

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/pion/webrtc/v4"

	"github.com/richgrov/go2remote/lib/netutil"
	"github.com/richgrov/go2remote/lib/robotcrypto"
	"github.com/richgrov/go2remote/protocol"
	"github.com/richgrov/go2remote/signaling"
)

// DefaultChallenge is the validation challenge sent when none is
// configured.
const DefaultChallenge = "go2remote-test-challenge"

// discoveryHeader is the ten-character prefix of the discovery payload.
// The real robot's header carries no meaning for clients.
const discoveryHeader = "robottest_"

// iceGatherTimeout bounds answer-side ICE gathering.
const iceGatherTimeout = 15 * time.Second

// frameBufferSize bounds received frames waiting for a reader. Frames
// beyond it are dropped.
const frameBufferSize = 256

// ErrNoChannel is returned by Send before any client channel opened.
var ErrNoChannel = errors.New("robottest: no open data channel")

// Config configures a Robot.
type Config struct {
	// KeyBits is the RSA modulus size. Default 2048; tests use 1024 to
	// keep key generation fast.
	KeyBits int

	// RouteDigits is the five-digit POST route suffix. Default "31415".
	RouteDigits string

	// Challenge is sent when a data channel opens. Default
	// DefaultChallenge.
	Challenge string

	// SkipValidation disables the validation challenge.
	SkipValidation bool

	Logger *slog.Logger
}

// validationFrame is a challenge or verdict sent to the client.
type validationFrame struct {
	Type string `json:"type"`
	Data string `json:"data"`
}

// Frame is one text frame received from a client.
type Frame struct {
	Type    string
	Payload string
}

// Robot is a fake robot. It is safe for concurrent use.
type Robot struct {
	privateKey *rsa.PrivateKey
	payload    string
	suffix     string
	challenge  string
	validate   bool
	logger     *slog.Logger

	frames chan Frame

	mu       sync.Mutex
	requests []signaling.Request
	peers    []*webrtc.PeerConnection
	channels []*webrtc.DataChannel
	closed   bool
}

// New generates the robot's key pair and discovery payload.
func New(config Config) (*Robot, error) {
	bits := config.KeyBits
	if bits == 0 {
		bits = 2048
	}
	digits := config.RouteDigits
	if digits == "" {
		digits = "31415"
	}
	challenge := config.Challenge
	if challenge == "" {
		challenge = DefaultChallenge
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	privateKey, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, fmt.Errorf("generating robot key: %w", err)
	}
	body, err := robotcrypto.PublicKeyBody(&privateKey.PublicKey)
	if err != nil {
		return nil, err
	}
	payload, err := signaling.BuildDiscoveryPayload(discoveryHeader, body, digits)
	if err != nil {
		return nil, err
	}

	return &Robot{
		privateKey: privateKey,
		payload:    payload,
		suffix:     digits,
		challenge:  challenge,
		validate:   !config.SkipValidation,
		logger:     logger,
		frames:     make(chan Frame, frameBufferSize),
	}, nil
}

// PrivateKey returns the robot's RSA key, for decrypting recorded
// requests.
func (r *Robot) PrivateKey() *rsa.PrivateKey { return r.privateKey }

// DiscoveryPayload returns the data1 value served by /con_notify.
func (r *Robot) DiscoveryPayload() string { return r.payload }

// Suffix returns the route suffix clients must derive.
func (r *Robot) Suffix() string { return r.suffix }

// Challenge returns the validation challenge.
func (r *Robot) Challenge() string { return r.challenge }

// Requests returns every signaling request received so far.
func (r *Robot) Requests() []signaling.Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]signaling.Request(nil), r.requests...)
}

// Frames delivers text frames received from clients.
func (r *Robot) Frames() <-chan Frame { return r.frames }

// Handler returns the signaling HTTP handler.
func (r *Robot) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /con_notify", r.serveDiscovery)
	mux.HandleFunc("POST /con_ing_"+r.suffix, r.serveExchange)
	return mux
}

func (r *Robot) serveDiscovery(w http.ResponseWriter, _ *http.Request) {
	body, err := json.Marshal(map[string]any{
		"data1": r.payload,
		"data2": 2,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	io.WriteString(w, base64.StdEncoding.EncodeToString(body))
}

func (r *Robot) serveExchange(w http.ResponseWriter, request *http.Request) {
	body, err := netutil.ReadResponse(request.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var sealed signaling.Request
	if err := json.Unmarshal(body, &sealed); err != nil {
		http.Error(w, "request body is not JSON", http.StatusBadRequest)
		return
	}
	r.mu.Lock()
	r.requests = append(r.requests, sealed)
	r.mu.Unlock()

	sessionKey, err := robotcrypto.DecryptChunked(sealed.Data2, r.privateKey)
	if err != nil {
		http.Error(w, "decrypting session key: "+err.Error(), http.StatusBadRequest)
		return
	}
	plaintext, err := robotcrypto.DecryptECB(sealed.Data1, string(sessionKey))
	if err != nil {
		http.Error(w, "decrypting offer: "+err.Error(), http.StatusBadRequest)
		return
	}
	var offer signaling.Offer
	if err := json.Unmarshal([]byte(plaintext), &offer); err != nil || offer.Type != "offer" {
		http.Error(w, "offer is not a session description", http.StatusBadRequest)
		return
	}
	r.logger.Info("offer received", "peer_id", offer.ID)

	answer, err := r.Answer(request.Context(), webrtc.SessionDescription{Type: webrtc.SDPTypeOffer, SDP: offer.SDP})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	encoded, err := json.Marshal(signaling.SessionDescription{Type: answer.Type.String(), SDP: answer.SDP})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	ciphertext, err := robotcrypto.EncryptECB(encoded, string(sessionKey))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	io.WriteString(w, ciphertext)
}

// Answer answers offer with a new PeerConnection and returns the
// complete answer. It can serve directly as an in-process signaler.
func (r *Robot) Answer(ctx context.Context, offer webrtc.SessionDescription) (webrtc.SessionDescription, error) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return webrtc.SessionDescription{}, errors.New("robottest: robot is closed")
	}
	r.mu.Unlock()

	peer, err := newPeerConnection()
	if err != nil {
		return webrtc.SessionDescription{}, fmt.Errorf("creating PeerConnection: %w", err)
	}
	peer.OnDataChannel(r.handleDataChannel)

	if err := peer.SetRemoteDescription(offer); err != nil {
		peer.Close()
		return webrtc.SessionDescription{}, fmt.Errorf("setting remote description: %w", err)
	}
	answer, err := peer.CreateAnswer(nil)
	if err != nil {
		peer.Close()
		return webrtc.SessionDescription{}, fmt.Errorf("creating SDP answer: %w", err)
	}

	gatherComplete := webrtc.GatheringCompletePromise(peer)
	if err := peer.SetLocalDescription(answer); err != nil {
		peer.Close()
		return webrtc.SessionDescription{}, fmt.Errorf("setting local description: %w", err)
	}
	select {
	case <-gatherComplete:
	case <-time.After(iceGatherTimeout):
		peer.Close()
		return webrtc.SessionDescription{}, fmt.Errorf("ICE gathering timed out after %s", iceGatherTimeout)
	case <-ctx.Done():
		peer.Close()
		return webrtc.SessionDescription{}, ctx.Err()
	}

	r.mu.Lock()
	r.peers = append(r.peers, peer)
	r.mu.Unlock()
	return *peer.LocalDescription(), nil
}

func newPeerConnection() (*webrtc.PeerConnection, error) {
	mediaEngine := &webrtc.MediaEngine{}
	if err := mediaEngine.RegisterDefaultCodecs(); err != nil {
		return nil, err
	}
	settingEngine := webrtc.SettingEngine{}
	settingEngine.SetIncludeLoopbackCandidate(true)
	api := webrtc.NewAPI(
		webrtc.WithMediaEngine(mediaEngine),
		webrtc.WithSettingEngine(settingEngine),
	)
	return api.NewPeerConnection(webrtc.Configuration{})
}

func (r *Robot) handleDataChannel(channel *webrtc.DataChannel) {
	r.logger.Debug("client data channel received", "label", channel.Label())

	channel.OnOpen(func() {
		r.mu.Lock()
		r.channels = append(r.channels, channel)
		r.mu.Unlock()

		if r.validate {
			r.sendJSON(channel, validationFrame{Type: protocol.TypeValidation, Data: r.challenge})
		}
	})

	channel.OnMessage(func(message webrtc.DataChannelMessage) {
		if !message.IsString {
			return
		}
		r.handleFrame(channel, string(message.Data))
	})
}

func (r *Robot) handleFrame(channel *webrtc.DataChannel, text string) {
	var frame protocol.Inbound
	if err := json.Unmarshal([]byte(text), &frame); err != nil {
		r.logger.Warn("client sent malformed frame", "error", err)
	}

	switch frame.Type {
	case protocol.TypeValidation:
		var response string
		json.Unmarshal(frame.Data, &response)
		if response == robotcrypto.ChallengeResponse(r.challenge) {
			r.sendJSON(channel, validationFrame{Type: protocol.TypeValidation, Data: protocol.ValidationOK})
		} else {
			r.logger.Warn("client failed validation", "response", response)
		}
	case protocol.TypeMessage:
		r.logger.Info("command received", "payload", text)
	}

	select {
	case r.frames <- Frame{Type: frame.Type, Payload: text}:
	default:
		r.logger.Warn("dropping received frame, buffer full")
	}
}

func (r *Robot) sendJSON(channel *webrtc.DataChannel, message any) {
	encoded, err := json.Marshal(message)
	if err != nil {
		r.logger.Error("encoding frame", "error", err)
		return
	}
	if err := channel.SendText(string(encoded)); err != nil {
		r.logger.Warn("sending frame", "error", err)
	}
}

// Send writes text to the most recently opened client channel.
func (r *Robot) Send(text string) error {
	r.mu.Lock()
	var channel *webrtc.DataChannel
	if len(r.channels) > 0 {
		channel = r.channels[len(r.channels)-1]
	}
	r.mu.Unlock()

	if channel == nil {
		return ErrNoChannel
	}
	return channel.SendText(text)
}

// CloseChannels closes every client data channel while keeping the
// PeerConnections up.
func (r *Robot) CloseChannels() {
	r.mu.Lock()
	channels := r.channels
	r.channels = nil
	r.mu.Unlock()

	for _, channel := range channels {
		channel.Close()
	}
}

// Close tears down every PeerConnection. The HTTP handler keeps serving
// discovery but refuses new offers.
func (r *Robot) Close() error {
	r.mu.Lock()
	r.closed = true
	peers := r.peers
	r.peers = nil
	r.channels = nil
	r.mu.Unlock()

	var errs []error
	for _, peer := range peers {
		if err := peer.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
