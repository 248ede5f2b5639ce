// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

package transport

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/pion/webrtc/v4"

	"github.com/richgrov/go2remote/lib/clock"
	"github.com/richgrov/go2remote/lib/netutil"
	"github.com/richgrov/go2remote/protocol"
)

// dataChannelLabel is the label the robot expects on the command
// channel.
const dataChannelLabel = "data"

// eventBufferSize bounds pion callback events waiting for the event
// loop.
const eventBufferSize = 64

// Config configures a Connection.
type Config struct {
	// Address is the robot's IP address or host name. It is used to
	// build a RobotSignaler when Signaler is nil.
	Address string

	// Port overrides the robot's signaling port. Zero means 9991.
	Port int

	// PeerID overrides the offer id. Empty means "STA_localnetwork".
	PeerID string

	// Signaler exchanges the offer for an answer. Defaults to a
	// RobotSignaler for Address.
	Signaler Signaler

	// ICE configures STUN/TURN servers. The zero value gathers host
	// candidates only.
	ICE ICEConfig

	// HeartbeatInterval defaults to DefaultHeartbeatInterval.
	HeartbeatInterval time.Duration

	// Clock drives the heartbeat and request ids. Defaults to the real
	// clock.
	Clock clock.Clock

	// Random seeds session keys and request ids. Defaults to
	// crypto/rand.
	Random io.Reader

	Logger *slog.Logger

	// OnConnected is called once the data channel is open.
	OnConnected func()

	// OnError receives every reported failure as an *Error. Defaults to
	// logging at error level.
	OnError func(error)

	// OnMessage receives inbound frames other than validation
	// challenges.
	OnMessage func(protocol.Inbound)

	// OnValidated is called when the robot accepts validation.
	OnValidated func()

	// FrameObserver sees every text frame in either direction.
	FrameObserver FrameObserver
}

type eventKind int

const (
	eventChannelOpen eventKind = iota
	eventChannelClose
	eventChannelError
	eventMessage
	eventPeerState
	eventReport
)

// event is a pion callback or background failure waiting for the event
// loop.
type event struct {
	kind      eventKind
	err       error
	message   webrtc.DataChannelMessage
	peerState webrtc.PeerConnectionState
}

// Connection is one realtime session with a robot. It is safe for
// concurrent use.
type Connection struct {
	signaler          Signaler
	clock             clock.Clock
	heartbeatInterval time.Duration
	logger            *slog.Logger
	onConnected       func()
	onError           func(error)
	observer          FrameObserver

	peer    *webrtc.PeerConnection
	channel *webrtc.DataChannel
	encoder *protocol.Encoder
	router  *protocol.Router

	events   chan event
	stopLoop chan struct{}
	// opened is closed by the event loop once it has entered Connected.
	opened   chan struct{}
	openOnce sync.Once
	// pending holds frames that arrived before the channel opened. Only
	// the event loop touches it.
	pending []webrtc.DataChannelMessage

	// done is closed once every resource is released.
	done         chan struct{}
	shutdownOnce sync.Once
	closeErr     error

	mu         sync.Mutex
	state      State
	connecting bool
	heartbeat  *heartbeat
	err        *Error
}

// NewConnection creates the PeerConnection, its "data" channel, and the
// media transceivers. Nothing is sent until Connect.
func NewConnection(config Config) (*Connection, error) {
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	clk := config.Clock
	if clk == nil {
		clk = clock.Real()
	}
	random := config.Random
	if random == nil {
		random = rand.Reader
	}
	interval := config.HeartbeatInterval
	if interval <= 0 {
		interval = DefaultHeartbeatInterval
	}
	onError := config.OnError
	if onError == nil {
		onError = func(err error) {
			logger.Error("robot connection error", "error", err)
		}
	}

	signaler := config.Signaler
	if signaler == nil {
		if config.Address == "" {
			return nil, fmt.Errorf("transport: robot address or signaler is required")
		}
		robotSignaler, err := NewRobotSignaler(RobotSignalerConfig{
			Address: config.Address,
			Port:    config.Port,
			PeerID:  config.PeerID,
			Random:  random,
			Logger:  logger,
		})
		if err != nil {
			return nil, fmt.Errorf("creating robot signaler: %w", err)
		}
		signaler = robotSignaler
	}

	encoder, err := protocol.NewEncoder(clk, random)
	if err != nil {
		return nil, fmt.Errorf("creating command encoder: %w", err)
	}

	peer, err := newPeerConnection(config.ICE, logger)
	if err != nil {
		return nil, fmt.Errorf("creating PeerConnection: %w", err)
	}

	c := &Connection{
		signaler:          signaler,
		clock:             clk,
		heartbeatInterval: interval,
		logger:            logger,
		onConnected:       config.OnConnected,
		onError:           onError,
		observer:          config.FrameObserver,
		peer:              peer,
		encoder:           encoder,
		events:            make(chan event, eventBufferSize),
		stopLoop:          make(chan struct{}),
		opened:            make(chan struct{}),
		done:              make(chan struct{}),
	}
	c.router = protocol.NewRouter(protocol.RouterConfig{
		Sender:      c,
		OnMessage:   config.OnMessage,
		OnValidated: config.OnValidated,
		Logger:      logger,
	})

	if err := c.setupPeer(); err != nil {
		peer.Close()
		return nil, err
	}

	go c.eventLoop()
	return c, nil
}

// newPeerConnection creates a pion PeerConnection with default codecs,
// loopback candidates, and pion logging routed into logger.
func newPeerConnection(ice ICEConfig, logger *slog.Logger) (*webrtc.PeerConnection, error) {
	mediaEngine := &webrtc.MediaEngine{}
	if err := mediaEngine.RegisterDefaultCodecs(); err != nil {
		return nil, fmt.Errorf("registering codecs: %w", err)
	}

	settingEngine := webrtc.SettingEngine{
		LoggerFactory: pionLoggerFactory{logger: logger},
	}
	settingEngine.SetIncludeLoopbackCandidate(true)

	api := webrtc.NewAPI(
		webrtc.WithMediaEngine(mediaEngine),
		webrtc.WithSettingEngine(settingEngine),
	)
	return api.NewPeerConnection(webrtc.Configuration{
		ICEServers: ice.Servers,
	})
}

// setupPeer adds the data channel and transceivers and registers pion
// callbacks. Callbacks only post events.
func (c *Connection) setupPeer() error {
	channel, err := c.peer.CreateDataChannel(dataChannelLabel, nil)
	if err != nil {
		return fmt.Errorf("creating %s data channel: %w", dataChannelLabel, err)
	}
	c.channel = channel

	if _, err := c.peer.AddTransceiverFromKind(webrtc.RTPCodecTypeVideo, webrtc.RTPTransceiverInit{
		Direction: webrtc.RTPTransceiverDirectionRecvonly,
	}); err != nil {
		return fmt.Errorf("adding video transceiver: %w", err)
	}
	if _, err := c.peer.AddTransceiverFromKind(webrtc.RTPCodecTypeAudio, webrtc.RTPTransceiverInit{
		Direction: webrtc.RTPTransceiverDirectionSendrecv,
	}); err != nil {
		return fmt.Errorf("adding audio transceiver: %w", err)
	}

	c.peer.OnTrack(func(track *webrtc.TrackRemote, _ *webrtc.RTPReceiver) {
		switch track.Kind() {
		case webrtc.RTPCodecTypeAudio, webrtc.RTPCodecTypeVideo:
			c.logger.Debug("ignoring inbound media track",
				"kind", track.Kind().String(),
				"codec", track.Codec().MimeType,
			)
		default:
			c.logger.Warn("unrecognized inbound track", "kind", track.Kind().String())
		}
	})
	c.peer.OnConnectionStateChange(func(state webrtc.PeerConnectionState) {
		c.post(event{kind: eventPeerState, peerState: state})
	})

	channel.OnOpen(func() {
		c.post(event{kind: eventChannelOpen})
	})
	channel.OnClose(func() {
		c.post(event{kind: eventChannelClose})
	})
	channel.OnError(func(err error) {
		c.post(event{kind: eventChannelError, err: err})
	})
	channel.OnMessage(func(message webrtc.DataChannelMessage) {
		c.post(event{kind: eventMessage, message: message})
	})
	return nil
}

// post hands an event to the loop. Events posted after shutdown are
// dropped.
func (c *Connection) post(ev event) {
	select {
	case c.events <- ev:
	case <-c.stopLoop:
	}
}

func (c *Connection) eventLoop() {
	for {
		select {
		case <-c.stopLoop:
			return
		case ev := <-c.events:
			c.handleEvent(ev)
		}
	}
}

func (c *Connection) handleEvent(ev event) {
	switch ev.kind {
	case eventChannelOpen:
		c.handleOpen()

	case eventChannelClose:
		if c.State().Terminal() {
			return
		}
		c.fail(&Error{Kind: KindChannel, Op: "datachannel close", Err: ErrChannelClosed})

	case eventChannelError:
		c.report(&Error{Kind: KindChannel, Op: "datachannel error", Err: ev.err})

	case eventMessage:
		// pion runs OnOpen on its own goroutine, so the robot's first
		// frame can be dequeued before the open event.
		if c.State() == StateAwaitingAnswer {
			if c.channel.ReadyState() != webrtc.DataChannelStateOpen {
				c.pending = append(c.pending, ev.message)
				return
			}
			c.handleOpen()
		}
		c.handleMessage(ev.message)

	case eventPeerState:
		c.logger.Info("peer connection state change", "state", ev.peerState.String())
		if ev.peerState == webrtc.PeerConnectionStateFailed {
			c.fail(&Error{Kind: KindChannel, Op: "peer connection", Err: ErrPeerConnectionFailed})
		}

	case eventReport:
		c.report(ev.err)
	}
}

// handleOpen enters Connected and starts the heartbeat before any
// inbound frame is routed, so a validation challenge that follows the
// open event immediately can be answered. It runs once per session:
// either for the open event or for the first frame, whichever the loop
// sees first.
func (c *Connection) handleOpen() {
	c.mu.Lock()
	if c.state == StateConnected {
		c.mu.Unlock()
		return
	}
	c.logger.Debug("data channel opened", "label", dataChannelLabel)
	err := c.transitionLocked(StateConnected)
	if err == nil {
		c.heartbeat = startHeartbeat(c.clock, c.heartbeatInterval, c.Send, c.heartbeatFailed)
	}
	terminal := c.state.Terminal()
	c.mu.Unlock()

	if err != nil {
		if !terminal {
			c.fail(classify("datachannel open", err))
		}
		return
	}
	c.openOnce.Do(func() { close(c.opened) })

	pending := c.pending
	c.pending = nil
	for _, message := range pending {
		c.handleMessage(message)
	}
}

// heartbeatFailed reports a failed heartbeat send. Failures caused by
// teardown are dropped: Dispose moves to Closed before it stops the
// heartbeat, so a tick in between sees a channel that is not open.
func (c *Connection) heartbeatFailed(err error) {
	if c.State().Terminal() || netutil.IsExpectedCloseError(err) {
		c.logger.Debug("heartbeat send failed during teardown", "error", err)
		return
	}
	c.post(event{kind: eventReport, err: classify("heartbeat", err)})
}

func (c *Connection) handleMessage(message webrtc.DataChannelMessage) {
	if !message.IsString {
		c.router.HandleBinary(message.Data)
		return
	}

	text := string(message.Data)
	c.observe(Inbound, text)
	if err := c.router.HandleText(text); err != nil {
		c.report(classify("route", err))
	}
}

// Connect performs the handshake: offer, ICE gathering, signaling,
// answer, and data channel open. On success the heartbeat is running
// and OnConnected has been called. On failure the Connection is
// Errored, and the error is both returned and reported. Connect may be
// called once.
func (c *Connection) Connect(ctx context.Context) error {
	c.mu.Lock()
	if c.connecting || c.state != StateNew {
		state := c.state
		c.mu.Unlock()
		return fmt.Errorf("%w: connect called while %s", ErrInvalidState, state)
	}
	c.connecting = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.connecting = false
		c.mu.Unlock()
	}()

	if err := c.connect(ctx); err != nil {
		return c.abort(err)
	}
	return nil
}

func (c *Connection) connect(ctx context.Context) error {
	offer, err := c.peer.CreateOffer(nil)
	if err != nil {
		return &Error{Kind: KindChannel, Op: "create offer", Err: err}
	}

	gatherComplete := webrtc.GatheringCompletePromise(c.peer)
	if err := c.peer.SetLocalDescription(offer); err != nil {
		return &Error{Kind: KindChannel, Op: "set local description", Err: err}
	}
	if err := c.transition(StateOfferCreated); err != nil {
		return err
	}

	// Wait for ICE gathering to complete (vanilla ICE).
	select {
	case <-gatherComplete:
	case <-ctx.Done():
		return &Error{Kind: KindChannel, Op: "ice gathering", Err: ctx.Err()}
	case <-c.done:
		return c.terminalError()
	}
	if err := c.transition(StateAwaitingAnswer); err != nil {
		return err
	}

	local := c.peer.LocalDescription()
	c.logger.Info("offer ready",
		"candidates", strings.Count(local.SDP, "a=candidate:"),
	)

	answer, err := c.signaler.Exchange(ctx, *local)
	if err != nil {
		return classify("signaling", err)
	}
	if err := c.peer.SetRemoteDescription(answer); err != nil {
		return &Error{Kind: KindChannel, Op: "set remote description", Err: err}
	}

	select {
	case <-c.opened:
	case <-ctx.Done():
		return &Error{Kind: KindChannel, Op: "datachannel open", Err: ctx.Err()}
	case <-c.done:
		return c.terminalError()
	}

	if c.State() != StateConnected {
		return c.terminalError()
	}

	c.logger.Info("robot connected")
	if c.onConnected != nil {
		c.onConnected()
	}
	return nil
}

// abort moves a failed Connect to Errored. If the Connection already
// reached a terminal state, that state's error is returned instead.
func (c *Connection) abort(err error) error {
	connErr := classify("connect", err)
	if c.fail(connErr) {
		return connErr
	}
	return c.terminalError()
}

// transition moves to the next state, rejecting illegal transitions.
func (c *Connection) transition(to State) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transitionLocked(to)
}

func (c *Connection) transitionLocked(to State) error {
	from := c.state
	if !canTransition(from, to) {
		if from.Terminal() {
			return c.terminalErrorLocked()
		}
		return fmt.Errorf("%w: illegal transition %s → %s", ErrInvalidState, from, to)
	}
	c.logger.Debug("connection state changed", "from", from.String(), "to", to.String())
	c.state = to
	return nil
}

// terminalError returns the error that ended the Connection.
func (c *Connection) terminalError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.terminalErrorLocked()
}

func (c *Connection) terminalErrorLocked() error {
	if c.err != nil {
		return c.err
	}
	return ErrDisposed
}

// fail moves the Connection to Errored, releases its resources, and
// reports err. It returns false if the Connection was already terminal.
func (c *Connection) fail(err *Error) bool {
	c.mu.Lock()
	if c.state.Terminal() {
		c.mu.Unlock()
		return false
	}
	c.logger.Debug("connection state changed", "from", c.state.String(), "to", StateErrored.String())
	c.state = StateErrored
	c.err = err
	hb := c.heartbeat
	c.heartbeat = nil
	c.mu.Unlock()

	c.shutdown(hb)
	c.report(err)
	return true
}

// shutdown stops the event loop and the heartbeat, then closes the data
// channel and the PeerConnection. Only the first call has any effect.
func (c *Connection) shutdown(hb *heartbeat) {
	c.shutdownOnce.Do(func() {
		close(c.stopLoop)
		if hb != nil {
			hb.Stop()
		}
		if err := c.channel.Close(); err != nil {
			c.logger.Debug("closing data channel", "error", err)
		}
		c.closeErr = c.peer.Close()
		close(c.done)
	})
}

func (c *Connection) report(err error) {
	c.onError(err)
}

func (c *Connection) observe(direction Direction, payload string) {
	if c.observer == nil {
		return
	}
	c.observer(Frame{Direction: direction, Time: c.clock.Now(), Payload: payload})
}

// Send JSON-encodes message and writes it as one text frame. It fails
// with ErrNotOpen unless the Connection is connected and the data
// channel is open. Send does not report to OnError.
func (c *Connection) Send(message any) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return &Error{Kind: KindProtocol, Op: "encode", Err: err}
	}

	if c.State() != StateConnected || c.channel.ReadyState() != webrtc.DataChannelStateOpen {
		return &Error{Kind: KindChannel, Op: "send", Err: ErrNotOpen}
	}

	text := string(payload)
	if err := c.channel.SendText(text); err != nil {
		return &Error{Kind: KindChannel, Op: "send", Err: err}
	}
	c.observe(Outbound, text)
	return nil
}

// Move sends a velocity command. Failures are returned and reported;
// the session stays up.
func (c *Connection) Move(x, y, z float64) error {
	envelope, err := c.encoder.Move(x, y, z)
	return c.command("move", envelope, err)
}

// Emote sends a gesture command. Failures are returned and reported;
// the session stays up.
func (c *Connection) Emote(id int) error {
	envelope, err := c.encoder.Emote(id)
	return c.command("emote", envelope, err)
}

// SendCommand encodes and sends an arbitrary sport API command.
func (c *Connection) SendCommand(command protocol.Command) error {
	envelope, err := c.encoder.Encode(command)
	return c.command("command", envelope, err)
}

func (c *Connection) command(op string, envelope protocol.Envelope, err error) error {
	if err == nil {
		err = c.Send(envelope)
	}
	if err == nil {
		return nil
	}

	cause := err
	kind := KindProtocol
	var sendErr *Error
	if errors.As(err, &sendErr) {
		cause = sendErr.Err
		kind = sendErr.Kind
	}
	commandErr := &Error{Kind: kind, Op: op, Err: cause}
	c.report(commandErr)
	return commandErr
}

// Dispose stops the heartbeat, closes the data channel and the
// PeerConnection, and moves to Closed. It is idempotent and safe from
// any goroutine, including OnError and OnMessage callbacks. Disposing
// an Errored Connection leaves it Errored.
func (c *Connection) Dispose() error {
	c.mu.Lock()
	if c.state.Terminal() {
		c.mu.Unlock()
		<-c.done
		return nil
	}
	from := c.state
	c.state = StateClosed
	hb := c.heartbeat
	c.heartbeat = nil
	c.mu.Unlock()

	c.logger.Info("disposing robot connection", "state", from.String())
	c.shutdown(hb)
	if c.closeErr != nil {
		return fmt.Errorf("closing PeerConnection: %w", c.closeErr)
	}
	return nil
}

// State returns the current state.
func (c *Connection) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Done returns a channel closed once the Connection is Closed or
// Errored and its resources are released.
func (c *Connection) Done() <-chan struct{} {
	return c.done
}

// Err returns the error that moved the Connection to Errored, or nil.
func (c *Connection) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err == nil {
		return nil
	}
	return c.err
}
