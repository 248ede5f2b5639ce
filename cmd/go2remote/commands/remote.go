// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/richgrov/go2remote/lib/capture"
	"github.com/richgrov/go2remote/lib/config"
	"github.com/richgrov/go2remote/lib/version"
	"github.com/richgrov/go2remote/protocol"
	"github.com/richgrov/go2remote/transport"
)

// drainDelay is how long one-shot commands wait after their last send
// before closing, so queued frames leave the data channel.
const drainDelay = 250 * time.Millisecond

// errRobotAddressRequired is returned when a command needs a robot and
// none is configured.
var errRobotAddressRequired = errors.New("robot address required: pass --robot or set robot.address")

// remote is an open controller and the resources behind it.
type remote struct {
	controller transport.Controller
	connection *transport.Connection
	capture    *capture.Writer
	logger     *slog.Logger
}

// remoteHooks are optional callbacks for inbound traffic.
type remoteHooks struct {
	OnMessage   func(protocol.Inbound)
	OnValidated func()
}

// openRemote connects to the configured robot, or returns a
// NopController when dryRun is set.
func openRemote(ctx context.Context, cfg *config.Config, logger *slog.Logger, dryRun bool, hooks remoteHooks) (*remote, error) {
	if dryRun {
		logger.Info("dry run: commands are logged, not sent")
		return &remote{
			controller: transport.NopController{Logger: logger},
			logger:     logger,
		}, nil
	}
	if cfg.Robot.Address == "" {
		return nil, errRobotAddressRequired
	}

	r := &remote{logger: logger}
	var observer transport.FrameObserver
	if cfg.Capture.Path != "" {
		writer, err := openCapture(cfg)
		if err != nil {
			return nil, err
		}
		r.capture = writer
		observer = captureObserver(writer, logger)
		logger.Info("capturing frames", "path", cfg.Capture.Path, "compression", cfg.Capture.Compression)
	}

	connection, err := transport.NewConnection(transport.Config{
		Address:           cfg.Robot.Address,
		Port:              cfg.Robot.SignalingPort,
		PeerID:            cfg.Robot.PeerID,
		ICE:               transport.ICEConfigFromSettings(cfg.ICE.Servers),
		HeartbeatInterval: cfg.Session.HeartbeatInterval,
		Logger:            logger,
		OnMessage:         hooks.OnMessage,
		OnValidated:       hooks.OnValidated,
		FrameObserver:     observer,
	})
	if err != nil {
		r.closeCapture()
		return nil, err
	}
	r.connection = connection
	r.controller = connection

	connectCtx, cancel := context.WithTimeout(ctx, cfg.Session.ConnectTimeout)
	defer cancel()
	started := time.Now()
	if err := connection.Connect(connectCtx); err != nil {
		connection.Dispose()
		r.closeCapture()
		return nil, fmt.Errorf("connecting to %s: %w", cfg.Robot.Address, err)
	}
	logger.Info("connected to robot",
		"robot", cfg.Robot.Address,
		"elapsed", time.Since(started).Round(time.Millisecond),
	)
	return r, nil
}

func openCapture(cfg *config.Config) (*capture.Writer, error) {
	compression, err := capture.ParseCompression(cfg.Capture.Compression)
	if err != nil {
		return nil, err
	}
	return capture.Create(cfg.Capture.Path, compression, capture.Header{
		Created: time.Now().UTC(),
		Robot:   cfg.Robot.Address,
		Version: version.Info(),
	})
}

// captureObserver records every frame into writer. Write failures are
// logged and do not affect the session.
func captureObserver(writer *capture.Writer, logger *slog.Logger) transport.FrameObserver {
	return func(frame transport.Frame) {
		err := writer.Write(capture.Record{
			Time:      frame.Time,
			Direction: frame.Direction.String(),
			Payload:   frame.Payload,
		})
		if err != nil && !errors.Is(err, capture.ErrClosed) {
			logger.Warn("capture write failed", "error", err)
		}
	}
}

// Done returns a channel closed when the robot session ends. It is nil
// (never ready) for a dry run.
func (r *remote) Done() <-chan struct{} {
	if r.connection == nil {
		return nil
	}
	return r.connection.Done()
}

// Err explains why Done closed.
func (r *remote) Err() error {
	if r.connection == nil {
		return nil
	}
	if err := r.connection.Err(); err != nil {
		return err
	}
	return errors.New("robot connection closed")
}

// drain gives queued frames time to leave before Close. It returns
// early if ctx ends.
func (r *remote) drain(ctx context.Context) {
	if r.connection == nil {
		return
	}
	select {
	case <-time.After(drainDelay):
	case <-ctx.Done():
	case <-r.connection.Done():
	}
}

// Close disposes the controller and finishes the capture file.
func (r *remote) Close() error {
	err := r.controller.Dispose()
	if captureErr := r.closeCapture(); captureErr != nil {
		err = errors.Join(err, captureErr)
	}
	return err
}

func (r *remote) closeCapture() error {
	if r.capture == nil {
		return nil
	}
	count := r.capture.Count()
	writer := r.capture
	r.capture = nil
	if err := writer.Close(); err != nil {
		return err
	}
	r.logger.Info("capture closed", "records", count)
	return nil
}
