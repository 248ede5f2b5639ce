// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

// go2remote-mock-robot stands in for a Go2 on the local network. It
// serves the signaling endpoints, answers offers with its own peer,
// issues a validation challenge on every data channel, and logs the
// frames it receives. Point go2remote at it with --robot host:port.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/richgrov/go2remote/cmd/go2remote/cli"
	"github.com/richgrov/go2remote/lib/process"
	"github.com/richgrov/go2remote/lib/version"
	"github.com/richgrov/go2remote/protocol"
	"github.com/richgrov/go2remote/robottest"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := run(os.Args[1:]); err != nil {
		process.Fatal(err)
	}
}

func run(args []string) error {
	var (
		listen         string
		keyBits        int
		challenge      string
		skipValidation bool
		logLevel       string
		showVersion    bool
	)
	flagSet := pflag.NewFlagSet("go2remote-mock-robot", pflag.ContinueOnError)
	flagSet.StringVar(&listen, "listen", "127.0.0.1:9991", "address to serve signaling on")
	flagSet.IntVar(&keyBits, "key-bits", 2048, "RSA key size")
	flagSet.StringVar(&challenge, "challenge", robottest.DefaultChallenge, "validation challenge sent to clients")
	flagSet.BoolVar(&skipValidation, "skip-validation", false, "do not challenge clients")
	flagSet.StringVar(&logLevel, "log-level", "info", "debug, info, warn, or error")
	flagSet.BoolVar(&showVersion, "version", false, "print version information and exit")
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if showVersion {
		fmt.Printf("go2remote-mock-robot %s\n", version.Full())
		return nil
	}

	logger, err := cli.NewLogger(logLevel, "auto")
	if err != nil {
		return err
	}

	robot, err := robottest.New(robottest.Config{
		KeyBits:        keyBits,
		Challenge:      challenge,
		SkipValidation: skipValidation,
		Logger:         logger,
	})
	if err != nil {
		return err
	}
	defer robot.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	listener, err := net.Listen("tcp", listen)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", listen, err)
	}
	server := &http.Server{
		Handler:           robot.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go logFrames(ctx, robot, logger)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Serve(listener)
	}()
	logger.Info("mock robot listening",
		"address", listener.Addr().String(),
		"route", "/con_ing_"+robot.Suffix(),
		"validation", !skipValidation,
	)

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving signaling: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func logFrames(ctx context.Context, robot *robottest.Robot, logger *slog.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case frame := <-robot.Frames():
			// Commands are already logged by the robot.
			level := slog.LevelInfo
			if frame.Type == protocol.TypeHeartbeat || frame.Type == protocol.TypeMessage {
				level = slog.LevelDebug
			}
			logger.Log(ctx, level, "received frame", "type", frame.Type, "payload", frame.Payload)
		}
	}
}
