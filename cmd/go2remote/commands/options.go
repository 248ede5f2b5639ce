// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/richgrov/go2remote/cmd/go2remote/cli"
	"github.com/richgrov/go2remote/lib/config"
)

// globalOptions holds the flags shared by every robot command.
type globalOptions struct {
	ConfigPath string
	Robot      string
	LogLevel   string
	Capture    string
	DryRun     bool
}

// AddFlags registers the shared flags on flagSet.
func (o *globalOptions) AddFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&o.ConfigPath, "config", "", "path to go2remote.yaml (default $"+config.EnvironmentVariable+")")
	flagSet.StringVar(&o.Robot, "robot", "", "robot IP address or host[:port] (overrides robot.address)")
	flagSet.StringVar(&o.LogLevel, "log-level", "", "debug, info, warn, or error (overrides logging.level)")
	flagSet.StringVar(&o.Capture, "capture", "", "record data channel frames to this file (overrides capture.path)")
	flagSet.BoolVar(&o.DryRun, "dry-run", false, "log commands instead of connecting to a robot")
}

// loadConfig resolves the configuration: --config, then the
// environment variable, then defaults, with flag overrides applied.
func (o *globalOptions) loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error
	switch {
	case o.ConfigPath != "":
		cfg, err = config.LoadFile(o.ConfigPath)
	case os.Getenv(config.EnvironmentVariable) != "":
		cfg, err = config.Load()
	default:
		cfg = config.Default()
	}
	if err != nil {
		return nil, err
	}

	if o.Robot != "" {
		cfg.Robot.Address = o.Robot
	}
	if o.LogLevel != "" {
		cfg.Logging.Level = o.LogLevel
	}
	if o.Capture != "" {
		cfg.Capture.Path = o.Capture
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// setup loads the configuration and builds the command logger.
func (o *globalOptions) setup(command string) (*config.Config, *slog.Logger, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := cli.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger.With("command", command), nil
}

// signalContext returns a context cancelled by SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
