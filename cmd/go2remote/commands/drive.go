// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/richgrov/go2remote/cmd/go2remote/cli"
	"github.com/richgrov/go2remote/cmd/go2remote/drive"
)

func driveCommand() *cli.Command {
	var options globalOptions
	var speed, turnRate float64

	return &cli.Command{
		Name:    "drive",
		Summary: "Drive the robot from the keyboard",
		Description: `Open a full-screen teleoperation view. w/s drive forward and back, a/d
strafe, q/e turn, space stops, and esc quits. Held keys stream Move
commands; releasing every key sends one zero-velocity Move.`,
		Usage: "go2remote drive [--speed V] [--turn-rate W] [flags]",
		Examples: []cli.Example{
			{Description: "Drive a robot on the local network", Command: "go2remote drive --robot 192.168.12.1"},
			{Description: "Practice without a robot", Command: "go2remote drive --dry-run"},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("drive", pflag.ContinueOnError)
			options.AddFlags(flagSet)
			flagSet.Float64Var(&speed, "speed", drive.DefaultSpeed, "forward and strafe velocity")
			flagSet.Float64Var(&turnRate, "turn-rate", drive.DefaultTurnRate, "yaw rate")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 0 {
				return cli.UnexpectedArgs(args)
			}
			if speed <= 0 || turnRate <= 0 {
				return fmt.Errorf("--speed and --turn-rate must be positive")
			}
			if !term.IsTerminal(int(os.Stdin.Fd())) {
				return errors.New("drive needs an interactive terminal")
			}

			cfg, err := options.loadConfig()
			if err != nil {
				return err
			}
			var level slog.Level
			if err := level.UnmarshalText([]byte(cfg.Logging.Level)); err != nil {
				return err
			}
			stderrLogger, err := cli.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
			if err != nil {
				return err
			}
			handler := drive.NewLogHandler(level, stderrLogger.Handler())
			logger := slog.New(handler).With("command", "drive")

			ctx, stop := signalContext()
			defer stop()
			r, err := openRemote(ctx, cfg, logger, options.DryRun, remoteHooks{})
			if err != nil {
				return err
			}
			defer r.Close()

			target := cfg.Robot.Address
			if options.DryRun {
				target = "dry run"
			}
			program := tea.NewProgram(drive.New(drive.Config{
				Controller: r.controller,
				Target:     target,
				Speed:      speed,
				TurnRate:   turnRate,
			}), tea.WithAltScreen())
			handler.SetProgram(program)

			finished := make(chan struct{})
			defer close(finished)
			go func() {
				select {
				case <-r.Done():
					program.Send(drive.DisconnectedMsg{Err: r.Err()})
				case <-ctx.Done():
					program.Quit()
				case <-finished:
				}
			}()

			final, err := program.Run()
			handler.SetProgram(nil)
			if err != nil {
				return fmt.Errorf("running drive view: %w", err)
			}
			if model, ok := final.(drive.Model); ok {
				logger.Info("drive finished", "sent", model.Sent())
				return model.Err()
			}
			return nil
		},
	}
}
