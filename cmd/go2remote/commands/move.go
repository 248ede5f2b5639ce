// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/spf13/pflag"

	"github.com/richgrov/go2remote/cmd/go2remote/cli"
)

type moveParams struct {
	X        float64
	Y        float64
	Z        float64
	Repeat   int
	Interval time.Duration
}

func (p moveParams) validate() error {
	for name, value := range map[string]float64{"x": p.X, "y": p.Y, "z": p.Z} {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return fmt.Errorf("--%s must be a finite number", name)
		}
	}
	if p.Repeat < 1 {
		return fmt.Errorf("--repeat must be at least 1")
	}
	if p.Repeat > 1 && p.Interval <= 0 {
		return fmt.Errorf("--interval must be positive")
	}
	return nil
}

func moveCommand() *cli.Command {
	var options globalOptions
	var params moveParams

	return &cli.Command{
		Name:    "move",
		Summary: "Send a velocity command",
		Description: `Send a sport Move command. x is forward velocity, y is lateral velocity
(positive left), and z is yaw rate (positive counter-clockwise). The
robot stops on its own shortly after the last Move, so sustained motion
needs --repeat.`,
		Usage: "go2remote move [--x X] [--y Y] [--z Z] [--repeat N --interval D] [flags]",
		Examples: []cli.Example{
			{Description: "Walk forward for about two seconds", Command: "go2remote move --robot 192.168.12.1 --x 0.5 --repeat 20 --interval 100ms"},
			{Description: "Turn in place", Command: "go2remote move --robot 192.168.12.1 --z 1"},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("move", pflag.ContinueOnError)
			options.AddFlags(flagSet)
			flagSet.Float64Var(&params.X, "x", 0, "forward velocity")
			flagSet.Float64Var(&params.Y, "y", 0, "lateral velocity, positive left")
			flagSet.Float64Var(&params.Z, "z", 0, "yaw rate, positive counter-clockwise")
			flagSet.IntVar(&params.Repeat, "repeat", 1, "number of Move commands to send")
			flagSet.DurationVar(&params.Interval, "interval", 100*time.Millisecond, "delay between repeated commands")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 0 {
				return cli.UnexpectedArgs(args)
			}
			if err := params.validate(); err != nil {
				return err
			}
			cfg, logger, err := options.setup("move")
			if err != nil {
				return err
			}
			ctx, stop := signalContext()
			defer stop()

			r, err := openRemote(ctx, cfg, logger, options.DryRun, remoteHooks{})
			if err != nil {
				return err
			}
			defer r.Close()

			sent, err := sendMoves(ctx, r, params)
			logger.Info("move finished", "sent", sent, "x", params.X, "y", params.Y, "z", params.Z)
			return err
		},
	}
}

// sendMoves sends params.Repeat Move commands spaced by params.Interval.
// Cancellation stops the sequence without an error.
func sendMoves(ctx context.Context, r *remote, params moveParams) (int, error) {
	sent := 0
	for i := range params.Repeat {
		if i > 0 {
			select {
			case <-ctx.Done():
				return sent, nil
			case <-r.Done():
				return sent, r.Err()
			case <-time.After(params.Interval):
			}
		}
		if err := r.controller.Move(params.X, params.Y, params.Z); err != nil {
			return sent, err
		}
		sent++
	}
	r.drain(ctx)
	return sent, nil
}
