// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"github.com/spf13/pflag"

	"github.com/richgrov/go2remote/cmd/go2remote/cli"
	"github.com/richgrov/go2remote/protocol"
)

func connectCommand() *cli.Command {
	var options globalOptions

	return &cli.Command{
		Name:    "connect",
		Summary: "Connect to the robot and log inbound frames",
		Description: `Connect to the robot, answer its validation challenge, and keep the
session alive with heartbeats. Every inbound frame is logged until
SIGINT or SIGTERM, or until the robot drops the connection.`,
		Usage: "go2remote connect [flags]",
		Examples: []cli.Example{
			{Description: "Watch traffic from a robot on the local network", Command: "go2remote connect --robot 192.168.12.1"},
			{Description: "Record the session for later inspection", Command: "go2remote connect --robot 192.168.12.1 --capture session.g2rc"},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("connect", pflag.ContinueOnError)
			options.AddFlags(flagSet)
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 0 {
				return cli.UnexpectedArgs(args)
			}
			cfg, logger, err := options.setup("connect")
			if err != nil {
				return err
			}
			ctx, stop := signalContext()
			defer stop()

			r, err := openRemote(ctx, cfg, logger, options.DryRun, remoteHooks{
				OnMessage: func(message protocol.Inbound) {
					logger.Info("robot message",
						"type", message.Type,
						"topic", message.Topic,
						"bytes", len(message.Data),
					)
				},
			})
			if err != nil {
				return err
			}
			defer r.Close()

			select {
			case <-ctx.Done():
				logger.Info("interrupted, disconnecting")
				return nil
			case <-r.Done():
				logger.Error("robot connection ended", "error", r.Err())
				return &cli.ExitError{Code: 1}
			}
		},
	}
}
