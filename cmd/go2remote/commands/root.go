// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/richgrov/go2remote/cmd/go2remote/cli"
	"github.com/richgrov/go2remote/lib/version"
)

// Root returns the go2remote command tree.
func Root() *cli.Command {
	return newRoot(os.Stdout)
}

func newRoot(stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name: "go2remote",
		Description: `go2remote: remote control for the Unitree Go2 over its local WebRTC
interface.

Commands connect to the robot's signaling endpoint, open the "data"
channel, and send sport commands.`,
		Subcommands: []*cli.Command{
			connectCommand(),
			moveCommand(),
			emoteCommand(),
			emotesCommand(stdout),
			driveCommand(),
			captureCommand(stdout),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(args []string) error {
					fmt.Fprintf(stdout, "go2remote %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{Description: "Check that the robot answers", Command: "go2remote connect --robot 192.168.12.1"},
			{Description: "Drive with the keyboard", Command: "go2remote drive --robot 192.168.12.1"},
			{Description: "Try the controls without a robot", Command: "go2remote drive --dry-run"},
		},
	}
}
