// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/richgrov/go2remote/cmd/go2remote/cli"
	"github.com/richgrov/go2remote/emote"
)

func emoteCommand() *cli.Command {
	var options globalOptions

	return &cli.Command{
		Name:    "emote",
		Summary: "Trigger a gesture by name or id",
		Description: `Trigger a gesture. The argument is a name from the emote table (see
"go2remote emotes") or a numeric sport API id.`,
		Usage: "go2remote emote <name|id> [flags]",
		Examples: []cli.Example{
			{Description: "Shake hands", Command: "go2remote emote shake --robot 192.168.12.1"},
			{Description: "Stop all motion", Command: "go2remote emote soft-stop --robot 192.168.12.1"},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("emote", pflag.ContinueOnError)
			options.AddFlags(flagSet)
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one emote name or id, got %d arguments", len(args))
			}
			cfg, logger, err := options.setup("emote")
			if err != nil {
				return err
			}
			table, err := emote.LoadFile(cfg.Emotes.TableFile)
			if err != nil {
				return err
			}
			entry, err := table.Lookup(args[0])
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

			if err := r.controller.Emote(entry.ID); err != nil {
				return err
			}
			r.drain(ctx)
			logger.Info("emote sent", "name", entry.Name, "id", entry.ID)
			return nil
		},
	}
}

func emotesCommand(stdout io.Writer) *cli.Command {
	var configPath string

	return &cli.Command{
		Name:    "emotes",
		Summary: "List the emote table",
		Usage:   "go2remote emotes [--config PATH]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("emotes", pflag.ContinueOnError)
			flagSet.StringVar(&configPath, "config", "", "path to go2remote.yaml for emotes.table_file")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 0 {
				return cli.UnexpectedArgs(args)
			}
			options := globalOptions{ConfigPath: configPath}
			cfg, err := options.loadConfig()
			if err != nil {
				return err
			}
			table, err := emote.LoadFile(cfg.Emotes.TableFile)
			if err != nil {
				return err
			}
			return printEmotes(stdout, table)
		},
	}
}

func printEmotes(w io.Writer, table *emote.Table) error {
	tw := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "NAME\tID\n")
	for _, entry := range table.Entries() {
		fmt.Fprintf(tw, "%s\t%d\n", entry.Name, entry.ID)
	}
	return tw.Flush()
}
