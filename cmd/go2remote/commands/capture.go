// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/richgrov/go2remote/cmd/go2remote/cli"
	"github.com/richgrov/go2remote/lib/capture"
)

func captureCommand(stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name:    "capture",
		Summary: "Inspect frame capture files",
		Subcommands: []*cli.Command{
			captureDumpCommand(stdout),
		},
	}
}

// dumpLine is one line of "capture dump" output. Exactly one of Header
// and Record is set.
type dumpLine struct {
	Header *capture.Header `json:"header,omitempty"`
	Record *capture.Record `json:"record,omitempty"`
}

func captureDumpCommand(stdout io.Writer) *cli.Command {
	var recordsOnly bool
	var color string

	return &cli.Command{
		Name:    "dump",
		Summary: "Print a capture file as JSON lines",
		Description: `Print a capture file as JSON lines. The first line holds the capture
header; each following line holds one frame in recording order.`,
		Usage: "go2remote capture dump <file> [--records-only] [--color auto|always|never]",
		Examples: []cli.Example{
			{Description: "Show outbound sport requests", Command: `go2remote capture dump session.g2rc | jq -r 'select(.record.dir == "outbound") | .record.payload'`},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("dump", pflag.ContinueOnError)
			flagSet.BoolVar(&recordsOnly, "records-only", false, "omit the header line")
			flagSet.StringVar(&color, "color", "auto", "highlight JSON: auto, always, or never")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected a capture file path")
			}
			highlight, err := useColor(color, stdout)
			if err != nil {
				return err
			}
			reader, err := capture.Open(args[0])
			if err != nil {
				return err
			}
			defer reader.Close()
			output := stdout
			if highlight {
				output = &highlightWriter{w: stdout}
			}
			return dumpCapture(reader, output, recordsOnly)
		},
	}
}

func dumpCapture(reader *capture.Reader, w io.Writer, recordsOnly bool) error {
	encoder := json.NewEncoder(w)
	if !recordsOnly {
		header := reader.Header()
		if err := encoder.Encode(dumpLine{Header: &header}); err != nil {
			return err
		}
	}
	for {
		record, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := encoder.Encode(dumpLine{Record: &record}); err != nil {
			return err
		}
	}
}

// useColor resolves --color. Auto highlights only when w is a terminal.
func useColor(mode string, w io.Writer) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		file, ok := w.(*os.File)
		return ok && term.IsTerminal(int(file.Fd())), nil
	default:
		return false, fmt.Errorf("--color must be auto, always, or never")
	}
}

// highlightWriter syntax-highlights each JSON line written through it.
// It relies on json.Encoder writing one complete line per Write.
type highlightWriter struct {
	w io.Writer
}

func (h *highlightWriter) Write(line []byte) (int, error) {
	var buffer bytes.Buffer
	if err := quick.Highlight(&buffer, string(line), "json", "terminal256", "monokai"); err != nil {
		return h.w.Write(line)
	}
	if _, err := h.w.Write(buffer.Bytes()); err != nil {
		return 0, err
	}
	return len(line), nil
}
