// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

// go2remote drives a Unitree Go2 over its local WebRTC interface.
package main

import (
	"os"

	"github.com/richgrov/go2remote/cmd/go2remote/commands"
	"github.com/richgrov/go2remote/lib/process"
)

func main() {
	if err := commands.Root().Execute(os.Args[1:]); err != nil {
		process.Fatal(err)
	}
}
