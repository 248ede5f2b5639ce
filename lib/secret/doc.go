// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

// Package secret keeps handshake key material out of swap and core
// dumps.
//
// [Buffer] lives in an anonymous mmap region outside the Go heap. The
// region is mlocked and marked MADV_DONTDUMP; Close zeroes and unmaps
// it. The signaling handshake holds its per-session AES key in a Buffer
// from generation until the robot's answer has been decrypted, then
// closes it. Keys are never written anywhere else.
//
// Depends on golang.org/x/sys/unix.
package secret
